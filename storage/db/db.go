// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package db stores result lines in a SQL database.
//
// Result lines are grouped into uploads. Each stored line keeps its
// canonical text, and each of its items is also stored as a typed row
// so that values can be queried by name.
package db

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/go-sql-driver/mysql"
	"golang.org/x/net/context"

	"github.com/sqlplot/sqlplot/resultfmt"
)

// DB is a high-level interface to a database of result lines. It's
// safe for concurrent use by multiple goroutines.
type DB struct {
	sql *sql.DB // underlying database connection
	// prepared statements
	lastUpload   *sql.Stmt
	insertUpload *sql.Stmt
	insertLine   *sql.Stmt
	insertItem   *sql.Stmt
}

// OpenSQL creates a DB backed by a SQL database. The parameters are
// the same as the parameters for sql.Open. Only mysql and sqlite3 are
// explicitly supported; other database engines will receive MySQL
// query syntax which may or may not be compatible.
func OpenSQL(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if hook := openHooks[driverName]; hook != nil {
		if err := hook(db); err != nil {
			return nil, err
		}
	}
	d := &DB{sql: db}
	if err := d.createTables(driverName); err != nil {
		return nil, err
	}
	if err := d.prepareStatements(driverName); err != nil {
		return nil, err
	}
	return d, nil
}

var openHooks = make(map[string]func(*sql.DB) error)

// RegisterOpenHook registers a hook to be called after opening a connection to driverName.
// This is used by the sqlite3 package to register a ConnectHook.
// It must be called from an init function.
func RegisterOpenHook(driverName string, hook func(*sql.DB) error) {
	openHooks[driverName] = hook
}

// createTmpl is the template used to prepare the CREATE statements
// for the database. It is evaluated with . as a map containing one
// entry whose key is the driver name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Uploads (
	UploadID VARCHAR(32) PRIMARY KEY,
	Day CHAR(8) NOT NULL,
	Seq BIGINT NOT NULL{{if not .sqlite3}},
	Index (Day, Seq){{end}}
);
{{if .sqlite3}}
CREATE INDEX IF NOT EXISTS UploadsDay ON Uploads(Day, Seq);
{{end}}
CREATE TABLE IF NOT EXISTS ResultLines (
	UploadID VARCHAR(32),
	LineID BIGINT,
	Label VARCHAR(255),
	Content BLOB,
	PRIMARY KEY (UploadID, LineID),
	FOREIGN KEY (UploadID) REFERENCES Uploads(UploadID) ON UPDATE CASCADE ON DELETE CASCADE
);
CREATE TABLE IF NOT EXISTS LineItems (
	UploadID VARCHAR(32),
	LineID BIGINT,
	Pos INTEGER,
	Name VARCHAR(255),
	Kind INTEGER,
	IntValue BIGINT,
	FloatValue DOUBLE,
	StrValue VARCHAR(8192),
	PRIMARY KEY (UploadID, LineID, Pos),
{{if not .sqlite3}}
	Index (Name(100)),
{{end}}
	FOREIGN KEY (UploadID, LineID) REFERENCES ResultLines(UploadID, LineID) ON UPDATE CASCADE ON DELETE CASCADE
);
{{if .sqlite3}}
CREATE INDEX IF NOT EXISTS LineItemsName ON LineItems(Name);
{{end}}
`))

// createTables creates any missing tables on the connection in
// db.sql. driverName is the same driver name passed to sql.Open and
// is used to select the correct syntax.
func (db *DB) createTables(driverName string) error {
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]bool{driverName: true}); err != nil {
		return err
	}
	for _, q := range strings.Split(buf.String(), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.sql.Exec(q); err != nil {
			return fmt.Errorf("create table: %v", err)
		}
	}
	return nil
}

// lastUploadSQL returns the query for the highest sequence number of
// a day. Outside SQLite, which allows a single writer, the read locks
// the day's rows so that concurrent uploads cannot take the same ID.
func lastUploadSQL(driverName string) string {
	q := "SELECT MAX(Seq) FROM Uploads WHERE Day = ?"
	if driverName != "sqlite3" {
		q += " FOR UPDATE"
	}
	return q
}

// prepareStatements calls db.sql.Prepare on reusable SQL statements.
func (db *DB) prepareStatements(driverName string) error {
	var err error
	db.lastUpload, err = db.sql.Prepare(lastUploadSQL(driverName))
	if err != nil {
		return err
	}
	db.insertUpload, err = db.sql.Prepare("INSERT INTO Uploads(UploadID, Day, Seq) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	db.insertLine, err = db.sql.Prepare("INSERT INTO ResultLines(UploadID, LineID, Label, Content) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	db.insertItem, err = db.sql.Prepare("INSERT INTO LineItems(UploadID, LineID, Pos, Name, Kind, IntValue, FloatValue, StrValue) VALUES (?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	return nil
}

// now is a hook for testing
var now = time.Now

// An Upload is a collection of result lines that share an upload ID.
//
// An Upload holds a database transaction until Commit or Abort is
// called.
type Upload struct {
	// ID is the upload ID, of the form YYYYMMDD.N, where N counts
	// the uploads made on that (UTC) day starting at 1.
	ID string

	// lineid is the index of the next line to insert.
	lineid int64
	// db is the underlying database that this upload is going to.
	db *DB
	// tx is the transaction used by the upload.
	tx *sql.Tx
}

// maxUploadAttempts bounds how often NewUpload retries an ID that a
// concurrent upload took first.
const maxUploadAttempts = 5

// NewUpload returns an upload for storing new result lines.
// All lines written to the Upload will have the same upload ID.
func (db *DB) NewUpload(ctx context.Context) (*Upload, error) {
	var err error
	for i := 0; i < maxUploadAttempts; i++ {
		var u *Upload
		if u, err = db.newUpload(ctx); err == nil || !isConflict(err) {
			return u, err
		}
	}
	return nil, err
}

// isConflict reports whether err is a MySQL duplicate key or deadlock
// error, either of which means another transaction allocated the same
// upload ID.
func isConflict(err error) bool {
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && (myErr.Number == 1062 || myErr.Number == 1213)
}

func (db *DB) newUpload(ctx context.Context) (*Upload, error) {
	day := now().UTC().Format("20060102")

	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	var last sql.NullInt64
	if err := tx.Stmt(db.lastUpload).QueryRowContext(ctx, day).Scan(&last); err != nil {
		tx.Rollback()
		return nil, err
	}
	seq := last.Int64 + 1
	id := fmt.Sprintf("%s.%d", day, seq)
	if _, err := tx.Stmt(db.insertUpload).ExecContext(ctx, id, day, seq); err != nil {
		tx.Rollback()
		return nil, err
	}
	return &Upload{
		ID: id,
		db: db,
		tx: tx,
	}, nil
}

// InsertLine inserts a single result line in an existing upload.
// The line is stored in canonical form; r.Rest is not stored. Items
// are stored with the kinds that the canonical text decodes to, so an
// integral float such as 5.0 is stored as the Int 5, matching what
// Query returns.
func (u *Upload) InsertLine(r *resultfmt.Result) error {
	content := resultfmt.AppendLine(nil, r.Items)
	items, err := resultfmt.ParseExact(string(content))
	if err != nil {
		return fmt.Errorf("canonical line: %w", err)
	}
	if _, err := u.tx.Stmt(u.db.insertLine).Exec(u.ID, u.lineid, r.Label, content); err != nil {
		return err
	}
	insertItem := u.tx.Stmt(u.db.insertItem)
	for pos, it := range items {
		var (
			i   sql.NullInt64
			f   sql.NullFloat64
			s   sql.NullString
			val = it.Value
		)
		switch val.Kind() {
		case resultfmt.Int:
			i = sql.NullInt64{Int64: val.Int(), Valid: true}
		case resultfmt.Float:
			// NaN and ±Inf are not portable SQL values; keep
			// their text instead.
			if x := val.Float(); !math.IsNaN(x) && !math.IsInf(x, 0) {
				f = sql.NullFloat64{Float64: x, Valid: true}
			} else {
				s = sql.NullString{String: val.String(), Valid: true}
			}
		default:
			s = sql.NullString{String: val.Str(), Valid: true}
		}
		if _, err := insertItem.Exec(u.ID, u.lineid, pos, it.Name, int(val.Kind()), i, f, s); err != nil {
			return err
		}
	}
	u.lineid++
	return nil
}

// Commit finishes processing the upload.
func (u *Upload) Commit() error {
	return u.tx.Commit()
}

// Abort cleans up resources associated with the upload.
// It does not attempt to clean up partial database state.
func (u *Upload) Abort() error {
	return u.tx.Rollback()
}

// CountUploads returns the number of uploads in the database.
func (db *DB) CountUploads() (int, error) {
	var uploads int
	err := db.sql.QueryRow("SELECT COUNT(*) FROM Uploads").Scan(&uploads)
	return uploads, err
}

// DeleteUpload deletes an upload and all of its lines.
func (db *DB) DeleteUpload(ctx context.Context, uploadID string) error {
	res, err := db.sql.ExecContext(ctx, "DELETE FROM Uploads WHERE UploadID = ?", uploadID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("upload %s not found", uploadID)
	}
	return nil
}

// Query is the result of a query.
// Use Next to advance through the lines, making sure to call Close when done:
//
//	q := db.Query(ctx, "20260101.1")
//	defer q.Close()
//	for q.Next() {
//	  res := q.Result()
//	  ...
//	}
//	err = q.Err() // get any error encountered during iteration
//	...
type Query struct {
	rows   *sql.Rows
	result resultfmt.Result
	err    error
}

// Query returns the lines of the upload uploadID in insertion order.
func (db *DB) Query(ctx context.Context, uploadID string) *Query {
	q := new(Query)
	q.rows, q.err = db.sql.QueryContext(ctx, "SELECT Label, Content FROM ResultLines WHERE UploadID = ? ORDER BY LineID", uploadID)
	return q
}

// Next prepares the next result for reading with the Result
// method. It returns false when there are no more results, either by
// reaching the end of the input or an error.
func (q *Query) Next() bool {
	if q.err != nil {
		return false
	}
	if !q.rows.Next() {
		return false
	}
	var label sql.NullString
	var content []byte
	if q.err = q.rows.Scan(&label, &content); q.err != nil {
		return false
	}
	items, rest, err := resultfmt.Parse(string(content))
	if err != nil {
		q.err = fmt.Errorf("stored line: %w", err)
		return false
	}
	q.result = resultfmt.Result{Items: items, Rest: rest, Label: label.String}
	return true
}

// Result returns the most recent result generated by a call to Next.
func (q *Query) Result() *resultfmt.Result {
	return &q.result
}

// Err returns the error state of the query.
func (q *Query) Err() error {
	if q.err == nil && q.rows != nil {
		return q.rows.Err()
	}
	return q.err
}

// Close frees resources associated with the query.
func (q *Query) Close() error {
	if q.rows != nil {
		return q.rows.Close()
	}
	return q.Err()
}

// Values returns every numeric value stored under name, across all
// uploads, in upload and line order.
func (db *DB) Values(ctx context.Context, name string) ([]float64, error) {
	rows, err := db.sql.QueryContext(ctx, `SELECT i.Kind, i.IntValue, i.FloatValue, i.StrValue
FROM LineItems i JOIN Uploads u ON i.UploadID = u.UploadID
WHERE i.Name = ? AND i.Kind IN (?, ?)
ORDER BY u.Day, u.Seq, i.LineID, i.Pos`, name, int(resultfmt.Int), int(resultfmt.Float))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []float64
	for rows.Next() {
		var kind int
		var i sql.NullInt64
		var f sql.NullFloat64
		var s sql.NullString
		if err := rows.Scan(&kind, &i, &f, &s); err != nil {
			return nil, err
		}
		switch {
		case resultfmt.Kind(kind) == resultfmt.Int:
			out = append(out, float64(i.Int64))
		case f.Valid:
			out = append(out, f.Float64)
		default:
			x, err := strconv.ParseFloat(s.String, 64)
			if err != nil {
				return nil, fmt.Errorf("stored value %q: %v", s.String, err)
			}
			out = append(out, x)
		}
	}
	return out, rows.Err()
}

// Close closes the database connections, releasing any open resources.
func (db *DB) Close() error {
	for _, stmt := range []*sql.Stmt{db.lastUpload, db.insertUpload, db.insertLine, db.insertItem} {
		if err := stmt.Close(); err != nil {
			return err
		}
	}
	return db.sql.Close()
}
