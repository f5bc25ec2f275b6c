// Copyright 2016 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Appengine runs the result storage server on App Engine or any
// other host that provides a Cloud SQL (MySQL) instance.
//
// The environment variables CLOUDSQL_CONNECTION_NAME, CLOUDSQL_USER
// and CLOUDSQL_DATABASE must point to the Cloud SQL instance.
// CLOUDSQL_PASSWORD can be set if needed. The server listens on
// $PORT, or 8080 if PORT is unset.
package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	_ "github.com/GoogleCloudPlatform/cloudsql-proxy/proxy/dialers/mysql"
	_ "github.com/go-sql-driver/mysql"

	"github.com/sqlplot/sqlplot/storage/app"
	"github.com/sqlplot/sqlplot/storage/db"
)

// cloudSQLDSN returns the data source name for the Cloud SQL instance
// described by getenv.
func cloudSQLDSN(getenv func(string) string) (string, error) {
	var (
		connectionName = getenv("CLOUDSQL_CONNECTION_NAME")
		user           = getenv("CLOUDSQL_USER")
		password       = getenv("CLOUDSQL_PASSWORD") // NOTE: password may be empty
		dbName         = getenv("CLOUDSQL_DATABASE")
	)
	for _, v := range []struct{ name, value string }{
		{"CLOUDSQL_CONNECTION_NAME", connectionName},
		{"CLOUDSQL_USER", user},
		{"CLOUDSQL_DATABASE", dbName},
	} {
		if v.value == "" {
			return "", fmt.Errorf("%s environment variable not set", v.name)
		}
	}
	return fmt.Sprintf("%s:%s@cloudsql(%s)/%s", user, password, connectionName, dbName), nil
}

func main() {
	log.SetFlags(0)

	dsn, err := cloudSQLDSN(os.Getenv)
	if err != nil {
		log.Fatal(err)
	}
	db, err := db.OpenSQL("mysql", dsn)
	if err != nil {
		log.Fatalf("connectDB: %v", err)
	}
	defer db.Close()

	app := &app.App{DB: db}
	app.RegisterOnMux(http.DefaultServeMux)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Listening on :%s", port)
	log.Fatal(http.ListenAndServe(":"+port, nil))
}
