// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sqlite3 provides the sqlite3 driver for storage/db. It must
// be imported instead of go-sqlite3 so that foreign keys are honored
// and in-memory databases keep a single connection.
package sqlite3

import (
	"database/sql"
	"strings"

	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/hwpq/synthperf/storage/db"
)

func init() {
	db.RegisterOpenHook("sqlite3", func(sdb *sql.DB, dataSourceName string) error {
		sdb.Driver().(*sqlite3.SQLiteDriver).ConnectHook = func(c *sqlite3.SQLiteConn) error {
			_, err := c.Exec("PRAGMA foreign_keys = ON;", nil)
			return err
		}
		// Every connection to ":memory:" opens a fresh database.
		if strings.Contains(dataSourceName, ":memory:") {
			sdb.SetMaxOpenConns(1)
		}
		return nil
	})
}
