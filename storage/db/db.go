// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package db stores synthesis summaries in a SQL database.
//
// Each invocation that saves results creates a Run. A run holds one
// row per architecture, queue size and metric of the summaries saved
// under it, so runs can be reloaded and compared later.
package db

import (
	"bytes"
	"context"
	"database/sql"
	"strings"
	"text/template"
	"time"

	"github.com/pkg/errors"

	"github.com/hwpq/synthperf/synthfmt"
	"github.com/hwpq/synthperf/synthseries"
)

// ErrNotFound is returned by LoadSeries when a run has no rows for
// an architecture.
var ErrNotFound = errors.New("no such series")

// targetMetric names the row holding a summary's target frequency.
const targetMetric = "target_frequency_mhz"

// DB is a high-level interface to a summary database. It's safe for
// concurrent use by multiple goroutines.
type DB struct {
	sql *sql.DB // underlying database connection
	// prepared statements
	insertRun     *sql.Stmt
	insertSummary *sql.Stmt
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
		if err := hook(db, dataSourceName); err != nil {
			db.Close()
			return nil, err
		}
	}
	d := &DB{sql: db}
	if err := d.createTables(driverName); err != nil {
		db.Close()
		return nil, err
	}
	if err := d.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

var openHooks = make(map[string]func(db *sql.DB, dataSourceName string) error)

// RegisterOpenHook registers a hook to be called after opening a
// connection to driverName. The sqlite3 package uses it to configure
// its connections. It must be called from an init function.
func RegisterOpenHook(driverName string, hook func(db *sql.DB, dataSourceName string) error) {
	openHooks[driverName] = hook
}

// createTmpl is the template used to prepare the CREATE statements
// for the database. It is evaluated with . as a map containing one
// entry whose key is the driver name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Runs (
	RunID {{if .sqlite3}}INTEGER PRIMARY KEY AUTOINCREMENT{{else}}SERIAL PRIMARY KEY AUTO_INCREMENT{{end}},
	Created BIGINT
);
CREATE TABLE IF NOT EXISTS Summaries (
	RunID BIGINT UNSIGNED,
	Arch VARCHAR(255),
	QueueSize BIGINT,
	Metric VARCHAR(64),
	Value DOUBLE,
	PRIMARY KEY (RunID, Arch, QueueSize, Metric),
	FOREIGN KEY (RunID) REFERENCES Runs(RunID) ON UPDATE CASCADE ON DELETE CASCADE
);
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
			return errors.Wrap(err, "create table")
		}
	}
	return nil
}

// prepareStatements calls db.sql.Prepare on reusable SQL statements.
func (db *DB) prepareStatements() error {
	var err error
	db.insertRun, err = db.sql.Prepare("INSERT INTO Runs(Created) VALUES (?)")
	if err != nil {
		return err
	}
	db.insertSummary, err = db.sql.Prepare("INSERT INTO Summaries(RunID, Arch, QueueSize, Metric, Value) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	return nil
}

// now is time.Now, replaced in tests.
var now = time.Now

// A Run is a set of series saved together.
type Run struct {
	ID      int64
	Created time.Time

	db *DB
}

// NewRun starts a new run.
func (db *DB) NewRun(ctx context.Context) (*Run, error) {
	created := now().UTC().Truncate(time.Second)
	res, err := db.insertRun.ExecContext(ctx, created.Unix())
	if err != nil {
		return nil, errors.Wrap(err, "inserting run")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &Run{ID: id, Created: created, db: db}, nil
}

// InsertSeries saves every summary of s under r in one transaction.
// Saving the same architecture twice in a run fails.
func (r *Run) InsertSeries(ctx context.Context, s *synthseries.Series) (err error) {
	tx, err := r.db.sql.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	stmt := tx.StmtContext(ctx, r.db.insertSummary)
	for _, q := range s.QueueSizes() {
		sum := s.Summaries[q]
		if _, err := stmt.ExecContext(ctx, r.ID, s.Arch, q, targetMetric, sum.Target); err != nil {
			return errors.Wrapf(err, "inserting %s/%d", s.Arch, q)
		}
		for _, m := range synthfmt.Metrics() {
			v, ok := sum.Value(m)
			if !ok {
				continue
			}
			if _, err := stmt.ExecContext(ctx, r.ID, s.Arch, q, m.String(), v); err != nil {
				return errors.Wrapf(err, "inserting %s/%d", s.Arch, q)
			}
		}
	}
	return nil
}

// Archs returns the architectures saved in run runID, sorted.
func (db *DB) Archs(ctx context.Context, runID int64) ([]string, error) {
	rows, err := db.sql.QueryContext(ctx, "SELECT DISTINCT Arch FROM Summaries WHERE RunID = ? ORDER BY Arch", runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var archs []string
	for rows.Next() {
		var a string
		if err := rows.Scan(&a); err != nil {
			return nil, err
		}
		archs = append(archs, a)
	}
	return archs, rows.Err()
}

// LoadSeries reads back the series for arch saved in run runID.
func (db *DB) LoadSeries(ctx context.Context, runID int64, arch string) (*synthseries.Series, error) {
	rows, err := db.sql.QueryContext(ctx,
		"SELECT QueueSize, Metric, Value FROM Summaries WHERE RunID = ? AND Arch = ? ORDER BY QueueSize",
		runID, arch)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	s := synthseries.NewSeries(arch)
	for rows.Next() {
		var (
			q      int
			metric string
			v      float64
		)
		if err := rows.Scan(&q, &metric, &v); err != nil {
			return nil, err
		}
		sum := s.Summaries[q]
		if sum == nil {
			sum = &synthseries.Summary{QueueSize: q, Values: make(map[synthfmt.Metric]float64)}
			s.Summaries[q] = sum
		}
		if metric == targetMetric {
			sum.Target = v
			continue
		}
		m, ok := synthfmt.ParseMetric(metric)
		if !ok {
			return nil, errors.Errorf("run %d: unknown metric %q", runID, metric)
		}
		if m == synthfmt.AchievedFrequency {
			sum.Achieved = v
		} else {
			sum.Values[m] = v
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if s.Len() == 0 {
		return nil, errors.Wrapf(ErrNotFound, "run %d, %s", runID, arch)
	}
	return s, nil
}

// CountRuns returns the number of runs in the database.
func (db *DB) CountRuns(ctx context.Context) (int, error) {
	var n int
	err := db.sql.QueryRowContext(ctx, "SELECT COUNT(*) FROM Runs").Scan(&n)
	return n, err
}

// LastRun returns the ID of the most recent run.
func (db *DB) LastRun(ctx context.Context) (int64, error) {
	var id int64
	err := db.sql.QueryRowContext(ctx, "SELECT RunID FROM Runs ORDER BY RunID DESC LIMIT 1").Scan(&id)
	if err == sql.ErrNoRows {
		return 0, errors.Wrap(ErrNotFound, "no runs")
	}
	return id, err
}

// Close closes the database connections, releasing any open resources.
func (db *DB) Close() error {
	if err := db.insertRun.Close(); err != nil {
		return err
	}
	if err := db.insertSummary.Close(); err != nil {
		return err
	}
	return db.sql.Close()
}
