// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package synthfmt

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// A Trial is one synthesis attempt at a single target frequency.
type Trial struct {
	Target   float64 // target clock frequency, MHz
	Achieved float64 // achieved clock frequency, MHz

	// Values holds the optional measurements found for Target.
	// It never contains AchievedFrequency.
	Values map[Metric]float64
}

// Value returns the measurement of metric m for t, and whether t has
// one. AchievedFrequency is always present.
func (t *Trial) Value(m Metric) (float64, bool) {
	if m == AchievedFrequency {
		return t.Achieved, true
	}
	v, ok := t.Values[m]
	return v, ok
}

// A Report is the ordered sequence of trials read from one synthesis
// log. Reports are built once by ReadReport and not modified after.
type Report struct {
	// Name identifies the source of the report, typically its path.
	Name string

	// QueueSize is the queue capacity the report was produced for.
	// The reader does not know it; callers that discover files set it
	// from the file name (see QueueSizeFromName).
	QueueSize int

	Trials []*Trial
}

// FreqKey returns the join key of frequency f: f rounded to six
// decimal places. Two frequencies join if and only if they round to the
// same value, so frequencies closer than 1e-6 may still get different
// keys when they straddle a rounding boundary.
func FreqKey(f float64) string {
	return decimal.NewFromFloat(f).Round(6).String()
}

// ReadReport reads all records from r and joins them into a Report.
//
// Achieved-frequency lines start trials in file order. Every other
// measurement is attached to each trial whose target frequency has the
// same FreqKey; if a measurement is reported more than once for a
// frequency, the last one wins. Syntax errors are logged and skipped.
// The only error returned is an I/O error from r.
func ReadReport(r io.Reader, name string) (*Report, error) {
	rep := &Report{Name: name}
	values := make(map[string]map[Metric]float64)

	rd := NewReader(r, name)
	for rd.Scan() {
		switch rec := rd.Result().(type) {
		case *Measurement:
			if rec.Metric == AchievedFrequency {
				rep.Trials = append(rep.Trials, &Trial{Target: rec.Target, Achieved: rec.Value})
				continue
			}
			k := FreqKey(rec.Target)
			if values[k] == nil {
				values[k] = make(map[Metric]float64)
			}
			values[k][rec.Metric] = rec.Value
		case *SyntaxError:
			logrus.WithField("file", rec.FileName).Debugf("skipping line %d: %s", rec.Line, rec.Msg)
		}
	}
	if err := rd.Err(); err != nil {
		return nil, err
	}

	for _, t := range rep.Trials {
		vals := values[FreqKey(t.Target)]
		t.Values = make(map[Metric]float64, len(vals))
		for m, v := range vals {
			t.Values[m] = v
		}
	}
	return rep, nil
}

// ParseFile reads the synthesis report at path.
//
// If path does not exist, the returned error satisfies
// errors.Is(err, fs.ErrNotExist). Lines longer than 1 MiB are skipped.
// The file is closed before ParseFile returns, on every path.
func ParseFile(path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening synthesis report")
	}
	defer f.Close()
	return ReadReport(f, path)
}
