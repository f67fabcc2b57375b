// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package influx

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hwpq/synthperf/synthfmt"
	"github.com/hwpq/synthperf/synthseries"
)

func testSeries() *synthseries.Series {
	s := synthseries.NewSeries("bram_tree")
	s.Add(&synthseries.Summary{
		QueueSize: 1023,
		Target:    200,
		Achieved:  248.2,
		Values: map[synthfmt.Metric]float64{
			synthfmt.LUTsUsed: 124,
			synthfmt.BRAMUtil: 0.67,
		},
	})
	s.Add(&synthseries.Summary{QueueSize: 7, Target: 100, Achieved: 180})
	return s
}

func TestPoints(t *testing.T) {
	ts := time.Unix(1700000000, 0)
	pts := Points(testSeries(), "xcau25p", ts)
	require.Len(t, pts, 2)

	p := pts[1]
	require.Equal(t, Measurement, p.Name())
	tags := make(map[string]string)
	for _, tag := range p.TagList() {
		tags[tag.Key] = tag.Value
	}
	require.Equal(t, map[string]string{"arch": "bram_tree", "queue_size": "1023", "device": "xcau25p"}, tags)
	fields := make(map[string]interface{})
	for _, f := range p.FieldList() {
		fields[f.Key] = f.Value
	}
	require.Equal(t, map[string]interface{}{
		"target_frequency_mhz":   200.0,
		"achieved_frequency_mhz": 248.2,
		"max_utilization_pct":    0.67,
		"luts_used":              124.0,
		"bram_util_pct":          0.67,
	}, fields)
	require.Equal(t, ts, p.Time())
}

func TestWriteSeries(t *testing.T) {
	var (
		mu     sync.Mutex
		bodies []string
		query  string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v2/write" {
			http.NotFound(w, r)
			return
		}
		b, _ := io.ReadAll(r.Body)
		mu.Lock()
		bodies = append(bodies, string(b))
		query = r.URL.RawQuery
		mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	w := NewWriter(srv.URL, "token", "hw", "synth")
	defer w.Close()
	err := w.WriteSeries(context.Background(), "", time.Unix(1700000000, 0), []*synthseries.Series{testSeries()})
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, bodies, 1)
	lines := strings.Split(strings.TrimSpace(bodies[0]), "\n")
	require.Len(t, lines, 2)
	require.True(t, strings.HasPrefix(lines[0], "synthesis,arch=bram_tree,queue_size=7 "), lines[0])
	require.Contains(t, lines[1], "achieved_frequency_mhz=248.2")
	require.Contains(t, query, "bucket=synth")
	require.Contains(t, query, "org=hw")
}

func TestWriteSeriesError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"code":"unauthorized","message":"bad token"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	w := NewWriter(srv.URL, "bad", "hw", "synth")
	defer w.Close()
	err := w.WriteSeries(context.Background(), "", time.Now(), []*synthseries.Series{testSeries()})
	require.Error(t, err)
	require.Contains(t, err.Error(), "bram_tree")
}
