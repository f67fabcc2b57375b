// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package influx writes synthesis summaries to an InfluxDB v2 bucket.
//
// Each summary becomes one point of measurement "synthesis" tagged
// with the architecture, queue size and device. Its fields are the
// target frequency and every measurement of the selected trial.
package influx

import (
	"context"
	"strconv"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/hwpq/synthperf/synthseries"
)

// Measurement is the InfluxDB measurement summaries are written to.
const Measurement = "synthesis"

// A Writer writes summaries to one bucket.
type Writer struct {
	client influxdb2.Client
	w      api.WriteAPIBlocking
}

// NewWriter connects to the InfluxDB server at url.
func NewWriter(url, token, org, bucket string) *Writer {
	c := influxdb2.NewClient(url, token)
	return &Writer{client: c, w: c.WriteAPIBlocking(org, bucket)}
}

// Points converts every summary of s to a point at time ts.
func Points(s *synthseries.Series, device string, ts time.Time) []*write.Point {
	var pts []*write.Point
	for _, q := range s.QueueSizes() {
		sum := s.Summaries[q]
		tags := map[string]string{
			"arch":       s.Arch,
			"queue_size": strconv.Itoa(q),
		}
		if device != "" {
			tags["device"] = device
		}
		fields := map[string]interface{}{
			"target_frequency_mhz":   sum.Target,
			"achieved_frequency_mhz": sum.Achieved,
			"max_utilization_pct":    synthseries.MaxUtilization(sum),
		}
		for m, v := range sum.Values {
			fields[m.String()] = v
		}
		pts = append(pts, influxdb2.NewPoint(Measurement, tags, fields, ts))
	}
	return pts
}

// WriteSeries writes the summaries of every series in all.
func (w *Writer) WriteSeries(ctx context.Context, device string, ts time.Time, all []*synthseries.Series) error {
	for _, s := range all {
		pts := Points(s, device, ts)
		if len(pts) == 0 {
			continue
		}
		if err := w.w.WritePoint(ctx, pts...); err != nil {
			return errors.Wrapf(err, "writing %s to InfluxDB", s.Arch)
		}
		logrus.WithFields(logrus.Fields{"arch": s.Arch, "points": len(pts)}).Debug("wrote points")
	}
	return nil
}

// Close releases the client's resources.
func (w *Writer) Close() {
	w.client.Close()
}
