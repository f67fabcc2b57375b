// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/safehtml/template"

	"github.com/hwpq/synthperf/synthseries"
)

var htmlTemplate = template.Must(template.New("").Funcs(template.FuncMap{
	"cell": htmlCell,
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Synthesis results for {{.Device}}</title>
<style>
table.synthstat { border-collapse: collapse; margin-bottom: 2em; }
table.synthstat th, table.synthstat td { padding: 0.2em 0.8em; text-align: right; }
table.synthstat th { border-bottom: 1px solid #888; }
</style>
</head>
<body>
<h1>Synthesis results for {{.Device}}</h1>
{{- range $table := .Tables}}
<h2>{{.Title}}</h2>
<table class='synthstat'>
<tr><th>queue size{{range .Names}}<th>{{.}}{{end}}
{{range $q := $table.QueueSizes -}}
<tr><td>{{$q}}{{range $table.Names}}<td>{{cell $table.Series . $q}}{{end}}
{{end -}}
</table>
{{- end}}
</body>
</html>
`))

type htmlTable struct {
	Title      string
	Names      []string
	Series     map[string][]synthseries.Point
	QueueSizes []int
}

// htmlCell formats the value of series name at queue size q.
func htmlCell(series map[string][]synthseries.Point, name string, q int) string {
	for _, p := range series[name] {
		if p.QueueSize == q {
			return formatPoint(p.Value)
		}
	}
	return "-"
}

// writeHTML writes the comparison tables as an HTML page.
func writeHTML(w io.Writer, e *env, device string, all []*synthseries.Series) error {
	var tables []htmlTable
	for _, t := range comparisonTables(e, all) {
		if len(t.Names) == 0 {
			continue
		}
		seen := make(map[int]bool)
		var qs []int
		for _, pts := range t.Series {
			for _, p := range pts {
				if !seen[p.QueueSize] {
					seen[p.QueueSize] = true
					qs = append(qs, p.QueueSize)
				}
			}
		}
		sort.Ints(qs)
		tables = append(tables, htmlTable{t.Title, t.Names, t.Series, qs})
	}
	return htmlTemplate.Execute(w, struct {
		Device string
		Tables []htmlTable
	}{device, tables})
}

func writeHTMLFile(name string, e *env, device string, all []*synthseries.Series) error {
	if err := os.MkdirAll(filepath.Dir(name), 0777); err != nil {
		return err
	}
	return writeFile(name, func(w io.Writer) error {
		return writeHTML(w, e, device, all)
	})
}
