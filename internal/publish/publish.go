// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package publish copies generated reports and charts to object
// storage.
package publish

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// An FS stores named files.
type FS interface {
	// NewWriter returns a File that creates name. The file
	// appears only after a successful Close.
	NewWriter(ctx context.Context, name string, metadata map[string]string) (File, error)
}

// A File is a file being written to an FS.
type File interface {
	io.Writer
	// Close finishes the file.
	Close() error
	// CloseWithError abandons the file. The error is returned.
	CloseWithError(error) error
}

// Dir uploads every regular file below dir to fsys, naming each one
// prefix followed by its slash-separated path relative to dir. It
// returns the number of files uploaded.
func Dir(ctx context.Context, fsys FS, prefix, dir string, metadata map[string]string) (int, error) {
	var files []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return 0, errors.Wrap(err, "listing upload directory")
	}
	sort.Strings(files)

	for i, p := range files {
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return i, err
		}
		name := path.Join(prefix, filepath.ToSlash(rel))
		if err := Upload(ctx, fsys, name, p, metadata); err != nil {
			return i, err
		}
		logrus.WithField("name", name).Debug("uploaded")
	}
	return len(files), nil
}

// Upload copies the local file src to fsys as name.
func Upload(ctx context.Context, fsys FS, name, src string, metadata map[string]string) error {
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()

	fw, err := fsys.NewWriter(ctx, name, metadata)
	if err != nil {
		return errors.Wrapf(err, "creating %s", name)
	}
	if _, err := io.Copy(fw, f); err != nil {
		return fw.CloseWithError(errors.Wrapf(err, "writing %s", name))
	}
	if err := fw.Close(); err != nil {
		return errors.Wrapf(err, "closing %s", name)
	}
	return nil
}

// MemFS is an in-memory FS.
type MemFS struct {
	mu      sync.Mutex
	content map[string]*memFile
}

// NewMemFS constructs a new, empty MemFS.
func NewMemFS() *MemFS {
	return &MemFS{content: make(map[string]*memFile)}
}

// NewWriter returns a Writer for a given file name. When the
// Writer is closed, the file will be stored in the MemFS.
func (m *MemFS) NewWriter(_ context.Context, name string, metadata map[string]string) (File, error) {
	meta := make(map[string]string, len(metadata))
	for k, v := range metadata {
		meta[k] = v
	}
	return &memFile{fs: m, name: name, metadata: meta}, nil
}

// Files returns the names of the files written to m, sorted.
func (m *MemFS) Files() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var names []string
	for n := range m.content {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Content returns the content and metadata of the named file.
func (m *MemFS) Content(name string) (string, map[string]string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.content[name]
	if !ok {
		return "", nil, false
	}
	return f.data.String(), f.metadata, true
}

type memFile struct {
	fs       *MemFS
	name     string
	metadata map[string]string
	data     strings.Builder
}

func (f *memFile) Write(p []byte) (int, error) {
	return f.data.Write(p)
}

func (f *memFile) Close() error {
	f.fs.mu.Lock()
	defer f.fs.mu.Unlock()
	f.fs.content[f.name] = f
	return nil
}

func (f *memFile) CloseWithError(err error) error {
	return err
}
