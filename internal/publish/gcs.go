// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package publish

import (
	"context"
	"mime"
	"path"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// gcsFS is an FS backed by a Google Cloud Storage bucket.
type gcsFS struct {
	client *storage.Client
	bucket *storage.BucketHandle
}

// NewGCS returns an FS that writes to bucket. If credsFile is empty,
// application default credentials are used.
func NewGCS(ctx context.Context, bucket, credsFile string) (FS, func() error, error) {
	var opts []option.ClientOption
	if credsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credsFile))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, nil, err
	}
	return &gcsFS{client: client, bucket: client.Bucket(bucket)}, client.Close, nil
}

func (g *gcsFS) NewWriter(ctx context.Context, name string, metadata map[string]string) (File, error) {
	ctx, cancel := context.WithCancel(ctx)
	w := g.bucket.Object(name).NewWriter(ctx)
	w.Metadata = metadata
	w.ContentType = mime.TypeByExtension(path.Ext(name))
	return &gcsFile{w: w, cancel: cancel}, nil
}

// gcsFile aborts its upload by canceling the writer's context.
type gcsFile struct {
	w      *storage.Writer
	cancel context.CancelFunc
}

func (f *gcsFile) Write(p []byte) (int, error) {
	return f.w.Write(p)
}

func (f *gcsFile) Close() error {
	defer f.cancel()
	return f.w.Close()
}

func (f *gcsFile) CloseWithError(err error) error {
	f.cancel()
	f.w.Close()
	return err
}
