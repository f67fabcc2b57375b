// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/pkg/errors"
)

// fetchSecret returns the payload of a Secret Manager secret version.
// Tests replace it.
var fetchSecret = accessSecret

// accessSecret reads the secret version name, of the form
// projects/PROJECT/secrets/SECRET/versions/VERSION, using the
// application default credentials.
func accessSecret(ctx context.Context, name string) (string, error) {
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return "", errors.Wrap(err, "creating Secret Manager client")
	}
	defer client.Close()

	resp, err := client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		return "", errors.Wrapf(err, "accessing secret %s", name)
	}
	return string(resp.Payload.Data), nil
}

// influxToken resolves the InfluxDB API token from either an explicit
// token or a secret version name. At most one may be set.
func influxToken(ctx context.Context, token, secret string) (string, error) {
	if secret == "" {
		return token, nil
	}
	if token != "" {
		return "", errors.New("--influx-token and --influx-token-secret are mutually exclusive")
	}
	tok, err := fetchSecret(ctx, secret)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(tok), nil
}
