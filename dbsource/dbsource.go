/*************************************************************************
 * Copyright 2017 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

// Package dbsource resolves a MaxMind database reference — a local
// path or an s3://bucket/key URL — into a readable stream, the way
// this codebase's s3Ingester resolves bucket objects for tailing.
package dbsource

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/harrybrwn/geocore/config"
)

// ErrNotImplemented is returned for reference schemes this service
// recognizes but does not yet know how to fetch.
var ErrNotImplemented = errors.New("dbsource: http(s) sources are not yet implemented")

const defaultRegion = `us-east-1`

// Open resolves ref into a readable stream of database bytes. ref may
// be a local filesystem path, an "s3://bucket/key" URL, or an
// "http(s)://" URL (which returns ErrNotImplemented).
func Open(ref string) (io.ReadCloser, error) {
	switch {
	case strings.HasPrefix(ref, "s3://"):
		return openS3(ref)
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return nil, ErrNotImplemented
	default:
		return os.Open(ref)
	}
}

func openS3(ref string) (io.ReadCloser, error) {
	rest := strings.TrimPrefix(ref, "s3://")
	bucket, key, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return nil, fmt.Errorf("dbsource: invalid s3 reference %q, want s3://bucket/key", ref)
	}

	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = defaultRegion
	}
	cfg := aws.Config{Region: aws.String(region)}

	id, secret := os.Getenv("AWS_ACCESS_KEY_ID"), os.Getenv("AWS_SECRET_ACCESS_KEY")
	if id != "" || secret != "" {
		cfg.Credentials = credentials.NewStaticCredentials(id, secret, os.Getenv("AWS_SESSION_TOKEN"))
	}
	if endpoint := os.Getenv("AWS_ENDPOINT_URL"); endpoint != "" {
		cfg.Endpoint = aws.String(endpoint)
		cfg.S3ForcePathStyle = aws.Bool(true)
	}
	if raw, ok := os.LookupEnv("S3_ALLOW_INSECURE"); ok {
		if allow, err := config.ParseBool(raw); err == nil && allow {
			cfg.DisableSSL = aws.Bool(true)
		}
	}

	sess, err := session.NewSession(&cfg)
	if err != nil {
		return nil, fmt.Errorf("dbsource: failed to create s3 session: %w", err)
	}
	svc := s3.New(sess)
	out, err := svc.GetObject(&s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("dbsource: failed to fetch s3://%s/%s: %w", bucket, key, err)
	}
	return out.Body, nil
}
