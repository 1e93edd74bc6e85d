/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package s3backup stores keyed blobs in Amazon S3. It backs two concerns:
// off-site backups of the tournament/player registry, and the HTTP response
// cache used when importing rating lists. The Get/Set/Delete methods satisfy
// httpcache.Cache so a Store can be plugged directly into an httpcache
// transport.
package s3backup

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// Store reads and writes blobs in one S3 bucket.
type Store struct {
	// Client may be overridden before Init for testing; otherwise Init
	// constructs one from the default AWS config.
	Client *s3.Client

	bucket    string
	gzip      bool
	logErrors bool
	ctx       context.Context
}

// New returns an uninitialized Store for the named bucket. Set useGzip to
// compress bodies (keys gain a ".gz" suffix).
func New(ctx context.Context, bucket string, useGzip, logErrors bool) *Store {
	return &Store{
		bucket:    bucket,
		gzip:      useGzip,
		logErrors: logErrors,
		ctx:       ctx,
	}
}

// Init loads AWS configuration and constructs the S3 client.
func (s *Store) Init() error {
	if s.bucket == "" {
		return errors.New("s3backup: no bucket configured")
	}
	if s.Client != nil {
		return nil
	}
	cfg, err := config.LoadDefaultConfig(s.ctx)
	if err != nil {
		return fmt.Errorf("s3backup: unable to load AWS config: %w", err)
	}
	s.Client = s3.NewFromConfig(cfg)

	return nil
}

func (s *Store) objectKey(key string) string {
	if s.gzip {
		return key + ".gz"
	}
	return key
}

// Put uploads a blob under the given key.
func (s *Store) Put(key string, data []byte) error {
	body := data
	if s.gzip {
		var buf bytes.Buffer
		gw := gzip.NewWriter(&buf)
		if _, err := gw.Write(data); err != nil {
			return fmt.Errorf("s3backup: gzip %v: %w", key, err)
		}
		if err := gw.Close(); err != nil {
			return fmt.Errorf("s3backup: gzip %v: %w", key, err)
		}
		body = buf.Bytes()
	}

	_, err := s.Client.PutObject(s.ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(key)),
		Body:   bytes.NewReader(body),
	})
	if err != nil {
		return fmt.Errorf("s3backup: put %v: %w", key, err)
	}

	return nil
}

// Fetch downloads the blob stored under the given key.
func (s *Store) Fetch(key string) ([]byte, error) {
	resp, err := s.Client.GetObject(s.ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(key)),
	})
	if err != nil {
		return nil, fmt.Errorf("s3backup: get %v: %w", key, err)
	}
	defer resp.Body.Close()

	var rdr io.Reader = resp.Body
	if s.gzip {
		gr, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("s3backup: gunzip %v: %w", key, err)
		}
		defer gr.Close()
		rdr = gr
	}
	data, err := io.ReadAll(rdr)
	if err != nil {
		return nil, fmt.Errorf("s3backup: read %v: %w", key, err)
	}

	return data, nil
}

// Get implements httpcache.Cache. A missing key is a cache miss, not an
// error.
func (s *Store) Get(key string) ([]byte, bool) {
	data, err := s.Fetch(key)
	if err != nil {
		var apiErr smithy.APIError
		if s.logErrors &&
			!(errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchKey") {
			log.Printf("s3backup.get: %v", err)
		}
		return nil, false
	}

	return data, true
}

// Set implements httpcache.Cache; failures are logged, not surfaced, since
// a cache write is best effort.
func (s *Store) Set(key string, data []byte) {
	if err := s.Put(key, data); err != nil && s.logErrors {
		log.Printf("s3backup.set: %v", err)
	}
}

// Delete implements httpcache.Cache.
func (s *Store) Delete(key string) {
	_, err := s.Client.DeleteObject(s.ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(key)),
	})
	if err != nil && s.logErrors {
		log.Printf("s3backup.delete: failed to delete %v: %v", key, err)
	}
}
