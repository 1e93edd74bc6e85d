/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gregjones/httpcache"

	"github.com/mikeb26/chesstd/s3backup"
)

// NewCachedHTTPClient returns an http.Client that caches rating-list fetches
// through httpcache. When CHESSTD_BACKUP_BUCKET is set and reachable the
// cache is S3-backed so it is shared across hosts; otherwise an in-memory
// cache is used. A client-side TTL is enforced by rewriting origin cache
// headers, since rating sites tend to mark everything uncacheable.
func NewCachedHTTPClient(ctx context.Context, maxAge time.Duration) *http.Client {
	var cache httpcache.Cache
	if bucket := os.Getenv(BackupBucketEnvVar); bucket != "" {
		s3c := s3backup.New(ctx, bucket, true, true)
		if err := s3c.Init(); err != nil {
			log.Printf("httpclient: warning: S3 cache unavailable: %v; using in-memory cache",
				err)
			cache = httpcache.NewMemoryCache()
		} else {
			cache = s3c
		}
	} else {
		cache = httpcache.NewMemoryCache()
	}

	transport := httpcache.NewTransport(cache)
	transport.Transport = &headerOverrideTransport{
		wrapped: http.DefaultTransport,
		request: func(req *http.Request) {
			req.Header.Set("User-Agent", UserAgent)
		},
		response: func(resp *http.Response) error {
			resp.Header.Del("Pragma")
			resp.Header.Del("Expires")
			resp.Header.Del("Cache-Control")
			resp.Header.Set("Cache-Control", fmt.Sprintf("public, max-age=%d",
				int(maxAge/time.Second)))
			return nil
		},
	}

	return &http.Client{Transport: transport}
}

// headerOverrideTransport applies request and response hooks around an
// underlying RoundTripper.
type headerOverrideTransport struct {
	request  func(req *http.Request)
	response func(resp *http.Response) error
	wrapped  http.RoundTripper
}

func (t *headerOverrideTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// clone so we don't stomp on the caller's original
	req2 := req.Clone(req.Context())
	if t.request != nil {
		t.request(req2)
	}

	resp, err := t.wrapped.RoundTrip(req2)
	if err != nil {
		return nil, err
	}

	if t.response != nil {
		if err := t.response(resp); err != nil {
			return nil, err
		}
	}

	return resp, nil
}
