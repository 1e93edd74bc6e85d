/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mikeb26/chesstd/s3backup"
)

// Backup copies every registry record into a timestamped directory under
// dstRoot and returns the backup directory path.
func Backup(s *Store, dstRoot string) (string, error) {
	stamp := time.Now().UTC().Format("20060102_150405")
	dst := filepath.Join(dstRoot, "backup_"+stamp)

	for _, sub := range []string{"players", "tournaments"} {
		srcDir := filepath.Join(s.dir, sub)
		dstDir := filepath.Join(dst, sub)
		if err := os.MkdirAll(dstDir, 0755); err != nil {
			return "", fmt.Errorf("unable to create %v: %w", dstDir, err)
		}
		err := eachJSONFile(srcDir, func(path string) error {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("unable to read %v: %w", path, err)
			}
			out := filepath.Join(dstDir, filepath.Base(path))
			if err := os.WriteFile(out, data, 0644); err != nil {
				return fmt.Errorf("unable to write %v: %w", out, err)
			}
			return nil
		})
		if err != nil {
			return "", err
		}
	}

	return dst, nil
}

// BackupToS3 uploads every registry record to the given blob store under a
// timestamped prefix. Uploads run concurrently; the first failure aborts
// the group.
func BackupToS3(ctx context.Context, s *Store, blob *s3backup.Store) error {
	stamp := time.Now().UTC().Format("20060102_150405")
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(8)

	for _, sub := range []string{"players", "tournaments"} {
		sub := sub
		srcDir := filepath.Join(s.dir, sub)
		err := eachJSONFile(srcDir, func(path string) error {
			g.Go(func() error {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("unable to read %v: %w", path, err)
				}
				key := fmt.Sprintf("backup_%v/%v/%v", stamp, sub,
					filepath.Base(path))
				return blob.Put(key, data)
			})
			return nil
		})
		if err != nil {
			return err
		}
	}

	return g.Wait()
}
