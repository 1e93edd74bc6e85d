/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

const (
	UserAgent = "chesstd/0.1.0 (+https://github.com/mikeb26/chesstd)"

	// Environment variables honored by the CLI and the backup path.
	DataDirEnvVar      = "CHESSTD_DATA_DIR"
	BackupBucketEnvVar = "CHESSTD_BACKUP_BUCKET"

	DefaultDataDir = "data"
)
