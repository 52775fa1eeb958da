// Package backup exports and imports phonetic overrides as YAML documents.
package backup

import "errors"

var (
	// ErrEmptyBackup indicates the input held no YAML document.
	ErrEmptyBackup = errors.New("backup is empty")

	// ErrVersionMismatch indicates the backup version is not supported.
	ErrVersionMismatch = errors.New("backup version not supported")

	// ErrInvalidRestoreMode indicates RestoreOptions.Mode is not recognized.
	ErrInvalidRestoreMode = errors.New("invalid restore mode")
)
