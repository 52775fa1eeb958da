package backup

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/spellitplease/spellit/internal/domain"
	domainerrors "github.com/spellitplease/spellit/internal/errors"
	"github.com/spellitplease/spellit/internal/logger"
	"github.com/spellitplease/spellit/internal/validation"
)

// OverrideSet is the override state a backup reads and restores.
// *phonetic.Converter implements it.
type OverrideSet interface {
	Overrides() domain.Overrides
	ReplaceOverrides(overrides domain.Overrides)
}

// Service exports and imports override backups.
type Service struct {
	overrides OverrideSet
	validator *validation.Validator
	logger    *slog.Logger
	now       func() time.Time
}

// NewService creates a backup Service for overrides.
func NewService(overrides OverrideSet, log *slog.Logger) *Service {
	return &Service{
		overrides: overrides,
		validator: validation.New(),
		logger:    logger.OrDiscard(log),
		now:       time.Now,
	}
}

// Export writes the current overrides to w as a YAML document.
// Keys are written in sorted order so repeated exports of the same set are identical
// apart from the timestamp.
func (s *Service) Export(w io.Writer) (int, error) {
	doc := Document{
		Version:    FormatVersion,
		ExportedAt: s.now().UTC().Truncate(time.Second),
		Overrides:  s.overrides.Overrides(),
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return 0, fmt.Errorf("encode backup: %w", err)
	}
	if err := enc.Close(); err != nil {
		return 0, fmt.Errorf("encode backup: %w", err)
	}
	return len(doc.Overrides), nil
}

// ExportFile writes a backup to path, replacing any existing file.
// The file is written to a temporary sibling first so a failed export never
// leaves a truncated backup behind.
func (s *Service) ExportFile(path string) (*ExportResult, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "create backup dir")
	}

	var buf bytes.Buffer
	count, err := s.Export(&buf)
	if err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".spellit-backup-*")
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "create temp file")
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) //nolint:errcheck // already renamed on success

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "write backup")
	}
	if err := tmp.Close(); err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "write backup")
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "rename backup")
	}

	s.logger.Info("overrides exported", "path", path, "count", count)

	return &ExportResult{
		Path:  path,
		Size:  int64(buf.Len()),
		Count: count,
	}, nil
}

// Read decodes and validates a backup document without applying it.
func (s *Service) Read(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, domainerrors.Wrap(ErrEmptyBackup, domainerrors.CodeValidation, "read backup")
		}
		return nil, domainerrors.Wrap(err, domainerrors.CodeValidation, "malformed backup")
	}

	if doc.Version != FormatVersion {
		return nil, domainerrors.Wrapf(ErrVersionMismatch, domainerrors.CodeUnsupported,
			"backup version %d (supported: %d)", doc.Version, FormatVersion)
	}
	if err := s.validator.Validate(doc); err != nil {
		return nil, err
	}
	if doc.Overrides == nil {
		doc.Overrides = map[string]string{}
	}
	return &doc, nil
}

// Import reads a backup from r and applies it according to opts.
func (s *Service) Import(r io.Reader, opts RestoreOptions) (*RestoreResult, error) {
	if !opts.Mode.Valid() {
		return nil, domainerrors.Wrapf(ErrInvalidRestoreMode, domainerrors.CodeValidation, "restore mode %q", opts.Mode)
	}

	doc, err := s.Read(r)
	if err != nil {
		return nil, err
	}

	current := s.overrides.Overrides()
	incoming := domain.Overrides(doc.Overrides).Normalized()
	result := &RestoreResult{Mode: opts.Mode, DryRun: opts.DryRun}

	next := domain.Overrides{}
	if opts.Mode == RestoreModeMerge {
		next = current.Clone()
	} else {
		for key := range current {
			if _, ok := incoming[key]; !ok {
				result.Removed++
			}
		}
	}

	for key, word := range incoming {
		if existing, ok := current[key]; ok && existing == word {
			result.Unchanged++
		} else {
			result.Imported++
		}
		next[key] = word
	}

	if opts.DryRun {
		return result, nil
	}
	if next.Equal(current) {
		s.logger.Info("backup matches current overrides, nothing to import")
		return result, nil
	}

	s.overrides.ReplaceOverrides(next)
	s.logger.Info("overrides imported",
		"mode", opts.Mode,
		"imported", result.Imported,
		"unchanged", result.Unchanged,
		"removed", result.Removed)

	return result, nil
}

// ImportFile imports the backup at path.
func (s *Service) ImportFile(path string, opts RestoreOptions) (*RestoreResult, error) {
	f, err := os.Open(path) //#nosec G304 -- backup path chosen by the user
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domainerrors.Wrap(err, domainerrors.CodeNotFound, "backup not found")
		}
		return nil, fmt.Errorf("open backup: %w", err)
	}
	defer f.Close()

	return s.Import(f, opts)
}
