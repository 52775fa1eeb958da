package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spellitplease/spellit/internal/domain"
	"github.com/spellitplease/spellit/internal/normalize"
)

// keyOverrides is the single fixed key holding the whole override set.
// The value is a JSON object mapping each character (as its own text) to a code word.
const keyOverrides = "alphabet:overrides"

// LoadOverrides retrieves the persisted override set.
// Returns false when nothing was ever saved or the stored value is unusable;
// a bad value is logged and treated as "no overrides", never as an error.
// Entries whose key is not exactly one character are skipped.
func (s *Store) LoadOverrides(ctx context.Context) (domain.Overrides, bool) {
	if err := ctx.Err(); err != nil {
		s.logger.Warn("override load canceled", "error", err)
		return nil, false
	}

	data, err := s.get([]byte(keyOverrides))
	if errors.Is(err, ErrNotFound) {
		s.logger.Debug("no saved overrides")
		return nil, false
	}
	if err != nil {
		s.logger.Warn("failed to read overrides, using defaults", "error", err)
		return nil, false
	}

	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		s.logger.Warn("stored overrides are malformed, using defaults", "error", err)
		return nil, false
	}
	if raw == nil {
		return nil, false
	}

	overrides := make(domain.Overrides, len(raw))
	for ch, word := range raw {
		if !normalize.IsSingleCharacter(ch) {
			s.logger.Warn("skipping override with invalid character key", "key", ch)
			continue
		}
		overrides[ch] = word
	}

	return overrides, true
}

// SaveOverrides replaces the persisted override set with overrides.
// The write is a single transaction: readers see the old set or the new one, never a mix.
func (s *Store) SaveOverrides(ctx context.Context, overrides domain.Overrides) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if overrides == nil {
		overrides = domain.Overrides{}
	}

	data, err := json.Marshal(overrides)
	if err != nil {
		return fmt.Errorf("marshal overrides: %w", err)
	}

	if err := s.set([]byte(keyOverrides), data); err != nil {
		return fmt.Errorf("save overrides: %w", err)
	}

	s.logger.Debug("overrides saved", "count", len(overrides))
	return nil
}

// DeleteOverrides removes the persisted override set entirely.
func (s *Store) DeleteOverrides(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.delete([]byte(keyOverrides)); err != nil {
		return fmt.Errorf("delete overrides: %w", err)
	}
	return nil
}

