// Package phonetic converts characters to phonetic spelling words.
//
// A Converter layers user overrides over the built-in alphabet table. Reads
// never touch storage. Every edit updates memory synchronously and hands an
// immutable snapshot of the full override set to a background persister, so
// the in-memory set is the source of truth and storage is a durable mirror.
//
// Override keys are normalized (lowercased) on write as well as on read, so
// editing "A" changes the code word shown for both "A" and "a".
package phonetic

import (
	"context"
	"log/slog"
	"sync"

	"github.com/spellitplease/spellit/internal/alphabet"
	"github.com/spellitplease/spellit/internal/domain"
	"github.com/spellitplease/spellit/internal/logger"
	"github.com/spellitplease/spellit/internal/normalize"
	"github.com/spellitplease/spellit/internal/transcript"
)

// OverrideLoader reads the persisted override set.
// Returns false when nothing usable is stored.
type OverrideLoader interface {
	LoadOverrides(ctx context.Context) (domain.Overrides, bool)
}

// OverridePersister accepts override snapshots for asynchronous saving.
// Save must not block; store.Writer implements it.
type OverridePersister interface {
	Save(snapshot domain.Overrides)
}

// Converter maps characters to code words.
// Safe for concurrent use, although a single presentation thread is the expected caller.
type Converter struct {
	mu        sync.RWMutex
	overrides domain.Overrides

	persister OverridePersister
	logger    *slog.Logger
}

// New creates a Converter seeded from loader.
// A nil loader, or one with nothing stored, starts from the built-in table.
// A nil persister keeps overrides in memory only.
func New(ctx context.Context, loader OverrideLoader, persister OverridePersister, log *slog.Logger) *Converter {
	log = logger.OrDiscard(log)

	c := &Converter{
		overrides: domain.Overrides{},
		persister: persister,
		logger:    log,
	}

	if loader == nil {
		return c
	}

	saved, ok := loader.LoadOverrides(ctx)
	if !ok {
		log.Debug("no saved overrides, using default alphabet")
		return c
	}

	c.overrides = saved.Normalized()
	log.Info("loaded alphabet overrides", "count", len(c.overrides))
	return c
}

// Convert returns the spelling of ch.
// The returned Character is ch as given; lookups use its lowercase form.
// Both code words are nil when ch has neither an override nor a default.
func (c *Converter) Convert(ch string) domain.PhoneticRepresentation {
	key := normalize.ForLookup(ch)

	c.mu.RLock()
	override, hasOverride := c.overrides[key]
	c.mu.RUnlock()

	return representation(ch, key, override, hasOverride)
}

// ConvertText converts every character of text in order.
func (c *Converter) ConvertText(text string) []domain.PhoneticRepresentation {
	chars := normalize.Characters(text)
	if len(chars) == 0 {
		return nil
	}

	reps := make([]domain.PhoneticRepresentation, len(chars))

	c.mu.RLock()
	defer c.mu.RUnlock()

	for i, ch := range chars {
		key := normalize.ForLookup(ch)
		override, ok := c.overrides[key]
		reps[i] = representation(ch, key, override, ok)
	}
	return reps
}

// UpdateCodeWord sets the code word for ch and persists the full override set.
// The change is visible to Convert immediately; persistence is eventual.
// Setting the default word still records an override entry.
func (c *Converter) UpdateCodeWord(ch, codeWord string) {
	if !normalize.IsSingleCharacter(ch) {
		c.logger.Warn("ignoring code word update for invalid character", "character", ch)
		return
	}
	key := normalize.ForLookup(ch)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.overrides[key] = codeWord
	c.persist(c.overrides.Clone())
}

// RevertCodeWord removes the override for ch so the default applies again.
// Unlike UpdateCodeWord(ch, default), no override entry remains.
// Reports whether an override was removed.
func (c *Converter) RevertCodeWord(ch string) bool {
	key := normalize.ForLookup(ch)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.overrides[key]; !ok {
		return false
	}
	delete(c.overrides, key)
	c.persist(c.overrides.Clone())
	return true
}

// ResetAll removes every override.
func (c *Converter) ResetAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.overrides = domain.Overrides{}
	c.persist(domain.Overrides{})
}

// ReplaceOverrides swaps the whole override set, as when restoring a backup.
// Keys are normalized; entries whose key is not one character are dropped.
func (c *Converter) ReplaceOverrides(overrides domain.Overrides) {
	next := overrides.Normalized()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.overrides = next
	c.persist(next.Clone())
}

// Overrides returns a copy of the current override set.
func (c *Converter) Overrides() domain.Overrides {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.overrides.Clone()
}

// ClipboardText renders text as one "<CHAR>: <code word>" line per character.
func (c *Converter) ClipboardText(text string) string {
	return transcript.Format(c.ConvertText(text))
}

// persist hands snapshot to the persister. Called with mu held so snapshots
// arrive in mutation order; Save itself never blocks.
func (c *Converter) persist(snapshot domain.Overrides) {
	if c.persister == nil {
		return
	}
	c.persister.Save(snapshot)
}

func representation(ch, key, override string, hasOverride bool) domain.PhoneticRepresentation {
	rep := domain.PhoneticRepresentation{Character: ch}

	if def, ok := alphabet.Lookup(key); ok {
		active := def
		rep.DefaultCodeWord = &def
		rep.CodeWord = &active
	}
	if hasOverride {
		rep.CodeWord = &override
	}
	return rep
}
