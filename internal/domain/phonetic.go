package domain

import (
	"maps"

	"github.com/spellitplease/spellit/internal/normalize"
)

// PhoneticRepresentation is the spelling of a single character.
// A nil CodeWord or DefaultCodeWord means the character has no entry.
type PhoneticRepresentation struct {
	// Character is the character as the user typed it, not normalized.
	Character string `json:"character" yaml:"character"`
	// CodeWord is the active word: the override if one is set, else the default.
	CodeWord *string `json:"code_word,omitempty" yaml:"code_word,omitempty"`
	// DefaultCodeWord is always the built-in word and is the revert target.
	DefaultCodeWord *string `json:"default_code_word,omitempty" yaml:"default_code_word,omitempty"`
}

// CodeWordOrEmpty returns the active code word, or "" when absent.
func (r PhoneticRepresentation) CodeWordOrEmpty() string {
	if r.CodeWord == nil {
		return ""
	}
	return *r.CodeWord
}

// DefaultCodeWordOrEmpty returns the built-in code word, or "" when absent.
func (r PhoneticRepresentation) DefaultCodeWordOrEmpty() string {
	if r.DefaultCodeWord == nil {
		return ""
	}
	return *r.DefaultCodeWord
}

// IsMapped reports whether the character has an active code word.
func (r PhoneticRepresentation) IsMapped() bool {
	return r.CodeWord != nil
}

// CanRevert reports whether the active code word differs from the default.
// A character without a default can be reverted once it has an override,
// which reverting removes.
func (r PhoneticRepresentation) CanRevert() bool {
	if r.DefaultCodeWord == nil {
		return r.CodeWord != nil
	}
	return r.CodeWordOrEmpty() != *r.DefaultCodeWord
}

// Overrides maps a normalized character to a user-chosen code word.
// Stored as a single key in Badger.
type Overrides map[string]string

// Clone returns an independent copy. A nil receiver yields an empty map.
func (o Overrides) Clone() Overrides {
	out := make(Overrides, len(o))
	maps.Copy(out, o)
	return out
}

// Equal reports whether both override sets hold the same entries.
func (o Overrides) Equal(other Overrides) bool {
	return maps.Equal(o, other)
}

// Normalized returns a copy keyed by lookup form, dropping keys that are not
// exactly one character. When several keys collapse into one ("A" and "a", or
// composed and decomposed "É"), the entry chosen by normalize.Preferred wins.
func (o Overrides) Normalized() Overrides {
	out := make(Overrides, len(o))
	origin := make(map[string]string, len(o))
	for ch, word := range o {
		if !normalize.IsSingleCharacter(ch) {
			continue
		}
		key := normalize.ForLookup(ch)
		if prev, exists := origin[key]; exists && !normalize.Preferred(ch, prev) {
			continue
		}
		origin[key] = ch
		out[key] = word
	}
	return out
}
