// Package normalize provides utilities for normalizing user-entered characters.
//
// A character is one user-perceived character (an extended grapheme cluster),
// carried as a string. Lookups are case-insensitive, display is case-preserving
// except for transcript labels, which are upper-cased.
package normalize

import (
	"github.com/rivo/uniseg"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// ForLookup returns the form of ch used as an alphabet key.
// "A" -> "a", "É" -> "é", "!" -> "!".
func ForLookup(ch string) string {
	// Casers keep state and must not be shared between goroutines.
	return cases.Lower(language.Und).String(norm.NFC.String(ch))
}

// ForDisplay returns the upper-cased label shown next to a code word.
// "a" -> "A", "ß" -> "SS", "€" -> "€".
func ForDisplay(ch string) string {
	return cases.Upper(language.Und).String(ch)
}

// Characters splits text into user-perceived characters.
// Flags, emoji ZWJ sequences and combining marks stay in one element.
func Characters(text string) []string {
	if text == "" {
		return nil
	}

	chars := make([]string, 0, len(text))
	state := -1
	rest := text
	var cluster string
	for rest != "" {
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		chars = append(chars, cluster)
	}
	return chars
}

// IsSingleCharacter reports whether s is exactly one user-perceived character.
func IsSingleCharacter(s string) bool {
	if s == "" {
		return false
	}
	return uniseg.GraphemeClusterCount(s) == 1
}

// Equal reports whether two characters are the same alphabet key.
func Equal(a, b string) bool {
	if a == b {
		return true
	}
	return ForLookup(a) == ForLookup(b)
}

// Preferred reports whether a should be kept over b when both have the same
// lookup form. The lookup form itself wins, then NFC input, then the lower
// byte string, so the choice never depends on iteration order.
func Preferred(a, b string) bool {
	ra, rb := keyRank(a), keyRank(b)
	if ra != rb {
		return ra < rb
	}
	return a < b
}

func keyRank(ch string) int {
	switch {
	case ch == ForLookup(ch):
		return 0
	case norm.NFC.IsNormalString(ch):
		return 1
	default:
		return 2
	}
}
