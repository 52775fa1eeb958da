// Package transcript renders converted characters as clipboard-ready text.
//
// Each character becomes one line: the upper-cased character, a colon, a
// space and its code word. Unmapped characters keep their line with an empty
// code word ("😀: ").
//
//	H: Hotel
//	I: India
//	!: Exclamation mark
package transcript

import (
	"strings"

	"github.com/spellitplease/spellit/internal/domain"
	"github.com/spellitplease/spellit/internal/normalize"
)

// Line renders a single representation, including the trailing newline.
func Line(rep domain.PhoneticRepresentation) string {
	var b strings.Builder
	writeLine(&b, rep)
	return b.String()
}

// Format renders reps in order as one block of text.
func Format(reps []domain.PhoneticRepresentation) string {
	var b strings.Builder
	for _, rep := range reps {
		writeLine(&b, rep)
	}
	return b.String()
}

func writeLine(b *strings.Builder, rep domain.PhoneticRepresentation) {
	b.WriteString(normalize.ForDisplay(rep.Character))
	b.WriteString(": ")
	b.WriteString(rep.CodeWordOrEmpty())
	b.WriteByte('\n')
}
