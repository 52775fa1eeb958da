package phonetic

import (
	"github.com/spellitplease/spellit/internal/domain"
	"github.com/spellitplease/spellit/internal/normalize"
)

// Row is one displayed character of the input text.
type Row struct {
	// Position is the index of the character in the input, counted in characters.
	Position       int
	Representation domain.PhoneticRepresentation
}

// Occurrences returns the positions in text of every character equal to ch, in order.
// Positions count user-perceived characters, not bytes. Comparison uses the
// lookup form, matching how overrides are keyed, so "A" and "a" both match.
func Occurrences(text, ch string) []int {
	var positions []int
	for i, c := range normalize.Characters(text) {
		if normalize.Equal(c, ch) {
			positions = append(positions, i)
		}
	}
	return positions
}

// Refresh returns the rows of text affected by a change to ch, with their
// current representations. A presentation layer calls it after UpdateCodeWord
// to redraw every visible copy of the edited character, not just the one edited.
func (c *Converter) Refresh(text, ch string) []Row {
	positions := Occurrences(text, ch)
	if len(positions) == 0 {
		return nil
	}

	chars := normalize.Characters(text)
	rows := make([]Row, len(positions))
	for i, pos := range positions {
		rows[i] = Row{
			Position:       pos,
			Representation: c.Convert(chars[pos]),
		}
	}
	return rows
}
