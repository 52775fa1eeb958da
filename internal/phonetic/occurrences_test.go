package phonetic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spellitplease/spellit/internal/phonetic"
)

func TestOccurrences(t *testing.T) {
	tests := []struct {
		name string
		text string
		ch   string
		want []int
	}{
		{"repeated letter", "aba", "a", []int{0, 2}},
		{"single hit", "aba", "b", []int{1}},
		{"case-insensitive", "AbA", "a", []int{0, 2}},
		{"no hit", "aba", "z", nil},
		{"empty text", "", "a", nil},
		{"grapheme positions", "🇩🇪a🇩🇪", "🇩🇪", []int{0, 2}},
		{"positions count characters not bytes", "€a€a", "a", []int{1, 3}},
		{"spaces", "a b c", " ", []int{1, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, phonetic.Occurrences(tt.text, tt.ch))
		})
	}
}

func TestRefresh_PropagatesEditToEveryOccurrence(t *testing.T) {
	c, _ := newConverter(t)
	text := "aba"

	c.UpdateCodeWord("a", "Foo")

	rows := c.Refresh(text, "a")
	require.Len(t, rows, 2)
	assert.Equal(t, 0, rows[0].Position)
	assert.Equal(t, 2, rows[1].Position)
	for _, row := range rows {
		assert.Equal(t, "Foo", row.Representation.CodeWordOrEmpty())
	}

	reps := c.ConvertText(text)
	require.Len(t, reps, 3)
	assert.Equal(t, "Foo", reps[0].CodeWordOrEmpty())
	assert.Equal(t, "Bravo", reps[1].CodeWordOrEmpty(), "other characters are unaffected")
	assert.Equal(t, "Foo", reps[2].CodeWordOrEmpty())
}

func TestRefresh_KeepsOriginalCase(t *testing.T) {
	c, _ := newConverter(t)
	c.UpdateCodeWord("a", "Foo")

	rows := c.Refresh("Aa", "a")
	require.Len(t, rows, 2)
	assert.Equal(t, "A", rows[0].Representation.Character)
	assert.Equal(t, "a", rows[1].Representation.Character)
	assert.Equal(t, "Foo", rows[0].Representation.CodeWordOrEmpty())
}

func TestRefresh_NoOccurrences(t *testing.T) {
	c, _ := newConverter(t)
	assert.Nil(t, c.Refresh("bbb", "a"))
}
