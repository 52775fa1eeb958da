package transcript

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spellitplease/spellit/internal/domain"
)

func word(s string) *string { return &s }

func TestLine(t *testing.T) {
	tests := []struct {
		name string
		rep  domain.PhoneticRepresentation
		want string
	}{
		{
			name: "lowercase letter is labelled uppercase",
			rep:  domain.PhoneticRepresentation{Character: "h", CodeWord: word("Hotel")},
			want: "H: Hotel\n",
		},
		{
			name: "punctuation",
			rep:  domain.PhoneticRepresentation{Character: "!", CodeWord: word("Exclamation mark")},
			want: "!: Exclamation mark\n",
		},
		{
			name: "space keeps an empty word",
			rep:  domain.PhoneticRepresentation{Character: " ", CodeWord: word("")},
			want: " : \n",
		},
		{
			name: "unmapped character",
			rep:  domain.PhoneticRepresentation{Character: "😀"},
			want: "😀: \n",
		},
		{
			name: "sharp s expands when upper-cased",
			rep:  domain.PhoneticRepresentation{Character: "ß"},
			want: "SS: \n",
		},
		{
			name: "override text is kept verbatim",
			rep:  domain.PhoneticRepresentation{Character: "a", CodeWord: word("apple pie"), DefaultCodeWord: word("Alfa")},
			want: "A: apple pie\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Line(tt.rep))
		})
	}
}

func TestFormat(t *testing.T) {
	reps := []domain.PhoneticRepresentation{
		{Character: "H", CodeWord: word("Hotel")},
		{Character: "i", CodeWord: word("India")},
		{Character: "!", CodeWord: word("Exclamation mark")},
	}

	assert.Equal(t, "H: Hotel\nI: India\n!: Exclamation mark\n", Format(reps))
	assert.Equal(t, "", Format(nil))
}
