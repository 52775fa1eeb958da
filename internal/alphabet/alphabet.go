// Package alphabet holds the built-in phonetic spelling table.
//
// Letters use the NATO spelling alphabet. Digits, ASCII punctuation and a
// curated set of common symbols use descriptive names. Only lowercase letters
// are stored; lookups lowercase their input first.
package alphabet

import (
	"sort"

	"github.com/spellitplease/spellit/internal/normalize"
)

// defaultCodeWords maps a lowercase character to its default code word.
// The space character maps to "", meaning it is spelled as silence.
//
//nolint:gochecknoglobals // Static lookup table, never mutated after init.
var defaultCodeWords = map[string]string{
	" ":  "",
	"!":  "Exclamation mark",
	"\"": "Quotation mark",
	"#":  "Hash / Number sign",
	"$":  "Dollar sign",
	"%":  "Percent sign",
	"&":  "Ampersand",
	"'":  "Apostrophe",
	"(":  "Left/Opening parenthesis",
	")":  "Right/Closing parenthesis",
	"*":  "Asterisk",
	"+":  "Plus sign",
	",":  "Comma",
	"-":  "Hyphen",
	".":  "Period",
	"/":  "Slash",
	"0":  "Zero",
	"1":  "One",
	"2":  "Two",
	"3":  "Three",
	"4":  "Four",
	"5":  "Five",
	"6":  "Six",
	"7":  "Seven",
	"8":  "Eight",
	"9":  "Nine",
	":":  "Colon",
	";":  "Semicolon",
	"<":  "Less-than sign",
	"=":  "Equal sign",
	">":  "Greater-than sign",
	"?":  "Question mark",
	"@":  "At sign",
	"[":  "Left/Opening square bracket",
	"\\": "Backslash",
	"]":  "Right/Closing square bracket",
	"^":  "Caret / Circumflex accent",
	"_":  "Low line",
	"`":  "Backtick / Grave accent",
	"a":  "Alfa",
	"b":  "Bravo",
	"c":  "Charlie",
	"d":  "Delta",
	"e":  "Echo",
	"f":  "Foxtrot",
	"g":  "Golf",
	"h":  "Hotel",
	"i":  "India",
	"j":  "Juliett",
	"k":  "Kilo",
	"l":  "Lima",
	"m":  "Mike",
	"n":  "November",
	"o":  "Oscar",
	"p":  "Papa",
	"q":  "Quebec",
	"r":  "Romeo",
	"s":  "Sierra",
	"t":  "Tango",
	"u":  "Uniform",
	"v":  "Victor",
	"w":  "Whiskey",
	"x":  "Xray",
	"y":  "Yankee",
	"z":  "Zulu",
	"{":  "Left/Opening curly bracket",
	"|":  "Vertical bar",
	"}":  "Right/Closing curly bracket",
	"~":  "Tilde",
	"£":  "Pound sign",
	"¥":  "Yen sign",
	"§":  "Section sign / Silcrow",
	"©":  "Copyright symbol",
	"®":  "Registered trademark symbol",
	"°":  "Degree sign",
	"²":  "Superscript two",
	"³":  "Superscript three",
	"´":  "Acute accent",
	"µ":  "Micro sign",
	"·":  "Middle dot",
	"¹":  "Superscript one",
	"–":  "En dash",
	"—":  "Em dash",
	"―":  "Horizontal bar",
	"•":  "Bullet",
	"“":  "Left double quotation mark",
	"”":  "Right double quotation mark",
	"’":  "Single quotation mark",
	"€":  "Euro sign",
}

// Lookup returns the default code word for ch.
// The second result is false when the character has no entry (emoji, CJK, ...).
// A present entry may be the empty string, as for the space character.
func Lookup(ch string) (string, bool) {
	word, ok := defaultCodeWords[normalize.ForLookup(ch)]
	return word, ok
}

// Len returns the number of entries in the default table.
func Len() int {
	return len(defaultCodeWords)
}

// Characters returns every character with a default code word, sorted.
func Characters() []string {
	chars := make([]string, 0, len(defaultCodeWords))
	for ch := range defaultCodeWords {
		chars = append(chars, ch)
	}
	sort.Strings(chars)
	return chars
}
