package engine

import (
	"fmt"
	"strings"
)

// Flags modify how a pattern is compiled. They combine with |.
type Flags uint8

const (
	CaseInsensitive Flags = 1 << iota // i
	Multiline                         // m: ^ and $ match at line breaks
	DotAll                            // s: . matches line breaks
	Comments                          // x: whitespace and # comments ignored
	Literal                           // l: the pattern is plain text
)

var flagLetters = []struct {
	flag   Flags
	letter byte
	name   string
}{
	{CaseInsensitive, 'i', "case-insensitive"},
	{Multiline, 'm', "multiline"},
	{DotAll, 's', "dotall"},
	{Comments, 'x', "comments"},
	{Literal, 'l', "literal"},
}

// AllFlags lists each single flag in display order.
func AllFlags() []Flags {
	out := make([]Flags, len(flagLetters))
	for i, fl := range flagLetters {
		out[i] = fl.flag
	}
	return out
}

// ParseFlags builds Flags from letters such as "im".
func ParseFlags(s string) (Flags, error) {
	var f Flags
	s = strings.ToLower(s)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == ' ' || c == ',' {
			continue
		}
		found := false
		for _, fl := range flagLetters {
			if fl.letter == c {
				f |= fl.flag
				found = true
				break
			}
		}
		if !found {
			return f, fmt.Errorf("unknown flag %q in %q", string(c), s)
		}
	}
	return f, nil
}

// Has reports whether every flag in x is set.
func (f Flags) Has(x Flags) bool { return f&x == x }

// Toggle flips the flags in x.
func (f Flags) Toggle(x Flags) Flags { return f ^ x }

// String returns the letters of the set flags, e.g. "is".
func (f Flags) String() string {
	var b strings.Builder
	for _, fl := range flagLetters {
		if f.Has(fl.flag) {
			b.WriteByte(fl.letter)
		}
	}
	return b.String()
}

// Names returns the long names of the set flags.
func (f Flags) Names() []string {
	var names []string
	for _, fl := range flagLetters {
		if f.Has(fl.flag) {
			names = append(names, fl.name)
		}
	}
	return names
}

// inlinePrefix renders i, m, s and x as an inline group such as "(?is)".
func (f Flags) inlinePrefix(allowComments bool) string {
	var b strings.Builder
	for _, fl := range flagLetters {
		if fl.flag == Literal || (fl.flag == Comments && !allowComments) {
			continue
		}
		if f.Has(fl.flag) {
			b.WriteByte(fl.letter)
		}
	}
	if b.Len() == 0 {
		return ""
	}
	return "(?" + b.String() + ")"
}
