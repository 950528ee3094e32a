// Package offset maps positions reported by the regex engine onto the
// positions of the display buffer. All offsets are rune offsets.
package offset

import (
	"fmt"
	"strings"
)

// LineEnding is how line breaks appear in the text handed to the engine.
type LineEnding int

const (
	// LF text is identical to the display text; translation is the identity.
	LF LineEnding = iota
	// CRLF text carries "\r\n" where the display buffer has a single cell.
	CRLF
)

// ParseLineEnding accepts "lf" or "crlf" (case-insensitive).
func ParseLineEnding(s string) (LineEnding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lf":
		return LF, nil
	case "crlf":
		return CRLF, nil
	}
	return LF, fmt.Errorf("unknown line ending %q", s)
}

func (le LineEnding) String() string {
	if le == CRLF {
		return "crlf"
	}
	return "lf"
}

// Separator is the line break written into engine text.
func (le LineEnding) Separator() string {
	if le == CRLF {
		return "\r\n"
	}
	return "\n"
}

// LineFeedCount counts '\n' among the first upTo runes of raw.
func LineFeedCount(raw string, upTo int) int {
	n, i := 0, 0
	for _, r := range raw {
		if i >= upTo {
			break
		}
		if r == '\n' {
			n++
		}
		i++
	}
	return n
}

// Translate converts a raw engine range to display offsets by subtracting
// the line feeds that precede each end.
func Translate(raw string, rawStart, rawEnd int) (displayStart, displayEnd int) {
	return rawStart - LineFeedCount(raw, rawStart), rawEnd - LineFeedCount(raw, rawEnd)
}

// Mapper translates many offsets over the same raw text.
type Mapper struct {
	ending LineEnding
	feeds  []int // feeds[i] = line feeds in the first i runes
}

// NewMapper prepares translation for one recompute cycle.
func NewMapper(raw string, ending LineEnding) *Mapper {
	m := &Mapper{ending: ending}
	if ending == LF {
		return m
	}
	m.feeds = make([]int, 1, len(raw)+1)
	n := 0
	for _, r := range raw {
		if r == '\n' {
			n++
		}
		m.feeds = append(m.feeds, n)
	}
	return m
}

// Display returns the display offset of a raw offset.
func (m *Mapper) Display(raw int) int {
	if m.ending == LF || raw <= 0 {
		return raw
	}
	if raw >= len(m.feeds) {
		return raw - m.feeds[len(m.feeds)-1]
	}
	return raw - m.feeds[raw]
}

// Range converts an engine match [start, end) to an inclusive display range.
func (m *Mapper) Range(start, end int) (int, int) {
	return m.Display(start), m.Display(end) - 1
}
