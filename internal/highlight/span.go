// internal/highlight/span.go
package highlight

import "fmt"

// Unresolved is the End of a span whose closing position has not been seen yet.
const Unresolved = -1

// Color is a paint token. The theme decides how a token looks on screen.
type Color int

const (
	Background Color = iota
	Match            // find/match highlight
	Group            // capture group highlight
	Error            // unmatched paren, invalid input
)

// Hex returns the RGB value used when no theme overrides the token.
func (c Color) Hex() string {
	switch c {
	case Match:
		return "#AAE8FC" // 170,232,252
	case Group:
		return "#2EC6F6" // 46,198,246
	case Error:
		return "#FF0000"
	default:
		return "#FFFFFF"
	}
}

func (c Color) String() string {
	switch c {
	case Background:
		return "background"
	case Match:
		return "match"
	case Group:
		return "group"
	case Error:
		return "error"
	}
	return fmt.Sprintf("color(%d)", int(c))
}

// Span is a colored range over a text surface. End is inclusive.
// When Inclusive is false only the two boundary cells are painted.
type Span struct {
	Color     Color
	Start     int
	End       int
	Inclusive bool
}

// New returns a resolved span.
func New(color Color, start, end int, inclusive bool) Span {
	return Span{Color: color, Start: start, End: end, Inclusive: inclusive}
}

// Open returns a span whose end is still Unresolved.
func Open(color Color, start int, inclusive bool) Span {
	return Span{Color: color, Start: start, End: Unresolved, Inclusive: inclusive}
}

// Resolve finalizes the end position.
func (s *Span) Resolve(end int) {
	s.End = end
}

// Resolved reports whether the span has a valid end.
func (s Span) Resolved() bool {
	return s.End != Unresolved && s.Start <= s.End
}

// Size is the number of cells covered from Start to End.
func (s Span) Size() int {
	return s.End - s.Start + 1
}

// Contains reports whether offset i would be painted by s.
func (s Span) Contains(i int) bool {
	if !s.Resolved() {
		return false
	}
	if s.Inclusive {
		return i >= s.Start && i <= s.End
	}
	return i == s.Start || i == s.End
}

func (s Span) String() string {
	end := "?"
	if s.End != Unresolved {
		end = fmt.Sprint(s.End)
	}
	mode := "pair"
	if s.Inclusive {
		mode = "range"
	}
	return fmt.Sprintf("%s[%d..%s %s]", s.Color, s.Start, end, mode)
}
