package pattern

import (
	"fmt"

	"github.com/bethropolis/regextester/internal/highlight"
)

// UnmatchedLeftParenError reports a parenthesis without a partner. Index is
// the position of a ')' with nothing open, or of the outermost '(' still open
// when the pattern ends.
type UnmatchedLeftParenError struct {
	Index int
}

func (e *UnmatchedLeftParenError) Error() string {
	return fmt.Sprintf("unmatched parenthesis at index %d", e.Index)
}

// Group is one capture group as written in the pattern.
type Group struct {
	Span highlight.Span // Start is the '(' and End the matching ')'
	Name string         // empty for unnamed groups
}

type frame struct {
	pos   int
	group int // index into the output, -1 for non-capturing constructs
}

// Groups scans text and returns its capture groups in numbering order:
// the order of their opening parentheses.
func Groups(text string) ([]Group, error) {
	orig := []rune(text)
	r := []rune(MaskNonCapturing(text))

	var groups []Group
	var stack []frame
	for i, c := range r {
		switch c {
		case '(':
			if isEscaped(r, i) {
				continue
			}
			groups = append(groups, Group{
				Span: highlight.Open(highlight.Group, i, false),
				Name: groupName(orig, i),
			})
			stack = append(stack, frame{pos: i, group: len(groups) - 1})
		case MaskedOpen:
			stack = append(stack, frame{pos: i, group: -1})
		case ')':
			if isEscaped(r, i) {
				continue
			}
			if len(stack) == 0 {
				return nil, &UnmatchedLeftParenError{Index: i}
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if top.group >= 0 {
				groups[top.group].Span.Resolve(i)
			}
		}
	}
	if len(stack) > 0 {
		return nil, &UnmatchedLeftParenError{Index: stack[0].pos}
	}
	return groups, nil
}

// ParseGroupRanges returns one boundary-only span per capture group. The
// span at index i belongs to group i+1.
func ParseGroupRanges(text string) ([]highlight.Span, error) {
	groups, err := Groups(text)
	if err != nil {
		return nil, err
	}
	var spans []highlight.Span
	for _, g := range groups {
		spans = append(spans, g.Span)
	}
	return spans, nil
}

// NamedGroups lists the names of named capture groups in order of
// appearance. Unlike Groups it does not require balanced parentheses.
func NamedGroups(text string) []string {
	orig := []rune(text)
	r := []rune(MaskNonCapturing(text))
	var names []string
	for i, c := range r {
		if c != '(' || isEscaped(r, i) {
			continue
		}
		if name := groupName(orig, i); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// GroupAtCaret finds the group whose opening or closing parenthesis sits
// immediately left of caret. The returned index is 0-based.
func GroupAtCaret(spans []highlight.Span, caret int) (int, bool) {
	for i, s := range spans {
		if s.Start == caret-1 || s.End == caret-1 {
			return i, true
		}
	}
	return -1, false
}
