package dispatch

import (
	"fmt"
	"strings"
)

// Strategy selects how the pattern is applied to the target text.
type Strategy string

const (
	Find                Strategy = "find"
	LookingAt           Strategy = "looking-at"
	Matches             Strategy = "matches"
	Split               Strategy = "split"
	SplitWithLimit      Strategy = "split-with-limit"
	SplitWithDelimiters Strategy = "split-with-delimiters"
	ReplaceAll          Strategy = "replace-all"
	ReplaceFirst        Strategy = "replace-first"
)

// Strategies returns every strategy in menu order.
func Strategies() []Strategy {
	return []Strategy{Find, LookingAt, Matches, Split, SplitWithLimit, SplitWithDelimiters, ReplaceAll, ReplaceFirst}
}

// ParseStrategy accepts the tag form ("replace-all"); underscores and case are ignored.
func ParseStrategy(s string) (Strategy, error) {
	tag := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	if tag == "" {
		return Find, nil
	}
	for _, st := range Strategies() {
		if string(st) == tag {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown strategy %q", s)
}

// Label is the menu text.
func (s Strategy) Label() string {
	switch s {
	case Find:
		return "Find"
	case LookingAt:
		return "Looking At"
	case Matches:
		return "Matches"
	case Split:
		return "Split"
	case SplitWithLimit:
		return "Split (limit)"
	case SplitWithDelimiters:
		return "Split w/ Delims"
	case ReplaceAll:
		return "Replace All"
	case ReplaceFirst:
		return "Replace First"
	}
	return string(s)
}

// UsesSecondary reports whether the secondary input feeds the strategy.
func (s Strategy) UsesSecondary() bool {
	switch s {
	case SplitWithLimit, SplitWithDelimiters, ReplaceAll, ReplaceFirst:
		return true
	}
	return false
}

// WritesAuxiliary reports whether a run replaces the auxiliary text.
func (s Strategy) WritesAuxiliary() bool {
	return s != LookingAt
}
