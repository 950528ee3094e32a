// Package engine adapts third-party regular expression libraries to one
// cursor-style API: compile once, then walk matches and read groups by
// number or name. Offsets are rune offsets into the matched text and groups
// are numbered by the position of their opening parenthesis.
package engine

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Dialect selects the library that compiles and runs patterns.
type Dialect string

const (
	DialectJava Dialect = "java" // dlclark/regexp2, backtracking with lookaround
	DialectRE2  Dialect = "re2"  // coregx/coregex, linear time
	DialectPCRE Dialect = "pcre" // go.elara.ws/pcre
)

// Dialects lists the supported dialects, default first.
func Dialects() []Dialect {
	return []Dialect{DialectJava, DialectRE2, DialectPCRE}
}

// ParseDialect accepts a dialect name; empty means DialectJava.
func ParseDialect(s string) (Dialect, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DialectJava, nil
	}
	for _, d := range Dialects() {
		if string(d) == s {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown regex engine %q (want one of java, re2, pcre)", s)
}

// ErrNoSuchGroup is returned when a group name or number is not defined by the pattern.
var ErrNoSuchGroup = errors.New("no such group")

// SyntaxError reports a pattern the engine refused to compile. Index is the
// offending position when the engine reports one, otherwise -1.
type SyntaxError struct {
	Pattern string
	Index   int
	Message string
	Err     error
}

func (e *SyntaxError) Error() string {
	if e.Index < 0 {
		return e.Message
	}
	return fmt.Sprintf("%s near index %d\n%s\n%s^", e.Message, e.Index, e.Pattern, strings.Repeat(" ", e.Index))
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// Options tune an Engine.
type Options struct {
	// MatchTimeout bounds a single match attempt on engines that backtrack.
	// Zero means no limit.
	MatchTimeout time.Duration
}

// Engine compiles patterns.
type Engine interface {
	Dialect() Dialect
	Compile(expr string, flags Flags) (Pattern, error)
}

// Pattern is a compiled regular expression.
type Pattern interface {
	Source() string
	Flags() Flags
	// GroupCount is the number of capture groups, not counting group 0.
	GroupCount() int
	// GroupNames has GroupCount()+1 entries; unnamed groups are "".
	GroupNames() []string
	GroupIndex(name string) (int, error)
	Matcher(text string) Matcher
	// Close releases engine resources. The pattern must not be used afterwards.
	Close()
}

// Matcher walks the matches of a Pattern over one text.
type Matcher interface {
	// Find advances to the next match, continuing after the previous one.
	Find() bool
	// LookingAt matches at the beginning of the text without requiring the
	// whole text to match.
	LookingAt() bool
	// Matches reports whether the whole text matches.
	Matches() bool
	// Reset forgets the current position; the next Find starts over.
	Reset()
	// Start and End return the bounds of group g in the current match, or
	// -1 when g did not take part in it.
	Start(g int) int
	End(g int) int
	Group(g int) (string, bool)
	GroupCount() int
	// Err returns the error that stopped matching early, such as a timeout.
	Err() error
}

// New builds an engine for the dialect.
func New(d Dialect, opts Options) (Engine, error) {
	switch d {
	case DialectJava, "":
		return &javaEngine{timeout: opts.MatchTimeout}, nil
	case DialectRE2:
		return &indexEngine{dialect: DialectRE2, compile: compileRE2}, nil
	case DialectPCRE:
		return &indexEngine{dialect: DialectPCRE, compile: compilePCRE}, nil
	}
	return nil, fmt.Errorf("unknown regex engine %q", d)
}

func groupIndex(names []string, name string) (int, error) {
	for i, n := range names {
		if i > 0 && n == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrNoSuchGroup, name)
}
