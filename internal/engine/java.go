package engine

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/dlclark/regexp2/syntax"

	"github.com/bethropolis/regextester/internal/logger"
	"github.com/bethropolis/regextester/internal/pattern"
)

// javaEngine runs patterns on regexp2. regexp2 numbers named groups after
// all unnamed ones; groupRef restores left-to-right numbering.
type javaEngine struct {
	timeout time.Duration
}

func (e *javaEngine) Dialect() Dialect { return DialectJava }

func (e *javaEngine) Compile(expr string, flags Flags) (Pattern, error) {
	src := expr
	if flags.Has(Literal) {
		src = regexp2.Escape(expr)
	}
	re, err := e.compile(src, flags)
	if err != nil {
		return nil, javaSyntaxError(expr, flags, err)
	}
	p := &javaPattern{engine: e, source: expr, src: src, flags: flags, re: re}
	p.refs, p.names = javaGroups(src, re)
	return p, nil
}

func (e *javaEngine) compile(src string, flags Flags) (*regexp2.Regexp, error) {
	re, err := regexp2.Compile(src, javaOptions(flags))
	if err != nil {
		return nil, err
	}
	if e.timeout > 0 {
		re.MatchTimeout = e.timeout
	}
	return re, nil
}

// javaSyntaxError locates a regexp2 parse error. regexp2 names the whole
// pattern, not a position, so the error is placed on the last character of
// the shortest prefix that fails the same way. Errors any cut-off pattern
// raises, such as a missing ')', are placed at the end.
func javaSyntaxError(expr string, flags Flags, err error) *SyntaxError {
	se := &SyntaxError{Pattern: expr, Index: -1, Message: err.Error(), Err: err}
	var perr *syntax.Error
	if !errors.As(err, &perr) {
		return se
	}
	se.Message = strings.TrimSuffix(strings.TrimPrefix(perr.Error(), "error parsing regexp: "), " in `"+perr.Expr+"`")

	r := []rune(expr)
	switch perr.Code {
	case syntax.ErrIllegalEndEscape:
		se.Index = len(r) - 1
		return se
	case syntax.ErrMissingParen, syntax.ErrUnterminatedBracket, syntax.ErrMissingBrace,
		syntax.ErrUnterminatedComment, syntax.ErrTooFewHex, syntax.ErrIncompleteSlashP,
		syntax.ErrMissingControl:
		se.Index = len(r)
		return se
	}

	want := fmt.Sprint(perr.Args...)
	for k := 1; k <= len(r); k++ {
		_, perr2 := regexp2.Compile(string(r[:k]), javaOptions(flags))
		var pe *syntax.Error
		if errors.As(perr2, &pe) && pe.Code == perr.Code && fmt.Sprint(pe.Args...) == want {
			se.Index = k - 1
			break
		}
	}
	return se
}

func javaOptions(f Flags) regexp2.RegexOptions {
	opts := regexp2.None
	if f.Has(CaseInsensitive) {
		opts |= regexp2.IgnoreCase
	}
	if f.Has(Multiline) {
		opts |= regexp2.Multiline
	}
	if f.Has(DotAll) {
		opts |= regexp2.Singleline
	}
	if f.Has(Comments) {
		opts |= regexp2.IgnorePatternWhitespace
	}
	return opts
}

// groupRef locates a group in a regexp2 match: by name for named groups,
// by regexp2's own number otherwise.
type groupRef struct {
	name string
	num  int
}

func javaGroups(src string, re *regexp2.Regexp) ([]groupRef, []string) {
	numbers := re.GetGroupNumbers()
	count := len(numbers) - 1
	refs := make([]groupRef, count+1)
	names := make([]string, count+1)

	if groups, err := pattern.Groups(src); err == nil && len(groups) == count {
		unnamed, ok := 0, true
		for i, g := range groups {
			if g.Name == "" {
				unnamed++
				refs[i+1] = groupRef{num: unnamed}
				continue
			}
			if re.GroupNumberFromName(g.Name) < 0 {
				ok = false
				break
			}
			refs[i+1] = groupRef{name: g.Name}
			names[i+1] = g.Name
		}
		if ok {
			return refs, names
		}
	}

	logger.DebugTagf("engine", "group layout of %q not recognised, using engine numbering", src)
	for i := 1; i <= count; i++ {
		refs[i] = groupRef{num: numbers[i]}
		if n := re.GroupNameFromNumber(numbers[i]); n != strconv.Itoa(numbers[i]) {
			names[i] = n
		}
	}
	return refs, names
}

type javaPattern struct {
	engine *javaEngine
	source string
	src    string // after literal escaping
	flags  Flags
	re     *regexp2.Regexp
	refs   []groupRef
	names  []string

	full    *regexp2.Regexp // anchored at both ends, compiled on first use
	fullErr error
}

func (p *javaPattern) Source() string       { return p.source }
func (p *javaPattern) Flags() Flags         { return p.flags }
func (p *javaPattern) GroupCount() int      { return len(p.refs) - 1 }
func (p *javaPattern) GroupNames() []string { return append([]string(nil), p.names...) }
func (p *javaPattern) Close()               {}

func (p *javaPattern) GroupIndex(name string) (int, error) {
	return groupIndex(p.names, name)
}

func (p *javaPattern) Matcher(text string) Matcher {
	return &javaMatcher{p: p, text: text}
}

func (p *javaPattern) anchored() (*regexp2.Regexp, error) {
	if p.full == nil && p.fullErr == nil {
		body := p.src
		if p.flags.Has(Comments) {
			body += "\n" // end a trailing # comment before the closing paren
		}
		p.full, p.fullErr = p.engine.compile(`\A(?:`+body+`)\z`, p.flags)
	}
	return p.full, p.fullErr
}

type javaMatcher struct {
	p    *javaPattern
	text string
	iter *regexp2.Match // position of the Find walk
	cur  *regexp2.Match
	done bool
	err  error
}

func (m *javaMatcher) Find() bool {
	if m.done {
		return false
	}
	var next *regexp2.Match
	var err error
	if m.iter == nil {
		next, err = m.p.re.FindStringMatch(m.text)
	} else {
		next, err = m.p.re.FindNextMatch(m.iter)
	}
	if err != nil || next == nil {
		m.err = err
		m.done = true
		m.cur = nil
		return false
	}
	m.iter, m.cur = next, next
	return true
}

func (m *javaMatcher) LookingAt() bool {
	m.Reset()
	first, err := m.p.re.FindStringMatch(m.text)
	if err != nil {
		m.err = err
		return false
	}
	// the scan tries position 0 first, so a match there is the leftmost one
	if first == nil || first.Index != 0 {
		return false
	}
	m.cur = first
	return true
}

func (m *javaMatcher) Matches() bool {
	m.Reset()
	full, err := m.p.anchored()
	if err != nil {
		m.err = err
		return false
	}
	match, err := full.FindStringMatch(m.text)
	if err != nil {
		m.err = err
		return false
	}
	m.cur = match
	return match != nil
}

func (m *javaMatcher) Reset() {
	m.iter, m.cur = nil, nil
	m.done = false
	m.err = nil
}

func (m *javaMatcher) group(g int) *regexp2.Group {
	if m.cur == nil || g < 0 || g >= len(m.p.refs) {
		return nil
	}
	var grp *regexp2.Group
	if ref := m.p.refs[g]; ref.name != "" {
		grp = m.cur.GroupByName(ref.name)
	} else {
		grp = m.cur.GroupByNumber(ref.num)
	}
	if grp == nil || len(grp.Captures) == 0 {
		return nil
	}
	return grp
}

func (m *javaMatcher) Start(g int) int {
	if grp := m.group(g); grp != nil {
		return grp.Index
	}
	return -1
}

func (m *javaMatcher) End(g int) int {
	if grp := m.group(g); grp != nil {
		return grp.Index + grp.Length
	}
	return -1
}

func (m *javaMatcher) Group(g int) (string, bool) {
	if grp := m.group(g); grp != nil {
		return grp.String(), true
	}
	return "", false
}

func (m *javaMatcher) GroupCount() int { return m.p.GroupCount() }
func (m *javaMatcher) Err() error      { return m.err }
