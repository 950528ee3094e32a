package engine

import (
	"github.com/bethropolis/regextester/internal/offset"
)

// indexRegexp is a compiled pattern of a library that reports byte offsets
// and numbers groups left to right.
type indexRegexp interface {
	// findAll returns up to n matches, all of them when n < 0, as submatch
	// index pairs. Unset groups are -1.
	findAll(text string, n int) ([][]int, error)
	// groupNames has one entry per group plus one for group 0.
	groupNames() []string
	close()
}

type compileIndexFunc func(src string, flags Flags) (indexRegexp, error)

// indexEngine wraps the byte-offset libraries.
type indexEngine struct {
	dialect Dialect
	compile compileIndexFunc
}

func (e *indexEngine) Dialect() Dialect { return e.dialect }

func (e *indexEngine) Compile(expr string, flags Flags) (Pattern, error) {
	re, err := e.compile(expr, flags)
	if err != nil {
		var se *SyntaxError
		if asSyntaxError(err, &se) {
			se.Pattern = expr
			return nil, se
		}
		return nil, &SyntaxError{Pattern: expr, Index: -1, Message: err.Error(), Err: err}
	}
	return &indexPattern{engine: e, source: expr, flags: flags, main: re, names: re.groupNames()}, nil
}

type indexPattern struct {
	engine *indexEngine
	source string
	flags  Flags
	main   indexRegexp
	names  []string

	full    indexRegexp
	fullErr error
}

func (p *indexPattern) Source() string       { return p.source }
func (p *indexPattern) Flags() Flags         { return p.flags }
func (p *indexPattern) GroupCount() int      { return len(p.names) - 1 }
func (p *indexPattern) GroupNames() []string { return append([]string(nil), p.names...) }

func (p *indexPattern) GroupIndex(name string) (int, error) {
	return groupIndex(p.names, name)
}

func (p *indexPattern) Close() {
	p.main.close()
	if p.full != nil {
		p.full.close()
	}
}

func (p *indexPattern) Matcher(text string) Matcher {
	return &indexMatcher{p: p, text: text}
}

// anchored compiles the whole-text variant used by Matches. The wrapper
// group is non-capturing, so group numbers are unchanged.
func (p *indexPattern) anchored() (indexRegexp, error) {
	if p.full == nil && p.fullErr == nil {
		src := p.source
		if p.flags.Has(Literal) {
			src = quoteLiteral(src)
		}
		if p.flags.Has(Comments) {
			src += "\n" // end a trailing # comment before the closing paren
		}
		p.full, p.fullErr = p.engine.compile(`\A(?:`+src+`)\z`, p.flags&^Literal)
	}
	return p.full, p.fullErr
}

type indexMatcher struct {
	p     *indexPattern
	text  string
	table offset.RuneTable

	all   [][]int // every match of the Find walk, computed on first Find
	ready bool
	next  int
	cur   []int
	err   error
}

func (m *indexMatcher) Find() bool {
	if !m.ready {
		m.all, m.err = m.p.main.findAll(m.text, -1)
		m.ready = true
		m.next = 0
	}
	if m.next >= len(m.all) {
		m.cur = nil
		return false
	}
	m.cur = m.all[m.next]
	m.next++
	return true
}

func (m *indexMatcher) LookingAt() bool {
	m.Reset()
	if m.Find() && m.cur[0] == 0 {
		return true
	}
	m.cur = nil
	return false
}

func (m *indexMatcher) Matches() bool {
	m.Reset()
	full, err := m.p.anchored()
	if err != nil {
		m.err = err
		return false
	}
	found, err := full.findAll(m.text, 1)
	if err != nil {
		m.err = err
		return false
	}
	if len(found) == 0 {
		return false
	}
	m.cur = found[0]
	return true
}

func (m *indexMatcher) Reset() {
	m.ready = false
	m.all = nil
	m.cur = nil
	m.err = nil
}

func (m *indexMatcher) bounds(g int) (int, int, bool) {
	if m.cur == nil || g < 0 || 2*g+1 >= len(m.cur) || m.cur[2*g] < 0 {
		return 0, 0, false
	}
	return m.cur[2*g], m.cur[2*g+1], true
}

func (m *indexMatcher) runeAt(b int) int {
	if m.table == nil {
		m.table = offset.NewRuneTable(m.text)
	}
	return m.table.Rune(b)
}

func (m *indexMatcher) Start(g int) int {
	s, _, ok := m.bounds(g)
	if !ok {
		return -1
	}
	return m.runeAt(s)
}

func (m *indexMatcher) End(g int) int {
	_, e, ok := m.bounds(g)
	if !ok {
		return -1
	}
	return m.runeAt(e)
}

func (m *indexMatcher) Group(g int) (string, bool) {
	s, e, ok := m.bounds(g)
	if !ok {
		return "", false
	}
	return m.text[s:e], true
}

func (m *indexMatcher) GroupCount() int { return m.p.GroupCount() }
func (m *indexMatcher) Err() error      { return m.err }
