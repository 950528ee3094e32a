// Package correlate finds where one capture group of the pattern landed in
// the target text, by number or by name.
package correlate

import (
	"fmt"

	"github.com/bethropolis/regextester/internal/engine"
	"github.com/bethropolis/regextester/internal/highlight"
	"github.com/bethropolis/regextester/internal/logger"
	"github.com/bethropolis/regextester/internal/offset"
)

// GroupRef designates a group by 1-based index or, when Name is set, by name.
type GroupRef struct {
	Index int
	Name  string
}

func ByIndex(i int) GroupRef     { return GroupRef{Index: i} }
func ByName(n string) GroupRef   { return GroupRef{Name: n} }
func (r GroupRef) IsNamed() bool { return r.Name != "" }

func (r GroupRef) String() string {
	if r.IsNamed() {
		return fmt.Sprintf("group <%s>", r.Name)
	}
	return fmt.Sprintf("group %d", r.Index)
}

// Correlator runs group lookups with a fixed engine and line ending.
type Correlator struct {
	engine engine.Engine
	ending offset.LineEnding
}

func New(eng engine.Engine, ending offset.LineEnding) *Correlator {
	return &Correlator{engine: eng, ending: ending}
}

// Highlight runs a full find pass and returns one inclusive Group span per
// match in which the designated group captured at least one character. An unknown name or an
// out-of-range index yields an empty list and no error; only a pattern the
// engine rejects is reported.
func (c *Correlator) Highlight(expr, text string, flags engine.Flags, ref GroupRef) ([]highlight.Span, error) {
	p, err := c.engine.Compile(expr, flags)
	if err != nil {
		return nil, err
	}
	defer p.Close()

	group := ref.Index
	if ref.IsNamed() {
		group, err = p.GroupIndex(ref.Name)
		if err != nil {
			logger.DebugTagf("correlate", "%v: %v", ref, err)
			return nil, nil
		}
	}
	if group < 0 || group > p.GroupCount() {
		logger.DebugTagf("correlate", "%v out of range (pattern has %d)", ref, p.GroupCount())
		return nil, nil
	}

	mapper := offset.NewMapper(text, c.ending)
	var spans []highlight.Span
	m := p.Matcher(text)
	for m.Find() {
		start, end := m.Start(group), m.End(group)
		if start < 0 || start == end {
			continue
		}
		s, e := mapper.Range(start, end)
		spans = append(spans, highlight.New(highlight.Group, s, e, true))
	}
	if err := m.Err(); err != nil {
		return nil, fmt.Errorf("%v: %w", ref, err)
	}
	return spans, nil
}
