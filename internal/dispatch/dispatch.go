// Package dispatch runs one recompute of the tester: compile the pattern,
// apply the selected strategy to the target text, and produce the spans to
// paint plus the auxiliary text to show.
package dispatch

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bethropolis/regextester/internal/engine"
	"github.com/bethropolis/regextester/internal/highlight"
	"github.com/bethropolis/regextester/internal/logger"
	"github.com/bethropolis/regextester/internal/offset"
)

// Request is the input of one cycle. Text is the target as the engine sees
// it, with line breaks written per the dispatcher's LineEnding.
type Request struct {
	Pattern   string
	Text      string
	Strategy  Strategy
	Flags     engine.Flags
	Secondary string
}

// Result is what the cycle produced. Spans are in display offsets.
type Result struct {
	Spans            []highlight.Span
	Auxiliary        string
	SecondaryInvalid bool
	// Skipped is set when the pattern was blank and nothing ran.
	Skipped    bool
	MatchCount int
}

// Dispatcher is stateless; each Run compiles and matches from scratch.
type Dispatcher struct {
	Engine     engine.Engine
	LineEnding offset.LineEnding
}

// New returns a dispatcher for the engine.
func New(eng engine.Engine, ending offset.LineEnding) *Dispatcher {
	return &Dispatcher{Engine: eng, LineEnding: ending}
}

// Run executes req. A pattern the engine rejects yields *engine.SyntaxError
// and no result.
func (d *Dispatcher) Run(req Request) (Result, error) {
	if strings.TrimSpace(req.Pattern) == "" {
		return Result{Skipped: true}, nil
	}
	p, err := d.Engine.Compile(req.Pattern, req.Flags)
	if err != nil {
		logger.DebugTagf("dispatch", "compile %q failed: %v", req.Pattern, err)
		return Result{}, err
	}
	defer p.Close()

	mapper := offset.NewMapper(req.Text, d.LineEnding)
	var res Result
	switch req.Strategy {
	case Find, "":
		res, err = d.find(p, req.Text, mapper)
	case LookingAt:
		res, err = d.lookingAt(p, req.Text, mapper)
	case Matches:
		res, err = d.matches(p, req.Text, mapper)
	case Split, SplitWithLimit, SplitWithDelimiters:
		res, err = d.split(p, req, mapper)
	case ReplaceAll, ReplaceFirst:
		res, err = d.replace(p, req, mapper)
	default:
		return Result{}, fmt.Errorf("unknown strategy %q", req.Strategy)
	}
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", req.Strategy, err)
	}
	logger.DebugTagf("dispatch", "%s: %d match(es), %d aux bytes", req.Strategy, res.MatchCount, len(res.Auxiliary))
	return res, nil
}

// matchSpans returns the inclusive span of the current match. An empty
// match covers no character and yields none.
func matchSpans(m engine.Matcher, mapper *offset.Mapper) []highlight.Span {
	if m.Start(0) >= m.End(0) {
		return nil
	}
	start, end := mapper.Range(m.Start(0), m.End(0))
	return []highlight.Span{highlight.New(highlight.Match, start, end, true)}
}

// findSpans walks every match and calls each, if not nil, after recording
// it. count includes empty matches.
func findSpans(p engine.Pattern, text string, mapper *offset.Mapper, each func(engine.Matcher)) (spans []highlight.Span, count int, err error) {
	m := p.Matcher(text)
	for m.Find() {
		count++
		spans = append(spans, matchSpans(m, mapper)...)
		if each != nil {
			each(m)
		}
	}
	return spans, count, m.Err()
}

func (d *Dispatcher) find(p engine.Pattern, text string, mapper *offset.Mapper) (Result, error) {
	var aux strings.Builder
	spans, count, err := findSpans(p, text, mapper, func(m engine.Matcher) {
		writeGroups(&aux, m)
		aux.WriteByte('\n')
	})
	if err != nil {
		return Result{}, err
	}
	return Result{Spans: spans, Auxiliary: d.display(aux.String()), MatchCount: count}, nil
}

func (d *Dispatcher) lookingAt(p engine.Pattern, text string, mapper *offset.Mapper) (Result, error) {
	m := p.Matcher(text)
	if !m.LookingAt() {
		return Result{}, m.Err()
	}
	return Result{Spans: matchSpans(m, mapper), MatchCount: 1}, nil
}

func (d *Dispatcher) matches(p engine.Pattern, text string, mapper *offset.Mapper) (Result, error) {
	m := p.Matcher(text)
	if !m.Matches() {
		return Result{}, m.Err()
	}
	var aux strings.Builder
	writeGroups(&aux, m)
	return Result{
		Spans:      matchSpans(m, mapper),
		Auxiliary:  d.display(aux.String()),
		MatchCount: 1,
	}, nil
}

// writeGroups lists groups 0..n of the current match that took part in it.
func writeGroups(b *strings.Builder, m engine.Matcher) {
	for g := 0; g <= m.GroupCount(); g++ {
		if s, ok := m.Group(g); ok {
			fmt.Fprintf(b, "%d. %s\n", g, s)
		}
	}
}

func (d *Dispatcher) split(p engine.Pattern, req Request, mapper *offset.Mapper) (Result, error) {
	spans, count, err := findSpans(p, req.Text, mapper, nil)
	if err != nil {
		return Result{}, err
	}
	res := Result{Spans: spans, MatchCount: count}
	if req.Text == "" {
		return res, nil
	}

	var segments []string
	switch req.Strategy {
	case Split:
		segments, err = engine.Split(p, req.Text, 0)
	case SplitWithLimit:
		segments, err = engine.Split(p, req.Text, ParseLimit(req.Secondary))
	case SplitWithDelimiters:
		var parts, delims []string
		parts, delims, err = engine.SplitWithDelimiters(p, req.Text, ParseLimit(req.Secondary))
		segments = interleave(parts, delims)
	}
	if err != nil {
		return Result{}, err
	}

	var aux strings.Builder
	for i, s := range segments {
		fmt.Fprintf(&aux, "%d: %s\n", i, s)
	}
	res.Auxiliary = d.display(aux.String())
	return res, nil
}

func interleave(parts, delims []string) []string {
	out := make([]string, 0, len(parts)+len(delims))
	for i, p := range parts {
		out = append(out, p)
		if i < len(delims) {
			out = append(out, delims[i])
		}
	}
	return out
}

// ParseLimit reads the split limit from the secondary input. Blank,
// malformed and negative values all mean 0.
func ParseLimit(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func (d *Dispatcher) replace(p engine.Pattern, req Request, mapper *offset.Mapper) (Result, error) {
	spans, count, err := findSpans(p, req.Text, mapper, nil)
	if err != nil {
		return Result{}, err
	}
	res := Result{Spans: spans, MatchCount: count}

	var out string
	if req.Strategy == ReplaceFirst {
		out, err = engine.ReplaceFirst(p, req.Text, req.Secondary)
	} else {
		out, err = engine.ReplaceAll(p, req.Text, req.Secondary)
	}
	var te *engine.TemplateError
	if errors.As(err, &te) {
		logger.DebugTagf("dispatch", "bad replacement: %v", te)
		res.SecondaryInvalid = true
		return res, nil
	}
	if err != nil {
		return Result{}, err
	}
	out = d.display(out)
	if out != "" {
		out = strings.ReplaceAll(out, "\n", "\n>")
	}
	res.Auxiliary = out
	return res, nil
}

// display converts engine text back to display line breaks.
func (d *Dispatcher) display(s string) string {
	if d.LineEnding == offset.CRLF {
		return strings.ReplaceAll(s, "\r\n", "\n")
	}
	return s
}
