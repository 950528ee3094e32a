// Package session owns the state of one tester window and runs the
// recompute cycle: structural analysis of the pattern, strategy dispatch
// over the target, and the group highlighting that follows the caret.
package session

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/bethropolis/regextester/internal/correlate"
	"github.com/bethropolis/regextester/internal/dispatch"
	"github.com/bethropolis/regextester/internal/engine"
	"github.com/bethropolis/regextester/internal/highlight"
	"github.com/bethropolis/regextester/internal/logger"
	"github.com/bethropolis/regextester/internal/offset"
	"github.com/bethropolis/regextester/internal/pattern"
	"github.com/bethropolis/regextester/internal/schedule"
)

// View receives everything the session paints.
type View interface {
	Paint(surface highlight.Surface, reset bool, spans ...highlight.Span)
	SetAuxiliary(text string)
	SetInvalid(surface highlight.Surface, invalid bool)
}

// State is what the session remembers between cycles.
type State struct {
	// LastStrategy is the strategy of the previous cycle; a change clears
	// the auxiliary text before the new output is written.
	LastStrategy dispatch.Strategy
	// LastHighlightedGroup is the 1-based group painted over the target, 0 for none.
	LastHighlightedGroup int
}

// Input is the current content of the editable panes.
type Input struct {
	Pattern   string
	Target    string // engine text, line breaks per the session's LineEnding
	Secondary string
	Strategy  dispatch.Strategy
	Flags     engine.Flags
}

// Session is used from a single goroutine.
type Session struct {
	ID uuid.UUID

	view       View
	dispatcher *dispatch.Dispatcher
	correlator *correlate.Correlator
	slot       *schedule.Slot

	state     State
	input     Input
	last      dispatch.Result
	namedNext int
}

// New wires a session. A nil slot gets a private one that the caller drives
// through RunDeferred.
func New(view View, eng engine.Engine, ending offset.LineEnding, slot *schedule.Slot) *Session {
	if slot == nil {
		slot = schedule.NewSlot(nil)
	}
	s := &Session{
		ID:         uuid.New(),
		view:       view,
		dispatcher: dispatch.New(eng, ending),
		correlator: correlate.New(eng, ending),
		slot:       slot,
	}
	logger.DebugTagf("session", "session %s started (engine %s, line ending %s)", s.ID, eng.Dialect(), ending)
	return s
}

func (s *Session) State() State                { return s.state }
func (s *Session) Input() Input                { return s.input }
func (s *Session) LastResult() dispatch.Result { return s.last }

// SetInput replaces the pane contents. It does not recompute.
func (s *Session) SetInput(in Input) {
	if in.Pattern != s.input.Pattern {
		s.namedNext = 0
	}
	s.input = in
}

// RunDeferred runs the task queued by the last caret move, if any.
func (s *Session) RunDeferred() bool {
	return s.slot.Run()
}

// Recompute runs one full cycle over the current input. A pattern the
// engine rejects clears the target paint and the auxiliary text, marks the
// pattern invalid and is returned as *engine.SyntaxError.
func (s *Session) Recompute() (dispatch.Result, error) {
	in := s.input
	if in.Strategy == "" {
		in.Strategy = dispatch.Find
	}
	if in.Strategy != s.state.LastStrategy {
		s.view.SetAuxiliary("")
		s.state.LastStrategy = in.Strategy
	}
	s.state.LastHighlightedGroup = 0
	s.view.SetInvalid(highlight.PatternSurface, false)
	s.view.SetInvalid(highlight.SecondarySurface, false)
	s.paintStructure()

	res, err := s.dispatcher.Run(dispatch.Request{
		Pattern:   in.Pattern,
		Text:      in.Target,
		Strategy:  in.Strategy,
		Flags:     in.Flags,
		Secondary: in.Secondary,
	})
	if err != nil {
		s.last = dispatch.Result{}
		s.view.Paint(highlight.TargetSurface, true)
		s.view.SetAuxiliary("")
		s.view.SetInvalid(highlight.PatternSurface, true)
		logger.DebugTagf("session", "cycle aborted: %v", err)
		return res, err
	}
	s.last = res

	s.view.Paint(highlight.TargetSurface, true, res.Spans...)
	if res.Skipped {
		s.view.SetAuxiliary("")
		return res, nil
	}
	if in.Strategy.WritesAuxiliary() {
		s.view.SetAuxiliary(res.Auxiliary)
	}
	s.view.SetInvalid(highlight.SecondarySurface, res.SecondaryInvalid)
	return res, nil
}

// paintStructure clears the pattern surface, or paints it red from an
// unmatched parenthesis to the end.
func (s *Session) paintStructure() ([]highlight.Span, bool) {
	spans, err := pattern.ParseGroupRanges(s.input.Pattern)
	var unmatched *pattern.UnmatchedLeftParenError
	if errors.As(err, &unmatched) {
		end := utf8.RuneCountInString(s.input.Pattern) - 1
		s.view.Paint(highlight.PatternSurface, true, highlight.New(highlight.Error, unmatched.Index, end, true))
		return nil, false
	}
	s.view.Paint(highlight.PatternSurface, true)
	return spans, true
}

// CaretMoved reacts to the pattern caret. When it sits right after a
// parenthesis of a capture group the pair is flashed and, after the
// current event, that group's matches are painted over the target.
func (s *Session) CaretMoved(caret int) {
	spans, ok := s.paintStructure()
	if !ok {
		return
	}
	idx, found := pattern.GroupAtCaret(spans, caret)
	if !found {
		if s.state.LastHighlightedGroup != 0 {
			s.state.LastHighlightedGroup = 0
			s.view.Paint(highlight.TargetSurface, true, s.last.Spans...)
		}
		return
	}
	s.view.Paint(highlight.PatternSurface, false, spans[idx])
	group := idx + 1
	s.slot.Post(func() {
		s.highlightGroup(correlate.ByIndex(group))
	})
}

// SelectNamedGroup paints the matches of a named group over the target and
// clears the auxiliary text.
func (s *Session) SelectNamedGroup(name string) error {
	s.view.SetAuxiliary("")
	return s.highlightGroup(correlate.ByName(name))
}

// SelectGroup paints the matches of the 1-based group n over the target.
func (s *Session) SelectGroup(n int) error {
	return s.highlightGroup(correlate.ByIndex(n))
}

// NextNamedGroup cycles through the pattern's named groups and selects the
// next one. It returns false when the pattern has none.
func (s *Session) NextNamedGroup() (string, bool, error) {
	names := pattern.NamedGroups(s.input.Pattern)
	if len(names) == 0 {
		return "", false, nil
	}
	name := names[s.namedNext%len(names)]
	s.namedNext = (s.namedNext + 1) % len(names)
	return name, true, s.SelectNamedGroup(name)
}

// DescribeNamedGroups writes the named groups into the auxiliary text.
func (s *Session) DescribeNamedGroups() []string {
	names := pattern.NamedGroups(s.input.Pattern)
	var b strings.Builder
	for i, n := range names {
		fmt.Fprintf(&b, "%d: %s\n", i, n)
	}
	s.view.SetAuxiliary(b.String())
	return names
}

// highlightGroup repaints the target with the last match spans and the
// group's spans on top. It reads the input current at call time.
func (s *Session) highlightGroup(ref correlate.GroupRef) error {
	spans, err := s.correlator.Highlight(s.input.Pattern, s.input.Target, s.input.Flags, ref)
	if err != nil {
		s.view.SetInvalid(highlight.PatternSurface, true)
		return err
	}
	s.view.Paint(highlight.TargetSurface, true, s.last.Spans...)
	s.view.Paint(highlight.TargetSurface, false, spans...)

	s.state.LastHighlightedGroup = ref.Index
	if ref.IsNamed() {
		if n, err := s.groupNumber(ref.Name); err == nil {
			s.state.LastHighlightedGroup = n
		}
	}
	logger.DebugTagf("session", "%v: %d span(s)", ref, len(spans))
	return nil
}

// groupNumber is the 1-based number of a named group.
func (s *Session) groupNumber(name string) (int, error) {
	groups, err := pattern.Groups(s.input.Pattern)
	if err != nil {
		return 0, err
	}
	for i, g := range groups {
		if g.Name == name {
			return i + 1, nil
		}
	}
	return 0, engine.ErrNoSuchGroup
}
