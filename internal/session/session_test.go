package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/regextester/internal/dispatch"
	"github.com/bethropolis/regextester/internal/engine"
	"github.com/bethropolis/regextester/internal/highlight"
	"github.com/bethropolis/regextester/internal/offset"
	"github.com/bethropolis/regextester/internal/session"
)

func newSession(t *testing.T, in session.Input) (*session.Session, *session.Recorder) {
	t.Helper()
	eng, err := engine.New(engine.DialectJava, engine.Options{})
	require.NoError(t, err)
	rec := session.NewRecorder(len([]rune(in.Pattern)), len([]rune(in.Target)))
	s := session.New(rec, eng, offset.LF, nil)
	s.SetInput(in)
	return s, rec
}

func span(c highlight.Color, start, end int) highlight.Span {
	return highlight.New(c, start, end, true)
}

func TestRecompute_PaintsMatches(t *testing.T) {
	s, rec := newSession(t, session.Input{Pattern: "a", Target: "banana", Strategy: dispatch.Find})
	res, err := s.Recompute()
	require.NoError(t, err)
	assert.Equal(t, 3, res.MatchCount)
	assert.Equal(t,
		[]highlight.Span{span(highlight.Match, 1, 1), span(highlight.Match, 3, 3), span(highlight.Match, 5, 5)},
		rec.Canvas(highlight.TargetSurface).Runs())
	assert.Equal(t, "0. a\n\n0. a\n\n0. a\n\n", rec.Auxiliary)
	assert.Equal(t, dispatch.Find, s.State().LastStrategy)
}

func TestRecompute_StrategyChangeClearsAuxiliaryFirst(t *testing.T) {
	in := session.Input{Pattern: ",", Target: "a,b", Strategy: dispatch.Split}
	s, rec := newSession(t, in)
	_, err := s.Recompute()
	require.NoError(t, err)
	_, err = s.Recompute()
	require.NoError(t, err)
	assert.Equal(t, []string{"", "0: a\n1: b\n", "0: a\n1: b\n"}, rec.AuxWrites)

	in.Strategy = dispatch.SplitWithDelimiters
	s.SetInput(in)
	_, err = s.Recompute()
	require.NoError(t, err)
	assert.Equal(t, []string{"", "0: a\n1: ,\n2: b\n"}, rec.AuxWrites[3:])
}

func TestRecompute_LookingAtLeavesNoStaleAuxiliary(t *testing.T) {
	in := session.Input{Pattern: "b", Target: "banana", Strategy: dispatch.Find}
	s, rec := newSession(t, in)
	_, err := s.Recompute()
	require.NoError(t, err)
	require.NotEmpty(t, rec.Auxiliary)

	in.Strategy = dispatch.LookingAt
	s.SetInput(in)
	_, err = s.Recompute()
	require.NoError(t, err)
	assert.Empty(t, rec.Auxiliary)
	assert.Equal(t, []highlight.Span{span(highlight.Match, 0, 0)}, rec.Canvas(highlight.TargetSurface).Runs())
}

func TestRecompute_SyntaxErrorClearsEverything(t *testing.T) {
	s, rec := newSession(t, session.Input{Pattern: "a", Target: "banana", Strategy: dispatch.Find})
	_, err := s.Recompute()
	require.NoError(t, err)

	s.SetInput(session.Input{Pattern: "a{2,1}", Target: "banana", Strategy: dispatch.Find})
	_, err = s.Recompute()
	var se *engine.SyntaxError
	require.ErrorAs(t, err, &se)
	assert.Empty(t, rec.Canvas(highlight.TargetSurface).Runs())
	assert.Empty(t, rec.Auxiliary)
	assert.True(t, rec.Invalid[highlight.PatternSurface])
}

func TestRecompute_UnmatchedParenPaintsPatternRed(t *testing.T) {
	s, rec := newSession(t, session.Input{Pattern: "ab(c", Target: "abc", Strategy: dispatch.Find})
	_, err := s.Recompute()
	require.Error(t, err)
	assert.Equal(t, []highlight.Span{span(highlight.Error, 2, 3)}, rec.Canvas(highlight.PatternSurface).Runs())
}

func TestRecompute_BlankPattern(t *testing.T) {
	s, rec := newSession(t, session.Input{Pattern: "  ", Target: "abc", Strategy: dispatch.Find})
	res, err := s.Recompute()
	require.NoError(t, err)
	assert.True(t, res.Skipped)
	assert.Empty(t, rec.Canvas(highlight.TargetSurface).Runs())
	assert.Empty(t, rec.Auxiliary)
}

func TestRecompute_BadTemplateMarksSecondary(t *testing.T) {
	in := session.Input{Pattern: "a", Target: "banana", Strategy: dispatch.ReplaceAll, Secondary: `oops\`}
	s, rec := newSession(t, in)
	_, err := s.Recompute()
	require.NoError(t, err)
	assert.True(t, rec.Invalid[highlight.SecondarySurface])

	in.Secondary = "o"
	s.SetInput(in)
	_, err = s.Recompute()
	require.NoError(t, err)
	assert.False(t, rec.Invalid[highlight.SecondarySurface])
	assert.Equal(t, "bonono", rec.Auxiliary)
}

func TestCaretMoved_FlashesPairThenDefersGroup(t *testing.T) {
	s, rec := newSession(t, session.Input{Pattern: `(\d)-(\d)`, Target: "1-2 3-4", Strategy: dispatch.Find})
	_, err := s.Recompute()
	require.NoError(t, err)

	s.CaretMoved(6) // right after the second '('
	pat := rec.Canvas(highlight.PatternSurface)
	assert.Equal(t, highlight.Group, pat.At(5))
	assert.Equal(t, highlight.Group, pat.At(8))
	assert.Equal(t, highlight.Background, pat.At(6))

	// the target is untouched until the deferred task runs
	assert.Equal(t, highlight.Match, rec.Canvas(highlight.TargetSurface).At(2))
	require.True(t, s.RunDeferred())
	target := rec.Canvas(highlight.TargetSurface)
	assert.Equal(t, highlight.Group, target.At(2))
	assert.Equal(t, highlight.Group, target.At(6))
	assert.Equal(t, highlight.Match, target.At(0))
	assert.Equal(t, 2, s.State().LastHighlightedGroup)

	// moving away restores the plain match paint
	s.CaretMoved(3)
	assert.False(t, s.RunDeferred())
	assert.Equal(t, highlight.Match, target.At(2))
	assert.Equal(t, 0, s.State().LastHighlightedGroup)
}

func TestCaretMoved_LastPostWins(t *testing.T) {
	s, rec := newSession(t, session.Input{Pattern: `(a)(b)`, Target: "ab", Strategy: dispatch.Find})
	_, err := s.Recompute()
	require.NoError(t, err)

	s.CaretMoved(1)
	s.CaretMoved(4)
	require.True(t, s.RunDeferred())
	assert.False(t, s.RunDeferred())

	target := rec.Canvas(highlight.TargetSurface)
	assert.Equal(t, highlight.Match, target.At(0))
	assert.Equal(t, highlight.Group, target.At(1))
	assert.Equal(t, 2, s.State().LastHighlightedGroup)
}

func TestNamedGroups(t *testing.T) {
	in := session.Input{Pattern: `(?<key>\w+)=(?<val>\w+)`, Target: "a=1", Strategy: dispatch.Find}
	s, rec := newSession(t, in)
	_, err := s.Recompute()
	require.NoError(t, err)

	assert.Equal(t, []string{"key", "val"}, s.DescribeNamedGroups())
	assert.Equal(t, "0: key\n1: val\n", rec.Auxiliary)

	name, ok, err := s.NextNamedGroup()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "key", name)
	assert.Empty(t, rec.Auxiliary)
	assert.Equal(t, []highlight.Span{span(highlight.Group, 0, 0), span(highlight.Match, 1, 2)},
		rec.Canvas(highlight.TargetSurface).Runs())

	name, _, err = s.NextNamedGroup()
	require.NoError(t, err)
	assert.Equal(t, "val", name)
	assert.Equal(t, 2, s.State().LastHighlightedGroup)

	require.NoError(t, s.SelectNamedGroup("nope"))
	assert.Equal(t, []highlight.Span{span(highlight.Match, 0, 2)}, rec.Canvas(highlight.TargetSurface).Runs())
}

func TestSelectGroup(t *testing.T) {
	s, rec := newSession(t, session.Input{Pattern: `(\w)(\d)`, Target: "x a1 b2", Strategy: dispatch.Find})
	_, err := s.Recompute()
	require.NoError(t, err)

	require.NoError(t, s.SelectGroup(2))
	assert.Equal(t, 2, s.State().LastHighlightedGroup)
	assert.Equal(t, []highlight.Span{
		span(highlight.Match, 2, 2), span(highlight.Group, 3, 3),
		span(highlight.Match, 5, 5), span(highlight.Group, 6, 6),
	}, rec.Canvas(highlight.TargetSurface).Runs())
}
