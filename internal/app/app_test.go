package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bethropolis/regextester/internal/clipboard"
	"github.com/bethropolis/regextester/internal/config"
	"github.com/bethropolis/regextester/internal/event"
	"github.com/bethropolis/regextester/internal/highlight"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, target string) *App {
	t.Helper()
	path := filepath.Join(t.TempDir(), "target.txt")
	require.NoError(t, os.WriteFile(path, []byte(target), 0o644))

	cfg := config.NewDefaultConfig()
	cfg.Tester.WatchTarget = false
	screen := tcell.NewSimulationScreen("UTF-8")
	a, err := NewApp(cfg, Options{
		TargetPath: path,
		Screen:     screen,
		Clipboard:  clipboard.NewManager(false),
	})
	require.NoError(t, err)
	screen.SetSize(100, 30)
	t.Cleanup(a.tuiManager.Close)
	a.eventManager.Dispatch(event.TypeAppReady, nil)
	return a
}

func typeText(a *App, text string) {
	for _, r := range text {
		a.HandleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func press(a *App, k tcell.Key) {
	a.HandleEvent(tcell.NewEventKey(k, 0, tcell.ModNone))
}

func alt(a *App, r rune) {
	a.HandleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModAlt))
}

func targetColors(a *App) []highlight.Color {
	c := a.view.Canvas(highlight.TargetSurface)
	out := make([]highlight.Color, c.Len())
	for i := range out {
		out[i] = c.At(i)
	}
	return out
}

func statusText(a *App) string {
	text, _ := a.statusBar.Text()
	return text
}

func TestTypingPatternPaintsTarget(t *testing.T) {
	a := newTestApp(t, "banana")
	typeText(a, "a")

	B, M := highlight.Background, highlight.Match
	assert.Equal(t, []highlight.Color{B, M, B, M, B, M}, targetColors(a))
	assert.Equal(t, "a", a.panes[panePattern].Text())

	a.statusBar.ResetTemporaryMessage()
	assert.Contains(t, statusText(a), "3 matches")
}

func TestToggleFlag(t *testing.T) {
	a := newTestApp(t, "banana")
	typeText(a, "A")
	assert.Equal(t, 0, a.session.LastResult().MatchCount)

	alt(a, 'i')
	assert.Equal(t, 3, a.session.LastResult().MatchCount)
	assert.Equal(t, "i", a.flags.String())

	alt(a, 'i')
	assert.Equal(t, 0, a.session.LastResult().MatchCount)
}

func TestSelectStrategyWritesOutput(t *testing.T) {
	a := newTestApp(t, "a,b,,c")
	typeText(a, ",")
	press(a, tcell.KeyF4)
	assert.Equal(t, "0: a\n1: b\n2: \n3: c\n", a.panes[paneAuxiliary].Text())

	press(a, tcell.KeyF1)
	aux := a.panes[paneAuxiliary].Text()
	assert.NotContains(t, aux, "3: c")
	assert.Equal(t, 3, strings.Count(aux, ","))
}

func TestReplacementFromSecondaryPane(t *testing.T) {
	a := newTestApp(t, "banana")
	typeText(a, "a")
	press(a, tcell.KeyF7)

	press(a, tcell.KeyTab)
	press(a, tcell.KeyTab)
	require.Equal(t, paneSecondary, a.focus)
	typeText(a, "X")
	assert.Equal(t, "bXnXnX", strings.TrimRight(a.panes[paneAuxiliary].Text(), "\n"))
}

func TestSyntaxErrorMarksPattern(t *testing.T) {
	a := newTestApp(t, "banana")
	typeText(a, "(")

	assert.True(t, a.view.Invalid[highlight.PatternSurface])
	assert.Equal(t, highlight.Error, a.view.Canvas(highlight.PatternSurface).At(0))
	for _, c := range targetColors(a) {
		assert.Equal(t, highlight.Background, c)
	}
	text, isMessage := a.statusBar.Text()
	assert.True(t, isMessage)
	assert.NotEmpty(t, text)

	typeText(a, "a)")
	assert.False(t, a.view.Invalid[highlight.PatternSurface])
}

func TestCaretAfterParenHighlightsGroup(t *testing.T) {
	a := newTestApp(t, "xaby")
	typeText(a, "(a)b")

	// Caret after 'b': no group under it.
	B, M, G := highlight.Background, highlight.Match, highlight.Group
	assert.Equal(t, []highlight.Color{B, M, M, B}, targetColors(a))

	press(a, tcell.KeyLeft)
	assert.Equal(t, []highlight.Color{B, G, M, B}, targetColors(a))
	pattern := a.view.Canvas(highlight.PatternSurface)
	assert.Equal(t, highlight.Group, pattern.At(0))
	assert.Equal(t, highlight.Group, pattern.At(2))
	assert.Equal(t, highlight.Background, pattern.At(1))

	press(a, tcell.KeyEnd)
	assert.Equal(t, []highlight.Color{B, M, M, B}, targetColors(a))
}

func TestNamedGroups(t *testing.T) {
	a := newTestApp(t, "2024-06")
	typeText(a, `(?<year>\d+)-(?<month>\d+)`)

	a.HandleEvent(tcell.NewEventKey(tcell.KeyCtrlG, 0, tcell.ModCtrl))
	assert.Equal(t, "0: year\n1: month\n", a.panes[paneAuxiliary].Text())

	a.HandleEvent(tcell.NewEventKey(tcell.KeyCtrlN, 0, tcell.ModCtrl))
	assert.Contains(t, statusText(a), "year")
	colors := targetColors(a)
	assert.Equal(t, highlight.Group, colors[0])
	assert.Equal(t, highlight.Match, colors[5])
	assert.Empty(t, a.panes[paneAuxiliary].Text())
}

func TestAuxiliaryPaneIsReadOnlyAndCopyable(t *testing.T) {
	a := newTestApp(t, "a,b")
	typeText(a, ",")
	press(a, tcell.KeyF4)

	press(a, tcell.KeyBacktab)
	require.Equal(t, paneAuxiliary, a.focus)
	before := a.panes[paneAuxiliary].Text()
	typeText(a, "zz")
	assert.Equal(t, before, a.panes[paneAuxiliary].Text())

	a.HandleEvent(tcell.NewEventKey(tcell.KeyCtrlY, 0, tcell.ModCtrl))
	assert.Equal(t, before, a.clipboard.Paste())
}

func TestReloadEvent(t *testing.T) {
	a := newTestApp(t, "banana")
	typeText(a, "a")
	require.NoError(t, os.WriteFile(a.panes[paneTarget].FilePath(), []byte("aaa"), 0o644))

	ev := &reloadEvent{}
	ev.SetEventNow()
	assert.True(t, a.HandleEvent(ev))
	assert.Equal(t, "aaa", a.panes[paneTarget].Text())
	assert.Equal(t, 3, a.session.LastResult().MatchCount)
	assert.Contains(t, statusText(a), "Reloaded")
}

func TestCycleTheme(t *testing.T) {
	a := newTestApp(t, "")
	before := a.themeManager.Current().Name
	a.HandleEvent(tcell.NewEventKey(tcell.KeyCtrlT, 0, tcell.ModCtrl))
	assert.NotEqual(t, before, a.themeManager.Current().Name)
	assert.Contains(t, statusText(a), "Theme:")
}

func TestQuit(t *testing.T) {
	a := newTestApp(t, "")
	assert.False(t, a.Quitting())
	press(a, tcell.KeyEscape)
	assert.True(t, a.Quitting())
}

func TestDrawShowsPanes(t *testing.T) {
	a := newTestApp(t, "banana")
	typeText(a, "an")
	a.draw()

	screen := a.tuiManager.GetScreen()
	row := func(y int) string {
		w, _ := screen.Size()
		var b strings.Builder
		for x := 0; x < w; x++ {
			r, _, _, _ := screen.GetContent(x, y)
			b.WriteRune(r)
		}
		return b.String()
	}
	assert.Contains(t, row(0), "Pattern")
	assert.Contains(t, row(1), "an")
	assert.Contains(t, row(3), "Find")
	assert.Contains(t, row(4), "Alt+i")
	assert.Contains(t, row(5), "Target: target.txt")
	assert.Contains(t, row(6), "banana")
	assert.Contains(t, row(29), "java")

	current := a.themeManager.Current()
	_, _, style, _ := screen.GetContent(2, 6)
	assert.Equal(t, current.PaintStyle(highlight.Match), style)
}

func TestUndoRedoPattern(t *testing.T) {
	a := newTestApp(t, "banana")
	typeText(a, "an")
	assert.Equal(t, 2, a.session.LastResult().MatchCount)

	a.HandleEvent(tcell.NewEventKey(tcell.KeyCtrlZ, 0, tcell.ModCtrl))
	assert.Equal(t, "a", a.panes[panePattern].Text())
	assert.Equal(t, 3, a.session.LastResult().MatchCount)

	a.HandleEvent(tcell.NewEventKey(tcell.KeyCtrlR, 0, tcell.ModCtrl))
	assert.Equal(t, "an", a.panes[panePattern].Text())
	assert.Equal(t, 2, a.session.LastResult().MatchCount)
}
