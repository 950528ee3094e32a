package tui

import (
	"strings"
	"testing"

	"github.com/bethropolis/regextester/internal/buffer"
	"github.com/bethropolis/regextester/internal/highlight"
	"github.com/bethropolis/regextester/internal/theme"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSim(t *testing.T, w, h int) *TUI {
	t.Helper()
	ui, err := NewWithScreen(tcell.NewSimulationScreen("UTF-8"), tcell.StyleDefault)
	require.NoError(t, err)
	ui.GetScreen().SetSize(w, h)
	t.Cleanup(ui.Close)
	return ui
}

func rowText(s tcell.Screen, y, x0, x1 int) string {
	var b strings.Builder
	for x := x0; x < x1; x++ {
		r, _, _, _ := s.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func TestComputeLayout(t *testing.T) {
	l := ComputeLayout(100, 30, 1)
	assert.Equal(t, Rect{X: 0, Y: 29, W: 100, H: 1}, l.Status)
	assert.Equal(t, Rect{X: 0, Y: 0, W: 100, H: 3}, l.Pattern)
	assert.Equal(t, Rect{X: 0, Y: 3, W: 100, H: 1}, l.Strategies)
	assert.Equal(t, Rect{X: 0, Y: 4, W: 100, H: 1}, l.Flags)
	assert.Equal(t, Rect{X: 0, Y: 5, W: 60, H: 24}, l.Target)
	assert.Equal(t, Rect{X: 60, Y: 5, W: 40, H: 3}, l.Secondary)
	assert.Equal(t, Rect{X: 60, Y: 8, W: 40, H: 21}, l.Auxiliary)

	narrow := ComputeLayout(30, 10, 1)
	assert.Equal(t, 15, narrow.Target.W)
	assert.Equal(t, 15, narrow.Auxiliary.W)

	tiny := ComputeLayout(10, 3, 1)
	assert.True(t, tiny.Target.Empty())
	assert.Equal(t, 2, tiny.Pattern.H)

	assert.Equal(t, Layout{}, ComputeLayout(0, 10, 1))
}

func TestDrawPaneColorsFromCanvas(t *testing.T) {
	ui := newSim(t, 12, 5)
	s := ui.GetScreen()

	pane := buffer.NewPane()
	pane.SetText("banana\nab")
	canvas := highlight.NewCanvas(pane.Len())
	canvas.Paint(false, highlight.New(highlight.Match, 1, 1, true), highlight.New(highlight.Group, 7, 8, true))

	th := &theme.ClassicLight
	var vp Viewport
	cx, cy, ok := DrawPane(s, Rect{X: 0, Y: 0, W: 12, H: 5}, PaneView{Title: "T", Buffer: pane, Canvas: canvas, Focused: true}, &vp, th)
	s.Show()

	assert.True(t, ok)
	assert.Equal(t, 1, cx)
	assert.Equal(t, 1, cy)
	assert.Equal(t, "banana", rowText(s, 1, 1, 7))
	assert.Equal(t, "ab", rowText(s, 2, 1, 3))

	_, _, style, _ := s.GetContent(2, 1) // 'a' at offset 1
	assert.Equal(t, th.PaintStyle(highlight.Match), style)
	_, _, style, _ = s.GetContent(1, 1)
	assert.Equal(t, th.GetStyle(theme.StyleDefault), style)
	_, _, style, _ = s.GetContent(1, 2) // 'a' at offset 7
	assert.Equal(t, th.PaintStyle(highlight.Group), style)

	_, _, style, _ = s.GetContent(0, 0)
	assert.Equal(t, th.BorderStyle(true, false), style)
	r, _, _, _ := s.GetContent(3, 0)
	assert.Equal(t, 'T', r)
}

func TestDrawPaneInvalidBorderAndScroll(t *testing.T) {
	ui := newSim(t, 8, 4)
	s := ui.GetScreen()

	pane := buffer.NewPane()
	pane.SetText("0123456789")
	pane.End()

	th := &theme.DevComfortDark
	var vp Viewport
	cx, cy, ok := DrawPane(s, Rect{X: 0, Y: 0, W: 8, H: 3}, PaneView{Buffer: pane, Invalid: true}, &vp, th)
	s.Show()

	require.True(t, ok)
	assert.Equal(t, 5, vp.Left, "caret after the last rune needs a free cell")
	assert.Equal(t, 6, cx)
	assert.Equal(t, 1, cy)
	assert.Equal(t, "56789", rowText(s, 1, 1, 6))

	_, _, style, _ := s.GetContent(0, 1)
	assert.Equal(t, th.BorderStyle(false, true), style)
}

func TestCalculateVisualColumn(t *testing.T) {
	assert.Equal(t, 0, calculateVisualColumn([]byte("abc"), 0))
	assert.Equal(t, 2, calculateVisualColumn([]byte("abc"), 2))
	assert.Equal(t, 4, calculateVisualColumn([]byte("世界x"), 2))
	assert.Equal(t, 5, calculateVisualColumn([]byte("a\tb"), 3))
}

func TestDrawLabels(t *testing.T) {
	ui := newSim(t, 30, 1)
	s := ui.GetScreen()
	th := &theme.DevComfortDark
	DrawLabels(s, Rect{X: 0, Y: 0, W: 30, H: 1}, []Label{{Key: "F1", Text: "find", Active: true}, {Key: "F2", Text: "split"}}, th)
	s.Show()

	assert.Equal(t, " F1 find  F2 split", rowText(s, 0, 0, 18))
	_, _, style, _ := s.GetContent(4, 0)
	assert.Equal(t, th.GetStyle(theme.StyleLabelActive), style)
	_, _, style, _ = s.GetContent(13, 0)
	assert.Equal(t, th.GetStyle(theme.StyleLabel), style)
}
