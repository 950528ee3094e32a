package app

import (
	"path/filepath"

	"github.com/bethropolis/regextester/internal/dispatch"
	"github.com/bethropolis/regextester/internal/engine"
	"github.com/bethropolis/regextester/internal/event"
	"github.com/bethropolis/regextester/internal/highlight"
	"github.com/bethropolis/regextester/internal/input"
	"github.com/bethropolis/regextester/internal/logger"
	"github.com/bethropolis/regextester/internal/statusbar"
	"github.com/bethropolis/regextester/internal/tui"
)

// draw clears the screen and redraws all components.
func (a *App) draw() {
	current := a.themeManager.Current()
	screen := a.tuiManager.GetScreen()
	width, height := a.tuiManager.Size()
	layout := tui.ComputeLayout(width, height, a.cfg.Tester.StatusBarHeight)
	logger.DebugTagf("ui", "draw: screen %dx%d, focus %v", width, height, a.focus)

	a.tuiManager.Clear()

	rects := [paneCount]tui.Rect{
		panePattern:   layout.Pattern,
		paneTarget:    layout.Target,
		paneSecondary: layout.Secondary,
		paneAuxiliary: layout.Auxiliary,
	}
	cursorVisible := false
	for id := panePattern; id < paneCount; id++ {
		cx, cy, ok := tui.DrawPane(screen, rects[id], a.paneView(id), &a.viewports[id], current)
		if id == a.focus && ok {
			screen.ShowCursor(cx, cy)
			cursorVisible = true
		}
	}
	if !cursorVisible {
		screen.HideCursor()
	}

	tui.DrawLabels(screen, layout.Strategies, a.strategyLabels(), current)
	tui.DrawLabels(screen, layout.Flags, a.flagLabels(), current)
	a.statusBar.Draw(screen, layout.Status.Y, width)
	a.tuiManager.Show()
}

func (a *App) paneView(id paneID) tui.PaneView {
	view := tui.PaneView{
		Title:   a.paneTitle(id),
		Buffer:  a.panes[id],
		Focused: id == a.focus,
	}
	switch id {
	case panePattern:
		view.Canvas = a.view.Canvas(highlight.PatternSurface)
		view.Invalid = a.view.Invalid[highlight.PatternSurface]
	case paneTarget:
		view.Canvas = a.view.Canvas(highlight.TargetSurface)
	case paneSecondary:
		view.Invalid = a.view.Invalid[highlight.SecondarySurface]
	}
	return view
}

func (a *App) paneTitle(id paneID) string {
	switch id {
	case paneTarget:
		if path := a.panes[paneTarget].FilePath(); path != "" {
			return "Target: " + filepath.Base(path)
		}
		return "Target"
	case paneSecondary:
		if a.strategy == dispatch.SplitWithLimit || a.strategy == dispatch.SplitWithDelimiters {
			return "Limit"
		}
		if a.strategy.UsesSecondary() {
			return "Replacement"
		}
		return "Secondary (unused)"
	case paneAuxiliary:
		return "Output"
	}
	return "Pattern"
}

func (a *App) strategyLabels() []tui.Label {
	strategies := dispatch.Strategies()
	labels := make([]tui.Label, len(strategies))
	for i, s := range strategies {
		labels[i] = tui.Label{Key: input.StrategyKey(s), Text: s.Label(), Active: s == a.strategy}
	}
	return labels
}

func (a *App) flagLabels() []tui.Label {
	flags := engine.AllFlags()
	labels := make([]tui.Label, 0, len(flags)+1)
	for _, f := range flags {
		labels = append(labels, tui.Label{Key: input.FlagKey(f), Text: f.Names()[0], Active: a.flags.Has(f)})
	}
	return append(labels, tui.Label{Key: "engine", Text: string(a.dialect)})
}

// updateStatusBarContent pushes the tester state to the status bar.
func (a *App) updateStatusBarContent(res event.RecomputedData) {
	info := statusbar.Info{
		Engine:     string(a.dialect),
		Strategy:   string(a.strategy),
		Flags:      a.flags.String(),
		Focus:      a.focus.String(),
		MatchCount: res.MatchCount,
		Skipped:    res.Skipped,
	}
	if path := a.panes[paneTarget].FilePath(); path != "" {
		info.TargetFile = filepath.Base(path)
	}
	a.statusBar.SetInfo(info)
}

// refreshStatus updates the status bar from the last cycle, e.g. after a focus change.
func (a *App) refreshStatus() {
	last := a.session.LastResult()
	a.updateStatusBarContent(event.RecomputedData{MatchCount: last.MatchCount, Skipped: last.Skipped})
}
