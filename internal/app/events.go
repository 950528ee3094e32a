package app

import (
	"github.com/bethropolis/regextester/internal/event"
	"github.com/bethropolis/regextester/internal/input"
	"github.com/bethropolis/regextester/internal/logger"
)

// subscribe wires the App's reactions to the event bus.
func (a *App) subscribe() {
	recompute := func(e event.Event) bool {
		a.recompute()
		return false
	}
	a.eventManager.Subscribe(event.TypePatternChanged, recompute)
	a.eventManager.Subscribe(event.TypeTargetChanged, recompute)
	a.eventManager.Subscribe(event.TypeSecondaryChanged, recompute)
	a.eventManager.Subscribe(event.TypeStrategyChanged, recompute)
	a.eventManager.Subscribe(event.TypeFlagsChanged, recompute)
	a.eventManager.Subscribe(event.TypeTargetReloaded, a.handleTargetReloaded)
	a.eventManager.Subscribe(event.TypeAppReady, recompute)
	a.eventManager.Subscribe(event.TypeCaretMoved, a.handleCaretMoved)
	a.eventManager.Subscribe(event.TypeRecomputed, a.handleRecomputed)
	a.eventManager.Subscribe(event.TypeThemeChanged, a.handleThemeChanged)
}

func (a *App) handleCaretMoved(e event.Event) bool {
	if data, ok := e.Data.(event.CaretMovedData); ok {
		a.session.CaretMoved(data.Offset)
	}
	return false
}

func (a *App) handleTargetReloaded(e event.Event) bool {
	a.recompute()
	if data, ok := e.Data.(event.TargetReloadedData); ok {
		a.statusBar.SetTemporaryMessage("Reloaded %s", data.FilePath)
	}
	return false
}

func (a *App) handleRecomputed(e event.Event) bool {
	data, ok := e.Data.(event.RecomputedData)
	if !ok {
		logger.Warnf("App: Recomputed event with unexpected data type: %T", e.Data)
		return false
	}
	a.updateStatusBarContent(data)
	if data.Err != nil {
		a.statusBar.SetTemporaryMessage("%s", firstLine(data.Err))
	}
	return false
}

func (a *App) handleThemeChanged(e event.Event) bool {
	a.applyTheme()
	if data, ok := e.Data.(event.ThemeChangedData); ok {
		a.statusBar.SetTemporaryMessage("Theme: %s", data.Name)
	}
	return false
}

// handleAction applies one decoded key press and reports whether to redraw.
func (a *App) handleAction(ev input.ActionEvent) bool {
	switch ev.Action {
	case input.ActionQuit:
		a.quit = true
		return false

	case input.ActionFocusNext:
		a.focus = (a.focus + 1) % paneCount
		a.refreshStatus()
		return true
	case input.ActionFocusPrev:
		a.focus = (a.focus + paneCount - 1) % paneCount
		a.refreshStatus()
		return true

	case input.ActionMoveUp, input.ActionMoveDown, input.ActionMoveLeft,
		input.ActionMoveRight, input.ActionMoveHome, input.ActionMoveEnd:
		a.move(ev.Action)
		if a.focus == panePattern {
			a.caretMoved()
		}
		return true

	case input.ActionInsertRune:
		return a.edit(func() bool { return a.focused().InsertRune(ev.Rune) })
	case input.ActionInsertNewLine:
		return a.edit(a.focused().Newline)
	case input.ActionDeleteCharBackward:
		return a.edit(a.focused().Backspace)
	case input.ActionDeleteCharForward:
		return a.edit(a.focused().DeleteForward)
	case input.ActionPaste:
		text := a.clipboard.Paste()
		return a.edit(func() bool { return a.focused().InsertText(text) })

	case input.ActionUndo, input.ActionRedo:
		h := a.histories[a.focus]
		if h == nil {
			return false
		}
		if ev.Action == input.ActionUndo {
			return a.edit(h.Undo)
		}
		return a.edit(h.Redo)

	case input.ActionSelectStrategy:
		if ev.Strategy == a.strategy {
			return false
		}
		a.strategy = ev.Strategy
		a.eventManager.Dispatch(event.TypeStrategyChanged, event.StrategyChangedData{Strategy: a.strategy})
		return true
	case input.ActionToggleFlag:
		a.flags = a.flags.Toggle(ev.Flag)
		a.eventManager.Dispatch(event.TypeFlagsChanged, event.FlagsChangedData{Flags: a.flags})
		return true

	case input.ActionNextNamedGroup:
		a.nextNamedGroup()
		return true
	case input.ActionListNamedGroups:
		names := a.session.DescribeNamedGroups()
		a.statusBar.SetTemporaryMessage("%d named group(s)", len(names))
		return true
	case input.ActionCopyOutput:
		a.copyOutput()
		return true
	case input.ActionReloadTarget:
		a.reloadTarget()
		return true
	case input.ActionCycleTheme:
		next := a.themeManager.Cycle()
		a.eventManager.Dispatch(event.TypeThemeChanged, event.ThemeChangedData{Name: next.Name})
		return true
	}
	return false
}

func (a *App) move(action input.Action) {
	p := a.focused()
	switch action {
	case input.ActionMoveUp:
		p.MoveUp()
	case input.ActionMoveDown:
		p.MoveDown()
	case input.ActionMoveLeft:
		p.MoveLeft()
	case input.ActionMoveRight:
		p.MoveRight()
	case input.ActionMoveHome:
		p.Home()
	case input.ActionMoveEnd:
		p.End()
	}
}

// edit runs fn on the focused pane and announces the change when it made one.
func (a *App) edit(fn func() bool) bool {
	if !fn() {
		return false
	}
	switch a.focus {
	case panePattern:
		a.eventManager.Dispatch(event.TypePatternChanged, nil)
		a.caretMoved()
	case paneTarget:
		a.eventManager.Dispatch(event.TypeTargetChanged, nil)
	case paneSecondary:
		a.eventManager.Dispatch(event.TypeSecondaryChanged, nil)
	}
	return true
}

func (a *App) nextNamedGroup() {
	name, ok, err := a.session.NextNamedGroup()
	switch {
	case !ok:
		a.statusBar.SetTemporaryMessage("Pattern has no named groups")
	case err != nil:
		a.statusBar.SetTemporaryMessage("Group <%s>: %s", name, firstLine(err))
	default:
		a.statusBar.SetTemporaryMessage("Group <%s>", name)
	}
}

func (a *App) copyOutput() {
	text := a.panes[paneAuxiliary].Text()
	if err := a.clipboard.Copy(text); err != nil {
		a.statusBar.SetTemporaryMessage("Copy failed: %v", err)
		return
	}
	a.statusBar.SetTemporaryMessage("Copied %d bytes", len(text))
}
