// internal/app/app.go
package app

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bethropolis/regextester/internal/buffer"
	"github.com/bethropolis/regextester/internal/clipboard"
	"github.com/bethropolis/regextester/internal/config"
	"github.com/bethropolis/regextester/internal/dispatch"
	"github.com/bethropolis/regextester/internal/engine"
	"github.com/bethropolis/regextester/internal/event"
	"github.com/bethropolis/regextester/internal/highlight"
	"github.com/bethropolis/regextester/internal/history"
	"github.com/bethropolis/regextester/internal/input"
	"github.com/bethropolis/regextester/internal/logger"
	"github.com/bethropolis/regextester/internal/offset"
	"github.com/bethropolis/regextester/internal/schedule"
	"github.com/bethropolis/regextester/internal/session"
	"github.com/bethropolis/regextester/internal/statusbar"
	"github.com/bethropolis/regextester/internal/theme"
	"github.com/bethropolis/regextester/internal/tui"
	"github.com/bethropolis/regextester/internal/watcher"
	"github.com/gdamore/tcell/v2"
)

// paneID indexes the four text panes in focus order.
type paneID int

const (
	panePattern paneID = iota
	paneTarget
	paneSecondary
	paneAuxiliary
	paneCount
)

func (p paneID) String() string {
	switch p {
	case panePattern:
		return "pattern"
	case paneTarget:
		return "target"
	case paneSecondary:
		return "secondary"
	case paneAuxiliary:
		return "output"
	}
	return "?"
}

// Options are the per-run inputs that do not live in the config file.
type Options struct {
	Pattern    string
	TargetPath string
	// Screen replaces the terminal, e.g. with a tcell.SimulationScreen.
	Screen tcell.Screen
	// Clipboard replaces the clipboard chosen from the config.
	Clipboard *clipboard.Manager
}

// App encapsulates the panes, the tester session and the main loop.
type App struct {
	cfg            *config.Config
	tuiManager     *tui.TUI
	statusBar      *statusbar.StatusBar
	eventManager   *event.Manager
	inputProcessor *input.InputProcessor
	themeManager   *theme.Manager
	clipboard      *clipboard.Manager
	watcher        *watcher.Watcher

	panes     [paneCount]*buffer.Pane
	histories [paneCount]*history.Manager // nil for the read-only pane
	viewports [paneCount]tui.Viewport
	focus     paneID

	view     *screenView
	session  *session.Session
	dialect  engine.Dialect
	ending   offset.LineEnding
	strategy dispatch.Strategy
	flags    engine.Flags

	quit bool
}

// reloadEvent is posted by the watcher goroutine so the reload runs on the UI goroutine.
type reloadEvent struct {
	tcell.EventTime
}

// NewApp creates and initializes a new application instance.
func NewApp(cfg *config.Config, opts Options) (*App, error) {
	eng, err := engine.New(cfg.Tester.Dialect(), engine.Options{MatchTimeout: cfg.Tester.MatchTimeout})
	if err != nil {
		return nil, err
	}

	var tuiManager *tui.TUI
	if opts.Screen != nil {
		tuiManager, err = tui.NewWithScreen(opts.Screen, tcell.StyleDefault)
	} else {
		tuiManager, err = tui.New(tcell.StyleDefault)
	}
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}

	a := &App{
		cfg:            cfg,
		tuiManager:     tuiManager,
		statusBar:      statusbar.New(statusbar.Config{MessageTimeout: config.MessageTimeout}),
		eventManager:   event.NewManager(),
		inputProcessor: input.NewInputProcessor(),
		themeManager:   theme.NewManager(themesDir()),
		clipboard:      opts.Clipboard,
		dialect:        eng.Dialect(),
		ending:         cfg.Tester.Ending(),
		strategy:       cfg.Tester.InitialStrategy(),
		flags:          cfg.Tester.InitialFlags(),
	}
	if a.clipboard == nil {
		a.clipboard = clipboard.NewManager(cfg.Tester.SystemClipboard)
	}
	if cfg.Tester.Theme != "" {
		if err := a.themeManager.UseFile(cfg.Tester.Theme); err != nil {
			logger.Warnf("App: theme '%s' not loaded: %v", cfg.Tester.Theme, err)
		}
	}

	a.panes[panePattern] = buffer.NewPane()
	a.panes[paneTarget] = buffer.NewPane()
	a.panes[paneSecondary] = buffer.NewPane()
	a.panes[paneAuxiliary] = buffer.NewReadOnlyPane()
	a.panes[panePattern].SetText(opts.Pattern)
	a.panes[panePattern].End()
	for _, id := range []paneID{panePattern, paneTarget, paneSecondary} {
		h := history.NewManager(a.panes[id], 0)
		a.panes[id].SetEditHook(h.RecordChange)
		a.histories[id] = h
	}

	if opts.TargetPath != "" {
		if err := a.panes[paneTarget].Load(opts.TargetPath); err != nil {
			tuiManager.Close()
			return nil, err
		}
		if cfg.Tester.WatchTarget {
			a.watcher, err = watcher.New(watcher.Config{Path: opts.TargetPath, DebounceDur: config.WatchDebounce})
			if err != nil {
				logger.Warnf("App: not watching '%s': %v", opts.TargetPath, err)
			}
		}
	}

	a.view = newScreenView(a.panes[paneAuxiliary])
	a.session = session.New(a.view, eng, a.ending, schedule.NewSlot(nil))

	a.subscribe()
	a.applyTheme()
	return a, nil
}

// themesDir is the themes folder next to the default config file.
func themesDir() string {
	path := config.DefaultPath()
	if path == "" {
		return ""
	}
	return filepath.Join(filepath.Dir(path), "themes")
}

// Run starts the event loop and blocks until the user quits.
func (a *App) Run() error {
	defer a.tuiManager.Close()
	if a.watcher != nil {
		defer a.watcher.Stop()
		changes, err := a.watcher.Start()
		if err != nil {
			logger.Warnf("App: %v", err)
		} else {
			go a.forwardChanges(changes)
		}
	}

	a.eventManager.Dispatch(event.TypeAppReady, nil)
	a.statusBar.SetTemporaryMessage("F1-F8 strategy | Alt+i/m/s/x/l flags | Tab focus | Ctrl+Q quit")
	a.draw()

	for !a.quit {
		ev := a.tuiManager.PollEvent()
		if ev == nil {
			break
		}
		if a.HandleEvent(ev) {
			a.draw()
		}
	}
	a.eventManager.Dispatch(event.TypeAppQuit, nil)
	logger.Infof("Exiting application.")
	return nil
}

// forwardChanges turns watcher signals into tcell events until the watcher stops.
func (a *App) forwardChanges(changes <-chan struct{}) {
	for range changes {
		ev := &reloadEvent{}
		ev.SetEventNow()
		if err := a.tuiManager.PostEvent(ev); err != nil {
			logger.DebugTagf("watch", "reload event dropped: %v", err)
		}
	}
}

// HandleEvent processes one terminal event, then runs the deferred task of the
// session. It reports whether the screen needs redrawing.
func (a *App) HandleEvent(ev tcell.Event) bool {
	needsRedraw := false
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.tuiManager.GetScreen().Sync()
		needsRedraw = true
	case *tcell.EventKey:
		needsRedraw = a.handleAction(a.inputProcessor.ProcessEvent(ev))
	case *reloadEvent:
		a.reloadTarget()
		needsRedraw = true
	}
	if a.session.RunDeferred() {
		needsRedraw = true
	}
	return needsRedraw
}

// Quitting reports whether the user asked to leave.
func (a *App) Quitting() bool { return a.quit }

func (a *App) focused() *buffer.Pane { return a.panes[a.focus] }

// recompute hands the panes to the session and runs one cycle.
func (a *App) recompute() {
	a.view.fit(highlight.PatternSurface, a.panes[panePattern])
	a.view.fit(highlight.TargetSurface, a.panes[paneTarget])
	a.session.SetInput(session.Input{
		Pattern:   a.panes[panePattern].Text(),
		Target:    a.panes[paneTarget].RawText(a.ending),
		Secondary: a.panes[paneSecondary].Text(),
		Strategy:  a.strategy,
		Flags:     a.flags,
	})
	res, err := a.session.Recompute()
	a.eventManager.Dispatch(event.TypeRecomputed, event.RecomputedData{
		MatchCount: res.MatchCount,
		Skipped:    res.Skipped,
		Err:        err,
	})
}

// caretMoved tells the session where the pattern caret is.
func (a *App) caretMoved() {
	a.view.fit(highlight.PatternSurface, a.panes[panePattern])
	a.eventManager.Dispatch(event.TypeCaretMoved, event.CaretMovedData{Offset: a.panes[panePattern].CaretOffset()})
}

func (a *App) reloadTarget() {
	target := a.panes[paneTarget]
	if target.FilePath() == "" {
		a.statusBar.SetTemporaryMessage("No target file to reload")
		return
	}
	if err := target.Reload(); err != nil {
		logger.Warnf("App: reload failed: %v", err)
		a.statusBar.SetTemporaryMessage("Reload failed: %v", err)
		return
	}
	a.histories[paneTarget].Clear()
	a.eventManager.Dispatch(event.TypeTargetReloaded, event.TargetReloadedData{FilePath: target.FilePath()})
}

func (a *App) applyTheme() {
	current := a.themeManager.Current()
	a.statusBar.SetStyles(current.GetStyle(theme.StyleStatusBar), current.GetStyle(theme.StyleStatusBarMessage))
	a.tuiManager.SetStyle(current.GetStyle(theme.StyleDefault))
}

// firstLine trims multi-line engine messages for the status bar.
func firstLine(err error) string {
	msg := err.Error()
	var syntax *engine.SyntaxError
	if errors.As(err, &syntax) {
		msg = syntax.Message
	}
	line, _, _ := strings.Cut(msg, "\n")
	return line
}
