// internal/tui/tui.go
package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// TUI manages the terminal screen using tcell.
type TUI struct {
	screen tcell.Screen
}

// New creates and initializes a TUI on the real terminal.
func New(defStyle tcell.Style) (*TUI, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create tcell screen: %w", err)
	}
	return NewWithScreen(s, defStyle)
}

// NewWithScreen initializes s, which may be a tcell.SimulationScreen in tests.
func NewWithScreen(s tcell.Screen, defStyle tcell.Style) (*TUI, error) {
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize tcell screen: %w", err)
	}
	s.SetStyle(defStyle)
	return &TUI{screen: s}, nil
}

// Close finalizes the tcell screen.
func (t *TUI) Close() {
	if t.screen != nil {
		t.screen.Fini()
	}
}

func (t *TUI) PollEvent() tcell.Event         { return t.screen.PollEvent() }
func (t *TUI) PostEvent(ev tcell.Event) error { return t.screen.PostEvent(ev) }
func (t *TUI) Clear()                         { t.screen.Clear() }
func (t *TUI) Show()                          { t.screen.Show() }
func (t *TUI) Size() (int, int)               { return t.screen.Size() }
func (t *TUI) SetStyle(style tcell.Style)     { t.screen.SetStyle(style) }

// GetScreen provides direct access (use with caution).
func (t *TUI) GetScreen() tcell.Screen {
	return t.screen
}
