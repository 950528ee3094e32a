// internal/statusbar/statusbar.go
package statusbar

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// Config defines the appearance and behavior of the status bar.
type Config struct {
	StyleDefault   tcell.Style
	StyleMessage   tcell.Style
	MessageTimeout time.Duration
}

// DefaultConfig provides sensible defaults.
func DefaultConfig() Config {
	return Config{
		StyleDefault:   tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorBlue),
		StyleMessage:   tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlue).Bold(true),
		MessageTimeout: 4 * time.Second,
	}
}

// Info is the tester state the bar summarises.
type Info struct {
	Engine     string
	Strategy   string
	Flags      string
	Focus      string
	MatchCount int
	Skipped    bool
	TargetFile string
}

// StatusBar represents the UI component for the status line.
type StatusBar struct {
	config Config
	mu     sync.RWMutex
	now    func() time.Time

	info Info

	tempMessage     string
	tempMessageTime time.Time
}

// New creates a new StatusBar with the given configuration.
func New(config Config) *StatusBar {
	return &StatusBar{
		config: config,
		now:    time.Now,
	}
}

// SetStyles replaces the bar styles, e.g. after a theme change.
func (sb *StatusBar) SetStyles(def, message tcell.Style) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.config.StyleDefault = def
	sb.config.StyleMessage = message
}

// SetInfo updates the summary shown when no message is active.
func (sb *StatusBar) SetInfo(info Info) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.info = info
}

// SetTemporaryMessage displays a message for a configured duration.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...interface{}) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempMessageTime = sb.now()
}

// ResetTemporaryMessage clears any temporary message being displayed
func (sb *StatusBar) ResetTemporaryMessage() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = ""
	sb.tempMessageTime = time.Time{}
}

// Text returns what Draw would show right now, and whether it is a temporary message.
func (sb *StatusBar) Text() (string, bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	if !sb.tempMessageTime.IsZero() {
		if sb.now().Sub(sb.tempMessageTime) <= sb.config.MessageTimeout {
			return sb.tempMessage, true
		}
		sb.tempMessage = ""
		sb.tempMessageTime = time.Time{}
	}
	return sb.summary(), false
}

// summary builds the default status line. Caller holds the lock.
func (sb *StatusBar) summary() string {
	i := sb.info
	flags := i.Flags
	if flags == "" {
		flags = "-"
	}
	matches := fmt.Sprintf("%d match", i.MatchCount)
	if i.MatchCount != 1 {
		matches += "es"
	}
	if i.Skipped {
		matches = "no pattern"
	}
	parts := []string{i.Engine, i.Strategy, "flags " + flags, matches}
	if i.TargetFile != "" {
		parts = append(parts, i.TargetFile)
	}
	if i.Focus != "" {
		parts = append(parts, "["+i.Focus+"]")
	}
	return " " + strings.Join(parts, " | ")
}

// Draw renders the status bar on row y using visual widths.
func (sb *StatusBar) Draw(screen tcell.Screen, y, width int) {
	if width <= 0 || y < 0 {
		return
	}
	text, isMessage := sb.Text()

	sb.mu.RLock()
	style := sb.config.StyleDefault
	if isMessage {
		style = sb.config.StyleMessage
	}
	sb.mu.RUnlock()

	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}

	gr := uniseg.NewGraphemes(text)
	currentX := 0
	for gr.Next() {
		clusterWidth := gr.Width()
		if currentX+clusterWidth > width {
			break
		}
		runes := gr.Runes()
		screen.SetContent(currentX, y, runes[0], runes[1:], style)
		currentX += clusterWidth
	}
}
