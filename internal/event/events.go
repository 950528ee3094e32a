// internal/event/events.go
package event

import (
	"github.com/bethropolis/regextester/internal/dispatch"
	"github.com/bethropolis/regextester/internal/engine"
)

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	// Input changes; each one triggers a recompute.
	TypePatternChanged
	TypeTargetChanged
	TypeSecondaryChanged
	TypeStrategyChanged
	TypeFlagsChanged

	TypeCaretMoved     // caret moved inside the pattern pane
	TypeTargetReloaded // target file re-read from disk
	TypeRecomputed     // a cycle finished; Data is RecomputedData

	// Application Lifecycle Events
	TypeAppReady
	TypeAppQuit

	TypeThemeChanged
)

func (t Type) String() string {
	switch t {
	case TypePatternChanged:
		return "PatternChanged"
	case TypeTargetChanged:
		return "TargetChanged"
	case TypeSecondaryChanged:
		return "SecondaryChanged"
	case TypeStrategyChanged:
		return "StrategyChanged"
	case TypeFlagsChanged:
		return "FlagsChanged"
	case TypeCaretMoved:
		return "CaretMoved"
	case TypeTargetReloaded:
		return "TargetReloaded"
	case TypeRecomputed:
		return "Recomputed"
	case TypeAppReady:
		return "AppReady"
	case TypeAppQuit:
		return "AppQuit"
	case TypeThemeChanged:
		return "ThemeChanged"
	}
	return "Unknown"
}

// Event is the structure passed through the event bus.
type Event struct {
	Type Type
	Data interface{}
}

// StrategyChangedData carries the newly selected strategy.
type StrategyChangedData struct {
	Strategy dispatch.Strategy
}

// FlagsChangedData carries the full flag set after a toggle.
type FlagsChangedData struct {
	Flags engine.Flags
}

// CaretMovedData carries the caret as a rune offset into the pattern.
type CaretMovedData struct {
	Offset int
}

// TargetReloadedData names the file that was re-read.
type TargetReloadedData struct {
	FilePath string
}

// RecomputedData summarises a finished cycle.
type RecomputedData struct {
	MatchCount int
	Skipped    bool
	Err        error
}

// ThemeChangedData names the active theme.
type ThemeChangedData struct {
	Name string
}
