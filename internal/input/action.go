// internal/input/action.go
package input

import (
	"github.com/bethropolis/regextester/internal/dispatch"
	"github.com/bethropolis/regextester/internal/engine"
)

// Action represents an operation requested by a key press.
type Action int

const (
	ActionUnknown Action = iota
	ActionQuit

	// --- Focus ---
	ActionFocusNext
	ActionFocusPrev

	// --- Cursor Movement ---
	ActionMoveUp
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight
	ActionMoveHome
	ActionMoveEnd

	// --- Text Manipulation ---
	ActionInsertRune // Requires Rune argument
	ActionInsertNewLine
	ActionDeleteCharForward
	ActionDeleteCharBackward
	ActionPaste
	ActionUndo
	ActionRedo

	// --- Tester ---
	ActionSelectStrategy // Requires Strategy argument
	ActionToggleFlag     // Requires Flag argument
	ActionNextNamedGroup
	ActionListNamedGroups
	ActionCopyOutput
	ActionReloadTarget
	ActionCycleTheme
)

// ActionEvent is a decoded key press with its payload.
type ActionEvent struct {
	Action   Action
	Rune     rune
	Strategy dispatch.Strategy
	Flag     engine.Flags
}
