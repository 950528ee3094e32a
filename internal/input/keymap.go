// internal/input/keymap.go
package input

import (
	"github.com/bethropolis/regextester/internal/dispatch"
	"github.com/bethropolis/regextester/internal/engine"
	"github.com/gdamore/tcell/v2"
)

// Keymap maps special keys; RuneKeymap maps Alt+rune; ModKeymap maps modifier+key.
type Keymap map[tcell.Key]ActionEvent
type RuneKeymap map[rune]ActionEvent
type ModKeymap map[tcell.ModMask]Keymap

// InputProcessor translates tcell events into ActionEvents.
type InputProcessor struct {
	keymap    Keymap
	altRunes  RuneKeymap
	modKeymap ModKeymap
}

// NewInputProcessor creates a processor with default keybindings.
func NewInputProcessor() *InputProcessor {
	p := &InputProcessor{
		keymap:    make(Keymap),
		altRunes:  make(RuneKeymap),
		modKeymap: make(ModKeymap),
	}
	p.loadDefaultBindings()
	return p
}

// strategyKeys binds F1..F8 to the strategies in menu order.
var strategyKeys = []tcell.Key{
	tcell.KeyF1, tcell.KeyF2, tcell.KeyF3, tcell.KeyF4,
	tcell.KeyF5, tcell.KeyF6, tcell.KeyF7, tcell.KeyF8,
}

// StrategyKey returns the key label bound to s, e.g. "F3".
func StrategyKey(s dispatch.Strategy) string {
	for i, st := range dispatch.Strategies() {
		if st == s && i < len(strategyKeys) {
			return tcell.KeyNames[strategyKeys[i]]
		}
	}
	return ""
}

// FlagKey returns the key label bound to a flag, e.g. "Alt+i".
func FlagKey(f engine.Flags) string {
	return "Alt+" + f.String()
}

func (p *InputProcessor) loadDefaultBindings() {
	simple := map[tcell.Key]Action{
		tcell.KeyUp:         ActionMoveUp,
		tcell.KeyDown:       ActionMoveDown,
		tcell.KeyLeft:       ActionMoveLeft,
		tcell.KeyRight:      ActionMoveRight,
		tcell.KeyHome:       ActionMoveHome,
		tcell.KeyEnd:        ActionMoveEnd,
		tcell.KeyEnter:      ActionInsertNewLine,
		tcell.KeyBackspace:  ActionDeleteCharBackward,
		tcell.KeyBackspace2: ActionDeleteCharBackward,
		tcell.KeyDelete:     ActionDeleteCharForward,
		tcell.KeyTab:        ActionFocusNext,
		tcell.KeyBacktab:    ActionFocusPrev,
		tcell.KeyEscape:     ActionQuit,
	}
	for k, a := range simple {
		p.keymap[k] = ActionEvent{Action: a}
	}
	for i, s := range dispatch.Strategies() {
		p.keymap[strategyKeys[i]] = ActionEvent{Action: ActionSelectStrategy, Strategy: s}
	}

	ctrlMap := Keymap{
		tcell.KeyCtrlQ: {Action: ActionQuit},
		tcell.KeyCtrlC: {Action: ActionQuit},
		tcell.KeyCtrlN: {Action: ActionNextNamedGroup},
		tcell.KeyCtrlG: {Action: ActionListNamedGroups},
		tcell.KeyCtrlY: {Action: ActionCopyOutput},
		tcell.KeyCtrlV: {Action: ActionPaste},
		tcell.KeyCtrlZ: {Action: ActionUndo},
		tcell.KeyCtrlR: {Action: ActionRedo},
		tcell.KeyCtrlO: {Action: ActionReloadTarget},
		tcell.KeyCtrlT: {Action: ActionCycleTheme},
		tcell.KeyCtrlA: {Action: ActionMoveHome},
		tcell.KeyCtrlE: {Action: ActionMoveEnd},
	}
	p.modKeymap[tcell.ModCtrl] = ctrlMap

	for _, f := range engine.AllFlags() {
		p.altRunes[[]rune(f.String())[0]] = ActionEvent{Action: ActionToggleFlag, Flag: f}
	}
}

// ProcessEvent takes a tcell key event and returns the corresponding ActionEvent.
// The app decides what an action means for the focused pane.
func (p *InputProcessor) ProcessEvent(ev *tcell.EventKey) ActionEvent {
	key := ev.Key()
	mod := ev.Modifiers()
	runeVal := ev.Rune()

	if modKeyMap, ok := p.modKeymap[mod]; ok {
		if action, ok := modKeyMap[key]; ok {
			return action
		}
	}
	// Ctrl+letter keys already carry Ctrl in the key itself.
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		if action, ok := p.modKeymap[tcell.ModCtrl][key]; ok {
			return action
		}
		mod &^= tcell.ModCtrl
	}

	if key == tcell.KeyRune && mod&tcell.ModAlt != 0 {
		if action, ok := p.altRunes[runeVal]; ok {
			return action
		}
		return ActionEvent{Action: ActionUnknown}
	}

	if mod == tcell.ModNone || mod == tcell.ModShift {
		if action, ok := p.keymap[key]; ok {
			return action
		}
	}

	if key == tcell.KeyRune && (mod == tcell.ModNone || mod == tcell.ModShift) {
		return ActionEvent{Action: ActionInsertRune, Rune: runeVal}
	}
	return ActionEvent{Action: ActionUnknown}
}
