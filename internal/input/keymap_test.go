package input

import (
	"testing"

	"github.com/bethropolis/regextester/internal/dispatch"
	"github.com/bethropolis/regextester/internal/engine"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
)

func TestProcessEvent(t *testing.T) {
	p := NewInputProcessor()
	cases := []struct {
		name string
		ev   *tcell.EventKey
		want ActionEvent
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), ActionEvent{Action: ActionInsertRune, Rune: 'x'}},
		{"shifted rune", tcell.NewEventKey(tcell.KeyRune, 'X', tcell.ModShift), ActionEvent{Action: ActionInsertRune, Rune: 'X'}},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), ActionEvent{Action: ActionInsertNewLine}},
		{"tab", tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), ActionEvent{Action: ActionFocusNext}},
		{"backtab", tcell.NewEventKey(tcell.KeyBacktab, 0, tcell.ModShift), ActionEvent{Action: ActionFocusPrev}},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), ActionEvent{Action: ActionQuit}},
		{"ctrl+q", tcell.NewEventKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl), ActionEvent{Action: ActionQuit}},
		{"ctrl+n without mod", tcell.NewEventKey(tcell.KeyCtrlN, 0, tcell.ModNone), ActionEvent{Action: ActionNextNamedGroup}},
		{"ctrl+g", tcell.NewEventKey(tcell.KeyCtrlG, 0, tcell.ModCtrl), ActionEvent{Action: ActionListNamedGroups}},
		{"ctrl+y", tcell.NewEventKey(tcell.KeyCtrlY, 0, tcell.ModCtrl), ActionEvent{Action: ActionCopyOutput}},
		{"f1", tcell.NewEventKey(tcell.KeyF1, 0, tcell.ModNone), ActionEvent{Action: ActionSelectStrategy, Strategy: dispatch.Find}},
		{"f8", tcell.NewEventKey(tcell.KeyF8, 0, tcell.ModNone), ActionEvent{Action: ActionSelectStrategy, Strategy: dispatch.ReplaceFirst}},
		{"alt+i", tcell.NewEventKey(tcell.KeyRune, 'i', tcell.ModAlt), ActionEvent{Action: ActionToggleFlag, Flag: engine.CaseInsensitive}},
		{"alt+x", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModAlt), ActionEvent{Action: ActionToggleFlag, Flag: engine.Comments}},
		{"alt+z", tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModAlt), ActionEvent{Action: ActionUnknown}},
		{"f12", tcell.NewEventKey(tcell.KeyF12, 0, tcell.ModNone), ActionEvent{Action: ActionUnknown}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, p.ProcessEvent(tc.ev))
		})
	}
}

func TestKeyLabels(t *testing.T) {
	assert.Equal(t, "F3", StrategyKey(dispatch.Matches))
	assert.Equal(t, "", StrategyKey(dispatch.Strategy("nope")))
	assert.Equal(t, "Alt+m", FlagKey(engine.Multiline))
}
