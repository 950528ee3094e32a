package event

import (
	"testing"

	"github.com/bethropolis/regextester/internal/dispatch"
	"github.com/stretchr/testify/assert"
)

func TestDispatchOrderAndConsumption(t *testing.T) {
	m := NewManager()
	var got []string
	m.Subscribe(TypeStrategyChanged, func(e Event) bool {
		got = append(got, "first:"+string(e.Data.(StrategyChangedData).Strategy))
		return false
	})
	m.Subscribe(TypeStrategyChanged, func(e Event) bool {
		got = append(got, "second")
		return true
	})
	m.Subscribe(TypeStrategyChanged, func(e Event) bool {
		got = append(got, "never")
		return false
	})

	m.Dispatch(TypeStrategyChanged, StrategyChangedData{Strategy: dispatch.Split})
	assert.Equal(t, []string{"first:split", "second"}, got)
}

func TestDispatchWithoutHandlers(t *testing.T) {
	m := NewManager()
	assert.NotPanics(t, func() { m.Dispatch(TypeAppQuit, nil) })
}

func TestSubscribeDuringDispatch(t *testing.T) {
	m := NewManager()
	calls := 0
	m.Subscribe(TypeAppReady, func(Event) bool {
		calls++
		m.Subscribe(TypeAppReady, func(Event) bool { calls++; return false })
		return false
	})
	m.Dispatch(TypeAppReady, nil)
	assert.Equal(t, 1, calls)
	m.Dispatch(TypeAppReady, nil)
	assert.Equal(t, 3, calls)
}

func TestTypeString(t *testing.T) {
	assert.Equal(t, "CaretMoved", TypeCaretMoved.String())
	assert.Equal(t, "Unknown", Type(99).String())
}
