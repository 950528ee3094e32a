package schedule_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bethropolis/regextester/internal/schedule"
)

func TestSlot_LastWriteWins(t *testing.T) {
	var ran []string
	s := schedule.NewSlot(nil)

	s.Post(func() { ran = append(ran, "first") })
	s.Post(func() { ran = append(ran, "second") })
	assert.True(t, s.Pending())

	assert.True(t, s.Run())
	assert.False(t, s.Run(), "slot holds a single task")
	assert.Equal(t, []string{"second"}, ran)
	assert.False(t, s.Pending())
}

func TestSlot_TaskMayPostAgain(t *testing.T) {
	s := schedule.NewSlot(nil)
	count := 0
	s.Post(func() {
		count++
		s.Post(func() { count += 10 })
	})
	assert.True(t, s.Run())
	assert.True(t, s.Pending())
	assert.True(t, s.Run())
	assert.Equal(t, 11, count)
}

func TestSlot_Notify(t *testing.T) {
	woken := 0
	s := schedule.NewSlot(func() { woken++ })
	s.Post(func() {})
	s.Post(func() {})
	assert.Equal(t, 2, woken)
}
