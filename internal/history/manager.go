// Package history provides undo/redo for the editable panes via a change stack.
package history

import (
	"sync"

	"github.com/bethropolis/regextester/internal/buffer"
	"github.com/bethropolis/regextester/internal/logger"
)

const DefaultMaxHistory = 100

// Target is the pane the recorded edits are replayed on.
type Target interface {
	InsertAt(pos buffer.Position, text string) buffer.Position
	DeleteRange(start, end buffer.Position)
	SetCursor(pos buffer.Position)
}

// Manager handles the undo/redo stack of one pane.
type Manager struct {
	target       Target
	changes      []buffer.Edit
	currentIndex int // index of the next change to redo
	maxHistory   int
	mutex        sync.Mutex
}

// NewManager creates a history manager; maxHistory <= 0 means DefaultMaxHistory.
func NewManager(target Target, maxHistory int) *Manager {
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistory
	}
	return &Manager{
		target:     target,
		changes:    make([]buffer.Edit, 0, maxHistory),
		maxHistory: maxHistory,
	}
}

// RecordChange adds a new change, clearing any redo history.
func (m *Manager) RecordChange(change buffer.Edit) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.currentIndex < len(m.changes) {
		m.changes = m.changes[:m.currentIndex]
	}
	m.changes = append(m.changes, change)
	if len(m.changes) > m.maxHistory {
		m.changes = m.changes[len(m.changes)-m.maxHistory:]
	}
	m.currentIndex = len(m.changes)
	logger.DebugTagf("history", "recorded %v, index %d of %d", change.Kind, m.currentIndex, len(m.changes))
}

// Undo reverts the last recorded change and reports whether there was one.
func (m *Manager) Undo() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.currentIndex <= 0 {
		return false
	}
	m.currentIndex--
	change := m.changes[m.currentIndex]
	switch change.Kind {
	case buffer.EditInsert:
		m.target.DeleteRange(change.Start, change.End)
	case buffer.EditDelete:
		m.target.InsertAt(change.Start, change.Text)
	}
	m.target.SetCursor(change.CursorBefore)
	logger.DebugTagf("history", "undid change %d", m.currentIndex)
	return true
}

// Redo reapplies the last undone change and reports whether there was one.
func (m *Manager) Redo() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.currentIndex >= len(m.changes) {
		return false
	}
	change := m.changes[m.currentIndex]
	switch change.Kind {
	case buffer.EditInsert:
		m.target.SetCursor(m.target.InsertAt(change.Start, change.Text))
	case buffer.EditDelete:
		m.target.DeleteRange(change.Start, change.End)
		m.target.SetCursor(change.Start)
	}
	m.currentIndex++
	logger.DebugTagf("history", "redid change %d", m.currentIndex-1)
	return true
}

// Clear resets the history stack. Call this when the pane is reloaded.
func (m *Manager) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.changes = m.changes[:0]
	m.currentIndex = 0
}

func (m *Manager) CanUndo() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.currentIndex > 0
}

func (m *Manager) CanRedo() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.currentIndex < len(m.changes)
}
