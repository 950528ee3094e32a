// Package clipboard copies tester output, to the OS clipboard when one is
// available and to an in-process register otherwise.
package clipboard

import (
	"fmt"

	sysclip "github.com/atotto/clipboard"
	"github.com/bethropolis/regextester/internal/logger"
)

// Backend is a text clipboard.
type Backend interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

type systemBackend struct{}

func (systemBackend) ReadAll() (string, error)   { return sysclip.ReadAll() }
func (systemBackend) WriteAll(text string) error { return sysclip.WriteAll(text) }

// Manager keeps the last copied text and mirrors it to a system backend.
type Manager struct {
	system   Backend
	register string
}

// NewManager uses the OS clipboard when useSystem is set and the platform supports one.
func NewManager(useSystem bool) *Manager {
	if !useSystem || sysclip.Unsupported {
		if useSystem {
			logger.Warnf("System clipboard unsupported on this platform, using internal register")
		}
		return &Manager{}
	}
	return &Manager{system: systemBackend{}}
}

// NewManagerWithBackend is used by tests and embedders with their own clipboard.
func NewManagerWithBackend(b Backend) *Manager {
	return &Manager{system: b}
}

// Copy stores text. A system write failure is returned but the register keeps the text.
func (m *Manager) Copy(text string) error {
	m.register = text
	if m.system == nil {
		return nil
	}
	if err := m.system.WriteAll(text); err != nil {
		logger.Warnf("ClipboardManager: system write failed: %v", err)
		return fmt.Errorf("system clipboard: %w", err)
	}
	logger.Debugf("ClipboardManager: copied %d bytes", len(text))
	return nil
}

// Paste returns the system clipboard, or the register when there is none or it fails.
func (m *Manager) Paste() string {
	if m.system != nil {
		text, err := m.system.ReadAll()
		if err == nil {
			return text
		}
		logger.Warnf("ClipboardManager: system read failed: %v", err)
	}
	return m.register
}
