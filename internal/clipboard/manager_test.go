package clipboard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	text string
	err  error
}

func (f *fakeBackend) ReadAll() (string, error) { return f.text, f.err }
func (f *fakeBackend) WriteAll(text string) error {
	if f.err != nil {
		return f.err
	}
	f.text = text
	return nil
}

func TestInternalRegister(t *testing.T) {
	m := NewManager(false)
	require.NoError(t, m.Copy("0: a\n1: b\n"))
	assert.Equal(t, "0: a\n1: b\n", m.Paste())
}

func TestSystemBackend(t *testing.T) {
	fb := &fakeBackend{}
	m := NewManagerWithBackend(fb)
	require.NoError(t, m.Copy("bXnXnX"))
	assert.Equal(t, "bXnXnX", fb.text)

	fb.text = "from elsewhere"
	assert.Equal(t, "from elsewhere", m.Paste())
}

func TestSystemFailureFallsBack(t *testing.T) {
	fb := &fakeBackend{err: errors.New("no display")}
	m := NewManagerWithBackend(fb)
	err := m.Copy("kept")
	require.Error(t, err)
	assert.ErrorIs(t, err, fb.err)
	assert.Equal(t, "kept", m.Paste())
}
