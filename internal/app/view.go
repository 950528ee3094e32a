package app

import (
	"github.com/bethropolis/regextester/internal/buffer"
	"github.com/bethropolis/regextester/internal/highlight"
	"github.com/bethropolis/regextester/internal/session"
)

// screenView is the session's View for the terminal. Canvases and invalid
// marks are kept in the embedded Recorder; auxiliary text goes straight into
// the read-only auxiliary pane.
type screenView struct {
	*session.Recorder
	aux *buffer.Pane
}

func newScreenView(aux *buffer.Pane) *screenView {
	return &screenView{Recorder: session.NewRecorder(0, 0), aux: aux}
}

func (v *screenView) SetAuxiliary(text string) {
	v.Auxiliary = text
	v.aux.SetText(text)
}

// fit resizes the canvas of surface to the rune length of its pane.
func (v *screenView) fit(surface highlight.Surface, p *buffer.Pane) {
	v.Canvas(surface).Resize(p.Len())
}

var _ session.View = (*screenView)(nil)
