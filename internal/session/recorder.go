package session

import (
	"github.com/bethropolis/regextester/internal/highlight"
)

// Recorder is a View that keeps everything in memory. The eval command
// renders from it; tests inspect it.
type Recorder struct {
	Canvases  map[highlight.Surface]*highlight.Canvas
	Invalid   map[highlight.Surface]bool
	Auxiliary string
	// AuxWrites is every SetAuxiliary call in order.
	AuxWrites []string
}

// NewRecorder sizes the pattern and target canvases.
func NewRecorder(patternLen, targetLen int) *Recorder {
	return &Recorder{
		Canvases: map[highlight.Surface]*highlight.Canvas{
			highlight.PatternSurface: highlight.NewCanvas(patternLen),
			highlight.TargetSurface:  highlight.NewCanvas(targetLen),
		},
		Invalid: make(map[highlight.Surface]bool),
	}
}

// Canvas returns the canvas of a surface, creating an empty one if needed.
func (r *Recorder) Canvas(surface highlight.Surface) *highlight.Canvas {
	c, ok := r.Canvases[surface]
	if !ok {
		c = highlight.NewCanvas(0)
		r.Canvases[surface] = c
	}
	return c
}

func (r *Recorder) Paint(surface highlight.Surface, reset bool, spans ...highlight.Span) {
	r.Canvas(surface).Paint(reset, spans...)
}

func (r *Recorder) SetAuxiliary(text string) {
	r.Auxiliary = text
	r.AuxWrites = append(r.AuxWrites, text)
}

func (r *Recorder) SetInvalid(surface highlight.Surface, invalid bool) {
	r.Invalid[surface] = invalid
}
