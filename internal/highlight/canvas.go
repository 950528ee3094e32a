package highlight

// Surface names one of the text areas a session paints on.
type Surface int

const (
	PatternSurface Surface = iota
	TargetSurface
	SecondarySurface
	AuxiliarySurface
)

func (s Surface) String() string {
	switch s {
	case PatternSurface:
		return "pattern"
	case TargetSurface:
		return "target"
	case SecondarySurface:
		return "secondary"
	case AuxiliarySurface:
		return "auxiliary"
	}
	return "unknown"
}

// Canvas holds one color per display cell (rune) of a surface.
type Canvas struct {
	cells []Color
}

// NewCanvas returns a canvas of n background cells.
func NewCanvas(n int) *Canvas {
	c := &Canvas{}
	c.Resize(n)
	return c
}

// Resize grows or shrinks the canvas, keeping existing colors.
func (c *Canvas) Resize(n int) {
	if n < 0 {
		n = 0
	}
	if n <= cap(c.cells) {
		old := len(c.cells)
		c.cells = c.cells[:n]
		for i := old; i < n; i++ {
			c.cells[i] = Background
		}
		return
	}
	grown := make([]Color, n)
	copy(grown, c.cells)
	c.cells = grown
}

// Len returns the number of cells.
func (c *Canvas) Len() int { return len(c.cells) }

// At returns the color of cell i, Background when out of range.
func (c *Canvas) At(i int) Color {
	if i < 0 || i >= len(c.cells) {
		return Background
	}
	return c.cells[i]
}

// Paint applies spans in order. With reset the whole surface is first
// repainted with Background. Inclusive spans cover [Start, Start+Size);
// the others touch only Start and End. Cells past the end are ignored.
func (c *Canvas) Paint(reset bool, spans ...Span) {
	if reset {
		for i := range c.cells {
			c.cells[i] = Background
		}
	}
	for _, s := range spans {
		if !s.Resolved() {
			continue
		}
		if s.Inclusive {
			for i := s.Start; i < s.Start+s.Size(); i++ {
				c.set(i, s.Color)
			}
			continue
		}
		c.set(s.Start, s.Color)
		c.set(s.End, s.Color)
	}
}

func (c *Canvas) set(i int, color Color) {
	if i >= 0 && i < len(c.cells) {
		c.cells[i] = color
	}
}

// Runs collapses the canvas into inclusive spans of equal, non-background color.
func (c *Canvas) Runs() []Span {
	var runs []Span
	for i := 0; i < len(c.cells); {
		color := c.cells[i]
		j := i
		for j+1 < len(c.cells) && c.cells[j+1] == color {
			j++
		}
		if color != Background {
			runs = append(runs, New(color, i, j, true))
		}
		i = j + 1
	}
	return runs
}
