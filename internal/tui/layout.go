package tui

// Rect is a screen region in cells.
type Rect struct {
	X, Y, W, H int
}

func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Contains reports whether cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Inner is r without its one-cell border.
func (r Rect) Inner() Rect {
	return Rect{X: r.X + 1, Y: r.Y + 1, W: r.W - 2, H: r.H - 2}
}

// Layout places every part of the tester screen.
type Layout struct {
	Pattern    Rect
	Strategies Rect
	Flags      Rect
	Target     Rect
	Secondary  Rect
	Auxiliary  Rect
	Status     Rect
}

const (
	patternHeight   = 3
	secondaryHeight = 3
	minSideWidth    = 20
)

// ComputeLayout splits a width x height screen. The pattern box and the two
// bars run across the top, the target pane takes the left 60% of the rest and
// the secondary and auxiliary panes stack on the right.
func ComputeLayout(width, height, statusHeight int) Layout {
	var l Layout
	if width <= 0 || height <= 0 {
		return l
	}
	if statusHeight > height {
		statusHeight = height
	}
	l.Status = Rect{X: 0, Y: height - statusHeight, W: width, H: statusHeight}

	y := 0
	avail := height - statusHeight
	take := func(h int) Rect {
		if h > avail {
			h = avail
		}
		r := Rect{X: 0, Y: y, W: width, H: h}
		y += h
		avail -= h
		return r
	}
	l.Pattern = take(patternHeight)
	l.Strategies = take(1)
	l.Flags = take(1)

	if avail <= 0 {
		return l
	}
	leftW := width * 3 / 5
	if width-leftW < minSideWidth {
		leftW = width - minSideWidth
	}
	if leftW < width/2 {
		leftW = width / 2
	}
	rightW := width - leftW
	l.Target = Rect{X: 0, Y: y, W: leftW, H: avail}

	secH := secondaryHeight
	if secH > avail {
		secH = avail
	}
	l.Secondary = Rect{X: leftW, Y: y, W: rightW, H: secH}
	l.Auxiliary = Rect{X: leftW, Y: y + secH, W: rightW, H: avail - secH}
	return l
}
