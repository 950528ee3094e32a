// internal/tui/drawing.go
package tui

import (
	"unicode/utf8"

	"github.com/bethropolis/regextester/internal/buffer"
	"github.com/bethropolis/regextester/internal/highlight"
	"github.com/bethropolis/regextester/internal/theme"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

const tabWidth = 4

func calculateVisualColumn(line []byte, runeIndex int) int {
	if runeIndex <= 0 {
		return 0
	}
	visualWidth := 0
	currentRuneIndex := 0

	gr := uniseg.NewGraphemes(string(line))
	for gr.Next() {
		if currentRuneIndex >= runeIndex {
			break
		}
		runes := gr.Runes()
		if runes[0] == '\t' {
			visualWidth += tabWidth - visualWidth%tabWidth
		} else {
			visualWidth += gr.Width()
		}
		currentRuneIndex += len(runes)
	}
	return visualWidth
}

// Viewport is the scroll position of one pane.
type Viewport struct {
	Top  int // first visible line
	Left int // first visible visual column
}

// follow scrolls so that (line, col) is inside a height x width window.
func (v *Viewport) follow(line, col, height, width int) {
	if line < v.Top {
		v.Top = line
	}
	if height > 0 && line >= v.Top+height {
		v.Top = line - height + 1
	}
	if col < v.Left {
		v.Left = col
	}
	if width > 0 && col >= v.Left+width {
		v.Left = col - width + 1
	}
}

// PaneView is everything needed to draw one pane.
type PaneView struct {
	Title   string
	Buffer  buffer.Buffer
	Canvas  *highlight.Canvas // nil draws plain text
	Focused bool
	Invalid bool
}

// DrawBox draws a single-line border around r with title in the top edge.
func DrawBox(screen tcell.Screen, r Rect, title string, style tcell.Style) {
	if r.W < 2 || r.H < 2 {
		return
	}
	right, bottom := r.X+r.W-1, r.Y+r.H-1
	for x := r.X + 1; x < right; x++ {
		screen.SetContent(x, r.Y, tcell.RuneHLine, nil, style)
		screen.SetContent(x, bottom, tcell.RuneHLine, nil, style)
	}
	for y := r.Y + 1; y < bottom; y++ {
		screen.SetContent(r.X, y, tcell.RuneVLine, nil, style)
		screen.SetContent(right, y, tcell.RuneVLine, nil, style)
	}
	screen.SetContent(r.X, r.Y, tcell.RuneULCorner, nil, style)
	screen.SetContent(right, r.Y, tcell.RuneURCorner, nil, style)
	screen.SetContent(r.X, bottom, tcell.RuneLLCorner, nil, style)
	screen.SetContent(right, bottom, tcell.RuneLRCorner, nil, style)

	if title != "" {
		drawString(screen, r.X+2, r.Y, right-1, " "+title+" ", style)
	}
}

// drawString draws text from x up to (not including) maxX and returns the next free column.
func drawString(screen tcell.Screen, x, y, maxX int, text string, style tcell.Style) int {
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		w := gr.Width()
		if x+w > maxX {
			break
		}
		runes := gr.Runes()
		screen.SetContent(x, y, runes[0], runes[1:], style)
		x += w
	}
	return x
}

// DrawPane draws the bordered pane and its visible text, coloring each cell
// from the pane's canvas. It returns where the terminal cursor belongs and
// whether that spot is visible.
func DrawPane(screen tcell.Screen, r Rect, view PaneView, vp *Viewport, activeTheme *theme.Theme) (int, int, bool) {
	if r.Empty() {
		return 0, 0, false
	}
	DrawBox(screen, r, view.Title, activeTheme.BorderStyle(view.Focused, view.Invalid))
	inner := r.Inner()
	if inner.Empty() {
		return 0, 0, false
	}

	defaultStyle := activeTheme.GetStyle(theme.StyleDefault)
	for y := inner.Y; y < inner.Y+inner.H; y++ {
		for x := inner.X; x < inner.X+inner.W; x++ {
			screen.SetContent(x, y, ' ', nil, defaultStyle)
		}
	}

	lines := view.Buffer.Lines()
	cursor := view.Buffer.Cursor()
	cursorLine, _ := view.Buffer.Line(cursor.Line)
	cursorVisualCol := calculateVisualColumn(cursorLine, cursor.Col)
	vp.follow(cursor.Line, cursorVisualCol, inner.H, inner.W)

	// Text offset of the first rune of each line; line breaks take one cell.
	lineStart := 0
	for lineIdx, line := range lines {
		screenY := inner.Y + lineIdx - vp.Top
		if screenY >= inner.Y+inner.H {
			break
		}
		if screenY >= inner.Y {
			drawLine(screen, inner, screenY, line, lineStart, vp.Left, view.Canvas, activeTheme, defaultStyle)
		}
		lineStart += utf8.RuneCount(line) + 1
	}

	cx := inner.X + cursorVisualCol - vp.Left
	cy := inner.Y + cursor.Line - vp.Top
	return cx, cy, inner.Contains(cx, cy)
}

func drawLine(screen tcell.Screen, inner Rect, screenY int, line []byte, lineStart, viewX int, canvas *highlight.Canvas, activeTheme *theme.Theme, defaultStyle tcell.Style) {
	gr := uniseg.NewGraphemes(string(line))
	currentVisualX := 0
	currentRuneIndex := 0
	for gr.Next() {
		clusterRunes := gr.Runes()
		clusterWidth := gr.Width()
		if clusterRunes[0] == '\t' {
			clusterWidth = tabWidth - currentVisualX%tabWidth
		}

		style := defaultStyle
		if canvas != nil {
			if c := canvas.At(lineStart + currentRuneIndex); c != highlight.Background {
				style = activeTheme.PaintStyle(c)
			}
		}

		screenX := inner.X + currentVisualX - viewX
		if currentVisualX >= viewX && screenX+clusterWidth <= inner.X+inner.W {
			if clusterRunes[0] == '\t' {
				for i := 0; i < clusterWidth; i++ {
					screen.SetContent(screenX+i, screenY, ' ', nil, style)
				}
			} else {
				screen.SetContent(screenX, screenY, clusterRunes[0], clusterRunes[1:], style)
				for cw := 1; cw < clusterWidth; cw++ {
					screen.SetContent(screenX+cw, screenY, ' ', nil, style)
				}
			}
		}

		currentVisualX += clusterWidth
		currentRuneIndex += len(clusterRunes)
		if currentVisualX >= viewX+inner.W {
			break
		}
	}
}

// Label is one entry of a selector bar.
type Label struct {
	Key    string
	Text   string
	Active bool
}

// DrawLabels draws "Key Text" entries left to right on the first row of r.
func DrawLabels(screen tcell.Screen, r Rect, labels []Label, activeTheme *theme.Theme) {
	if r.Empty() {
		return
	}
	base := activeTheme.GetStyle(theme.StyleLabel)
	for x := r.X; x < r.X+r.W; x++ {
		screen.SetContent(x, r.Y, ' ', nil, base)
	}
	maxX := r.X + r.W
	x := r.X + 1
	for _, l := range labels {
		style := base
		if l.Active {
			style = activeTheme.GetStyle(theme.StyleLabelActive)
		}
		x = drawString(screen, x, r.Y, maxX, l.Key+" ", base)
		x = drawString(screen, x, r.Y, maxX, l.Text, style)
		x = drawString(screen, x, r.Y, maxX, "  ", base)
		if x >= maxX {
			return
		}
	}
}
