// Package buffer holds the editable text panes of the tester.
package buffer

// Position is a caret position. Line is 0-based; Col is a rune index within the line.
type Position struct {
	Line int
	Col  int
}

// Before reports whether p sorts before q.
func (p Position) Before(q Position) bool {
	return p.Line < q.Line || (p.Line == q.Line && p.Col < q.Col)
}

// Buffer is the read side of a pane, as the drawing code sees it.
type Buffer interface {
	Lines() [][]byte
	Line(index int) ([]byte, error)
	LineCount() int
	Cursor() Position
	Text() string
}
