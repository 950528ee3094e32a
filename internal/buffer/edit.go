package buffer

// EditKind indicates whether text was inserted or deleted.
type EditKind int

const (
	EditInsert EditKind = iota
	EditDelete
)

// Edit is one reversible change made through the editing methods of a Pane.
type Edit struct {
	Kind         EditKind
	Text         string   // text inserted or deleted, lines joined with "\n"
	Start        Position // where the change began
	End          Position // after the inserted text, or end of the deleted range
	CursorBefore Position
}
