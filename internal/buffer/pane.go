package buffer

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/bethropolis/regextester/internal/offset"
)

// Pane is a line buffer with a single caret. Lines never contain '\n' or '\r'.
type Pane struct {
	lines    [][]byte
	cursor   Position
	filePath string
	modified bool
	readOnly bool
	onEdit   func(Edit)
}

// NewPane creates an empty Pane.
func NewPane() *Pane {
	return &Pane{lines: [][]byte{{}}}
}

// NewReadOnlyPane creates a Pane that ignores edits; SetText still replaces its content.
func NewReadOnlyPane() *Pane {
	p := NewPane()
	p.readOnly = true
	return p
}

// splitLines breaks text on "\r\n", "\r" or "\n".
func splitLines(text []byte) [][]byte {
	text = bytes.ReplaceAll(text, []byte("\r\n"), []byte("\n"))
	text = bytes.ReplaceAll(text, []byte("\r"), []byte("\n"))
	parts := bytes.Split(text, []byte("\n"))
	lines := make([][]byte, len(parts))
	for i, part := range parts {
		lines[i] = append([]byte(nil), part...)
	}
	return lines
}

// SetText replaces the content and puts the caret at the start.
func (p *Pane) SetText(text string) {
	p.lines = splitLines([]byte(text))
	p.cursor = Position{}
	p.modified = false
}

// Load reads a file into the pane. A missing file leaves an empty pane bound to filePath.
func (p *Pane) Load(filePath string) error {
	file, err := os.Open(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			p.SetText("")
			p.filePath = filePath
			return nil
		}
		return fmt.Errorf("failed to open file '%s': %w", filePath, err)
	}
	defer file.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(bufio.NewReader(file)); err != nil {
		return fmt.Errorf("error reading file '%s': %w", filePath, err)
	}
	caret := p.cursor
	p.lines = splitLines(buf.Bytes())
	p.filePath = filePath
	p.modified = false
	p.SetCursor(caret)
	return nil
}

// Reload re-reads the bound file, keeping the caret where it can.
func (p *Pane) Reload() error {
	if p.filePath == "" {
		return errors.New("no file bound to pane")
	}
	return p.Load(p.filePath)
}

func (p *Pane) FilePath() string { return p.filePath }
func (p *Pane) IsModified() bool { return p.modified }
func (p *Pane) ReadOnly() bool   { return p.readOnly }
func (p *Pane) Lines() [][]byte  { return p.lines }
func (p *Pane) LineCount() int   { return len(p.lines) }
func (p *Pane) Cursor() Position { return p.cursor }

func (p *Pane) Line(index int) ([]byte, error) {
	if index < 0 || index >= len(p.lines) {
		return nil, fmt.Errorf("line index %d out of bounds (0-%d)", index, len(p.lines)-1)
	}
	return p.lines[index], nil
}

// Text joins the lines with "\n"; it is what the pane displays.
func (p *Pane) Text() string {
	return string(bytes.Join(p.lines, []byte("\n")))
}

// RawText joins the lines with the separator of ending; it is what the engine sees.
func (p *Pane) RawText(ending offset.LineEnding) string {
	return string(bytes.Join(p.lines, []byte(ending.Separator())))
}

// Len is the rune length of Text.
func (p *Pane) Len() int {
	n := len(p.lines) - 1
	for _, line := range p.lines {
		n += utf8.RuneCount(line)
	}
	return n
}

// CaretOffset is the caret as a rune offset into Text.
func (p *Pane) CaretOffset() int {
	n := 0
	for i := 0; i < p.cursor.Line; i++ {
		n += utf8.RuneCount(p.lines[i]) + 1
	}
	return n + p.cursor.Col
}

// SetCursor moves the caret, clamping it into the buffer.
func (p *Pane) SetCursor(pos Position) {
	valid, _ := p.validatePosition(pos)
	p.cursor = valid
}

func (p *Pane) MoveLeft() {
	switch {
	case p.cursor.Col > 0:
		p.cursor.Col--
	case p.cursor.Line > 0:
		p.cursor.Line--
		p.cursor.Col = utf8.RuneCount(p.lines[p.cursor.Line])
	}
}

func (p *Pane) MoveRight() {
	switch {
	case p.cursor.Col < utf8.RuneCount(p.lines[p.cursor.Line]):
		p.cursor.Col++
	case p.cursor.Line < len(p.lines)-1:
		p.cursor.Line++
		p.cursor.Col = 0
	}
}

func (p *Pane) MoveUp()   { p.SetCursor(Position{Line: p.cursor.Line - 1, Col: p.cursor.Col}) }
func (p *Pane) MoveDown() { p.SetCursor(Position{Line: p.cursor.Line + 1, Col: p.cursor.Col}) }
func (p *Pane) Home()     { p.cursor.Col = 0 }
func (p *Pane) End()      { p.cursor.Col = utf8.RuneCount(p.lines[p.cursor.Line]) }

// SetEditHook registers fn to receive every edit made through InsertText,
// Backspace and DeleteForward. InsertAt and DeleteRange do not report.
func (p *Pane) SetEditHook(fn func(Edit)) {
	p.onEdit = fn
}

func (p *Pane) emit(e Edit) {
	if p.onEdit != nil {
		p.onEdit(e)
	}
}

// InsertText inserts text at the caret and moves the caret past it.
// Line breaks in text are normalised like SetText does.
func (p *Pane) InsertText(text string) bool {
	if p.readOnly || text == "" {
		return false
	}
	start, _ := p.validatePosition(p.cursor)
	end := p.InsertAt(start, text)
	p.cursor = end
	p.emit(Edit{Kind: EditInsert, Text: p.textRange(start, end), Start: start, End: end, CursorBefore: start})
	return true
}

// InsertAt inserts text at pos without moving the caret and returns the
// position just past the inserted text.
func (p *Pane) InsertAt(pos Position, text string) Position {
	inserted := splitLines([]byte(text))
	pos, _ = p.validatePosition(pos)
	p.insert(pos, inserted)
	last := len(inserted) - 1
	if last == 0 {
		return Position{Line: pos.Line, Col: pos.Col + utf8.RuneCount(inserted[0])}
	}
	return Position{Line: pos.Line + last, Col: utf8.RuneCount(inserted[last])}
}

// DeleteRange removes the text between start and end without reporting it.
// The caret is clamped back into the buffer.
func (p *Pane) DeleteRange(start, end Position) {
	p.delete(start, end)
	p.SetCursor(p.cursor)
}

func (p *Pane) InsertRune(r rune) bool { return p.InsertText(string(r)) }
func (p *Pane) Newline() bool          { return p.InsertText("\n") }

// Backspace deletes the rune before the caret, joining lines at column 0.
func (p *Pane) Backspace() bool {
	if p.readOnly || (p.cursor.Line == 0 && p.cursor.Col == 0) {
		return false
	}
	end := p.cursor
	p.MoveLeft()
	start := p.cursor
	text := p.textRange(start, end)
	p.delete(start, end)
	p.emit(Edit{Kind: EditDelete, Text: text, Start: start, End: end, CursorBefore: end})
	return true
}

// DeleteForward deletes the rune under the caret, joining lines at line end.
func (p *Pane) DeleteForward() bool {
	if p.readOnly {
		return false
	}
	start := p.cursor
	p.MoveRight()
	end := p.cursor
	p.cursor = start
	if start == end {
		return false
	}
	text := p.textRange(start, end)
	p.delete(start, end)
	p.emit(Edit{Kind: EditDelete, Text: text, Start: start, End: end, CursorBefore: start})
	return true
}

// insert splices lines into the buffer at pos.
func (p *Pane) insert(pos Position, inserted [][]byte) {
	validPos, byteOffset := p.validatePosition(pos)
	p.modified = true

	currentLine := p.lines[validPos.Line]
	tail := append([]byte(nil), currentLine[byteOffset:]...)
	p.lines[validPos.Line] = append(currentLine[:byteOffset], inserted[0]...)

	if len(inserted) == 1 {
		p.lines[validPos.Line] = append(p.lines[validPos.Line], tail...)
		return
	}
	newLines := make([][]byte, len(inserted)-1)
	copy(newLines, inserted[1:])
	newLines[len(newLines)-1] = append(newLines[len(newLines)-1], tail...)
	rest := append(newLines, p.lines[validPos.Line+1:]...)
	p.lines = append(p.lines[:validPos.Line+1], rest...)
}

// delete removes the text in [start, end).
func (p *Pane) delete(start, end Position) {
	if end.Before(start) {
		start, end = end, start
	}
	vStart, startOffset := p.validatePosition(start)
	vEnd, endOffset := p.validatePosition(end)
	if vStart == vEnd {
		return
	}
	p.modified = true

	startLine := p.lines[vStart.Line]
	endPart := append([]byte(nil), p.lines[vEnd.Line][endOffset:]...)
	p.lines[vStart.Line] = append(startLine[:startOffset], endPart...)
	if vEnd.Line > vStart.Line {
		p.lines = append(p.lines[:vStart.Line+1], p.lines[vEnd.Line+1:]...)
	}
}

// textRange returns the text in [start, end) with lines joined by "\n".
func (p *Pane) textRange(start, end Position) string {
	if end.Before(start) {
		start, end = end, start
	}
	vStart, startOffset := p.validatePosition(start)
	vEnd, endOffset := p.validatePosition(end)
	if vStart.Line == vEnd.Line {
		return string(p.lines[vStart.Line][startOffset:endOffset])
	}
	var b strings.Builder
	b.Write(p.lines[vStart.Line][startOffset:])
	for i := vStart.Line + 1; i < vEnd.Line; i++ {
		b.WriteByte('\n')
		b.Write(p.lines[i])
	}
	b.WriteByte('\n')
	b.Write(p.lines[vEnd.Line][:endOffset])
	return b.String()
}

// validatePosition clamps pos into the buffer and returns its byte offset within the line.
func (p *Pane) validatePosition(pos Position) (Position, int) {
	if len(p.lines) == 0 {
		p.lines = [][]byte{{}}
	}
	if pos.Line < 0 {
		pos.Line = 0
	}
	if pos.Line >= len(p.lines) {
		pos.Line = len(p.lines) - 1
	}
	if pos.Col < 0 {
		pos.Col = 0
	}
	line := p.lines[pos.Line]
	byteOffset := offset.RuneIndexToByteOffset(line, pos.Col)
	if byteOffset < 0 {
		pos.Col = utf8.RuneCount(line)
		byteOffset = len(line)
	}
	return pos, byteOffset
}

// String is a debugging aid showing the caret as '|'.
func (p *Pane) String() string {
	var b strings.Builder
	for i, line := range p.lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		if i == p.cursor.Line {
			off := offset.RuneIndexToByteOffset(line, p.cursor.Col)
			b.Write(line[:off])
			b.WriteByte('|')
			b.Write(line[off:])
			continue
		}
		b.Write(line)
	}
	return b.String()
}

var _ Buffer = (*Pane)(nil)
