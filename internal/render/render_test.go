package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/bethropolis/regextester/internal/highlight"
)

func paintedCanvas(text string, spans ...highlight.Span) *highlight.Canvas {
	c := highlight.NewCanvas(len([]rune(text)))
	c.Paint(true, spans...)
	return c
}

func TestParseColorMode(t *testing.T) {
	assert.Equal(t, ColorAlways, ParseColorMode("ALWAYS"))
	assert.Equal(t, ColorNever, ParseColorMode("never"))
	assert.Equal(t, ColorAuto, ParseColorMode(""))
	assert.Equal(t, ColorAuto, ParseColorMode("sometimes"))
}

func TestSegmentsCutAtLineBreaks(t *testing.T) {
	text := "ab\ncd"
	canvas := paintedCanvas(text, highlight.New(highlight.Match, 1, 3, true))
	got := segments(text, canvas)
	want := []segment{
		{text: "a", color: highlight.Background},
		{text: "b", color: highlight.Match},
		{text: "\n", color: highlight.Background},
		{text: "c", color: highlight.Match},
		{text: "d", color: highlight.Background},
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(segment{})); diff != "" {
		t.Errorf("segments mismatch (-want +got):\n%s", diff)
	}
}

func TestMarked(t *testing.T) {
	text := "foo bar baz"
	canvas := paintedCanvas(text,
		highlight.New(highlight.Match, 0, 2, true),
		highlight.New(highlight.Match, 8, 10, true),
		highlight.New(highlight.Group, 9, 9, true),
	)
	assert.Equal(t, "[foo] bar [b]{a}[z]", Marked(text, canvas))

	errCanvas := paintedCanvas("(ab", highlight.New(highlight.Error, 0, 2, true))
	assert.Equal(t, "<<(ab>>", Marked("(ab", errCanvas))
}

func TestMarkedUnicode(t *testing.T) {
	text := "héllo wörld"
	canvas := paintedCanvas(text, highlight.New(highlight.Match, 6, 10, true))
	assert.Equal(t, "héllo [wörld]", Marked(text, canvas))
}

func TestTextWithoutColor(t *testing.T) {
	var buf bytes.Buffer
	styles := NewStyles(NewRenderer(&buf, ColorNever))
	text := "one\ntwo"
	canvas := paintedCanvas(text, highlight.New(highlight.Match, 0, 6, true))
	assert.Equal(t, text, Text(text, canvas, styles))
}

func TestTextWithColor(t *testing.T) {
	var buf bytes.Buffer
	styles := NewStyles(NewRenderer(&buf, ColorAlways))
	text := "one\ntwo"
	canvas := paintedCanvas(text, highlight.New(highlight.Match, 0, 2, true))

	out := Text(text, canvas, styles)
	assert.Contains(t, out, "\x1b[")
	assert.Equal(t, text, ansi.Strip(out))
	// The escape sequences never straddle a line break.
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 2)
	assert.Equal(t, "two", lines[1])
}
