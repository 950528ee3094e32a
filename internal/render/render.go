// Package render prints painted text for the non-interactive eval command.
package render

import (
	"io"
	"strings"

	"github.com/bethropolis/regextester/internal/highlight"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ColorMode selects when escape sequences are written.
type ColorMode int

const (
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

// ParseColorMode accepts auto, always or never; anything else is auto.
func ParseColorMode(s string) ColorMode {
	switch strings.ToLower(s) {
	case "always":
		return ColorAlways
	case "never":
		return ColorNever
	}
	return ColorAuto
}

// Styles holds the lipgloss styles for each paint token.
type Styles struct {
	Match   lipgloss.Style
	Group   lipgloss.Style
	Error   lipgloss.Style
	Heading lipgloss.Style
}

// NewRenderer returns a lipgloss renderer for w honouring mode.
func NewRenderer(w io.Writer, mode ColorMode) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	switch mode {
	case ColorAlways:
		r.SetColorProfile(termenv.TrueColor)
	case ColorNever:
		r.SetColorProfile(termenv.Ascii)
	}
	return r
}

// NewStyles paints with the token colors on a black foreground.
func NewStyles(r *lipgloss.Renderer) Styles {
	token := func(c highlight.Color) lipgloss.Style {
		return r.NewStyle().Background(lipgloss.Color(c.Hex())).Foreground(lipgloss.Color("#000000"))
	}
	return Styles{
		Match:   token(highlight.Match),
		Group:   token(highlight.Group),
		Error:   token(highlight.Error).Foreground(lipgloss.Color("#FFFFFF")),
		Heading: r.NewStyle().Bold(true).Underline(true),
	}
}

func (s Styles) forColor(c highlight.Color) (lipgloss.Style, bool) {
	switch c {
	case highlight.Match:
		return s.Match, true
	case highlight.Group:
		return s.Group, true
	case highlight.Error:
		return s.Error, true
	}
	return lipgloss.Style{}, false
}

// segment is a run of runes sharing one color and never crossing a line break.
type segment struct {
	text  string
	color highlight.Color
}

// segments splits text into same-color runs, cutting at '\n' so each run renders on one line.
func segments(text string, canvas *highlight.Canvas) []segment {
	var out []segment
	var cur strings.Builder
	curColor := highlight.Background
	flush := func() {
		if cur.Len() > 0 {
			out = append(out, segment{text: cur.String(), color: curColor})
			cur.Reset()
		}
	}
	i := 0
	for _, r := range text {
		c := canvas.At(i)
		if r == '\n' {
			flush()
			out = append(out, segment{text: "\n", color: highlight.Background})
			curColor = c
			i++
			continue
		}
		if c != curColor {
			flush()
			curColor = c
		}
		cur.WriteRune(r)
		i++
	}
	flush()
	return out
}

// Text renders text with every painted cell styled.
func Text(text string, canvas *highlight.Canvas, styles Styles) string {
	var b strings.Builder
	for _, seg := range segments(text, canvas) {
		if style, ok := styles.forColor(seg.color); ok {
			b.WriteString(style.Render(seg.text))
			continue
		}
		b.WriteString(seg.text)
	}
	return b.String()
}

var markers = map[highlight.Color][2]string{
	highlight.Match: {"[", "]"},
	highlight.Group: {"{", "}"},
	highlight.Error: {"<<", ">>"},
}

// Marked renders painted runs between bracket markers: [match], {group}, <<error>>.
// A painted line break is left unmarked.
func Marked(text string, canvas *highlight.Canvas) string {
	var b strings.Builder
	for _, seg := range segments(text, canvas) {
		if m, ok := markers[seg.color]; ok {
			b.WriteString(m[0] + seg.text + m[1])
			continue
		}
		b.WriteString(seg.text)
	}
	return b.String()
}

// Heading renders a section title.
func Heading(title string, styles Styles) string {
	return styles.Heading.Render(title)
}
