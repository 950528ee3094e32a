// internal/theme/theme.go
package theme

import (
	"strings"

	"github.com/bethropolis/regextester/internal/highlight"
	"github.com/bethropolis/regextester/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// Style names every theme is expected to define.
const (
	StyleDefault          = "Default"
	StyleMatch            = "Match"
	StyleGroup            = "Group"
	StyleError            = "Error"
	StyleBorder           = "Border"
	StyleBorderFocus      = "BorderFocus"
	StyleBorderInvalid    = "BorderInvalid"
	StyleLabel            = "Label"
	StyleLabelActive      = "LabelActive"
	StyleStatusBar        = "StatusBar"
	StyleStatusBarMessage = "StatusBarMessage"
)

type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
}

// GetStyle looks up name, then the part before the first dot, then Default.
func (t *Theme) GetStyle(name string) tcell.Style {
	if style, ok := t.Styles[name]; ok {
		return style
	}

	if dotIndex := strings.Index(name, "."); dotIndex != -1 {
		baseName := name[:dotIndex]
		if style, ok := t.Styles[baseName]; ok {
			logger.Debugf("Theme '%s': Style '%s' not found, using base '%s'", t.Name, name, baseName)
			return style
		}
	}

	if defStyle, ok := t.Styles[StyleDefault]; ok {
		if name != StyleDefault {
			logger.Debugf("Theme '%s': Style '%s' not found, falling back to 'Default'", t.Name, name)
		}
		return defStyle
	}

	logger.Warnf("Theme '%s': Style '%s' and 'Default' style not found, using tcell default.", t.Name, name)
	return tcell.StyleDefault
}

// PaintStyle is the cell style for a paint token.
func (t *Theme) PaintStyle(c highlight.Color) tcell.Style {
	switch c {
	case highlight.Match:
		return t.GetStyle(StyleMatch)
	case highlight.Group:
		return t.GetStyle(StyleGroup)
	case highlight.Error:
		return t.GetStyle(StyleError)
	}
	return t.GetStyle(StyleDefault)
}

// BorderStyle picks the pane border style; invalid wins over focus.
func (t *Theme) BorderStyle(focused, invalid bool) tcell.Style {
	switch {
	case invalid:
		return t.GetStyle(StyleBorderInvalid)
	case focused:
		return t.GetStyle(StyleBorderFocus)
	}
	return t.GetStyle(StyleBorder)
}

func hexColor(c highlight.Color) tcell.Color {
	return tcell.GetColor(strings.ToLower(c.Hex()))
}

var (
	// ClassicLight uses the match and group paint colors on a white background.
	ClassicLight Theme
	// DevComfortDark is the default theme.
	DevComfortDark Theme
)

func init() {
	black := tcell.ColorBlack
	white := tcell.ColorWhite
	lightBase := tcell.StyleDefault.Background(white).Foreground(black)
	ClassicLight = Theme{
		Name:   "Classic Light",
		IsDark: false,
		Styles: map[string]tcell.Style{
			StyleDefault:          lightBase,
			StyleMatch:            lightBase.Background(hexColor(highlight.Match)),
			StyleGroup:            lightBase.Background(hexColor(highlight.Group)),
			StyleError:            lightBase.Background(hexColor(highlight.Error)).Foreground(white),
			StyleBorder:           lightBase.Foreground(tcell.ColorGray),
			StyleBorderFocus:      lightBase.Foreground(tcell.ColorNavy).Bold(true),
			StyleBorderInvalid:    lightBase.Foreground(hexColor(highlight.Error)).Bold(true),
			StyleLabel:            lightBase.Foreground(tcell.ColorGray),
			StyleLabelActive:      lightBase.Foreground(black).Background(hexColor(highlight.Match)).Bold(true),
			StyleStatusBar:        tcell.StyleDefault.Background(tcell.ColorSilver).Foreground(black),
			StyleStatusBarMessage: tcell.StyleDefault.Background(tcell.ColorSilver).Foreground(tcell.ColorNavy).Bold(true),
		},
	}

	dcBackground := tcell.NewHexColor(0x2a2f38)
	dcForeground := tcell.NewHexColor(0xc5cdd9)
	dcComment := tcell.NewHexColor(0x5c6370)
	dcYellow := tcell.NewHexColor(0xe5c07b)
	dcCyan := tcell.NewHexColor(0x56b6c2)
	dcBlue := tcell.NewHexColor(0x61afef)
	dcRed := tcell.NewHexColor(0xe06c75)

	baseStyle := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(dcForeground)
	DevComfortDark = Theme{
		Name:   "DevComfort Dark",
		IsDark: true,
		Styles: map[string]tcell.Style{
			StyleDefault:          baseStyle,
			StyleMatch:            baseStyle.Background(tcell.NewHexColor(0x2c4f5e)).Foreground(tcell.ColorWhite),
			StyleGroup:            baseStyle.Background(dcCyan).Foreground(tcell.ColorBlack),
			StyleError:            baseStyle.Background(dcRed).Foreground(tcell.ColorBlack),
			StyleBorder:           baseStyle.Foreground(dcComment),
			StyleBorderFocus:      baseStyle.Foreground(dcBlue).Bold(true),
			StyleBorderInvalid:    baseStyle.Foreground(dcRed).Bold(true),
			StyleLabel:            baseStyle.Foreground(dcComment),
			StyleLabelActive:      baseStyle.Foreground(dcYellow).Bold(true),
			StyleStatusBar:        tcell.StyleDefault.Background(dcBackground).Foreground(dcForeground),
			StyleStatusBarMessage: tcell.StyleDefault.Background(dcBackground).Foreground(dcForeground).Bold(true),
		},
	}
}
