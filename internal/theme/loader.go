// internal/theme/loader.go
package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/regextester/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// styleDef is one [styles.Name] table. Unset fields keep the base style.
type styleDef struct {
	Fg        *string `toml:"fg"`
	Bg        *string `toml:"bg"`
	Bold      *bool   `toml:"bold"`
	Italic    *bool   `toml:"italic"`
	Underline *bool   `toml:"underline"`
	Reverse   *bool   `toml:"reverse"`
}

// paintDef is the [paint] shortcut: background colors for the three paint tokens.
type paintDef struct {
	Match string `toml:"match"`
	Group string `toml:"group"`
	Error string `toml:"error"`
}

type themeFile struct {
	Name   string              `toml:"name"`
	IsDark bool                `toml:"is_dark"`
	Paint  paintDef            `toml:"paint"`
	Styles map[string]styleDef `toml:"styles"`
}

// LoadThemeFromFile reads a TOML theme. [paint] colors are applied first,
// then [styles] tables override them; anything left unset comes from the
// built-in theme of the same darkness.
func LoadThemeFromFile(filePath string) (*Theme, error) {
	var file themeFile
	meta, err := toml.DecodeFile(filePath, &file)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read theme file '%s': %w", filePath, err)
		}
		return nil, fmt.Errorf("failed to parse theme file '%s': %w", filePath, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		logger.Warnf("Theme file '%s': unrecognized keys %v", filePath, undecoded)
	}
	if file.Name == "" {
		file.Name = strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	}

	t := &Theme{Name: file.Name, IsDark: file.IsDark, Styles: make(map[string]tcell.Style)}

	base := tcell.StyleDefault
	if def, ok := file.Styles[StyleDefault]; ok {
		if base, err = def.apply(tcell.StyleDefault); err != nil {
			logger.Warnf("Theme '%s': bad Default style, using terminal default: %v", t.Name, err)
			base = tcell.StyleDefault
		}
	}
	t.Styles[StyleDefault] = base

	file.Paint.apply(t, base)

	for name, def := range file.Styles {
		if name == StyleDefault {
			continue
		}
		style, err := def.apply(base)
		if err != nil {
			logger.Warnf("Theme '%s': skipping style '%s': %v", t.Name, name, err)
			continue
		}
		t.Styles[name] = style
	}

	fillMissing(t)
	logger.Debugf("Loaded theme '%s' from '%s'", t.Name, filePath)
	return t, nil
}

func (d styleDef) apply(style tcell.Style) (tcell.Style, error) {
	if d.Fg != nil {
		c, err := parseColor(*d.Fg)
		if err != nil {
			return style, fmt.Errorf("fg: %w", err)
		}
		style = style.Foreground(c)
	}
	if d.Bg != nil {
		c, err := parseColor(*d.Bg)
		if err != nil {
			return style, fmt.Errorf("bg: %w", err)
		}
		style = style.Background(c)
	}
	if d.Bold != nil {
		style = style.Bold(*d.Bold)
	}
	if d.Italic != nil {
		style = style.Italic(*d.Italic)
	}
	if d.Underline != nil {
		style = style.Underline(*d.Underline)
	}
	if d.Reverse != nil {
		style = style.Reverse(*d.Reverse)
	}
	return style, nil
}

// apply sets the paint token styles on t. An error color also tints the
// invalid border.
func (p paintDef) apply(t *Theme, base tcell.Style) {
	set := func(value string, names ...string) {
		if value == "" {
			return
		}
		c, err := parseColor(value)
		if err != nil {
			logger.Warnf("Theme '%s': bad paint color: %v", t.Name, err)
			return
		}
		t.Styles[names[0]] = base.Background(c)
		for _, name := range names[1:] {
			t.Styles[name] = base.Foreground(c).Bold(true)
		}
	}
	set(p.Match, StyleMatch)
	set(p.Group, StyleGroup)
	set(p.Error, StyleError, StyleBorderInvalid)
}

// fillMissing copies styles a file left out from the built-in theme of the same darkness.
func fillMissing(t *Theme) {
	builtin := &ClassicLight
	if t.IsDark {
		builtin = &DevComfortDark
	}
	for name, style := range builtin.Styles {
		if _, ok := t.Styles[name]; !ok {
			t.Styles[name] = style
		}
	}
}

// parseColor accepts #RRGGBB, a tcell color name, "reset" or "default".
func parseColor(s string) (tcell.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "reset":
		return tcell.ColorReset, nil
	case "default", "":
		return tcell.ColorDefault, nil
	}
	if strings.HasPrefix(s, "#") && len(s) != 7 {
		return tcell.ColorDefault, fmt.Errorf("color '%s' is not #RRGGBB", s)
	}
	if c := tcell.GetColor(s); c != tcell.ColorDefault {
		return c, nil
	}
	return tcell.ColorDefault, fmt.Errorf("unknown color '%s'", s)
}
