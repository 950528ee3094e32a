package engine

import (
	"fmt"
	"strings"
)

// TemplateError reports a malformed replacement template.
type TemplateError struct {
	Template string
	Index    int
	Message  string
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("%s at index %d of replacement %q", e.Message, e.Index, e.Template)
}

// ReplaceAll substitutes every match of p in text with the expanded template.
func ReplaceAll(p Pattern, text, template string) (string, error) {
	return replace(p, text, template, true)
}

// ReplaceFirst substitutes only the first match.
func ReplaceFirst(p Pattern, text, template string) (string, error) {
	return replace(p, text, template, false)
}

// The template syntax: $n inserts group n, ${name} a named group and a
// backslash takes the next character literally. Group numbers are read
// greedily while they stay within the group count.
func replace(p Pattern, text, template string, all bool) (string, error) {
	r := []rune(text)
	m := p.Matcher(text)

	var b strings.Builder
	last := 0
	for m.Find() {
		b.WriteString(string(r[last:m.Start(0)]))
		if err := Expand(&b, p, m, template); err != nil {
			return "", err
		}
		last = m.End(0)
		if !all {
			break
		}
	}
	if err := m.Err(); err != nil {
		return "", fmt.Errorf("replace: %w", err)
	}
	b.WriteString(string(r[last:]))
	return b.String(), nil
}

// Expand appends template to b with group references resolved against the
// current match of m.
func Expand(b *strings.Builder, p Pattern, m Matcher, template string) error {
	t := []rune(template)
	fail := func(i int, msg string) error {
		return &TemplateError{Template: template, Index: i, Message: msg}
	}
	for i := 0; i < len(t); {
		c := t[i]
		switch c {
		case '\\':
			i++
			if i >= len(t) {
				return fail(i-1, "character to be escaped is missing")
			}
			b.WriteRune(t[i])
			i++
		case '$':
			at := i
			i++
			if i >= len(t) {
				return fail(at, "illegal group reference: group index is missing")
			}
			var ref int
			if t[i] == '{' {
				i++
				start := i
				for i < len(t) && isGroupNameRune(t[i], i == start) {
					i++
				}
				if i == start {
					return fail(at, "named capturing group has 0 length name")
				}
				if i >= len(t) || t[i] != '}' {
					return fail(at, "named capturing group is missing trailing '}'")
				}
				name := string(t[start:i])
				i++
				idx, err := p.GroupIndex(name)
				if err != nil {
					return fail(at, fmt.Sprintf("no group with name {%s}", name))
				}
				ref = idx
			} else {
				if t[i] < '0' || t[i] > '9' {
					return fail(at, "illegal group reference")
				}
				ref = int(t[i] - '0')
				if ref > m.GroupCount() {
					return fail(at, fmt.Sprintf("no group %d", ref))
				}
				i++
				for i < len(t) && t[i] >= '0' && t[i] <= '9' {
					next := ref*10 + int(t[i]-'0')
					if next > m.GroupCount() {
						break
					}
					ref = next
					i++
				}
			}
			if s, ok := m.Group(ref); ok {
				b.WriteString(s)
			}
		default:
			b.WriteRune(c)
			i++
		}
	}
	return nil
}

func isGroupNameRune(c rune, first bool) bool {
	letter := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
	if first {
		return letter
	}
	return letter || (c >= '0' && c <= '9') || c == '_'
}
