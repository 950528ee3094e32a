package pattern

const (
	// MaskedOpen replaces the '(' of a non-capturing construct. The scan
	// still pairs it with its ')' but gives it no group number.
	MaskedOpen = '\u001a'
	// MaskedLiteral replaces a parenthesis that is plain text, such as one
	// inside a character class or a \Q...\E quote.
	MaskedLiteral = '\u001b'
)

// MaskNonCapturing rewrites text so that only capturing parentheses remain.
// Every '(' that opens a (?...) construct other than a named capture
// becomes MaskedOpen; literal parentheses become MaskedLiteral. Both
// replacements are single-byte runes, so the result has exactly the same
// byte and rune length as text and all offsets stay valid.
func MaskNonCapturing(text string) string {
	r := []rune(text)
	out := make([]rune, len(r))
	copy(out, r)

	depth := 0 // character class nesting
	classStart := -1
	for i := 0; i < len(r); i++ {
		c := r[i]
		if isEscaped(r, i) {
			continue
		}
		if c == '\\' && i+1 < len(r) && r[i+1] == 'Q' {
			j := i + 2
			for ; j < len(r); j++ {
				if r[j] == '\\' && j+1 < len(r) && r[j+1] == 'E' {
					break
				}
				if r[j] == '(' || r[j] == ')' {
					out[j] = MaskedLiteral
				}
			}
			i = j + 1
			continue
		}
		if depth > 0 {
			switch c {
			case '[':
				depth++
			case ']':
				// a ']' right after the opening '[' or '[^' is literal
				if i == classStart+1 || (i == classStart+2 && r[classStart+1] == '^') {
					continue
				}
				depth--
			case '(', ')':
				out[i] = MaskedLiteral
			}
			continue
		}
		switch c {
		case '[':
			depth = 1
			classStart = i
		case '(':
			if i+1 < len(r) && r[i+1] == '?' && !isNamedOpener(r, i) {
				out[i] = MaskedOpen
			}
		}
	}
	return string(out)
}

// isNamedOpener reports whether r[i:] starts with (?<name>, (?P<name> or (?'name'.
// A name that is still being typed counts, so (?<na is a group and not a lookbehind.
func isNamedOpener(r []rune, i int) bool {
	switch {
	case hasPrefix(r, i, "(?P<"):
		return i+4 < len(r) && isNameStart(r[i+4])
	case hasPrefix(r, i, "(?<"), hasPrefix(r, i, "(?'"):
		return i+3 < len(r) && isNameStart(r[i+3])
	}
	return false
}

// groupName returns the name declared by the capturing opener at r[i], if any.
func groupName(r []rune, i int) string {
	var start int
	var end rune
	switch {
	case hasPrefix(r, i, "(?P<"):
		start, end = i+4, '>'
	case hasPrefix(r, i, "(?<"):
		start, end = i+3, '>'
	case hasPrefix(r, i, "(?'"):
		start, end = i+3, '\''
	default:
		return ""
	}
	if start >= len(r) || !isNameStart(r[start]) {
		return ""
	}
	for j := start; j < len(r); j++ {
		if r[j] == end {
			return string(r[start:j])
		}
		if !isNameChar(r[j]) {
			return ""
		}
	}
	return ""
}

func hasPrefix(r []rune, i int, prefix string) bool {
	for _, p := range prefix {
		if i >= len(r) || r[i] != p {
			return false
		}
		i++
	}
	return true
}

func isNameStart(c rune) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNameChar(c rune) bool {
	return isNameStart(c) || (c >= '0' && c <= '9')
}
