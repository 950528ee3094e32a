// Package pattern analyses the structure of a regular expression as typed:
// which parentheses open capture groups, where they close, and which
// characters are escaped. It never compiles the pattern.
package pattern

// IsEscaped reports whether the rune at index is preceded by an odd number
// of consecutive backslashes. Index 0 is never escaped.
func IsEscaped(text string, index int) bool {
	return isEscaped([]rune(text), index)
}

func isEscaped(r []rune, index int) bool {
	if index <= 0 || index > len(r) {
		return false
	}
	n := 0
	for i := index - 1; i >= 0 && r[i] == '\\'; i-- {
		n++
	}
	return n%2 == 1
}
