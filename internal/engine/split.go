package engine

import "fmt"

// Split divides text around the matches of p. A positive limit caps the
// number of parts and leaves the rest of the text in the last part. Zero
// means no cap with trailing empty parts dropped; a negative limit keeps
// them. A zero-width match at the start of text never yields an empty
// leading part.
func Split(p Pattern, text string, limit int) ([]string, error) {
	parts, _, err := split(p, text, limit)
	return parts, err
}

// SplitWithDelimiters splits like Split but keeps trailing empty parts unless
// limit is positive, and also returns the text of every match that caused a
// split. There is always exactly one delimiter fewer than parts.
func SplitWithDelimiters(p Pattern, text string, limit int) (parts, delimiters []string, err error) {
	if limit <= 0 {
		limit = -1
	}
	return split(p, text, limit)
}

func split(p Pattern, text string, limit int) ([]string, []string, error) {
	r := []rune(text)
	m := p.Matcher(text)
	limited := limit > 0

	var parts, delims []string
	index := 0
	for m.Find() {
		if limited && len(parts) >= limit-1 {
			break
		}
		start, end := m.Start(0), m.End(0)
		if index == 0 && start == 0 && end == 0 {
			continue
		}
		parts = append(parts, string(r[index:start]))
		delims = append(delims, string(r[start:end]))
		index = end
	}
	if err := m.Err(); err != nil {
		return nil, nil, fmt.Errorf("split: %w", err)
	}
	if len(parts) == 0 {
		return []string{text}, nil, nil
	}
	parts = append(parts, string(r[index:]))

	if limit == 0 {
		n := len(parts)
		for n > 0 && parts[n-1] == "" {
			n--
		}
		parts = parts[:n]
		if n == 0 {
			delims = nil
		} else {
			delims = delims[:n-1]
		}
	}
	return parts, delims, nil
}
