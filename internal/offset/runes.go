package offset

import "unicode/utf8"

// RuneIndexToByteOffset converts a rune index to a byte offset in a byte slice.
// Returns -1 if runeIndex is out of bounds.
func RuneIndexToByteOffset(line []byte, runeIndex int) int {
	if runeIndex <= 0 {
		return 0
	}
	byteOffset := 0
	currentRune := 0
	for byteOffset < len(line) {
		if currentRune == runeIndex {
			return byteOffset
		}
		_, size := utf8.DecodeRune(line[byteOffset:])
		byteOffset += size
		currentRune++
	}
	if currentRune == runeIndex {
		return len(line)
	}
	return -1
}

// ByteOffsetToRuneIndex converts a byte offset to a rune index in a byte slice.
// An offset inside a multi-byte rune maps to that rune.
func ByteOffsetToRuneIndex(line []byte, byteOffset int) int {
	if byteOffset <= 0 {
		return 0
	}
	if byteOffset > len(line) {
		byteOffset = len(line)
	}
	runeIndex := 0
	currentOffset := 0
	for currentOffset < byteOffset {
		_, size := utf8.DecodeRune(line[currentOffset:])
		if currentOffset+size > byteOffset {
			break
		}
		currentOffset += size
		runeIndex++
	}
	return runeIndex
}

// RuneTable maps every byte offset of a string to its rune index, for
// engines that report byte positions.
type RuneTable []int

// NewRuneTable builds the table for s; it has len(s)+1 entries.
func NewRuneTable(s string) RuneTable {
	t := make(RuneTable, len(s)+1)
	n := 0
	for i := range s {
		for j := i; j < len(s) && (j == i || !utf8.RuneStart(s[j])); j++ {
			t[j] = n
		}
		n++
	}
	t[len(s)] = n
	return t
}

// Rune returns the rune index for byte offset b, or -1 for a negative offset.
func (t RuneTable) Rune(b int) int {
	if b < 0 {
		return -1
	}
	if b >= len(t) {
		return t[len(t)-1]
	}
	return t[b]
}
