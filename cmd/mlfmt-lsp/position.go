package main

import (
	"unicode/utf16"

	"github.com/signadot/mlfmt/token"
)

// LSP positions count UTF-16 code units within a line; token positions
// count runes.

// utf16Len is the length of runes in UTF-16 code units.
func utf16Len(runes []rune) int {
	n := 0
	for _, r := range runes {
		n += utf16.RuneLen(r)
	}
	return n
}

// utf16Col is the UTF-16 column of p in the document src.
func utf16Col(src []rune, p token.Pos) int {
	end := min(p.AtWhole, len(src))
	return utf16Len(src[max(0, end-p.AtLine):end])
}

// lineColToOffset returns the rune offset of line and the UTF-16 column
// col, clamped to the end of the line and of the document. A column
// inside a surrogate pair maps to the rune after it.
func lineColToOffset(runes []rune, line, col int) int {
	currentLine := 0
	currentCol := 0
	for i, r := range runes {
		if currentLine == line && (currentCol >= col || r == '\n') {
			return i
		}
		if r == '\n' {
			currentLine++
			currentCol = 0
		} else if currentLine == line {
			currentCol += utf16.RuneLen(r)
		}
	}
	return len(runes)
}
