package token

import "fmt"

// Pos is a position in a document. Offsets count runes.
type Pos struct {
	// LineNo is the 1-based line number.
	LineNo int
	// AtLine is the offset within the current line.
	AtLine int
	// AtWhole is the offset from the start of the document.
	AtWhole int
}

// StartPos is the position of the first rune of a document.
func StartPos() Pos {
	return Pos{LineNo: 1}
}

func (p Pos) advance(r rune) Pos {
	if r == '\n' {
		return Pos{LineNo: p.LineNo + 1, AtWhole: p.AtWhole + 1}
	}
	return Pos{LineNo: p.LineNo, AtLine: p.AtLine + 1, AtWhole: p.AtWhole + 1}
}

// Line returns the 0-based line, as editors count them.
func (p Pos) Line() int {
	return max(0, p.LineNo-1)
}

// Col returns the 0-based column.
func (p Pos) Col() int {
	return p.AtLine
}

func (p Pos) String() string {
	return fmt.Sprintf("offset %d (line=%d, col=%d)", p.AtWhole, p.LineNo, p.AtLine+1)
}

// Advance returns the position following the runes of s.
func (p Pos) Advance(s string) Pos {
	for _, r := range s {
		p = p.advance(r)
	}
	return p
}
