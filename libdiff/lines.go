package libdiff

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

type Op int

const (
	Equal Op = iota
	Insert
	Delete
)

func (o Op) Prefix() string {
	switch o {
	case Insert:
		return "+"
	case Delete:
		return "-"
	default:
		return " "
	}
}

// Line is one line of a line diff, without its newline.
type Line struct {
	Op   Op
	Text string
}

func (l Line) String() string {
	return l.Op.Prefix() + l.Text
}

// Lines diffs from and to line by line.
func Lines(from, to string) []Line {
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)
	var res []Line
	for _, d := range diffs {
		op := Equal
		switch d.Type {
		case diffpatch.DiffInsert:
			op = Insert
		case diffpatch.DiffDelete:
			op = Delete
		}
		text := strings.TrimSuffix(d.Text, "\n")
		for ln := range strings.SplitSeq(text, "\n") {
			res = append(res, Line{Op: op, Text: ln})
		}
	}
	return res
}

// Changed reports whether any line was inserted or deleted.
func Changed(ls []Line) bool {
	for _, l := range ls {
		if l.Op != Equal {
			return true
		}
	}
	return false
}

// Write writes ls to w headed by the names of both sides. Inserted and
// deleted lines are colored when colored is set.
func Write(w io.Writer, fromName, toName string, ls []Line, colored bool) error {
	if _, err := fmt.Fprintf(w, "--- %s\n+++ %s\n", fromName, toName); err != nil {
		return err
	}
	for _, l := range ls {
		s := l.String()
		if colored {
			switch l.Op {
			case Insert:
				s = color.GreenString("%s", s)
			case Delete:
				s = color.RedString("%s", s)
			}
		}
		if _, err := io.WriteString(w, s+"\n"); err != nil {
			return err
		}
	}
	return nil
}
