package libdiff

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/mlfmt/ir"
	"github.com/signadot/mlfmt/parse"
)

func TestLines(t *testing.T) {
	got := Lines("a\nb\nc\n", "a\nx\nc\n")
	want := []Line{
		{Op: Equal, Text: "a"},
		{Op: Delete, Text: "b"},
		{Op: Insert, Text: "x"},
		{Op: Equal, Text: "c"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Lines mismatch (-want +got):\n%s", diff)
	}
	if !Changed(got) {
		t.Errorf("expected changes")
	}
	if Changed(Lines("a\n", "a\n")) {
		t.Errorf("expected no changes")
	}
}

func TestWrite(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	ls := []Line{{Op: Equal, Text: "a"}, {Op: Delete, Text: "b"}, {Op: Insert, Text: "c"}}
	if err := Write(buf, "x.html", "x.html (formatted)", ls, false); err != nil {
		t.Fatal(err)
	}
	want := "--- x.html\n+++ x.html (formatted)\n a\n-b\n+c\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestTreeEqual(t *testing.T) {
	parseOrFail := func(s string) []ir.Node {
		nodes, err := parse.ParseString(s)
		if err != nil {
			t.Fatal(err)
		}
		return nodes
	}
	a := parseOrFail("<p class=\"x\">\n  hi\n</p>")
	b := parseOrFail(`<p class='x'>hi</p>`)
	c := parseOrFail(`<p class="y">hi</p>`)
	if eq, err := TreeEqual(a, b); err != nil || !eq {
		t.Errorf("a, b: %v %v", eq, err)
	}
	if eq, err := TreeEqual(a, c); err != nil || eq {
		t.Errorf("a, c: %v %v", eq, err)
	}
	blank := []ir.Node{ir.NewTag("p", nil, ir.FromString("hi"), ir.FromString("  "))}
	if eq, err := TreeEqual(a[0:0], nil); err != nil || !eq {
		t.Errorf("empty: %v %v", eq, err)
	}
	if eq, err := TreeEqual(blank, parseOrFail("<p>hi</p>")); err != nil || !eq {
		t.Errorf("blank: %v %v", eq, err)
	}
	ls, err := Tree(a, c)
	if err != nil {
		t.Fatal(err)
	}
	if !Changed(ls) {
		t.Errorf("expected tree changes")
	}
}
