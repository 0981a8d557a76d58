package parse

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/mlfmt/ir"
	"github.com/signadot/mlfmt/token"
)

// words returns the text nodes of a run of space separated words: one
// node per word with a single space node between words.
func words(s string) []ir.Node {
	var res []ir.Node
	for i, w := range strings.Split(s, " ") {
		if i != 0 {
			res = append(res, ir.FromString(" "))
		}
		res = append(res, ir.FromString(w))
	}
	return res
}

func TestParseOK(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []ir.Node
	}{
		{
			name: "empty",
			in:   "  \n ",
		},
		{
			name: "text",
			in:   "hello   there\n world",
			want: words("hello there world"),
		},
		{
			name: "solo",
			in:   `<img src="a.png"/>`,
			want: []ir.Node{ir.NewSoloTag("img", ir.Params("src", "a.png"))},
		},
		{
			name: "doctype and comment",
			in:   "<!DOCTYPE html><!-- hi -->",
			want: []ir.Node{
				&ir.Doctype{Value: "html"},
				&ir.Comment{Text: " hi "},
			},
		},
		{
			name: "nested",
			in: `<html>
  <body>
    <p class="x" id='y'>Hello world</p>
  </body>
</html>`,
			want: []ir.Node{
				ir.NewTag("html", nil,
					ir.NewTag("body", nil,
						ir.NewTag("p", ir.Params("class", "x", "id", "y"),
							words("Hello world")...))),
			},
		},
		{
			name: "names",
			in:   `<H1 data-id = "3" >x</h1 >`,
			want: []ir.Node{
				ir.NewTag("h1", ir.Params("data-id", "3"), ir.FromString("x")),
			},
		},
		{
			name: "attribute keys keep case",
			in:   `<svg viewBox="0 0 1 1"></svg>`,
			want: []ir.Node{
				ir.NewTag("svg", ir.Params("viewBox", "0 0 1 1")),
			},
		},
		{
			name: "symbols in text",
			in:   `<p>a = b & c -> d!</p>`,
			want: []ir.Node{
				ir.NewTag("p", nil, words("a = b & c -> d!")...),
			},
		},
		{
			name: "apostrophe in text",
			in:   `<p>it's <b>bold</b></p>`,
			want: []ir.Node{
				ir.NewTag("p", nil,
					ir.FromString("it's"),
					ir.NewTag("b", nil, ir.FromString("bold"))),
			},
		},
		{
			name: "apostrophe in comment",
			in:   `<!-- don't --><p>x</p>`,
			want: []ir.Node{
				&ir.Comment{Text: " don't "},
				ir.NewTag("p", nil, ir.FromString("x")),
			},
		},
		{
			name: "whitespace next to tags",
			in:   "<p> a <b>x</b> c </p>",
			want: []ir.Node{
				ir.NewTag("p", nil,
					ir.FromString("a"),
					ir.NewTag("b", nil, ir.FromString("x")),
					ir.FromString("c")),
			},
		},
		{
			name: "quotes in text",
			in:   `<p>say "hi there" now</p>`,
			want: []ir.Node{
				ir.NewTag("p", nil, words(`say "hi there" now`)...),
			},
		},
		{
			name: "quoted close in comment",
			in:   `<!-- 'a --> b`,
			want: []ir.Node{&ir.Comment{Text: " 'a "}, ir.FromString("b")},
		},
		{
			name: "doctype public",
			in:   "<!DOCTYPE html PUBLIC \"-//W3C//DTD\n HTML\">",
			want: []ir.Node{&ir.Doctype{Value: `html PUBLIC "-//W3C//DTD HTML"`}},
		},
		{
			name: "long comment close",
			in:   `<!--a--->`,
			want: []ir.Node{&ir.Comment{Text: "a-"}},
		},
		{
			name: "numbers",
			in:   `<td>3.25 of 10</td>`,
			want: []ir.Node{
				ir.NewTag("td", nil, words("3.25 of 10")...),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseString(tt.in)
			if err != nil {
				t.Fatalf("ParseString(%q) error = %v", tt.in, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseString(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		opts []ParseOption
		is   error
		as   func(error) bool
	}{
		{
			name: "mismatch",
			in:   "<a></b>",
			as: func(err error) bool {
				var me *TagMismatchError
				return errors.As(err, &me) && me.Open == "a" && me.Close == "b"
			},
		},
		{
			name: "depth",
			in:   "<a><a></a></a>",
			opts: []ParseOption{MaxDepth(1)},
			as: func(err error) bool {
				var de *DepthError
				return errors.As(err, &de) && de.Max == 1
			},
		},
		{
			name: "unterminated attribute",
			in:   `<a href="x>`,
			is:   token.ErrUnterminated,
		},
		{
			name: "stray close",
			in:   "</a>",
			as: func(err error) bool {
				var ue *UnexpectedTokenError
				return errors.As(err, &ue) && ue.Expected == token.TEOF
			},
		},
		{
			name: "unclosed",
			in:   "<a><b></b>",
			as: func(err error) bool {
				var ue *UnexpectedTokenError
				return errors.As(err, &ue) && ue.Found.Type == token.TEOF
			},
		},
		{
			name: "bad declaration",
			in:   "<!ELEMENT x>",
			as: func(err error) bool {
				var te *UnexpectedTextError
				return errors.As(err, &te) && te.Found == "ELEMENT"
			},
		},
		{
			name: "unclosed comment",
			in:   "<!-- x",
		},
		{
			name: "missing value",
			in:   "<a href></a>",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes, err := ParseString(tt.in, tt.opts...)
			if err == nil {
				t.Fatalf("ParseString(%q) = %v, want error", tt.in, nodes)
			}
			if nodes != nil {
				t.Errorf("ParseString(%q) returned nodes with error", tt.in)
			}
			if !errors.Is(err, ErrParse) {
				t.Errorf("error %v does not wrap ErrParse", err)
			}
			if _, ok := ErrorPos(err); !ok {
				t.Errorf("error %v has no position", err)
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Errorf("error %v does not wrap %v", err, tt.is)
			}
			if tt.as != nil && !tt.as(err) {
				t.Errorf("unexpected error %#v", err)
			}
		})
	}
}

func TestParseDefaultDepth(t *testing.T) {
	deep := func(n int) string {
		return strings.Repeat("<a>", n) + strings.Repeat("</a>", n)
	}
	if _, err := ParseString(deep(DefaultMaxDepth)); err != nil {
		t.Fatalf("depth %d: %v", DefaultMaxDepth, err)
	}
	_, err := ParseString(deep(DefaultMaxDepth + 1))
	var de *DepthError
	if !errors.As(err, &de) {
		t.Fatalf("depth %d: got %v, want DepthError", DefaultMaxDepth+1, err)
	}
}

func TestParsePositions(t *testing.T) {
	pos := map[ir.Node]token.Pos{}
	nodes, err := ParseString("<a>\n  <b k=\"v\"/>\n</a>", ParsePositions(pos))
	if err != nil {
		t.Fatal(err)
	}
	a := nodes[0].(*ir.Tag)
	b := a.Children[0].(*ir.SoloTag)
	if got, want := pos[a], (token.Pos{LineNo: 1}); got != want {
		t.Errorf("a at %v, want %v", got, want)
	}
	if got, want := pos[b], (token.Pos{LineNo: 2, AtLine: 2, AtWhole: 6}); got != want {
		t.Errorf("b at %v, want %v", got, want)
	}
	if got, want := pos[b.Params[0]], (token.Pos{LineNo: 2, AtLine: 5, AtWhole: 9}); got != want {
		t.Errorf("k at %v, want %v", got, want)
	}
}

func TestMismatchPosition(t *testing.T) {
	_, err := ParseString("<p>\n</q>")
	p, ok := ErrorPos(err)
	if !ok {
		t.Fatalf("no position in %v", err)
	}
	if p.Line() != 1 || p.Col() != 2 {
		t.Errorf("got line %d col %d, want line 1 col 2", p.Line(), p.Col())
	}
}

func TestParseTokensAddsEOF(t *testing.T) {
	toks := token.TokenizeString("<p>x</p>")
	nodes, err := ParseTokens(toks[:len(toks)-1])
	if err != nil {
		t.Fatal(err)
	}
	if len(nodes) != 1 || ir.Name(nodes[0]) != "p" {
		t.Errorf("got %v", nodes)
	}
}
