package mlfmt

import (
	"errors"
	"strings"
	"testing"

	"github.com/signadot/mlfmt/libdiff"
	"github.com/signadot/mlfmt/parse"
)

func TestFormat(t *testing.T) {
	out, err := Format([]byte("<html><body><h1>hello</h1></body></html>"), Indent(2))
	if err != nil {
		t.Fatal(err)
	}
	want := `<html>
  <body>
    <h1>
      hello
    </h1>
  </body>
</html>
`
	if string(out) != want {
		t.Errorf("got\n%s\nwant\n%s", out, want)
	}
}

func TestFormatErrors(t *testing.T) {
	_, err := Format([]byte("<a></b>"))
	var me *parse.TagMismatchError
	if !errors.As(err, &me) || me.Open != "a" || me.Close != "b" {
		t.Errorf("got %v", err)
	}
	if err := Check([]byte("<a><a></a></a>"), MaxDepth(1)); !errors.Is(err, parse.ErrParse) {
		t.Errorf("got %v", err)
	}
	if err := Check([]byte(`<img src="https://example.com" />`)); err != nil {
		t.Errorf("got %v", err)
	}
}

func TestRoundTrip(t *testing.T) {
	docs := []string{
		"<!doctype html>\n<html>\n<head><title>x</title></head>\n<body>\n<p>one  two</p>\n<hr/>\n</body>\n</html>\n",
		`<ul><li>it's</li><li>"quoted" text</li></ul>`,
		`<!-- a -- b --><a href="x" data-y='1'>link</a>`,
		"plain text\nover lines",
	}
	for _, doc := range docs {
		for _, indent := range []int{0, 2, 4} {
			out, err := RoundTrip([]byte(doc), Indent(indent))
			if err != nil {
				t.Errorf("%q indent %d: %v", doc, indent, err)
				continue
			}
			again, err := Format(out, Indent(indent))
			if err != nil {
				t.Fatal(err)
			}
			if string(again) != string(out) {
				t.Errorf("not idempotent:\n%s\n---\n%s", out, again)
			}
		}
	}
}

func TestRoundTripError(t *testing.T) {
	err := error(&RoundTripError{Diff: []libdiff.Line{
		{Op: libdiff.Equal, Text: "- kind: Tag"},
		{Op: libdiff.Delete, Text: "  name: a"},
		{Op: libdiff.Insert, Text: "  name: b"},
	}})
	if !errors.Is(err, ErrRoundTrip) {
		t.Errorf("does not wrap ErrRoundTrip")
	}
	want := ErrRoundTrip.Error() + "\n-  name: a\n+  name: b"
	if err.Error() != want {
		t.Errorf("got %q want %q", err.Error(), want)
	}
}

func TestMatch(t *testing.T) {
	ms, err := Match([]byte(`<div><a href="x">1</a><a>2</a></div>`), `name == "a" && has("href")`)
	if err != nil {
		t.Fatal(err)
	}
	if len(ms) != 1 || ms[0].Path.String() != "$/div[0]/a[0]" {
		t.Errorf("got %v", ms)
	}
	if _, err := Match([]byte(`<a></a>`), `name ==`); err == nil {
		t.Errorf("expected compile error")
	}
}

func TestPatch(t *testing.T) {
	src := []byte(`<p class="x">hi</p>`)
	tests := []struct {
		name  string
		patch string
		want  string
	}{
		{
			name:  "replace value",
			patch: `[{"op":"replace","path":"/0/params/0/value","value":"y"}]`,
			want:  "<p class=\"y\">\n  hi\n</p>\n",
		},
		{
			name:  "add child",
			patch: `[{"op":"add","path":"/0/children/-","value":{"kind":"SoloTag","name":"br"}}]`,
			want:  "<p class=\"x\">\n  hi\n  <br/>\n</p>\n",
		},
		{
			name:  "remove params",
			patch: `[{"op":"remove","path":"/0/params"}]`,
			want:  "<p>\n  hi\n</p>\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Patch(src, []byte(tt.patch), Indent(2))
			if err != nil {
				t.Fatal(err)
			}
			if string(out) != tt.want {
				t.Errorf("got %q want %q", out, tt.want)
			}
		})
	}
}

func TestPatchErrors(t *testing.T) {
	src := []byte(`<p>hi</p>`)
	for _, patch := range []string{
		`{"op":"add"}`,
		`[{"op":"remove","path":"/3"}]`,
		`[{"op":"replace","path":"/0/kind","value":"Bogus"}]`,
		`[{"op":"add","path":"/0/children/-","value":{"kind":"SoloTag","name":"br","children":[{"kind":"Text","text":"x"}]}}]`,
		`[{"op":"replace","path":"/0/children/0/text","value":"a</p><p>b"}]`,
		`[{"op":"replace","path":"/0/name","value":"p class"}]`,
		`[{"op":"add","path":"/0/params","value":[{"key":"title","value":"it's \"x\""}]}]`,
	} {
		_, err := Patch(src, []byte(patch))
		if !errors.Is(err, ErrPatch) {
			t.Errorf("%s: got %v, want ErrPatch", patch, err)
		}
		if err != nil && strings.Contains(err.Error(), "<p>") {
			t.Errorf("error mentions output")
		}
	}
}
