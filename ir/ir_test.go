package ir

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sampleForest() []Node {
	return []Node{
		&Doctype{Value: "html"},
		NewTag("HTML", nil,
			NewTag("body", Params("class", "main"),
				FromString("hello"),
				NewSoloTag("br", nil),
				&Comment{Text: " note "},
				FromString("  \n "),
			),
		),
	}
}

func TestWalkPaths(t *testing.T) {
	var got []string
	err := Walk(sampleForest(), func(n Node, p Path) error {
		got = append(got, p.String())
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"$/#doctype[0]",
		"$/html[1]",
		"$/html[1]/body[0]",
		"$/html[1]/body[0]/#text[0]",
		"$/html[1]/body[0]/br[1]",
		"$/html[1]/body[0]/#comment[2]",
		"$/html[1]/body[0]/#text[3]",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestWalkSkipChildren(t *testing.T) {
	n := 0
	err := Walk(sampleForest(), func(nd Node, p Path) error {
		n++
		if Name(nd) == "html" {
			return SkipChildren
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("visited %d nodes, want 2", n)
	}
}

func TestPathDepth(t *testing.T) {
	p := Path{{Name: "a", Index: 0}, {Name: "b", Index: 2}}
	if p.Depth() != 1 {
		t.Errorf("depth %d", p.Depth())
	}
	if (Path{}).Depth() != 0 {
		t.Errorf("empty path depth")
	}
}

func TestStripBlank(t *testing.T) {
	orig := sampleForest()
	got := StripBlank(orig)
	body := got[1].(*Tag).Children[0].(*Tag)
	if len(body.Children) != 3 {
		t.Errorf("got %d children, want 3", len(body.Children))
	}
	if len(orig[1].(*Tag).Children[0].(*Tag).Children) != 4 {
		t.Errorf("StripBlank modified its input")
	}
}

func TestWire(t *testing.T) {
	d, err := ToJSON(sampleForest())
	if err != nil {
		t.Fatal(err)
	}
	got, err := FromJSON(d)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(sampleForest(), got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestFromWireInvalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
		err  error
	}{
		{"no name", `[{"kind":"Tag"}]`, ErrInvalid},
		{"solo kids", `[{"kind":"SoloTag","name":"br","children":[{"kind":"Text","text":"x"}]}]`, ErrInvalid},
		{"bad kind", `[{"kind":"Element"}]`, ErrBadKind},
		{"not content", `[{"kind":"Parameter"}]`, ErrBadKind},
		{"null", `[null]`, ErrInvalid},
		{"empty key", `[{"kind":"Tag","name":"a","params":[{"key":"","value":"v"}]}]`, ErrInvalid},
		{"space in name", `[{"kind":"Tag","name":"a b"}]`, ErrInvalid},
		{"symbol in name", `[{"kind":"SoloTag","name":"a/"}]`, ErrInvalid},
		{"digit first", `[{"kind":"Tag","name":"1a"}]`, ErrInvalid},
		{"bad key", `[{"kind":"Tag","name":"a","params":[{"key":"x=y","value":"v"}]}]`, ErrInvalid},
		{"both quotes", `[{"kind":"Tag","name":"a","params":[{"key":"t","value":"it's \"x\""}]}]`, ErrInvalid},
		{"markup in text", `[{"kind":"Text","text":"a <b> c"}]`, ErrInvalid},
		{"comment end", `[{"kind":"Comment","text":" a --> b "}]`, ErrInvalid},
		{"doctype end", `[{"kind":"Doctype","text":"html>"}]`, ErrInvalid},
		{"nested", `[{"kind":"Tag","name":"a","children":[{"kind":"Text","text":"<"}]}]`, ErrInvalid},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FromJSON([]byte(tc.in))
			if !errors.Is(err, tc.err) {
				t.Errorf("got %v, want %v", err, tc.err)
			}
		})
	}
}

func TestFromWireReparses(t *testing.T) {
	in := `[{"kind":"Tag","name":"svg:g","params":[{"key":"data-x.y","value":"it's"}],` +
		`"children":[{"kind":"Text","text":"a & b"},{"kind":"SoloTag","name":"h1"}]}]`
	got, err := FromJSON([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	if n := Name(got[0]); n != "svg:g" {
		t.Errorf("got name %q", n)
	}
}

func TestFromWireLowercases(t *testing.T) {
	got, err := FromJSON([]byte(`[{"kind":"Tag","name":"DIV"}]`))
	if err != nil {
		t.Fatal(err)
	}
	if Name(got[0]) != "div" {
		t.Errorf("got name %q", Name(got[0]))
	}
}

func TestParams(t *testing.T) {
	ps := Params("a", "1", "b", "2", "a", "3")
	v, ok := ps.Get("a")
	if !ok || v != "1" {
		t.Errorf("Get a: %q %v", v, ok)
	}
	if _, ok := ps.Get("c"); ok {
		t.Errorf("Get c found")
	}
	want := map[string]string{"a": "1", "b": "2"}
	if diff := cmp.Diff(want, ps.Map()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if Params("x") != nil {
		t.Errorf("odd params not nil")
	}
}

func TestClone(t *testing.T) {
	orig := sampleForest()
	c := CloneForest(orig)
	c[1].(*Tag).Children[0].(*Tag).Params[0].Value.Value = "changed"
	if v, _ := orig[1].(*Tag).Children[0].(*Tag).Params.Get("class"); v != "main" {
		t.Errorf("clone shares parameters")
	}
}

func TestKindText(t *testing.T) {
	for _, k := range Kinds() {
		d, err := k.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var got Kind
		if err := got.UnmarshalText(d); err != nil || got != k {
			t.Errorf("%s: got %v, %v", d, got, err)
		}
	}
	if s := Kind(-1).String(); s != "<unknown kind>" {
		t.Errorf("got %q", s)
	}
	if s := Kind(len(Kinds())).String(); s != "<unknown kind>" {
		t.Errorf("got %q", s)
	}
}
