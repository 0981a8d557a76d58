package format

import (
	"errors"
	"testing"
)

func TestParseFormat(t *testing.T) {
	for _, f := range AllFormats() {
		got, err := ParseFormat(f.String())
		if err != nil {
			t.Fatal(err)
		}
		if got != f {
			t.Errorf("ParseFormat(%q) = %s", f.String(), got)
		}
	}
	if f, err := ParseFormat("html"); err != nil || !f.IsMarkup() {
		t.Errorf("html: %v %v", f, err)
	}
	if _, err := ParseFormat("toml"); !errors.Is(err, ErrBadFormat) {
		t.Errorf("toml: got %v", err)
	}
}

func TestUnmarshalText(t *testing.T) {
	var f Format
	if err := f.UnmarshalText([]byte("y")); err != nil {
		t.Fatal(err)
	}
	if !f.IsYAML() || f.Suffix() != ".yaml" {
		t.Errorf("got %s", f)
	}
	if Format(9).Suffix() != "" {
		t.Errorf("bad format has a suffix")
	}
}
