package mlfmt

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/signadot/mlfmt/encode"
	"github.com/signadot/mlfmt/ir"
	"github.com/signadot/mlfmt/libdiff"
	"github.com/signadot/mlfmt/parse"
)

var ErrRoundTrip = errors.New("formatting changed the document structure")

type Config struct {
	Indent   int
	MaxDepth int
	Colors   *encode.Colors
}

type Option func(*Config)

func Indent(n int) Option {
	return func(c *Config) { c.Indent = n }
}

func MaxDepth(n int) Option {
	return func(c *Config) { c.MaxDepth = n }
}

// Colors colors rendered markup. Colored output does not parse back.
func Colors(colors *encode.Colors) Option {
	return func(c *Config) { c.Colors = colors }
}

// NewConfig applies opts to the default configuration.
func NewConfig(opts ...Option) *Config {
	c := &Config{Indent: encode.DefaultIndent, MaxDepth: parse.DefaultMaxDepth}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Config) ParseOpts() []parse.ParseOption {
	return []parse.ParseOption{parse.MaxDepth(c.MaxDepth)}
}

func (c *Config) EncodeOpts() []encode.EncodeOption {
	res := []encode.EncodeOption{encode.Indent(c.Indent)}
	if c.Colors != nil {
		res = append(res, encode.EncodeColors(c.Colors))
	}
	return res
}

// Format parses src and renders it.
func Format(src []byte, opts ...Option) ([]byte, error) {
	c := NewConfig(opts...)
	nodes, err := parse.Parse(src, c.ParseOpts()...)
	if err != nil {
		return nil, err
	}
	return render(nodes, c)
}

// Check parses src, reporting the first error.
func Check(src []byte, opts ...Option) error {
	c := NewConfig(opts...)
	_, err := parse.Parse(src, c.ParseOpts()...)
	return err
}

// RoundTripError reports a document whose formatting parses to a
// different tree.
type RoundTripError struct {
	Diff []libdiff.Line
}

func (e *RoundTripError) Error() string {
	var b strings.Builder
	b.WriteString(ErrRoundTrip.Error())
	for _, l := range e.Diff {
		if l.Op == libdiff.Equal {
			continue
		}
		b.WriteString("\n")
		b.WriteString(l.String())
	}
	return b.String()
}

func (e *RoundTripError) Unwrap() error {
	return ErrRoundTrip
}

// RoundTrip formats src and verifies that the result parses to a tree
// equal to that of src, ignoring whitespace only text. It returns the
// formatted document.
func RoundTrip(src []byte, opts ...Option) ([]byte, error) {
	c := NewConfig(opts...)
	c.Colors = nil
	nodes, err := parse.Parse(src, c.ParseOpts()...)
	if err != nil {
		return nil, err
	}
	out, err := render(nodes, c)
	if err != nil {
		return nil, err
	}
	again, err := parse.Parse(out, c.ParseOpts()...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRoundTrip, err)
	}
	eq, err := libdiff.TreeEqual(nodes, again)
	if err != nil {
		return nil, err
	}
	if !eq {
		diff, err := libdiff.Tree(nodes, again)
		if err != nil {
			return nil, err
		}
		return nil, &RoundTripError{Diff: diff}
	}
	return out, nil
}

func render(nodes []ir.Node, c *Config) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(nodes, buf, c.EncodeOpts()...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
