package ir

import (
	"errors"
	"strconv"
	"strings"
)

// Step is one element of a Path: a node name and its index among its
// siblings.
type Step struct {
	Name  string
	Index int
}

// Path locates a node in a forest.
type Path []Step

func (p Path) String() string {
	var b strings.Builder
	b.WriteByte('$')
	for _, s := range p {
		b.WriteByte('/')
		b.WriteString(s.Name)
		b.WriteByte('[')
		b.WriteString(strconv.Itoa(s.Index))
		b.WriteByte(']')
	}
	return b.String()
}

// Depth is the nesting depth of the located node, 0 at the top level.
func (p Path) Depth() int {
	return max(0, len(p)-1)
}

// StepName is the path step name of a node: the tag name for tags, and
// #comment, #doctype or #text otherwise.
func StepName(n Node) string {
	switch x := n.(type) {
	case *Tag:
		return x.Name
	case *SoloTag:
		return x.Name
	case *Comment:
		return "#comment"
	case *Doctype:
		return "#doctype"
	case *Text:
		return "#text"
	}
	return "#" + strings.ToLower(n.Kind().String())
}

// SkipChildren may be returned by a WalkFunc to skip the children of
// the current node.
var SkipChildren = errors.New("skip children")

type WalkFunc func(n Node, p Path) error

// Walk calls fn for every content node in document order, parents before
// children.
func Walk(nodes []Node, fn WalkFunc) error {
	return walk(nodes, nil, fn)
}

func walk(nodes []Node, parent Path, fn WalkFunc) error {
	for i, n := range nodes {
		p := make(Path, len(parent), len(parent)+1)
		copy(p, parent)
		p = append(p, Step{Name: StepName(n), Index: i})
		err := fn(n, p)
		if errors.Is(err, SkipChildren) {
			continue
		}
		if err != nil {
			return err
		}
		if err := walk(Children(n), p, fn); err != nil {
			return err
		}
	}
	return nil
}

// StripBlank returns a copy of nodes without whitespace only text nodes,
// at any depth.
func StripBlank(nodes []Node) []Node {
	var res []Node
	for _, n := range nodes {
		if Blank(n) {
			continue
		}
		c := Clone(n)
		if t, ok := c.(*Tag); ok {
			t.Children = StripBlank(t.Children)
		}
		res = append(res, c)
	}
	return res
}
