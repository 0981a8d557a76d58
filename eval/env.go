package eval

import (
	"strings"

	"github.com/signadot/mlfmt/ir"
)

type Env map[string]any

// NodeEnv is the environment of n located at p.
func NodeEnv(n ir.Node, p ir.Path) Env {
	ps := ir.ParamsOf(n)
	return Env{
		"kind":     n.Kind().String(),
		"name":     ir.Name(n),
		"text":     Text(n),
		"depth":    p.Depth(),
		"path":     p.String(),
		"children": len(ir.Children(n)),
		"attrs":    ps.Map(),
		"attr": func(k string) string {
			v, _ := ps.Get(k)
			return v
		},
		"has": func(k string) bool {
			_, ok := ps.Get(k)
			return ok
		},
	}
}

// sampleEnv fixes the types of the environment for compilation.
func sampleEnv() Env {
	return NodeEnv(&ir.Text{}, nil)
}

// Text returns the text content of n. For tags it is the text of all
// descendant text nodes, whitespace collapsed to single spaces.
func Text(n ir.Node) string {
	switch x := n.(type) {
	case *ir.Text:
		return x.Value
	case *ir.Comment:
		return x.Text
	case *ir.Doctype:
		return x.Value
	case *ir.Tag:
		var parts []string
		_ = ir.Walk(x.Children, func(c ir.Node, _ ir.Path) error {
			if t, ok := c.(*ir.Text); ok {
				parts = append(parts, t.Value)
			}
			return nil
		})
		return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
	}
	return ""
}
