package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/signadot/mlfmt/encode"
	"github.com/signadot/mlfmt/eval"
	"github.com/signadot/mlfmt/ir"
	"github.com/signadot/mlfmt/token"

	"go.lsp.dev/protocol"
)

func (s *Server) Hover(ctx context.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil || doc.nodes == nil {
		return nil, nil
	}

	off := lineColToOffset([]rune(doc.content), int(params.Position.Line), int(params.Position.Character))
	target := findNodeAt(doc.nodes, doc.positions, off)
	if target.node == nil {
		return nil, nil
	}
	hoverText := buildHoverText(target)
	if hoverText == "" {
		return nil, nil
	}
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.Markdown,
			Value: hoverText,
		},
	}, nil
}

type nodeAt struct {
	node ir.Node
	path ir.Path
	// param is set when the position is on an attribute of node.
	param *ir.Parameter
}

// findNodeAt returns the node starting closest before the rune offset
// off.
func findNodeAt(nodes []ir.Node, positions map[ir.Node]token.Pos, off int) nodeAt {
	var (
		best    nodeAt
		bestOff = -1
	)
	consider := func(n ir.Node, p ir.Path, param *ir.Parameter) {
		var key ir.Node = n
		if param != nil {
			key = param
		}
		pos, ok := positions[key]
		if !ok || pos.AtWhole > off || pos.AtWhole < bestOff {
			return
		}
		bestOff = pos.AtWhole
		best = nodeAt{node: n, path: p, param: param}
	}
	_ = ir.Walk(nodes, func(n ir.Node, p ir.Path) error {
		consider(n, p, nil)
		for _, param := range ir.ParamsOf(n) {
			consider(n, p, param)
		}
		return nil
	})
	return best
}

func buildHoverText(at nodeAt) string {
	var b strings.Builder
	if at.param != nil {
		fmt.Fprintf(&b, "**Attribute** `%s`\n\n", at.param.Key.Name)
		fmt.Fprintf(&b, "value: `%s`\n\n", at.param.Value.Value)
		fmt.Fprintf(&b, "on: `<%s>` at `%s`\n", ir.Name(at.node), at.path)
		return b.String()
	}
	n := at.node
	switch x := n.(type) {
	case *ir.Tag, *ir.SoloTag:
		fmt.Fprintf(&b, "**%s** `<%s>`\n\n", n.Kind(), ir.Name(n))
		fmt.Fprintf(&b, "path: `%s`\n", at.path)
		if ps := ir.ParamsOf(n); len(ps) != 0 {
			b.WriteString("\nattributes:\n")
			for _, p := range ps {
				fmt.Fprintf(&b, "- `%s` = `%s`\n", p.Key.Name, p.Value.Value)
			}
		}
		if t, ok := x.(*ir.Tag); ok {
			fmt.Fprintf(&b, "\nchildren: %d\n", len(t.Children))
		}
	case *ir.Comment:
		fmt.Fprintf(&b, "**Comment**\n\npath: `%s`\n", at.path)
	case *ir.Doctype:
		fmt.Fprintf(&b, "**Doctype** `%s`\n", x.Value)
	case *ir.Text:
		fmt.Fprintf(&b, "**Text** (%d runes)\n\npath: `%s`\n", len([]rune(eval.Text(x))), at.path)
		return b.String()
	}
	fmt.Fprintf(&b, "\n```html\n%s\n```\n", preview(n))
	return b.String()
}

// preview is the formatted form of n, without the children of a tag.
func preview(n ir.Node) string {
	if t, ok := n.(*ir.Tag); ok {
		n = ir.NewTag(t.Name, t.Params)
	}
	return encode.MustString([]ir.Node{n})
}
