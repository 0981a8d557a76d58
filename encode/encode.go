package encode

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/signadot/mlfmt/debug"
	"github.com/signadot/mlfmt/ir"
)

var ErrEncoding = errors.New("encoding error")

type EncState struct {
	line   int
	indent int

	Color func(ir.Kind, ColorAttr, string) string
}

func newState(opts []EncodeOption) *EncState {
	es := &EncState{indent: DefaultIndent}
	for _, opt := range opts {
		opt(es)
	}
	return es
}

// frame is a pending unit of output. A closing frame writes the end
// tag of a Tag whose children have been written.
type frame struct {
	node    ir.Node
	depth   int
	closing bool
}

// Encode writes nodes to w, one construct per line.
func Encode(nodes []ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := newState(opts)
	stack := make([]frame, 0, len(nodes))
	stack = pushForest(stack, nodes, 0)
	for len(stack) != 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.closing {
			t := f.node.(*ir.Tag)
			if err := writeLine(w, es, f.depth, closeTag(es, t.Kind(), t.Name)); err != nil {
				return err
			}
			continue
		}
		if debug.Encode() {
			debug.Logf("encode %s at depth %d line %d\n", f.node.Kind(), f.depth, es.line)
		}
		switch x := f.node.(type) {
		case *ir.Tag:
			if err := writeLine(w, es, f.depth, openTag(es, x.Kind(), x.Name, x.Params, false)); err != nil {
				return err
			}
			stack = append(stack, frame{node: x, depth: f.depth, closing: true})
			stack = pushForest(stack, x.Children, f.depth+1)
		case *ir.SoloTag:
			if err := writeLine(w, es, f.depth, openTag(es, x.Kind(), x.Name, x.Params, true)); err != nil {
				return err
			}
		case *ir.Comment:
			s := colorize(es, x.Kind(), CommentColor, "<!--"+x.Text+"-->")
			if err := writeLine(w, es, f.depth, s); err != nil {
				return err
			}
		case *ir.Doctype:
			s := colorize(es, x.Kind(), SepColor, "<!") +
				colorize(es, x.Kind(), DoctypeColor, "doctype "+x.Value) +
				colorize(es, x.Kind(), SepColor, ">")
			if err := writeLine(w, es, f.depth, s); err != nil {
				return err
			}
		case *ir.Text:
			// adjacent text siblings share a line
			v := x.Value
			for len(stack) != 0 {
				next := stack[len(stack)-1]
				t, ok := next.node.(*ir.Text)
				if !ok || next.closing || next.depth != f.depth {
					break
				}
				v += t.Value
				stack = stack[:len(stack)-1]
			}
			if err := writeText(w, es, f.depth, v); err != nil {
				return err
			}
		case nil:
			return fmt.Errorf("%w: nil node", ErrEncoding)
		default:
			return fmt.Errorf("%w: cannot encode %s as content", ErrEncoding, x.Kind())
		}
	}
	return nil
}

func EncodeString(nodes []ir.Node, opts ...EncodeOption) (string, error) {
	buf := bytes.NewBuffer(nil)
	if err := Encode(nodes, buf, opts...); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// pushForest pushes nodes so that the first is popped first.
func pushForest(stack []frame, nodes []ir.Node, depth int) []frame {
	for i := len(nodes) - 1; i >= 0; i-- {
		stack = append(stack, frame{node: nodes[i], depth: depth})
	}
	return stack
}

// writeLine writes s indented to depth. Newlines inside s, as in a
// quoted attribute value, are written as they are.
func writeLine(w io.Writer, es *EncState, depth int, s string) error {
	if err := writeString(w, strings.Repeat(" ", es.indent*depth)+s+"\n"); err != nil {
		return err
	}
	es.line += 1 + strings.Count(s, "\n")
	return nil
}

// writeText writes a text value with each of its lines indented to
// depth.
func writeText(w io.Writer, es *EncState, depth int, s string) error {
	for ln := range strings.SplitSeq(s, "\n") {
		if err := writeLine(w, es, depth, ln); err != nil {
			return err
		}
	}
	return nil
}

func writeString(w io.Writer, s string) error {
	_, err := w.Write([]byte(s))
	return err
}

func openTag(es *EncState, k ir.Kind, name string, ps ir.Parameters, solo bool) string {
	var b strings.Builder
	b.WriteString(colorize(es, k, SepColor, "<"))
	b.WriteString(colorize(es, k, TagColor, name))
	for _, p := range ps {
		b.WriteByte(' ')
		b.WriteString(colorize(es, k, FieldColor, p.Key.Name))
		b.WriteString(colorize(es, k, SepColor, "="))
		b.WriteString(colorize(es, k, ValueColor, QuoteValue(p.Value.Value)))
	}
	if solo {
		b.WriteString(colorize(es, k, SepColor, "/>"))
	} else {
		b.WriteString(colorize(es, k, SepColor, ">"))
	}
	return b.String()
}

func closeTag(es *EncState, k ir.Kind, name string) string {
	return colorize(es, k, SepColor, "</") + colorize(es, k, TagColor, name) + colorize(es, k, SepColor, ">")
}

// QuoteValue quotes an attribute value with '"', or with '\'' when the
// value contains '"'.
func QuoteValue(v string) string {
	if strings.ContainsRune(v, '"') {
		return "'" + v + "'"
	}
	return `"` + v + `"`
}

func colorize(es *EncState, k ir.Kind, a ColorAttr, v string) string {
	if es.Color == nil {
		return v
	}
	return es.Color(k, a, v)
}
