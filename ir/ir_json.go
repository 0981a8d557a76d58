package ir

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
)

// Wire is the serializable form of a content node, used for JSON and
// YAML dumps and for JSON patches.
type Wire struct {
	Kind     string  `json:"kind" yaml:"kind"`
	Name     string  `json:"name,omitempty" yaml:"name,omitempty"`
	Text     string  `json:"text,omitempty" yaml:"text,omitempty"`
	Params   []Attr  `json:"params,omitempty" yaml:"params,omitempty"`
	Children []*Wire `json:"children,omitempty" yaml:"children,omitempty"`
}

type Attr struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

func ToWire(nodes []Node) []*Wire {
	res := make([]*Wire, 0, len(nodes))
	for _, n := range nodes {
		res = append(res, toWire(n))
	}
	return res
}

func toWire(n Node) *Wire {
	w := &Wire{Kind: n.Kind().String()}
	switch x := n.(type) {
	case *Tag:
		w.Name = x.Name
		w.Params = toAttrs(x.Params)
		if len(x.Children) != 0 {
			w.Children = ToWire(x.Children)
		}
	case *SoloTag:
		w.Name = x.Name
		w.Params = toAttrs(x.Params)
	case *Comment:
		w.Text = x.Text
	case *Doctype:
		w.Text = x.Value
	case *Text:
		w.Text = x.Value
	}
	return w
}

func toAttrs(ps Parameters) []Attr {
	if len(ps) == 0 {
		return nil
	}
	res := make([]Attr, len(ps))
	for i, p := range ps {
		res[i] = Attr{Key: p.Key.Name, Value: p.Value.Value}
	}
	return res
}

// FromWire rebuilds nodes from their wire form, enforcing the node
// invariants: names present and lowercased, no children on solo tags,
// empty lists stored as nil.
func FromWire(ws []*Wire) ([]Node, error) {
	res := make([]Node, 0, len(ws))
	for i, w := range ws {
		n, err := fromWire(w)
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", i, err)
		}
		res = append(res, n)
	}
	return res, nil
}

func fromWire(w *Wire) (Node, error) {
	if w == nil {
		return nil, fmt.Errorf("%w: null node", ErrInvalid)
	}
	var k Kind
	if err := k.UnmarshalText([]byte(w.Kind)); err != nil {
		return nil, err
	}
	if !k.IsContent() {
		return nil, fmt.Errorf("%w: %s is not a content node", ErrBadKind, k)
	}
	switch k {
	case TagKind, SoloTagKind:
		if w.Name == "" {
			return nil, errNoName
		}
		if !validName(w.Name) {
			return nil, fmt.Errorf("%w: bad tag name %q", ErrInvalid, w.Name)
		}
		var ps Parameters
		for _, a := range w.Params {
			if a.Key == "" {
				return nil, fmt.Errorf("%w: empty parameter key in %s", ErrInvalid, w.Name)
			}
			if !validName(a.Key) {
				return nil, fmt.Errorf("%w: bad parameter key %q in %s", ErrInvalid, a.Key, w.Name)
			}
			if strings.ContainsRune(a.Value, '"') && strings.ContainsRune(a.Value, '\'') {
				return nil, fmt.Errorf("%w: value of %s in %s has both quote kinds", ErrInvalid, a.Key, w.Name)
			}
			ps = append(ps, NewParam(a.Key, a.Value))
		}
		if k == SoloTagKind {
			if len(w.Children) != 0 {
				return nil, errSoloKids
			}
			return NewSoloTag(w.Name, ps), nil
		}
		kids, err := FromWire(w.Children)
		if err != nil {
			return nil, fmt.Errorf("in %s: %w", w.Name, err)
		}
		return NewTag(w.Name, ps, kids...), nil
	case CommentKind:
		if strings.Contains(w.Text, "-->") {
			return nil, fmt.Errorf("%w: comment containing -->", ErrInvalid)
		}
		return &Comment{Text: w.Text}, nil
	case DoctypeKind:
		if strings.ContainsRune(w.Text, '>') {
			return nil, fmt.Errorf("%w: doctype containing >", ErrInvalid)
		}
		return &Doctype{Value: w.Text}, nil
	default:
		if strings.ContainsRune(w.Text, '<') {
			return nil, fmt.Errorf("%w: text containing <", ErrInvalid)
		}
		return &Text{Value: w.Text}, nil
	}
}

// validName reports whether s reads back as a single tag or parameter
// name: no whitespace, quotes or markup symbols, and not starting with a
// digit or hyphen.
func validName(s string) bool {
	for i, r := range s {
		if unicode.IsSpace(r) || strings.ContainsRune("<>!=/&'\"", r) {
			return false
		}
		if i == 0 && (unicode.IsDigit(r) || r == '-') {
			return false
		}
	}
	return s != ""
}

func ToJSON(nodes []Node) ([]byte, error) {
	return json.Marshal(ToWire(nodes))
}

func FromJSON(d []byte) ([]Node, error) {
	var ws []*Wire
	if err := json.Unmarshal(d, &ws); err != nil {
		return nil, err
	}
	return FromWire(ws)
}
