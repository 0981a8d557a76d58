package ir

import (
	"strings"
	"unicode"
)

// Node is one element of a parsed document. The concrete types are
// *Tag, *SoloTag, *Comment, *Doctype, *Text, Parameters, *Parameter,
// *Identifier and *QuotedString.
type Node interface {
	Kind() Kind
	isNode()
}

// Tag is a paired <name>...</name> tag.
type Tag struct {
	Name     string
	Params   Parameters
	Children []Node
}

// SoloTag is a self closing <name/> tag.
type SoloTag struct {
	Name   string
	Params Parameters
}

type Comment struct {
	Text string
}

type Doctype struct {
	Value string
}

type Text struct {
	Value string
}

// Parameters is the attribute list of a tag, in document order.
type Parameters []*Parameter

type Parameter struct {
	Key   *Identifier
	Value *QuotedString
}

type Identifier struct {
	Name string
}

// QuotedString holds an attribute value without its quotes.
type QuotedString struct {
	Value string
}

func (*Tag) Kind() Kind          { return TagKind }
func (*SoloTag) Kind() Kind      { return SoloTagKind }
func (*Comment) Kind() Kind      { return CommentKind }
func (*Doctype) Kind() Kind      { return DoctypeKind }
func (*Text) Kind() Kind         { return TextKind }
func (Parameters) Kind() Kind    { return ParametersKind }
func (*Parameter) Kind() Kind    { return ParameterKind }
func (*Identifier) Kind() Kind   { return IdentifierKind }
func (*QuotedString) Kind() Kind { return QuotedStringKind }

func (*Tag) isNode()          {}
func (*SoloTag) isNode()      {}
func (*Comment) isNode()      {}
func (*Doctype) isNode()      {}
func (*Text) isNode()         {}
func (Parameters) isNode()    {}
func (*Parameter) isNode()    {}
func (*Identifier) isNode()   {}
func (*QuotedString) isNode() {}

// NewTag creates a tag. The name is lowercased; empty params and
// children are stored as nil.
func NewTag(name string, params Parameters, children ...Node) *Tag {
	t := &Tag{Name: strings.ToLower(name)}
	if len(params) != 0 {
		t.Params = params
	}
	if len(children) != 0 {
		t.Children = children
	}
	return t
}

func NewSoloTag(name string, params Parameters) *SoloTag {
	t := &SoloTag{Name: strings.ToLower(name)}
	if len(params) != 0 {
		t.Params = params
	}
	return t
}

func NewParam(key, value string) *Parameter {
	return &Parameter{
		Key:   &Identifier{Name: key},
		Value: &QuotedString{Value: value},
	}
}

func FromString(v string) *Text {
	return &Text{Value: v}
}

// Params builds parameters from alternating keys and values.
func Params(kvs ...string) Parameters {
	if len(kvs) < 2 {
		return nil
	}
	res := make(Parameters, 0, len(kvs)/2)
	for i := 0; i+1 < len(kvs); i += 2 {
		res = append(res, NewParam(kvs[i], kvs[i+1]))
	}
	return res
}

// Get returns the value of the first parameter named key.
func (ps Parameters) Get(key string) (string, bool) {
	for _, p := range ps {
		if p.Key.Name == key {
			return p.Value.Value, true
		}
	}
	return "", false
}

func (ps Parameters) Map() map[string]string {
	res := make(map[string]string, len(ps))
	for _, p := range ps {
		if _, ok := res[p.Key.Name]; ok {
			continue
		}
		res[p.Key.Name] = p.Value.Value
	}
	return res
}

// Name returns the tag name of n, or "" for nodes without one.
func Name(n Node) string {
	switch x := n.(type) {
	case *Tag:
		return x.Name
	case *SoloTag:
		return x.Name
	}
	return ""
}

// ParamsOf returns the parameters of a tag or solo tag.
func ParamsOf(n Node) Parameters {
	switch x := n.(type) {
	case *Tag:
		return x.Params
	case *SoloTag:
		return x.Params
	}
	return nil
}

// Children returns the children of n; only tags have any.
func Children(n Node) []Node {
	if t, ok := n.(*Tag); ok {
		return t.Children
	}
	return nil
}

// Blank reports whether n is a text node holding only whitespace.
func Blank(n Node) bool {
	t, ok := n.(*Text)
	if !ok {
		return false
	}
	return strings.IndexFunc(t.Value, func(r rune) bool { return !unicode.IsSpace(r) }) == -1
}

// Clone returns a deep copy of n.
func Clone(n Node) Node {
	switch x := n.(type) {
	case *Tag:
		return &Tag{Name: x.Name, Params: cloneParams(x.Params), Children: CloneForest(x.Children)}
	case *SoloTag:
		return &SoloTag{Name: x.Name, Params: cloneParams(x.Params)}
	case *Comment:
		return &Comment{Text: x.Text}
	case *Doctype:
		return &Doctype{Value: x.Value}
	case *Text:
		return &Text{Value: x.Value}
	case Parameters:
		return cloneParams(x)
	case *Parameter:
		return NewParam(x.Key.Name, x.Value.Value)
	case *Identifier:
		return &Identifier{Name: x.Name}
	case *QuotedString:
		return &QuotedString{Value: x.Value}
	}
	return nil
}

func CloneForest(nodes []Node) []Node {
	if nodes == nil {
		return nil
	}
	res := make([]Node, len(nodes))
	for i, n := range nodes {
		res[i] = Clone(n)
	}
	return res
}

func cloneParams(ps Parameters) Parameters {
	if ps == nil {
		return nil
	}
	res := make(Parameters, len(ps))
	for i, p := range ps {
		res[i] = NewParam(p.Key.Name, p.Value.Value)
	}
	return res
}
