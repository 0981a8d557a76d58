package ir

import "fmt"

type Kind int

const (
	TagKind Kind = iota
	SoloTagKind
	CommentKind
	DoctypeKind
	ParametersKind
	ParameterKind
	IdentifierKind
	QuotedStringKind
	TextKind
)

var kindNames = [...]string{
	TagKind:          "Tag",
	SoloTagKind:      "SoloTag",
	CommentKind:      "Comment",
	DoctypeKind:      "Doctype",
	ParametersKind:   "Parameters",
	ParameterKind:    "Parameter",
	IdentifierKind:   "Identifier",
	QuotedStringKind: "QuotedString",
	TextKind:         "Text",
}

var kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, s := range kindNames {
		m[s] = Kind(k)
	}
	return m
}()

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "<unknown kind>"
	}
	return kindNames[k]
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(d []byte) error {
	kk, ok := kindsByName[string(d)]
	if !ok {
		return fmt.Errorf("%w %q", ErrBadKind, d)
	}
	*k = kk
	return nil
}

func Kinds() []Kind {
	return []Kind{
		TagKind,
		SoloTagKind,
		CommentKind,
		DoctypeKind,
		ParametersKind,
		ParameterKind,
		IdentifierKind,
		QuotedStringKind,
		TextKind,
	}
}

// IsContent reports whether nodes of kind k appear in a forest, as opposed
// to inside a tag's parameters.
func (k Kind) IsContent() bool {
	switch k {
	case TagKind, SoloTagKind, CommentKind, DoctypeKind, TextKind:
		return true
	default:
		return false
	}
}
