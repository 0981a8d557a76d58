package token

import (
	"fmt"
	"strconv"
)

type TokenType int

const (
	TEOF TokenType = iota
	TWhitespace
	TTagOpen
	TTagClose
	TExclamation
	TAssign
	THyphen
	TSlash
	TAmp
	TString
	TInteger
	TDecimal
	TText
	TIllegal
)

var typeNames = [...]string{
	TEOF:         "EOF",
	TWhitespace:  "Whitespace",
	TTagOpen:     "TagOpen",
	TTagClose:    "TagClose",
	TExclamation: "Exclamation",
	TAssign:      "Assign",
	THyphen:      "Hyphen",
	TSlash:       "Slash",
	TAmp:         "Amp",
	TString:      "String",
	TInteger:     "Integer",
	TDecimal:     "Decimal",
	TText:        "Text",
	TIllegal:     "Illegal",
}

func (t TokenType) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return "<unknown token type>"
	}
	return typeNames[t]
}

func symbolType(r rune) (TokenType, bool) {
	switch r {
	case '<':
		return TTagOpen, true
	case '>':
		return TTagClose, true
	case '!':
		return TExclamation, true
	case '=':
		return TAssign, true
	case '-':
		return THyphen, true
	case '/':
		return TSlash, true
	case '&':
		return TAmp, true
	}
	return 0, false
}

type Token struct {
	Type TokenType
	Pos  Pos

	// Text is the token's text. Quoted strings hold their content without
	// the delimiters, numbers their digits.
	Text  string
	Float float64
	Int   int64

	// Quote is the opening quote of TString and TIllegal tokens.
	Quote rune
}

// Literal returns the token as it was spelled in the source.
func (t *Token) Literal() string {
	switch t.Type {
	case TString:
		q := string(t.Quote)
		return q + t.Text + q
	case TIllegal:
		return string(t.Quote) + t.Text
	default:
		return t.Text
	}
}

func (t *Token) Info() string {
	return fmt.Sprintf("%s %s", t.Type, t.Pos)
}

func (t *Token) String() string {
	switch t.Type {
	case TEOF:
		return t.Type.String()
	default:
		return fmt.Sprintf("%s %s", t.Type, strconv.Quote(t.Literal()))
	}
}
