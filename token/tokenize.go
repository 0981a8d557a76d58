package token

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/signadot/mlfmt/debug"
)

// Tokenizer scans a document in a single left to right pass.
type Tokenizer struct {
	src  []rune
	i    int
	pos  Pos
	toks []Token
}

func NewTokenizer(src string) *Tokenizer {
	return &Tokenizer{src: []rune(src), pos: StartPos()}
}

// Tokenize tokenizes d. The result always ends with a single TEOF token.
func Tokenize(d []byte) []Token {
	return NewTokenizer(string(d)).Run()
}

func TokenizeString(s string) []Token {
	return NewTokenizer(s).Run()
}

// Run scans the whole input and returns the tokens.
func (t *Tokenizer) Run() []Token {
	for !t.eof() {
		start := t.pos
		r := t.current()
		if isWhite(r) {
			t.emit(Token{Type: TWhitespace, Pos: start, Text: t.white()})
			continue
		}
		if tt, ok := symbolType(r); ok {
			t.advance()
			t.emit(Token{Type: tt, Pos: start, Text: string(r)})
			continue
		}
		if r == '\'' || r == '"' {
			t.emit(t.quoted(start, r))
			continue
		}
		if isDigit(r) {
			t.emit(t.number(start))
			continue
		}
		t.emit(Token{Type: TText, Pos: start, Text: t.text()})
	}
	t.emit(Token{Type: TEOF, Pos: t.pos})
	return t.toks
}

func (t *Tokenizer) emit(tok Token) {
	if debug.Tokens() {
		debug.Logf("token %s at %s\n", tok.String(), tok.Pos)
	}
	t.toks = append(t.toks, tok)
}

func (t *Tokenizer) white() string {
	start := t.i
	for !t.eof() && isWhite(t.current()) {
		t.advance()
	}
	return string(t.src[start:t.i])
}

// quoted consumes through the matching closing quote. Without one, the
// rest of the input is consumed into an illegal token.
func (t *Tokenizer) quoted(start Pos, q rune) Token {
	t.advance()
	from := t.i
	for !t.eof() && t.current() != q {
		t.advance()
	}
	text := string(t.src[from:t.i])
	if t.eof() {
		return Token{Type: TIllegal, Pos: start, Text: text, Quote: q}
	}
	t.advance()
	return Token{Type: TString, Pos: start, Text: text, Quote: q}
}

func (t *Tokenizer) number(start Pos) Token {
	from := t.i
	dot := false
	for !t.eof() {
		r := t.current()
		if r == '.' && !dot {
			dot = true
		} else if !isDigit(r) {
			break
		}
		t.advance()
	}
	text := string(t.src[from:t.i])
	if dot {
		f, _ := strconv.ParseFloat(strings.TrimSuffix(text, "."), 64)
		return Token{Type: TDecimal, Pos: start, Text: text, Float: f}
	}
	// out of range values saturate, the digits are kept in Text
	i, _ := strconv.ParseInt(text, 10, 64)
	return Token{Type: TInteger, Pos: start, Text: text, Int: i}
}

func (t *Tokenizer) text() string {
	from := t.i
	if !isWord(t.current()) {
		t.advance()
		return string(t.src[from:t.i])
	}
	for !t.eof() && isWord(t.current()) {
		t.advance()
	}
	return string(t.src[from:t.i])
}

func (t *Tokenizer) eof() bool {
	return t.i >= len(t.src)
}

func (t *Tokenizer) current() rune {
	if t.eof() {
		return 0
	}
	return t.src[t.i]
}

func (t *Tokenizer) advance() {
	if t.eof() {
		return
	}
	t.pos = t.pos.advance(t.src[t.i])
	t.i++
}

// '\r' is whitespace but does not start a line.
func isWhite(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isWord(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// TokenizeAt tokenizes s as if it started at pos in a larger document.
func TokenizeAt(s string, pos Pos) []Token {
	t := NewTokenizer(s)
	t.pos = pos
	return t.Run()
}
