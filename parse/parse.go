package parse

import (
	"fmt"
	"strings"

	"github.com/signadot/mlfmt/debug"
	"github.com/signadot/mlfmt/ir"
	"github.com/signadot/mlfmt/token"
)

// Parse tokenizes and parses a document into a forest.
func Parse(d []byte, opts ...ParseOption) ([]ir.Node, error) {
	return ParseTokens(token.Tokenize(d), opts...)
}

func ParseString(s string, opts ...ParseOption) ([]ir.Node, error) {
	return ParseTokens(token.TokenizeString(s), opts...)
}

// ParseTokens parses a token sequence as produced by token.Tokenize. The
// first error aborts the parse; no partial forest is returned.
func ParseTokens(toks []token.Token, opts ...ParseOption) (nodes []ir.Node, err error) {
	if n := len(toks); n == 0 || toks[n-1].Type != token.TEOF {
		end := token.StartPos()
		if n != 0 {
			last := &toks[n-1]
			end = last.Pos.Advance(last.Literal())
		}
		toks = append(toks[:n:n], token.Token{Type: token.TEOF, Pos: end})
	}
	p := &parser{toks: toks, opts: newOpts(opts)}
	defer func() {
		if r := recover(); r != nil {
			nodes = nil
			err = &UnknownError{Cause: r, Pos: p.cur().Pos}
		}
	}()
	nodes, err = p.forest(0)
	if err != nil {
		return nil, err
	}
	if !p.is(token.TEOF) {
		// a closing tag with nothing open
		return nil, p.unexpected(token.TEOF)
	}
	return nodes, nil
}

type parser struct {
	toks []token.Token
	i    int
	opts *parseOpts
}

func (p *parser) cur() *token.Token {
	return &p.toks[p.i]
}

func (p *parser) peek(n int) *token.Token {
	return &p.toks[min(p.i+n, len(p.toks)-1)]
}

func (p *parser) is(tt token.TokenType) bool {
	return p.cur().Type == tt
}

func (p *parser) advance() {
	if p.i < len(p.toks)-1 {
		p.i++
	}
}

func (p *parser) consume(tt token.TokenType) bool {
	if !p.is(tt) {
		return false
	}
	p.advance()
	return true
}

func (p *parser) skip(tt token.TokenType) {
	p.consume(tt)
}

func (p *parser) expect(tt token.TokenType) (token.Token, error) {
	if !p.is(tt) {
		return token.Token{}, p.unexpected(tt)
	}
	tok := *p.cur()
	p.advance()
	return tok, nil
}

func (p *parser) unexpected(tt token.TokenType) error {
	return &UnexpectedTokenError{Expected: tt, Found: *p.cur()}
}

func (p *parser) record(n ir.Node, pos token.Pos) {
	if p.opts.positions != nil {
		p.opts.positions[n] = pos
	}
}

// resplit keeps the first at bytes of the current token's literal and
// re-tokenizes the rest of the document from there. Quotes inside
// character data and comments are not string delimiters; resplit(1)
// turns the quote of a string token into plain text.
func (p *parser) resplit(at int) string {
	tok := p.cur()
	lit := tok.Literal()
	var rest strings.Builder
	rest.WriteString(lit[at:])
	for i := p.i + 1; i < len(p.toks); i++ {
		rest.WriteString(p.toks[i].Literal())
	}
	retoks := token.TokenizeAt(rest.String(), tok.Pos.Advance(lit[:at]))
	p.toks = append(p.toks[:p.i:p.i], retoks...)
	return lit[:at]
}

func (p *parser) forest(depth int) ([]ir.Node, error) {
	var nodes []ir.Node
	for {
		if p.is(token.TWhitespace) {
			ws := p.cur().Pos
			p.advance()
			if len(nodes) != 0 && isText(nodes[len(nodes)-1]) && isTextLike(p.cur().Type) {
				// whitespace between two text runs is a text node of its own
				n := &ir.Text{Value: " "}
				p.record(n, ws)
				nodes = append(nodes, n)
			}
		}
		if p.is(token.TEOF) {
			break
		}
		if p.is(token.TTagOpen) {
			start := p.cur().Pos
			p.advance()
			n, err := p.tag(start, depth)
			if err != nil {
				return nil, err
			}
			if n == nil {
				break
			}
			nodes = append(nodes, n)
			continue
		}
		n, err := p.text()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func isText(n ir.Node) bool {
	_, ok := n.(*ir.Text)
	return ok
}

func isTextLike(tt token.TokenType) bool {
	switch tt {
	case token.TText, token.TInteger, token.TDecimal, token.TAmp, token.TAssign,
		token.THyphen, token.TExclamation, token.TSlash, token.TTagClose,
		token.TString, token.TIllegal:
		return true
	default:
		return false
	}
}

// text parses one run of character data: consecutive text-like tokens
// without whitespace between them.
func (p *parser) text() (ir.Node, error) {
	start := p.cur().Pos
	var b strings.Builder
	for {
		tok := p.cur()
		if tok.Type == token.TString || tok.Type == token.TIllegal {
			b.WriteString(p.resplit(1))
			continue
		}
		if !isTextLike(tok.Type) {
			break
		}
		b.WriteString(tok.Literal())
		p.advance()
	}
	if b.Len() == 0 {
		return nil, p.unexpected(token.TText)
	}
	n := &ir.Text{Value: b.String()}
	p.record(n, start)
	return n, nil
}

// collapseWhite replaces each whitespace run in s with one space.
func collapseWhite(s string) string {
	var b strings.Builder
	white := false
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r':
			if !white {
				b.WriteByte(' ')
			}
			white = true
		default:
			white = false
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isNamePart(tt token.TokenType) bool {
	switch tt {
	case token.TText, token.THyphen, token.TInteger, token.TDecimal:
		return true
	default:
		return false
	}
}

// name parses a tag or attribute name: a text token and any adjacent
// text, hyphen or number tokens, so data-id and h1 are single names.
func (p *parser) name(lower bool) (string, token.Pos, error) {
	first, err := p.expect(token.TText)
	if err != nil {
		return "", first.Pos, err
	}
	var b strings.Builder
	b.WriteString(first.Text)
	for isNamePart(p.cur().Type) {
		b.WriteString(p.cur().Text)
		p.advance()
	}
	if lower {
		return strings.ToLower(b.String()), first.Pos, nil
	}
	return b.String(), first.Pos, nil
}

// tag parses the construct following '<'. It returns a nil node when a
// closing tag begins, leaving the '/' for the enclosing tag.
func (p *parser) tag(start token.Pos, depth int) (ir.Node, error) {
	if p.consume(token.TExclamation) {
		return p.decl(start)
	}
	if p.is(token.TSlash) {
		return nil, nil
	}
	name, namePos, err := p.name(true)
	if err != nil {
		return nil, err
	}
	if debug.Parse() {
		debug.Logf("tag %q at %s depth %d\n", name, namePos, depth)
	}
	params, err := p.params()
	if err != nil {
		return nil, err
	}
	if p.consume(token.TSlash) {
		if _, err := p.expect(token.TTagClose); err != nil {
			return nil, err
		}
		n := ir.NewSoloTag(name, params)
		p.record(n, start)
		return n, nil
	}
	if _, err := p.expect(token.TTagClose); err != nil {
		return nil, err
	}
	if depth+1 > p.opts.maxDepth {
		return nil, &DepthError{Max: p.opts.maxDepth, Pos: namePos}
	}
	children, err := p.forest(depth + 1)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.TSlash); err != nil {
		return nil, err
	}
	closeName, closePos, err := p.name(true)
	if err != nil {
		return nil, err
	}
	p.skip(token.TWhitespace)
	if _, err := p.expect(token.TTagClose); err != nil {
		return nil, err
	}
	if name != closeName {
		return nil, &TagMismatchError{
			Open:     name,
			Close:    closeName,
			OpenPos:  namePos,
			ClosePos: closePos,
		}
	}
	n := ir.NewTag(name, params, children...)
	p.record(n, start)
	return n, nil
}

// params parses key="value" attributes up to, not including, the '>' or
// '/' ending the tag.
func (p *parser) params() (ir.Parameters, error) {
	var ps ir.Parameters
	for {
		p.skip(token.TWhitespace)
		if p.is(token.TTagClose) || p.is(token.TSlash) {
			break
		}
		if p.is(token.TEOF) {
			return nil, p.unexpected(token.TTagClose)
		}
		key, keyPos, err := p.name(false)
		if err != nil {
			return nil, err
		}
		p.skip(token.TWhitespace)
		if _, err := p.expect(token.TAssign); err != nil {
			return nil, err
		}
		p.skip(token.TWhitespace)
		v, err := p.expect(token.TString)
		if err != nil {
			return nil, err
		}
		param := ir.NewParam(key, v.Text)
		p.record(param, keyPos)
		ps = append(ps, param)
	}
	return ps, nil
}

// decl parses the construct following "<!".
func (p *parser) decl(start token.Pos) (ir.Node, error) {
	if p.consume(token.THyphen) {
		if _, err := p.expect(token.THyphen); err != nil {
			return nil, err
		}
		return p.comment(start)
	}
	return p.doctype(start)
}

func (p *parser) comment(start token.Pos) (ir.Node, error) {
	var b strings.Builder
	for !p.is(token.TEOF) {
		tok := p.cur()
		switch tok.Type {
		case token.THyphen:
			n := 0
			for p.consume(token.THyphen) {
				n++
			}
			if n >= 2 && p.consume(token.TTagClose) {
				b.WriteString(strings.Repeat("-", n-2))
				return p.finishComment(&b, start), nil
			}
			b.WriteString(strings.Repeat("-", n))
		case token.TWhitespace:
			b.WriteByte(' ')
			p.advance()
		case token.TString, token.TIllegal:
			b.WriteString(p.resplit(1))
		default:
			b.WriteString(tok.Literal())
			p.advance()
		}
	}
	return nil, p.unexpected(token.THyphen)
}

func (p *parser) finishComment(b *strings.Builder, start token.Pos) ir.Node {
	n := &ir.Comment{Text: b.String()}
	p.record(n, start)
	return n
}

func (p *parser) doctype(start token.Pos) (ir.Node, error) {
	kw, err := p.expect(token.TText)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(kw.Text, "doctype") {
		return nil, &UnexpectedTextError{Expected: "doctype", Found: kw.Text, Pos: kw.Pos}
	}
	if _, err := p.expect(token.TWhitespace); err != nil {
		return nil, err
	}
	v, err := p.expect(token.TText)
	if err != nil {
		return nil, err
	}
	var b strings.Builder
	b.WriteString(strings.ToLower(v.Text))
	for !p.consume(token.TTagClose) {
		switch {
		case p.is(token.TEOF):
			return nil, p.unexpected(token.TTagClose)
		case p.is(token.TWhitespace):
			p.advance()
			if !p.is(token.TTagClose) {
				b.WriteByte(' ')
			}
		default:
			b.WriteString(collapseWhite(p.cur().Literal()))
			p.advance()
		}
	}
	n := &ir.Doctype{Value: b.String()}
	p.record(n, start)
	return n, nil
}

func (p *parser) String() string {
	return fmt.Sprintf("parser at %d/%d: %s", p.i, len(p.toks), p.cur())
}
