package main

import (
	"context"
	"slices"
	"strings"

	"github.com/signadot/mlfmt/encode"
	"github.com/signadot/mlfmt/token"

	"go.lsp.dev/protocol"
)

// The legend announced in Initialize; indexes into these are the
// encoded token types and modifier bits.
var (
	tokenTypes = []protocol.SemanticTokenTypes{
		protocol.SemanticTokenComment,
		protocol.SemanticTokenKeyword,
		protocol.SemanticTokenString,
		protocol.SemanticTokenNumber,
		protocol.SemanticTokenOperator,
		protocol.SemanticTokenProperty,
	}
	tokenModifiers = []protocol.SemanticTokenModifiers{
		protocol.SemanticTokenModifierDefinition,
	}
)

// Map encoder color attributes to LSP semantic token types
func mapColorToSemanticTokenType(tt token.TokenType, attr encode.ColorAttr) protocol.SemanticTokenTypes {
	switch attr {
	case encode.TagColor, encode.DoctypeColor:
		return protocol.SemanticTokenKeyword
	case encode.CommentColor:
		return protocol.SemanticTokenComment
	case encode.FieldColor:
		return protocol.SemanticTokenProperty
	case encode.ValueColor:
		switch tt {
		case token.TInteger, token.TDecimal:
			return protocol.SemanticTokenNumber
		default:
			return protocol.SemanticTokenString
		}
	case encode.SepColor:
		return protocol.SemanticTokenOperator
	default:
		return protocol.SemanticTokenString
	}
}

type tokenInfo struct {
	line      uint32
	character uint32
	length    uint32
	tokenType protocol.SemanticTokenTypes
	modifiers []protocol.SemanticTokenModifiers
}

// classifier colors a token stream the way the encoder colors its
// output. It works on documents which do not parse.
type classifier struct {
	doc  []rune
	src  []rune
	base token.Pos
	toks []token.Token
	i    int
	out  []tokenInfo
}

func (c *classifier) at(j int, tt token.TokenType) bool {
	return c.i+j < len(c.toks) && c.toks[c.i+j].Type == tt
}

func (c *classifier) done() bool {
	return c.i >= len(c.toks) || c.toks[c.i].Type == token.TEOF
}

// rescan restarts tokenizing after the quote opening the current
// token; quotes only delimit strings inside tags.
func (c *classifier) rescan() {
	tok := c.toks[c.i]
	head := string(c.src[tok.Pos.AtWhole : tok.Pos.AtWhole+1])
	c.base = c.absolute(tok.Pos).Advance(head)
	c.src = c.src[tok.Pos.AtWhole+1:]
	c.toks = token.TokenizeString(string(c.src))
	c.i = 0
}

// absolute translates a position in the current token stream into the
// document.
func (c *classifier) absolute(p token.Pos) token.Pos {
	if p.LineNo == 1 {
		return token.Pos{
			LineNo:  c.base.LineNo,
			AtLine:  c.base.AtLine + p.AtLine,
			AtWhole: c.base.AtWhole + p.AtWhole,
		}
	}
	return token.Pos{
		LineNo:  c.base.LineNo + p.LineNo - 1,
		AtLine:  p.AtLine,
		AtWhole: c.base.AtWhole + p.AtWhole,
	}
}

// emit records the current token, split at line breaks, and advances.
func (c *classifier) emit(attr encode.ColorAttr, mods ...protocol.SemanticTokenModifiers) {
	tok := c.toks[c.i]
	c.i++
	if tok.Type == token.TWhitespace {
		return
	}
	pos := c.absolute(tok.Pos)
	tt := mapColorToSemanticTokenType(tok.Type, attr)
	for i, seg := range strings.Split(tok.Literal(), "\n") {
		n := utf16Len([]rune(seg))
		if n != 0 {
			col := 0
			if i == 0 {
				col = utf16Col(c.doc, pos)
			}
			c.out = append(c.out, tokenInfo{
				line:      uint32(pos.Line() + i),
				character: uint32(col),
				length:    uint32(n),
				tokenType: tt,
				modifiers: mods,
			})
		}
	}
}

func (c *classifier) skip() {
	c.i++
}

func (c *classifier) run() {
	for !c.done() {
		switch {
		case c.at(0, token.TString), c.at(0, token.TIllegal):
			c.rescan()
		case c.at(0, token.TTagOpen):
			c.emit(encode.SepColor)
			c.markup()
		default:
			c.skip()
		}
	}
}

func (c *classifier) markup() {
	switch {
	case c.at(0, token.TExclamation) && c.at(1, token.THyphen) && c.at(2, token.THyphen):
		c.emit(encode.CommentColor)
		c.emit(encode.CommentColor)
		c.emit(encode.CommentColor)
		for !c.done() {
			if c.at(0, token.THyphen) && c.at(1, token.THyphen) && c.at(2, token.TTagClose) {
				c.emit(encode.CommentColor)
				c.emit(encode.CommentColor)
				c.emit(encode.CommentColor)
				return
			}
			if c.at(0, token.TString) || c.at(0, token.TIllegal) {
				c.rescan()
				continue
			}
			c.emit(encode.CommentColor)
		}
	case c.at(0, token.TExclamation):
		c.emit(encode.SepColor)
		for !c.done() && !c.at(0, token.TTagClose) {
			c.emit(encode.DoctypeColor)
		}
		if !c.done() {
			c.emit(encode.SepColor)
		}
	case c.at(0, token.TSlash):
		c.emit(encode.SepColor)
		c.name(encode.TagColor)
		if c.at(0, token.TTagClose) {
			c.emit(encode.SepColor)
		}
	case c.at(0, token.TText):
		c.name(encode.TagColor, protocol.SemanticTokenModifierDefinition)
		c.attrs()
	}
}

// name colors a name: a text token and the name parts adjacent to it.
func (c *classifier) name(attr encode.ColorAttr, mods ...protocol.SemanticTokenModifiers) {
	if !c.at(0, token.TText) {
		return
	}
	c.emit(attr, mods...)
	for !c.done() && isNamePart(c.toks[c.i].Type) {
		c.emit(attr, mods...)
	}
}

func (c *classifier) attrs() {
	for !c.done() {
		switch c.toks[c.i].Type {
		case token.TTagClose:
			c.emit(encode.SepColor)
			return
		case token.TTagOpen:
			// unterminated start tag; let run handle the new one
			return
		case token.TText:
			c.name(encode.FieldColor)
		case token.TString, token.TInteger, token.TDecimal:
			c.emit(encode.ValueColor)
		case token.TAssign, token.TSlash:
			c.emit(encode.SepColor)
		default:
			c.skip()
		}
	}
}

// collectSemanticTokens classifies the tokens of doc in document order.
func collectSemanticTokens(doc *document) []tokenInfo {
	src := []rune(doc.content)
	c := &classifier{
		doc:  src,
		src:  src,
		base: token.StartPos(),
	}
	c.toks = token.TokenizeString(doc.content)
	c.run()
	slices.SortStableFunc(c.out, func(a, b tokenInfo) int {
		if a.line != b.line {
			return int(a.line) - int(b.line)
		}
		return int(a.character) - int(b.character)
	})
	return c.out
}

// encodeTokens delta encodes tokens in the LSP format.
func encodeTokens(tokenList []tokenInfo) []uint32 {
	typeMap := make(map[protocol.SemanticTokenTypes]uint32)
	for i, tt := range tokenTypes {
		typeMap[tt] = uint32(i)
	}
	modifierMap := make(map[protocol.SemanticTokenModifiers]uint32)
	for i, tm := range tokenModifiers {
		modifierMap[tm] = uint32(i)
	}

	tokens := []uint32{}
	var prevLine uint32 = 0
	var prevChar uint32 = 0
	for _, ti := range tokenList {
		deltaLine := ti.line - prevLine
		deltaChar := ti.character
		if deltaLine == 0 {
			deltaChar = ti.character - prevChar
		}
		tokenType, ok := typeMap[ti.tokenType]
		if !ok {
			tokenType = typeMap[protocol.SemanticTokenString]
		}
		tokenModifierBits := uint32(0)
		for _, mod := range ti.modifiers {
			if modIdx, ok := modifierMap[mod]; ok {
				tokenModifierBits |= 1 << modIdx
			}
		}
		tokens = append(tokens, deltaLine, deltaChar, ti.length, tokenType, tokenModifierBits)
		prevLine = ti.line
		prevChar = ti.character
	}
	return tokens
}

func (s *Server) SemanticTokensFull(ctx context.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return &protocol.SemanticTokens{
			Data: []uint32{},
		}, nil
	}
	return &protocol.SemanticTokens{
		Data: encodeTokens(collectSemanticTokens(doc)),
	}, nil
}

func (s *Server) SemanticTokensRange(ctx context.Context, params *protocol.SemanticTokensRangeParams) (*protocol.SemanticTokens, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return &protocol.SemanticTokens{
			Data: []uint32{},
		}, nil
	}
	r := params.Range
	all := collectSemanticTokens(doc)
	inRange := make([]tokenInfo, 0, len(all))
	for _, ti := range all {
		if ti.line < r.Start.Line || ti.line > r.End.Line {
			continue
		}
		inRange = append(inRange, ti)
	}
	return &protocol.SemanticTokens{
		Data: encodeTokens(inRange),
	}, nil
}
