package main

import (
	"context"
	"slices"
	"strings"

	"github.com/signadot/mlfmt/ir"
	"github.com/signadot/mlfmt/token"

	"go.lsp.dev/protocol"
)

func (s *Server) Completion(ctx context.Context, params *protocol.CompletionParams) (*protocol.CompletionList, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return nil, nil
	}
	runes := []rune(doc.content)
	off := lineColToOffset(runes, int(params.Position.Line), int(params.Position.Character))
	before := string(runes[:off])
	sc := scanOpen(before)

	completions := []protocol.CompletionItem{}
	switch {
	case strings.HasSuffix(before, "</"):
		if name, ok := sc.innermost(); ok {
			completions = append(completions, closeItem(name, name+">"))
		}
	case strings.HasSuffix(before, "<"):
		if name, ok := sc.innermost(); ok {
			completions = append(completions, closeItem(name, "/"+name+">"))
		}
		completions = append(completions, protocol.CompletionItem{
			Label:            "<!-- -->",
			Kind:             protocol.CompletionItemKindSnippet,
			InsertText:       "!-- $1 -->",
			InsertTextFormat: protocol.InsertTextFormatSnippet,
		})
	case sc.inTag && strings.HasSuffix(before, " "):
		for _, key := range attrKeys(doc.nodes) {
			completions = append(completions, protocol.CompletionItem{
				Label:            key,
				Kind:             protocol.CompletionItemKindProperty,
				InsertText:       key + `="$1"`,
				InsertTextFormat: protocol.InsertTextFormatSnippet,
			})
		}
	}
	return &protocol.CompletionList{
		IsIncomplete: false,
		Items:        completions,
	}, nil
}

func closeItem(name, insert string) protocol.CompletionItem {
	return protocol.CompletionItem{
		Label:      "</" + name + ">",
		Kind:       protocol.CompletionItemKindKeyword,
		Detail:     "close <" + name + ">",
		InsertText: insert,
	}
}

// attrKeys returns the sorted attribute names used in nodes.
func attrKeys(nodes []ir.Node) []string {
	seen := map[string]bool{}
	_ = ir.Walk(nodes, func(n ir.Node, _ ir.Path) error {
		for _, p := range ir.ParamsOf(n) {
			seen[p.Key.Name] = true
		}
		return nil
	})
	res := make([]string, 0, len(seen))
	for k := range seen {
		res = append(res, k)
	}
	slices.Sort(res)
	return res
}

// openScan is the state at the end of a possibly incomplete document.
type openScan struct {
	// open holds the names of unclosed tags, outermost first.
	open []string
	// inTag is set when the document ends inside a start tag.
	inTag bool
}

func (sc *openScan) innermost() (string, bool) {
	if len(sc.open) == 0 {
		return "", false
	}
	return sc.open[len(sc.open)-1], true
}

// close pops the innermost open tag named name and everything inside
// it.
func (sc *openScan) close(name string) {
	for j := len(sc.open) - 1; j >= 0; j-- {
		if sc.open[j] == name {
			sc.open = sc.open[:j]
			return
		}
	}
}

// scanOpen tracks unclosed tags in src without requiring it to parse.
func scanOpen(src string) *openScan {
	sc := &openScan{}
	rs := []rune(src)
	toks := token.TokenizeString(src)
	i := 0
	at := func(j int, tt token.TokenType) bool {
		return j < len(toks) && toks[j].Type == tt
	}
	// rescan restarts tokenizing just after the quote opening toks[i];
	// quotes are only delimiters inside tags.
	rescan := func() {
		rs = rs[toks[i].Pos.AtWhole+1:]
		toks = token.TokenizeString(string(rs))
		i = 0
	}
	name := func() string {
		var b strings.Builder
		if !at(i, token.TText) {
			return ""
		}
		for i < len(toks) && (b.Len() == 0 || isNamePart(toks[i].Type)) {
			b.WriteString(toks[i].Text)
			i++
		}
		return strings.ToLower(b.String())
	}
	for i < len(toks) && toks[i].Type != token.TEOF {
		switch toks[i].Type {
		case token.TString, token.TIllegal:
			rescan()
			continue
		case token.TTagOpen:
		default:
			i++
			continue
		}
		i++
		switch {
		case at(i, token.TExclamation) && at(i+1, token.THyphen) && at(i+2, token.THyphen):
			i += 3
			for i < len(toks) && toks[i].Type != token.TEOF {
				if at(i, token.THyphen) && at(i+1, token.THyphen) && at(i+2, token.TTagClose) {
					i += 3
					break
				}
				if at(i, token.TString) || at(i, token.TIllegal) {
					rescan()
					continue
				}
				i++
			}
		case at(i, token.TSlash):
			i++
			if n := name(); n != "" {
				sc.close(n)
			}
		default:
			n := name()
			if n == "" {
				continue
			}
			sc.inTag = true
			solo := false
			for i < len(toks) && toks[i].Type != token.TEOF {
				if at(i, token.TTagClose) {
					sc.inTag = false
					solo = i > 0 && toks[i-1].Type == token.TSlash
					i++
					break
				}
				i++
			}
			if !sc.inTag && !solo {
				sc.open = append(sc.open, n)
			}
		}
	}
	return sc
}

func isNamePart(tt token.TokenType) bool {
	switch tt {
	case token.TText, token.THyphen, token.TInteger, token.TDecimal:
		return true
	}
	return false
}
