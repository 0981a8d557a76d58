package main

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/signadot/mlfmt/ir"
	"github.com/signadot/mlfmt/parse"
	"github.com/signadot/mlfmt/token"

	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
)

type documentStore struct {
	mu   sync.RWMutex
	docs map[string]*document
}

type document struct {
	uri     string
	content string
	version int32

	// nodes is nil when content does not parse; err then holds the
	// parse error.
	nodes     []ir.Node
	err       error
	positions map[ir.Node]token.Pos
}

func (ds *documentStore) get(uri string) *document {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.docs[uri]
}

func (ds *documentStore) put(uri string, content string, version int32) *document {
	positions := make(map[ir.Node]token.Pos)
	nodes, err := parse.ParseString(content, parse.ParsePositions(positions))
	doc := &document{
		uri:       uri,
		content:   content,
		version:   version,
		nodes:     nodes,
		err:       err,
		positions: positions,
	}
	if err != nil {
		doc.nodes = nil
		theLog.Debug("parse failed", "uri", uri, "error", err)
	}

	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.docs[uri] = doc
	return doc
}

func (ds *documentStore) remove(uri string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	delete(ds.docs, uri)
}

func (s *Server) publishDiagnostics(ctx context.Context, uri string) {
	doc := s.docs.get(uri)
	if doc == nil {
		return
	}
	s.notifyDiagnostics(ctx, uri, validateDocument(doc))
}

func (s *Server) notifyDiagnostics(ctx context.Context, uri string, diagnostics []protocol.Diagnostic) {
	if s.conn == nil {
		return
	}
	err := s.conn.Notify(ctx, protocol.MethodTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         protocol.DocumentURI(uri),
		Diagnostics: diagnostics,
	})
	if err != nil {
		theLog.Warn("could not publish diagnostics", "uri", uri, "error", err)
	}
}

func validateDocument(doc *document) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}
	if doc.err == nil {
		return diagnostics
	}
	diagnostic := protocol.Diagnostic{
		Severity: protocol.DiagnosticSeverityError,
		Message:  doc.err.Error(),
		Source:   "mlfmt",
	}
	if pos, ok := parse.ErrorPos(doc.err); ok {
		src := []rune(doc.content)
		col := utf16Col(src, pos)
		width := 1
		if pos.AtWhole < len(src) && src[pos.AtWhole] != '\n' {
			width = utf16Len(src[pos.AtWhole : pos.AtWhole+1])
		}
		diagnostic.Range = protocol.Range{
			Start: protocol.Position{
				Line:      uint32(pos.Line()),
				Character: uint32(col),
			},
			End: protocol.Position{
				Line:      uint32(pos.Line()),
				Character: uint32(col + width),
			},
		}
	}
	return append(diagnostics, diagnostic)
}

func (s *Server) DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	s.docs.put(uri, params.TextDocument.Text, params.TextDocument.Version)
	s.publishDiagnostics(ctx, uri)
	return nil
}

// contentChange is a content change as sent by the client. A missing
// range replaces the whole document; an empty one is an insertion.
type contentChange struct {
	Range *protocol.Range `json:"range,omitempty"`
	Text  string          `json:"text"`
}

type didChangeParams struct {
	TextDocument   protocol.VersionedTextDocumentIdentifier `json:"textDocument"`
	ContentChanges []contentChange                          `json:"contentChanges"`
}

// changeHandler handles didChange notifications from their raw params,
// where protocol.TextDocumentContentChangeEvent cannot tell a missing
// range from one at 0:0.
func (s *Server) changeHandler(next jsonrpc2.Handler) jsonrpc2.Handler {
	return func(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
		if req.Method() != protocol.MethodTextDocumentDidChange {
			return next(ctx, reply, req)
		}
		params := &didChangeParams{}
		if err := json.Unmarshal([]byte(req.Params()), params); err != nil {
			return reply(ctx, nil, fmt.Errorf("%s: %w", jsonrpc2.ErrParse, err))
		}
		return reply(ctx, nil, s.didChange(ctx, params))
	}
}

func (s *Server) DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error {
	changes := make([]contentChange, len(params.ContentChanges))
	for i := range params.ContentChanges {
		c := &params.ContentChanges[i]
		changes[i] = contentChange{Range: &c.Range, Text: c.Text}
	}
	return s.didChange(ctx, &didChangeParams{
		TextDocument:   params.TextDocument,
		ContentChanges: changes,
	})
}

func (s *Server) didChange(ctx context.Context, params *didChangeParams) error {
	uri := string(params.TextDocument.URI)
	doc := s.docs.get(uri)
	if doc == nil {
		return nil
	}
	content := doc.content
	for _, change := range params.ContentChanges {
		content = applyChange(content, change)
	}
	s.docs.put(uri, content, params.TextDocument.Version)
	s.publishDiagnostics(ctx, uri)
	return nil
}

func (s *Server) DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	s.docs.remove(uri)
	// clear stale diagnostics in the client
	s.notifyDiagnostics(ctx, uri, []protocol.Diagnostic{})
	return nil
}

// applyChange applies one content change.
func applyChange(content string, change contentChange) string {
	r := change.Range
	if r == nil {
		return change.Text
	}
	runes := []rune(content)
	start := lineColToOffset(runes, int(r.Start.Line), int(r.Start.Character))
	end := lineColToOffset(runes, int(r.End.Line), int(r.End.Character))
	if start > end {
		return content
	}
	return string(runes[:start]) + change.Text + string(runes[end:])
}
