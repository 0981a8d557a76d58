package main

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/mlfmt/token"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
)

func TestScanOpen(t *testing.T) {
	tests := []struct {
		in    string
		open  []string
		inTag bool
	}{
		{in: "<html><body><p>hi", open: []string{"html", "body", "p"}},
		{in: "<html><br/><p>x</p><div ", open: []string{"html"}, inTag: true},
		{in: "<a><!-- <b> --><c>", open: []string{"a", "c"}},
		{in: "<a><b><c></b>", open: []string{"a"}},
		{in: "it's <b>", open: []string{"b"}},
		{in: "<DIV class='x'>", open: []string{"div"}},
		{in: "", open: nil},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			sc := scanOpen(tc.in)
			if diff := cmp.Diff(tc.open, sc.open); diff != "" {
				t.Errorf("open (-want +got):\n%s", diff)
			}
			if sc.inTag != tc.inTag {
				t.Errorf("inTag: got %v want %v", sc.inTag, tc.inTag)
			}
		})
	}
}

func TestApplyChange(t *testing.T) {
	doc := "<html>\n<body></body>\n</html>\n"
	tests := []struct {
		name   string
		change contentChange
		want   string
	}{
		{
			name: "replace in line",
			change: contentChange{
				Range: &protocol.Range{
					Start: protocol.Position{Line: 1, Character: 1},
					End:   protocol.Position{Line: 1, Character: 5},
				},
				Text: "BODY",
			},
			want: "<html>\n<BODY></body>\n</html>\n",
		},
		{
			name: "insert at start",
			change: contentChange{
				Range: &protocol.Range{},
				Text:  "<!doctype html>\n",
			},
			want: "<!doctype html>\n" + doc,
		},
		{
			name:   "whole document",
			change: contentChange{Text: "new"},
			want:   "new",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := applyChange(doc, tc.change); got != tc.want {
				t.Errorf("got %q want %q", got, tc.want)
			}
		})
	}
}

func TestChangeHandler(t *testing.T) {
	s := &Server{}
	s.setupHandlers(context.Background())
	const uri = "file:///x.html"
	s.docs.put(uri, "<p></p>\n", 1)

	change := func(raw string) {
		t.Helper()
		req, err := jsonrpc2.NewNotification(protocol.MethodTextDocumentDidChange, json.RawMessage(raw))
		if err != nil {
			t.Fatal(err)
		}
		next := func(context.Context, jsonrpc2.Replier, jsonrpc2.Request) error {
			t.Fatalf("didChange passed on")
			return nil
		}
		reply := func(_ context.Context, _ any, err error) error {
			if err != nil {
				t.Errorf("reply error %v", err)
			}
			return nil
		}
		if err := s.changeHandler(next)(context.Background(), reply, req); err != nil {
			t.Fatal(err)
		}
	}

	change(`{"textDocument":{"uri":"file:///x.html","version":2},"contentChanges":[` +
		`{"range":{"start":{"line":0,"character":0},"end":{"line":0,"character":0}},"text":"<br/>"}]}`)
	if got := s.docs.get(uri); got.content != "<br/><p></p>\n" || got.version != 2 {
		t.Errorf("after insert: %q version %d", got.content, got.version)
	}
	change(`{"textDocument":{"uri":"file:///x.html","version":3},"contentChanges":[{"text":"<a></a>"}]}`)
	if got := s.docs.get(uri).content; got != "<a></a>" {
		t.Errorf("after replace: %q", got)
	}
}

func TestHoverPreview(t *testing.T) {
	s := &Server{}
	s.setupHandlers(context.Background())
	const uri = "file:///x.html"
	s.docs.put(uri, "<div>\n  <img  src='a.png'/>\n</div>", 1)
	h, err := s.Hover(context.Background(), &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: uri},
			Position:     protocol.Position{Line: 1, Character: 3},
		},
	})
	if err != nil || h == nil {
		t.Fatalf("hover = %v, %v", h, err)
	}
	if !strings.Contains(h.Contents.Value, "**SoloTag** `<img>`") {
		t.Errorf("missing title in %q", h.Contents.Value)
	}
	if !strings.Contains(h.Contents.Value, "```html\n<img src=\"a.png\"/>\n```") {
		t.Errorf("missing preview in %q", h.Contents.Value)
	}
}

func TestValidateDocument(t *testing.T) {
	ds := &documentStore{docs: map[string]*document{}}
	doc := ds.put("file:///x.html", "<p>\n</q>", 1)
	got := validateDocument(doc)
	if len(got) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(got))
	}
	want := protocol.Range{
		Start: protocol.Position{Line: 1, Character: 2},
		End:   protocol.Position{Line: 1, Character: 3},
	}
	if diff := cmp.Diff(want, got[0].Range); diff != "" {
		t.Errorf("range (-want +got):\n%s", diff)
	}
	if got[0].Source != "mlfmt" {
		t.Errorf("source %q", got[0].Source)
	}

	doc = ds.put("file:///x.html", "<p></p>", 2)
	if got := validateDocument(doc); len(got) != 0 {
		t.Errorf("unexpected diagnostics %v", got)
	}
	if ds.get("file:///x.html").version != 2 {
		t.Errorf("store not updated")
	}
}

func TestSemanticTokens(t *testing.T) {
	doc := &document{content: `<a href="x">`}
	got := encodeTokens(collectSemanticTokens(doc))
	want := []uint32{
		0, 0, 1, 4, 0,
		0, 1, 1, 1, 1,
		0, 2, 4, 5, 0,
		0, 4, 1, 4, 0,
		0, 1, 3, 2, 0,
		0, 3, 1, 4, 0,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestSemanticTokenTypes(t *testing.T) {
	tests := []struct {
		in    string
		types []protocol.SemanticTokenTypes
		first uint32
	}{
		{
			in: "<!--x-->",
			types: []protocol.SemanticTokenTypes{
				protocol.SemanticTokenOperator,
				protocol.SemanticTokenComment, protocol.SemanticTokenComment,
				protocol.SemanticTokenComment, protocol.SemanticTokenComment,
				protocol.SemanticTokenComment, protocol.SemanticTokenComment,
				protocol.SemanticTokenComment,
			},
		},
		{
			in: "it's <b>",
			types: []protocol.SemanticTokenTypes{
				protocol.SemanticTokenOperator,
				protocol.SemanticTokenKeyword,
				protocol.SemanticTokenOperator,
			},
			first: 5,
		},
		{
			in: "<td width=3>",
			types: []protocol.SemanticTokenTypes{
				protocol.SemanticTokenOperator,
				protocol.SemanticTokenKeyword,
				protocol.SemanticTokenProperty,
				protocol.SemanticTokenOperator,
				protocol.SemanticTokenNumber,
				protocol.SemanticTokenOperator,
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			infos := collectSemanticTokens(&document{content: tc.in})
			var types []protocol.SemanticTokenTypes
			for _, ti := range infos {
				types = append(types, ti.tokenType)
			}
			if diff := cmp.Diff(tc.types, types); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
			if len(infos) != 0 && infos[0].character != tc.first {
				t.Errorf("first token at %d, want %d", infos[0].character, tc.first)
			}
		})
	}
}

func TestUTF16Positions(t *testing.T) {
	src := []rune("a😀b\nc😀")
	for _, tc := range []struct {
		line, col, want int
	}{
		{0, 0, 0},
		{0, 1, 1},
		{0, 3, 2},
		{0, 2, 2},
		{0, 9, 3},
		{1, 1, 5},
		{1, 3, 6},
		{4, 0, 6},
	} {
		if got := lineColToOffset(src, tc.line, tc.col); got != tc.want {
			t.Errorf("%d:%d: got %d want %d", tc.line, tc.col, got, tc.want)
		}
	}
	if got := utf16Col(src, token.Pos{LineNo: 1, AtLine: 2, AtWhole: 2}); got != 3 {
		t.Errorf("utf16Col got %d want 3", got)
	}

	ds := &documentStore{docs: map[string]*document{}}
	diags := validateDocument(ds.put("file:///x.html", "<p>\n😀</q>", 1))
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(diags))
	}
	want := protocol.Range{
		Start: protocol.Position{Line: 1, Character: 4},
		End:   protocol.Position{Line: 1, Character: 5},
	}
	if diff := cmp.Diff(want, diags[0].Range); diff != "" {
		t.Errorf("range (-want +got):\n%s", diff)
	}

	got := encodeTokens(collectSemanticTokens(&document{content: "😀<a>"}))
	wantToks := []uint32{
		0, 2, 1, 4, 0,
		0, 1, 1, 1, 1,
		0, 1, 1, 4, 0,
	}
	if diff := cmp.Diff(wantToks, got); diff != "" {
		t.Errorf("tokens (-want +got):\n%s", diff)
	}
}
