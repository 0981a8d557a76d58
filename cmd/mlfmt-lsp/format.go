package main

import (
	"context"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/signadot/mlfmt"
	"github.com/signadot/mlfmt/config"

	"go.lsp.dev/protocol"
)

func (s *Server) Formatting(ctx context.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil || doc.err != nil {
		return nil, nil
	}

	formatted, err := mlfmt.Format([]byte(doc.content), formatOptions(doc.uri, params.Options)...)
	if err != nil {
		theLog.Warn("format failed", "uri", doc.uri, "error", err)
		return nil, nil
	}
	if string(formatted) == doc.content {
		return []protocol.TextEdit{}, nil
	}

	lines := strings.Count(doc.content, "\n")
	if len(doc.content) > 0 && doc.content[len(doc.content)-1] != '\n' {
		lines++
	}

	// a single edit replacing the whole document
	return []protocol.TextEdit{
		{
			Range: protocol.Range{
				Start: protocol.Position{Line: 0, Character: 0},
				End: protocol.Position{
					Line:      uint32(lines),
					Character: 0,
				},
			},
			NewText: string(formatted),
		},
	}, nil
}

// formatOptions prefers the project configuration file over the editor's
// tab settings.
func formatOptions(uri string, opts protocol.FormattingOptions) []mlfmt.Option {
	res := []mlfmt.Option{}
	if opts.InsertSpaces && opts.TabSize > 0 {
		res = append(res, mlfmt.Indent(int(opts.TabSize)))
	}
	path, ok := uriPath(uri)
	if !ok {
		return res
	}
	cfg, cfgPath, err := config.FindAndLoad(filepath.Dir(path))
	if err != nil {
		theLog.Warn("could not load config", "uri", uri, "error", err)
		return res
	}
	if cfgPath != "" {
		theLog.Debug("using config", "path", cfgPath)
	}
	if cfg.Indent != nil {
		res = append(res, mlfmt.Indent(*cfg.Indent))
	}
	if cfg.MaxDepth > 0 {
		res = append(res, mlfmt.MaxDepth(cfg.MaxDepth))
	}
	return res
}

func uriPath(uri string) (string, bool) {
	u, err := url.Parse(uri)
	if err != nil || u.Scheme != "file" {
		return "", false
	}
	return filepath.FromSlash(u.Path), true
}
