package main

import (
	"fmt"
	"io"

	"github.com/signadot/mlfmt/encode"
	"github.com/signadot/mlfmt/eval"
	"github.com/signadot/mlfmt/ir"
	"github.com/signadot/mlfmt/parse"

	"github.com/scott-cotton/cli"
)

func match(cfg *MatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Command.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Expr == "" {
		return fmt.Errorf("%w: match requires -e <expr>", cli.ErrUsage)
	}
	q, err := eval.Compile(cfg.Expr)
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	multi := len(args) > 1
	n := max(1, len(args))
	i := 0
	return eachInput(cc, args, func(name string, d []byte) error {
		i++
		pipeline := cfg.newPipeline(cc.Out)
		nodes, err := parse.Parse(d, pipeline.ParseOpts()...)
		if err != nil {
			return fmt.Errorf("%s: %w", displayName(name), err)
		}
		ms, err := q.Select(nodes)
		if err != nil {
			return fmt.Errorf("%s: %w", displayName(name), err)
		}
		theLog.Info("matched", "file", displayName(name), "nodes", len(ms))
		prefix := ""
		if multi {
			prefix = displayName(name) + ":"
		}
		for _, m := range ms {
			if err := writeMatch(cc.Out, prefix, m, cfg.Paths, pipeline.EncodeOpts()); err != nil {
				return err
			}
		}
		return separate(cc.Out, i-1, n)
	})
}

func writeMatch(w io.Writer, prefix string, m eval.Match, pathOnly bool, opts []encode.EncodeOption) error {
	if pathOnly {
		_, err := fmt.Fprintf(w, "%s%s\n", prefix, m.Path)
		return err
	}
	if _, err := fmt.Fprintf(w, "# %s%s\n", prefix, m.Path); err != nil {
		return err
	}
	return encode.Encode([]ir.Node{m.Node}, w, opts...)
}
