package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/signadot/mlfmt/encode"
	"github.com/signadot/mlfmt/format"
	"github.com/signadot/mlfmt/ir"
	"github.com/signadot/mlfmt/parse"

	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"
)

func dump(cfg *DumpConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Dump.Parse(cc, args)
	if err != nil {
		return err
	}
	n := max(1, len(args))
	i := 0
	return eachInput(cc, args, func(name string, d []byte) error {
		if err := dumpDoc(cfg, cc.Out, d); err != nil {
			return fmt.Errorf("error processing %s: %w", displayName(name), err)
		}
		i++
		return separate(cc.Out, i-1, n)
	})
}

func dumpDoc(cfg *DumpConfig, w io.Writer, d []byte) error {
	pipeline := cfg.newPipeline(w)
	nodes, err := parse.Parse(d, pipeline.ParseOpts()...)
	if err != nil {
		return err
	}
	switch cfg.Format {
	case format.MarkupFormat:
		return encode.Encode(nodes, w, pipeline.EncodeOpts()...)
	case format.YAMLFormat:
		out, err := yaml.Marshal(ir.ToWire(nodes))
		if err != nil {
			return fmt.Errorf("internal error: %w", err)
		}
		_, err = w.Write(out)
		return err
	default:
		out, err := json.MarshalIndent(ir.ToWire(nodes), "", "  ")
		if err != nil {
			return fmt.Errorf("internal error: %w", err)
		}
		_, err = w.Write(append(out, '\n'))
		return err
	}
}
