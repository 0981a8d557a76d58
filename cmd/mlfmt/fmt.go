package main

import (
	"bytes"
	"fmt"

	"github.com/signadot/mlfmt"
	"github.com/signadot/mlfmt/libdiff"

	"github.com/scott-cotton/cli"
)

func fmtDocs(cfg *FmtConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Fmt.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Write && cfg.Diff {
		return fmt.Errorf("%w: at most one of -w and -d", cli.ErrUsage)
	}
	if cfg.Write && len(args) == 0 {
		return fmt.Errorf("%w: -w requires files", cli.ErrUsage)
	}
	n := max(1, len(args))
	i := 0
	return eachInput(cc, args, func(name string, d []byte) error {
		i++
		switch {
		case cfg.Write:
			out, err := mlfmt.Format(d, cfg.options(nil)...)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			if bytes.Equal(out, d) {
				theLog.Info("unchanged", "file", name)
				return nil
			}
			return writeFile(name, out)
		case cfg.Diff:
			out, err := mlfmt.Format(d, cfg.options(nil)...)
			if err != nil {
				return fmt.Errorf("%s: %w", displayName(name), err)
			}
			ls := libdiff.Lines(string(d), string(out))
			if !libdiff.Changed(ls) {
				return nil
			}
			dn := displayName(name)
			if err := libdiff.Write(cc.Out, dn, dn+" (formatted)", ls, cfg.useColor(cc.Out)); err != nil {
				return err
			}
			return separate(cc.Out, i-1, n)
		default:
			out, err := mlfmt.Format(d, cfg.options(cc.Out)...)
			if err != nil {
				return fmt.Errorf("%s: %w", displayName(name), err)
			}
			if _, err := cc.Out.Write(out); err != nil {
				return err
			}
			return separate(cc.Out, i-1, n)
		}
	})
}
