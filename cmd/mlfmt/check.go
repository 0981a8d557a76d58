package main

import (
	"fmt"

	"github.com/signadot/mlfmt"

	"github.com/scott-cotton/cli"
)

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		return err
	}
	failed := 0
	err = eachInput(cc, args, func(name string, d []byte) error {
		var err error
		if cfg.RoundTrip {
			_, err = mlfmt.RoundTrip(d, cfg.options(nil)...)
		} else {
			err = mlfmt.Check(d, cfg.options(nil)...)
		}
		if err != nil {
			failed++
			_, err = fmt.Fprintf(cc.Out, "%s: %v\n", displayName(name), err)
			return err
		}
		_, err = fmt.Fprintf(cc.Out, "%s: ok\n", displayName(name))
		return err
	})
	if err != nil {
		return err
	}
	if failed != 0 {
		theLog.Warn("check failed", "documents", failed)
		return cli.ExitCodeErr(1)
	}
	return nil
}
