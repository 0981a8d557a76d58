package main

import (
	"fmt"

	"github.com/signadot/mlfmt/token"

	"github.com/scott-cotton/cli"
)

func tokens(cfg *TokensConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Tokens.Parse(cc, args)
	if err != nil {
		return err
	}
	n := max(1, len(args))
	i := 0
	return eachInput(cc, args, func(name string, d []byte) error {
		if err := token.WriteTokens(cc.Out, token.Tokenize(d)); err != nil {
			return fmt.Errorf("error writing tokens of %s: %w", displayName(name), err)
		}
		i++
		return separate(cc.Out, i-1, n)
	})
}
