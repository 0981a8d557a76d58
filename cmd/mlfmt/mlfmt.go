package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"
)

func mlfmtMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer func() {
		if cfg.CloseOut != nil {
			cfg.CloseOut()
		}
	}()
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if err := cfg.loadConfig(); err != nil {
		return err
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

// eachInput calls f with the name and content of every file in args, or
// of stdin, named "-", when args is empty.
func eachInput(cc *cli.Context, args []string, f func(name string, d []byte) error) error {
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, arg := range args {
		d, err := readInput(cc, arg)
		if err != nil {
			return err
		}
		if err := f(arg, d); err != nil {
			return err
		}
	}
	return nil
}

func readInput(cc *cli.Context, file string) ([]byte, error) {
	if file == "-" {
		d, err := io.ReadAll(cc.In)
		if err != nil {
			return nil, fmt.Errorf("error reading stdin: %w", err)
		}
		return d, nil
	}
	d, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("could not read %q: %w", file, err)
	}
	return d, nil
}

// writeFile replaces the content of file, keeping its permissions.
func writeFile(file string, d []byte) error {
	fi, err := os.Stat(file)
	if err != nil {
		return err
	}
	if err := os.WriteFile(file, d, fi.Mode().Perm()); err != nil {
		return err
	}
	theLog.Info("wrote", "file", file, "bytes", len(d))
	return nil
}

func displayName(file string) string {
	if file == "-" {
		return "stdin"
	}
	return file
}

// separate writes the separator between the outputs of two inputs.
func separate(w io.Writer, i, n int) error {
	if i >= n-1 {
		return nil
	}
	_, err := w.Write([]byte("---\n"))
	return err
}
