package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/signadot/mlfmt"
	"github.com/signadot/mlfmt/config"
	"github.com/signadot/mlfmt/encode"
	"github.com/signadot/mlfmt/format"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Verbose bool `cli:"name=v aliases=verbose desc='log progress to stderr'"`

	Indent     *int
	MaxDepth   int
	Color      config.ColorMode
	ConfigPath string

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) indentOpt(_ *cli.Context, a string) (any, error) {
	n, err := strconv.Atoi(a)
	if err != nil || n < 0 {
		return nil, fmt.Errorf("%w: indent must be a non-negative integer, got %q", cli.ErrUsage, a)
	}
	cfg.Indent = &n
	return n, nil
}

func (cfg *MainConfig) maxDepthOpt(_ *cli.Context, a string) (any, error) {
	n, err := strconv.Atoi(a)
	if err != nil || n < 1 {
		return nil, fmt.Errorf("%w: maxdepth must be a positive integer, got %q", cli.ErrUsage, a)
	}
	cfg.MaxDepth = n
	return n, nil
}

func (cfg *MainConfig) colorOpt(_ *cli.Context, a string) (any, error) {
	m := config.ColorMode(a)
	switch m {
	case config.ColorAuto, config.ColorAlways, config.ColorNever:
	default:
		return nil, fmt.Errorf("%w: color must be auto, always or never, got %q", cli.ErrUsage, a)
	}
	cfg.Color = m
	return a, nil
}

func (cfg *MainConfig) configOpt(_ *cli.Context, a string) (any, error) {
	cfg.ConfigPath = a
	return a, nil
}

// loadConfig fills settings not given on the command line from the
// configuration file.
func (cfg *MainConfig) loadConfig() error {
	if cfg.Verbose {
		logLevel.Set(slog.LevelInfo)
	}
	var (
		file *config.Config
		path = cfg.ConfigPath
		err  error
	)
	if path != "" {
		file, err = config.Load(path)
	} else {
		file, path, err = config.FindAndLoad(".")
	}
	if err != nil {
		return err
	}
	if path != "" {
		theLog.Info("loaded config", "path", path)
	}
	if cfg.Indent == nil && file.Indent != nil {
		cfg.Indent = file.Indent
	}
	if cfg.MaxDepth == 0 {
		cfg.MaxDepth = file.MaxDepth
	}
	if cfg.Color == "" {
		cfg.Color = file.Color
	}
	if cfg.Color == "" {
		cfg.Color = config.ColorAuto
	}
	return nil
}

// options returns the pipeline options for output to w. A nil w is
// never colored.
func (cfg *MainConfig) options(w io.Writer) []mlfmt.Option {
	res := []mlfmt.Option{}
	if cfg.Indent != nil {
		res = append(res, mlfmt.Indent(*cfg.Indent))
	}
	if cfg.MaxDepth > 0 {
		res = append(res, mlfmt.MaxDepth(cfg.MaxDepth))
	}
	if cfg.useColor(w) {
		res = append(res, mlfmt.Colors(encode.NewColors()))
	}
	return res
}

func (cfg *MainConfig) newPipeline(w io.Writer) *mlfmt.Config {
	return mlfmt.NewConfig(cfg.options(w)...)
}

func (cfg *MainConfig) useColor(w io.Writer) bool {
	if w == nil {
		return false
	}
	switch cfg.Color {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

type FmtConfig struct {
	*MainConfig
	Write bool `cli:"name=w desc='write results to the source files'"`
	Diff  bool `cli:"name=d aliases=diff desc='print diffs instead of formatted documents'"`

	Fmt *cli.Command
}

type CheckConfig struct {
	*MainConfig
	RoundTrip bool `cli:"name=r desc='verify that formatting preserves the node tree'"`

	Check *cli.Command
}

type TokensConfig struct {
	*MainConfig

	Tokens *cli.Command
}

type DumpConfig struct {
	*MainConfig
	Format format.Format

	Dump *cli.Command
}

func (cfg *DumpConfig) fmtFunc() cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		cfg.Format = f
		return f, nil
	})
}

type MatchConfig struct {
	*cli.Command
	*MainConfig

	Expr  string `cli:"name=e aliases=expr desc='expression selecting nodes'"`
	Paths bool   `cli:"name=l desc='print only the paths of matching nodes'"`
}

type PatchConfig struct {
	*MainConfig
	File  string `cli:"name=p desc='file holding the patch, JSON or YAML'"`
	Write bool   `cli:"name=w desc='write results to the source files'"`

	Patch *cli.Command
}
