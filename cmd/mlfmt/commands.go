package main

import (
	"github.com/signadot/mlfmt/format"

	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "indent",
			Aliases:     []string{"i"},
			Description: "spaces per nesting level (default 4)",
			Type:        cli.NamedFuncOpt(cfg.indentOpt, "(n)"),
		},
		&cli.Opt{
			Name:        "maxdepth",
			Description: "maximum tag nesting depth (default 512)",
			Type:        cli.NamedFuncOpt(cfg.maxDepthOpt, "(n)"),
		},
		&cli.Opt{
			Name:        "color",
			Description: "color output: auto, always or never",
			Type:        cli.NamedFuncOpt(cfg.colorOpt, "(mode)"),
		},
		&cli.Opt{
			Name:        "config",
			Description: "configuration file (default: nearest .mlfmt.yaml)",
			Type:        cli.NamedFuncOpt(cfg.configOpt, "(filepath)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "mlfmt").
		WithSynopsis("mlfmt [opts] command [opts]").
		WithDescription("mlfmt formats and inspects markup documents.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return mlfmtMain(cfg, cc, args)
		}).
		WithSubs(
			FmtCommand(cfg),
			CheckCommand(cfg),
			TokensCommand(cfg),
			DumpCommand(cfg),
			MatchCommand(cfg),
			PatchCommand(cfg))
}

func FmtCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &FmtConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Fmt, "fmt").
		WithAliases("f").
		WithSynopsis("fmt [-w | -d] [files]").
		WithDescription("format documents, reading stdin when no files are given").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return fmtDocs(cfg, cc, args)
		})
}

func CheckCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CheckConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Check, "check").
		WithAliases("c").
		WithSynopsis("check [-r] [files]").
		WithDescription("report parse errors, exiting with status 1 if there are any").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return check(cfg, cc, args)
		})
}

func TokensCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &TokensConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Tokens, "tokens").
		WithAliases("t", "tok").
		WithSynopsis("tokens [files]").
		WithDescription("print the token stream with positions").
		WithRun(func(cc *cli.Context, args []string) error {
			return tokens(cfg, cc, args)
		})
}

func DumpCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DumpConfig{MainConfig: mainCfg, Format: format.JSONFormat}
	opts := []*cli.Opt{
		&cli.Opt{
			Name:        "O",
			Aliases:     []string{"ofmt"},
			Description: "output format: json/j, yaml/y, markup/m (default json)",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(), "(format)"),
		},
	}
	return cli.NewCommandAt(&cfg.Dump, "dump").
		WithAliases("d").
		WithSynopsis("dump [-O format] [files]").
		WithDescription(dumpDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return dump(cfg, cc, args)
		})
}

const dumpDescription = `dump prints the node tree of documents.

Nodes are written as objects with a kind (Tag, SoloTag, Comment, Doctype
or Text), a name for tags, a text for the other kinds, params as a list of
{key, value} objects and children. The JSON form is the one JSON patches
given to 'mlfmt patch' apply to.`

func MatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &MatchConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Command, "match").
		WithAliases("m").
		WithSynopsis("match [-l] -e <expr> [files]").
		WithDescription(matchDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return match(cfg, cc, args)
		})
}

const matchDescription = `match prints the nodes for which an expression is true.

Expressions are expr-lang expressions evaluated once per node with

  kind      node kind: Tag, SoloTag, Comment, Doctype or Text
  name      tag name
  text      text of the node and its descendants
  depth     nesting depth, 0 at the top level
  path      node path such as $/html[0]/body[1]
  children  number of children
  attrs     attribute map
  attr(k)   attribute value
  has(k)    whether attribute k is present

for example: mlfmt match -e 'name == "a" && !has("href")' index.html`

func PatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PatchConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Patch, "patch").
		WithAliases("p").
		WithSynopsis("patch [-w] (-p <patchfile> | <patch>) [files]").
		WithDescription("apply an RFC 6902 JSON patch to the node tree of documents, see 'mlfmt dump -h'").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return patch(cfg, cc, args)
		})
}
