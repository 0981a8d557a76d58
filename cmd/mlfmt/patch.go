package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/signadot/mlfmt"

	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		return err
	}
	var p []byte
	if cfg.File != "" {
		p, err = readPatchFile(cfg.File)
		if err != nil {
			return err
		}
	} else {
		if len(args) == 0 {
			return fmt.Errorf("%w: patch requires -p <patchfile> or a patch argument", cli.ErrUsage)
		}
		p = []byte(args[0])
		args = args[1:]
	}
	if cfg.Write && len(args) == 0 {
		return fmt.Errorf("%w: -w requires files", cli.ErrUsage)
	}
	n := max(1, len(args))
	i := 0
	return eachInput(cc, args, func(name string, d []byte) error {
		if cfg.Write {
			out, err := mlfmt.Patch(d, p, cfg.options(nil)...)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			return writeFile(name, out)
		}
		out, err := mlfmt.Patch(d, p, cfg.options(cc.Out)...)
		if err != nil {
			return fmt.Errorf("%s: %w", displayName(name), err)
		}
		if _, err := cc.Out.Write(out); err != nil {
			return err
		}
		i++
		return separate(cc.Out, i-1, n)
	})
}

// readPatchFile reads a JSON patch. Files named *.yaml or *.yml hold the
// patch in YAML.
func readPatchFile(file string) ([]byte, error) {
	d, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("could not read patch %q: %w", file, err)
	}
	switch filepath.Ext(file) {
	case ".yaml", ".yml":
		j, err := yaml.YAMLToJSON(d)
		if err != nil {
			return nil, fmt.Errorf("patch %q: %w", file, err)
		}
		return j, nil
	}
	return d, nil
}
