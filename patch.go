package mlfmt

import (
	"errors"
	"fmt"

	"github.com/signadot/mlfmt/debug"
	"github.com/signadot/mlfmt/ir"
	"github.com/signadot/mlfmt/parse"

	jsonpatch "github.com/evanphx/json-patch"
)

var ErrPatch = errors.New("patch error")

// PatchNodes applies an RFC 6902 JSON patch to the JSON form of nodes,
// as produced by ir.ToJSON.
func PatchNodes(nodes []ir.Node, patch []byte) ([]ir.Node, error) {
	ops, err := jsonpatch.DecodePatch(patch)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPatch, err)
	}
	d, err := ir.ToJSON(nodes)
	if err != nil {
		return nil, err
	}
	if debug.Patch() {
		debug.Logf("patching %s\nwith ", d)
		debug.LogAny(ops)
	}
	out, err := ops.Apply(d)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPatch, err)
	}
	if debug.Patch() {
		debug.Logf("patched %s\n", out)
	}
	res, err := ir.FromJSON(out)
	if err != nil {
		return nil, fmt.Errorf("%w: patched tree: %w", ErrPatch, err)
	}
	return res, nil
}

// Patch parses src, patches its tree and renders the result.
func Patch(src, patch []byte, opts ...Option) ([]byte, error) {
	c := NewConfig(opts...)
	nodes, err := parse.Parse(src, c.ParseOpts()...)
	if err != nil {
		return nil, err
	}
	nodes, err = PatchNodes(nodes, patch)
	if err != nil {
		return nil, err
	}
	return render(nodes, c)
}
