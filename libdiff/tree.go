package libdiff

import (
	"fmt"

	"github.com/signadot/mlfmt/ir"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/goccy/go-yaml"
)

// TreeEqual reports whether a and b are structurally equal, ignoring
// whitespace only text nodes.
func TreeEqual(a, b []ir.Node) (bool, error) {
	da, err := ir.ToJSON(ir.StripBlank(a))
	if err != nil {
		return false, err
	}
	db, err := ir.ToJSON(ir.StripBlank(b))
	if err != nil {
		return false, err
	}
	return jsonpatch.Equal(da, db), nil
}

// Tree diffs the YAML dumps of a and b, ignoring whitespace only text
// nodes.
func Tree(a, b []ir.Node) ([]Line, error) {
	ya, err := yaml.Marshal(ir.ToWire(ir.StripBlank(a)))
	if err != nil {
		return nil, fmt.Errorf("dumping tree: %w", err)
	}
	yb, err := yaml.Marshal(ir.ToWire(ir.StripBlank(b)))
	if err != nil {
		return nil, fmt.Errorf("dumping tree: %w", err)
	}
	return Lines(string(ya), string(yb)), nil
}
