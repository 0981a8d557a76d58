package parse

import (
	"github.com/signadot/mlfmt/ir"
	"github.com/signadot/mlfmt/token"
)

const DefaultMaxDepth = 512

type parseOpts struct {
	maxDepth  int
	positions map[ir.Node]token.Pos
}

type ParseOption func(*parseOpts)

// MaxDepth bounds tag nesting. Values below 1 select DefaultMaxDepth.
func MaxDepth(n int) ParseOption {
	return func(o *parseOpts) { o.maxDepth = n }
}

// ParsePositions records the start position of every content node and
// every tag parameter in m.
func ParsePositions(m map[ir.Node]token.Pos) ParseOption {
	return func(o *parseOpts) { o.positions = m }
}

func newOpts(opts []ParseOption) *parseOpts {
	o := &parseOpts{}
	for _, f := range opts {
		f(o)
	}
	if o.maxDepth < 1 {
		o.maxDepth = DefaultMaxDepth
	}
	return o
}
