package mlfmt

import (
	"github.com/signadot/mlfmt/eval"
	"github.com/signadot/mlfmt/parse"
)

// Match parses src and returns the nodes for which the expression code
// holds, in document order.
func Match(src []byte, code string, opts ...Option) ([]eval.Match, error) {
	q, err := eval.Compile(code)
	if err != nil {
		return nil, err
	}
	c := NewConfig(opts...)
	nodes, err := parse.Parse(src, c.ParseOpts()...)
	if err != nil {
		return nil, err
	}
	return q.Select(nodes)
}
