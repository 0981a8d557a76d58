package eval

import (
	"errors"
	"fmt"

	"github.com/signadot/mlfmt/debug"
	"github.com/signadot/mlfmt/ir"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

var ErrQuery = errors.New("query error")

// Query is a compiled boolean node expression.
type Query struct {
	src     string
	program *vm.Program
}

func Compile(code string) (*Query, error) {
	program, err := expr.Compile(code, expr.Env(sampleEnv()), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("%w: compiling %q: %w", ErrQuery, code, err)
	}
	return &Query{src: code, program: program}, nil
}

func (q *Query) String() string {
	return q.src
}

// Matches evaluates q on n located at p.
func (q *Query) Matches(n ir.Node, p ir.Path) (bool, error) {
	res, err := vm.Run(q.program, NodeEnv(n, p))
	if err != nil {
		return false, fmt.Errorf("%w: evaluating %q at %s: %w", ErrQuery, q.src, p, err)
	}
	b, ok := res.(bool)
	if !ok {
		return false, fmt.Errorf("%w: %q gave %T, not bool", ErrQuery, q.src, res)
	}
	if debug.Match() {
		debug.Logf("match %q at %s: %t\n", q.src, p, b)
	}
	return b, nil
}

// Match is a selected node and its location.
type Match struct {
	Node ir.Node
	Path ir.Path
}

// Select returns the nodes of the forest matching q in document order.
func (q *Query) Select(nodes []ir.Node) ([]Match, error) {
	var res []Match
	err := ir.Walk(nodes, func(n ir.Node, p ir.Path) error {
		ok, err := q.Matches(n, p)
		if err != nil {
			return err
		}
		if ok {
			res = append(res, Match{Node: n, Path: p})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
