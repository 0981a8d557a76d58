// Package parse parses markup text into IR nodes.
//
// # Usage
//
//	// Parse a document
//	nodes, err := parse.Parse([]byte(`<p class="x">hello</p>`))
//	if err != nil {
//	    return err
//	}
//
//	// Parse from string, recording node positions
//	pos := map[ir.Node]token.Pos{}
//	nodes, err := parse.ParseString(src, parse.ParsePositions(pos))
//
// All errors wrap ErrParse and carry a position, see ErrorPos.
//
// # Related Packages
//
//   - github.com/signadot/mlfmt/ir - IR representation
//   - github.com/signadot/mlfmt/encode - Encode IR to text
//   - github.com/signadot/mlfmt/token - Tokenization
package parse
