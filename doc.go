// Package mlfmt normalizes markup documents.
//
// A document is tokenized, parsed into a forest of nodes and rendered
// back with one construct per line:
//
//	out, err := mlfmt.Format(src, mlfmt.Indent(2))
//
// The package also checks documents, verifies that formatting
// preserves their structure, selects nodes with expressions and applies
// JSON patches to the node tree.
//
// # Related Packages
//
//   - github.com/signadot/mlfmt/token - Tokenization
//   - github.com/signadot/mlfmt/parse - Parse text to IR
//   - github.com/signadot/mlfmt/encode - Encode IR to text
//   - github.com/signadot/mlfmt/eval - Node selection
package mlfmt
