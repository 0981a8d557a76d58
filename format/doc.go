// Package format names the output formats a document tree can be
// written in.
//
// # Usage
//
//	f, err := format.ParseFormat("yaml")
//	name := "out" + f.Suffix()
//
// # Related Packages
//
//   - github.com/signadot/mlfmt/encode - Encode IR to markup
//   - github.com/signadot/mlfmt/ir - JSON form of the IR
package format
