// Package encode renders IR nodes as indented markup text.
//
// # Usage
//
//	// Render with the default indent of 4
//	err := encode.Encode(nodes, os.Stdout)
//
//	// Render to a string with an indent of 2
//	s, err := encode.EncodeString(nodes, encode.Indent(2))
//
//	// Render with terminal colors
//	err := encode.Encode(nodes, w, encode.EncodeColors(encode.NewColors()))
//
// Every construct is written on its own line. Closing tags align with
// their opening tags.
//
// # Related Packages
//
//   - github.com/signadot/mlfmt/ir - IR representation
//   - github.com/signadot/mlfmt/parse - Parse text to IR
package encode
