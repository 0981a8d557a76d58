// Package ir provides the node tree of parsed markup documents.
//
// # Node Kinds
//
// A document is a forest: an ordered []Node. Each kind has its own type,
// carrying only the fields that kind needs:
//
//   - *Tag: a paired <name>...</name> tag with Params and Children
//   - *SoloTag: a self closing <name/> tag, never with children
//   - *Comment: a <!--...--> comment
//   - *Doctype: a <!doctype ...> declaration
//   - *Text: character data
//
// Tag attributes are a Parameters list of *Parameter, each pairing an
// *Identifier key with a *QuotedString value. Values are stored without
// their quotes.
//
// # Invariants
//
// Tag names are stored lowercase. Empty parameter lists and empty child
// lists are nil, never empty slices. A node is owned by exactly one
// parent; use Clone to copy subtrees between forests.
//
// # Serialization
//
// ToWire and FromWire convert a forest to and from a plain structure
// suitable for JSON and YAML; ToJSON and FromJSON wrap them.
package ir
