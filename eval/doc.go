// Package eval selects nodes of a document with expr-lang expressions.
//
// An expression is evaluated once per node with an environment
// describing that node:
//
//	kind      node kind, e.g. "Tag" or "Text"
//	name      tag name, "" for other kinds
//	text      text of the node and its descendants
//	depth     nesting depth, 0 at the top level
//	path      node path, e.g. "$/html[0]/body[1]"
//	children  number of children
//	attrs     attributes as a map
//	attr(k)   attribute value, "" if absent
//	has(k)    whether the attribute is present
//
// For example
//
//	q, err := eval.Compile(`name == "a" && has("href")`)
//	matches, err := q.Select(nodes)
package eval
