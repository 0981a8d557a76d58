// Package libdiff compares documents, as text line by line and as trees.
//
// Line diffs are computed with diffmatchpatch in line mode. Trees are
// compared through their JSON form, ignoring whitespace only text.
package libdiff
