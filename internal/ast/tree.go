package ast

import "fwlint/internal/source"

// Tree is an immutable parsed file: the source it was built from and its root.
type Tree struct {
	File *source.File
	Root *Program
}

// Source returns the file content the tree was built from.
func (t *Tree) Source() string {
	if t == nil || t.File == nil {
		return ""
	}
	return string(t.File.Content)
}
