// Package testkit holds checks shared by tests of several packages.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"fwlint/internal/ast"
)

// CheckTreeInvariants runs the structural invariants every parsed tree must
// satisfy, whatever the input:
// 1) the root Program spans the whole file
// 2) every node span points into the tree's file and lies within its content
// 3) parent links and sibling indexes agree with Children
func CheckTreeInvariants(tree *ast.Tree) error {
	if tree == nil || tree.Root == nil || tree.File == nil {
		return fmt.Errorf("incomplete tree")
	}
	size, err := safecast.Conv[uint32](len(tree.File.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	// 1) корень покрывает весь файл
	root := tree.Root.Span()
	if root.Start != 0 || root.End != size {
		return fmt.Errorf("program span %v does not cover file of %d bytes", root, size)
	}

	var firstErr error
	ast.Inspect(tree.Root, func(n ast.Node) bool {
		if firstErr != nil {
			return false
		}
		sp := n.Span()
		// 2) границы
		if sp.File != tree.File.ID {
			firstErr = fmt.Errorf("%s span file mismatch: got=%d want=%d", n.Kind(), sp.File, tree.File.ID)
			return false
		}
		if sp.Start > sp.End || !root.Contains(sp) {
			firstErr = fmt.Errorf("%s span %v outside content of %d bytes", n.Kind(), sp, size)
			return false
		}
		// 3) связи
		for i, kid := range n.Children() {
			if kid.Parent() != n {
				firstErr = fmt.Errorf("%s child %d (%s) has wrong parent", n.Kind(), i, kid.Kind())
				return false
			}
			if got := len(ast.NextSiblings(kid)); got != len(n.Children())-i-1 {
				firstErr = fmt.Errorf("%s child %d (%s) has %d next siblings", n.Kind(), i, kid.Kind(), got)
				return false
			}
		}
		return true
	})
	return firstErr
}

// CheckDocumentOrder reports the first node that starts before the node
// visited just ahead of it by ast.Inspect. It holds for every tree parsed
// without syntax errors; recovered trees may break it.
func CheckDocumentOrder(tree *ast.Tree) error {
	if tree == nil || tree.Root == nil {
		return fmt.Errorf("incomplete tree")
	}
	var (
		firstErr error
		prev     ast.Node
	)
	ast.Inspect(tree.Root, func(n ast.Node) bool {
		if firstErr != nil {
			return false
		}
		if prev != nil && n.Span().Start < prev.Span().Start {
			firstErr = fmt.Errorf("%s at %d comes after %s at %d", n.Kind(), n.Span().Start, prev.Kind(), prev.Span().Start)
			return false
		}
		prev = n
		return true
	})
	return firstErr
}
