package ast

import "fwlint/internal/source"

// Node is implemented by every tree node. The set of implementations is
// closed; consumers switch on the concrete type.
type Node interface {
	Kind() Kind
	Span() source.Span
	// Start is the byte offset of the first character of the node.
	Start() uint32
	Parent() Node
	// Children returns the direct children in document order.
	Children() []Node
	// Text returns the raw source text of the node.
	Text() string

	base() *nodeBase
}

type nodeBase struct {
	tree   *Tree
	span   source.Span
	parent Node
	index  int // позиция среди детей родителя
	kids   []Node
}

func (n *nodeBase) Span() source.Span { return n.span }
func (n *nodeBase) Start() uint32     { return n.span.Start }
func (n *nodeBase) Parent() Node      { return n.parent }
func (n *nodeBase) Children() []Node  { return n.kids }
func (n *nodeBase) base() *nodeBase   { return n }

func (n *nodeBase) Text() string {
	if n.tree == nil || n.tree.File == nil {
		return ""
	}
	return n.tree.File.Text(n.span)
}
