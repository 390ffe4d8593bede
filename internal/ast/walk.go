package ast

// Inspect walks the subtree rooted at n in pre-order (document order). If f
// returns false the children of that node are skipped.
func Inspect(n Node, f func(Node) bool) {
	if n == nil {
		return
	}
	if !f(n) {
		return
	}
	for _, k := range n.Children() {
		Inspect(k, f)
	}
}

// Descendants returns every node of type T below root (root excluded), in
// document order.
func Descendants[T Node](root Node) []T {
	var out []T
	if root == nil {
		return out
	}
	for _, k := range root.Children() {
		Inspect(k, func(n Node) bool {
			if t, ok := n.(T); ok {
				out = append(out, t)
			}
			return true
		})
	}
	return out
}

// ChildrenOf returns the direct children of n that have type T.
func ChildrenOf[T Node](n Node) []T {
	var out []T
	if n == nil {
		return out
	}
	for _, k := range n.Children() {
		if t, ok := k.(T); ok {
			out = append(out, t)
		}
	}
	return out
}

// ChildAt returns the i-th direct child of n or nil.
func ChildAt(n Node, i int) Node {
	if n == nil {
		return nil
	}
	kids := n.Children()
	if i < 0 || i >= len(kids) {
		return nil
	}
	return kids[i]
}

// NextSiblings returns the siblings that follow n under its parent.
func NextSiblings(n Node) []Node {
	if n == nil || n.Parent() == nil {
		return nil
	}
	kids := n.Parent().Children()
	idx := n.base().index
	if idx+1 >= len(kids) {
		return nil
	}
	return kids[idx+1:]
}

// Ancestor returns the closest enclosing node of type T, or the zero value.
func Ancestor[T Node](n Node) (T, bool) {
	var zero T
	if n == nil {
		return zero, false
	}
	for p := n.Parent(); p != nil; p = p.Parent() {
		if t, ok := p.(T); ok {
			return t, true
		}
	}
	return zero, false
}
