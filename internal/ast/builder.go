package ast

import "fwlint/internal/source"

// Builder constructs nodes for a single tree and wires parent links.
// Children must be passed in document order.
type Builder struct {
	tree  *Tree
	count int
}

func NewBuilder(file *source.File) *Builder {
	return &Builder{tree: &Tree{File: file}}
}

// Finish installs root and returns the completed tree. The builder must not be
// used afterwards.
func (b *Builder) Finish(root *Program) *Tree {
	b.tree.Root = root
	t := b.tree
	b.tree = nil
	return t
}

// Count returns how many nodes were built.
func (b *Builder) Count() int { return b.count }

func (b *Builder) init(n Node, sp source.Span, kids ...Node) {
	nb := n.base()
	nb.tree = b.tree
	nb.span = sp
	nb.kids = make([]Node, 0, len(kids))
	for _, k := range kids {
		if k == nil {
			continue
		}
		kb := k.base()
		kb.parent = n
		kb.index = len(nb.kids)
		nb.kids = append(nb.kids, k)
	}
	b.count++
}

func optIdent(id *Ident) Node {
	if id == nil {
		return nil
	}
	return id
}

func optBlock(bl *Block) Node {
	if bl == nil {
		return nil
	}
	return bl
}

func compact(nodes []Node) []Node {
	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

func (b *Builder) Program(sp source.Span, body []Node) *Program {
	n := &Program{Body: compact(body)}
	b.init(n, sp, n.Body...)
	return n
}

func (b *Builder) Block(sp source.Span, stmts []Node) *Block {
	n := &Block{Stmts: compact(stmts)}
	b.init(n, sp, n.Stmts...)
	return n
}

func (b *Builder) ExprStmt(sp source.Span, x Node) *ExprStmt {
	n := &ExprStmt{X: x}
	b.init(n, sp, x)
	return n
}

func (b *Builder) VarDecl(sp source.Span, keyword string, bindings []*Binding) *VarDecl {
	n := &VarDecl{Keyword: keyword}
	kids := make([]Node, 0, len(bindings))
	for _, bd := range bindings {
		if bd != nil {
			n.Bindings = append(n.Bindings, bd)
			kids = append(kids, bd)
		}
	}
	b.init(n, sp, kids...)
	return n
}

func (b *Builder) Binding(sp source.Span, target, init Node) *Binding {
	n := &Binding{Target: target, Init: init}
	b.init(n, sp, target, init)
	return n
}

func (b *Builder) Func(sp source.Span, name *Ident, params []Node, body *Block) *FuncLit {
	n := &FuncLit{Name: name, Params: compact(params), Body: body}
	kids := append([]Node{optIdent(name)}, n.Params...)
	kids = append(kids, optBlock(body))
	b.init(n, sp, kids...)
	return n
}

func (b *Builder) Arrow(sp source.Span, params []Node, body Node) *ArrowFunc {
	n := &ArrowFunc{Params: compact(params), Body: body}
	b.init(n, sp, append(append([]Node{}, n.Params...), body)...)
	return n
}

func (b *Builder) Call(sp source.Span, callee Node, args []Node) *CallExpr {
	n := &CallExpr{Callee: callee, Args: compact(args)}
	b.init(n, sp, append([]Node{callee}, n.Args...)...)
	return n
}

func (b *Builder) Member(sp source.Span, x Node, name *Ident) *MemberExpr {
	n := &MemberExpr{X: x, Name: name}
	b.init(n, sp, x, optIdent(name))
	return n
}

func (b *Builder) Index(sp source.Span, x, index Node) *IndexExpr {
	n := &IndexExpr{X: x, Index: index}
	b.init(n, sp, x, index)
	return n
}

func (b *Builder) Assign(sp source.Span, op string, left, right Node) *AssignExpr {
	n := &AssignExpr{Op: op, Left: left, Right: right}
	b.init(n, sp, left, right)
	return n
}

func (b *Builder) Object(sp source.Span, props []Node) *ObjectLit {
	n := &ObjectLit{Props: compact(props)}
	b.init(n, sp, n.Props...)
	return n
}

func (b *Builder) Property(sp source.Span, key, value Node, kind PropKind, computed bool) *Property {
	n := &Property{Key: key, Value: value, PropKind: kind, Computed: computed}
	b.init(n, sp, key, value)
	return n
}

func (b *Builder) Spread(sp source.Span, x Node) *Spread {
	n := &Spread{X: x}
	b.init(n, sp, x)
	return n
}

// Array builds an array literal; size includes elided elements.
func (b *Builder) Array(sp source.Span, elems []Node, size int) *ArrayLit {
	n := &ArrayLit{Elems: compact(elems), Size: size}
	b.init(n, sp, n.Elems...)
	return n
}

func (b *Builder) StringLit(sp source.Span, value string) *StringLit {
	n := &StringLit{Value: value}
	b.init(n, sp)
	return n
}

func (b *Builder) Template(sp source.Span, exprs []Node) *TemplateLit {
	n := &TemplateLit{Exprs: compact(exprs)}
	b.init(n, sp, n.Exprs...)
	return n
}

func (b *Builder) Number(sp source.Span) *NumberLit {
	n := &NumberLit{}
	b.init(n, sp)
	return n
}

func (b *Builder) Bool(sp source.Span, value bool) *BoolLit {
	n := &BoolLit{Value: value}
	b.init(n, sp)
	return n
}

func (b *Builder) Null(sp source.Span) *NullLit {
	n := &NullLit{}
	b.init(n, sp)
	return n
}

func (b *Builder) Ident(sp source.Span, name string) *Ident {
	n := &Ident{Name: name}
	b.init(n, sp)
	return n
}

func (b *Builder) Other(sp source.Span, label string, kids ...Node) *Other {
	n := &Other{Label: label}
	b.init(n, sp, kids...)
	return n
}

func (b *Builder) Bad(sp source.Span) *Bad {
	n := &Bad{}
	b.init(n, sp)
	return n
}
