package ast

// Program is the root of a parsed file.
type Program struct {
	nodeBase
	Body []Node
}

// Block is a braced statement list, including function bodies.
type Block struct {
	nodeBase
	Stmts []Node
}

// ExprStmt is an expression used as a statement.
type ExprStmt struct {
	nodeBase
	X Node
}

// VarDecl is a var/let/const declaration.
type VarDecl struct {
	nodeBase
	Keyword  string
	Bindings []*Binding
}

// Binding is a single declarator or parameter; Init may be nil.
type Binding struct {
	nodeBase
	Target Node
	Init   Node
}

// FuncLit is a function expression, function declaration or object method.
type FuncLit struct {
	nodeBase
	Name   *Ident // nil for anonymous functions and methods
	Params []Node
	Body   *Block
}

// ArrowFunc is an arrow function; Body is a *Block or an expression.
type ArrowFunc struct {
	nodeBase
	Params []Node
	Body   Node
}

// CallExpr is a call `Callee(Args...)`.
type CallExpr struct {
	nodeBase
	Callee Node
	Args   []Node
}

// MemberExpr is a dotted property access `X.Name`.
type MemberExpr struct {
	nodeBase
	X    Node
	Name *Ident
}

// IndexExpr is a bracketed property access `X[Index]`.
type IndexExpr struct {
	nodeBase
	X     Node
	Index Node
}

// AssignExpr is `Left Op Right` for any assignment operator.
type AssignExpr struct {
	nodeBase
	Op    string
	Left  Node
	Right Node
}

// ObjectLit is an object literal; Props holds *Property and *Spread nodes.
type ObjectLit struct {
	nodeBase
	Props []Node
}

// Property is an object literal member. Key is an *Ident for bare keys, a
// *StringLit for quoted keys and any expression for computed keys. Value is
// nil for shorthand members without an initializer.
type Property struct {
	nodeBase
	Key      Node
	Value    Node
	PropKind PropKind
	Computed bool
}

// Spread is `...X` inside an object, array or call.
type Spread struct {
	nodeBase
	X Node
}

// ArrayLit is an array literal. Size counts holes, Elems does not.
type ArrayLit struct {
	nodeBase
	Elems []Node
	Size  int
}

// StringLit is a quoted string literal; Value is the decoded content.
type StringLit struct {
	nodeBase
	Value string
}

// TemplateLit is a template literal with its interpolated expressions.
type TemplateLit struct {
	nodeBase
	Exprs []Node
}

type NumberLit struct {
	nodeBase
}

type BoolLit struct {
	nodeBase
	Value bool
}

type NullLit struct {
	nodeBase
}

type Ident struct {
	nodeBase
	Name string
}

// Other covers every construct the rules never inspect directly (if, for,
// binary operators, ...). Its children are still walked.
type Other struct {
	nodeBase
	Label string
}

// Bad marks a region the parser could not make sense of.
type Bad struct {
	nodeBase
}

func (*Program) Kind() Kind     { return KindProgram }
func (*Block) Kind() Kind       { return KindBlock }
func (*ExprStmt) Kind() Kind    { return KindExprStmt }
func (*VarDecl) Kind() Kind     { return KindVarDecl }
func (*Binding) Kind() Kind     { return KindBinding }
func (*FuncLit) Kind() Kind     { return KindFunc }
func (*ArrowFunc) Kind() Kind   { return KindArrow }
func (*CallExpr) Kind() Kind    { return KindCall }
func (*MemberExpr) Kind() Kind  { return KindMember }
func (*IndexExpr) Kind() Kind   { return KindIndex }
func (*AssignExpr) Kind() Kind  { return KindAssign }
func (*ObjectLit) Kind() Kind   { return KindObject }
func (*Property) Kind() Kind    { return KindProperty }
func (*Spread) Kind() Kind      { return KindSpread }
func (*ArrayLit) Kind() Kind    { return KindArray }
func (*StringLit) Kind() Kind   { return KindString }
func (*TemplateLit) Kind() Kind { return KindTemplate }
func (*NumberLit) Kind() Kind   { return KindNumber }
func (*BoolLit) Kind() Kind     { return KindBool }
func (*NullLit) Kind() Kind     { return KindNull }
func (*Ident) Kind() Kind       { return KindIdent }
func (*Other) Kind() Kind       { return KindOther }
func (*Bad) Kind() Kind         { return KindBad }

// Properties returns the keyed members of an object literal, skipping spreads.
func (o *ObjectLit) Properties() []*Property {
	return ChildrenOf[*Property](o)
}

// Lookup returns the first direct property whose normalised key equals key.
func (o *ObjectLit) Lookup(key string, normalize func(string) string) *Property {
	for _, p := range o.Properties() {
		if normalize(p.KeyText()) == key {
			return p
		}
	}
	return nil
}

// KeyText returns the raw key text; computed keys yield "".
func (p *Property) KeyText() string {
	if p.Computed || p.Key == nil {
		return ""
	}
	return p.Key.Text()
}
