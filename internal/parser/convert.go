package parser

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"fortio.org/safecast"
	gojaast "github.com/dop251/goja/ast"
	"github.com/dop251/goja/file"
	"github.com/dop251/goja/token"

	"fwlint/internal/ast"
	"fwlint/internal/source"
)

type gojaProgram = gojaast.Program

// converter lowers a goja syntax tree into ast nodes. Shapes the rules care
// about get typed nodes, everything else becomes an Other node whose children
// are discovered by reflection so nested literals are never lost.
type converter struct {
	b    *ast.Builder
	file *source.File
	size uint32
}

var gojaNodeType = reflect.TypeFor[gojaast.Node]()

func (c *converter) offset(idx file.Idx) uint32 {
	off := int(idx) - 1 // nil FileSet: база 1
	if off <= 0 {
		return 0
	}
	v, err := safecast.Conv[uint32](off)
	if err != nil || v > c.size {
		return c.size
	}
	return v
}

func (c *converter) span(from, to file.Idx) source.Span {
	return source.Span{File: c.file.ID, Start: c.offset(from), End: c.offset(to)}.Clamp(c.size)
}

// nodeSpan is guarded: goja computes Idx0/Idx1 of some partial nodes by
// indexing into empty lists.
func (c *converter) nodeSpan(n gojaast.Node) (sp source.Span) {
	defer func() {
		if recover() != nil {
			sp = source.Span{File: c.file.ID}
		}
	}()
	return c.span(n.Idx0(), n.Idx1())
}

// rawStart reports the goja start index of n; zero means goja never set it.
func rawStart(n gojaast.Node) (idx file.Idx) {
	defer func() {
		if recover() != nil {
			idx = 0
		}
	}()
	return n.Idx0()
}

// cover stretches sp over kids. kids are sorted by start. unset drops the
// start goja gave us, it is not a real position.
func cover(sp source.Span, unset bool, kids []ast.Node) source.Span {
	if len(kids) == 0 {
		return sp
	}
	first := kids[0].Span().Start
	if unset || sp.Start > first {
		sp.Start = first
	}
	for _, k := range kids {
		if e := k.Span().End; e > sp.End {
			sp.End = e
		}
	}
	return sp
}

// lead lowers sp.Start to the start of the leftmost child, whose own span may
// have been widened by cover.
func lead(sp source.Span, first ast.Node) source.Span {
	if first != nil && first.Span().Start < sp.Start {
		sp.Start = first.Span().Start
	}
	return sp
}

func (c *converter) program(p *gojaProgram) *ast.Program {
	whole := source.Span{File: c.file.ID, Start: 0, End: c.size}
	if p == nil {
		return c.b.Program(whole, nil)
	}
	return c.b.Program(whole, c.stmts(p.Body))
}

func (c *converter) stmts(list []gojaast.Statement) []ast.Node {
	out := make([]ast.Node, 0, len(list))
	for _, s := range list {
		if s == nil {
			continue
		}
		out = append(out, c.node(s))
	}
	return out
}

func (c *converter) exprs(list []gojaast.Expression) []ast.Node {
	out := make([]ast.Node, 0, len(list))
	for _, e := range list {
		if e == nil {
			continue
		}
		out = append(out, c.node(e))
	}
	return out
}

func (c *converter) block(bl *gojaast.BlockStatement) *ast.Block {
	if bl == nil {
		return nil
	}
	return c.b.Block(c.nodeSpan(bl), c.stmts(bl.List))
}

func (c *converter) ident(id *gojaast.Identifier) *ast.Ident {
	if id == nil {
		return nil
	}
	return c.b.Ident(c.nodeSpan(id), id.Name.String())
}

func (c *converter) bindings(list []*gojaast.Binding) []*ast.Binding {
	out := make([]*ast.Binding, 0, len(list))
	for _, bd := range list {
		if bd == nil {
			continue
		}
		out = append(out, c.binding(bd))
	}
	return out
}

func (c *converter) binding(bd *gojaast.Binding) *ast.Binding {
	var target ast.Node
	if bd.Target != nil {
		target = c.node(bd.Target)
	}
	var init ast.Node
	if bd.Initializer != nil {
		init = c.node(bd.Initializer)
	}
	return c.b.Binding(lead(c.nodeSpan(bd), target), target, init)
}

func (c *converter) params(pl *gojaast.ParameterList) []ast.Node {
	if pl == nil {
		return nil
	}
	out := make([]ast.Node, 0, len(pl.List)+1)
	for _, bd := range c.bindings(pl.List) {
		out = append(out, bd)
	}
	if pl.Rest != nil {
		out = append(out, c.node(pl.Rest))
	}
	return out
}

func (c *converter) function(fn *gojaast.FunctionLiteral) *ast.FuncLit {
	return c.functionAt(c.nodeSpan(fn), fn)
}

func (c *converter) functionAt(sp source.Span, fn *gojaast.FunctionLiteral) *ast.FuncLit {
	return c.b.Func(sp, c.ident(fn.Name), c.params(fn.ParameterList), c.block(fn.Body))
}

func (c *converter) arrow(fn *gojaast.ArrowFunctionLiteral) *ast.ArrowFunc {
	var body ast.Node
	switch bd := fn.Body.(type) {
	case *gojaast.BlockStatement:
		if bl := c.block(bd); bl != nil {
			body = bl
		}
	case *gojaast.ExpressionBody:
		if bd != nil && bd.Expression != nil {
			body = c.node(bd.Expression)
		}
	}
	return c.b.Arrow(c.nodeSpan(fn), c.params(fn.ParameterList), body)
}

func (c *converter) object(obj *gojaast.ObjectLiteral) *ast.ObjectLit {
	props := make([]ast.Node, 0, len(obj.Value))
	for _, p := range obj.Value {
		if p == nil {
			continue
		}
		props = append(props, c.property(p))
	}
	return c.b.Object(c.nodeSpan(obj), props)
}

func (c *converter) property(p gojaast.Property) ast.Node {
	switch p := p.(type) {
	case *gojaast.PropertyKeyed:
		sp := c.nodeSpan(p)
		var key ast.Node
		if p.Key != nil {
			key = c.propertyKey(p.Key, p.Computed)
		}
		var value ast.Node
		if fn, ok := p.Value.(*gojaast.FunctionLiteral); ok && fn != nil && p.Kind != gojaast.PropertyKindValue && key != nil {
			// у методов goja начинает функцию с get/set/async/*, до ключа
			fsp := c.nodeSpan(fn)
			if fsp.Start < sp.Start {
				sp.Start = fsp.Start
			}
			if ks := key.Span().Start; fsp.Start < ks {
				fsp.Start = ks
			}
			value = c.functionAt(fsp, fn)
		} else if p.Value != nil {
			value = c.node(p.Value)
		}
		return c.b.Property(sp, key, value, propKind(p.Kind), p.Computed)
	case *gojaast.PropertyShort:
		key := c.b.Ident(c.nodeSpan(&p.Name), p.Name.Name.String())
		var value ast.Node
		if p.Initializer != nil {
			value = c.node(p.Initializer)
		}
		return c.b.Property(c.nodeSpan(p), key, value, ast.PropShort, false)
	}
	// {...rest}
	if n, ok := p.(gojaast.Node); ok {
		return c.node(n)
	}
	return nil
}

// propertyKey maps identifier keys, which goja stores as string literals, back
// to identifiers. Quoted keys stay strings.
func (c *converter) propertyKey(key gojaast.Expression, computed bool) ast.Node {
	if s, ok := key.(*gojaast.StringLiteral); ok && !computed {
		sp := c.nodeSpan(s)
		if strings.HasPrefix(s.Literal, `"`) || strings.HasPrefix(s.Literal, `'`) {
			return c.b.StringLit(sp, s.Value.String())
		}
		return c.b.Ident(sp, s.Value.String())
	}
	return c.node(key)
}

func propKind(k gojaast.PropertyKind) ast.PropKind {
	switch k {
	case gojaast.PropertyKindMethod:
		return ast.PropMethod
	case gojaast.PropertyKindGet:
		return ast.PropGet
	case gojaast.PropertyKindSet:
		return ast.PropSet
	default:
		return ast.PropValue
	}
}

func assignOp(op token.Token) string {
	if op == token.ASSIGN {
		return "="
	}
	return op.String() + "="
}

func (c *converter) node(n gojaast.Node) ast.Node {
	if n == nil {
		return nil
	}
	if v := reflect.ValueOf(n); v.Kind() == reflect.Pointer && v.IsNil() {
		return nil
	}

	switch x := n.(type) {
	// statements
	case *gojaast.ExpressionStatement:
		expr := c.node(x.Expression)
		return c.b.ExprStmt(lead(c.nodeSpan(x), expr), expr)
	case *gojaast.BlockStatement:
		return c.block(x)
	case *gojaast.VariableStatement:
		return c.b.VarDecl(c.nodeSpan(x), "var", c.bindings(x.List))
	case *gojaast.LexicalDeclaration:
		return c.b.VarDecl(c.nodeSpan(x), x.Token.String(), c.bindings(x.List))
	case *gojaast.FunctionDeclaration:
		if x.Function == nil {
			return c.b.Bad(c.nodeSpan(x))
		}
		return c.function(x.Function)
	case *gojaast.BadStatement:
		return c.b.Bad(c.nodeSpan(x))
	case *gojaast.MethodDefinition:
		return c.classMethod(x)
	case *gojaast.EmptyStatement:
		return nil

	// expressions
	case *gojaast.Binding:
		return c.binding(x)
	case *gojaast.FunctionLiteral:
		return c.function(x)
	case *gojaast.ArrowFunctionLiteral:
		return c.arrow(x)
	case *gojaast.CallExpression:
		callee := c.node(x.Callee)
		return c.b.Call(lead(c.nodeSpan(x), callee), callee, c.exprs(x.ArgumentList))
	case *gojaast.DotExpression:
		left := c.node(x.Left)
		return c.b.Member(lead(c.nodeSpan(x), left), left, c.ident(&x.Identifier))
	case *gojaast.BracketExpression:
		left := c.node(x.Left)
		return c.b.Index(lead(c.nodeSpan(x), left), left, c.node(x.Member))
	case *gojaast.AssignExpression:
		left := c.node(x.Left)
		return c.b.Assign(lead(c.nodeSpan(x), left), assignOp(x.Operator), left, c.node(x.Right))
	case *gojaast.ObjectLiteral:
		return c.object(x)
	case *gojaast.SpreadElement:
		return c.b.Spread(c.nodeSpan(x), c.node(x.Expression))
	case *gojaast.ArrayLiteral:
		return c.b.Array(c.nodeSpan(x), c.exprs(x.Value), len(x.Value))
	case *gojaast.StringLiteral:
		return c.b.StringLit(c.nodeSpan(x), x.Value.String())
	case *gojaast.TemplateLiteral:
		// у tagged template тег стоит до открывающей кавычки
		kids := c.reflectKids(x)
		return c.b.Template(cover(c.nodeSpan(x), rawStart(x) == 0, kids), kids)
	case *gojaast.NumberLiteral:
		return c.b.Number(c.nodeSpan(x))
	case *gojaast.BooleanLiteral:
		return c.b.Bool(c.nodeSpan(x), x.Value)
	case *gojaast.NullLiteral:
		return c.b.Null(c.nodeSpan(x))
	case *gojaast.Identifier:
		return c.ident(x)
	case *gojaast.BadExpression:
		return c.b.Bad(c.nodeSpan(x))
	}
	return c.other(n)
}

// classMethod keeps a class member opaque but starts its function at the key,
// as for object methods.
func (c *converter) classMethod(md *gojaast.MethodDefinition) ast.Node {
	var kids []ast.Node
	var key ast.Node
	if md.Key != nil {
		if key = c.propertyKey(md.Key, md.Computed); key != nil {
			kids = append(kids, key)
		}
	}
	if md.Body != nil {
		fsp := c.nodeSpan(md.Body)
		if key != nil && fsp.Start < key.Span().Start {
			fsp.Start = key.Span().Start
		}
		kids = append(kids, c.functionAt(fsp, md.Body))
	}
	return c.b.Other(cover(c.nodeSpan(md), rawStart(md) == 0, kids), "MethodDefinition", kids...)
}

// other keeps n as an opaque node. goja leaves some start indexes unset
// (IfStatement.If) or past the first operand (postfix ++), so the span is
// stretched over the children.
func (c *converter) other(n gojaast.Node) ast.Node {
	label := strings.TrimPrefix(fmt.Sprintf("%T", n), "*ast.")
	kids := c.reflectKids(n)
	sp := c.nodeSpan(n)
	unset := rawStart(n) == 0
	if st, ok := n.(*gojaast.IfStatement); ok && unset && st.Test != nil {
		if start, found := c.ifKeyword(rawStart(st.Test)); found {
			sp.Start, unset = start, false
		}
	}
	return c.b.Other(cover(sp, unset, kids), label, kids...)
}

// ifKeyword walks back from the condition over "(" and whitespace to the if
// keyword. Comments in between are not skipped.
func (c *converter) ifKeyword(test file.Idx) (uint32, bool) {
	if test == 0 {
		return 0, false
	}
	text := c.file.Content
	i := min(int(c.offset(test)), len(text))
	paren := false
	for i > 0 {
		ch := text[i-1]
		if ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' {
			i--
			continue
		}
		if ch == '(' && !paren {
			paren = true
			i--
			continue
		}
		break
	}
	if !paren || i < 2 || string(text[i-2:i]) != "if" {
		return 0, false
	}
	// "elif" и подобное не ключевое слово
	if i > 2 && isIdentByte(text[i-3]) {
		return 0, false
	}
	v, err := safecast.Conv[uint32](i - 2)
	if err != nil {
		return 0, false
	}
	return v, true
}

func isIdentByte(b byte) bool {
	return b == '_' || b == '$' || b >= 0x80 ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// reflectKids converts every goja node reachable through exported fields of n
// without descending into those nodes; they convert their own children.
func (c *converter) reflectKids(n gojaast.Node) []ast.Node {
	var kids []ast.Node
	c.collect(reflect.ValueOf(n), &kids, true)
	slices.SortStableFunc(kids, func(a, b ast.Node) int {
		return cmp.Compare(a.Span().Start, b.Span().Start)
	})
	return kids
}

func (c *converter) collect(v reflect.Value, out *[]ast.Node, top bool) {
	switch v.Kind() {
	case reflect.Interface, reflect.Pointer:
		if v.IsNil() {
			return
		}
		if !top && v.Type().Implements(gojaNodeType) {
			if k := c.node(v.Interface().(gojaast.Node)); k != nil {
				*out = append(*out, k)
			}
			return
		}
		c.collect(v.Elem(), out, top)
	case reflect.Struct:
		if !top && v.CanAddr() && v.Addr().Type().Implements(gojaNodeType) {
			if k := c.node(v.Addr().Interface().(gojaast.Node)); k != nil {
				*out = append(*out, k)
			}
			return
		}
		t := v.Type()
		for i := range v.NumField() {
			f := t.Field(i)
			// DeclarationList дублирует уже обойдённые объявления
			if !f.IsExported() || f.Name == "DeclarationList" {
				continue
			}
			c.collect(v.Field(i), out, false)
		}
	case reflect.Slice, reflect.Array:
		for i := range v.Len() {
			c.collect(v.Index(i), out, false)
		}
	}
}
