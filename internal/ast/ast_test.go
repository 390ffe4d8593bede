package ast

import (
	"bytes"
	"strings"
	"testing"

	"fwlint/internal/source"
)

// buildSample строит дерево для `a.b = { k: [1], "q": true };`
func buildSample(t *testing.T) (*Tree, map[string]Node) {
	t.Helper()
	src := `a.b = { k: [1], "q": true };`
	fs := source.NewFileSet()
	id := fs.AddVirtual("sample.js", []byte(src))
	file := fs.Get(id)
	sp := func(start, end uint32) source.Span { return source.Span{File: id, Start: start, End: end} }

	b := NewBuilder(file)
	a := b.Ident(sp(0, 1), "a")
	name := b.Ident(sp(2, 3), "b")
	member := b.Member(sp(0, 3), a, name)
	k := b.Ident(sp(8, 9), "k")
	one := b.Number(sp(12, 13))
	arr := b.Array(sp(11, 14), []Node{one}, 1)
	propK := b.Property(sp(8, 14), k, arr, PropValue, false)
	q := b.StringLit(sp(16, 19), "q")
	tr := b.Bool(sp(21, 25), true)
	propQ := b.Property(sp(16, 25), q, tr, PropValue, false)
	obj := b.Object(sp(6, 27), []Node{propK, propQ})
	assign := b.Assign(sp(0, 27), "=", member, obj)
	stmt := b.ExprStmt(sp(0, 28), assign)
	root := b.Program(sp(0, 28), []Node{stmt})

	return b.Finish(root), map[string]Node{
		"member": member, "obj": obj, "propK": propK, "propQ": propQ, "arr": arr, "assign": assign, "q": q,
	}
}

func TestParentLinksAndText(t *testing.T) {
	tree, n := buildSample(t)

	if got := n["member"].Text(); got != "a.b" {
		t.Errorf("member text = %q", got)
	}
	if n["obj"].Parent() != n["assign"] {
		t.Error("object parent must be the assignment")
	}
	if tree.Root.Parent() != nil {
		t.Error("root must have no parent")
	}
	if got := n["propK"].(*Property).KeyText(); got != "k" {
		t.Errorf("KeyText = %q", got)
	}
	if got := n["propQ"].(*Property).KeyText(); got != `"q"` {
		t.Errorf("quoted KeyText = %q", got)
	}
	if tree.Source() != `a.b = { k: [1], "q": true };` {
		t.Errorf("unexpected source %q", tree.Source())
	}
}

func TestNavigation(t *testing.T) {
	tree, n := buildSample(t)

	sibs := NextSiblings(n["member"])
	if len(sibs) != 1 || sibs[0] != n["obj"] {
		t.Fatalf("NextSiblings(member) = %v", sibs)
	}
	if NextSiblings(n["obj"]) != nil {
		t.Error("last child has no next siblings")
	}
	if NextSiblings(tree.Root) != nil {
		t.Error("root has no siblings")
	}

	if ChildAt(n["assign"], 1) != n["obj"] {
		t.Error("ChildAt(assign, 1) must be the object")
	}
	if ChildAt(n["assign"], 5) != nil || ChildAt(n["assign"], -1) != nil {
		t.Error("out of range ChildAt must be nil")
	}

	props := ChildrenOf[*Property](n["obj"])
	if len(props) != 2 {
		t.Fatalf("ChildrenOf[*Property] = %d", len(props))
	}

	if got := len(Descendants[*Property](tree.Root)); got != 2 {
		t.Errorf("Descendants[*Property] = %d", got)
	}
	if got := len(Descendants[*StringLit](tree.Root)); got != 1 {
		t.Errorf("Descendants[*StringLit] = %d", got)
	}
	if got := len(Descendants[*Program](tree.Root)); got != 0 {
		t.Errorf("Descendants must exclude the root, got %d", got)
	}

	obj, ok := Ancestor[*ObjectLit](n["q"])
	if !ok || obj != n["obj"] {
		t.Error("Ancestor[*ObjectLit] must find the enclosing object")
	}
	if _, ok := Ancestor[*CallExpr](n["q"]); ok {
		t.Error("no enclosing call expected")
	}
}

func TestDocumentOrder(t *testing.T) {
	tree, _ := buildSample(t)
	var last uint32
	Inspect(tree.Root, func(n Node) bool {
		if n.Start() < last {
			t.Errorf("%s at %d precedes previous start %d", n.Kind(), n.Start(), last)
		}
		last = n.Start()
		return true
	})
}

func TestLookup(t *testing.T) {
	_, n := buildSample(t)
	obj := n["obj"].(*ObjectLit)
	unquote := func(s string) string { return strings.Trim(s, `"'`) }

	if obj.Lookup("q", unquote) != n["propQ"] {
		t.Error("Lookup must match the quoted key after normalisation")
	}
	if obj.Lookup("missing", unquote) != nil {
		t.Error("Lookup of a missing key must be nil")
	}
}

func TestDump(t *testing.T) {
	tree, _ := buildSample(t)
	var buf bytes.Buffer
	if err := Dump(&buf, tree.Root, DumpOptions{ShowText: true}); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Program [0,28)", "Member [0,3)", "Property [8,14) value", `String [16,19) "q"`, "Bool [21,25) true", "Array [11,14) size=1"} {
		if !strings.Contains(out, want) {
			t.Errorf("dump lacks %q:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := Dump(&buf, tree.Root, DumpOptions{MaxDepth: 2}); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if strings.Count(buf.String(), "\n") != 2 {
		t.Errorf("MaxDepth=2 must print two levels, got:\n%s", buf.String())
	}
}
