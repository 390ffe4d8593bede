package testkit

import (
	"strings"
	"testing"

	"fwlint/internal/ast"
	"fwlint/internal/source"
)

func TestCheckTreeInvariants(t *testing.T) {
	fs := source.NewFileSet()
	src := `f("a")`
	id := fs.AddVirtual("a.js", []byte(src))
	file := fs.Get(id)
	b := ast.NewBuilder(file)

	sp := func(start, end uint32) source.Span { return source.Span{File: id, Start: start, End: end} }
	callee := b.Ident(sp(0, 1), "f")
	arg := b.StringLit(sp(2, 5), "a")
	call := b.Call(sp(0, 6), callee, []ast.Node{arg})
	stmt := b.ExprStmt(sp(0, 6), call)

	good := b.Program(sp(0, 6), []ast.Node{stmt})
	if err := CheckTreeInvariants(&ast.Tree{File: file, Root: good}); err != nil {
		t.Fatalf("valid tree rejected: %v", err)
	}

	short := b.Program(sp(0, 3), nil)
	if err := CheckTreeInvariants(&ast.Tree{File: file, Root: short}); err == nil || !strings.Contains(err.Error(), "does not cover") {
		t.Errorf("short program accepted: %v", err)
	}

	bad := b.StringLit(sp(2, 60), "a")
	broken := b.Program(sp(0, 6), []ast.Node{b.ExprStmt(sp(0, 6), bad)})
	if err := CheckTreeInvariants(&ast.Tree{File: file, Root: broken}); err == nil || !strings.Contains(err.Error(), "outside content") {
		t.Errorf("out of range span accepted: %v", err)
	}

	if err := CheckTreeInvariants(nil); err == nil {
		t.Errorf("nil tree accepted")
	}
}

func TestCheckDocumentOrder(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.js", []byte(`f("a")`))
	file := fs.Get(id)
	b := ast.NewBuilder(file)
	sp := func(start, end uint32) source.Span { return source.Span{File: id, Start: start, End: end} }

	call := b.Call(sp(0, 6), b.Ident(sp(0, 1), "f"), []ast.Node{b.StringLit(sp(2, 5), "a")})
	ordered := b.Program(sp(0, 6), []ast.Node{b.ExprStmt(sp(0, 6), call)})
	if err := CheckDocumentOrder(&ast.Tree{File: file, Root: ordered}); err != nil {
		t.Fatalf("ordered tree rejected: %v", err)
	}

	// выражение начинается раньше своего оператора, как у if без позиции
	early := b.Ident(sp(0, 1), "f")
	unordered := b.Program(sp(0, 6), []ast.Node{b.ExprStmt(sp(2, 6), early)})
	tree := &ast.Tree{File: file, Root: unordered}
	if err := CheckTreeInvariants(tree); err != nil {
		t.Fatalf("structure is fine: %v", err)
	}
	if err := CheckDocumentOrder(tree); err == nil || !strings.Contains(err.Error(), "comes after") {
		t.Errorf("out of order tree accepted: %v", err)
	}
}
