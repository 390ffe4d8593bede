package rules

import (
	"fwlint/internal/ast"
	"fwlint/internal/diag"
)

func checkFrameworkConfig(src string, root *ast.Program) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, member := range ast.Descendants[*ast.MemberExpr](root) {
		if member.Text() != frameworkMember {
			continue
		}
		assign, ok := member.Parent().(*ast.AssignExpr)
		if !ok || assign.Op != "=" || assign.Left != ast.Node(member) {
			continue
		}
		obj, ok := assign.Right.(*ast.ObjectLit)
		if !ok {
			continue // присвоение переменной
		}
		if lookup(obj, "config") != nil {
			continue
		}
		out = append(out, report("framework-config", diag.SevError, diag.RuleMissingConfig, src, obj,
			"Window.Framework should have config", member.Text()))
	}
	return out
}
