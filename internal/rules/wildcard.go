package rules

import (
	"strings"

	"fwlint/internal/ast"
	"fwlint/internal/diag"
)

func checkWildcardOrigin(src string, root *ast.Program) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, call := range ast.Descendants[*ast.CallExpr](root) {
		text := call.Text()
		if !strings.HasPrefix(text, postMessageCallee) {
			continue
		}
		// без targetOrigin проверять нечего
		if len(call.Args) < 2 {
			continue
		}
		if !strings.Contains(call.Args[1].Text(), "*") {
			continue
		}
		out = append(out, report("no-wildcard-origin", diag.SevError, diag.RuleWildcardOrigin, src, call,
			"Domain should not contain wildcard *", text))
	}
	return out
}
