package rules

import (
	"strings"

	"fwlint/internal/ast"
	"fwlint/internal/diag"
)

const externalScriptMsg = "You might be trying to import external scripts. This is not allowed for security reasons. " +
	"NOTE: This case may be a false negative, ignore if so."

func checkExternalScript(src string, root *ast.Program) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, lit := range ast.Descendants[*ast.StringLit](root) {
		text := lit.Text()
		if !strings.Contains(text, ".js") {
			continue
		}
		out = append(out, report("external-script", diag.SevWarning, diag.RuleExternalScript, src, lit,
			externalScriptMsg, text))
	}
	return out
}
