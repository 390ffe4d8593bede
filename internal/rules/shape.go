package rules

import (
	"fortio.org/safecast"

	"fwlint/internal/ast"
	"fwlint/internal/diag"
	"fwlint/internal/source"
)

// keyOf returns the normalised key of p; computed keys and spreads yield "".
func keyOf(p *ast.Property) string {
	return NormalizeKey(p.KeyText())
}

func lookup(obj *ast.ObjectLit, key string) *ast.Property {
	if obj == nil {
		return nil
	}
	return obj.Lookup(key, NormalizeKey)
}

// objectValue returns the object literal p holds, or nil for any other value.
func objectValue(p *ast.Property) *ast.ObjectLit {
	if p == nil {
		return nil
	}
	obj, _ := p.Value.(*ast.ObjectLit)
	return obj
}

func arrayValue(p *ast.Property) *ast.ArrayLit {
	if p == nil {
		return nil
	}
	arr, _ := p.Value.(*ast.ArrayLit)
	return arr
}

// keySet collects the normalised keys of the direct properties of obj.
func keySet(obj *ast.ObjectLit) map[string]struct{} {
	props := obj.Properties()
	set := make(map[string]struct{}, len(props))
	for _, p := range props {
		if k := keyOf(p); k != "" {
			set[k] = struct{}{}
		}
	}
	return set
}

// configEntry is a `config: { ... }` property found anywhere in the file.
type configEntry struct {
	prop *ast.Property
	obj  *ast.ObjectLit
}

// configObjects finds every property keyed config whose value is an object
// literal, in document order. Configs built from variables are not
// inspected.
func configObjects(root *ast.Program) []configEntry {
	var out []configEntry
	for _, p := range ast.Descendants[*ast.Property](root) {
		if keyOf(p) != "config" {
			continue
		}
		if obj := objectValue(p); obj != nil {
			out = append(out, configEntry{prop: p, obj: obj})
		}
	}
	return out
}

// settingsOf resolves config.settings when it is an object literal.
func settingsOf(cfg configEntry) *ast.ObjectLit {
	return objectValue(lookup(cfg.obj, "settings"))
}

// report builds a diagnostic positioned at n.
func report(rule string, sev diag.Severity, code diag.Code, src string, n ast.Node, msg, content string) diag.Diagnostic {
	return diag.New(sev, code, n.Span(), msg).
		WithRule(rule).
		WithContent(content).
		At(src)
}

// noteAt attaches a pointer to a related node.
func noteAt(d diag.Diagnostic, src string, n ast.Node, msg string) diag.Diagnostic {
	start, err := safecast.Conv[int](n.Span().Start)
	if err != nil {
		start = len(src)
	}
	return d.WithNote(n.Span(), source.LineOf(src, start), msg)
}
