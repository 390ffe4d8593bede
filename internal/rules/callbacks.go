package rules

import (
	"strings"

	"fwlint/internal/ast"
	"fwlint/internal/diag"
)

// callbackRule checks that a callback the settings switch on is implemented.
type callbackRule struct {
	name   string
	method string
	// gate returns the property that enables the callback, or nil.
	gate func(settings *ast.ObjectLit) *ast.Property
	// bodies with at most this many statements count as empty
	maxEmpty int

	undefinedCode diag.Code
	emptyCode     diag.Code
	onSuccessCode diag.Code

	undefinedMsg string
	emptyMsg     string
	onSuccessMsg string
	gateNote     string
}

var contactSearch = callbackRule{
	name:   "contact-search",
	method: "contactSearch",
	gate: func(settings *ast.ObjectLit) *ast.Property {
		prop := lookup(settings, "searchTargets")
		arr := arrayValue(prop)
		if arr == nil {
			return nil
		}
		for _, el := range arr.Elems {
			if s, ok := el.(*ast.StringLit); ok && NormalizeKey(s.Text()) == contactsTarget {
				return prop
			}
		}
		return nil
	},
	maxEmpty:      0,
	undefinedCode: diag.RuleContactSearchUndefined,
	emptyCode:     diag.RuleContactSearchEmpty,
	onSuccessCode: diag.RuleContactSearchNoOnSuccess,
	undefinedMsg:  "'frameworkContacts' is configured as searchTarget but contactSearch method is not defined",
	emptyMsg:      "'frameworkContacts' is configured as searchTarget but contactSearch method is empty",
	onSuccessMsg:  "onSuccess should be used in contactSearch method",
	gateNote:      "frameworkContacts is enabled here",
}

var callLog = callbackRule{
	name:   "call-log",
	method: "processCallLog",
	gate: func(settings *ast.ObjectLit) *ast.Property {
		prop := lookup(settings, "enableCallLogs")
		if prop == nil {
			return nil
		}
		if b, ok := prop.Value.(*ast.BoolLit); ok && b.Value {
			return prop
		}
		return nil
	},
	maxEmpty:      1,
	undefinedCode: diag.RuleCallLogUndefined,
	emptyCode:     diag.RuleCallLogEmpty,
	onSuccessCode: diag.RuleCallLogNoOnSuccess,
	undefinedMsg:  "enableCallLogs is true but processCallLogs method is not defined",
	emptyMsg:      "enableCallLogs is true but processCallLogs method is empty or contains default implementation",
	onSuccessMsg:  "onSuccess should be used in enableCallLogs method",
	gateNote:      "call logs are enabled here",
}

func (r callbackRule) check(src string, root *ast.Program) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, cfg := range configObjects(root) {
		gate := r.gate(settingsOf(cfg))
		if gate == nil {
			continue
		}
		found := false
		for _, p := range ast.Descendants[*ast.Property](root) {
			if keyOf(p) != r.method {
				continue
			}
			found = true
			fn, ok := p.Value.(*ast.FuncLit)
			if !ok || fn.Body == nil {
				continue // функция может быть задана через переменную
			}
			if len(fn.Body.Stmts) <= r.maxEmpty {
				out = append(out, r.withGate(report(r.name, diag.SevError, r.emptyCode, src, fn, r.emptyMsg, fn.Text()), src, gate))
				continue
			}
			if !strings.Contains(fn.Body.Text(), onSuccessName) {
				out = append(out, r.withGate(report(r.name, diag.SevError, r.onSuccessCode, src, fn, r.onSuccessMsg, fn.Text()), src, gate))
			}
		}
		if !found {
			out = append(out, report(r.name, diag.SevError, r.undefinedCode, src, gate, r.undefinedMsg, gate.Text()))
		}
	}
	return out
}

func (r callbackRule) withGate(d diag.Diagnostic, src string, gate *ast.Property) diag.Diagnostic {
	return noteAt(d, src, gate, r.gateNote)
}
