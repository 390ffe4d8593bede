package rules

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"

	"fwlint/internal/ast"
	"fwlint/internal/diag"
)

// CheckFunc inspects one parsed file. src is the exact text the tree was built
// from.
type CheckFunc func(src string, root *ast.Program) []diag.Diagnostic

// Rule is one entry of the catalogue.
type Rule struct {
	Name     string
	Title    string
	Help     string
	Severity diag.Severity // default severity of everything the rule reports
	Codes    []diag.Code
	Check    CheckFunc
}

// Catalogue returns the rules in evaluation order. The slice is fresh on every
// call, callers may filter it.
func Catalogue() []Rule {
	return []Rule{
		{
			Name:     "no-wildcard-origin",
			Title:    "postMessage must name its target origin",
			Help:     "window.parent.postMessage with a '*' target origin leaks messages to any embedding page.",
			Severity: diag.SevError,
			Codes:    []diag.Code{diag.RuleWildcardOrigin},
			Check:    checkWildcardOrigin,
		},
		{
			Name:     "framework-config",
			Title:    "window.Framework must define config",
			Help:     "The object assigned to window.Framework needs a config property.",
			Severity: diag.SevError,
			Codes:    []diag.Code{diag.RuleMissingConfig},
			Check:    checkFrameworkConfig,
		},
		{
			Name:     "config-properties",
			Title:    "config must declare the required properties",
			Help:     "config needs name, settings, clientIds and customInteractionAttributes.",
			Severity: diag.SevError,
			Codes:    []diag.Code{diag.RuleMissingConfigProperty},
			Check:    checkConfigProperties,
		},
		{
			Name:     "interaction-attributes",
			Title:    "customInteractionAttributes must not be empty",
			Help:     "An empty attribute list disables interaction attribute forwarding.",
			Severity: diag.SevError,
			Codes:    []diag.Code{diag.RuleEmptyInteractionAttributes},
			Check:    checkInteractionAttributes,
		},
		{
			Name:     "client-ids",
			Title:    "clientIds must cover every region",
			Help:     "Each supported region needs its own OAuth client id.",
			Severity: diag.SevError,
			Codes:    []diag.Code{diag.RuleMissingClientID},
			Check:    checkClientIDs,
		},
		{
			Name:     "contact-search",
			Title:    "frameworkContacts search requires contactSearch",
			Help:     "When searchTargets contains frameworkContacts, contactSearch must be implemented and call onSuccess.",
			Severity: diag.SevError,
			Codes: []diag.Code{
				diag.RuleContactSearchUndefined,
				diag.RuleContactSearchEmpty,
				diag.RuleContactSearchNoOnSuccess,
			},
			Check: contactSearch.check,
		},
		{
			Name:     "call-log",
			Title:    "enableCallLogs requires processCallLog",
			Help:     "When settings.enableCallLogs is true, processCallLog must be implemented and call onSuccess.",
			Severity: diag.SevError,
			Codes: []diag.Code{
				diag.RuleCallLogUndefined,
				diag.RuleCallLogEmpty,
				diag.RuleCallLogNoOnSuccess,
			},
			Check: callLog.check,
		},
		{
			Name:     "external-script",
			Title:    "string literals must not reference scripts",
			Help:     "Loading external scripts is not allowed. The check is textual and may flag harmless strings.",
			Severity: diag.SevWarning,
			Codes:    []diag.Code{diag.RuleExternalScript},
			Check:    checkExternalScript,
		},
	}
}

// Lookup finds a catalogue rule by name.
func Lookup(name string) (Rule, bool) {
	for _, r := range Catalogue() {
		if r.Name == name {
			return r, true
		}
	}
	return Rule{}, false
}

// Names returns the catalogue rule names in order.
func Names() []string {
	cat := Catalogue()
	out := make([]string, len(cat))
	for i, r := range cat {
		out[i] = r.Name
	}
	return out
}

// ByCode maps a diagnostic code back to the rule that reports it.
func ByCode(code diag.Code) (Rule, bool) {
	for _, r := range Catalogue() {
		for _, c := range r.Codes {
			if c == code {
				return r, true
			}
		}
	}
	return Rule{}, false
}

// Fingerprint identifies the catalogue contents; cached results keyed by a
// different fingerprint are stale.
func Fingerprint() string {
	h := sha256.New()
	for _, r := range Catalogue() {
		h.Write([]byte(r.Name))
		h.Write([]byte{0})
		h.Write([]byte(r.Severity.String()))
		for _, c := range r.Codes {
			h.Write([]byte(strconv.Itoa(int(c))))
		}
		h.Write([]byte{'\n'})
	}
	h.Write([]byte(strings.Join(Regions[:], ",")))
	return hex.EncodeToString(h.Sum(nil))
}

// ErrUnknownRule is returned by callers that validate rule names.
var ErrUnknownRule = errors.New("unknown rule")
