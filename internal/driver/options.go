package driver

import (
	"fmt"
	"slices"

	"fwlint/internal/diag"
	"fwlint/internal/rules"
)

// Options controls a check run. The zero value runs the whole catalogue
// sequentially with default severities.
type Options struct {
	Disable          []string                 // rule names to skip
	Severity         map[string]diag.Severity // per-rule severity overrides
	WarningsAsErrors bool
	MaxDiagnostics   int // per file; 0 - без ограничения

	ParallelRules bool
	RuleJobs      int // limit for ParallelRules, 0 - one goroutine per rule
	Jobs          int // files checked at once by CheckDir, 0 - GOMAXPROCS

	Cache    *DiskCache
	Timings  bool
	Progress ProgressSink
	BaseDir  string // base for relative paths in output
}

// ErrUnknownRule is wrapped by errors about rule names missing from the catalogue.
var ErrUnknownRule = rules.ErrUnknownRule

func (o Options) selectRules() ([]rules.Rule, error) {
	cat := rules.Catalogue()
	names := rules.Names()
	for _, name := range o.Disable {
		if !slices.Contains(names, name) {
			return nil, fmt.Errorf("disable: %w %q", ErrUnknownRule, name)
		}
	}
	for name := range o.Severity {
		if !slices.Contains(names, name) {
			return nil, fmt.Errorf("severity: %w %q", ErrUnknownRule, name)
		}
	}
	out := cat[:0]
	for _, r := range cat {
		if !slices.Contains(o.Disable, r.Name) {
			out = append(out, r)
		}
	}
	return out, nil
}

// finalize drops diagnostics of rules that were not selected and applies
// severity overrides. Diagnostics without a rule (syntax, I/O) always pass.
func (o Options) finalize(raw []diag.Diagnostic, selected []rules.Rule) []diag.Diagnostic {
	enabled := make(map[string]struct{}, len(selected))
	for _, r := range selected {
		enabled[r.Name] = struct{}{}
	}
	out := make([]diag.Diagnostic, 0, len(raw))
	for _, d := range raw {
		if d.Rule != "" {
			if _, ok := enabled[d.Rule]; !ok {
				continue
			}
			if sev, ok := o.Severity[d.Rule]; ok {
				d.Severity = sev
			}
		}
		if o.WarningsAsErrors && d.Severity == diag.SevWarning {
			d.Severity = diag.SevError
		}
		out = append(out, d)
	}
	return out
}
