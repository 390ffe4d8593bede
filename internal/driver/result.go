package driver

import (
	"fwlint/internal/ast"
	"fwlint/internal/diag"
	"fwlint/internal/observ"
	"fwlint/internal/source"
)

// FileResult is the outcome of checking one file.
type FileResult struct {
	Path   string
	FileID source.FileID
	Bag    *diag.Bag
	Tree   *ast.Tree // nil when the file failed to load or came from the cache
	Cached bool
	Timer  *observ.Timer
}

// Result collects the outcome of a run over one or more files.
type Result struct {
	FileSet *source.FileSet
	Files   []FileResult
}

// Diagnostics returns the diagnostics of every file, file by file.
func (r *Result) Diagnostics() []diag.Diagnostic {
	if r == nil {
		return nil
	}
	var out []diag.Diagnostic
	for _, f := range r.Files {
		if f.Bag != nil {
			out = append(out, f.Bag.Items()...)
		}
	}
	return out
}

// Count returns how many diagnostics have severity exactly sev.
func (r *Result) Count(sev diag.Severity) int {
	n := 0
	for _, d := range r.Diagnostics() {
		if d.Severity == sev {
			n++
		}
	}
	return n
}

// HasErrors reports whether any file has an error diagnostic.
func (r *Result) HasErrors() bool {
	return r.Count(diag.SevError) > 0
}
