package diag

import (
	"fmt"
	"path/filepath"
	"strings"

	"fwlint/internal/source"
)

// FormatShortDiagnostics renders diagnostics into a stable, single-line-per-entry
// representation used by `--format short` and by golden tests. Order is kept
// as given: the catalogue order is meaningful.
func FormatShortDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if len(diags) == 0 {
		return ""
	}

	var b strings.Builder
	for i, d := range diags {
		if i > 0 {
			b.WriteByte('\n')
		}
		path := pathOf(fs, d.Primary.File)
		fmt.Fprintf(&b, "%s %s %s:%d %s", severityLabel(d.Severity), d.Code.ID(), path, d.Line, sanitizeMessage(d.Message))
		if includeNotes {
			for _, note := range d.Notes {
				fmt.Fprintf(&b, "\nnote %s %s:%d %s", d.Code.ID(), path, note.Line, sanitizeMessage(note.Msg))
			}
		}
	}
	return b.String()
}

func pathOf(fs *source.FileSet, id source.FileID) (path string) {
	if fs == nil || int(id) >= fs.Len() {
		return "<unknown>"
	}
	file := fs.Get(id)
	return normalizePath(file.FormatPath("relative", fs.BaseDir()))
}

func normalizePath(path string) string {
	p := filepath.ToSlash(path)
	for strings.HasPrefix(p, "./") {
		p = strings.TrimPrefix(p, "./")
	}
	return p
}

func severityLabel(sev Severity) string {
	switch sev {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	default:
		return "info"
	}
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
