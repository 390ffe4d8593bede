package diagfmt

import (
	"io"

	"fwlint/internal/diag"
	"fwlint/internal/source"
)

// Short writes one line per diagnostic, see diag.FormatShortDiagnostics.
func Short(w io.Writer, diags []diag.Diagnostic, fs *source.FileSet, includeNotes bool) error {
	out := diag.FormatShortDiagnostics(diags, fs, includeNotes)
	if out == "" {
		return nil
	}
	_, err := io.WriteString(w, out+"\n")
	return err
}
