package parser

import (
	"errors"

	"fortio.org/safecast"
	gojaparser "github.com/dop251/goja/parser"

	"fwlint/internal/diag"
	"fwlint/internal/source"
)

func reportParseError(r diag.Reporter, file *source.File, err error) {
	var (
		list   gojaparser.ErrorList
		single *gojaparser.Error
	)
	switch {
	case errors.As(err, &list):
		for _, e := range list {
			if e != nil {
				r.Report(syntaxDiagnostic(file, e))
			}
		}
	case errors.As(err, &single):
		r.Report(syntaxDiagnostic(file, single))
	case errors.Is(err, errParserPanic):
		d := diag.NewError(diag.SynParserPanic, source.Span{File: file.ID}, err.Error())
		d.Line = 1
		r.Report(d)
	default:
		d := diag.NewError(diag.SynParseError, source.Span{File: file.ID}, err.Error())
		d.Line = 1
		r.Report(d)
	}
}

func syntaxDiagnostic(file *source.File, e *gojaparser.Error) diag.Diagnostic {
	off := offsetOf(file, e.Position.Line, e.Position.Column)
	d := diag.NewError(diag.SynParseError, source.Span{File: file.ID, Start: off, End: off}, e.Message)
	if e.Position.Line > 0 {
		d.Line = e.Position.Line
		return d
	}
	return d.At(string(file.Content))
}

// offsetOf maps a 1-based line/column pair back to a byte offset, clamped to
// the file.
func offsetOf(file *source.File, line, col int) uint32 {
	size := uint32(0)
	if n, err := safecast.Conv[uint32](len(file.Content)); err == nil {
		size = n
	}
	if line <= 0 {
		return 0
	}
	var start uint32
	if line >= 2 {
		if line-2 >= len(file.LineIdx) {
			return size
		}
		start = file.LineIdx[line-2] + 1
	}
	if col > 1 {
		if c, err := safecast.Conv[uint32](col - 1); err == nil {
			start += c
		}
	}
	if start > size {
		return size
	}
	return start
}
