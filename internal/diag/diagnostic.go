package diag

import (
	"fortio.org/safecast"

	"fwlint/internal/source"
)

type Note struct {
	Span source.Span
	Line int
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Rule     string
	Message  string
	Line     int
	Content  string
	Primary  source.Span
	Notes    []Note
}

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

// NewError builds an error diagnostic.
func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

// At fills Line from the source text the span points into.
func (d Diagnostic) At(src string) Diagnostic {
	start, err := safecast.Conv[int](d.Primary.Start)
	if err != nil {
		start = len(src)
	}
	d.Line = source.LineOf(src, start)
	return d
}

func (d Diagnostic) WithContent(content string) Diagnostic {
	d.Content = content
	return d
}

func (d Diagnostic) WithRule(rule string) Diagnostic {
	d.Rule = rule
	return d
}

func (d Diagnostic) WithNote(sp source.Span, line int, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Line: line, Msg: msg})
	return d
}
