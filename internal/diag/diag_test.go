package diag

import (
	"testing"

	"fwlint/internal/source"
)

func TestFormatShortDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/workspace")

	src := "a\nb\n"
	file := fs.Add("/workspace/testdata/framework.js", []byte(src), 0)

	diags := []Diagnostic{
		New(SevError, RuleMissingConfig, source.Span{File: file, Start: 2, End: 3}, "first line\nsecond").
			At(src).
			WithNote(source.Span{File: file, Start: 0, End: 1}, 1, "note line"),
		New(SevWarning, RuleExternalScript, source.Span{File: file, Start: 0, End: 1}, "another").At(src),
	}

	expected := "error FWL1002 testdata/framework.js:2 first line second\n" +
		"note FWL1002 testdata/framework.js:1 note line\n" +
		"warning FWL1012 testdata/framework.js:1 another"

	if got := FormatShortDiagnostics(diags, fs, true); got != expected {
		t.Fatalf("unexpected short diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

func TestBagLimitAndCounts(t *testing.T) {
	bag := NewBag(2)
	if !bag.Add(New(SevWarning, RuleExternalScript, source.Span{}, "w")) {
		t.Fatal("first Add rejected")
	}
	if !bag.Add(New(SevError, RuleWildcardOrigin, source.Span{}, "e")) {
		t.Fatal("second Add rejected")
	}
	if bag.Add(New(SevError, RuleWildcardOrigin, source.Span{}, "overflow")) {
		t.Fatal("Add past the limit must be rejected")
	}
	if !bag.HasErrors() || !bag.HasWarnings() {
		t.Error("expected both errors and warnings")
	}
	if bag.Count(SevError) != 1 || bag.Count(SevWarning) != 2 {
		t.Errorf("unexpected counts: errors=%d warnings+=%d", bag.Count(SevError), bag.Count(SevWarning))
	}

	bag.Filter(func(d Diagnostic) bool { return d.Severity == SevError })
	if bag.Len() != 1 || bag.Items()[0].Message != "e" {
		t.Errorf("Filter kept %+v", bag.Items())
	}
}

func TestUnlimitedBagAndMerge(t *testing.T) {
	a := NewBag(0)
	for range 100 {
		a.Add(New(SevInfo, RuleInfo, source.Span{}, "i"))
	}
	if a.Len() != 100 {
		t.Fatalf("unlimited bag kept %d items", a.Len())
	}

	b := NewBag(1)
	b.Add(New(SevError, RuleMissingConfig, source.Span{}, "x"))
	b.Merge(a)
	if b.Len() != 101 {
		t.Errorf("Merge must grow the limit, got %d", b.Len())
	}
}

func TestCodeIDs(t *testing.T) {
	tests := map[Code]string{
		RuleWildcardOrigin: "FWL1001",
		SynParseError:      "SYN2001",
		IOLoadFileError:    "IO4001",
		ObsTimings:         "OBS6001",
		UnknownCode:        "E0000",
	}
	for code, want := range tests {
		if got := code.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", code, got, want)
		}
	}
	if Code(1999).Title() != "Unknown error" {
		t.Error("unknown codes must fall back to the generic title")
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(0)
	r := NewDedupReporter(BagReporter{Bag: bag})
	d := New(SevError, SynParseError, source.Span{Start: 1, End: 2}, "Unexpected token")
	r.Report(d)
	r.Report(d)
	r.Report(New(SevError, SynParseError, source.Span{Start: 3, End: 4}, "Unexpected token"))
	if bag.Len() != 2 {
		t.Errorf("expected 2 unique diagnostics, got %d", bag.Len())
	}
}

func TestParseSeverity(t *testing.T) {
	for in, want := range map[string]Severity{"error": SevError, "Warning": SevWarning, "warn": SevWarning, " info ": SevInfo} {
		got, err := ParseSeverity(in)
		if err != nil || got != want {
			t.Errorf("ParseSeverity(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseSeverity("fatal"); err == nil {
		t.Error("expected error for unknown severity")
	}
}
