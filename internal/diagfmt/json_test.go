package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"fwlint/internal/diag"
	"fwlint/internal/source"
)

func TestJSONOutput(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("a.js", []byte(wildcardSrc))
	d := wildcardDiag(fileID).WithNote(source.Span{File: fileID, Start: 0, End: 3}, 1, "see here")
	d.Line = 2

	var buf bytes.Buffer
	if err := JSON(&buf, []diag.Diagnostic{d}, fs, JSONOpts{IncludePositions: true}); err != nil {
		t.Fatal(err)
	}

	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, buf.String())
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("count = %d", out.Count)
	}
	got := out.Diagnostics[0]
	if got.Severity != "ERROR" || got.Code != "FWL1001" || got.Rule != "no-wildcard-origin" || got.Line != 2 {
		t.Errorf("diagnostic = %+v", got)
	}
	if got.Content != `window.parent.postMessage(msg, "*")` {
		t.Errorf("content = %q", got.Content)
	}
	if got.Location.StartLine != 2 || got.Location.StartCol != 1 || got.Location.File != "a.js" {
		t.Errorf("location = %+v", got.Location)
	}
	if len(got.Notes) != 0 {
		t.Errorf("notes included without IncludeNotes")
	}
	// HTML не экранируется
	if strings.Contains(buf.String(), `<`) || !strings.Contains(buf.String(), `\"*\"`) {
		t.Errorf("unexpected escaping:\n%s", buf.String())
	}
}

func TestJSONMaxAndNotes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("a.js", []byte(wildcardSrc))
	d := wildcardDiag(fileID).WithNote(source.Span{File: fileID}, 1, "n")
	timings := diag.Diagnostic{Severity: diag.SevInfo, Code: diag.ObsTimings, Notes: []diag.Note{{Span: source.Span{File: fileID}, Line: 1, Msg: "{}"}}}

	out := BuildDiagnosticsOutput([]diag.Diagnostic{d, d, timings}, fs, JSONOpts{Max: 2, IncludeNotes: true})
	if out.Count != 2 || len(out.Diagnostics[0].Notes) != 1 {
		t.Errorf("out = %+v", out)
	}

	out = BuildDiagnosticsOutput([]diag.Diagnostic{timings}, fs, JSONOpts{})
	if len(out.Diagnostics[0].Notes) != 1 {
		t.Errorf("timings notes dropped")
	}

	out = BuildDiagnosticsOutput(nil, fs, JSONOpts{})
	if out.Diagnostics == nil || out.Count != 0 {
		t.Errorf("empty output should have an empty list")
	}
}

func TestShort(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("a.js", []byte(wildcardSrc))
	d := wildcardDiag(fileID)
	d.Line = 2

	var buf bytes.Buffer
	if err := Short(&buf, []diag.Diagnostic{d}, fs, false); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "error FWL1001 a.js:2 Domain should not contain wildcard *\n" {
		t.Errorf("got %q", buf.String())
	}

	buf.Reset()
	if err := Short(&buf, nil, fs, false); err != nil || buf.Len() != 0 {
		t.Errorf("empty input wrote %q", buf.String())
	}
}
