package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"fwlint/internal/diag"
	"fwlint/internal/rules"
	"fwlint/internal/source"
)

func TestSarif(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("src/a.js", []byte(wildcardSrc))
	d := wildcardDiag(fileID).WithNote(source.Span{File: fileID, Start: 0, End: 3}, 1, "see here")
	d.Line = 2
	syn := diag.NewError(diag.SynParseError, source.Span{File: fileID, Start: 4, End: 4}, "Unexpected token")
	syn.Line = 1

	var buf bytes.Buffer
	err := Sarif(&buf, []diag.Diagnostic{d, syn}, fs, SarifRunMeta{ToolVersion: "1.2.3", InvocationArgs: []string{"check", "a.js"}})
	if err != nil {
		t.Fatal(err)
	}

	var log sarifLog
	if err := json.Unmarshal(buf.Bytes(), &log); err != nil {
		t.Fatalf("invalid sarif: %v", err)
	}
	if log.Version != "2.1.0" || len(log.Runs) != 1 {
		t.Fatalf("log = %+v", log)
	}
	run := log.Runs[0]
	if run.Tool.Driver.Name != "fwlint" || run.Tool.Driver.Version != "1.2.3" {
		t.Errorf("driver = %+v", run.Tool.Driver)
	}
	if len(run.Tool.Driver.Rules) != len(rules.Catalogue()) {
		t.Errorf("rules = %d", len(run.Tool.Driver.Rules))
	}
	if run.Invocations[0].ExecutionSuccessful {
		t.Errorf("run with errors reported as successful")
	}

	if len(run.Results) != 2 {
		t.Fatalf("results = %d", len(run.Results))
	}
	first := run.Results[0]
	if first.RuleID != "no-wildcard-origin" || first.RuleIndex == nil || *first.RuleIndex != 0 || first.Level != "error" {
		t.Errorf("first = %+v", first)
	}
	region := first.Locations[0].PhysicalLocation.Region
	if region == nil || region.StartLine != 2 || region.Snippet == nil || region.Snippet.Text != `window.parent.postMessage(msg, "*")` {
		t.Errorf("region = %+v", region)
	}
	if first.Locations[0].PhysicalLocation.ArtifactLocation.URI != "src/a.js" {
		t.Errorf("uri = %q", first.Locations[0].PhysicalLocation.ArtifactLocation.URI)
	}
	if len(first.RelatedLocations) != 1 || first.RelatedLocations[0].Message.Text != "see here" {
		t.Errorf("related = %+v", first.RelatedLocations)
	}

	second := run.Results[1]
	if second.RuleID != "SYN2001" || second.RuleIndex != nil {
		t.Errorf("syntax result = %+v", second)
	}
}
