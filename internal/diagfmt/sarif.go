package diagfmt

import (
	"encoding/json"
	"io"
	"path/filepath"

	"fortio.org/safecast"

	"fwlint/internal/diag"
	"fwlint/internal/rules"
	"fwlint/internal/source"
)

const (
	sarifVersion = "2.1.0"
	sarifSchema  = "https://json.schemastore.org/sarif-2.1.0.json"
)

type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool        sarifTool         `json:"tool"`
	Invocations []sarifInvocation `json:"invocations,omitempty"`
	Results     []sarifResult     `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string                `json:"name"`
	Version string                `json:"version,omitempty"`
	Rules   []sarifRuleDescriptor `json:"rules"`
}

type sarifRuleDescriptor struct {
	ID                   string          `json:"id"`
	Name                 string          `json:"name"`
	ShortDescription     sarifMessage    `json:"shortDescription"`
	FullDescription      *sarifMessage   `json:"fullDescription,omitempty"`
	DefaultConfiguration sarifRuleConfig `json:"defaultConfiguration"`
	Properties           map[string]any  `json:"properties,omitempty"`
}

type sarifRuleConfig struct {
	Level string `json:"level"`
}

type sarifInvocation struct {
	Arguments           []string `json:"arguments,omitempty"`
	ExecutionSuccessful bool     `json:"executionSuccessful"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifResult struct {
	RuleID           string          `json:"ruleId"`
	RuleIndex        *int            `json:"ruleIndex,omitempty"`
	Level            string          `json:"level"`
	Message          sarifMessage    `json:"message"`
	Locations        []sarifLocation `json:"locations,omitempty"`
	RelatedLocations []sarifLocation `json:"relatedLocations,omitempty"`
	Properties       map[string]any  `json:"properties,omitempty"`
}

type sarifLocation struct {
	ID               *int                  `json:"id,omitempty"`
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
	Message          *sarifMessage         `json:"message,omitempty"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifact `json:"artifactLocation"`
	Region           *sarifRegion  `json:"region,omitempty"`
}

type sarifArtifact struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   uint32        `json:"startLine"`
	StartColumn uint32        `json:"startColumn,omitempty"`
	EndLine     uint32        `json:"endLine,omitempty"`
	EndColumn   uint32        `json:"endColumn,omitempty"`
	Snippet     *sarifMessage `json:"snippet,omitempty"`
}

func sarifLevel(sev diag.Severity) string {
	switch sev {
	case diag.SevError:
		return "error"
	case diag.SevWarning:
		return "warning"
	default:
		return "note"
	}
}

// ruleDescriptors describes every catalogue entry, in catalogue order.
func ruleDescriptors() ([]sarifRuleDescriptor, map[string]int) {
	catalogue := rules.Catalogue()
	out := make([]sarifRuleDescriptor, 0, len(catalogue))
	index := make(map[string]int, len(catalogue))
	for i, r := range catalogue {
		codes := make([]string, len(r.Codes))
		for j, c := range r.Codes {
			codes[j] = c.ID()
		}
		desc := sarifRuleDescriptor{
			ID:                   r.Name,
			Name:                 r.Name,
			ShortDescription:     sarifMessage{Text: r.Title},
			DefaultConfiguration: sarifRuleConfig{Level: sarifLevel(r.Severity)},
			Properties:           map[string]any{"codes": codes},
		}
		if r.Help != "" {
			desc.FullDescription = &sarifMessage{Text: r.Help}
		}
		out = append(out, desc)
		index[r.Name] = i
	}
	return out, index
}

func sarifPhysical(span source.Span, line int, fs *source.FileSet, mode PathMode, withSnippet bool) sarifPhysicalLocation {
	loc := sarifPhysicalLocation{
		ArtifactLocation: sarifArtifact{URI: filepath.ToSlash(formatPath(fs, span.File, mode))},
	}
	if fs == nil || int(span.File) >= fs.Len() {
		if l, err := safecast.Conv[uint32](line); err == nil && l > 0 {
			loc.Region = &sarifRegion{StartLine: l}
		}
		return loc
	}
	start, end := fs.Resolve(span)
	region := &sarifRegion{
		StartLine:   start.Line,
		StartColumn: start.Col,
		EndLine:     end.Line,
		EndColumn:   end.Col,
	}
	if withSnippet && !span.Empty() {
		region.Snippet = &sarifMessage{Text: fs.Get(span.File).Text(span)}
	}
	loc.Region = region
	return loc
}

// Sarif форматирует диагностики в SARIF формат (v2.1.0). Results without a
// catalogue rule (syntax, I/O) use the diagnostic code as ruleId.
func Sarif(w io.Writer, diags []diag.Diagnostic, fs *source.FileSet, meta SarifRunMeta) error {
	descriptors, index := ruleDescriptors()

	results := make([]sarifResult, 0, len(diags))
	success := true
	for _, d := range diags {
		if d.Severity == diag.SevError {
			success = false
		}
		res := sarifResult{
			RuleID:     d.Code.ID(),
			Level:      sarifLevel(d.Severity),
			Message:    sarifMessage{Text: d.Message},
			Locations:  []sarifLocation{{PhysicalLocation: sarifPhysical(d.Primary, d.Line, fs, meta.PathMode, true)}},
			Properties: map[string]any{"code": d.Code.ID()},
		}
		if i, ok := index[d.Rule]; ok {
			res.RuleID = d.Rule
			res.RuleIndex = &i
		}
		for j, note := range d.Notes {
			id := j + 1
			res.RelatedLocations = append(res.RelatedLocations, sarifLocation{
				ID:               &id,
				PhysicalLocation: sarifPhysical(note.Span, note.Line, fs, meta.PathMode, false),
				Message:          &sarifMessage{Text: note.Msg},
			})
		}
		results = append(results, res)
	}

	name := meta.ToolName
	if name == "" {
		name = "fwlint"
	}
	log := sarifLog{
		Schema:  sarifSchema,
		Version: sarifVersion,
		Runs: []sarifRun{{
			Tool: sarifTool{Driver: sarifDriver{
				Name:    name,
				Version: meta.ToolVersion,
				Rules:   descriptors,
			}},
			Invocations: []sarifInvocation{{
				Arguments:           meta.InvocationArgs,
				ExecutionSuccessful: success,
			}},
			Results: results,
		}},
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(log)
}
