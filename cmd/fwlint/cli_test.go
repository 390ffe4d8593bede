package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"fwlint/internal/diag"
	"fwlint/internal/driver"
	"fwlint/internal/project"
	"fwlint/internal/rules"
)

func TestBuildOptionsMergesConfigAndFlags(t *testing.T) {
	cfg, err := project.DecodeConfig("fwlint.toml", `
[check]
disable = ["external-script"]
warnings-as-errors = true
max-diagnostics = 5
jobs = 3

[severity]
client-ids = "warning"
`)
	if err != nil {
		t.Fatal(err)
	}

	cf := checkFlags{
		disable:        []string{"call-log", " "},
		severity:       map[string]string{"call-log": "info"},
		maxDiagnostics: 50,
		jobs:           8,
		set:            map[string]bool{"max-diagnostics": true},
	}
	opts, err := buildOptions(cf, cfg)
	if err != nil {
		t.Fatal(err)
	}

	if strings.Join(opts.Disable, ",") != "external-script,call-log" {
		t.Errorf("disable = %v", opts.Disable)
	}
	if !opts.WarningsAsErrors {
		t.Errorf("warnings-as-errors from file lost")
	}
	// флаг задан явно и побеждает файл
	if opts.MaxDiagnostics != 50 {
		t.Errorf("max diagnostics = %d", opts.MaxDiagnostics)
	}
	if opts.Jobs != 3 {
		t.Errorf("jobs = %d, file value expected", opts.Jobs)
	}
	if opts.Severity["client-ids"] != diag.SevWarning || opts.Severity["call-log"] != diag.SevInfo {
		t.Errorf("severity = %v", opts.Severity)
	}
	if opts.Cache != nil {
		t.Errorf("cache opened without being asked")
	}
}

func TestBuildOptionsWithoutConfig(t *testing.T) {
	opts, err := buildOptions(checkFlags{warningsAsErrors: true, set: map[string]bool{}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !opts.WarningsAsErrors || len(opts.Disable) != 0 || opts.Severity != nil {
		t.Errorf("opts = %+v", opts)
	}

	_, err = buildOptions(checkFlags{severity: map[string]string{"call-log": "fatal"}, set: map[string]bool{}}, nil)
	if err == nil {
		t.Errorf("bad severity accepted")
	}
}

func TestLoadProjectConfigSearchesUpwards(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, project.ConfigFileName), []byte("[check]\njobs = 2\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "src", "app")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	file := filepath.Join(nested, "framework.js")
	if err := os.WriteFile(file, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadProjectConfig("", file)
	if err != nil {
		t.Fatal(err)
	}
	if cfg == nil || cfg.Check.Jobs != 2 {
		t.Fatalf("cfg = %+v", cfg)
	}

	_, err = loadProjectConfig(filepath.Join(root, "missing.toml"), file)
	if err == nil {
		t.Errorf("explicit missing config accepted")
	}
}

func TestWriteRules(t *testing.T) {
	var buf bytes.Buffer
	if err := writeRules(&buf, "table"); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != len(rules.Catalogue())+1 || !strings.Contains(lines[1], "no-wildcard-origin") {
		t.Errorf("table:\n%s", buf.String())
	}

	buf.Reset()
	if err := writeRules(&buf, "json"); err != nil {
		t.Fatal(err)
	}
	var fromJSON []ruleInfo
	if err := json.Unmarshal(buf.Bytes(), &fromJSON); err != nil {
		t.Fatal(err)
	}

	buf.Reset()
	if err := writeRules(&buf, "yaml"); err != nil {
		t.Fatal(err)
	}
	var fromYAML []ruleInfo
	if err := yaml.Unmarshal(buf.Bytes(), &fromYAML); err != nil {
		t.Fatal(err)
	}
	if len(fromYAML) != len(fromJSON) || fromYAML[7].Severity != "warning" || fromYAML[5].Codes[0] != "FWL1006" {
		t.Errorf("yaml = %+v", fromYAML)
	}

	if err := writeRules(&buf, "xml"); err == nil {
		t.Errorf("unknown format accepted")
	}
}

func TestWriteTemplate(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "new")
	path, err := writeTemplate(dir)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := project.LoadConfig(path); err != nil {
		t.Errorf("template does not load: %v", err)
	}
	if _, err := writeTemplate(dir); err == nil {
		t.Errorf("existing config overwritten")
	}
}

func TestRenderFormats(t *testing.T) {
	res, err := driver.CheckSource(t.Context(), "a.js", []byte(`window.parent.postMessage(m, "*");`), driver.Options{})
	if err != nil {
		t.Fatal(err)
	}
	for _, format := range []string{"pretty", "short", "json", "sarif"} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			if err := render(&buf, checkFlags{format: format}, res, false, nil); err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(buf.String(), "FWL1001") && !strings.Contains(buf.String(), "no-wildcard-origin") {
				t.Errorf("output misses the finding:\n%s", buf.String())
			}
		})
	}
	if err := render(&bytes.Buffer{}, checkFlags{format: "xml"}, res, false, nil); err == nil {
		t.Errorf("unknown format accepted")
	}
}

func TestCheckCommandExitCodes(t *testing.T) {
	dir := t.TempDir()
	clean := filepath.Join(dir, "clean.js")
	dirty := filepath.Join(dir, "dirty.js")
	if err := os.WriteFile(clean, []byte("var x = 1;\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dirty, []byte(`window.parent.postMessage(m, "*");`+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	run := func(args ...string) (string, error) {
		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetErr(&out)
		rootCmd.SetArgs(args)
		err := rootCmd.Execute()
		teardownRun()
		return out.String(), err
	}

	out, err := run("check", "--color", "off", "--config", "", clean)
	if err != nil {
		t.Fatalf("clean file failed: %v\n%s", err, out)
	}
	if !strings.HasPrefix(out, "Checking...\n\n") || !strings.Contains(out, "No errors found") {
		t.Errorf("output:\n%s", out)
	}

	out, err = run("check", "--color", "off", dirty)
	var exitErr *exitError
	if !errors.As(err, &exitErr) || exitErr.code != exitFindings {
		t.Fatalf("err = %v", err)
	}
	if !strings.Contains(out, "Found 1 error") {
		t.Errorf("output:\n%s", out)
	}

	_, err = run("check", "--color", "off", filepath.Join(dir, "missing.js"))
	if err == nil || errors.As(err, &exitErr) {
		t.Errorf("missing file should be a plain error, got %v", err)
	}
}
