package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"fwlint/internal/diag"
	"fwlint/internal/diagfmt"
	"fwlint/internal/driver"
	"fwlint/internal/project"
	"fwlint/internal/trace"
	"fwlint/internal/version"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <framework.js|directory|->",
	Short: "Check a framework configuration file or every *.js file in a directory",
	Long: `Check runs the rule catalogue over a framework configuration file. A
directory is searched recursively for *.js files (node_modules and hidden
directories are skipped). "-" reads the file from stdin.

Exit status is 0 when nothing of error severity was found, 1 when something
was, and 2 when the check itself could not run.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	f := checkCmd.Flags()
	f.String("format", "pretty", "output format (pretty|short|json|sarif)")
	f.StringSlice("disable", nil, "rules to skip, see fwlint rules")
	f.StringToString("severity", nil, "per-rule severity override, e.g. external-script=error")
	f.Bool("warnings-as-errors", false, "treat warnings as errors")
	f.Bool("parallel-rules", false, "evaluate the rules of a file concurrently")
	f.Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	f.Bool("cache", false, "reuse results for unchanged files from the disk cache")
	f.String("ui", "auto", "progress UI for directories (auto|on|off)")
	f.Bool("with-notes", false, "include diagnostic notes in output")
	f.String("path-mode", "auto", "how paths are printed (auto|absolute|relative|basename)")
	f.String("stdin-name", "<stdin>", "file name reported for input read from stdin")
}

// checkFlags is the parsed command line of `fwlint check`; set records which
// flags were given explicitly and therefore win over fwlint.toml.
type checkFlags struct {
	format           string
	disable          []string
	severity         map[string]string
	warningsAsErrors bool
	parallelRules    bool
	jobs             int
	cache            bool
	ui               uiMode
	withNotes        bool
	pathMode         diagfmt.PathMode
	stdinName        string
	maxDiagnostics   int
	timings          bool
	quiet            bool
	configPath       string

	set map[string]bool
}

func readCheckFlags(cmd *cobra.Command) (checkFlags, error) {
	var (
		cf  checkFlags
		err error
	)
	f := cmd.Flags()
	pf := cmd.Root().PersistentFlags()

	if cf.format, err = f.GetString("format"); err != nil {
		return cf, fmt.Errorf("failed to get format flag: %w", err)
	}
	switch cf.format {
	case "pretty", "short", "json", "sarif":
	default:
		return cf, fmt.Errorf("unknown format: %s", cf.format)
	}
	if cf.disable, err = f.GetStringSlice("disable"); err != nil {
		return cf, fmt.Errorf("failed to get disable flag: %w", err)
	}
	if cf.severity, err = f.GetStringToString("severity"); err != nil {
		return cf, fmt.Errorf("failed to get severity flag: %w", err)
	}
	if cf.warningsAsErrors, err = f.GetBool("warnings-as-errors"); err != nil {
		return cf, fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}
	if cf.parallelRules, err = f.GetBool("parallel-rules"); err != nil {
		return cf, fmt.Errorf("failed to get parallel-rules flag: %w", err)
	}
	if cf.jobs, err = f.GetInt("jobs"); err != nil {
		return cf, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if cf.cache, err = f.GetBool("cache"); err != nil {
		return cf, fmt.Errorf("failed to get cache flag: %w", err)
	}
	uiStr, err := f.GetString("ui")
	if err != nil {
		return cf, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if cf.ui, err = readUIMode(uiStr); err != nil {
		return cf, err
	}
	if cf.withNotes, err = f.GetBool("with-notes"); err != nil {
		return cf, fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	pathModeStr, err := f.GetString("path-mode")
	if err != nil {
		return cf, fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	var ok bool
	if cf.pathMode, ok = diagfmt.ParsePathMode(pathModeStr); !ok {
		return cf, fmt.Errorf("invalid --path-mode value %q (expected auto|absolute|relative|basename)", pathModeStr)
	}
	if cf.stdinName, err = f.GetString("stdin-name"); err != nil {
		return cf, fmt.Errorf("failed to get stdin-name flag: %w", err)
	}

	if cf.maxDiagnostics, err = pf.GetInt("max-diagnostics"); err != nil {
		return cf, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if cf.timings, err = pf.GetBool("timings"); err != nil {
		return cf, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if cf.quiet, err = pf.GetBool("quiet"); err != nil {
		return cf, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if cf.configPath, err = pf.GetString("config"); err != nil {
		return cf, fmt.Errorf("failed to get config flag: %w", err)
	}

	cf.set = make(map[string]bool)
	for _, name := range []string{"warnings-as-errors", "parallel-rules", "jobs", "cache"} {
		cf.set[name] = f.Changed(name)
	}
	cf.set["max-diagnostics"] = pf.Changed("max-diagnostics")
	return cf, nil
}

// loadProjectConfig returns the explicit --config file or the nearest
// fwlint.toml above target; nil when there is none.
func loadProjectConfig(configPath, target string) (*project.Config, error) {
	if configPath != "" {
		return project.LoadConfig(configPath)
	}
	start := target
	if target == "-" {
		start = "."
	}
	path, ok, err := project.FindConfig(start)
	if err != nil || !ok {
		return nil, err
	}
	return project.LoadConfig(path)
}

// buildOptions merges fwlint.toml with the command line. Flags win; the
// disable lists of both are combined.
func buildOptions(cf checkFlags, cfg *project.Config) (driver.Options, error) {
	opts := driver.Options{
		MaxDiagnostics:   cf.maxDiagnostics,
		WarningsAsErrors: cf.warningsAsErrors,
		ParallelRules:    cf.parallelRules,
		Jobs:             cf.jobs,
		Timings:          cf.timings,
	}
	useCache := cf.cache

	if cfg != nil {
		opts.Disable = append(opts.Disable, cfg.Check.Disable...)
		sev, err := cfg.Severities()
		if err != nil {
			return opts, err
		}
		opts.Severity = sev
		if !cf.set["warnings-as-errors"] && cfg.IsDefined("check", "warnings-as-errors") {
			opts.WarningsAsErrors = cfg.Check.WarningsAsErrors
		}
		if !cf.set["parallel-rules"] && cfg.IsDefined("check", "parallel-rules") {
			opts.ParallelRules = cfg.Check.ParallelRules
		}
		if !cf.set["jobs"] && cfg.IsDefined("check", "jobs") {
			opts.Jobs = cfg.Check.Jobs
		}
		if !cf.set["max-diagnostics"] && cfg.IsDefined("check", "max-diagnostics") {
			opts.MaxDiagnostics = cfg.Check.MaxDiagnostics
		}
		if !cf.set["cache"] && cfg.IsDefined("check", "cache") {
			useCache = cfg.Check.Cache
		}
	}

	for _, name := range cf.disable {
		name = strings.TrimSpace(name)
		if name != "" {
			opts.Disable = append(opts.Disable, name)
		}
	}
	for name, raw := range cf.severity {
		sev, err := diag.ParseSeverity(raw)
		if err != nil {
			return opts, fmt.Errorf("--severity %s: %w", name, err)
		}
		if opts.Severity == nil {
			opts.Severity = make(map[string]diag.Severity)
		}
		opts.Severity[name] = sev
	}

	if useCache {
		cache, err := driver.OpenDiskCache("fwlint")
		if err != nil {
			return opts, fmt.Errorf("failed to open cache: %w", err)
		}
		opts.Cache = cache
	}
	return opts, nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic(cmd)

	target := args[0]
	cf, err := readCheckFlags(cmd)
	if err != nil {
		return err
	}
	cfg, err := loadProjectConfig(cf.configPath, target)
	if err != nil {
		return err
	}
	opts, err := buildOptions(cf, cfg)
	if err != nil {
		return err
	}

	colored, err := useColor(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if cf.format == "pretty" && !cf.quiet {
		fmt.Fprint(out, "Checking...\n\n")
	}

	ctx := cmd.Context()
	var result *driver.Result
	switch {
	case target == "-":
		content, readErr := io.ReadAll(cmd.InOrStdin())
		if readErr != nil {
			return fmt.Errorf("failed to read stdin: %w", readErr)
		}
		result, err = driver.CheckSource(ctx, cf.stdinName, content, opts)
	default:
		st, statErr := os.Stat(target)
		if statErr != nil {
			return fmt.Errorf("failed to stat path: %w", statErr)
		}
		if st.IsDir() {
			opts.BaseDir = target
			if shouldUseTUI(cf.ui) && cf.format == "pretty" && !cf.quiet {
				result, err = runCheckDirWithUI(ctx, target, opts)
			} else {
				result, err = driver.CheckDir(ctx, target, opts)
			}
		} else {
			opts.BaseDir = filepath.Dir(target)
			result, err = driver.Check(ctx, target, opts)
		}
	}
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	tracer := trace.FromContext(ctx)
	renderSpan := trace.Begin(tracer, trace.ScopeDriver, "render", trace.CurrentSpan(ctx).SpanID)
	err = render(out, cf, result, colored, os.Args[1:])
	renderSpan.End(cf.format)
	if err != nil {
		return fmt.Errorf("failed to format diagnostics: %w", err)
	}

	if result.HasErrors() {
		return &exitError{code: exitFindings}
	}
	return nil
}

func render(out io.Writer, cf checkFlags, result *driver.Result, colored bool, argv []string) error {
	diags := result.Diagnostics()
	switch cf.format {
	case "pretty":
		diagfmt.Pretty(out, diags, result.FileSet, diagfmt.PrettyOpts{
			Color:     colored,
			PathMode:  cf.pathMode,
			ShowNotes: cf.withNotes,
			Summary:   !cf.quiet,
		})
		return nil
	case "short":
		return diagfmt.Short(out, diags, result.FileSet, cf.withNotes)
	case "json":
		return diagfmt.JSON(out, diags, result.FileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         cf.pathMode,
			IncludeNotes:     cf.withNotes,
		})
	case "sarif":
		return diagfmt.Sarif(out, diags, result.FileSet, diagfmt.SarifRunMeta{
			ToolName:       "fwlint",
			ToolVersion:    version.Version,
			InvocationArgs: argv,
			PathMode:       cf.pathMode,
		})
	}
	return fmt.Errorf("unknown format: %s", cf.format)
}
