package project

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"fwlint/internal/diag"
	"fwlint/internal/rules"
)

var (
	// ErrUnknownRule is returned when the config names a rule the catalogue lacks.
	ErrUnknownRule = rules.ErrUnknownRule
	// ErrInvalidSeverity is returned for a [severity] value other than info, warning or error.
	ErrInvalidSeverity = errors.New("invalid severity")
	// ErrUnknownKey is returned for keys fwlint does not understand.
	ErrUnknownKey = errors.New("unknown configuration key")
)

// Config is the decoded fwlint.toml.
type Config struct {
	Path  string `toml:"-"`
	Check struct {
		Disable          []string `toml:"disable"`
		WarningsAsErrors bool     `toml:"warnings-as-errors"`
		MaxDiagnostics   int      `toml:"max-diagnostics"`
		ParallelRules    bool     `toml:"parallel-rules"`
		Jobs             int      `toml:"jobs"`
		Cache            bool     `toml:"cache"`
	} `toml:"check"`
	Severity map[string]string `toml:"severity"`

	meta toml.MetaData
}

// IsDefined reports whether the file set the dotted key explicitly; flags use
// it to tell "false in the file" from "absent".
func (c *Config) IsDefined(key ...string) bool {
	if c == nil {
		return false
	}
	return c.meta.IsDefined(key...)
}

// Severities returns the [severity] overrides keyed by rule name.
func (c *Config) Severities() (map[string]diag.Severity, error) {
	if c == nil || len(c.Severity) == 0 {
		return nil, nil
	}
	out := make(map[string]diag.Severity, len(c.Severity))
	for name, raw := range c.Severity {
		sev, err := diag.ParseSeverity(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: [severity] %s: %w: %q", c.Path, name, ErrInvalidSeverity, raw)
		}
		out[name] = sev
	}
	return out, nil
}

// LoadConfig parses and validates a fwlint.toml file.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	cfg.Path = path
	cfg.meta = meta
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DecodeConfig parses config text; path is used only in error messages.
func DecodeConfig(path, text string) (*Config, error) {
	var cfg Config
	meta, err := toml.Decode(text, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	cfg.Path = path
	cfg.meta = meta
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if undecoded := c.meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("%s: %w: %s", c.Path, ErrUnknownKey, strings.Join(keys, ", "))
	}
	known := rules.Names()
	for _, name := range c.Check.Disable {
		if !slices.Contains(known, name) {
			return fmt.Errorf("%s: [check].disable: %w %q", c.Path, ErrUnknownRule, name)
		}
	}
	names := make([]string, 0, len(c.Severity))
	for name := range c.Severity {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		if !slices.Contains(known, name) {
			return fmt.Errorf("%s: [severity]: %w %q", c.Path, ErrUnknownRule, name)
		}
	}
	if c.Check.MaxDiagnostics < 0 {
		return fmt.Errorf("%s: [check].max-diagnostics must not be negative", c.Path)
	}
	if c.Check.Jobs < 0 {
		return fmt.Errorf("%s: [check].jobs must not be negative", c.Path)
	}
	_, err := c.Severities()
	return err
}

// Template is written by `fwlint init`.
const Template = `# fwlint configuration
[check]
# rules to skip, see ` + "`fwlint rules`" + `
disable = []
warnings-as-errors = false
# 0 means unlimited
max-diagnostics = 0
parallel-rules = false

[severity]
# external-script = "error"
`
