package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"fwlint/internal/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the rule catalogue",
	Args:  cobra.NoArgs,
	RunE:  runRules,
}

func init() {
	rulesCmd.Flags().String("format", "table", "output format (table|json|yaml)")
}

// ruleInfo is the serialized form of a catalogue entry.
type ruleInfo struct {
	Name     string   `json:"name" yaml:"name"`
	Title    string   `json:"title" yaml:"title"`
	Severity string   `json:"severity" yaml:"severity"`
	Codes    []string `json:"codes" yaml:"codes"`
	Help     string   `json:"help,omitempty" yaml:"help,omitempty"`
}

func catalogueInfo() []ruleInfo {
	cat := rules.Catalogue()
	out := make([]ruleInfo, len(cat))
	for i, r := range cat {
		codes := make([]string, len(r.Codes))
		for j, c := range r.Codes {
			codes[j] = c.ID()
		}
		out[i] = ruleInfo{
			Name:     r.Name,
			Title:    r.Title,
			Severity: strings.ToLower(r.Severity.String()),
			Codes:    codes,
			Help:     r.Help,
		}
	}
	return out
}

func runRules(cmd *cobra.Command, _ []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	return writeRules(cmd.OutOrStdout(), format)
}

var cellStyle = lipgloss.NewStyle().PaddingRight(2)

func writeRules(out io.Writer, format string) error {
	infos := catalogueInfo()
	switch format {
	case "table":
		t := table.New().
			Border(lipgloss.HiddenBorder()).
			BorderTop(false).
			BorderBottom(false).
			BorderLeft(false).
			BorderRight(false).
			BorderHeader(false).
			BorderColumn(false).
			StyleFunc(func(_, _ int) lipgloss.Style { return cellStyle }).
			Headers("NAME", "SEVERITY", "CODES", "TITLE")
		for _, r := range infos {
			t.Row(r.Name, r.Severity, strings.Join(r.Codes, ","), r.Title)
		}
		_, err := fmt.Fprintln(out, t.Render())
		return err
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(infos); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q (must be table, json or yaml)", format)
	}
}
