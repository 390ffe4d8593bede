package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fwlint/internal/ast"
	"fwlint/internal/diagfmt"
	"fwlint/internal/parser"
	"fwlint/internal/source"
)

var treeCmd = &cobra.Command{
	Use:   "tree [flags] <file.js>",
	Short: "Print the syntax tree fwlint builds for a file",
	Long:  `Print the syntax tree the rules see. Useful when a rule does not fire where you expect it to.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTree,
}

func init() {
	treeCmd.Flags().Int("depth", 0, "maximum depth to print (0 = unlimited)")
	treeCmd.Flags().Bool("text", false, "show the source text of every node")
}

func runTree(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic(cmd)

	depth, err := cmd.Flags().GetInt("depth")
	if err != nil {
		return fmt.Errorf("failed to get depth flag: %w", err)
	}
	showText, err := cmd.Flags().GetBool("text")
	if err != nil {
		return fmt.Errorf("failed to get text flag: %w", err)
	}

	fs := source.NewFileSet()
	id, err := fs.Load(args[0])
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", args[0], err)
	}
	res := parser.ParseFile(cmd.Context(), fs, id, parser.Options{})

	if err := ast.Dump(cmd.OutOrStdout(), res.Tree.Root, ast.DumpOptions{MaxDepth: depth, ShowText: showText}); err != nil {
		return err
	}

	// синтаксические ошибки печатаем после дерева: оно частичное
	if res.Bag.Len() > 0 {
		colored, err := useColor(cmd)
		if err != nil {
			return err
		}
		diagfmt.Pretty(os.Stderr, res.Bag.Items(), fs, diagfmt.PrettyOpts{Color: colored})
		return &exitError{code: exitFindings}
	}
	return nil
}
