package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pinecheck/internal/cst"
	"pinecheck/internal/diagfmt"
	"pinecheck/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.pine",
	Short: "Print the concrete syntax tree of a Pine Script file",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "tree", "output format (tree|sexpr|json)")
	parseCmd.Flags().Bool("anonymous", false, "include punctuation and keyword nodes")
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	anonymous, err := cmd.Flags().GetBool("anonymous")
	if err != nil {
		return fmt.Errorf("failed to get anonymous flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	result, err := driver.Parse(args[0], maxDiagnostics)
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}

	if result.Bag.Len() > 0 {
		color, err := useColor(cmd, os.Stderr)
		if err != nil {
			return err
		}
		result.Bag.Sort()
		diagfmt.Pretty(cmd.ErrOrStderr(), result.Bag, result.FileSet, diagfmt.PrettyOpts{Color: color, Context: 1})
	}

	out := cmd.OutOrStdout()
	switch format {
	case "tree":
		return result.Tree.Print(out, cst.PrintOptions{Anonymous: anonymous})
	case "sexpr":
		_, err = fmt.Fprintln(out, result.Tree.Root.SExpr())
		return err
	case "json":
		return result.Tree.WriteJSON(out, anonymous)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
