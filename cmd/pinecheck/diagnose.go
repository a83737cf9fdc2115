package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"pinecheck/internal/diag"
	"pinecheck/internal/diagfmt"
	"pinecheck/internal/driver"
	"pinecheck/internal/observ"
	"pinecheck/internal/source"
	"pinecheck/internal/version"
)

var diagCmd = &cobra.Command{
	Use:   "diag [flags] [file.pine|directory ...]",
	Short: "Run diagnostics on Pine Script files",
	Long: `Run lexical, syntactic and semantic checks on a file or on every script
under the given directories. Without arguments the [files].include entries of
pinecheck.toml are analyzed.`,
	RunE: runDiagnose,
}

func init() {
	diagCmd.Flags().String("format", "pretty", "output format (pretty|json|sarif|short)")
	diagCmd.Flags().Bool("no-warnings", false, "ignore warnings in diagnostics")
	diagCmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	diagCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	diagCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	diagCmd.Flags().String("path-mode", "auto", "how file paths are printed (auto|absolute|relative|basename)")
	diagCmd.Flags().Bool("disk-cache", false, "cache per-file diagnostics on disk")
	diagCmd.Flags().String("ui", "auto", "progress UI for directories (auto|on|off)")
}

type diagOutput struct {
	format    string
	withNotes bool
	pathMode  diagfmt.PathMode
	color     bool
	args      []string
}

// runDiagnose executes the "diag" command. Files and directories may be
// mixed; a single regular file is analyzed directly, anything else goes
// through the parallel directory driver. It returns errProblemsFound when
// any error-severity diagnostic was reported.
func runDiagnose(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	opts, err := cfg.driverOptions()
	if err != nil {
		return err
	}

	out := diagOutput{args: os.Args}
	if out.format, err = cmd.Flags().GetString("format"); err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch out.format {
	case "pretty", "json", "sarif", "short":
	default:
		return fmt.Errorf("unknown format: %s", out.format)
	}
	if out.withNotes, err = cmd.Flags().GetBool("with-notes"); err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	pathModeStr, err := cmd.Flags().GetString("path-mode")
	if err != nil {
		return fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	out.pathMode = diagfmt.ParsePathMode(pathModeStr)
	if out.color, err = useColor(cmd, os.Stdout); err != nil {
		return err
	}

	if opts.Jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	diskCache, err := cmd.Flags().GetBool("disk-cache")
	if err != nil {
		return fmt.Errorf("failed to get disk-cache flag: %w", err)
	}
	if diskCache {
		if opts.Cache, err = driver.OpenDiskCache("pinecheck"); err != nil {
			return fmt.Errorf("failed to open disk cache: %w", err)
		}
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	roots := args
	if len(roots) == 0 {
		roots = cfg.manifest.IncludeDirs()
	}

	if len(roots) == 1 {
		st, err := os.Stat(roots[0])
		if err != nil {
			return fmt.Errorf("failed to stat path: %w", err)
		}
		if !st.IsDir() {
			return diagnoseSingle(cmd, roots[0], opts, out)
		}
	}

	files, err := driver.ListFiles(roots, opts.Extensions)
	if err != nil {
		return fmt.Errorf("failed to list files: %w", err)
	}
	var (
		fs      *source.FileSet
		results []driver.DiagnoseDirResult
	)
	if !quiet && shouldUseTUI(mode) && len(files) > 1 {
		fs, results, err = runDirWithUI(cmd.Context(), "pinecheck diag", files, roots, opts)
	} else {
		fs, results, err = driver.DiagnoseDir(cmd.Context(), roots, opts)
	}
	if err != nil {
		return fmt.Errorf("diagnosis failed: %w", err)
	}

	merged := driver.MergeResults(results)
	if err := writeDiagnostics(cmd.OutOrStdout(), merged, fs, out); err != nil {
		return err
	}
	if opts.EnableTimings && !quiet {
		reports := make([]observ.Report, 0, len(results))
		for _, r := range results {
			if r.Timing != nil {
				reports = append(reports, *r.Timing)
			}
		}
		fmt.Fprintln(cmd.ErrOrStderr(), observ.Merge(reports...).Summary())
	}
	if !quiet && out.format == "pretty" {
		printSummary(cmd.ErrOrStderr(), len(results), merged)
	}
	if merged.HasErrors() {
		return errProblemsFound
	}
	return nil
}

func diagnoseSingle(cmd *cobra.Command, path string, opts driver.Options, out diagOutput) error {
	result, err := driver.Diagnose(cmd.Context(), path, opts)
	if err != nil {
		return fmt.Errorf("diagnosis failed: %w", err)
	}
	if err := writeDiagnostics(cmd.OutOrStdout(), result.Bag, result.FileSet, out); err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		return errProblemsFound
	}
	return nil
}

func writeDiagnostics(w io.Writer, bag *diag.Bag, fs *source.FileSet, out diagOutput) error {
	switch out.format {
	case "pretty":
		diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
			Color:     out.color,
			Context:   2,
			PathMode:  out.pathMode,
			ShowNotes: out.withNotes,
		})
	case "short":
		diagfmt.Short(w, bag, fs, out.pathMode)
	case "json":
		if err := diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{PathMode: out.pathMode, IncludeNotes: out.withNotes}); err != nil {
			return fmt.Errorf("failed to format diagnostics: %w", err)
		}
	case "sarif":
		meta := diagfmt.SarifRunMeta{
			ToolName:       "pinecheck",
			ToolVersion:    version.Version,
			InvocationArgs: out.args,
		}
		if err := diagfmt.Sarif(w, bag, fs, meta); err != nil {
			return fmt.Errorf("failed to format diagnostics: %w", err)
		}
	}
	return nil
}

// printSummary prints "N files: E errors, W warnings" after pretty output.
func printSummary(w io.Writer, files int, bag *diag.Bag) {
	errs, warns := bag.Count(diag.SevError), bag.Count(diag.SevWarning)
	fmt.Fprintf(w, "%d %s: %d %s, %d %s\n",
		files, plural(files, "file"), errs, plural(errs, "error"), warns, plural(warns, "warning"))
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// jsonIndent writes v as indented JSON.
func jsonIndent(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
