package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"pinecheck/internal/diag"
	"pinecheck/internal/diagfmt"
	"pinecheck/internal/project"
	"pinecheck/internal/source"
)

func newFlagCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().Int("max-diagnostics", diag.DefaultMax, "")
	cmd.Flags().String("corpus", "", "")
	cmd.Flags().Bool("timings", false, "")
	cmd.Flags().Bool("no-warnings", false, "")
	cmd.Flags().Bool("warnings-as-errors", false, "")
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	return cmd
}

func TestReadUIMode(t *testing.T) {
	cases := []struct {
		in      string
		want    uiMode
		wantErr bool
	}{
		{"", uiModeAuto, false},
		{"AUTO", uiModeAuto, false},
		{" on ", uiModeOn, false},
		{"off", uiModeOff, false},
		{"maybe", "", true},
	}
	for _, tc := range cases {
		got, err := readUIMode(tc.in)
		if (err != nil) != tc.wantErr {
			t.Fatalf("readUIMode(%q) error = %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("readUIMode(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestResolveConfigWithoutManifest(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := resolveConfig(newFlagCmd(t))
	if err != nil {
		t.Fatalf("resolveConfig: %v", err)
	}
	if cfg.fromManifest {
		t.Fatalf("no manifest expected")
	}
	if cfg.maxDiagnostics != diag.DefaultMax || cfg.corpusPath != "" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestResolveConfigManifestAndOverrides(t *testing.T) {
	root := t.TempDir()
	manifest := `[analysis]
max_diagnostics = 7
no_warnings = true
corpus = "defs.json"
`
	if err := os.WriteFile(filepath.Join(root, project.ManifestName), []byte(manifest), 0o600); err != nil {
		t.Fatal(err)
	}
	sub := filepath.Join(root, "scripts")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	t.Chdir(sub)

	cfg, err := resolveConfig(newFlagCmd(t))
	if err != nil {
		t.Fatalf("resolveConfig: %v", err)
	}
	if !cfg.fromManifest || cfg.maxDiagnostics != 7 || !cfg.noWarnings {
		t.Fatalf("manifest values not applied: %+v", cfg)
	}
	if want := filepath.Join(root, "defs.json"); cfg.corpusPath != want {
		t.Fatalf("corpusPath = %q, want %q", cfg.corpusPath, want)
	}

	cfg, err = resolveConfig(newFlagCmd(t, "--max-diagnostics", "3", "--no-warnings=false"))
	if err != nil {
		t.Fatalf("resolveConfig: %v", err)
	}
	if cfg.maxDiagnostics != 3 || cfg.noWarnings {
		t.Fatalf("explicit flags must win: %+v", cfg)
	}

	if _, err := resolveConfig(newFlagCmd(t, "--warnings-as-errors")); err == nil {
		t.Fatalf("no_warnings from manifest plus --warnings-as-errors must be rejected")
	}
}

func TestResolveConfigRejectsBadCap(t *testing.T) {
	t.Chdir(t.TempDir())
	if _, err := resolveConfig(newFlagCmd(t, "--max-diagnostics", "0")); err == nil {
		t.Fatalf("expected an error for a zero cap")
	}
}

func TestWriteDiagnosticsShort(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.pine", []byte("foo()\n"))
	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.SemaUndefinedFunction, source.Span{File: id, Start: 0, End: 3}, "Undefined function 'foo'"))

	var buf bytes.Buffer
	if err := writeDiagnostics(&buf, bag, fs, diagOutput{format: "short", pathMode: diagfmt.PathModeBasename}); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); !strings.HasPrefix(got, "a.pine:1:1: error: Undefined function 'foo' [SEM3011]") {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestPrintSummary(t *testing.T) {
	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevError, diag.SemaUndefinedFunction, source.Span{}, "e"))
	bag.Add(diag.New(diag.SevWarning, diag.SemaUnusedVariable, source.Span{}, "w"))
	bag.Add(diag.New(diag.SevWarning, diag.SemaUnusedVariable, source.Span{}, "w2"))

	var buf bytes.Buffer
	printSummary(&buf, 1, bag)
	if got := buf.String(); got != "1 file: 1 error, 2 warnings\n" {
		t.Fatalf("printSummary = %q", got)
	}
}

func TestInitWritesManifest(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "proj")
	cmd := &cobra.Command{Use: "init", RunE: runInit}
	cmd.Flags().Bool("force", false, "")
	cmd.PersistentFlags().Bool("quiet", true, "")
	var out bytes.Buffer
	cmd.SetOut(&out)

	if err := runInit(cmd, []string{dir}); err != nil {
		t.Fatalf("runInit: %v", err)
	}
	m, err := project.LoadManifest(filepath.Join(dir, project.ManifestName))
	if err != nil {
		t.Fatalf("written manifest does not load: %v", err)
	}
	if m.Analysis.MaxDiagnostics != diag.DefaultMax {
		t.Fatalf("unexpected manifest %+v", m)
	}
	if err := runInit(cmd, []string{dir}); err == nil {
		t.Fatalf("second init without --force must fail")
	}
}

func TestDiagCommandExitStatus(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "bad.pine")
	if err := os.WriteFile(path, []byte("foo()\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"diag", "--color", "off", "--format", "short", path})
	err := rootCmd.Execute()
	if !errors.Is(err, errProblemsFound) {
		t.Fatalf("Execute error = %v, want errProblemsFound", err)
	}
	if !strings.Contains(out.String(), "[SEM3011]") {
		t.Fatalf("missing diagnostic in %q", out.String())
	}
}

func TestVersionJSON(t *testing.T) {
	var out bytes.Buffer
	cmd := &cobra.Command{Use: "version"}
	cmd.SetOut(&out)
	if err := renderVersionJSON(cmd.OutOrStdout(), collectVersionInfo(), versionOptions{format: "json", showHash: true}); err != nil {
		t.Fatal(err)
	}
	var payload versionPayload
	if err := json.Unmarshal(out.Bytes(), &payload); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if payload.Tool != "pinecheck" || payload.Corpus == "" || payload.GitCommit != "unknown" {
		t.Fatalf("unexpected payload %+v", payload)
	}
}
