package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"pinecheck/internal/lsp"
	"pinecheck/internal/version"
)

var lspCmd = &cobra.Command{
	Use:   "lsp",
	Short: "Run the language server on stdin/stdout",
	Args:  cobra.NoArgs,
	RunE:  runLSP,
}

func init() {
	lspCmd.Flags().String("log-file", "", "write server logs to this file")
	lspCmd.Flags().CountP("verbose", "v", "log verbosity (repeat for more)")
}

func runLSP(cmd *cobra.Command, args []string) error {
	logFile, err := cmd.Flags().GetString("log-file")
	if err != nil {
		return fmt.Errorf("failed to get log-file flag: %w", err)
	}
	verbosity, err := cmd.Flags().GetCount("verbose")
	if err != nil {
		return fmt.Errorf("failed to get verbose flag: %w", err)
	}
	// stdout занят протоколом: логи только в файл
	var logPath *string
	if logFile != "" {
		logPath = &logFile
	} else {
		verbosity = 0
	}
	commonlog.Configure(verbosity, logPath)

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	corpus, err := cfg.loadCorpus()
	if err != nil {
		return err
	}
	server := lsp.NewServer(version.Version, lsp.Options{
		Corpus:         corpus,
		MaxDiagnostics: cfg.maxDiagnostics,
		IgnoreWarnings: cfg.noWarnings,
	})
	return server.RunStdio()
}
