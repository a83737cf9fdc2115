package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pinecheck/internal/builtins"
)

var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Inspect and compile built-in function definitions",
}

var corpusCompileCmd = &cobra.Command{
	Use:   "compile <definitions.json> <out.mp>",
	Short: "Compile a JSON definitions file into a msgpack snapshot",
	Args:  cobra.ExactArgs(2),
	RunE:  runCorpusCompile,
}

var corpusDumpCmd = &cobra.Command{
	Use:   "dump [file]",
	Short: "Print a corpus (the embedded one by default) as JSON",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCorpusDump,
}

func init() {
	corpusCmd.AddCommand(corpusCompileCmd)
	corpusCmd.AddCommand(corpusDumpCmd)
	corpusDumpCmd.Flags().Bool("digest", false, "print only the corpus digest")
}

func runCorpusCompile(cmd *cobra.Command, args []string) (err error) {
	corpus, err := builtins.Load(args[0])
	if err != nil {
		return err
	}
	f, err := os.Create(args[1])
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", args[1], err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	if err := corpus.WriteCompiled(f); err != nil {
		return err
	}
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	if !quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "compiled %d functions into %s\n", corpus.Len(), args[1])
	}
	return nil
}

func runCorpusDump(cmd *cobra.Command, args []string) error {
	corpus := builtins.Default()
	if len(args) == 1 {
		var err error
		if corpus, err = builtins.Load(args[0]); err != nil {
			return err
		}
	}
	digestOnly, err := cmd.Flags().GetBool("digest")
	if err != nil {
		return fmt.Errorf("failed to get digest flag: %w", err)
	}
	if digestOnly {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), corpus.Digest())
		return err
	}
	return corpus.WriteJSON(cmd.OutOrStdout())
}
