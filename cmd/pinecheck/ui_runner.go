package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"pinecheck/internal/driver"
	"pinecheck/internal/source"
	"pinecheck/internal/ui"
)

type dirOutcome struct {
	fileSet *source.FileSet
	results []driver.DiagnoseDirResult
	err     error
}

// runDirWithUI analyzes roots while a progress view renders the driver
// events on stderr.
func runDirWithUI(ctx context.Context, title string, files, roots []string, opts driver.Options) (*source.FileSet, []driver.DiagnoseDirResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan dirOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		fs, results, err := driver.DiagnoseDir(ctx, roots, optsCopy)
		outcomeCh <- dirOutcome{fileSet: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	// UI мог завершиться раньше (Ctrl+C): дочитываем события, чтобы воркеры не встали
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fileSet, outcome.results, uiErr
	}
	return outcome.fileSet, outcome.results, outcome.err
}
