package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"risp/internal/driver"
	"risp/internal/source"
	"risp/internal/ui"
)

type checkOutcome struct {
	results []driver.FileResult
	err     error
}

func runCheckWithUI(ctx context.Context, title string, fileSet *source.FileSet, files []string, opts driver.DirOptions) ([]driver.FileResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.ParseFiles(ctx, fileSet, files, optsCopy)
		outcomeCh <- checkOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	if uiErr != nil {
		// модель больше не читает канал, дочитываем сами
		for range events {
		}
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
