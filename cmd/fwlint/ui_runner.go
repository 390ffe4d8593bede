package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"fwlint/internal/driver"
	"fwlint/internal/ui"
)

type checkOutcome struct {
	result *driver.Result
	err    error
}

// runCheckDirWithUI checks dir while a Bubble Tea view shows per-file progress.
func runCheckDirWithUI(ctx context.Context, dir string, opts driver.Options) (*driver.Result, error) {
	files, err := driver.ListJSFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	if len(files) == 0 {
		return driver.CheckDir(ctx, dir, opts)
	}

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		runOpts := opts
		runOpts.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.CheckDir(ctx, dir, runOpts)
		outcomeCh <- checkOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("Checking "+dir, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr), tea.WithContext(ctx))
	_, uiErr := program.Run()
	if uiErr != nil {
		// UI закрылся раньше: дочитываем события, чтобы не заблокировать проверку
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		return outcome.result, fmt.Errorf("progress ui: %w", uiErr)
	}
	return outcome.result, outcome.err
}
