package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gogpu/gg"
	"github.com/olivier-w/siderun/internal/siderun"
	"github.com/olivier-w/siderun/internal/ui"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "render" {
		os.Exit(runRender(os.Args[2:], os.Stdout, os.Stderr))
	}

	closeLog, err := setupLogging(os.Getenv("SIDERUN_LOG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	var model tea.Model
	if len(os.Args) < 2 {
		model = newStartupModel()
	} else {
		m, err := buildDemoModel(os.Args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		model = m
	}

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithReportFocus())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setupLogging routes debug logs to path. Logging stays off when path is
// empty, since the terminal belongs to the UI.
func setupLogging(path string) (func(), error) {
	if path == "" {
		return func() {}, nil
	}
	f, err := tea.LogToFile(path, "siderun")
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	l := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	siderun.SetLogger(l)
	gg.SetLogger(l)
	l.Info("siderun: logging enabled", "path", path)
	return func() {
		siderun.SetLogger(nil)
		gg.SetLogger(nil)
		_ = f.Close()
	}, nil
}

// envReducedMotion reports whether SIDERUN_REDUCED_MOTION asks for
// reduced motion.
func envReducedMotion() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("SIDERUN_REDUCED_MOTION"))) {
	case "1", "true", "yes", "reduce":
		return true
	}
	return false
}

func demoOptions() ui.Options {
	return ui.Options{ReducedMotion: envReducedMotion()}
}
