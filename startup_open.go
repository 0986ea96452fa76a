package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/olivier-w/siderun/internal/config"
	"github.com/olivier-w/siderun/internal/ui"
)

// loadSheetArg resolves a command-line or browser selection to a sheet.
func loadSheetArg(arg string) (config.Sheet, error) {
	if arg == ui.BuiltinDemo {
		return config.DefaultSheet(), nil
	}

	info, err := os.Stat(arg)
	if err != nil {
		return config.Sheet{}, err
	}
	if info.IsDir() {
		return config.Sheet{}, fmt.Errorf("%s is a directory", arg)
	}

	ext := strings.ToLower(filepath.Ext(arg))
	if !config.IsSheetExt(ext) {
		return config.Sheet{}, fmt.Errorf("unsupported format %s (supported: %s)", ext, config.SupportedExtsList())
	}
	return config.LoadSheet(arg)
}

func buildDemoModel(arg string) (ui.Model, error) {
	sheet, err := loadSheetArg(arg)
	if err != nil {
		return ui.Model{}, err
	}
	return ui.New(sheet, demoOptions()), nil
}
