package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"esdata/internal/driver"
	"esdata/internal/ui"
)

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "off":
		return uiModeOff, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

// addReadFlags registers the flags of commands that read a data folder.
func addReadFlags(cmd *cobra.Command) {
	cmd.Flags().Int("jobs", 0, "parsing workers (0=auto, 1=sequential)")
	cmd.Flags().String("ext", "", "data file extension (default txt)")
	cmd.Flags().Bool("cache", false, "reuse parsed files from the on-disk cache")
	cmd.Flags().String("ui", "auto", "progress view while reading (auto|on|off)")
}

// readOptions merges esdata.toml with the flags of cmd.
func (a *app) readOptions(cmd *cobra.Command) (driver.Options, error) {
	opts, err := a.config.readOptions()
	if err != nil {
		return driver.Options{}, err
	}
	flags := cmd.Flags()

	if flags.Changed("jobs") {
		if opts.Jobs, err = flags.GetInt("jobs"); err != nil {
			return driver.Options{}, fmt.Errorf("failed to get jobs flag: %w", err)
		}
	}
	if flags.Changed("ext") {
		if opts.Extension, err = flags.GetString("ext"); err != nil {
			return driver.Options{}, fmt.Errorf("failed to get ext flag: %w", err)
		}
	}
	if flags.Changed("cache") {
		useCache, err := flags.GetBool("cache")
		if err != nil {
			return driver.Options{}, fmt.Errorf("failed to get cache flag: %w", err)
		}
		switch {
		case !useCache:
			opts.Cache = nil
		case opts.Cache == nil:
			if opts.Cache, err = driver.OpenDiskCache("esdata"); err != nil {
				return driver.Options{}, fmt.Errorf("open parse cache: %w", err)
			}
		}
	}

	opts.Palette = opts.Palette.WithColor(a.colorFor(cmd.ErrOrStderr()))
	opts.MaxDiagnostics = a.maxDiag
	opts.Timer = a.timer
	return opts, nil
}

// readFolder reads path with the options of cmd, drawing progress on
// stderr when it is a terminal.
func (a *app) readFolder(cmd *cobra.Command, path string) (*driver.Folder, error) {
	opts, err := a.readOptions(cmd)
	if err != nil {
		return nil, err
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return nil, fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return nil, err
	}

	stderr := cmd.ErrOrStderr()
	useUI := mode == uiModeOn || (mode == uiModeAuto && !a.quiet && isTerminal(stderr))
	if !useUI {
		return driver.ReadFolder(cmd.Context(), path, opts)
	}

	files, err := driver.ListFiles(path, opts.Extension)
	if err != nil {
		return nil, err
	}
	var folder *driver.Folder
	err = ui.RunProgress(stderr, "reading "+path, files, func(sink driver.EventSink) error {
		opts.OnEvent = sink
		var readErr error
		folder, readErr = driver.ReadFolder(cmd.Context(), path, opts)
		return readErr
	})
	return folder, err
}

// reportFolder prints load failures and rendered parse errors to w and
// reports whether there were any.
func reportFolder(w io.Writer, f *driver.Folder) (bool, error) {
	failed := false
	for _, res := range f.Files {
		if res.LoadErr != nil {
			failed = true
			if _, err := fmt.Fprintf(w, "failed to load %s: %v\n", res.Path, res.LoadErr); err != nil {
				return failed, err
			}
		}
	}
	if err := f.Reports.Flush(w); err != nil {
		return failed, err
	}
	return failed || f.ErrorCount() > 0, nil
}
