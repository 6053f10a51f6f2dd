package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"esdata/internal/observ"
)

type colorMode string

const (
	colorAuto colorMode = "auto"
	colorOn   colorMode = "on"
	colorOff  colorMode = "off"
)

func readColorMode(value string) (colorMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return colorAuto, nil
	case "on", "always":
		return colorOn, nil
	case "off", "never":
		return colorOff, nil
	default:
		return "", fmt.Errorf("invalid --color value %q (expected auto|on|off)", value)
	}
}

// app holds state shared by every command of one invocation.
type app struct {
	config  *projectConfig
	color   colorMode
	quiet   bool
	maxDiag int
	timer   *observ.Timer
	cleanup []func()
}

func (a *app) setup(cmd *cobra.Command) error {
	pf := cmd.Root().PersistentFlags()

	colorFlag, err := pf.GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	if a.color, err = readColorMode(colorFlag); err != nil {
		return err
	}
	if a.quiet, err = pf.GetBool("quiet"); err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if a.maxDiag, err = pf.GetInt("max-diagnostics"); err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	timings, err := pf.GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	if timings {
		a.timer = observ.NewTimer()
	}

	configPath, err := pf.GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	if a.config, err = loadConfig(configPath); err != nil {
		return err
	}

	stopTrace, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	a.cleanup = append(a.cleanup, stopTrace)

	stopProf, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	a.cleanup = append(a.cleanup, stopProf)
	return nil
}

// finish runs cleanups in reverse order and prints timings.
func (a *app) finish(stderr io.Writer) {
	for i := len(a.cleanup) - 1; i >= 0; i-- {
		a.cleanup[i]()
	}
	a.cleanup = nil
	if a.timer != nil && !a.quiet {
		fmt.Fprint(stderr, a.timer.Summary())
	}
}

// colorFor decides whether output written to w is colored.
func (a *app) colorFor(w io.Writer) bool {
	switch a.color {
	case colorOn:
		return true
	case colorOff:
		return false
	}
	return isTerminal(w)
}

// isTerminal проверяет, является ли writer терминалом
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
