package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"esdata/internal/diag"
	"esdata/internal/diagfmt"
)

func newDiagCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diag [flags] <file.txt|directory>",
		Short: "Check data files for lexical errors",
		Long:  `Run diagnostics on a data file or on every data file below a directory`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDiag(cmd, args[0])
		},
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|short|json)")
	cmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	cmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	cmd.Flags().Bool("no-warnings", false, "ignore warnings in diagnostics")
	addReadFlags(cmd)
	return cmd
}

// runDiag prints the diagnostics of every file in the chosen format and
// fails when any of them is an error.
func (a *app) runDiag(cmd *cobra.Command, path string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	noWarnings, err := cmd.Flags().GetBool("no-warnings")
	if err != nil {
		return fmt.Errorf("failed to get no-warnings flag: %w", err)
	}

	folder, err := a.readFolder(cmd, path)
	if err != nil {
		return fmt.Errorf("diagnosis failed: %w", err)
	}

	bag := folder.Diagnostics()
	if noWarnings {
		bag = bag.Filter(func(d diag.Diagnostic) bool { return d.Severity >= diag.SevError })
	}
	bag.Sort()
	bag.Dedup()

	pathMode := diagfmt.PathModeRelative
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}

	out := cmd.OutOrStdout()
	switch format {
	case "pretty":
		err = diagfmt.Pretty(out, bag, folder.FileSet, diagfmt.PrettyOpts{
			Color:     a.colorFor(out),
			PathMode:  pathMode,
			ShowNotes: withNotes,
			Trimmed:   a.config.Read.Trim,
			Max:       a.maxDiag,
		})
	case "short":
		if short := diag.FormatShortDiagnostics(bag.Items(), folder.FileSet, withNotes); short != "" {
			_, err = io.WriteString(out, short+"\n")
		}
	case "json":
		err = diagfmt.JSON(out, bag, folder.FileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			Max:              a.maxDiag,
			IncludeNotes:     withNotes,
		})
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}

	if bag.HasErrors() {
		if !a.quiet && format == "pretty" {
			fmt.Fprintf(cmd.ErrOrStderr(), "%d error(s) in %d file(s)\n", folder.ErrorCount(), len(folder.Files))
		}
		return errSilent
	}
	return nil
}
