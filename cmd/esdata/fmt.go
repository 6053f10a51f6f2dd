package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"esdata/internal/driver"
)

func newFmtCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fmt [flags] <path> [path...]",
		Short: "Rewrite data files in canonical form",
		Long: `Fmt rewrites data files with tab indentation, every token quoted and
roots separated by blank lines. Files with lexical errors are left untouched.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runFmt(cmd, args)
		},
	}
	cmd.Flags().Bool("check", false, "check if files are properly formatted")
	cmd.Flags().String("format", "text", "output format (text|json)")
	cmd.Flags().Bool("stdout", false, "print formatted files to stdout instead of rewriting them")
	cmd.Flags().String("ext", "", "data file extension (default txt)")
	return cmd
}

func (a *app) runFmt(cmd *cobra.Command, args []string) error {
	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return err
	}
	outputFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	writeToStdout, err := cmd.Flags().GetBool("stdout")
	if err != nil {
		return err
	}
	ext, err := cmd.Flags().GetString("ext")
	if err != nil {
		return err
	}
	if ext == "" {
		ext = a.config.Read.Extension
	}

	if writeToStdout && check {
		return errors.New("fmt: --stdout cannot be used with --check")
	}
	if writeToStdout && outputFormat != "text" {
		return errors.New("fmt: --stdout is only supported with text output")
	}

	results, err := driver.FormatPaths(cmd.Context(), args, driver.FormatOptions{
		Check:     check,
		Stdout:    writeToStdout,
		Extension: ext,
	})
	if err != nil {
		return err
	}

	out, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	var hasErrors, hasChanges bool
	switch outputFormat {
	case "text":
		hasErrors, hasChanges, err = renderFmtText(out, stderr, results, check, writeToStdout, a.quiet)
	case "json":
		err = renderFmtJSON(out, results, check)
		for _, res := range results {
			hasErrors = hasErrors || res.Err != nil
			hasChanges = hasChanges || res.Changed
		}
	default:
		return fmt.Errorf("fmt: unsupported output format %q", outputFormat)
	}
	if err != nil {
		return err
	}

	if hasErrors {
		return errors.New("fmt: failed to format some files")
	}
	if check && hasChanges {
		return errors.New("fmt: formatting changes required")
	}
	return nil
}

func renderFmtText(out, stderr io.Writer, results []driver.FormatResult, check, toStdout, quiet bool) (hasErrors, hasChanges bool, err error) {
	for _, res := range results {
		if res.Err != nil {
			hasErrors = true
			fmt.Fprintf(stderr, "fmt: %s: %v\n", res.Path, res.Err)
			continue
		}
		hasChanges = hasChanges || res.Changed

		switch {
		case toStdout:
			_, err = out.Write(res.Formatted)
		case check && res.Changed && !quiet:
			_, err = fmt.Fprintln(out, res.Path)
		case !check && res.Changed && !quiet:
			_, err = fmt.Fprintf(out, "reformatted %s\n", res.Path)
		}
		if err != nil {
			return hasErrors, hasChanges, err
		}
	}
	return hasErrors, hasChanges, nil
}

func renderFmtJSON(out io.Writer, results []driver.FormatResult, check bool) error {
	type jsonResult struct {
		Path     string `json:"path"`
		Changed  bool   `json:"changed"`
		Error    string `json:"error,omitempty"`
		CheckRun bool   `json:"check"`
	}

	payload := make([]jsonResult, 0, len(results))
	for _, res := range results {
		jr := jsonResult{Path: res.Path, Changed: res.Changed, CheckRun: check}
		if res.Err != nil {
			jr.Error = res.Err.Error()
		}
		payload = append(payload, jr)
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
