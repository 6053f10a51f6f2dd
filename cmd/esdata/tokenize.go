package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"esdata/internal/diagfmt"
	"esdata/internal/driver"
)

func newTokenizeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] file.txt",
		Short: "Tokenize a data file",
		Long:  `Tokenize breaks a data file into Symbol, Indent and Newline tokens, reporting lexical errors in stream order`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTokenize(cmd, args[0])
		},
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func (a *app) runTokenize(cmd *cobra.Command, path string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}

	result, err := driver.Tokenize(path, a.maxDiag)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	// Выводим диагностику в stderr, если есть
	if result.Bag.Len() > 0 && !a.quiet {
		stderr := cmd.ErrOrStderr()
		opts := diagfmt.PrettyOpts{
			Color:     a.colorFor(stderr),
			ShowNotes: true,
		}
		if err := diagfmt.Pretty(stderr, result.Bag, result.FileSet, opts); err != nil {
			return err
		}
	}

	text := string(result.File.Content)
	if format == "json" {
		return diagfmt.FormatTokensJSON(cmd.OutOrStdout(), text, result.Items)
	}
	return diagfmt.FormatTokensPretty(cmd.OutOrStdout(), text, result.Items)
}
