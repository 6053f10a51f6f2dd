package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"esdata/internal/diagfmt"
)

func newQueryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query [flags] <file.txt|directory> <key> [key...]",
		Short: "Print root nodes matching a keyword path",
		Long: `Query prints every root node whose first token is the first key, descending
through children whose first tokens match the remaining keys. For example
"query data ship attributes" prints the attributes block of every ship.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runQuery(cmd, args[0], args[1:])
		},
	}
	cmd.Flags().String("format", "text", "output format (text|tree)")
	cmd.Flags().Bool("count", false, "print only the number of matches")
	addReadFlags(cmd)
	return cmd
}

func (a *app) runQuery(cmd *cobra.Command, path string, keys []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "text" && format != "tree" {
		return fmt.Errorf("unknown format: %s", format)
	}
	count, err := cmd.Flags().GetBool("count")
	if err != nil {
		return fmt.Errorf("failed to get count flag: %w", err)
	}

	folder, err := a.readFolder(cmd, path)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}
	if !a.quiet {
		if _, err := reportFolder(cmd.ErrOrStderr(), folder); err != nil {
			return err
		}
	}

	matches := slices.Collect(folder.Data.Path(keys...))

	out := cmd.OutOrStdout()
	if count {
		_, err = fmt.Fprintln(out, len(matches))
		return err
	}
	if format == "tree" {
		return diagfmt.FormatTree(out, folder.Data, matches)
	}
	return folder.Data.WriteRootNodes(out, matches)
}
