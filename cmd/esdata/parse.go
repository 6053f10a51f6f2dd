package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"esdata/internal/diagfmt"
)

func newParseCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] <file.txt|directory>",
		Short: "Parse data files and print the node forest",
		Long: `Parse reads a data file, or every data file below a directory, and prints
the resulting nodes. Parse errors are rendered to stderr.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runParse(cmd, args[0])
		},
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|tree|json|yaml)")
	addReadFlags(cmd)
	return cmd
}

func (a *app) runParse(cmd *cobra.Command, path string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "tree", "json", "yaml":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	folder, err := a.readFolder(cmd, path)
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}

	failed, err := reportFolder(cmd.ErrOrStderr(), folder)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	roots := folder.Roots()
	switch format {
	case "tree":
		err = diagfmt.FormatTree(out, folder.Data, roots)
	case "json":
		err = diagfmt.FormatTreeJSON(out, folder.Data, roots)
	case "yaml":
		err = diagfmt.FormatTreeYAML(out, folder.Data, roots)
	default:
		err = folder.Data.WriteRootNodes(out, roots)
	}
	if err != nil {
		return err
	}
	if failed {
		return errSilent
	}
	return nil
}
