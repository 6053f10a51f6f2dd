package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"slices"

	"esdata/internal/data"
	"esdata/internal/diagfmt"
	"esdata/internal/parser"
	"esdata/internal/source"
)

// ErrParseErrors is returned for files that do not parse cleanly.
var ErrParseErrors = errors.New("parse errors present")

// ErrRoundTrip is returned when the rewritten text parses into another tree.
var ErrRoundTrip = errors.New("rewritten file does not parse back to the same tree")

// FormatOptions configures rewriting of data files.
type FormatOptions struct {
	Check     bool
	Stdout    bool
	Extension string
}

// FormatResult captures the result of formatting a single file.
type FormatResult struct {
	Path      string
	Changed   bool
	Err       error
	Formatted []byte
}

// FormatPaths rewrites the given files or directories in canonical form.
// When opts.Check is true, files are not modified; Changed indicates whether
// formatting would update the file contents. When opts.Stdout is true,
// formatted content is returned in the results without touching files on disk.
func FormatPaths(ctx context.Context, paths []string, opts FormatOptions) ([]FormatResult, error) {
	var files []string
	seen := make(map[string]struct{})
	for _, p := range paths {
		listed, err := ListFiles(p, opts.Extension)
		if err != nil {
			return nil, err
		}
		for _, f := range listed {
			if _, ok := seen[f]; ok {
				continue
			}
			seen[f] = struct{}{}
			files = append(files, f)
		}
	}
	if len(files) == 0 {
		return nil, errors.New("format: no data files found")
	}

	results := make([]FormatResult, 0, len(files))
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		result := FormatResult{Path: path}
		original, formatted, err := formatSingleFile(ctx, path)
		if err != nil {
			result.Err = err
			results = append(results, result)
			continue
		}
		result.Changed = !bytes.Equal(original, formatted)

		switch {
		case opts.Check:
		case opts.Stdout:
			result.Formatted = formatted
		case result.Changed:
			mode := os.FileMode(0o644)
			if info, statErr := os.Stat(path); statErr == nil {
				mode = info.Mode()
			}
			if err := os.WriteFile(path, formatted, mode.Perm()); err != nil {
				result.Err = err
			}
		}
		results = append(results, result)
	}
	return results, nil
}

// formatSingleFile returns the normalized original and its rewritten form.
func formatSingleFile(ctx context.Context, path string) (original, formatted []byte, err error) {
	fileSet := source.NewFileSet()
	id, err := fileSet.Load(path)
	if err != nil {
		return nil, nil, err
	}
	file := fileSet.Get(id)

	formatted, err = Rewrite(ctx, string(file.Content))
	if err != nil {
		return nil, nil, fmt.Errorf("format %s: %w", path, err)
	}
	return file.Content, formatted, nil
}

// Rewrite parses text and serializes it back in canonical form: one tab
// per nesting level, lexemes re-quoted, trees separated by blank lines.
// The result is parsed again and must yield the same tree.
func Rewrite(ctx context.Context, text string) ([]byte, error) {
	d := data.New()
	src, errs := parser.ParseSource(ctx, d, text, parser.Options{})
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %d", ErrParseErrors, len(errs))
	}

	roots := d.SourceRoots(src)
	var buf bytes.Buffer
	if err := d.WriteRootNodes(&buf, roots); err != nil {
		return nil, err
	}

	check := data.New()
	checkSrc, errs := parser.ParseSource(ctx, check, buf.String(), parser.Options{})
	if len(errs) > 0 || !sameShape(diagfmt.BuildTree(d, roots), diagfmt.BuildTree(check, check.SourceRoots(checkSrc))) {
		return nil, ErrRoundTrip
	}
	return buf.Bytes(), nil
}

// sameShape compares kinds, lexemes and children, ignoring line numbers.
func sameShape(a, b []diagfmt.TreeNode) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Kind != b[i].Kind || !slices.Equal(a[i].Tokens, b[i].Tokens) {
			return false
		}
		if !sameShape(a[i].Children, b[i].Children) {
			return false
		}
	}
	return true
}
