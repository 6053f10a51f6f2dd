package source

import (
	"os"
	"path/filepath"
)

// FileID indexes a FileSet. IDs are dense and start at 0.
type FileID uint32

// FileFlags records how a file reached the set and what Normalize changed.
type FileFlags uint8

const (
	FileVirtual FileFlags = 1 << iota // не с диска: тест, stdin
	FileHadBOM
	FileNormalizedCRLF
)

// File is one loaded data file.
type File struct {
	ID FileID
	// Path is slash-separated and NFC-normalized.
	Path    string
	Content []byte
	// Hash is the SHA-256 of Content; it keys the parse cache.
	Hash  [32]byte
	Flags FileFlags
}

// PathStyle selects how a file path is shown to the user.
type PathStyle uint8

const (
	// PathAuto keeps the stored path unless it is a long absolute one.
	PathAuto PathStyle = iota
	PathAbsolute
	PathRelative
	PathBase
)

var pathStyleNames = [...]string{
	PathAuto:     "auto",
	PathAbsolute: "absolute",
	PathRelative: "relative",
	PathBase:     "basename",
}

func (s PathStyle) String() string {
	if int(s) < len(pathStyleNames) {
		return pathStyleNames[s]
	}
	return "auto"
}

// absolute paths at least this long are shortened by PathAuto
const autoPathLimit = 40

// Display renders the path of f in style. PathRelative resolves against
// base, or the working directory when base is empty. Whenever a path
// cannot be resolved the stored one is returned.
func (f *File) Display(style PathStyle, base string) string {
	switch style {
	case PathAbsolute:
		if abs, err := filepath.Abs(f.Path); err == nil {
			return filepath.ToSlash(abs)
		}
	case PathRelative:
		if rel, ok := relativeTo(f.Path, base); ok {
			return rel
		}
	case PathBase:
		return filepath.Base(f.Path)
	case PathAuto:
		if filepath.IsAbs(f.Path) && len(f.Path) >= autoPathLimit {
			return filepath.Base(f.Path)
		}
	}
	return f.Path
}

func relativeTo(path, base string) (string, bool) {
	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", false
		}
		base = wd
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}
	absBase, err := filepath.Abs(base)
	if err != nil {
		return "", false
	}
	rel, err := filepath.Rel(absBase, absPath)
	if err != nil {
		return "", false
	}
	return filepath.ToSlash(rel), true
}
