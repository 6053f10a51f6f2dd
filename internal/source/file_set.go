package source

import (
	"crypto/sha256"
	"os"
	"path/filepath"

	"golang.org/x/text/unicode/norm"
)

// FileSet owns the files of one run. Each Add gets a fresh FileID, even
// for a path seen before; Lookup returns the newest.
type FileSet struct {
	files  []File
	byPath map[string]FileID
	base   string
}

// NewFileSet returns an empty set whose relative paths start at the
// working directory.
func NewFileSet() *FileSet {
	return NewFileSetWithBase("")
}

// NewFileSetWithBase returns an empty set whose relative paths start at base.
func NewFileSetWithBase(base string) *FileSet {
	return &FileSet{byPath: make(map[string]FileID), base: base}
}

// BaseDir returns the base of relative paths.
func (s *FileSet) BaseDir() string {
	if s.base != "" {
		return s.base
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return ""
}

// Add stores content, already normalized, under path.
func (s *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	key := canonicalPath(path)
	id := FileID(toUint32(len(s.files), "file id"))
	s.files = append(s.files, File{
		ID:      id,
		Path:    key,
		Content: content,
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	})
	s.byPath[key] = id
	return id
}

// Load reads path from disk and adds its normalized content.
func (s *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- путь задаёт вызывающий
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	content, flags := Normalize(content)
	return s.Add(path, content, flags), nil
}

// AddVirtual adds content that did not come from disk.
func (s *FileSet) AddVirtual(name string, content []byte) FileID {
	content, flags := Normalize(content)
	return s.Add(name, content, flags|FileVirtual)
}

// Get returns the file for id, or nil.
func (s *FileSet) Get(id FileID) *File {
	if int(id) >= len(s.files) {
		return nil
	}
	return &s.files[id]
}

func (s *FileSet) Len() int { return len(s.files) }

// Lookup returns the newest FileID added under path.
func (s *FileSet) Lookup(path string) (FileID, bool) {
	id, ok := s.byPath[canonicalPath(path)]
	return id, ok
}

// Display renders the path of id in style, relative to BaseDir. Unknown
// ids give "".
func (s *FileSet) Display(id FileID, style PathStyle) string {
	f := s.Get(id)
	if f == nil {
		return ""
	}
	return f.Display(style, s.BaseDir())
}

// canonicalPath gives every spelling of a path one key: clean,
// slash-separated and NFC, so names match across platforms.
func canonicalPath(p string) string {
	return norm.NFC.String(filepath.ToSlash(filepath.Clean(p)))
}
