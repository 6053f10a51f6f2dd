package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"esdata/internal/diagfmt"
	"esdata/internal/driver"
)

const configName = "esdata.toml"

// projectConfig is the content of esdata.toml. Flags override it.
type projectConfig struct {
	Path   string       `toml:"-"`
	Read   readConfig   `toml:"read"`
	Colors colorsConfig `toml:"colors"`
}

type readConfig struct {
	Extension string `toml:"extension"`
	Trim      string `toml:"trim"`
	Kind      string `toml:"kind"`
	Jobs      int    `toml:"jobs"`
	Cache     bool   `toml:"cache"`
	CacheDir  string `toml:"cache_dir"`
}

type colorsConfig struct {
	Message   string `toml:"message"`
	Note      string `toml:"note"`
	Divider   string `toml:"divider"`
	Trim      string `toml:"trim"`
	Highlight string `toml:"highlight"`
	Underline string `toml:"underline"`
}

func findConfig(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, configName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// loadConfig reads path, or the nearest esdata.toml when path is empty.
// No file found gives the zero config.
func loadConfig(path string) (*projectConfig, error) {
	if path == "" {
		found, ok, err := findConfig(".")
		if err != nil {
			return nil, err
		}
		if !ok {
			return &projectConfig{}, nil
		}
		path = found
	}

	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	if cfg.Read.Jobs < 0 {
		return nil, fmt.Errorf("%s: read.jobs must not be negative", path)
	}
	cfg.Path = path
	return &cfg, nil
}

// palette applies the [colors] overrides to the default palette.
func (c *projectConfig) palette() (diagfmt.Palette, error) {
	p := diagfmt.DefaultPalette()
	for _, role := range []struct {
		key   string
		value string
		dst   *diagfmt.Color
	}{
		{"message", c.Colors.Message, &p.Message},
		{"note", c.Colors.Note, &p.Note},
		{"divider", c.Colors.Divider, &p.Divider},
		{"trim", c.Colors.Trim, &p.Trim},
		{"highlight", c.Colors.Highlight, &p.Highlight},
		{"underline", c.Colors.Underline, &p.Underline},
	} {
		if role.value == "" {
			continue
		}
		col, err := diagfmt.ParseColor(role.value)
		if err != nil {
			return diagfmt.Palette{}, fmt.Errorf("%s: colors.%s: %w", c.Path, role.key, err)
		}
		*role.dst = col
	}
	return p, nil
}

// readOptions turns the [read] section into driver options.
func (c *projectConfig) readOptions() (driver.Options, error) {
	opts := driver.DefaultOptions()
	if c.Read.Extension != "" {
		opts.Extension = c.Read.Extension
	}
	if c.Read.Trim != "" {
		opts.Trimmed = c.Read.Trim
	}
	if c.Read.Kind != "" {
		opts.Kind = c.Read.Kind
	}
	opts.Jobs = c.Read.Jobs

	palette, err := c.palette()
	if err != nil {
		return driver.Options{}, err
	}
	opts.Palette = palette

	if c.Read.Cache {
		var cache *driver.DiskCache
		if c.Read.CacheDir != "" {
			cache, err = driver.OpenDiskCacheAt(c.Read.CacheDir)
		} else {
			cache, err = driver.OpenDiskCache("esdata")
		}
		if err != nil {
			return driver.Options{}, fmt.Errorf("open parse cache: %w", err)
		}
		opts.Cache = cache
	}
	return opts, nil
}
