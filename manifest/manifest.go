// Package manifest loads project configuration from rowan.toml files.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Filename is the manifest file name looked for in project directories.
const Filename = "rowan.toml"

// Manifest is a parsed rowan.toml.
type Manifest struct {
	Project ProjectConfig `toml:"project"`
	Repl    ReplConfig    `toml:"repl"`
	Build   BuildConfig   `toml:"build"`
	VM      VMConfig      `toml:"vm"`

	// Dir is the directory the manifest was loaded from, not stored in
	// the file itself.
	Dir string `toml:"-"`
}

// ProjectConfig describes the project.
type ProjectConfig struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// ReplConfig configures the interactive session.
type ReplConfig struct {
	Prompt string `toml:"prompt"`
}

// BuildConfig configures compilation output and caching.
type BuildConfig struct {
	// Cache is the path of the SQLite compile cache, relative to Dir.
	// Empty disables caching.
	Cache string `toml:"cache"`
	// Output is the directory for .rnc artifacts, relative to Dir.
	Output string `toml:"output"`
}

// VMConfig configures execution.
type VMConfig struct {
	Trace bool `toml:"trace"`
}

// Default returns the manifest used when no rowan.toml is found.
func Default() *Manifest {
	return &Manifest{
		Repl:  ReplConfig{Prompt: ">> "},
		Build: BuildConfig{Output: "."},
		Dir:   ".",
	}
}

// Load reads and parses the manifest in dir.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, Filename)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: read %s: %w", path, err)
	}

	m := Default()
	if err := toml.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("manifest: parse %s: %w", path, err)
	}
	m.Dir = dir
	return m, nil
}

// FindAndLoad walks up from start looking for a rowan.toml. Returns the
// default manifest when none is found; errors are reserved for manifests
// that exist but cannot be parsed.
func FindAndLoad(start string) (*Manifest, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", start, err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, Filename)); err == nil {
			return Load(dir)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return Default(), nil
		}
		dir = parent
	}
}

// CachePath returns the absolute path of the compile cache, or "" when
// caching is disabled.
func (m *Manifest) CachePath() string {
	if m.Build.Cache == "" {
		return ""
	}
	if filepath.IsAbs(m.Build.Cache) {
		return m.Build.Cache
	}
	return filepath.Join(m.Dir, m.Build.Cache)
}
