// Package boilerplate holds the static, versioned manifest of files every
// generated application must contain.
package boilerplate

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed manifest.yaml
var manifestYAML []byte

// Entry is one required file with its canonical content.
type Entry struct {
	Path    string `yaml:"path"`
	Content string `yaml:"content"`
}

// Manifest is the required-file list consulted by the boilerplate validator
// and fixer.
type Manifest struct {
	Version int     `yaml:"version"`
	Files   []Entry `yaml:"files"`
}

var (
	loadOnce sync.Once
	manifest *Manifest
	loadErr  error
)

// Load parses the embedded manifest. The result is cached; the manifest is
// immutable at runtime.
func Load() (*Manifest, error) {
	loadOnce.Do(func() {
		var m Manifest
		if err := yaml.Unmarshal(manifestYAML, &m); err != nil {
			loadErr = fmt.Errorf("could not parse boilerplate manifest: %w", err)
			return
		}
		if len(m.Files) == 0 {
			loadErr = fmt.Errorf("boilerplate manifest has no files")
			return
		}
		manifest = &m
	})
	return manifest, loadErr
}

// RequiredPaths returns the paths of all required files in manifest order.
func (m *Manifest) RequiredPaths() []string {
	paths := make([]string, len(m.Files))
	for i, e := range m.Files {
		paths[i] = e.Path
	}
	return paths
}

// Lookup returns the canonical content for a required path.
func (m *Manifest) Lookup(path string) (string, bool) {
	for _, e := range m.Files {
		if e.Path == path {
			return e.Content, true
		}
	}
	return "", false
}
