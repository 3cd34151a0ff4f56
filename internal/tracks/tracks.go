// Package tracks loads the catalog of internship tracks from YAML.
package tracks

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/interntrack/interntrack/internal/skillgap"
)

//go:embed tracks.yaml
var defaultCatalog []byte

// catalogFile is the on-disk layout of a catalog.
type catalogFile struct {
	Tracks []skillgap.RoleRequirement `yaml:"tracks"`
}

// Default returns the built-in catalog.
func Default() ([]skillgap.RoleRequirement, error) {
	return Load(bytes.NewReader(defaultCatalog))
}

// LoadFile reads a catalog from a YAML file.
func LoadFile(path string) ([]skillgap.RoleRequirement, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	tracks, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tracks, nil
}

// Load parses and validates a catalog. Skills without a minimum level get
// skillgap.DefaultMinLevel.
func Load(r io.Reader) ([]skillgap.RoleRequirement, error) {
	var cf catalogFile
	if err := yaml.NewDecoder(r).Decode(&cf); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("catalog is empty")
		}
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	seen := make(map[string]bool, len(cf.Tracks))
	for i := range cf.Tracks {
		t := &cf.Tracks[i]
		t.ID = strings.TrimSpace(t.ID)
		if err := Validate(t); err != nil {
			return nil, fmt.Errorf("track %d: %w", i+1, err)
		}
		if seen[t.ID] {
			return nil, fmt.Errorf("duplicate track id %q", t.ID)
		}
		seen[t.ID] = true
	}
	return cf.Tracks, nil
}

// Validate checks a single track and fills in default skill levels.
func Validate(t *skillgap.RoleRequirement) error {
	if t.ID == "" {
		return fmt.Errorf("id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("%s: title is required", t.ID)
	}
	for j := range t.RequiredSkills {
		s := &t.RequiredSkills[j]
		if strings.TrimSpace(s.Name) == "" {
			return fmt.Errorf("%s: skill %d has no name", t.ID, j+1)
		}
		if s.MinLevel == 0 {
			s.MinLevel = skillgap.DefaultMinLevel
		}
		if s.MinLevel < 1 || s.MinLevel > 5 {
			return fmt.Errorf("%s: skill %s: minLevel %d out of range 1-5", t.ID, s.Name, s.MinLevel)
		}
	}
	return nil
}
