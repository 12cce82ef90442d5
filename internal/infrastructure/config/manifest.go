package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/kestrelsoft/docstore/conversions"
	"github.com/kestrelsoft/docstore/internal/shared/typeindex"
)

// Manifest declares registry tweaks that are data rather than code: the
// built-in default converter pairs to suppress.
type Manifest struct {
	SkipDefaults []ManifestPair `yaml:"skip_defaults"`
}

// ManifestPair names one convertible pair by type name.
type ManifestPair struct {
	Source string `yaml:"source"`
	Target string `yaml:"target"`
}

// LoadManifest reads and parses a registry manifest.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return ParseManifest(data)
}

// ParseManifest parses a registry manifest from YAML.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}

// SkipPairs resolves the named pairs against the type index.
func (m *Manifest) SkipPairs() ([]conversions.TypePair, error) {
	pairs := make([]conversions.TypePair, 0, len(m.SkipDefaults))
	for _, p := range m.SkipDefaults {
		source, ok := typeindex.Lookup(p.Source)
		if !ok {
			return nil, fmt.Errorf("manifest: unknown source type %q", p.Source)
		}
		target, ok := typeindex.Lookup(p.Target)
		if !ok {
			return nil, fmt.Errorf("manifest: unknown target type %q", p.Target)
		}
		pairs = append(pairs, conversions.PairOf(source, target))
	}
	return pairs, nil
}
