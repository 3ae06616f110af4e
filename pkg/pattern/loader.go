package pattern

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile loads a pattern set from a YAML file. Fields absent from the
// file fall back to the built-in defaults, so an override file only needs
// to name the patterns it changes. The returned set is compiled.
func LoadFile(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading pattern file %s: %w", path, err)
	}

	s := Default()
	s.compiled = nil
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing pattern file %s: %w", path, err)
	}

	if err := s.Compile(); err != nil {
		return nil, fmt.Errorf("pattern file %s: %w", path, err)
	}

	return s, nil
}
