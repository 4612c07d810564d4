package registry

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// tomlFile is the on-disk shape of a registry file:
//
//	[[types]]
//	name = "page"
//	display_name = "Page"
//	container = true
//	allowed_children = ["section", "paragraph"]
//
//	[types.defaults]
//	title = "Untitled"
type tomlFile struct {
	Types []TypeSpec `toml:"types"`
}

// LoadFile reads a Static registry from a TOML file.
func LoadFile(path string) (*Static, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading registry file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse builds a Static registry from TOML data.
func Parse(data []byte) (*Static, error) {
	var file tomlFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing registry: %w", err)
	}
	for _, spec := range file.Types {
		if spec.Name == "" {
			return nil, fmt.Errorf("parsing registry: type entry missing name")
		}
	}
	return NewStatic(file.Types...)
}
