package registry

import "errors"

// Errors returned by registry operations.
var (
	// ErrUnknownType indicates a block type is not registered.
	ErrUnknownType = errors.New("unknown block type")

	// ErrTypeAlreadyRegistered indicates a duplicate type registration.
	ErrTypeAlreadyRegistered = errors.New("block type already registered")
)

// Registry answers type-capability questions for the editing core.
// It is the seam to the host application's block-type catalog; the
// core never hard-codes knowledge about specific types.
type Registry interface {
	// IsContainer reports whether blocks of the given type may hold
	// children. Unknown types are not containers.
	IsContainer(blockType string) bool

	// CanContain reports whether a parent of parentType may hold a
	// child of childType. It returns ErrUnknownType when either type
	// is not registered.
	CanContain(parentType, childType string) (bool, error)

	// DefaultProperties returns the initial property map for a newly
	// created block of the given type. The returned map is owned by
	// the caller. Unknown types yield an empty map.
	DefaultProperties(blockType string) map[string]any
}

// TypeSpec describes one registered block type.
type TypeSpec struct {
	// Name is the type tag blocks carry.
	Name string `toml:"name"`

	// DisplayName is the human-readable name shown in palettes.
	DisplayName string `toml:"display_name"`

	// Container marks the type as able to hold children.
	Container bool `toml:"container"`

	// AllowedChildren restricts which child types a container accepts.
	// Empty means any registered type is accepted.
	AllowedChildren []string `toml:"allowed_children"`

	// Defaults is the initial property map for new blocks.
	Defaults map[string]any `toml:"defaults"`
}

// Static is a map-backed Registry populated up front. It is the
// implementation used by tests and the CLI; hosts with richer type
// systems supply their own Registry.
type Static struct {
	types map[string]TypeSpec
}

// NewStatic creates a registry from the given type specs.
// Duplicate names return ErrTypeAlreadyRegistered.
func NewStatic(specs ...TypeSpec) (*Static, error) {
	s := &Static{types: make(map[string]TypeSpec, len(specs))}
	for _, spec := range specs {
		if _, dup := s.types[spec.Name]; dup {
			return nil, ErrTypeAlreadyRegistered
		}
		s.types[spec.Name] = spec
	}
	return s, nil
}

// IsContainer implements Registry.
func (s *Static) IsContainer(blockType string) bool {
	spec, ok := s.types[blockType]
	return ok && spec.Container
}

// CanContain implements Registry.
func (s *Static) CanContain(parentType, childType string) (bool, error) {
	parent, ok := s.types[parentType]
	if !ok {
		return false, ErrUnknownType
	}
	if _, ok := s.types[childType]; !ok {
		return false, ErrUnknownType
	}
	if !parent.Container {
		return false, nil
	}
	if len(parent.AllowedChildren) == 0 {
		return true, nil
	}
	for _, allowed := range parent.AllowedChildren {
		if allowed == childType {
			return true, nil
		}
	}
	return false, nil
}

// DefaultProperties implements Registry.
func (s *Static) DefaultProperties(blockType string) map[string]any {
	props := make(map[string]any)
	if spec, ok := s.types[blockType]; ok {
		for k, v := range spec.Defaults {
			props[k] = v
		}
	}
	return props
}

// Types returns the registered type specs in unspecified order.
func (s *Static) Types() []TypeSpec {
	out := make([]TypeSpec, 0, len(s.types))
	for _, spec := range s.types {
		out = append(out, spec)
	}
	return out
}

// Lookup returns the spec for a type name.
func (s *Static) Lookup(blockType string) (TypeSpec, bool) {
	spec, ok := s.types[blockType]
	return spec, ok
}
