package lighting

import (
	"sort"
	"strings"
)

// SubLight is one base-type light inside a custom light type.
// Parameters uses the same syntax as a normal annotation, without the type keyword.
type SubLight struct {
	BaseType   LightType
	Parameters string
}

// Registry maps custom light type names to the base lights they expand to.
// Names are case-insensitive. A nil *Registry is valid and holds no custom types;
// the zero value is ready to use.
type Registry struct {
	types map[string][]SubLight
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{types: make(map[string][]SubLight)}
}

// Register declares a custom type. Sub-lights with an unknown base type are
// dropped; the type is only registered if at least one sub-light remains.
// Returns the number of sub-lights kept.
func (r *Registry) Register(name string, lights []SubLight) int {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return 0
	}

	kept := make([]SubLight, 0, len(lights))
	for _, l := range lights {
		if l.BaseType == TypeUnknown {
			continue
		}
		kept = append(kept, SubLight{BaseType: l.BaseType, Parameters: strings.TrimSpace(l.Parameters)})
	}
	if len(kept) == 0 {
		return 0
	}

	if r.types == nil {
		r.types = make(map[string][]SubLight)
	}
	r.types[key] = kept
	return len(kept)
}

// Lookup returns the sub-lights of a custom type.
func (r *Registry) Lookup(name string) ([]SubLight, bool) {
	if r == nil {
		return nil, false
	}
	lights, ok := r.types[strings.ToLower(name)]
	return lights, ok
}

// Names returns the registered custom type names in sorted order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
