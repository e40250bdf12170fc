package scenario

import (
	"fmt"
	"sort"
)

// Registry is an immutable set of scenarios keyed by name.
type Registry struct {
	byName map[string]Scenario
	names  []string
}

// NewRegistry validates and indexes scenarios. Names must be unique.
func NewRegistry(scenarios ...Scenario) (*Registry, error) {
	r := &Registry{
		byName: make(map[string]Scenario, len(scenarios)),
		names:  make([]string, 0, len(scenarios)),
	}
	for _, s := range scenarios {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		if _, dup := r.byName[s.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate scenario name %q", ErrInvalidScenario, s.Name)
		}
		r.byName[s.Name] = s
		r.names = append(r.names, s.Name)
	}
	sort.Strings(r.names)
	return r, nil
}

// DefaultRegistry returns a registry holding the built-ins followed by
// extra. An extra scenario may not reuse a built-in name.
func DefaultRegistry(extra ...Scenario) (*Registry, error) {
	return NewRegistry(append(Builtins(), extra...)...)
}

// Get returns the named scenario, or ErrUnknownScenario.
func (r *Registry) Get(name string) (Scenario, error) {
	s, ok := r.byName[name]
	if !ok {
		return Scenario{}, fmt.Errorf("%w: %q", ErrUnknownScenario, name)
	}
	return s, nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}

// List returns every scenario ordered by name.
func (r *Registry) List() []Scenario {
	out := make([]Scenario, 0, len(r.names))
	for _, n := range r.names {
		out = append(out, r.byName[n])
	}
	return out
}
