package benchmark

import (
	_ "embed"
	"fmt"
	"sort"
	"sync"
)

//go:embed builtin.yaml
var builtinYAML []byte

// Registry resolves benchmark ids to specs.
type Registry struct {
	mu    sync.RWMutex
	specs map[string]*Spec
}

func NewRegistry() *Registry {
	return &Registry{specs: make(map[string]*Spec)}
}

// DefaultRegistry holds the built-in benchmarks.
func DefaultRegistry() (*Registry, error) {
	specs, err := Parse(builtinYAML)
	if err != nil {
		return nil, fmt.Errorf("load built-in benchmarks: %w", err)
	}
	r := NewRegistry()
	for _, s := range specs {
		if err := r.Register(s); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a spec parsed by Parse or LoadFromFile.
func (r *Registry) Register(s *Spec) error {
	if s.scorer == nil {
		return fmt.Errorf("benchmark %q was not validated", s.ID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.specs[s.ID]; ok {
		return fmt.Errorf("benchmark %q is already registered", s.ID)
	}
	r.specs[s.ID] = s
	return nil
}

// RegisterFile registers every benchmark declared in the YAML file at path.
func (r *Registry) RegisterFile(path string) error {
	specs, err := LoadFromFile(path)
	if err != nil {
		return err
	}
	for _, s := range specs {
		if err := r.Register(s); err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) Spec(id string) (*Spec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.specs[id]
	if !ok {
		return nil, fmt.Errorf("%q: %w", id, ErrUnknownBenchmark)
	}
	return s, nil
}

func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.specs))
	for id := range r.specs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
