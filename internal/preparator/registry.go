package preparator

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	dataperrors "github.com/alexisbeaulieu97/dataprep/pkg/errors"
)

var (
	ErrNotRegistered     = errors.New("no preparator registered")
	ErrAlreadyRegistered = errors.New("preparator already registered")
)

// Decoder fills a parameter struct from the step definition.
type Decoder func(into any) error

// Factory builds a configured preparator.
type Factory func(decode Decoder) (Preparator, error)

// Descriptor registers one preparator kind.
type Descriptor struct {
	Name        string
	Description string
	Factory     Factory
}

// Registry maps preparator names to factories.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Descriptor
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Descriptor)}
}

// Default is the process-wide registry concrete preparators add themselves to
// from init.
var Default = NewRegistry()

// Register adds a preparator kind to the default registry.
func Register(d Descriptor) error {
	return Default.Register(d)
}

// MustRegister is Register for init functions.
func MustRegister(d Descriptor) {
	if err := Register(d); err != nil {
		panic(err)
	}
}

// Register adds a preparator kind.
func (r *Registry) Register(d Descriptor) error {
	if d.Name == "" {
		return dataperrors.NewPreparatorError("", errors.New("name is empty"))
	}
	if d.Factory == nil {
		return dataperrors.NewPreparatorError(d.Name, errors.New("factory is nil"))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[d.Name]; exists {
		return dataperrors.NewPreparatorError(d.Name, ErrAlreadyRegistered)
	}
	r.entries[d.Name] = d
	return nil
}

// Get returns the descriptor registered under name.
func (r *Registry) Get(name string) (Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.entries[name]
	if !ok {
		return Descriptor{}, dataperrors.NewPreparatorError(name, ErrNotRegistered)
	}
	return d, nil
}

// Build creates a preparator of kind name with parameters read by decode.
func (r *Registry) Build(name string, decode Decoder) (Preparator, error) {
	d, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	if decode == nil {
		decode = func(any) error { return nil }
	}

	p, err := d.Factory(decode)
	if err != nil {
		return nil, dataperrors.NewPreparatorError(name, fmt.Errorf("invalid parameters: %w", err))
	}
	return p, nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Descriptors returns the registered descriptors sorted by name.
func (r *Registry) Descriptors() []Descriptor {
	names := r.Names()

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Descriptor, 0, len(names))
	for _, name := range names {
		out = append(out, r.entries[name])
	}
	return out
}
