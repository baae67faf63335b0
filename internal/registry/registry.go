package registry

import (
	"slices"
	"sync"

	"github.com/rpezzi/pipelint/internal/component"
)

// Registry maps qualified component names to their descriptors. It grows
// only through Register and never shrinks during a run; Reset is the single
// supported way to clear it.
type Registry struct {
	mu         sync.RWMutex
	components map[string]component.Descriptor
	kinds      map[component.Kind][]string
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		components: make(map[string]component.Descriptor),
		kinds:      make(map[component.Kind][]string),
	}
}

// Register inserts a descriptor. Re-registering identical content is an
// idempotent no-op; the same qualified name with different content is a
// *ConflictError.
func (r *Registry) Register(d component.Descriptor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.components[d.QualifiedName]
	if ok {
		if existing.Equal(d) {
			return nil
		}
		return &ConflictError{
			QualifiedName:    d.QualifiedName,
			ExistingLocation: existing.SourceLocation,
			IncomingLocation: d.SourceLocation,
		}
	}

	r.components[d.QualifiedName] = d
	r.kinds[d.Kind] = append(r.kinds[d.Kind], d.QualifiedName)
	return nil
}

// Lookup returns the descriptor registered under name.
func (r *Registry) Lookup(name string) (component.Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.components[name]
	return d, ok
}

// ByKind returns the descriptors of one kind, sorted by qualified name.
func (r *Registry) ByKind(kind component.Kind) []component.Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := slices.Clone(r.kinds[kind])
	slices.Sort(names)
	out := make([]component.Descriptor, 0, len(names))
	for _, n := range names {
		out = append(out, r.components[n])
	}
	return out
}

// Names returns every registered qualified name in lexical order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.components))
	for n := range r.components {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Len returns the number of registered components.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.components)
}

// Reset clears all registrations. It exists so a host embedding the registry
// can guarantee a clean slate between validation runs.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.components = make(map[string]component.Descriptor)
	r.kinds = make(map[component.Kind][]string)
}

// Snapshot produces a frozen, read-only view of the current contents. Rule
// evaluation works exclusively against snapshots, so concurrent checks need
// no synchronization and a mid-run registration cannot skew results.
func (r *Registry) Snapshot() *Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	components := make(map[string]component.Descriptor, len(r.components))
	names := make([]string, 0, len(r.components))
	for n, d := range r.components {
		components[n] = d
		names = append(names, n)
	}
	slices.Sort(names)
	return &Snapshot{components: components, names: names}
}

// Snapshot is an immutable point-in-time view of a Registry.
type Snapshot struct {
	components map[string]component.Descriptor
	names      []string
}

// Lookup returns the descriptor registered under name at snapshot time.
func (s *Snapshot) Lookup(name string) (component.Descriptor, bool) {
	d, ok := s.components[name]
	return d, ok
}

// Names returns every qualified name in lexical order.
func (s *Snapshot) Names() []string {
	return slices.Clone(s.names)
}

// Descriptors returns every descriptor, sorted by qualified name.
func (s *Snapshot) Descriptors() []component.Descriptor {
	out := make([]component.Descriptor, 0, len(s.names))
	for _, n := range s.names {
		out = append(out, s.components[n])
	}
	return out
}

// ByKind returns the snapshot's descriptors of one kind, sorted by name.
func (s *Snapshot) ByKind(kind component.Kind) []component.Descriptor {
	var out []component.Descriptor
	for _, n := range s.names {
		if d := s.components[n]; d.Kind == kind {
			out = append(out, d)
		}
	}
	return out
}

// Len returns the number of components in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.names)
}
