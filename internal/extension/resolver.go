package extension

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/rpezzi/pipelint/internal/registry"
)

// NotFoundError reports that no extension is registered under the requested
// name. It is fatal to the whole run: with no extension there is no scope to
// validate.
type NotFoundError struct {
	Name  string
	Known []string
}

func (e *NotFoundError) Error() string {
	if len(e.Known) == 0 {
		return fmt.Sprintf("extension %q not found (no extensions are registered)", e.Name)
	}
	return fmt.Sprintf("extension %q not found (known: %s)", e.Name, strings.Join(e.Known, ", "))
}

// Resolver maps extension names to their implementations. It is this
// codebase's plugin-discovery mechanism: extensions compiled into the binary
// are added at startup, so resolution is deterministic and needs no I/O.
type Resolver struct {
	extensions map[string]Extension
}

// NewResolver creates a resolver holding the given extensions.
func NewResolver(extensions ...Extension) *Resolver {
	rv := &Resolver{extensions: make(map[string]Extension, len(extensions))}
	for _, ext := range extensions {
		rv.Add(ext)
	}
	return rv
}

// Add registers an extension. Two extensions with the same name is a wiring
// mistake, so it panics, mirroring double handler registration.
func (rv *Resolver) Add(ext Extension) {
	name := ext.Name()
	if _, exists := rv.extensions[name]; exists {
		panic(fmt.Sprintf("extension %q already registered", name))
	}
	rv.extensions[name] = ext
}

// Resolve returns the extension registered under name.
func (rv *Resolver) Resolve(name string) (Extension, error) {
	ext, ok := rv.extensions[name]
	if !ok {
		return nil, &NotFoundError{Name: name, Known: rv.Names()}
	}
	return ext, nil
}

// Names returns all registered extension names in lexical order.
func (rv *Resolver) Names() []string {
	names := make([]string, 0, len(rv.extensions))
	for n := range rv.extensions {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Module finds a module by qualified path across every registered extension.
// It backs pipeline-scoped validation: a referenced component's defining
// module can be imported without touching the extension's other modules.
func (rv *Resolver) Module(path string) (registry.Module, bool) {
	for _, name := range rv.Names() {
		for _, m := range rv.extensions[name].Modules() {
			if m.Path() == path {
				return m, true
			}
		}
	}
	return nil, false
}

// ModulePaths returns every module path known to the resolver, sorted.
func (rv *Resolver) ModulePaths() []string {
	var paths []string
	for _, name := range rv.Names() {
		for _, m := range rv.extensions[name].Modules() {
			paths = append(paths, m.Path())
		}
	}
	slices.Sort(paths)
	return paths
}
