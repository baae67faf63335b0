package registry

import (
	"context"
	"fmt"

	"github.com/rpezzi/pipelint/internal/component"
	"github.com/rpezzi/pipelint/internal/ctxlog"
)

// Module is one registerable unit of an extension. Registering a module is
// the Go analogue of importing it: every component the module defines calls
// Register on the injected Registry, so "define" and "register" stay one
// step with no manifest to drift from the code.
type Module interface {
	// Path is the module's qualified path, e.g. "strings.operations". A
	// component named "strings.operations.Uppercase" belongs to this module.
	Path() string

	// Register registers every component the module defines.
	Register(r *Registry) error
}

// NewModule builds a Module from a path and a registration function.
func NewModule(path string, register func(r *Registry) error) Module {
	return &moduleFunc{path: path, register: register}
}

// DescriptorModule builds a Module that registers a fixed descriptor set.
// Most extension modules are exactly this: a declaration list.
func DescriptorModule(path string, descriptors ...component.Descriptor) Module {
	return NewModule(path, func(r *Registry) error {
		for _, d := range descriptors {
			if err := r.Register(d.WithSource(path)); err != nil {
				return err
			}
		}
		return nil
	})
}

type moduleFunc struct {
	path     string
	register func(r *Registry) error
}

func (m *moduleFunc) Path() string { return m.path }

func (m *moduleFunc) Register(r *Registry) error { return m.register(r) }

// Import runs a module's registration against the registry, wrapping any
// failure (including registration conflicts) in an *ImportError carrying the
// module path. Imports are sequential by design: concurrent imports could
// race on registration order and spoil determinism.
func Import(ctx context.Context, r *Registry, m Module) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Importing module.", "module", m.Path())

	if err := m.Register(r); err != nil {
		return &ImportError{Path: m.Path(), Err: err}
	}

	logger.Debug("Module imported.", "module", m.Path(), "registered_total", r.Len())
	return nil
}

// ModuleOf returns the module path implied by a qualified component name:
// everything before the final dot. Names without a dot have no module.
func ModuleOf(qualifiedName string) (string, error) {
	for i := len(qualifiedName) - 1; i >= 0; i-- {
		if qualifiedName[i] == '.' {
			if i == 0 || i == len(qualifiedName)-1 {
				break
			}
			return qualifiedName[:i], nil
		}
	}
	return "", fmt.Errorf("component name %q has no module qualifier", qualifiedName)
}
