package extension

import (
	"context"

	"github.com/rpezzi/pipelint/internal/ctxlog"
	"github.com/rpezzi/pipelint/internal/registry"
)

// ImportFailure records one module that failed to import during a load. The
// run keeps going; the caller turns these into Error diagnostics.
type ImportFailure struct {
	Module string
	Err    error
}

// Loader drives module imports for resolved extensions.
type Loader struct {
	resolver *Resolver
}

// NewLoader creates a Loader over the given resolver.
func NewLoader(resolver *Resolver) *Loader {
	return &Loader{resolver: resolver}
}

// Load resolves an extension by name and returns its descriptor along with
// the extension itself. A resolution miss is a *NotFoundError.
func (l *Loader) Load(name string) (Extension, Descriptor, error) {
	ext, err := l.resolver.Resolve(name)
	if err != nil {
		return nil, Descriptor{}, err
	}
	return ext, Describe(ext), nil
}

// RegisterModules imports each module into the registry in the given order.
// When a module fails, everything it registered before the failure stays
// registered, the remaining modules are still attempted, and the failure is
// captured — one broken module must not hide unrelated findings elsewhere.
// Imports are not attempted once ctx is cancelled; a run may be aborted
// between module imports but never mid-import.
func (l *Loader) RegisterModules(ctx context.Context, reg *registry.Registry, modules []registry.Module) []ImportFailure {
	logger := ctxlog.FromContext(ctx)

	var failures []ImportFailure
	for _, mod := range modules {
		if err := ctx.Err(); err != nil {
			logger.Warn("Import aborted.", "module", mod.Path(), "reason", err)
			failures = append(failures, ImportFailure{Module: mod.Path(), Err: err})
			continue
		}
		if err := registry.Import(ctx, reg, mod); err != nil {
			logger.Error("Module import failed.", "module", mod.Path(), "error", err)
			failures = append(failures, ImportFailure{Module: mod.Path(), Err: err})
		}
	}
	return failures
}
