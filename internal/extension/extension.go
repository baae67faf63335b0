// Package extension defines how independently bundled component sets plug
// into the registry. An extension is a named, loadable unit that owns an
// ordered list of modules; the resolver maps extension names to compiled-in
// implementations, which keeps the discovery boundary abstract — a dynamic
// loader or a configuration-driven list could satisfy the same contract.
package extension

import (
	"github.com/rpezzi/pipelint/internal/registry"
)

// Extension is a named bundle of component modules.
type Extension interface {
	// Name is the extension's unique name, the first segment of every
	// qualified component name it contributes.
	Name() string

	// Modules returns the modules the extension owns, in import order.
	// Order matters when components reference each other by name across
	// modules: producer modules should come first, though rules only ever
	// see the fully imported registry, so forward references within one
	// extension are legal.
	Modules() []registry.Module
}

// Descriptor is the read-only record of a resolved extension.
type Descriptor struct {
	Name         string
	OwnedModules []string
}

// Describe builds the descriptor for a resolved extension.
func Describe(ext Extension) Descriptor {
	mods := ext.Modules()
	owned := make([]string, 0, len(mods))
	for _, m := range mods {
		owned = append(owned, m.Path())
	}
	return Descriptor{Name: ext.Name(), OwnedModules: owned}
}
