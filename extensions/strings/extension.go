// Package stringsext is the bundled text-processing extension. It registers
// one component of every kind, which makes it both a usable starter extension
// and the standing target for the tool's own contract validation.
package stringsext

import (
	"github.com/rpezzi/pipelint/internal/extension"
	"github.com/rpezzi/pipelint/internal/registry"
)

// Module paths, also the source locations stamped on registered descriptors.
const (
	ModuleTypes      = "strings.types"
	ModuleOperations = "strings.operations"
	ModuleProbes     = "strings.probes"
	ModuleIO         = "strings.io"
	ModuleContext    = "strings.context"
)

type ext struct{}

// New returns the strings extension.
func New() extension.Extension {
	return ext{}
}

func (ext) Name() string { return "strings" }

func (ext) Modules() []registry.Module {
	return []registry.Module{
		registry.DescriptorModule(ModuleTypes, typeDescriptors()...),
		registry.DescriptorModule(ModuleOperations, operationDescriptors()...),
		registry.DescriptorModule(ModuleProbes, probeDescriptors()...),
		registry.DescriptorModule(ModuleIO, ioDescriptors()...),
		registry.DescriptorModule(ModuleContext, contextDescriptors()...),
	}
}
