package rules

import (
	"github.com/rpezzi/pipelint/internal/component"
	"github.com/rpezzi/pipelint/internal/registry"
)

// checkIOStateless requires every capability of an I/O-kind component to be
// stateless. The check is structural: the engine cannot safely execute
// component code, but a capability backed by a bound method is visible in
// the descriptor, and that is exactly the implicit per-instance state the
// contract forbids.
func checkIOStateless(d component.Descriptor, _ *registry.Snapshot) []Finding {
	var findings []Finding
	for _, c := range d.Capabilities {
		if !c.Stateless {
			findings = append(findings, Finding{
				Component: d.QualifiedName,
				Message:   "capability " + c.Name + " is bound to instance state; I/O components must expose stateless operations",
			})
		}
	}
	return findings
}

// checkProcessorStateless flags bound capabilities on operations and probes.
// Unlike the I/O kinds this is advisory: processors may legitimately carry
// configuration, but hidden mutable state is still worth a look.
func checkProcessorStateless(d component.Descriptor, _ *registry.Snapshot) []Finding {
	var findings []Finding
	for _, c := range d.Capabilities {
		if !c.Stateless {
			findings = append(findings, Finding{
				Component: d.QualifiedName,
				Message:   "capability " + c.Name + " is bound to instance state",
			})
		}
	}
	return findings
}
