package rules

import (
	"fmt"
	"slices"

	"github.com/rpezzi/pipelint/internal/component"
	"github.com/rpezzi/pipelint/internal/registry"
)

// checkPipelineRefsResolve verifies that every component name referenced by
// the scope's pipeline documents resolves to a registered descriptor. An
// unresolved name is attributed to itself: there is no better component to
// pin it on, and the name is what the author has to fix.
func checkPipelineRefsResolve(scope Scope, snap *registry.Snapshot) []Finding {
	var findings []Finding
	for _, name := range scope.PipelineRefs {
		if _, ok := snap.Lookup(name); !ok {
			findings = append(findings, Finding{
				Component: name,
				Message:   fmt.Sprintf("pipeline references component %q, which is not registered by any imported module", name),
			})
		}
	}
	return findings
}

// checkNoOrphanTypes flags data types that nothing in the registry refers
// to. Only meaningful for whole-registry scopes: a pipeline-scoped run sees
// a deliberately partial view, where unreferenced types are expected.
func checkNoOrphanTypes(scope Scope, snap *registry.Snapshot) []Finding {
	if !scope.WholeRegistry {
		return nil
	}

	referenced := make(map[string]struct{})
	for _, d := range snap.Descriptors() {
		for _, key := range []string{component.MetaInputType, component.MetaOutputType, component.MetaElementType} {
			if name, ok := d.Meta(key); ok {
				referenced[name] = struct{}{}
			}
		}
	}

	var findings []Finding
	for _, kind := range []component.Kind{component.KindDataType, component.KindDataCollectionType} {
		for _, d := range snap.ByKind(kind) {
			if _, ok := referenced[d.QualifiedName]; !ok {
				findings = append(findings, Finding{
					Component: d.QualifiedName,
					Message:   fmt.Sprintf("data type %q is registered but referenced by no component", d.QualifiedName),
				})
			}
		}
	}

	slices.SortFunc(findings, func(a, b Finding) int {
		if a.Component < b.Component {
			return -1
		}
		if a.Component > b.Component {
			return 1
		}
		return 0
	})
	return findings
}
