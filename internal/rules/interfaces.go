package rules

import (
	"github.com/rpezzi/pipelint/internal/component"
	"github.com/rpezzi/pipelint/internal/registry"
)

// requireTypeRef builds a check that a metadata key, when declared, names a
// data type descriptor actually present in scope. Missing declarations are
// the metadata-completeness rules' concern, not this one's.
func requireTypeRef(key string, wantCollection bool) func(component.Descriptor, *registry.Snapshot) []Finding {
	return func(d component.Descriptor, snap *registry.Snapshot) []Finding {
		name, ok := d.Meta(key)
		if !ok {
			return nil
		}
		ref, found := snap.Lookup(name)
		if !found {
			return singleFinding(d, "%s %q is not registered in scope", key, name)
		}
		if !ref.Kind.IsDataKind() {
			return singleFinding(d, "%s %q must name a data type, but %s is a %s", key, name, name, ref.Kind)
		}
		if wantCollection && ref.Kind != component.KindDataType {
			return singleFinding(d, "%s %q must name an element data type, not a %s", key, name, ref.Kind)
		}
		return nil
	}
}

var (
	checkInputTypeResolves   = requireTypeRef(component.MetaInputType, false)
	checkOutputTypeResolves  = requireTypeRef(component.MetaOutputType, false)
	checkElementTypeResolves = requireTypeRef(component.MetaElementType, true)
)
