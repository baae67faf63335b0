package rules

import (
	"github.com/rpezzi/pipelint/internal/component"
	"github.com/rpezzi/pipelint/internal/registry"
)

// requireMeta builds a check demanding one non-empty metadata key.
func requireMeta(key, what string) func(component.Descriptor, *registry.Snapshot) []Finding {
	return func(d component.Descriptor, _ *registry.Snapshot) []Finding {
		if _, ok := d.Meta(key); !ok {
			return singleFinding(d, "missing %s (metadata key %q)", what, key)
		}
		return nil
	}
}

var (
	checkDocPresent         = requireMeta(component.MetaDoc, "documentation")
	checkElementTypePresent = requireMeta(component.MetaElementType, "declared element type")
	checkInputTypePresent   = requireMeta(component.MetaInputType, "declared input type")
	checkOutputTypePresent  = requireMeta(component.MetaOutputType, "declared output type")
	checkContextKeysPresent = requireMeta(component.MetaContextKeys, "declared context keys")
)
