package rules

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/rpezzi/pipelint/internal/component"
	"github.com/rpezzi/pipelint/internal/registry"
)

// checkOperationProcess requires Operations to expose a process capability.
func checkOperationProcess(d component.Descriptor, _ *registry.Snapshot) []Finding {
	if _, ok := d.Capability(component.CapProcess); !ok {
		return singleFinding(d, "operation declares no %q capability", component.CapProcess)
	}
	return nil
}

// checkOperationOutput requires an Operation's process result to match the
// value type of its declared output data type. The output type's value type
// is read from that type's validate capability, so the check is skipped when
// the output type is unresolved (IC002 reports that) or declares no
// validate signature.
func checkOperationOutput(d component.Descriptor, snap *registry.Snapshot) []Finding {
	process, ok := d.Capability(component.CapProcess)
	if !ok || process.Result == cty.NilType {
		return nil
	}
	outputName, ok := d.Meta(component.MetaOutputType)
	if !ok {
		return nil
	}
	valueType, ok := declaredValueType(snap, outputName)
	if !ok {
		return nil
	}
	if !process.Result.Equals(valueType) {
		return singleFinding(d, "process result type %s does not match output type %s (expects %s)",
			process.Result.FriendlyName(), outputName, valueType.FriendlyName())
	}
	return nil
}

// checkProbeResult requires Probes to expose a probe capability producing a
// plain value: an analysis result must be data, never a mutable reference to
// the probed input.
func checkProbeResult(d component.Descriptor, _ *registry.Snapshot) []Finding {
	probe, ok := d.Capability(component.CapProbe)
	if !ok {
		return singleFinding(d, "probe declares no %q capability", component.CapProbe)
	}
	if !component.IsValueType(probe.Result) {
		return singleFinding(d, "probe result must be a value type, got %s", friendlyOrNone(probe.Result))
	}
	return nil
}

// checkSourceFetch requires source kinds to expose a value-producing fetch
// capability.
func checkSourceFetch(d component.Descriptor, _ *registry.Snapshot) []Finding {
	fetch, ok := d.Capability(component.CapFetch)
	if !ok {
		return singleFinding(d, "source declares no %q capability", component.CapFetch)
	}
	if fetch.Result == cty.NilType {
		return singleFinding(d, "fetch capability produces no value")
	}
	return nil
}

// checkSinkStore requires sink kinds to expose a store capability.
func checkSinkStore(d component.Descriptor, _ *registry.Snapshot) []Finding {
	if _, ok := d.Capability(component.CapStore); !ok {
		return singleFinding(d, "sink declares no %q capability", component.CapStore)
	}
	return nil
}

// declaredValueType resolves a data type name to its underlying semantic
// value type, read from the type's validate capability signature.
func declaredValueType(snap *registry.Snapshot, typeName string) (cty.Type, bool) {
	d, ok := snap.Lookup(typeName)
	if !ok || !d.Kind.IsDataKind() {
		return cty.NilType, false
	}
	validate, ok := d.Capability(component.CapValidate)
	if !ok || len(validate.Params) != 1 {
		return cty.NilType, false
	}
	return validate.Params[0].Type, true
}

func singleFinding(d component.Descriptor, format string, args ...any) []Finding {
	return []Finding{{Component: d.QualifiedName, Message: fmt.Sprintf(format, args...)}}
}

func friendlyOrNone(t cty.Type) string {
	if t == cty.NilType {
		return "no result"
	}
	return t.FriendlyName()
}
