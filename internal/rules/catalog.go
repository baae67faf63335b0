package rules

import "github.com/rpezzi/pipelint/internal/component"

// Reserved codes for diagnostics produced outside the rule engine. They live
// in the catalog so the exported contract documentation covers every code
// the tool can emit.
const (
	CodeImportFailure        = "IM001"
	CodeRegistrationConflict = "RG001"
)

// kindsWhere filters the canonical kind list, preserving its order.
func kindsWhere(pred func(component.Kind) bool) []component.Kind {
	var kinds []component.Kind
	for _, k := range component.Kinds {
		if pred(k) {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

var (
	ioKinds       = kindsWhere(component.Kind.IsIOKind)
	sourceKinds   = []component.Kind{component.KindDataSource, component.KindPayloadSource}
	sinkKinds     = []component.Kind{component.KindDataSink, component.KindPayloadSink}
	consumerKinds = []component.Kind{
		component.KindOperation,
		component.KindProbe,
		component.KindDataSink,
		component.KindPayloadSink,
	}
	producerKinds = []component.Kind{
		component.KindOperation,
		component.KindDataSource,
		component.KindPayloadSource,
	}
	processorKinds = []component.Kind{component.KindOperation, component.KindProbe}
)

// Builtin returns the standard rule catalog. Declaration order here is the
// evaluation and report order, so appending new rules keeps existing
// diagnostic sequences stable.
func Builtin() *Catalog {
	return MustCatalog(
		Rule{
			Code:        "CT001",
			Severity:    SeverityError,
			Kinds:       []component.Kind{component.KindOperation},
			Description: "An operation must expose a `process` capability.",
			Check:       checkOperationProcess,
		},
		Rule{
			Code:        "CT002",
			Severity:    SeverityError,
			Kinds:       []component.Kind{component.KindOperation},
			Description: "An operation's `process` result type must match the value type of its declared output type.",
			Check:       checkOperationOutput,
		},
		Rule{
			Code:        "CT003",
			Severity:    SeverityError,
			Kinds:       []component.Kind{component.KindProbe},
			Description: "A probe must expose a `probe` capability whose result is a plain value, never a reference to its input.",
			Check:       checkProbeResult,
		},
		Rule{
			Code:        "CT004",
			Severity:    SeverityError,
			Kinds:       sourceKinds,
			Description: "A source must expose a value-producing `fetch` capability.",
			Check:       checkSourceFetch,
		},
		Rule{
			Code:        "CT005",
			Severity:    SeverityError,
			Kinds:       sinkKinds,
			Description: "A sink must expose a `store` capability.",
			Check:       checkSinkStore,
		},
		Rule{
			Code:        "MD001",
			Severity:    SeverityError,
			Description: "Every component carries non-empty documentation.",
			Check:       checkDocPresent,
		},
		Rule{
			Code:        "MD002",
			Severity:    SeverityError,
			Kinds:       []component.Kind{component.KindDataCollectionType},
			Description: "A collection type declares its element type.",
			Check:       checkElementTypePresent,
		},
		Rule{
			Code:        "MD003",
			Severity:    SeverityError,
			Kinds:       consumerKinds,
			Description: "A data-consuming component declares its input type.",
			Check:       checkInputTypePresent,
		},
		Rule{
			Code:        "MD004",
			Severity:    SeverityError,
			Kinds:       producerKinds,
			Description: "A data-producing component declares its output type.",
			Check:       checkOutputTypePresent,
		},
		Rule{
			Code:        "MD005",
			Severity:    SeverityWarning,
			Kinds:       []component.Kind{component.KindContextProcessor},
			Description: "A context processor declares the context keys it writes.",
			Check:       checkContextKeysPresent,
		},
		Rule{
			Code:        "ST001",
			Severity:    SeverityError,
			Kinds:       ioKinds,
			Description: "I/O components expose only stateless capabilities; per-instance mutable state is forbidden.",
			Check:       checkIOStateless,
		},
		Rule{
			Code:        "ST002",
			Severity:    SeverityWarning,
			Kinds:       processorKinds,
			Description: "Operations and probes should avoid capabilities bound to instance state.",
			Check:       checkProcessorStateless,
		},
		Rule{
			Code:        "IC001",
			Severity:    SeverityError,
			Description: "A declared input type resolves to a data type registered in scope.",
			Check:       checkInputTypeResolves,
		},
		Rule{
			Code:        "IC002",
			Severity:    SeverityError,
			Description: "A declared output type resolves to a data type registered in scope.",
			Check:       checkOutputTypeResolves,
		},
		Rule{
			Code:        "IC003",
			Severity:    SeverityError,
			Kinds:       []component.Kind{component.KindDataCollectionType},
			Description: "A collection's declared element type resolves to a registered element data type.",
			Check:       checkElementTypeResolves,
		},
		Rule{
			Code:        "RC001",
			Severity:    SeverityError,
			Description: "Every component a pipeline document references resolves to a registered component.",
			CheckScope:  checkPipelineRefsResolve,
		},
		Rule{
			Code:        "RC002",
			Severity:    SeverityWarning,
			Description: "No data type is registered without at least one component referencing it (whole-registry scans only).",
			CheckScope:  checkNoOrphanTypes,
		},
		Rule{
			Code:        CodeImportFailure,
			Severity:    SeverityError,
			Description: "A module in scope failed to import; its components are missing from this run.",
		},
		Rule{
			Code:        CodeRegistrationConflict,
			Severity:    SeverityError,
			Description: "Two registrations claimed the same qualified name with different content; the first wins.",
		},
	)
}
