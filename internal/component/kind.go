// Package component defines the descriptor model shared by the registry and
// the rule engine: the closed set of component kinds, cty-typed capability
// signatures, and the immutable descriptor record produced for every
// discovered component.
package component

// Kind identifies which contract family a component belongs to. The set is
// closed and known at build time; every rule scopes itself to a subset of it.
type Kind string

const (
	KindDataType           Kind = "data_type"
	KindDataCollectionType Kind = "data_collection_type"
	KindOperation          Kind = "operation"
	KindProbe              Kind = "probe"
	KindDataSource         Kind = "data_source"
	KindDataSink           Kind = "data_sink"
	KindPayloadSource      Kind = "payload_source"
	KindPayloadSink        Kind = "payload_sink"
	KindContextProcessor   Kind = "context_processor"
)

// Kinds lists every kind in its canonical order. Reports and the rule
// catalog export rely on this order being stable.
var Kinds = []Kind{
	KindDataType,
	KindDataCollectionType,
	KindOperation,
	KindProbe,
	KindDataSource,
	KindDataSink,
	KindPayloadSource,
	KindPayloadSink,
	KindContextProcessor,
}

// Valid reports whether k is a member of the closed kind set.
func (k Kind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// IsIOKind reports whether the kind is one of the four I/O families, which
// carry the statelessness contract.
func (k Kind) IsIOKind() bool {
	switch k {
	case KindDataSource, KindDataSink, KindPayloadSource, KindPayloadSink:
		return true
	}
	return false
}

// IsDataKind reports whether the kind declares a data type rather than a
// processor.
func (k Kind) IsDataKind() bool {
	return k == KindDataType || k == KindDataCollectionType
}

func (k Kind) String() string {
	return string(k)
}
