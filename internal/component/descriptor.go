package component

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Well-known metadata keys. Rules read these; components write them through
// the Spec fields rather than the raw map.
const (
	MetaDoc         = "doc"
	MetaInputType   = "input_type"
	MetaOutputType  = "output_type"
	MetaElementType = "element_type"
	MetaContextKeys = "context_keys"
)

// Descriptor is the immutable record produced for every discovered component;
// it is the unit every rule operates on. Construct one through New and treat
// it as a value afterwards: updates mean building a new Descriptor and
// re-registering it.
type Descriptor struct {
	QualifiedName  string
	Kind           Kind
	Capabilities   []Capability
	Metadata       map[string]string
	SourceLocation string
}

// Spec is the input to New. Doc, InputType, OutputType, ElementType, and
// ContextKeys land in the metadata map under their well-known keys; Metadata
// carries any additional author-supplied tags.
type Spec struct {
	Name         string
	Kind         Kind
	Doc          string
	InputType    string
	OutputType   string
	ElementType  string
	ContextKeys  []string
	Capabilities []Capability
	Metadata     map[string]string
}

// New validates a Spec and builds a Descriptor from it. Capabilities are
// sorted by name and metadata is copied, so the result shares no mutable
// state with the caller.
func New(spec Spec) (Descriptor, error) {
	if spec.Name == "" {
		return Descriptor{}, fmt.Errorf("component name must not be empty")
	}
	if !spec.Kind.Valid() {
		return Descriptor{}, fmt.Errorf("component %s: unknown kind %q", spec.Name, spec.Kind)
	}

	names := make(map[string]struct{}, len(spec.Capabilities))
	for _, c := range spec.Capabilities {
		if _, dup := names[c.Name]; dup {
			return Descriptor{}, fmt.Errorf("component %s: duplicate capability %q", spec.Name, c.Name)
		}
		names[c.Name] = struct{}{}
	}

	meta := make(map[string]string, len(spec.Metadata)+5)
	maps.Copy(meta, spec.Metadata)
	setIfPresent(meta, MetaDoc, spec.Doc)
	setIfPresent(meta, MetaInputType, spec.InputType)
	setIfPresent(meta, MetaOutputType, spec.OutputType)
	setIfPresent(meta, MetaElementType, spec.ElementType)
	setIfPresent(meta, MetaContextKeys, strings.Join(spec.ContextKeys, ","))

	caps := slices.Clone(spec.Capabilities)
	sortCapabilities(caps)

	return Descriptor{
		QualifiedName: spec.Name,
		Kind:          spec.Kind,
		Capabilities:  caps,
		Metadata:      meta,
	}, nil
}

// MustNew is New for static registration tables.
func MustNew(spec Spec) Descriptor {
	d, err := New(spec)
	if err != nil {
		panic(err)
	}
	return d
}

// WithSource returns a copy of the descriptor stamped with the module path it
// was registered from. The registry applies this during registration so
// diagnostics can point at the defining module.
func (d Descriptor) WithSource(location string) Descriptor {
	d.SourceLocation = location
	return d
}

// Meta returns the metadata value for key, if present and non-empty.
func (d Descriptor) Meta(key string) (string, bool) {
	v, ok := d.Metadata[key]
	return v, ok && v != ""
}

// Capability returns the named capability, if declared.
func (d Descriptor) Capability(name string) (Capability, bool) {
	for _, c := range d.Capabilities {
		if c.Name == name {
			return c, true
		}
	}
	return Capability{}, false
}

// Equal reports whether two descriptors have identical content. Registration
// uses it to tell an idempotent re-registration from a conflict.
func (d Descriptor) Equal(other Descriptor) bool {
	if d.QualifiedName != other.QualifiedName || d.Kind != other.Kind {
		return false
	}
	if d.SourceLocation != other.SourceLocation {
		return false
	}
	if len(d.Capabilities) != len(other.Capabilities) {
		return false
	}
	for i, c := range d.Capabilities {
		if !c.Equal(other.Capabilities[i]) {
			return false
		}
	}
	return maps.Equal(d.Metadata, other.Metadata)
}

func setIfPresent(meta map[string]string, key, value string) {
	if value != "" {
		meta[key] = value
	}
}
