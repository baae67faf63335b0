package component

import (
	"context"
	"fmt"
	"reflect"
	"sort"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Canonical capability names. Rules address capabilities by these names, so
// components of a given kind must expose them under the expected name.
const (
	CapProcess  = "process"
	CapProbe    = "probe"
	CapFetch    = "fetch"
	CapStore    = "store"
	CapValidate = "validate"
)

// Param is one parameter of a capability, described by its semantic type
// rather than its Go type.
type Param struct {
	Name string
	Type cty.Type
}

// Capability is one declared operation signature of a component. Result is
// cty.NilType for capabilities that produce no value (sinks). Stateless
// records whether the implementation is a plain function with no per-instance
// state; the statelessness rules check it structurally.
type Capability struct {
	Name      string
	Params    []Param
	Result    cty.Type
	Stateless bool
}

// NewCapability derives a capability signature from a Go function. Parameter
// and result types are inferred through cty's implied-type mapping; a leading
// context.Context and a trailing error are part of the Go calling convention,
// not the contract, and are skipped. paramNames are applied positionally;
// unnamed parameters fall back to argN.
//
// Plain functions carry no instance state, so the capability starts out
// stateless; use Bound for method values that close over a receiver.
func NewCapability(name string, fn any, paramNames ...string) (Capability, error) {
	if name == "" {
		return Capability{}, fmt.Errorf("capability name must not be empty")
	}
	fnType := reflect.TypeOf(fn)
	if fnType == nil || fnType.Kind() != reflect.Func {
		return Capability{}, fmt.Errorf("capability %q: implementation must be a func, got %T", name, fn)
	}

	c := Capability{Name: name, Stateless: true}

	for i := 0; i < fnType.NumIn(); i++ {
		in := fnType.In(i)
		if i == 0 && in == contextType {
			continue
		}
		paramType, err := impliedType(in)
		if err != nil {
			return Capability{}, fmt.Errorf("capability %q, parameter %d: %w", name, i, err)
		}
		paramName := fmt.Sprintf("arg%d", len(c.Params))
		if len(c.Params) < len(paramNames) {
			paramName = paramNames[len(c.Params)]
		}
		c.Params = append(c.Params, Param{Name: paramName, Type: paramType})
	}

	c.Result = cty.NilType
	for i := 0; i < fnType.NumOut(); i++ {
		out := fnType.Out(i)
		if out == errorType {
			continue
		}
		if c.Result != cty.NilType {
			return Capability{}, fmt.Errorf("capability %q: at most one non-error result is allowed", name)
		}
		resultType, err := impliedType(out)
		if err != nil {
			return Capability{}, fmt.Errorf("capability %q, result %d: %w", name, i, err)
		}
		c.Result = resultType
	}

	return c, nil
}

// MustCapability is NewCapability for static registration tables, where a
// failure is a programmer error.
func MustCapability(name string, fn any, paramNames ...string) Capability {
	c, err := NewCapability(name, fn, paramNames...)
	if err != nil {
		panic(err)
	}
	return c
}

// Bound returns a copy of the capability marked as backed by per-instance
// state (a method value or a closure over mutable data).
func (c Capability) Bound() Capability {
	c.Stateless = false
	return c
}

// Equal reports whether two capabilities declare the same contract.
func (c Capability) Equal(other Capability) bool {
	if c.Name != other.Name || c.Stateless != other.Stateless {
		return false
	}
	if len(c.Params) != len(other.Params) {
		return false
	}
	for i, p := range c.Params {
		if p.Name != other.Params[i].Name || !p.Type.Equals(other.Params[i].Type) {
			return false
		}
	}
	return resultEqual(c.Result, other.Result)
}

func resultEqual(a, b cty.Type) bool {
	if a == cty.NilType || b == cty.NilType {
		return a == b
	}
	return a.Equals(b)
}

// IsValueType reports whether t describes plain data: a primitive, or an
// object/collection built only from plain data. The dynamic pseudo-type and
// capsule types fail the check, since they smuggle opaque references across
// the component boundary.
func IsValueType(t cty.Type) bool {
	switch {
	case t == cty.NilType:
		return false
	case t.Equals(cty.DynamicPseudoType):
		return false
	case t.IsPrimitiveType():
		return true
	case t.IsListType(), t.IsSetType(), t.IsMapType():
		return IsValueType(t.ElementType())
	case t.IsObjectType():
		for _, at := range t.AttributeTypes() {
			if !IsValueType(at) {
				return false
			}
		}
		return true
	case t.IsTupleType():
		for _, et := range t.TupleElementTypes() {
			if !IsValueType(et) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func sortCapabilities(caps []Capability) {
	sort.Slice(caps, func(i, j int) bool { return caps[i].Name < caps[j].Name })
}

// impliedType maps a Go type to its cty equivalent via a zero value probe.
func impliedType(t reflect.Type) (cty.Type, error) {
	implied, err := gocty.ImpliedType(reflect.Zero(t).Interface())
	if err != nil {
		return cty.NilType, fmt.Errorf("cannot express Go type %s as a semantic type: %w", t, err)
	}
	return implied, nil
}

var (
	contextType = reflect.TypeOf((*context.Context)(nil)).Elem()
	errorType   = reflect.TypeOf((*error)(nil)).Elem()
)
