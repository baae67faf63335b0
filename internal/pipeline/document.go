package pipeline

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

// Step is one named component invocation in a pipeline document.
type Step struct {
	// Component is the qualified name of the component the step invokes.
	Component string

	// Name is the author-chosen instance name, unique within the document.
	Name string

	// Parameters holds the step's literal parameter values.
	Parameters map[string]cty.Value
}

// Document is the format-agnostic representation of one pipeline
// specification.
type Document struct {
	// Path is where the document was loaded from, for diagnostics.
	Path string

	// Steps in declaration order.
	Steps []Step
}

// Components returns the distinct component names the document references,
// in first-reference order.
func (d *Document) Components() []string {
	seen := make(map[string]struct{}, len(d.Steps))
	var names []string
	for _, s := range d.Steps {
		if _, ok := seen[s.Component]; ok {
			continue
		}
		seen[s.Component] = struct{}{}
		names = append(names, s.Component)
	}
	return names
}

// validate applies the format-independent document rules: steps name a
// component, and instance names do not repeat.
func (d *Document) validate() error {
	instances := make(map[string]struct{}, len(d.Steps))
	for i, s := range d.Steps {
		if s.Component == "" {
			return fmt.Errorf("step %d: missing component name", i)
		}
		if s.Name == "" {
			return fmt.Errorf("step %d (%s): missing instance name", i, s.Component)
		}
		if _, dup := instances[s.Name]; dup {
			return fmt.Errorf("duplicate step instance name %q", s.Name)
		}
		instances[s.Name] = struct{}{}
	}
	return nil
}

// ParseError reports a malformed pipeline document. It is fatal to
// pipeline-scoped runs: with no parseable document there is no scope.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing pipeline %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
