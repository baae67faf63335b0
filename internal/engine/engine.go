// Package engine evaluates a rule catalog against a validation scope.
//
// Evaluation is deterministic: diagnostics come out in rule-major order
// (catalog declaration order), and within a rule in lexical order of the
// descriptors under review. Worker-pool parallelism only changes how fast
// the answer arrives, never what it is.
package engine

import (
	"context"
	"slices"
	"sync"

	"github.com/rpezzi/pipelint/internal/component"
	"github.com/rpezzi/pipelint/internal/ctxlog"
	"github.com/rpezzi/pipelint/internal/registry"
	"github.com/rpezzi/pipelint/internal/rules"
)

// Diagnostic is one finding stamped with the rule that produced it. Location
// is the registering module's source path when the component is known.
type Diagnostic struct {
	RuleCode  string
	Severity  rules.Severity
	Component string
	Message   string
	Location  string
}

// Options tunes an evaluation run.
type Options struct {
	// Workers is the number of concurrent check workers. Zero or one means
	// sequential evaluation.
	Workers int

	// Trace logs every rule application at debug level.
	Trace bool
}

// cell is one unit of check work with a fixed output slot. Slot order is
// decided up front, before any worker runs, so concurrent completion order
// cannot leak into the diagnostic sequence.
type cell struct {
	rule       rules.Rule
	descriptor *component.Descriptor // nil for scope-level rules
}

// Evaluate runs every evaluable rule in the catalog against the scope and
// returns the resulting diagnostics. Rules without a check function are
// skipped; their codes are emitted by the loading phase, not the engine.
func Evaluate(ctx context.Context, scope rules.Scope, snap *registry.Snapshot, catalog *rules.Catalog, opts Options) ([]Diagnostic, error) {
	logger := ctxlog.FromContext(ctx)

	descriptors := slices.Clone(scope.Descriptors)
	slices.SortFunc(descriptors, func(a, b component.Descriptor) int {
		if a.QualifiedName < b.QualifiedName {
			return -1
		}
		if a.QualifiedName > b.QualifiedName {
			return 1
		}
		return 0
	})
	scope.Descriptors = descriptors

	var cells []cell
	for _, r := range catalog.Rules() {
		switch {
		case r.Check != nil:
			for i := range descriptors {
				if r.AppliesTo(descriptors[i].Kind) {
					cells = append(cells, cell{rule: r, descriptor: &descriptors[i]})
				}
			}
		case r.CheckScope != nil:
			cells = append(cells, cell{rule: r})
		}
	}
	logger.Debug("Evaluation planned.", "cells", len(cells), "descriptors", len(descriptors), "rules", catalog.Len())

	results := make([][]rules.Finding, len(cells))
	run := func(i int) {
		c := cells[i]
		if c.descriptor != nil {
			results[i] = c.rule.Check(*c.descriptor, snap)
			if opts.Trace {
				logger.Debug("Rule checked.", "rule", c.rule.Code, "component", c.descriptor.QualifiedName, "findings", len(results[i]))
			}
		} else {
			results[i] = c.rule.CheckScope(scope, snap)
			if opts.Trace {
				logger.Debug("Scope rule checked.", "rule", c.rule.Code, "findings", len(results[i]))
			}
		}
	}

	if opts.Workers > 1 {
		indices := make(chan int)
		var wg sync.WaitGroup
		for w := 0; w < opts.Workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range indices {
					run(i)
				}
			}()
		}
		for i := range cells {
			if ctx.Err() != nil {
				break
			}
			indices <- i
		}
		close(indices)
		wg.Wait()
	} else {
		for i := range cells {
			if ctx.Err() != nil {
				break
			}
			run(i)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var diagnostics []Diagnostic
	for i, c := range cells {
		for _, f := range results[i] {
			diagnostics = append(diagnostics, Diagnostic{
				RuleCode:  c.rule.Code,
				Severity:  c.rule.Severity,
				Component: f.Component,
				Message:   f.Message,
				Location:  locationOf(c, f, snap),
			})
		}
	}

	logger.Debug("Evaluation finished.", "diagnostics", len(diagnostics))
	return diagnostics, nil
}

// locationOf resolves the source location for a finding. Per-descriptor
// findings use the checked descriptor; scope-level findings are looked up by
// the component name the check attributed them to, which may be unresolved.
func locationOf(c cell, f rules.Finding, snap *registry.Snapshot) string {
	if c.descriptor != nil {
		return c.descriptor.SourceLocation
	}
	if d, ok := snap.Lookup(f.Component); ok {
		return d.SourceLocation
	}
	return ""
}

// HasErrors reports whether any diagnostic carries the error severity.
func HasErrors(diagnostics []Diagnostic) bool {
	for _, d := range diagnostics {
		if d.Severity == rules.SeverityError {
			return true
		}
	}
	return false
}
