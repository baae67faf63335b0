package pipeline

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/rpezzi/pipelint/internal/ctxlog"
)

// --- HCL document schema ---

// stepParams represents the content of a step's 'parameters' block.
type stepParams struct {
	Body hcl.Body `hcl:",remain"`
}

// stepBlock represents a `step "component" "name" { ... }` block.
type stepBlock struct {
	Component  string      `hcl:"component,label"`
	Name       string      `hcl:"instance_name,label"`
	Parameters *stepParams `hcl:"parameters,block"`
}

// documentSchema is the top-level structure of an HCL pipeline file.
type documentSchema struct {
	Steps []*stepBlock `hcl:"step,block"`
}

// LoadHCL parses an HCL pipeline document from disk.
func LoadHCL(ctx context.Context, path string) (*Document, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Parsing HCL pipeline document.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, &ParseError{Path: path, Err: diags}
	}

	var schema documentSchema
	if diags := gohcl.DecodeBody(file.Body, nil, &schema); diags.HasErrors() {
		return nil, &ParseError{Path: path, Err: diags}
	}

	doc := &Document{Path: path}
	for _, s := range schema.Steps {
		params, err := literalParameters(s.Parameters)
		if err != nil {
			return nil, &ParseError{Path: path, Err: fmt.Errorf("step %q: %w", s.Name, err)}
		}
		doc.Steps = append(doc.Steps, Step{
			Component:  s.Component,
			Name:       s.Name,
			Parameters: params,
		})
	}

	if err := doc.validate(); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	logger.Debug("HCL pipeline document parsed.", "path", path, "steps", len(doc.Steps))
	return doc, nil
}

// literalParameters evaluates a parameters block's attributes as literal
// values. Pipeline documents are static declarations: expressions referencing
// variables or functions are rejected here rather than half-evaluated.
func literalParameters(block *stepParams) (map[string]cty.Value, error) {
	if block == nil || block.Body == nil {
		return nil, nil
	}
	attrs, diags := block.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}
	if len(attrs) == 0 {
		return nil, nil
	}

	params := make(map[string]cty.Value, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("parameter %q is not a literal value: %w", name, diags)
		}
		params[name] = val
	}
	return params, nil
}
