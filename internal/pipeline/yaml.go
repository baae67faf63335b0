package pipeline

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"

	"github.com/rpezzi/pipelint/internal/ctxlog"
)

// --- YAML document schema ---

type yamlDocument struct {
	Pipeline yamlPipeline `yaml:"pipeline"`
}

type yamlPipeline struct {
	Nodes []yamlNode `yaml:"nodes"`
}

type yamlNode struct {
	Component  string         `yaml:"component"`
	Name       string         `yaml:"name"`
	Parameters map[string]any `yaml:"parameters"`
}

// LoadYAML parses a YAML pipeline document from disk.
func LoadYAML(ctx context.Context, path string) (*Document, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Parsing YAML pipeline document.", "path", path)

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	var schema yamlDocument
	if err := yaml.Unmarshal(raw, &schema); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if len(schema.Pipeline.Nodes) == 0 {
		return nil, &ParseError{Path: path, Err: fmt.Errorf("document declares no pipeline nodes")}
	}

	doc := &Document{Path: path}
	for i, n := range schema.Pipeline.Nodes {
		params, err := yamlParameters(n.Parameters)
		if err != nil {
			return nil, &ParseError{Path: path, Err: fmt.Errorf("node %d (%s): %w", i, n.Component, err)}
		}
		name := n.Name
		if name == "" {
			// YAML authors commonly omit instance names; derive a stable one.
			name = fmt.Sprintf("node_%d", i)
		}
		doc.Steps = append(doc.Steps, Step{
			Component:  n.Component,
			Name:       name,
			Parameters: params,
		})
	}

	if err := doc.validate(); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	logger.Debug("YAML pipeline document parsed.", "path", path, "steps", len(doc.Steps))
	return doc, nil
}

func yamlParameters(raw map[string]any) (map[string]cty.Value, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	params := make(map[string]cty.Value, len(raw))
	for name, v := range raw {
		val, err := ctyFromYAML(v)
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", name, err)
		}
		params[name] = val
	}
	return params, nil
}

// ctyFromYAML maps decoded YAML scalars and containers onto cty values.
func ctyFromYAML(v any) (cty.Value, error) {
	switch val := v.(type) {
	case string:
		return cty.StringVal(val), nil
	case bool:
		return cty.BoolVal(val), nil
	case int:
		return cty.NumberIntVal(int64(val)), nil
	case int64:
		return cty.NumberIntVal(val), nil
	case float64:
		return cty.NumberFloatVal(val), nil
	case nil:
		return cty.NullVal(cty.DynamicPseudoType), nil
	case []any:
		if len(val) == 0 {
			return cty.EmptyTupleVal, nil
		}
		elems := make([]cty.Value, 0, len(val))
		for _, e := range val {
			ev, err := ctyFromYAML(e)
			if err != nil {
				return cty.NilVal, err
			}
			elems = append(elems, ev)
		}
		return cty.TupleVal(elems), nil
	case map[string]any:
		if len(val) == 0 {
			return cty.EmptyObjectVal, nil
		}
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		attrs := make(map[string]cty.Value, len(val))
		for _, k := range keys {
			av, err := ctyFromYAML(val[k])
			if err != nil {
				return cty.NilVal, err
			}
			attrs[k] = av
		}
		return cty.ObjectVal(attrs), nil
	default:
		return cty.NilVal, fmt.Errorf("unsupported parameter value of type %T", v)
	}
}
