package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
)

// LoadFile parses a pipeline document, choosing the format by file
// extension.
func LoadFile(ctx context.Context, path string) (*Document, error) {
	switch filepath.Ext(path) {
	case ".hcl":
		return LoadHCL(ctx, path)
	case ".yaml", ".yml":
		return LoadYAML(ctx, path)
	default:
		return nil, &ParseError{Path: path, Err: fmt.Errorf("unrecognized pipeline document format %q", filepath.Ext(path))}
	}
}

// ExtractComponents parses every given document and returns the distinct
// component names they reference, in first-reference order across documents.
func ExtractComponents(ctx context.Context, paths []string) ([]string, []*Document, error) {
	seen := make(map[string]struct{})
	var refs []string
	var docs []*Document

	for _, path := range paths {
		doc, err := LoadFile(ctx, path)
		if err != nil {
			return nil, nil, err
		}
		docs = append(docs, doc)
		for _, name := range doc.Components() {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			refs = append(refs, name)
		}
	}
	return refs, docs, nil
}
