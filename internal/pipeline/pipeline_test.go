package pipeline

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/rpezzi/pipelint/internal/ctxlog"
)

func testContext() context.Context {
	return ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const hclDoc = `
step "strings.io.LiteralSource" "source" {
  parameters {
    value = "hello world"
  }
}

step "strings.operations.Uppercase" "shout" {
  parameters {
    text = "hello"
  }
}

step "strings.operations.Uppercase" "shout_again" {}
`

func TestLoadHCL(t *testing.T) {
	t.Run("parses steps and parameters", func(t *testing.T) {
		path := writeFile(t, "pipeline.hcl", hclDoc)

		doc, err := LoadHCL(testContext(), path)
		require.NoError(t, err)

		require.Len(t, doc.Steps, 3)
		assert.Equal(t, "strings.io.LiteralSource", doc.Steps[0].Component)
		assert.Equal(t, "source", doc.Steps[0].Name)
		assert.Equal(t, cty.StringVal("hello world"), doc.Steps[0].Parameters["value"])
		assert.Nil(t, doc.Steps[2].Parameters)
	})

	t.Run("distinct references keep first-reference order", func(t *testing.T) {
		path := writeFile(t, "pipeline.hcl", hclDoc)

		doc, err := LoadHCL(testContext(), path)
		require.NoError(t, err)
		assert.Equal(t, []string{"strings.io.LiteralSource", "strings.operations.Uppercase"}, doc.Components())
	})

	t.Run("syntax errors become ParseError", func(t *testing.T) {
		path := writeFile(t, "broken.hcl", `step "a" {`)

		_, err := LoadHCL(testContext(), path)
		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, path, parseErr.Path)
	})

	t.Run("non-literal parameters are rejected", func(t *testing.T) {
		path := writeFile(t, "dynamic.hcl", `
step "strings.operations.Uppercase" "shout" {
  parameters {
    text = var.text
  }
}
`)
		_, err := LoadHCL(testContext(), path)
		assert.ErrorContains(t, err, "not a literal value")
	})

	t.Run("duplicate instance names are rejected", func(t *testing.T) {
		path := writeFile(t, "dup.hcl", `
step "strings.operations.Uppercase" "same" {}
step "strings.operations.Lowercase" "same" {}
`)
		_, err := LoadHCL(testContext(), path)
		assert.ErrorContains(t, err, "duplicate step instance name")
	})
}

const yamlDoc = `
pipeline:
  nodes:
    - component: strings.io.LiteralSource
      name: source
      parameters:
        value: hello world
        count: 3
        verbose: true
    - component: strings.operations.Uppercase
`

func TestLoadYAML(t *testing.T) {
	t.Run("parses nodes and parameters", func(t *testing.T) {
		path := writeFile(t, "pipeline.yaml", yamlDoc)

		doc, err := LoadYAML(testContext(), path)
		require.NoError(t, err)

		require.Len(t, doc.Steps, 2)
		assert.Equal(t, cty.StringVal("hello world"), doc.Steps[0].Parameters["value"])
		assert.Equal(t, cty.NumberIntVal(3), doc.Steps[0].Parameters["count"])
		assert.Equal(t, cty.True, doc.Steps[0].Parameters["verbose"])
		// Unnamed nodes get stable derived names.
		assert.Equal(t, "node_1", doc.Steps[1].Name)
	})

	t.Run("empty documents are rejected", func(t *testing.T) {
		path := writeFile(t, "empty.yaml", "pipeline: {}\n")

		_, err := LoadYAML(testContext(), path)
		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.ErrorContains(t, err, "no pipeline nodes")
	})

	t.Run("malformed yaml becomes ParseError", func(t *testing.T) {
		path := writeFile(t, "broken.yaml", "pipeline:\n  nodes: [\n")

		_, err := LoadYAML(testContext(), path)
		var parseErr *ParseError
		assert.ErrorAs(t, err, &parseErr)
	})

	t.Run("missing component name is rejected", func(t *testing.T) {
		path := writeFile(t, "nameless.yaml", `
pipeline:
  nodes:
    - name: orphan
`)
		_, err := LoadYAML(testContext(), path)
		assert.ErrorContains(t, err, "missing component name")
	})
}

func TestExtractComponents(t *testing.T) {
	t.Run("merges references across formats", func(t *testing.T) {
		dir := t.TempDir()
		hclPath := filepath.Join(dir, "a.hcl")
		yamlPath := filepath.Join(dir, "b.yaml")
		require.NoError(t, os.WriteFile(hclPath, []byte(hclDoc), 0o644))
		require.NoError(t, os.WriteFile(yamlPath, []byte(yamlDoc), 0o644))

		refs, docs, err := ExtractComponents(testContext(), []string{hclPath, yamlPath})
		require.NoError(t, err)

		assert.Equal(t, []string{"strings.io.LiteralSource", "strings.operations.Uppercase"}, refs)
		assert.Len(t, docs, 2)
	})

	t.Run("unknown formats fail", func(t *testing.T) {
		path := writeFile(t, "pipeline.toml", "")

		_, _, err := ExtractComponents(testContext(), []string{path})
		assert.ErrorContains(t, err, "unrecognized pipeline document format")
	})
}
