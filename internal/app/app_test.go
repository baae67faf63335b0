package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpezzi/pipelint/internal/component"
	"github.com/rpezzi/pipelint/internal/extension"
	"github.com/rpezzi/pipelint/internal/registry"
)

type fakeExtension struct {
	name    string
	modules []registry.Module
}

func (f fakeExtension) Name() string               { return f.name }
func (f fakeExtension) Modules() []registry.Module { return f.modules }

func newApp(t *testing.T, cfg Config, extensions ...extension.Extension) (*App, *bytes.Buffer) {
	t.Helper()
	validated, err := NewConfig(cfg)
	require.NoError(t, err)
	var out bytes.Buffer
	return NewApp(&out, &bytes.Buffer{}, validated, extensions...), &out
}

func TestNewConfig(t *testing.T) {
	_, err := NewConfig(Config{})
	assert.ErrorContains(t, err, "nothing to validate")

	_, err = NewConfig(Config{Watch: true, Extensions: []string{"strings"}})
	assert.ErrorContains(t, err, "watch mode")

	cfg, err := NewConfig(Config{Extensions: []string{"strings"}})
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Workers)
}

func TestRunBuiltinExtensionPasses(t *testing.T) {
	a, out := newApp(t, Config{Extensions: []string{"strings"}, Workers: 4})
	require.NoError(t, a.Run(context.Background()))
	assert.Contains(t, out.String(), "PASS: 0 error(s)")
}

func TestRunUnknownExtension(t *testing.T) {
	a, _ := newApp(t, Config{Extensions: []string{"images"}})
	err := a.Run(context.Background())

	var notFound *extension.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "images", notFound.Name)
}

func TestRunUnknownModule(t *testing.T) {
	a, _ := newApp(t, Config{Modules: []string{"strings.nonsense"}})
	err := a.Run(context.Background())
	assert.ErrorContains(t, err, `module "strings.nonsense" not provided`)
}

func TestRunSingleModuleScope(t *testing.T) {
	// Importing only strings.types leaves the registry without any
	// component referencing TextCollection, so the orphan warning fires,
	// but warnings never fail a run.
	a, out := newApp(t, Config{Modules: []string{"strings.types"}})
	require.NoError(t, a.Run(context.Background()))
	assert.Contains(t, out.String(), "RC002")
	assert.Contains(t, out.String(), "PASS")
}

func TestRunPipelineScope(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "pipe.hcl")
	require.NoError(t, os.WriteFile(doc, []byte(`
step "strings.operations.Uppercase" "shout" {}
step "strings.ops.Ghost" "haunt" {}
`), 0o644))

	a, out := newApp(t, Config{Targets: []string{doc}})
	err := a.Run(context.Background())
	require.ErrorIs(t, err, ErrValidationFailed)

	// The referenced module was imported, the ghost reported.
	assert.Contains(t, out.String(), "ERROR RC001: strings.ops.Ghost")
	assert.NotContains(t, out.String(), "RC002")
}

func TestRunPipelineScopeSkipsModuleSiblings(t *testing.T) {
	text := component.MustNew(component.Spec{
		Name: "demo.types.Text",
		Kind: component.KindDataType,
		Doc:  "A text value.",
		Capabilities: []component.Capability{
			component.MustCapability(component.CapValidate, func(v string) bool { return true }, "value"),
		},
	})
	upper := component.MustNew(component.Spec{
		Name:       "demo.ops.Upper",
		Kind:       component.KindOperation,
		Doc:        "Uppercase text.",
		InputType:  "demo.types.Text",
		OutputType: "demo.types.Text",
		Capabilities: []component.Capability{
			component.MustCapability(component.CapProcess, func(s string) string { return s }, "text"),
		},
	})
	// No capabilities, no metadata: linting it would raise CT001 and the
	// MD presence errors.
	broken := component.MustNew(component.Spec{
		Name: "demo.ops.Broken",
		Kind: component.KindOperation,
	})
	demo := fakeExtension{
		name: "demo",
		modules: []registry.Module{
			registry.DescriptorModule("demo.types", text),
			registry.DescriptorModule("demo.ops", upper, broken),
		},
	}

	dir := t.TempDir()
	doc := filepath.Join(dir, "pipe.hcl")
	require.NoError(t, os.WriteFile(doc, []byte(`
step "demo.ops.Upper" "shout" {}
`), 0o644))

	// Importing demo.ops to resolve Upper drags in its sibling Broken, but
	// only the referenced component is linted.
	t.Run("pipeline scope", func(t *testing.T) {
		a, out := newApp(t, Config{Targets: []string{doc}}, demo)
		require.NoError(t, a.Run(context.Background()))
		assert.Contains(t, out.String(), "PASS: 0 error(s)")
		assert.NotContains(t, out.String(), "demo.ops.Broken")
	})

	// Naming the extension explicitly puts its whole surface back in scope.
	t.Run("with extension flag", func(t *testing.T) {
		a, out := newApp(t, Config{Targets: []string{doc}, Extensions: []string{"demo"}}, demo)
		err := a.Run(context.Background())
		require.ErrorIs(t, err, ErrValidationFailed)
		assert.Contains(t, out.String(), "demo.ops.Broken")
	})
}

func TestRunPipelineParseError(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "broken.hcl")
	require.NoError(t, os.WriteFile(doc, []byte(`step "only-one-label" {`), 0o644))

	a, _ := newApp(t, Config{Targets: []string{doc}})
	err := a.Run(context.Background())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrValidationFailed)
}

func TestRunImportFailureBecomesDiagnostic(t *testing.T) {
	broken := fakeExtension{
		name: "broken",
		modules: []registry.Module{
			registry.NewModule("broken.boom", func(*registry.Registry) error {
				return errors.New("exploded")
			}),
			registry.DescriptorModule("broken.ok", component.MustNew(component.Spec{
				Name: "broken.ok.Text",
				Kind: component.KindDataType,
				Doc:  "Survives the sibling failure.",
				Capabilities: []component.Capability{
					component.MustCapability(component.CapValidate, func(v string) bool { return true }, "value"),
				},
			})),
		},
	}

	a, out := newApp(t, Config{Extensions: []string{"broken"}}, broken)
	err := a.Run(context.Background())
	require.ErrorIs(t, err, ErrValidationFailed)
	assert.Contains(t, out.String(), "ERROR IM001: broken.boom")
	// The surviving module is still validated.
	assert.Contains(t, out.String(), "broken.ok.Text")
}

func TestRunConflictBecomesDiagnostic(t *testing.T) {
	mkType := func(doc string) component.Descriptor {
		return component.MustNew(component.Spec{
			Name: "dup.types.Text",
			Kind: component.KindDataType,
			Doc:  doc,
			Capabilities: []component.Capability{
				component.MustCapability(component.CapValidate, func(v string) bool { return true }, "value"),
			},
		})
	}
	dup := fakeExtension{
		name: "dup",
		modules: []registry.Module{
			registry.DescriptorModule("dup.types", mkType("First claim.")),
			registry.DescriptorModule("dup.shadow", mkType("Divergent claim.")),
		},
	}

	a, out := newApp(t, Config{Extensions: []string{"dup"}}, dup)
	err := a.Run(context.Background())
	require.ErrorIs(t, err, ErrValidationFailed)
	assert.Contains(t, out.String(), "ERROR RG001: dup.types.Text")
}

func TestRunExportContracts(t *testing.T) {
	t.Run("to stdout", func(t *testing.T) {
		a, out := newApp(t, Config{ExportPath: "-"})
		require.NoError(t, a.Run(context.Background()))
		assert.Contains(t, out.String(), "| CT001 |")
		assert.Contains(t, out.String(), "| RG001 |")
	})

	t.Run("to file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "contracts.md")
		a, out := newApp(t, Config{ExportPath: path})
		require.NoError(t, a.Run(context.Background()))
		assert.Empty(t, out.String())

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "| MD004 |")
	})
}

func TestRunJSONRecords(t *testing.T) {
	a, out := newApp(t, Config{Modules: []string{"strings.types"}, JSON: true})
	require.NoError(t, a.Run(context.Background()))
	assert.Contains(t, out.String(), `"rule":"RC002"`)
	assert.NotContains(t, out.String(), "PASS:")
}
