package stringsext

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpezzi/pipelint/internal/ctxlog"
	"github.com/rpezzi/pipelint/internal/engine"
	"github.com/rpezzi/pipelint/internal/registry"
	"github.com/rpezzi/pipelint/internal/rules"
)

func testContext() context.Context {
	return ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestOperations(t *testing.T) {
	assert.Equal(t, "HELLO", Uppercase("Hello"))
	assert.Equal(t, "hello", Lowercase("Hello"))
	assert.Equal(t, "Hello!", Concatenate("Hello", "!"))
	assert.Equal(t, "a, b, c", JoinCollection([]string{"a", "b", "c"}, ", "))
	assert.Equal(t, "", JoinCollection(nil, ", "))
}

func TestAnalyze(t *testing.T) {
	m := Analyze("Hello World 42")
	assert.Equal(t, "Hello World 42", m.Value)
	assert.Equal(t, 14, m.Length)
	assert.Equal(t, 3, m.WordCount)
	assert.Equal(t, 2, m.UppercaseCount)
	assert.Equal(t, 8, m.LowercaseCount)
	assert.Equal(t, 2, m.DigitCount)
	assert.Equal(t, 2, m.WhitespaceCount)
	assert.False(t, m.IsEmpty)
	assert.False(t, m.IsNumeric)
	assert.False(t, m.IsAlphabetic)
	assert.True(t, m.HasUppercase)
	assert.True(t, m.HasLowercase)

	empty := Analyze("")
	assert.True(t, empty.IsEmpty)
	assert.False(t, empty.IsNumeric)
	assert.False(t, empty.IsAlphabetic)

	assert.True(t, Analyze("1234").IsNumeric)
	assert.True(t, Analyze("abc").IsAlphabetic)
}

func TestLength(t *testing.T) {
	assert.Equal(t, 5, Length("héllo"))
	assert.Equal(t, 0, Length(""))
}

func TestValidation(t *testing.T) {
	assert.True(t, ValidateText("plain"))
	assert.False(t, ValidateText(string([]byte{0xff, 0xfe})))
	assert.True(t, ValidateTextCollection([]string{"a", "b"}))
	assert.False(t, ValidateTextCollection([]string{"a", string([]byte{0xff})}))
}

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.txt")
	require.NoError(t, WriteFile("written by test", path))

	content, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "written by test", content)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLiteralAndPayload(t *testing.T) {
	assert.Equal(t, DefaultLiteral, LiteralValue(""))
	assert.Equal(t, "custom", LiteralValue("custom"))

	p := FetchPayload("content")
	assert.Equal(t, "content", p.Value)
	assert.Equal(t, "strings.io.PayloadSource", p.Meta.Source)
	assert.Equal(t, 7, p.Meta.ContentLength)
	assert.NotEmpty(t, p.Meta.Timestamp)

	require.NoError(t, StorePayload(p))
	assert.Error(t, StorePayload(Payload{Value: string([]byte{0xff})}))
}

// The extension must pass its own contract validation with zero errors.
func TestSelfLint(t *testing.T) {
	ctx := testContext()
	reg := registry.New()
	for _, m := range New().Modules() {
		require.NoError(t, registry.Import(ctx, reg, m))
	}

	snap := reg.Snapshot()
	scope := rules.Scope{Descriptors: snap.Descriptors(), WholeRegistry: true}

	diagnostics, err := engine.Evaluate(ctx, scope, snap, rules.Builtin(), engine.Options{})
	require.NoError(t, err)
	for _, d := range diagnostics {
		assert.NotEqual(t, rules.SeverityError, d.Severity,
			"%s: %s: %s", d.RuleCode, d.Component, d.Message)
	}
}

func TestModuleLayout(t *testing.T) {
	e := New()
	assert.Equal(t, "strings", e.Name())

	modules := e.Modules()
	require.Len(t, modules, 5)
	assert.Equal(t, ModuleTypes, modules[0].Path())

	reg := registry.New()
	for _, m := range modules {
		require.NoError(t, registry.Import(testContext(), reg, m))
	}
	d, ok := reg.Lookup("strings.operations.Uppercase")
	require.True(t, ok)
	assert.Equal(t, ModuleOperations, d.SourceLocation)
}
