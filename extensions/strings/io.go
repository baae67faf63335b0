package stringsext

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rpezzi/pipelint/internal/component"
)

// DefaultLiteral is what LiteralValue produces when no value is configured.
const DefaultLiteral = "Hello, World!"

// PayloadContextKey is the context key PayloadSource writes its metadata to.
const PayloadContextKey = "strings.source"

// LiteralValue returns the configured value, or DefaultLiteral when empty.
func LiteralValue(value string) string {
	if value == "" {
		return DefaultLiteral
	}
	return value
}

// ReadFile reads a text file as UTF-8.
func ReadFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(content), nil
}

// WriteFile writes text to path, creating parent directories as needed.
func WriteFile(text, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// PayloadMeta is the context metadata a payload carries alongside its value.
type PayloadMeta struct {
	Source        string `cty:"source"`
	Timestamp     string `cty:"timestamp"`
	ContentLength int    `cty:"content_length"`
}

// Payload couples a text value with its context metadata.
type Payload struct {
	Value string      `cty:"value"`
	Meta  PayloadMeta `cty:"meta"`
}

// FetchPayload builds a payload around value, stamping source metadata.
func FetchPayload(value string) Payload {
	v := LiteralValue(value)
	return Payload{
		Value: v,
		Meta: PayloadMeta{
			Source:        "strings.io.PayloadSource",
			Timestamp:     time.Now().UTC().Format(time.RFC3339),
			ContentLength: len(v),
		},
	}
}

// StorePayload checks the payload's structure. The template extension has no
// external storage to write to; a real extension would persist here.
func StorePayload(p Payload) error {
	if !ValidateText(p.Value) {
		return fmt.Errorf("payload value is not valid text")
	}
	return nil
}

func ioDescriptors() []component.Descriptor {
	return []component.Descriptor{
		component.MustNew(component.Spec{
			Name:       "strings.io.LiteralSource",
			Kind:       component.KindDataSource,
			Doc:        "Produce a configurable literal text value.",
			OutputType: TypeText,
			Capabilities: []component.Capability{
				component.MustCapability(component.CapFetch, LiteralValue, "value"),
			},
		}),
		component.MustNew(component.Spec{
			Name:       "strings.io.FileSource",
			Kind:       component.KindDataSource,
			Doc:        "Read a text value from a file.",
			OutputType: TypeText,
			Capabilities: []component.Capability{
				component.MustCapability(component.CapFetch, ReadFile, "path"),
			},
		}),
		component.MustNew(component.Spec{
			Name:      "strings.io.FileSink",
			Kind:      component.KindDataSink,
			Doc:       "Write a text value to a file.",
			InputType: TypeText,
			Capabilities: []component.Capability{
				component.MustCapability(component.CapStore, WriteFile, "text", "path"),
			},
		}),
		component.MustNew(component.Spec{
			Name:        "strings.io.PayloadSource",
			Kind:        component.KindPayloadSource,
			Doc:         "Produce a text value together with source metadata.",
			OutputType:  TypeText,
			ContextKeys: []string{PayloadContextKey},
			Capabilities: []component.Capability{
				component.MustCapability(component.CapFetch, FetchPayload, "value"),
			},
		}),
		component.MustNew(component.Spec{
			Name:      "strings.io.PayloadSink",
			Kind:      component.KindPayloadSink,
			Doc:       "Accept a text payload and its context metadata.",
			InputType: TypeText,
			Capabilities: []component.Capability{
				component.MustCapability(component.CapStore, StorePayload, "payload"),
			},
		}),
	}
}
