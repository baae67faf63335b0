package stringsext

import (
	"time"

	"github.com/rpezzi/pipelint/internal/component"
)

// Context keys written by the extension's context processors.
const (
	EchoContextKey     = "strings.echo"
	MetadataContextKey = "strings.metadata"
)

// EchoUpdate is the value Echo writes under EchoContextKey.
type EchoUpdate struct {
	Message string `cty:"message"`
}

// Echo wraps a message for the context.
func Echo(message string) EchoUpdate {
	return EchoUpdate{Message: message}
}

// MetadataUpdate is the value Metadata writes under MetadataContextKey.
type MetadataUpdate struct {
	Processor string `cty:"processor"`
	Version   string `cty:"version"`
	Timestamp string `cty:"timestamp"`
}

// Metadata produces processor metadata, optionally stamped with the current
// time.
func Metadata(includeTimestamp bool) MetadataUpdate {
	m := MetadataUpdate{
		Processor: "strings.context.Metadata",
		Version:   "1.0.0",
	}
	if includeTimestamp {
		m.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}
	return m
}

func contextDescriptors() []component.Descriptor {
	return []component.Descriptor{
		component.MustNew(component.Spec{
			Name:        "strings.context.Echo",
			Kind:        component.KindContextProcessor,
			Doc:         "Write a configurable message into the context.",
			ContextKeys: []string{EchoContextKey},
			Capabilities: []component.Capability{
				component.MustCapability(component.CapProcess, Echo, "message"),
			},
		}),
		component.MustNew(component.Spec{
			Name:        "strings.context.Metadata",
			Kind:        component.KindContextProcessor,
			Doc:         "Write processor metadata into the context.",
			ContextKeys: []string{MetadataContextKey},
			Capabilities: []component.Capability{
				component.MustCapability(component.CapProcess, Metadata, "include_timestamp"),
			},
		}),
	}
}
