package stringsext

import (
	"strings"

	"github.com/rpezzi/pipelint/internal/component"
)

// Uppercase converts text to upper case.
func Uppercase(text string) string {
	return strings.ToUpper(text)
}

// Lowercase converts text to lower case.
func Lowercase(text string) string {
	return strings.ToLower(text)
}

// Concatenate appends suffix to text.
func Concatenate(text, suffix string) string {
	return text + suffix
}

// JoinCollection joins the collection's values with separator.
func JoinCollection(values []string, separator string) string {
	return strings.Join(values, separator)
}

func operationDescriptors() []component.Descriptor {
	return []component.Descriptor{
		component.MustNew(component.Spec{
			Name:       "strings.operations.Uppercase",
			Kind:       component.KindOperation,
			Doc:        "Convert text to upper case.",
			InputType:  TypeText,
			OutputType: TypeText,
			Capabilities: []component.Capability{
				component.MustCapability(component.CapProcess, Uppercase, "text"),
			},
		}),
		component.MustNew(component.Spec{
			Name:       "strings.operations.Lowercase",
			Kind:       component.KindOperation,
			Doc:        "Convert text to lower case.",
			InputType:  TypeText,
			OutputType: TypeText,
			Capabilities: []component.Capability{
				component.MustCapability(component.CapProcess, Lowercase, "text"),
			},
		}),
		component.MustNew(component.Spec{
			Name:       "strings.operations.Concatenate",
			Kind:       component.KindOperation,
			Doc:        "Append a configurable suffix to text.",
			InputType:  TypeText,
			OutputType: TypeText,
			Capabilities: []component.Capability{
				component.MustCapability(component.CapProcess, Concatenate, "text", "suffix"),
			},
		}),
		component.MustNew(component.Spec{
			Name:       "strings.operations.JoinCollection",
			Kind:       component.KindOperation,
			Doc:        "Join a text collection into one value with a separator.",
			InputType:  TypeTextCollection,
			OutputType: TypeText,
			Capabilities: []component.Capability{
				component.MustCapability(component.CapProcess, JoinCollection, "values", "separator"),
			},
		}),
	}
}
