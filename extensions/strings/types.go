package stringsext

import (
	"unicode/utf8"

	"github.com/rpezzi/pipelint/internal/component"
)

// Qualified component names of the extension's data types.
const (
	TypeText           = "strings.types.Text"
	TypeTextCollection = "strings.types.TextCollection"
)

// ValidateText accepts any well-formed UTF-8 string.
func ValidateText(value string) bool {
	return utf8.ValidString(value)
}

// ValidateTextCollection accepts a slice whose every element is valid text.
func ValidateTextCollection(values []string) bool {
	for _, v := range values {
		if !ValidateText(v) {
			return false
		}
	}
	return true
}

func typeDescriptors() []component.Descriptor {
	return []component.Descriptor{
		component.MustNew(component.Spec{
			Name: TypeText,
			Kind: component.KindDataType,
			Doc:  "A single text value.",
			Capabilities: []component.Capability{
				component.MustCapability(component.CapValidate, ValidateText, "value"),
			},
		}),
		component.MustNew(component.Spec{
			Name:        TypeTextCollection,
			Kind:        component.KindDataCollectionType,
			Doc:         "An ordered collection of text values.",
			ElementType: TypeText,
			Capabilities: []component.Capability{
				component.MustCapability(component.CapValidate, ValidateTextCollection, "values"),
			},
		}),
	}
}
