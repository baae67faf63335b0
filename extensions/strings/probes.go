package stringsext

import (
	"strings"
	"unicode"

	"github.com/rpezzi/pipelint/internal/component"
)

// TextMetrics is the full analysis result of one text value.
type TextMetrics struct {
	Value           string `cty:"value"`
	Length          int    `cty:"length"`
	WordCount       int    `cty:"word_count"`
	UppercaseCount  int    `cty:"uppercase_count"`
	LowercaseCount  int    `cty:"lowercase_count"`
	DigitCount      int    `cty:"digit_count"`
	WhitespaceCount int    `cty:"whitespace_count"`
	IsEmpty         bool   `cty:"is_empty"`
	IsNumeric       bool   `cty:"is_numeric"`
	IsAlphabetic    bool   `cty:"is_alphabetic"`
	HasUppercase    bool   `cty:"has_uppercase"`
	HasLowercase    bool   `cty:"has_lowercase"`
}

// Analyze computes character-class counts and content flags for text.
func Analyze(text string) TextMetrics {
	m := TextMetrics{
		Value:        text,
		WordCount:    len(strings.Fields(text)),
		IsEmpty:      text == "",
		IsNumeric:    text != "",
		IsAlphabetic: text != "",
	}
	for _, r := range text {
		m.Length++
		switch {
		case unicode.IsUpper(r):
			m.UppercaseCount++
		case unicode.IsLower(r):
			m.LowercaseCount++
		}
		if unicode.IsDigit(r) {
			m.DigitCount++
		} else {
			m.IsNumeric = false
		}
		if unicode.IsSpace(r) {
			m.WhitespaceCount++
		}
		if !unicode.IsLetter(r) {
			m.IsAlphabetic = false
		}
	}
	m.HasUppercase = m.UppercaseCount > 0
	m.HasLowercase = m.LowercaseCount > 0
	return m
}

// Length returns the number of runes in text.
func Length(text string) int {
	return len([]rune(text))
}

func probeDescriptors() []component.Descriptor {
	return []component.Descriptor{
		component.MustNew(component.Spec{
			Name:      "strings.probes.Analyze",
			Kind:      component.KindProbe,
			Doc:       "Report character-class counts and content flags for text.",
			InputType: TypeText,
			Capabilities: []component.Capability{
				component.MustCapability(component.CapProbe, Analyze, "text"),
			},
		}),
		component.MustNew(component.Spec{
			Name:      "strings.probes.Length",
			Kind:      component.KindProbe,
			Doc:       "Report the length of text in runes.",
			InputType: TypeText,
			Capabilities: []component.Capability{
				component.MustCapability(component.CapProbe, Length, "text"),
			},
		}),
	}
}
