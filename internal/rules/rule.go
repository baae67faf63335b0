// Package rules defines the contract-rule model and the built-in catalog.
//
// Each rule is one independently addressable check: a stable code, a fixed
// severity, the component kinds it applies to, and a pure check function over
// immutable descriptors and a frozen registry snapshot. Rules never mutate
// anything and never observe each other, which is what lets the catalog grow
// without rule authors coordinating.
package rules

import (
	"fmt"
	"slices"

	"github.com/rpezzi/pipelint/internal/component"
	"github.com/rpezzi/pipelint/internal/registry"
)

// Severity classifies a rule's findings. It is fixed per rule, not per
// invocation.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Severities lists the severities in report order, most severe first.
var Severities = []Severity{SeverityError, SeverityWarning, SeverityInfo}

// Finding is one raw result of a check: the component it concerns and a
// human-actionable message. The engine stamps on rule code, severity, and
// source location.
type Finding struct {
	Component string
	Message   string
}

// Scope is the target set of one evaluation: the descriptors under review,
// any component names referenced by pipeline documents, and whether the
// scope covers a whole registry (which enables whole-registry checks that
// would misfire on a partial view).
type Scope struct {
	Descriptors   []component.Descriptor
	PipelineRefs  []string
	WholeRegistry bool
}

// Rule is one contract check. Exactly one of Check and CheckScope is set for
// evaluable rules: Check runs once per in-scope descriptor of an applicable
// kind, CheckScope runs once per evaluation for cross-component concerns.
// Rules with neither are reserved codes whose diagnostics are produced
// outside the engine (import failures, registration conflicts); declaring
// them here keeps the exported catalog the single source of truth for every
// code the tool can emit.
type Rule struct {
	Code        string
	Severity    Severity
	Kinds       []component.Kind // nil means all kinds
	Description string

	Check      func(d component.Descriptor, snap *registry.Snapshot) []Finding
	CheckScope func(scope Scope, snap *registry.Snapshot) []Finding
}

// AppliesTo reports whether the rule applies to descriptors of kind k.
func (r Rule) AppliesTo(k component.Kind) bool {
	return r.Kinds == nil || slices.Contains(r.Kinds, k)
}

// Catalog is an ordered, code-unique collection of rules. Declaration order
// is evaluation order, which makes diagnostic sequences reproducible.
type Catalog struct {
	rules  []Rule
	byCode map[string]Rule
}

// NewCatalog builds a catalog, rejecting duplicate codes.
func NewCatalog(rules ...Rule) (*Catalog, error) {
	c := &Catalog{byCode: make(map[string]Rule, len(rules))}
	for _, r := range rules {
		if r.Code == "" {
			return nil, fmt.Errorf("rule with empty code")
		}
		if _, dup := c.byCode[r.Code]; dup {
			return nil, fmt.Errorf("duplicate rule code %q", r.Code)
		}
		if r.Check != nil && r.CheckScope != nil {
			return nil, fmt.Errorf("rule %s: Check and CheckScope are mutually exclusive", r.Code)
		}
		c.byCode[r.Code] = r
		c.rules = append(c.rules, r)
	}
	return c, nil
}

// MustCatalog is NewCatalog for static catalogs.
func MustCatalog(rules ...Rule) *Catalog {
	c, err := NewCatalog(rules...)
	if err != nil {
		panic(err)
	}
	return c
}

// Rules returns the catalog's rules in declaration order.
func (c *Catalog) Rules() []Rule {
	return slices.Clone(c.rules)
}

// Lookup returns the rule registered under code.
func (c *Catalog) Lookup(code string) (Rule, bool) {
	r, ok := c.byCode[code]
	return r, ok
}

// Len returns the number of rules in the catalog.
func (c *Catalog) Len() int {
	return len(c.rules)
}
