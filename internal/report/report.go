// Package report turns diagnostics into run results and rendered output.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/rpezzi/pipelint/internal/engine"
	"github.com/rpezzi/pipelint/internal/rules"
)

// Outcome is the overall verdict of one validation run.
type Outcome string

const (
	OutcomePass Outcome = "pass"
	OutcomeFail Outcome = "fail"
)

// Run is the complete result of one validation pass: a unique ID for
// correlating records, a human description of what was validated, and the
// ordered diagnostics.
type Run struct {
	ID          uuid.UUID
	Scope       string
	Diagnostics []engine.Diagnostic
	Outcome     Outcome
}

// NewRun stamps a fresh run ID and computes the outcome: a run fails exactly
// when at least one error-severity diagnostic is present. Warnings and info
// never fail a run.
func NewRun(scope string, diagnostics []engine.Diagnostic) Run {
	outcome := OutcomePass
	if engine.HasErrors(diagnostics) {
		outcome = OutcomeFail
	}
	return Run{
		ID:          uuid.New(),
		Scope:       scope,
		Diagnostics: diagnostics,
		Outcome:     outcome,
	}
}

// Counts returns the number of diagnostics per severity.
func (r Run) Counts() map[rules.Severity]int {
	counts := make(map[rules.Severity]int)
	for _, d := range r.Diagnostics {
		counts[d.Severity]++
	}
	return counts
}

// Render writes the human-readable report: diagnostics grouped by severity
// in report order, then a one-line summary with the verdict.
func Render(w io.Writer, run Run) error {
	for _, severity := range rules.Severities {
		for _, d := range run.Diagnostics {
			if d.Severity != severity {
				continue
			}
			line := fmt.Sprintf("%s %s: %s: %s", strings.ToUpper(string(d.Severity)), d.RuleCode, d.Component, d.Message)
			if d.Location != "" {
				line += fmt.Sprintf(" (%s)", d.Location)
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}

	counts := run.Counts()
	_, err := fmt.Fprintf(w, "%s: %d error(s), %d warning(s), %d info (run %s, scope %s)\n",
		strings.ToUpper(string(run.Outcome)),
		counts[rules.SeverityError], counts[rules.SeverityWarning], counts[rules.SeverityInfo],
		run.ID, run.Scope)
	return err
}

// record is the machine-readable shape of one diagnostic.
type record struct {
	RunID     string `json:"run_id"`
	Rule      string `json:"rule"`
	Severity  string `json:"severity"`
	Component string `json:"component"`
	Message   string `json:"message"`
	Location  string `json:"location,omitempty"`
}

// WriteRecords writes the run as newline-delimited JSON, one record per
// diagnostic, in the same order Render uses for text output.
func WriteRecords(w io.Writer, run Run) error {
	enc := json.NewEncoder(w)
	for _, severity := range rules.Severities {
		for _, d := range run.Diagnostics {
			if d.Severity != severity {
				continue
			}
			rec := record{
				RunID:     run.ID.String(),
				Rule:      d.RuleCode,
				Severity:  string(d.Severity),
				Component: d.Component,
				Message:   d.Message,
				Location:  d.Location,
			}
			if err := enc.Encode(rec); err != nil {
				return err
			}
		}
	}
	return nil
}

// ExportCatalog writes the rule catalog as a markdown document. Every code
// the tool can emit appears in the export, including codes produced during
// loading rather than rule evaluation.
func ExportCatalog(w io.Writer, catalog *rules.Catalog) error {
	if _, err := fmt.Fprintf(w, "# Contract rules\n\n| Code | Severity | Applies to | Description |\n|------|----------|------------|-------------|\n"); err != nil {
		return err
	}
	for _, r := range catalog.Rules() {
		applies := "all components"
		if r.Check == nil && r.CheckScope == nil {
			applies = "loading"
		} else if r.CheckScope != nil {
			applies = "scope"
		} else if r.Kinds != nil {
			names := make([]string, len(r.Kinds))
			for i, k := range r.Kinds {
				names[i] = string(k)
			}
			applies = strings.Join(names, ", ")
		}
		if _, err := fmt.Fprintf(w, "| %s | %s | %s | %s |\n", r.Code, r.Severity, applies, r.Description); err != nil {
			return err
		}
	}
	return nil
}
