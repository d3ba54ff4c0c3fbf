package check

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/indaco/depsync/internal/depgraph"
	"github.com/indaco/depsync/internal/operations"
	"github.com/indaco/depsync/internal/printer"
)

// fixHint is printed when violations remain on disk.
const fixHint = "To fix run with '--fix'"

// Formatter renders check outcomes.
type Formatter struct {
	format printer.OutputFormat
}

// NewFormatter creates a new Formatter with the specified output format.
func NewFormatter(format printer.OutputFormat) *Formatter {
	return &Formatter{format: format}
}

// FormatOutcome formats a check outcome for display.
func (f *Formatter) FormatOutcome(o *operations.Outcome) string {
	switch f.format {
	case printer.FormatJSON:
		return f.formatJSON(o)
	case printer.FormatTable:
		return f.formatTable(o)
	default:
		return f.formatText(o)
	}
}

// formatText prints one line per checked declaration in scan order.
func (f *Formatter) formatText(o *operations.Outcome) string {
	var sb strings.Builder

	for _, c := range o.Report.Checks {
		sb.WriteString(checkLine(c, o.Fix != nil))
		sb.WriteString("\n")
	}

	if len(o.Report.Checks) > 0 {
		sb.WriteString("\n")
	}
	sb.WriteString(f.FormatSummary(o))
	sb.WriteString("\n")

	if o.Unresolved() > 0 {
		sb.WriteString(printer.Faint(fixHint))
		sb.WriteString("\n")
	}
	if o.FailOnMissing && len(o.Report.Missing) > 0 {
		sb.WriteString(printer.Faint("Missing internal packages fail the check (policy.fail-on-missing)"))
		sb.WriteString("\n")
	}

	return sb.String()
}

// checkLine renders a single declaration.
func checkLine(c depgraph.Check, fixed bool) string {
	ref := fmt.Sprintf("%s (%s): %s@%s", c.Owner, c.Kind, c.Dependency, c.Declared)

	switch c.Status {
	case depgraph.StatusMismatch:
		verb := "update to"
		if fixed {
			verb = "updated to"
		}
		return fmt.Sprintf("%s %s → %s %s", printer.Error(printer.MarkFail), ref, verb, c.Expected)
	case depgraph.StatusMissing:
		return fmt.Sprintf("%s %s not found in workspace", printer.Warning(printer.MarkWarn), ref)
	default:
		return fmt.Sprintf("%s %s", printer.Success(printer.MarkOK), ref)
	}
}

// formatTable renders the checks as a table followed by the summary.
func (f *Formatter) formatTable(o *operations.Outcome) string {
	var sb strings.Builder

	if len(o.Report.Checks) > 0 {
		rows := make([][]string, len(o.Report.Checks))
		for i, c := range o.Report.Checks {
			rows[i] = []string{c.Owner, c.Kind.String(), c.Dependency, c.Declared, c.Expected, statusLabel(c.Status, o.Fix != nil)}
		}

		t := table.New().
			Border(lipgloss.NormalBorder()).
			StyleFunc(func(row, _ int) lipgloss.Style {
				style := lipgloss.NewStyle().Padding(0, 1)
				if row == table.HeaderRow {
					return style.Bold(true)
				}
				return style
			}).
			Headers("OWNER", "KIND", "DEPENDENCY", "DECLARED", "EXPECTED", "STATUS").
			Rows(rows...)

		sb.WriteString(t.String())
		sb.WriteString("\n\n")
	}

	sb.WriteString(f.FormatSummary(o))
	sb.WriteString("\n")
	return sb.String()
}

// statusLabel is the table status column for s.
func statusLabel(s depgraph.Status, fixed bool) string {
	if s == depgraph.StatusMismatch && fixed {
		return "fixed"
	}
	return string(s)
}

// jsonOutput is the machine-readable form of a check outcome.
type jsonOutput struct {
	Packages   int                         `json:"packages"`
	Checks     []depgraph.Check            `json:"checks"`
	Violations []depgraph.Violation        `json:"violations"`
	Missing    []depgraph.MissingReference `json:"missing"`
	Fix        *jsonFix                    `json:"fix,omitempty"`
	Summary    jsonSummary                 `json:"summary"`
}

type jsonFix struct {
	Applied int      `json:"applied"`
	Updated []string `json:"updated"`
}

type jsonSummary struct {
	Checked    int  `json:"checked"`
	Consistent int  `json:"consistent"`
	Mismatched int  `json:"mismatched"`
	Missing    int  `json:"missing"`
	Unresolved int  `json:"unresolved"`
	Passed     bool `json:"passed"`
	ExitCode   int  `json:"exit_code"`
}

// formatJSON renders the outcome as indented JSON.
func (f *Formatter) formatJSON(o *operations.Outcome) string {
	out := jsonOutput{
		Checks:     nonNil(o.Report.Checks),
		Violations: nonNil(o.Report.Violations),
		Missing:    nonNil(o.Report.Missing),
		Summary: jsonSummary{
			Checked:    len(o.Report.Checks),
			Consistent: o.Report.Count(depgraph.StatusMatch),
			Mismatched: o.Report.Count(depgraph.StatusMismatch),
			Missing:    o.Report.Count(depgraph.StatusMissing),
			Unresolved: o.Unresolved(),
			Passed:     o.ExitCode() == operations.ExitOK,
			ExitCode:   o.ExitCode(),
		},
	}
	if o.Graph != nil {
		out.Packages = o.Graph.Len()
	}
	if o.Fix != nil {
		out.Fix = &jsonFix{Applied: o.Fix.Applied, Updated: nonNil(o.Fix.Updated)}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting JSON: %v\n", err)
		return ""
	}
	return string(data) + "\n"
}

// FormatSummary returns a one-line summary of the outcome.
func (f *Formatter) FormatSummary(o *operations.Outcome) string {
	packages := 0
	if o.Graph != nil {
		packages = o.Graph.Len()
	}

	checked := len(o.Report.Checks)
	if checked == 0 {
		return printer.Faint(fmt.Sprintf("No internal dependencies found in %d package(s)", packages))
	}

	parts := []string{printer.Success(fmt.Sprintf("%d consistent", o.Report.Count(depgraph.StatusMatch)))}
	if n := o.Report.Count(depgraph.StatusMismatch); n > 0 {
		label := "%d mismatched"
		if o.Fix != nil {
			label = "%d fixed"
		}
		parts = append(parts, printer.Error(fmt.Sprintf(label, n)))
	}
	if n := o.Report.Count(depgraph.StatusMissing); n > 0 {
		parts = append(parts, printer.Warning(fmt.Sprintf("%d missing", n)))
	}

	summary := fmt.Sprintf("Checked %d internal dependencies in %d package(s): %s",
		checked, packages, strings.Join(parts, ", "))

	if o.Fix != nil && len(o.Fix.Updated) > 0 {
		summary += fmt.Sprintf(" | Updated %d manifest(s)", len(o.Fix.Updated))
	}

	return summary
}

// nonNil keeps empty lists as [] in JSON output.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
