package list

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/indaco/depsync/internal/depgraph"
	"github.com/indaco/depsync/internal/printer"
)

// Formatter renders package listings.
type Formatter struct {
	format printer.OutputFormat
	// base is the directory paths are shown relative to.
	base string
}

// NewFormatter creates a new Formatter with the specified output format.
// Paths are shown relative to the working directory when possible.
func NewFormatter(format printer.OutputFormat) *Formatter {
	base, _ := os.Getwd()
	return &Formatter{format: format, base: base}
}

// FormatUsages formats the package usages for display.
func (f *Formatter) FormatUsages(usages []depgraph.Usage) string {
	switch f.format {
	case printer.FormatJSON:
		return f.formatJSON(usages)
	case printer.FormatTable:
		return f.formatTable(usages)
	default:
		return f.formatText(usages)
	}
}

func (f *Formatter) formatText(usages []depgraph.Usage) string {
	var sb strings.Builder

	sb.WriteString(printer.Info("Internal Packages"))
	sb.WriteString("\n")
	sb.WriteString(printer.Faint(strings.Repeat("-", 70)))
	sb.WriteString("\n")

	for _, u := range usages {
		fmt.Fprintf(&sb, "%s %s %s %s\n", statusSymbol(u), printer.Bold(u.Name), u.Version, printer.Faint(f.relPath(u.Path)))
		for _, s := range u.Declared {
			line := fmt.Sprintf("    %s ← %s", s.Version, strings.Join(s.Owners, ", "))
			if s.Version != u.Version {
				line = printer.Warning(line)
			}
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}

	sb.WriteString(printer.Faint(strings.Repeat("-", 70)))
	sb.WriteString("\n")
	sb.WriteString(formatSummary(usages))
	sb.WriteString("\n")
	return sb.String()
}

func (f *Formatter) formatTable(usages []depgraph.Usage) string {
	rows := make([][]string, len(usages))
	for i, u := range usages {
		rows[i] = []string{
			u.Name,
			u.Version,
			f.relPath(u.Path),
			fmt.Sprintf("%d", u.Dependencies),
			fmt.Sprintf("%d", u.Dependents),
			consistencyLabel(u),
		}
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
		Headers("NAME", "VERSION", "PATH", "DEPS", "DEPENDENTS", "STATUS").
		Rows(rows...)

	return t.String() + "\n\n" + formatSummary(usages) + "\n"
}

func (f *Formatter) formatJSON(usages []depgraph.Usage) string {
	type jsonPackage struct {
		depgraph.Usage
		Consistent bool `json:"consistent"`
	}

	packages := make([]jsonPackage, len(usages))
	for i, u := range usages {
		u.Path = f.relPath(u.Path)
		packages[i] = jsonPackage{Usage: u, Consistent: u.Consistent()}
	}

	output := struct {
		Packages []jsonPackage `json:"packages"`
		Count    int           `json:"count"`
	}{
		Packages: packages,
		Count:    len(packages),
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting JSON: %v\n", err)
		return ""
	}
	return string(data) + "\n"
}

// relPath shows p relative to the formatter base when it lies below it.
func (f *Formatter) relPath(p string) string {
	if f.base == "" || !filepath.IsAbs(p) {
		return p
	}
	rel, err := filepath.Rel(f.base, p)
	if err != nil || strings.HasPrefix(rel, "..") {
		return p
	}
	return rel
}

func statusSymbol(u depgraph.Usage) string {
	switch {
	case len(u.Declared) == 0:
		return printer.Faint("•")
	case u.Consistent():
		return printer.Success(printer.MarkOK)
	default:
		return printer.Error(printer.MarkFail)
	}
}

func consistencyLabel(u depgraph.Usage) string {
	switch {
	case len(u.Declared) == 0:
		return "unused"
	case u.Consistent():
		return "consistent"
	default:
		return "inconsistent"
	}
}

func formatSummary(usages []depgraph.Usage) string {
	if len(usages) == 0 {
		return printer.Faint("No packages found")
	}

	declarations, inconsistent := 0, 0
	for _, u := range usages {
		declarations += u.Dependents
		if !u.Consistent() {
			inconsistent++
		}
	}

	summary := fmt.Sprintf("Found: %d package(s), %d internal declaration(s)", len(usages), declarations)
	if inconsistent > 0 {
		summary += ", " + printer.Warning(fmt.Sprintf("%d inconsistent", inconsistent))
	}
	return summary
}
