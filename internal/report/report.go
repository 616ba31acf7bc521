// Package report renders plan estimates as readable text and exports data
// workbooks.
package report

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/fieldhouse-group/facility-cli/internal/cost"
	"github.com/fieldhouse-group/facility-cli/internal/estimate"
)

// printer is the locale-aware message printer for number formatting.
var printer = message.NewPrinter(language.English)

// Currency formats a dollar amount with thousand separators.
func Currency(v float64) string {
	return printer.Sprintf("$%.2f", v)
}

// Number formats an integer with thousand separators.
func Number(n int) string {
	return printer.Sprintf("%d", n)
}

// Plan bundles everything the rendered report draws from.
type Plan struct {
	Input   estimate.Input
	Result  *estimate.Result
	Summary string // optional narrative; omitted from the report when empty
}

// Render produces the text business-plan report.
func Render(p Plan) string {
	var b strings.Builder

	b.WriteString("FACILITY BUSINESS PLAN\n")
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	if p.Summary != "" {
		b.WriteString(p.Summary)
		b.WriteString("\n\n")
	}

	fmt.Fprintf(&b, "Sports:          %s\n", strings.Join(p.Input.Sports, ", "))
	fmt.Fprintf(&b, "Square footage:  %s SF", Number(p.Input.SquareFeet))
	if p.Result.RecommendedSf > 0 {
		fmt.Fprintf(&b, " (recommended: %s SF)", Number(p.Result.RecommendedSf))
	}
	b.WriteString("\n")
	if p.Input.CapEx.Mode != "" {
		fmt.Fprintf(&b, "Acquisition:     %s\n", p.Input.CapEx.Mode)
	}
	b.WriteString("\n")

	renderCapEx(&b, p.Result)
	renderEquipment(&b, p.Result.Equipment)
	renderKPIs(&b, p.Result.KPIs)

	if len(p.Result.SpaceAllocation) > 0 {
		b.WriteString("SPACE ALLOCATION\n")
		b.WriteString(strings.Repeat("-", 60) + "\n")
		for _, name := range sortedKeys(p.Result.SpaceAllocation) {
			fmt.Fprintf(&b, "  %-28s %10s SF\n", name, Number(p.Result.SpaceAllocation[name]))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func renderCapEx(b *strings.Builder, r *estimate.Result) {
	c := r.CapEx
	b.WriteString("CAPITAL EXPENDITURE\n")
	b.WriteString(strings.Repeat("-", 60) + "\n")
	fmt.Fprintf(b, "  %-28s %14s\n", "Hard cost", Currency(c.HardCost))
	if c.Renovation > 0 {
		fmt.Fprintf(b, "  %-28s %14s\n", "Renovation", Currency(c.Renovation))
	}
	fmt.Fprintf(b, "  %-28s %14s\n", "Soft costs", Currency(c.SoftCosts))
	fmt.Fprintf(b, "  %-28s %14s\n", "Contingency", Currency(c.Contingency))
	fmt.Fprintf(b, "  %-28s %14s\n", "Fixtures", Currency(c.Fixtures))
	fmt.Fprintf(b, "  %-28s %14s\n", "Equipment", Currency(r.Equipment.GrandTotal))
	fmt.Fprintf(b, "  %-28s %14s\n", "TOTAL", Currency(r.CapExTotal))
	b.WriteString("\n")
}

func renderEquipment(b *strings.Builder, ru *cost.RollUp) {
	if ru == nil || len(ru.Categories) == 0 {
		return
	}
	b.WriteString("EQUIPMENT BY CATEGORY\n")
	b.WriteString(strings.Repeat("-", 60) + "\n")
	for _, cat := range ru.Categories {
		fmt.Fprintf(b, "  %-28s %14s\n", cat.Category, Currency(cat.Subtotal))
	}
	b.WriteString("\n")
}

func renderKPIs(b *strings.Builder, k estimate.KPIs) {
	b.WriteString("OPERATING PROJECTIONS\n")
	b.WriteString(strings.Repeat("-", 60) + "\n")
	fmt.Fprintf(b, "  %-28s %14s\n", "Monthly revenue", Currency(k.MonthlyRevenue))
	fmt.Fprintf(b, "  %-28s %14s\n", "Monthly operating cost", Currency(k.MonthlyOpEx))
	fmt.Fprintf(b, "  %-28s %14s\n", "Monthly EBITDA", Currency(k.MonthlyEBITDA))
	if k.BreakEvenMonths != nil {
		fmt.Fprintf(b, "  %-28s %11d mo\n", "Break-even", *k.BreakEvenMonths)
	} else {
		fmt.Fprintf(b, "  %-28s %14s\n", "Break-even", "not reached")
	}
	fmt.Fprintf(b, "  %-28s %13.1f%%\n", "Annual ROI", k.ROIPct)
	b.WriteString("\n")
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
