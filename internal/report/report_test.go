package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldhouse-group/facility-cli/internal/catalog"
	"github.com/fieldhouse-group/facility-cli/internal/cost"
	"github.com/fieldhouse-group/facility-cli/internal/estimate"
)

func TestCurrency(t *testing.T) {
	assert.Equal(t, "$1,234,567.89", Currency(1234567.89))
	assert.Equal(t, "$0.00", Currency(0))
	assert.Equal(t, "$950.50", Currency(950.50))
}

func TestNumber(t *testing.T) {
	assert.Equal(t, "18,248", Number(18248))
	assert.Equal(t, "950", Number(950))
}

func samplePlan(t *testing.T) Plan {
	t.Helper()
	cat := catalog.Default()
	calc := cost.NewCalculator(cat)

	in := estimate.Input{
		Sports:     []string{"baseball_softball"},
		SquareFeet: 12000,
		Tier:       catalog.TierMid,
		CapEx: estimate.CapExInput{
			Mode:              estimate.ModeLease,
			TIGross:           500000,
			TIAllowance:       100000,
			SoftCostPct:       10,
			ContingencyPct:    10,
			DepositsFees:      20000,
			FixturesAllowance: 50000,
		},
	}
	result, err := estimate.Run(calc, cat, in)
	require.NoError(t, err)
	return Plan{Input: in, Result: result}
}

func TestRender(t *testing.T) {
	p := samplePlan(t)
	out := Render(p)

	assert.Contains(t, out, "FACILITY BUSINESS PLAN")
	assert.Contains(t, out, "baseball_softball")
	assert.Contains(t, out, "CAPITAL EXPENDITURE")
	assert.Contains(t, out, "EQUIPMENT BY CATEGORY")
	assert.Contains(t, out, "OPERATING PROJECTIONS")
	assert.Contains(t, out, "Hard cost")
	assert.Contains(t, out, "$400,000.00")
	assert.Contains(t, out, "lease")
}

func TestRender_WithSummary(t *testing.T) {
	p := samplePlan(t)
	p.Summary = "A promising plan."
	out := Render(p)
	assert.Contains(t, out, "A promising plan.")
}

func TestRender_NoBreakEven(t *testing.T) {
	p := samplePlan(t)
	p.Result.KPIs.BreakEvenMonths = nil
	out := Render(p)
	assert.Contains(t, out, "not reached")
}

func TestRender_SpaceAllocation(t *testing.T) {
	p := samplePlan(t)
	p.Result.SpaceAllocation = map[string]int{"courts": 8000, "lobby": 4000}
	out := Render(p)
	assert.Contains(t, out, "SPACE ALLOCATION")
	assert.Contains(t, out, "courts")
	assert.Contains(t, out, "8,000")
}
