package estimate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeKPIs_Positive(t *testing.T) {
	k := ComputeKPIs(600_000, 45_000, 30_000)

	assert.Equal(t, 15_000.0, k.MonthlyEBITDA)
	require.NotNil(t, k.BreakEvenMonths)
	assert.Equal(t, 40, *k.BreakEvenMonths)
	// 15,000 x 12 / 600,000 x 100 = 30%
	assert.Equal(t, 30.0, k.ROIPct)
}

func TestComputeKPIs_BreakEvenRoundsUp(t *testing.T) {
	k := ComputeKPIs(100_000, 40_000, 33_000)
	// 100,000 / 7,000 = 14.28... -> 15 months
	require.NotNil(t, k.BreakEvenMonths)
	assert.Equal(t, 15, *k.BreakEvenMonths)
}

func TestComputeKPIs_ZeroEBITDAHasNoBreakEven(t *testing.T) {
	k := ComputeKPIs(500_000, 30_000, 30_000)

	assert.Equal(t, 0.0, k.MonthlyEBITDA)
	assert.Nil(t, k.BreakEvenMonths)
	assert.Equal(t, 0.0, k.ROIPct)
}

func TestComputeKPIs_NegativeEBITDAHasNoBreakEven(t *testing.T) {
	k := ComputeKPIs(500_000, 20_000, 30_000)

	assert.Equal(t, -10_000.0, k.MonthlyEBITDA)
	assert.Nil(t, k.BreakEvenMonths)
	// ROI can be negative; break-even cannot.
	assert.Less(t, k.ROIPct, 0.0)
}

func TestComputeKPIs_ZeroCapEx(t *testing.T) {
	k := ComputeKPIs(0, 10_000, 5_000)

	assert.Nil(t, k.BreakEvenMonths)
	assert.Equal(t, 0.0, k.ROIPct)
}
