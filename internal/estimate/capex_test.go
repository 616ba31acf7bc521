package estimate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeCapEx_Build(t *testing.T) {
	capex, err := ComputeCapEx(CapExInput{
		Mode:              ModeBuild,
		SquareFeet:        20_000,
		BuildingCostPerSf: 150,
		LandPrice:         500_000,
		TenantImprovement: 200_000,
		SoftCostPct:       10,
		ContingencyPct:    10,
		FixturesAllowance: 75_000,
	})
	require.NoError(t, err)

	// building = 150 x 20,000 = 3,000,000; hard = building + land
	assert.Equal(t, 3_500_000.0, capex.HardCost)
	// soft = (3,000,000 + 200,000) x 10%
	assert.Equal(t, 320_000.0, capex.SoftCosts)
	// contingency = (3,000,000 + 200,000 + 320,000) x 10%
	assert.Equal(t, 352_000.0, capex.Contingency)
	// total = hard + TI + soft + contingency + fixtures
	assert.Equal(t, 4_447_000.0, capex.Total)
}

func TestComputeCapEx_Build_RegionMultiplier(t *testing.T) {
	capex, err := ComputeCapEx(CapExInput{
		Mode:              ModeBuild,
		SquareFeet:        20_000,
		BuildingCostPerSf: 150,
		RegionMultiplier:  1.15,
	})
	require.NoError(t, err)

	// 150 x 20,000 x 1.15 = 3,450,000
	assert.Equal(t, 3_450_000.0, capex.HardCost)
}

func TestComputeCapEx_Build_LandNotRegionAdjusted(t *testing.T) {
	base, err := ComputeCapEx(CapExInput{
		Mode:       ModeBuild,
		SquareFeet: 10_000, BuildingCostPerSf: 100, LandPrice: 400_000,
	})
	require.NoError(t, err)

	scaled, err := ComputeCapEx(CapExInput{
		Mode:       ModeBuild,
		SquareFeet: 10_000, BuildingCostPerSf: 100, LandPrice: 400_000,
		RegionMultiplier: 1.2,
	})
	require.NoError(t, err)

	// Only the construction component scales: 1,000,000 -> 1,200,000.
	assert.Equal(t, base.HardCost+200_000, scaled.HardCost)
}

func TestComputeCapEx_Buy(t *testing.T) {
	capex, err := ComputeCapEx(CapExInput{
		Mode:           ModeBuy,
		SquareFeet:     18_000,
		PurchasePrice:  1_200_000,
		RenovationCost: 300_000,
		SoftCostPct:    12,
		ContingencyPct: 10,
	})
	require.NoError(t, err)

	assert.Equal(t, 1_200_000.0, capex.HardCost)
	assert.Equal(t, 300_000.0, capex.Renovation)
	// soft = renovation x 12%
	assert.Equal(t, 36_000.0, capex.SoftCosts)
	// contingency = (renovation + soft) x 10%
	assert.Equal(t, 33_600.0, capex.Contingency)
	assert.Equal(t, 1_569_600.0, capex.Total)
}

func TestComputeCapEx_Lease(t *testing.T) {
	capex, err := ComputeCapEx(CapExInput{
		Mode:           ModeLease,
		SquareFeet:     15_000,
		TIGross:        900_000,
		TIAllowance:    150_000,
		DepositsFees:   40_000,
		SoftCostPct:    10,
		ContingencyPct: 10,
	})
	require.NoError(t, err)

	// TI_net = 900,000 - 150,000
	assert.Equal(t, 750_000.0, capex.HardCost)
	assert.Equal(t, 75_000.0, capex.SoftCosts)
	// contingency = (750,000 + 75,000 + 40,000) x 10%
	assert.Equal(t, 86_500.0, capex.Contingency)
	assert.Equal(t, 951_500.0, capex.Total)
}

func TestComputeCapEx_Lease_AllowanceExceedsTI(t *testing.T) {
	capex, err := ComputeCapEx(CapExInput{
		Mode:        ModeLease,
		SquareFeet:  10_000,
		TIGross:     100_000,
		TIAllowance: 250_000,
	})
	require.NoError(t, err)

	// TI_net floors at zero, never negative.
	assert.Equal(t, 0.0, capex.HardCost)
	assert.Equal(t, 0.0, capex.Total)
}

func TestComputeCapEx_Errors(t *testing.T) {
	_, err := ComputeCapEx(CapExInput{Mode: "rent_to_own"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown acquisition mode")

	_, err = ComputeCapEx(CapExInput{Mode: ModeBuild, SquareFeet: -1})
	require.Error(t, err)
}
