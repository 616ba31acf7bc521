package estimate

import "github.com/rotisserie/eris"

// SizeTier buckets a facility by square footage for the quick model.
type SizeTier string

const (
	SizeSmall  SizeTier = "small"  // under 15,000 SF
	SizeMedium SizeTier = "medium" // 15,000 - 29,999 SF
	SizeLarge  SizeTier = "large"  // 30,000 SF and up
)

// SizeTierFor returns the size bucket for the given square footage.
func SizeTierFor(sf int) SizeTier {
	switch {
	case sf < 15_000:
		return SizeSmall
	case sf < 30_000:
		return SizeMedium
	default:
		return SizeLarge
	}
}

// perSfRates holds the quick model's monthly $/SF multipliers. Smaller
// facilities run hotter per square foot on both sides of the ledger.
var perSfRates = map[SizeTier]struct{ revenue, opex float64 }{
	SizeSmall:  {revenue: 2.50, opex: 1.60},
	SizeMedium: {revenue: 2.25, opex: 1.45},
	SizeLarge:  {revenue: 2.00, opex: 1.30},
}

// QuickInput drives the coarse single-pass estimate. Percentages are whole
// numbers.
type QuickInput struct {
	SquareFeet        int     `json:"square_feet"`
	TIPerSf           float64 `json:"ti_per_sf"`
	SoftCostPct       float64 `json:"soft_cost_pct"`
	ContingencyPct    float64 `json:"contingency_pct"`
	FixturesAllowance float64 `json:"fixtures_allowance"`
	RegionMultiplier  float64 `json:"region_multiplier"` // 0 means 1.0
}

// QuickEstimate is the coarse $/SF output. It is deliberately a separate,
// simpler model than the catalog roll-up plus mode-based CapEx; the two are
// not expected to reconcile.
type QuickEstimate struct {
	SizeTier   SizeTier `json:"size_tier"`
	CapExTotal float64  `json:"capex_total"`
	KPIs       KPIs     `json:"kpis"`
}

// ComputeQuick runs the quick path:
//
//	capex = ti_per_sf x SF x region x (1 + soft%) x (1 + contingency%) + fixtures
//	revenue/opex = bucketed $/SF/month x SF
func ComputeQuick(in QuickInput) (*QuickEstimate, error) {
	if in.SquareFeet <= 0 {
		return nil, eris.New("estimate: square feet must be positive")
	}

	region := in.RegionMultiplier
	if region <= 0 {
		region = 1.0
	}

	tier := SizeTierFor(in.SquareFeet)
	rates := perSfRates[tier]
	sf := float64(in.SquareFeet)

	capex := in.TIPerSf*sf*region*(1+in.SoftCostPct/100)*(1+in.ContingencyPct/100) + in.FixturesAllowance
	capex = roundCents(capex)

	return &QuickEstimate{
		SizeTier:   tier,
		CapExTotal: capex,
		KPIs:       ComputeKPIs(capex, rates.revenue*sf, rates.opex*sf),
	}, nil
}
