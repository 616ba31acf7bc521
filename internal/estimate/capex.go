// Package estimate derives facility financials: CapEx by acquisition mode,
// the quick per-square-foot operating model, top-line KPIs, and space
// allocation.
package estimate

import (
	"math"

	"github.com/rotisserie/eris"
)

// Mode is the facility acquisition mode. The soft-cost and contingency bases
// differ per mode; this is a required branch, not a single global formula.
type Mode string

const (
	ModeBuild Mode = "build"
	ModeBuy   Mode = "buy"
	ModeLease Mode = "lease"
)

// Valid reports whether m is a known acquisition mode.
func (m Mode) Valid() bool {
	return m == ModeBuild || m == ModeBuy || m == ModeLease
}

// CapExInput carries the mode-dependent cost drivers. Percentages are whole
// numbers (10 means 10%).
type CapExInput struct {
	Mode              Mode    `json:"mode"`
	SquareFeet        int     `json:"square_feet"`
	RegionMultiplier  float64 `json:"region_multiplier"` // 0 means 1.0
	SoftCostPct       float64 `json:"soft_cost_pct"`
	ContingencyPct    float64 `json:"contingency_pct"`
	FixturesAllowance float64 `json:"fixtures_allowance"`

	// build
	BuildingCostPerSf float64 `json:"building_cost_per_sf,omitempty"`
	LandPrice         float64 `json:"land_price,omitempty"`
	TenantImprovement float64 `json:"tenant_improvement,omitempty"`

	// buy
	PurchasePrice  float64 `json:"purchase_price,omitempty"`
	RenovationCost float64 `json:"renovation_cost,omitempty"`

	// lease
	TIGross      float64 `json:"ti_gross,omitempty"`
	TIAllowance  float64 `json:"ti_allowance,omitempty"`
	DepositsFees float64 `json:"deposits_fees,omitempty"`
}

// CapEx is the one-time capital expenditure breakdown.
type CapEx struct {
	Mode        Mode    `json:"mode"`
	HardCost    float64 `json:"hard_cost"`
	Renovation  float64 `json:"renovation,omitempty"`
	SoftCosts   float64 `json:"soft_costs"`
	Contingency float64 `json:"contingency"`
	Fixtures    float64 `json:"fixtures"`
	Total       float64 `json:"total"`
}

// ComputeCapEx applies the mode-specific basis table:
//
//	build: hard = building_cost_per_sf x SF (region-adjusted) + land
//	       soft = (building_cost + TI) x pct
//	       contingency = (building_cost + TI + soft) x pct
//	buy:   hard = purchase_price, renovation tracked separately
//	       soft = renovation x pct
//	       contingency = (renovation + soft) x pct
//	lease: TI_net = max(TI_gross - allowance, 0)
//	       soft = TI_net x pct
//	       contingency = (TI_net + soft + deposits_fees) x pct
//
// The region multiplier adjusts construction cost only. Entered local prices
// (land, purchase, rent, deposits) are never region-adjusted.
func ComputeCapEx(in CapExInput) (*CapEx, error) {
	if !in.Mode.Valid() {
		return nil, eris.Errorf("estimate: unknown acquisition mode %q", in.Mode)
	}
	if in.SquareFeet < 0 {
		return nil, eris.New("estimate: square feet must be non-negative")
	}

	region := in.RegionMultiplier
	if region <= 0 {
		region = 1.0
	}
	softPct := in.SoftCostPct / 100
	contPct := in.ContingencyPct / 100

	out := &CapEx{Mode: in.Mode, Fixtures: in.FixturesAllowance}

	switch in.Mode {
	case ModeBuild:
		buildingCost := in.BuildingCostPerSf * float64(in.SquareFeet) * region
		out.HardCost = buildingCost + in.LandPrice
		out.SoftCosts = (buildingCost + in.TenantImprovement) * softPct
		out.Contingency = (buildingCost + in.TenantImprovement + out.SoftCosts) * contPct
		out.Total = out.HardCost + in.TenantImprovement + out.SoftCosts + out.Contingency + out.Fixtures

	case ModeBuy:
		out.HardCost = in.PurchasePrice
		out.Renovation = in.RenovationCost
		out.SoftCosts = in.RenovationCost * softPct
		out.Contingency = (in.RenovationCost + out.SoftCosts) * contPct
		out.Total = out.HardCost + out.Renovation + out.SoftCosts + out.Contingency + out.Fixtures

	case ModeLease:
		tiNet := math.Max(in.TIGross-in.TIAllowance, 0)
		out.HardCost = tiNet
		out.SoftCosts = tiNet * softPct
		out.Contingency = (tiNet + out.SoftCosts + in.DepositsFees) * contPct
		out.Total = tiNet + out.SoftCosts + out.Contingency + in.DepositsFees + out.Fixtures
	}

	out.HardCost = roundCents(out.HardCost)
	out.SoftCosts = roundCents(out.SoftCosts)
	out.Contingency = roundCents(out.Contingency)
	out.Total = roundCents(out.Total)

	return out, nil
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
