package estimate

import (
	"strings"

	"github.com/rotisserie/eris"

	"github.com/fieldhouse-group/facility-cli/internal/catalog"
	"github.com/fieldhouse-group/facility-cli/internal/cost"
)

// hoursPerMonth converts an FTE hourly rate into a monthly staffing cost.
const hoursPerMonth = 173

// Input aggregates everything the planner collects across wizard steps:
// sports, sizing, tier, acquisition economics, staffing, and pricing
// assumptions.
type Input struct {
	Sports           []string       `json:"sports"`
	SquareFeet       int            `json:"square_feet"`
	Units            map[string]int `json:"units,omitempty"`
	Tier             catalog.Tier   `json:"tier"`
	RegionMultiplier float64        `json:"region_multiplier"`
	Extras           []cost.Extra   `json:"extras,omitempty"`

	CapEx CapExInput `json:"capex"`

	// Operating model. Per-SF overrides of the bucketed quick rates; zero
	// means "use the bucket default". Rent applies in lease mode and is
	// never region-adjusted.
	RevenuePerSfMonth float64 `json:"revenue_per_sf_month,omitempty"`
	OpexPerSfMonth    float64 `json:"opex_per_sf_month,omitempty"`
	MonthlyRent       float64 `json:"monthly_rent,omitempty"`
	StaffFTE          float64 `json:"staff_fte,omitempty"`
	StaffHourlyRate   float64 `json:"staff_hourly_rate,omitempty"`

	// Optional facility-design allocation percentages (must sum to 100
	// when present).
	SpaceAllocationPct map[string]float64 `json:"space_allocation_pct,omitempty"`
}

// Result is the full estimate: equipment roll-up, CapEx, operating KPIs,
// and the space plan.
type Result struct {
	Equipment       *cost.RollUp   `json:"equipment"`
	CapEx           *CapEx         `json:"capex"`
	CapExTotal      float64        `json:"capex_total"` // CapEx + equipment
	KPIs            KPIs           `json:"kpis"`
	RecommendedSf   int            `json:"recommended_sf"`
	SpaceAllocation map[string]int `json:"space_allocation,omitempty"`
}

// Run produces the full estimate for one input snapshot. It is a pure
// function of the input and catalog; callers recompute on every change
// rather than patching previous results.
func Run(calc *cost.Calculator, cat *catalog.Catalog, in Input) (*Result, error) {
	if len(in.Sports) == 0 {
		return nil, eris.New("estimate: at least one sport is required")
	}
	if in.SquareFeet <= 0 {
		return nil, eris.New("estimate: square feet must be positive")
	}
	tier := in.Tier
	if tier == "" {
		tier = catalog.TierMid
	}

	// Equipment: region-adjusted roll-up per selected sport, merged by
	// category so sports sharing one (both turf presets emit flooring)
	// produce a single combined entry.
	equipment := &cost.RollUp{
		Sport: strings.Join(in.Sports, ", "),
		Tier:  tier,
		Units: map[string]int{},
	}
	catIdx := map[string]int{}
	for _, sport := range in.Sports {
		r, err := calc.RollUp(cost.RollUpInput{
			Sport:            sport,
			Units:            in.Units,
			Tier:             tier,
			RegionMultiplier: in.RegionMultiplier,
			Extras:           in.Extras,
		})
		if err != nil {
			return nil, err
		}
		for _, ct := range r.Categories {
			if i, ok := catIdx[ct.Category]; ok {
				merged := &equipment.Categories[i]
				merged.Items = append(merged.Items, ct.Items...)
				merged.Subtotal = roundCents(merged.Subtotal + ct.Subtotal)
			} else {
				catIdx[ct.Category] = len(equipment.Categories)
				equipment.Categories = append(equipment.Categories, ct)
			}
		}
		for unit, count := range r.Units {
			equipment.Units[unit] = count
		}
		equipment.GrandTotal = roundCents(equipment.GrandTotal + r.GrandTotal)
		// Extras are facility-wide; only price them once.
		in.Extras = nil
	}

	capexIn := in.CapEx
	capexIn.SquareFeet = in.SquareFeet
	if capexIn.RegionMultiplier == 0 {
		capexIn.RegionMultiplier = in.RegionMultiplier
	}
	capex, err := ComputeCapEx(capexIn)
	if err != nil {
		return nil, err
	}
	capexTotal := roundCents(capex.Total + equipment.GrandTotal)

	// Operating model: bucket rates unless overridden. Rent and staffing
	// are added on top of the per-SF opex; rent is intentionally left
	// untouched by the region multiplier.
	rates := perSfRates[SizeTierFor(in.SquareFeet)]
	revPerSf := in.RevenuePerSfMonth
	if revPerSf <= 0 {
		revPerSf = rates.revenue
	}
	opexPerSf := in.OpexPerSfMonth
	if opexPerSf <= 0 {
		opexPerSf = rates.opex
	}

	sf := float64(in.SquareFeet)
	monthlyRevenue := revPerSf * sf
	monthlyOpex := opexPerSf*sf + in.MonthlyRent + in.StaffFTE*in.StaffHourlyRate*hoursPerMonth

	recommendedSf, err := RecommendedSquareFootage(cat, in.Sports, in.Units)
	if err != nil {
		return nil, err
	}

	out := &Result{
		Equipment:     equipment,
		CapEx:         capex,
		CapExTotal:    capexTotal,
		KPIs:          ComputeKPIs(capexTotal, monthlyRevenue, monthlyOpex),
		RecommendedSf: recommendedSf,
	}

	if len(in.SpaceAllocationPct) > 0 {
		alloc, err := AllocateSpace(in.SquareFeet, in.SpaceAllocationPct)
		if err != nil {
			return nil, err
		}
		out.SpaceAllocation = alloc
	}

	return out, nil
}
