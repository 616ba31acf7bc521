package estimate

import "math"

// KPIs are the top-line numbers every report leads with.
type KPIs struct {
	MonthlyRevenue  float64  `json:"monthly_revenue"`
	MonthlyOpEx     float64  `json:"monthly_opex"`
	MonthlyEBITDA   float64  `json:"monthly_ebitda"`
	BreakEvenMonths *int     `json:"break_even_months"` // nil when EBITDA <= 0
	ROIPct          float64  `json:"roi_pct"`
}

// ComputeKPIs derives EBITDA, break-even, and annualized ROI. Break-even is
// nil unless monthly EBITDA is positive: a facility that never cash-flows
// has no break-even month, not an infinite one.
func ComputeKPIs(capexTotal, monthlyRevenue, monthlyOpex float64) KPIs {
	k := KPIs{
		MonthlyRevenue: roundCents(monthlyRevenue),
		MonthlyOpEx:    roundCents(monthlyOpex),
		MonthlyEBITDA:  roundCents(monthlyRevenue - monthlyOpex),
	}

	if k.MonthlyEBITDA > 0 && capexTotal > 0 {
		months := int(math.Ceil(capexTotal / k.MonthlyEBITDA))
		k.BreakEvenMonths = &months
	}

	if capexTotal > 0 {
		k.ROIPct = roundCents(k.MonthlyEBITDA * 12 / capexTotal * 100)
	}

	return k
}
