package catalog

// Assumption documents one adjustable estimation input: what it defaults to,
// the formula that consumes it, and any known pitfall. These back the
// assumption tooltips; nothing computes against them at runtime.
type Assumption struct {
	Key     string  `yaml:"key" json:"key"`
	Label   string  `yaml:"label" json:"label"`
	Default float64 `yaml:"default" json:"default"`
	Formula string  `yaml:"formula" json:"formula"`
	Pitfall string  `yaml:"pitfall,omitempty" json:"pitfall,omitempty"`
}

func defaultAssumptions() []Assumption {
	return []Assumption{
		{
			Key:     "region_multiplier",
			Label:   "Region cost multiplier",
			Default: 1.0,
			Formula: "hard_costs = base_hard_costs * region_multiplier; equipment = base_equipment * region_multiplier",
			Pitfall: "Applies to hard costs and equipment only. Never apply it to rent: rent quotes are already local.",
		},
		{
			Key:     "contingency_pct",
			Label:   "Contingency %",
			Default: 10,
			Formula: "contingency = contingency_basis * contingency_pct / 100 (basis depends on acquisition mode)",
		},
		{
			Key:     "soft_cost_pct",
			Label:   "Soft costs %",
			Default: 12,
			Formula: "soft_costs = soft_cost_basis * soft_cost_pct / 100 (basis depends on acquisition mode)",
		},
		{
			Key:     "circulation_factor",
			Label:   "Circulation / common area factor",
			Default: 1.3,
			Formula: "recommended_sf = sum(per_unit_space_sf * units) * circulation_factor",
		},
		{
			Key:     "install_factor_pct",
			Label:   "Install factor %",
			Default: 0,
			Formula: "item_total = qty * unit_cost * (1 + install_factor_pct / 100)",
			Pitfall: "The equipment-quote tool instead books installation as a flat 50% of equipment plus flooring. The two conventions are intentional and separate.",
		},
		{
			Key:     "ti_per_sf",
			Label:   "Tenant improvement $/SF",
			Default: 55,
			Formula: "quick_capex = ti_per_sf * sf * (1 + soft_cost_pct/100) * (1 + contingency_pct/100) + fixtures_allowance",
		},
		{
			Key:     "fixtures_allowance",
			Label:   "Fixtures allowance",
			Default: 75000,
			Formula: "added once to CapEx after soft costs and contingency",
		},
		{
			Key:     "revenue_per_sf_month",
			Label:   "Revenue $/SF/month",
			Default: 2.25,
			Formula: "monthly_revenue = revenue_per_sf_month * sf (bucketed by facility size tier)",
		},
		{
			Key:     "opex_per_sf_month",
			Label:   "Operating cost $/SF/month",
			Default: 1.45,
			Formula: "monthly_opex = opex_per_sf_month * sf (bucketed by facility size tier)",
		},
	}
}
