// Package catalog holds the immutable pricing catalogs: the cost library,
// the sport presets, and the assumption documentation. Catalogs are built
// once (from the compiled-in defaults or a YAML file) and passed by
// reference into the calculation engines.
package catalog

// Tier selects one of the three price-confidence bands for a catalog item.
type Tier string

const (
	TierLow  Tier = "low"
	TierMid  Tier = "mid"
	TierHigh Tier = "high"
)

// Valid reports whether t is a known tier.
func (t Tier) Valid() bool {
	return t == TierLow || t == TierMid || t == TierHigh
}

// Item categories.
const (
	CategoryFlooring        = "flooring"
	CategoryBaseball        = "baseball"
	CategoryBasketball      = "basketball"
	CategoryBuildingSystems = "building_systems"
	CategorySafety          = "safety"
	CategoryTechnology      = "technology"
	CategoryFixtures        = "fixtures"
	CategoryNetting         = "netting"
	CategoryProtection      = "protection"
	CategoryEquipment       = "equipment"
)

// CostTiers holds the three currency-per-unit price bands for an item.
// Low <= Mid <= High is expected of catalog data but not enforced.
type CostTiers struct {
	Low  float64 `yaml:"low" json:"low"`
	Mid  float64 `yaml:"mid" json:"mid"`
	High float64 `yaml:"high" json:"high"`
}

// For returns the price for the given tier. Unknown tiers fall back to mid.
func (c CostTiers) For(t Tier) float64 {
	switch t {
	case TierLow:
		return c.Low
	case TierHigh:
		return c.High
	default:
		return c.Mid
	}
}

// CostItem is a priced catalog entry.
type CostItem struct {
	ID               string    `yaml:"id" json:"id"`
	Name             string    `yaml:"name" json:"name"`
	Category         string    `yaml:"category" json:"category"`
	Unit             string    `yaml:"unit" json:"unit"` // sf, each, pair, lf, lump sum
	Tiers            CostTiers `yaml:"tiers" json:"tiers"`
	InstallFactorPct float64   `yaml:"install_factor_pct" json:"install_factor_pct"`
}
