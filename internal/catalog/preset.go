package catalog

// EquipmentSpec is one default-equipment entry within a sport preset. The
// quantity formula is parsed at catalog load; resolution happens against the
// live unit counts a user entered (or the preset's recommended units).
type EquipmentSpec struct {
	ItemID    string  `yaml:"item" json:"item"`
	Category  string  `yaml:"category" json:"category"`
	Qty       Formula `yaml:"qty" json:"qty"`
	Perimeter bool    `yaml:"perimeter,omitempty" json:"perimeter,omitempty"`
}

// SportPreset is a template describing one sport's spatial and equipment
// needs. RecommendedUnits and PerUnitSpaceSf are keyed by unit-type
// (e.g. "baseball_tunnels", "basketball_courts_full").
type SportPreset struct {
	Sport            string          `yaml:"sport" json:"sport"`
	Label            string          `yaml:"label" json:"label"`
	RecommendedUnits map[string]int  `yaml:"recommended_units" json:"recommended_units"`
	PerUnitSpaceSf   map[string]int  `yaml:"per_unit_space_sf" json:"per_unit_space_sf"`
	MinClearHeightFt int             `yaml:"min_clear_height_ft" json:"min_clear_height_ft"`
	FlooringType     string          `yaml:"flooring_type" json:"flooring_type"`
	DefaultEquipment []EquipmentSpec `yaml:"default_equipment" json:"default_equipment"`
}

// RecommendedSpaceSf returns the raw square footage the preset's recommended
// unit counts consume, before any circulation allowance.
func (p SportPreset) RecommendedSpaceSf() int {
	total := 0
	for unit, count := range p.RecommendedUnits {
		total += p.PerUnitSpaceSf[unit] * count
	}
	return total
}
