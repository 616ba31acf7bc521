package catalog

import (
	"os"
	"sort"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Catalog bundles the cost library, sport presets, and assumption docs.
// Build one with Default or LoadFile and share it read-only; the calculation
// engines take it by reference and never mutate it.
type Catalog struct {
	Items       map[string]CostItem    `yaml:"items" json:"items"`
	Presets     map[string]SportPreset `yaml:"presets" json:"presets"`
	Assumptions []Assumption           `yaml:"assumptions" json:"assumptions"`
}

// Item returns the cost item with the given id.
func (c *Catalog) Item(id string) (CostItem, bool) {
	it, ok := c.Items[id]
	return it, ok
}

// Preset returns the preset for the given sport key.
func (c *Catalog) Preset(sport string) (SportPreset, bool) {
	p, ok := c.Presets[sport]
	return p, ok
}

// Sports returns the preset keys in sorted order.
func (c *Catalog) Sports() []string {
	keys := make([]string, 0, len(c.Presets))
	for k := range c.Presets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Assumption returns the assumption doc for the given key.
func (c *Catalog) Assumption(key string) (Assumption, bool) {
	for _, a := range c.Assumptions {
		if a.Key == key {
			return a, true
		}
	}
	return Assumption{}, false
}

// Validate checks catalog integrity: non-negative prices, install factors in
// range, preset equipment referencing known items, and formulas referencing
// only unit keys the preset declares. Fails fast at load rather than
// producing silent zero quantities at estimation time.
func (c *Catalog) Validate() error {
	for id, item := range c.Items {
		if item.ID != id {
			return eris.Errorf("catalog: item %q keyed as %q", item.ID, id)
		}
		if item.Tiers.Low < 0 || item.Tiers.Mid < 0 || item.Tiers.High < 0 {
			return eris.Errorf("catalog: item %q has negative tier price", id)
		}
		if item.InstallFactorPct < 0 || item.InstallFactorPct > 100 {
			return eris.Errorf("catalog: item %q install factor %.1f out of range", id, item.InstallFactorPct)
		}
	}

	for sport, preset := range c.Presets {
		if preset.Sport != sport {
			return eris.Errorf("catalog: preset %q keyed as %q", preset.Sport, sport)
		}
		for unit := range preset.RecommendedUnits {
			if _, ok := preset.PerUnitSpaceSf[unit]; !ok {
				return eris.Errorf("catalog: preset %q missing space for unit %q", sport, unit)
			}
		}
		for _, eq := range preset.DefaultEquipment {
			if _, ok := c.Items[eq.ItemID]; !ok {
				return eris.Errorf("catalog: preset %q references unknown item %q", sport, eq.ItemID)
			}
			if eq.Qty.Kind != FormulaLiteral {
				if _, ok := preset.RecommendedUnits[eq.Qty.Key]; !ok {
					return eris.Errorf("catalog: preset %q formula %q references undeclared unit %q",
						sport, eq.Qty.String(), eq.Qty.Key)
				}
			}
		}
	}

	return nil
}

// LoadFile reads a catalog from a YAML file and validates it. Lets alternate
// pricing sets (per-region catalogs) replace the defaults without a rebuild.
func LoadFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "catalog: read %s", path)
	}

	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, eris.Wrapf(err, "catalog: parse %s", path)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}
