// Package cost implements the deterministic cost roll-up engines. Two
// installation conventions coexist on purpose: the catalog roll-up applies
// each item's install factor, while the equipment-quote path books
// installation as a flat 50% of equipment plus flooring. Do not unify them.
package cost

import (
	"math"
	"sort"

	"github.com/rotisserie/eris"

	"github.com/fieldhouse-group/facility-cli/internal/catalog"
)

// LineItem is one priced equipment line.
type LineItem struct {
	ItemID    string  `json:"item_id"`
	Name      string  `json:"name"`
	Unit      string  `json:"unit"`
	Quantity  int     `json:"quantity"`
	UnitCost  float64 `json:"unit_cost"`
	TotalCost float64 `json:"total_cost"`
}

// CategoryTotal groups line items under one catalog category.
type CategoryTotal struct {
	Category string     `json:"category"`
	Items    []LineItem `json:"items"`
	Subtotal float64    `json:"subtotal"`
}

// Extra is an additional facility-wide line (lighting by SF, HVAC by tons)
// priced from the catalog alongside the preset equipment.
type Extra struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

// RollUpInput describes one roll-up request.
type RollUpInput struct {
	Sport            string         `json:"sport"`
	Units            map[string]int `json:"units"` // unit-type key -> count; nil uses preset recommendations
	Tier             catalog.Tier   `json:"tier"`
	RegionMultiplier float64        `json:"region_multiplier"` // 0 means 1.0
	Extras           []Extra        `json:"extras,omitempty"`
}

// RollUp is the categorized output of the install-factor roll-up.
type RollUp struct {
	Sport      string          `json:"sport"`
	Tier       catalog.Tier    `json:"tier"`
	Units      map[string]int  `json:"units"`
	Categories []CategoryTotal `json:"categories"`
	GrandTotal float64         `json:"grand_total"`
}

// Category returns the category total with the given name, if present.
func (r *RollUp) Category(name string) (CategoryTotal, bool) {
	for _, ct := range r.Categories {
		if ct.Category == name {
			return ct, true
		}
	}
	return CategoryTotal{}, false
}

// Calculator prices equipment against an injected catalog. It is stateless
// beyond the read-only catalog reference and safe for concurrent use.
type Calculator struct {
	cat *catalog.Catalog
}

// NewCalculator creates a Calculator over the given catalog.
func NewCalculator(cat *catalog.Catalog) *Calculator {
	return &Calculator{cat: cat}
}

// ItemTotal computes quantity x tier price x (1 + install_factor/100),
// rounded to cents.
func (c *Calculator) ItemTotal(tier catalog.Tier, item catalog.CostItem, qty int) float64 {
	if qty <= 0 {
		return 0
	}
	total := float64(qty) * item.Tiers.For(tier) * (1 + item.InstallFactorPct/100)
	return roundCents(total)
}

// RollUp resolves the sport preset's equipment formulas against the given
// unit counts and aggregates per-item totals (install factor included) into
// category subtotals and a grand total. The region multiplier is applied
// once per line; rent never flows through here.
func (c *Calculator) RollUp(in RollUpInput) (*RollUp, error) {
	preset, ok := c.cat.Preset(in.Sport)
	if !ok {
		return nil, eris.Errorf("cost: unknown sport %q", in.Sport)
	}
	if !in.Tier.Valid() {
		return nil, eris.Errorf("cost: unknown tier %q", in.Tier)
	}

	units := in.Units
	if len(units) == 0 {
		units = preset.RecommendedUnits
	}
	region := in.RegionMultiplier
	if region <= 0 {
		region = 1.0
	}

	byCategory := map[string][]LineItem{}
	addLine := func(category string, item catalog.CostItem, qty int) {
		if qty <= 0 {
			return
		}
		// Region multiplier goes in before the single cents rounding so
		// the line never drifts from qty x price x install x region.
		total := float64(qty) * item.Tiers.For(in.Tier) * (1 + item.InstallFactorPct/100) * region
		byCategory[category] = append(byCategory[category], LineItem{
			ItemID:    item.ID,
			Name:      item.Name,
			Unit:      item.Unit,
			Quantity:  qty,
			UnitCost:  item.Tiers.For(in.Tier),
			TotalCost: roundCents(total),
		})
	}

	for _, eq := range preset.DefaultEquipment {
		item, ok := c.cat.Item(eq.ItemID)
		if !ok {
			return nil, eris.Errorf("cost: preset %q references unknown item %q", in.Sport, eq.ItemID)
		}
		addLine(eq.Category, item, eq.Qty.Resolve(units))
	}

	for _, ex := range in.Extras {
		item, ok := c.cat.Item(ex.ItemID)
		if !ok {
			return nil, eris.Errorf("cost: unknown extra item %q", ex.ItemID)
		}
		addLine(item.Category, item, ex.Quantity)
	}

	out := &RollUp{Sport: in.Sport, Tier: in.Tier, Units: units}
	for _, category := range sortedKeys(byCategory) {
		ct := CategoryTotal{Category: category, Items: byCategory[category]}
		for _, li := range ct.Items {
			ct.Subtotal += li.TotalCost
		}
		ct.Subtotal = roundCents(ct.Subtotal)
		out.Categories = append(out.Categories, ct)
		out.GrandTotal += ct.Subtotal
	}
	out.GrandTotal = roundCents(out.GrandTotal)

	return out, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
