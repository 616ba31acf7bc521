package cost

import (
	"time"

	"github.com/rotisserie/eris"

	"github.com/fieldhouse-group/facility-cli/internal/catalog"
)

// QuoteTotals breaks down an equipment quote. Installation here is a flat
// 50% of equipment plus flooring, not the per-item install factors used by
// Calculator.RollUp. Both conventions are load-bearing; keep them separate.
type QuoteTotals struct {
	Equipment    float64 `json:"equipment"`
	Flooring     float64 `json:"flooring"`
	Installation float64 `json:"installation"`
	GrandTotal   float64 `json:"grand_total"`
}

// QuoteMetadata records how a quote was produced.
type QuoteMetadata struct {
	GeneratedAt      time.Time    `json:"generated_at"`
	Tier             catalog.Tier `json:"tier"`
	RegionMultiplier float64      `json:"region_multiplier"`
}

// EquipmentQuote is the final output of the equipment-quote path.
type EquipmentQuote struct {
	Sport      string          `json:"sport"`
	Units      map[string]int  `json:"units"`
	Categories []CategoryTotal `json:"categories"`
	Totals     QuoteTotals     `json:"totals"`
	Metadata   QuoteMetadata   `json:"metadata"`
}

const quoteInstallPct = 0.50

// BuildEquipmentQuote prices a sport's default equipment list at bare unit
// cost (no per-item install factor), splits flooring from equipment, and
// adds the flat 50% installation allowance on top of both.
func (c *Calculator) BuildEquipmentQuote(sport string, units map[string]int, tier catalog.Tier, regionMultiplier float64) (*EquipmentQuote, error) {
	preset, ok := c.cat.Preset(sport)
	if !ok {
		return nil, eris.Errorf("cost: unknown sport %q", sport)
	}
	if !tier.Valid() {
		return nil, eris.Errorf("cost: unknown tier %q", tier)
	}
	if len(units) == 0 {
		units = preset.RecommendedUnits
	}
	region := regionMultiplier
	if region <= 0 {
		region = 1.0
	}

	byCategory := map[string][]LineItem{}
	for _, eq := range preset.DefaultEquipment {
		item, ok := c.cat.Item(eq.ItemID)
		if !ok {
			return nil, eris.Errorf("cost: preset %q references unknown item %q", sport, eq.ItemID)
		}
		qty := eq.Qty.Resolve(units)
		if qty <= 0 {
			continue
		}
		unitCost := item.Tiers.For(tier)
		byCategory[eq.Category] = append(byCategory[eq.Category], LineItem{
			ItemID:    item.ID,
			Name:      item.Name,
			Unit:      item.Unit,
			Quantity:  qty,
			UnitCost:  unitCost,
			TotalCost: roundCents(float64(qty) * unitCost * region),
		})
	}

	q := &EquipmentQuote{
		Sport: sport,
		Units: units,
		Metadata: QuoteMetadata{
			GeneratedAt:      time.Now().UTC(),
			Tier:             tier,
			RegionMultiplier: region,
		},
	}

	for _, category := range sortedKeys(byCategory) {
		ct := CategoryTotal{Category: category, Items: byCategory[category]}
		for _, li := range ct.Items {
			ct.Subtotal += li.TotalCost
		}
		ct.Subtotal = roundCents(ct.Subtotal)
		q.Categories = append(q.Categories, ct)

		if category == catalog.CategoryFlooring {
			q.Totals.Flooring += ct.Subtotal
		} else {
			q.Totals.Equipment += ct.Subtotal
		}
	}

	q.Totals.Equipment = roundCents(q.Totals.Equipment)
	q.Totals.Flooring = roundCents(q.Totals.Flooring)
	q.Totals.Installation = roundCents((q.Totals.Equipment + q.Totals.Flooring) * quoteInstallPct)
	q.Totals.GrandTotal = roundCents(q.Totals.Equipment + q.Totals.Flooring + q.Totals.Installation)

	return q, nil
}

// Category returns the category total with the given name, if present.
func (q *EquipmentQuote) Category(name string) (CategoryTotal, bool) {
	for _, ct := range q.Categories {
		if ct.Category == name {
			return ct, true
		}
	}
	return CategoryTotal{}, false
}
