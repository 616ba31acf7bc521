package estimate

import (
	"math"

	"github.com/rotisserie/eris"

	"github.com/fieldhouse-group/facility-cli/internal/catalog"
)

// CirculationFactor inflates raw training space for hallways, lobbies, and
// common areas: +30%.
const CirculationFactor = 1.3

// RecommendedSquareFootage sums per-unit space across the selected sports
// (using unit-count overrides where given, preset recommendations otherwise)
// and applies the circulation factor.
func RecommendedSquareFootage(cat *catalog.Catalog, sports []string, unitOverrides map[string]int) (int, error) {
	if len(sports) == 0 {
		return 0, eris.New("estimate: at least one sport is required")
	}

	raw := 0
	for _, sport := range sports {
		preset, ok := cat.Preset(sport)
		if !ok {
			return 0, eris.Errorf("estimate: unknown sport %q", sport)
		}
		for unit, perUnitSf := range preset.PerUnitSpaceSf {
			count, ok := unitOverrides[unit]
			if !ok {
				count = preset.RecommendedUnits[unit]
			}
			raw += perUnitSf * count
		}
	}

	return int(math.Round(float64(raw) * CirculationFactor)), nil
}

// AllocateSpace splits total square footage across named areas by
// percentage. Percentages must sum to 100 (within a hundredth); rounding
// remainders land on the largest allocation so the parts always sum exactly
// to the total.
func AllocateSpace(totalSf int, pcts map[string]float64) (map[string]int, error) {
	if totalSf <= 0 {
		return nil, eris.New("estimate: total square footage must be positive")
	}
	if len(pcts) == 0 {
		return nil, eris.New("estimate: no allocation percentages given")
	}

	sum := 0.0
	largest := ""
	for area, pct := range pcts {
		if pct < 0 {
			return nil, eris.Errorf("estimate: negative allocation for %q", area)
		}
		sum += pct
		if largest == "" || pct > pcts[largest] {
			largest = area
		}
	}
	if math.Abs(sum-100) > 0.01 {
		return nil, eris.Errorf("estimate: allocation percentages sum to %.2f, want 100", sum)
	}

	out := make(map[string]int, len(pcts))
	assigned := 0
	for area, pct := range pcts {
		sf := int(math.Round(float64(totalSf) * pct / 100))
		out[area] = sf
		assigned += sf
	}
	out[largest] += totalSf - assigned

	return out, nil
}
