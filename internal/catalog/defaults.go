package catalog

// Default returns the compiled-in catalog: national-average pricing across
// the low/mid/high confidence bands, and the sport presets the planner
// offers. Callers treat the result as immutable.
func Default() *Catalog {
	c := &Catalog{
		Items:       defaultItems(),
		Presets:     defaultPresets(),
		Assumptions: defaultAssumptions(),
	}
	if err := c.Validate(); err != nil {
		// Compiled-in data failing validation is a programming error.
		panic(err)
	}
	return c
}

func defaultItems() map[string]CostItem {
	items := []CostItem{
		// Flooring
		{ID: "turf_sf", Name: "Synthetic turf", Category: CategoryFlooring, Unit: "sf",
			Tiers: CostTiers{Low: 5.50, Mid: 7.00, High: 9.50}, InstallFactorPct: 20},
		{ID: "hardwood_court_sf", Name: "Maple court flooring", Category: CategoryFlooring, Unit: "sf",
			Tiers: CostTiers{Low: 9.00, Mid: 12.00, High: 16.00}, InstallFactorPct: 25},
		{ID: "rubber_sf", Name: "Rubber base flooring", Category: CategoryFlooring, Unit: "sf",
			Tiers: CostTiers{Low: 3.50, Mid: 4.50, High: 6.00}, InstallFactorPct: 15},
		{ID: "court_tile_sf", Name: "Modular court tile", Category: CategoryFlooring, Unit: "sf",
			Tiers: CostTiers{Low: 3.00, Mid: 4.25, High: 5.50}, InstallFactorPct: 10},

		// Baseball / softball
		{ID: "tunnel_net", Name: "Batting tunnel net (70 ft)", Category: CategoryBaseball, Unit: "each",
			Tiers: CostTiers{Low: 650, Mid: 900, High: 1400}, InstallFactorPct: 10},
		{ID: "divider_curtain", Name: "Divider curtain", Category: CategoryBaseball, Unit: "each",
			Tiers: CostTiers{Low: 450, Mid: 600, High: 850}, InstallFactorPct: 15},
		{ID: "l_screen", Name: "L-screen", Category: CategoryBaseball, Unit: "each",
			Tiers: CostTiers{Low: 150, Mid: 225, High: 350}},
		{ID: "portable_mound", Name: "Portable pitching mound", Category: CategoryBaseball, Unit: "each",
			Tiers: CostTiers{Low: 800, Mid: 1200, High: 1900}},

		// Basketball
		{ID: "basketball_hoop", Name: "Adjustable wall-mount hoop", Category: CategoryBasketball, Unit: "each",
			Tiers: CostTiers{Low: 1800, Mid: 2600, High: 4200}, InstallFactorPct: 20},
		{ID: "scoreboard", Name: "LED scoreboard", Category: CategoryBasketball, Unit: "each",
			Tiers: CostTiers{Low: 1200, Mid: 2200, High: 4500}, InstallFactorPct: 15},

		// Netting
		{ID: "barrier_netting_sf", Name: "Barrier netting", Category: CategoryNetting, Unit: "sf",
			Tiers: CostTiers{Low: 0.35, Mid: 0.55, High: 0.85}, InstallFactorPct: 25},
		{ID: "gym_divider", Name: "Retractable gym divider", Category: CategoryNetting, Unit: "each",
			Tiers: CostTiers{Low: 3500, Mid: 5200, High: 8000}, InstallFactorPct: 30},

		// Protection
		{ID: "wall_pad_lf", Name: "Wall padding", Category: CategoryProtection, Unit: "lf",
			Tiers: CostTiers{Low: 28, Mid: 38, High: 55}, InstallFactorPct: 20},

		// Training equipment
		{ID: "pitching_machine", Name: "Pitching machine", Category: CategoryEquipment, Unit: "each",
			Tiers: CostTiers{Low: 1500, Mid: 2800, High: 5200}},
		{ID: "ball_feeder", Name: "Automatic ball feeder", Category: CategoryEquipment, Unit: "each",
			Tiers: CostTiers{Low: 250, Mid: 400, High: 700}},
		{ID: "hitting_mat", Name: "Hitting mat", Category: CategoryEquipment, Unit: "each",
			Tiers: CostTiers{Low: 180, Mid: 260, High: 420}},
		{ID: "volleyball_system", Name: "Volleyball net system", Category: CategoryEquipment, Unit: "pair",
			Tiers: CostTiers{Low: 1400, Mid: 2100, High: 3400}, InstallFactorPct: 10},
		{ID: "pickleball_net", Name: "Pickleball net", Category: CategoryEquipment, Unit: "each",
			Tiers: CostTiers{Low: 250, Mid: 400, High: 650}},
		{ID: "soccer_goal", Name: "Indoor soccer goals", Category: CategoryEquipment, Unit: "pair",
			Tiers: CostTiers{Low: 900, Mid: 1500, High: 2600}},

		// Building systems
		{ID: "led_lighting_sf", Name: "LED high-bay lighting", Category: CategoryBuildingSystems, Unit: "sf",
			Tiers: CostTiers{Low: 1.60, Mid: 2.20, High: 3.10}, InstallFactorPct: 30},
		{ID: "hvac_ton", Name: "HVAC capacity", Category: CategoryBuildingSystems, Unit: "each",
			Tiers: CostTiers{Low: 1800, Mid: 2400, High: 3200}, InstallFactorPct: 40},

		// Safety
		{ID: "aed_unit", Name: "AED unit", Category: CategorySafety, Unit: "each",
			Tiers: CostTiers{Low: 1200, Mid: 1600, High: 2200}},
		{ID: "egress_signage", Name: "Egress signage package", Category: CategorySafety, Unit: "lump sum",
			Tiers: CostTiers{Low: 800, Mid: 1200, High: 1800}, InstallFactorPct: 10},

		// Technology
		{ID: "access_control", Name: "Door access control", Category: CategoryTechnology, Unit: "lump sum",
			Tiers: CostTiers{Low: 2500, Mid: 4200, High: 6800}, InstallFactorPct: 15},
		{ID: "camera_system", Name: "Camera system", Category: CategoryTechnology, Unit: "lump sum",
			Tiers: CostTiers{Low: 1800, Mid: 3200, High: 5600}, InstallFactorPct: 10},
		{ID: "sound_system", Name: "Sound system", Category: CategoryTechnology, Unit: "lump sum",
			Tiers: CostTiers{Low: 2200, Mid: 3800, High: 7500}, InstallFactorPct: 15},
		{ID: "wifi_network", Name: "Facility wifi", Category: CategoryTechnology, Unit: "lump sum",
			Tiers: CostTiers{Low: 900, Mid: 1600, High: 2800}, InstallFactorPct: 5},

		// Fixtures
		{ID: "front_desk", Name: "Front desk build-out", Category: CategoryFixtures, Unit: "lump sum",
			Tiers: CostTiers{Low: 1500, Mid: 3000, High: 6000}, InstallFactorPct: 10},
		{ID: "lobby_furniture", Name: "Lobby furniture", Category: CategoryFixtures, Unit: "lump sum",
			Tiers: CostTiers{Low: 2000, Mid: 3500, High: 7000}},
		{ID: "locker_bank", Name: "Locker bank", Category: CategoryFixtures, Unit: "each",
			Tiers: CostTiers{Low: 900, Mid: 1400, High: 2300}, InstallFactorPct: 10},
	}

	m := make(map[string]CostItem, len(items))
	for _, it := range items {
		m[it.ID] = it
	}
	return m
}

func defaultPresets() map[string]SportPreset {
	presets := []SportPreset{
		{
			Sport:            "baseball_softball",
			Label:            "Baseball / Softball",
			RecommendedUnits: map[string]int{"baseball_tunnels": 6},
			PerUnitSpaceSf:   map[string]int{"baseball_tunnels": 1050},
			MinClearHeightFt: 14,
			FlooringType:     "turf",
			DefaultEquipment: []EquipmentSpec{
				{ItemID: "tunnel_net", Category: CategoryBaseball, Qty: MustFormula("baseball_tunnels")},
				{ItemID: "divider_curtain", Category: CategoryBaseball, Qty: MustFormula("baseball_tunnels-1")},
				{ItemID: "l_screen", Category: CategoryBaseball, Qty: MustFormula("baseball_tunnels")},
				{ItemID: "portable_mound", Category: CategoryBaseball, Qty: MustFormula("fixed:2")},
				{ItemID: "pitching_machine", Category: CategoryEquipment, Qty: MustFormula("fixed:2")},
				{ItemID: "ball_feeder", Category: CategoryEquipment, Qty: MustFormula("fixed:2")},
				{ItemID: "hitting_mat", Category: CategoryEquipment, Qty: MustFormula("baseball_tunnels")},
				{ItemID: "barrier_netting_sf", Category: CategoryNetting, Qty: MustFormula("baseball_tunnels*400"), Perimeter: true},
				{ItemID: "turf_sf", Category: CategoryFlooring, Qty: MustFormula("baseball_tunnels*1050")},
			},
		},
		{
			Sport:            "basketball",
			Label:            "Basketball",
			RecommendedUnits: map[string]int{"basketball_courts_full": 1},
			PerUnitSpaceSf:   map[string]int{"basketball_courts_full": 7500},
			MinClearHeightFt: 24,
			FlooringType:     "hardwood",
			DefaultEquipment: []EquipmentSpec{
				{ItemID: "basketball_hoop", Category: CategoryBasketball, Qty: MustFormula("basketball_courts_full*2")},
				{ItemID: "scoreboard", Category: CategoryBasketball, Qty: MustFormula("basketball_courts_full")},
				{ItemID: "gym_divider", Category: CategoryNetting, Qty: MustFormula("basketball_courts_full-1")},
				{ItemID: "wall_pad_lf", Category: CategoryProtection, Qty: MustFormula("basketball_courts_full*200"), Perimeter: true},
				{ItemID: "hardwood_court_sf", Category: CategoryFlooring, Qty: MustFormula("basketball_courts_full*7500")},
			},
		},
		{
			Sport:            "volleyball",
			Label:            "Volleyball",
			RecommendedUnits: map[string]int{"volleyball_courts": 2},
			PerUnitSpaceSf:   map[string]int{"volleyball_courts": 4000},
			MinClearHeightFt: 23,
			FlooringType:     "court_tile",
			DefaultEquipment: []EquipmentSpec{
				{ItemID: "volleyball_system", Category: CategoryEquipment, Qty: MustFormula("volleyball_courts")},
				{ItemID: "gym_divider", Category: CategoryNetting, Qty: MustFormula("volleyball_courts-1")},
				{ItemID: "court_tile_sf", Category: CategoryFlooring, Qty: MustFormula("volleyball_courts*4000")},
			},
		},
		{
			Sport:            "indoor_soccer",
			Label:            "Indoor Soccer",
			RecommendedUnits: map[string]int{"soccer_fields_small": 1},
			PerUnitSpaceSf:   map[string]int{"soccer_fields_small": 12000},
			MinClearHeightFt: 20,
			FlooringType:     "turf",
			DefaultEquipment: []EquipmentSpec{
				{ItemID: "soccer_goal", Category: CategoryEquipment, Qty: MustFormula("soccer_fields_small")},
				{ItemID: "barrier_netting_sf", Category: CategoryNetting, Qty: MustFormula("soccer_fields_small*600"), Perimeter: true},
				{ItemID: "turf_sf", Category: CategoryFlooring, Qty: MustFormula("soccer_fields_small*12000")},
			},
		},
		{
			Sport:            "pickleball",
			Label:            "Pickleball",
			RecommendedUnits: map[string]int{"pickleball_courts": 4},
			PerUnitSpaceSf:   map[string]int{"pickleball_courts": 1800},
			MinClearHeightFt: 18,
			FlooringType:     "court_tile",
			DefaultEquipment: []EquipmentSpec{
				{ItemID: "pickleball_net", Category: CategoryEquipment, Qty: MustFormula("pickleball_courts")},
				{ItemID: "gym_divider", Category: CategoryNetting, Qty: MustFormula("pickleball_courts-1")},
				{ItemID: "court_tile_sf", Category: CategoryFlooring, Qty: MustFormula("pickleball_courts*1800")},
			},
		},
	}

	m := make(map[string]SportPreset, len(presets))
	for _, p := range presets {
		m[p.Sport] = p
	}
	return m
}
