// Package plan models the business-plan builder's session state as an
// explicit versioned draft, persisted through the store instead of scattered
// browser storage.
package plan

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/fieldhouse-group/facility-cli/internal/catalog"
	"github.com/fieldhouse-group/facility-cli/internal/estimate"
)

// tierOf maps a tier string to a catalog tier, defaulting to mid.
func tierOf(s string) catalog.Tier {
	t := catalog.Tier(s)
	if !t.Valid() {
		return catalog.TierMid
	}
	return t
}

// SchemaVersion is bumped whenever the serialized draft shape changes.
const SchemaVersion = 1

// Step names the wizard steps in order.
type Step string

const (
	StepFacility  Step = "facility"  // facility type, acquisition mode, size
	StepSports    Step = "sports"    // sport selection and unit counts
	StepDesign    Step = "design"    // space allocation
	StepFinancial Step = "financial" // pricing, staffing, percentages
	StepReview    Step = "review"
)

var stepOrder = []Step{StepFacility, StepSports, StepDesign, StepFinancial, StepReview}

// Valid reports whether s is a known step.
func (s Step) Valid() bool {
	for _, st := range stepOrder {
		if s == st {
			return true
		}
	}
	return false
}

// Draft is one planning session. A restart creates a fresh draft; the store
// keeps old ones until explicitly deleted.
type Draft struct {
	ID        string         `json:"id"`
	Version   int            `json:"version"`
	Step      Step           `json:"step"`
	Input     estimate.Input `json:"input"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// NewDraft creates an empty draft positioned at the first step.
func NewDraft() *Draft {
	now := time.Now().UTC()
	return &Draft{
		ID:        uuid.New().String(),
		Version:   SchemaVersion,
		Step:      StepFacility,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Patch is a partial update applied at one wizard step. Nil fields leave the
// draft untouched; last write wins.
type Patch struct {
	Sports             []string             `json:"sports,omitempty"`
	SquareFeet         *int                 `json:"square_feet,omitempty"`
	Units              map[string]int       `json:"units,omitempty"`
	Tier               *string              `json:"tier,omitempty"`
	RegionMultiplier   *float64             `json:"region_multiplier,omitempty"`
	CapEx              *estimate.CapExInput `json:"capex,omitempty"`
	MonthlyRent        *float64             `json:"monthly_rent,omitempty"`
	StaffFTE           *float64             `json:"staff_fte,omitempty"`
	StaffHourlyRate    *float64             `json:"staff_hourly_rate,omitempty"`
	RevenuePerSfMonth  *float64             `json:"revenue_per_sf_month,omitempty"`
	OpexPerSfMonth     *float64             `json:"opex_per_sf_month,omitempty"`
	SpaceAllocationPct map[string]float64   `json:"space_allocation_pct,omitempty"`
}

// Apply merges a step patch into the draft and advances its step marker.
func (d *Draft) Apply(step Step, p Patch) error {
	if !step.Valid() {
		return eris.Errorf("plan: unknown step %q", step)
	}

	if p.Sports != nil {
		d.Input.Sports = p.Sports
	}
	if p.SquareFeet != nil {
		d.Input.SquareFeet = *p.SquareFeet
	}
	if p.Units != nil {
		d.Input.Units = p.Units
	}
	if p.Tier != nil {
		d.Input.Tier = tierOf(*p.Tier)
	}
	if p.RegionMultiplier != nil {
		d.Input.RegionMultiplier = *p.RegionMultiplier
	}
	if p.CapEx != nil {
		d.Input.CapEx = *p.CapEx
	}
	if p.MonthlyRent != nil {
		d.Input.MonthlyRent = *p.MonthlyRent
	}
	if p.StaffFTE != nil {
		d.Input.StaffFTE = *p.StaffFTE
	}
	if p.StaffHourlyRate != nil {
		d.Input.StaffHourlyRate = *p.StaffHourlyRate
	}
	if p.RevenuePerSfMonth != nil {
		d.Input.RevenuePerSfMonth = *p.RevenuePerSfMonth
	}
	if p.OpexPerSfMonth != nil {
		d.Input.OpexPerSfMonth = *p.OpexPerSfMonth
	}
	if p.SpaceAllocationPct != nil {
		d.Input.SpaceAllocationPct = p.SpaceAllocationPct
	}

	d.Step = step
	d.UpdatedAt = time.Now().UTC()
	return nil
}

// Marshal serializes the draft for storage.
func (d *Draft) Marshal() ([]byte, error) {
	raw, err := json.Marshal(d)
	return raw, eris.Wrap(err, "plan: marshal draft")
}

// Unmarshal deserializes a stored draft, rejecting unknown schema versions.
func Unmarshal(raw []byte) (*Draft, error) {
	var d Draft
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, eris.Wrap(err, "plan: unmarshal draft")
	}
	if d.Version != SchemaVersion {
		return nil, eris.Errorf("plan: unsupported draft schema version %d", d.Version)
	}
	return &d, nil
}
