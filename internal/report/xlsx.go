package report

import (
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/fieldhouse-group/facility-cli/internal/cost"
	"github.com/fieldhouse-group/facility-cli/internal/lead"
)

// leadColumns is the leads workbook header. ReadLeadsXLSX depends on this
// order; keep it in sync with writeLeadRow.
var leadColumns = []string{
	"id", "created_at", "name", "email", "phone", "business", "city", "state",
	"facility_type", "facility_size", "sports", "estimated_square_footage",
	"estimated_budget", "estimated_monthly_revenue", "estimated_roi_pct",
	"source", "user_agent", "referrer", "sync_status", "sync_error",
}

// WriteLeadsXLSX writes leads to an XLSX workbook at the given path.
func WriteLeadsXLSX(path string, leads []lead.Lead) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Leads")
	if err != nil {
		return eris.Wrap(err, "report: add sheet")
	}

	header := sheet.AddRow()
	for _, col := range leadColumns {
		header.AddCell().Value = col
	}

	for i := range leads {
		writeLeadRow(sheet.AddRow(), &leads[i])
	}

	return eris.Wrapf(f.Save(path), "report: save %s", path)
}

func writeLeadRow(row *xlsx.Row, l *lead.Lead) {
	for _, v := range []string{
		l.ID,
		l.CreatedAt.UTC().Format(time.RFC3339),
		l.Name,
		l.Email,
		l.Phone,
		l.Business,
		l.City,
		l.State,
		l.FacilityType,
		l.FacilitySize,
		strings.Join(l.Sports, ", "),
		strconv.Itoa(l.EstimatedSquareFootage),
		strconv.FormatFloat(l.EstimatedBudget, 'f', 2, 64),
		strconv.FormatFloat(l.EstimatedMonthlyRevenue, 'f', 2, 64),
		strconv.FormatFloat(l.EstimatedROIPct, 'f', 2, 64),
		l.Source,
		l.UserAgent,
		l.Referrer,
		string(l.SyncStatus),
		l.SyncError,
	} {
		row.AddCell().Value = v
	}
}

// ReadLeadsXLSX reads a workbook previously produced by WriteLeadsXLSX.
func ReadLeadsXLSX(path string) ([]lead.Lead, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "report: open %s", path)
	}
	if len(f.Sheets) == 0 {
		return nil, eris.Errorf("report: %s has no sheets", path)
	}

	var leads []lead.Lead
	for i, row := range f.Sheets[0].Rows {
		if i == 0 {
			continue // header
		}
		cells := make([]string, len(leadColumns))
		for j := range cells {
			if j < len(row.Cells) {
				cells[j] = row.Cells[j].String()
			}
		}
		if cells[0] == "" {
			continue
		}

		l, err := leadFromRow(cells)
		if err != nil {
			return nil, eris.Wrapf(err, "report: row %d", i+1)
		}
		leads = append(leads, l)
	}
	return leads, nil
}

func leadFromRow(cells []string) (lead.Lead, error) {
	createdAt, err := time.Parse(time.RFC3339, cells[1])
	if err != nil {
		return lead.Lead{}, eris.Wrap(err, "parse created_at")
	}
	sf, err := strconv.Atoi(cells[11])
	if err != nil {
		return lead.Lead{}, eris.Wrap(err, "parse estimated_square_footage")
	}
	budget, err := strconv.ParseFloat(cells[12], 64)
	if err != nil {
		return lead.Lead{}, eris.Wrap(err, "parse estimated_budget")
	}
	revenue, err := strconv.ParseFloat(cells[13], 64)
	if err != nil {
		return lead.Lead{}, eris.Wrap(err, "parse estimated_monthly_revenue")
	}
	roi, err := strconv.ParseFloat(cells[14], 64)
	if err != nil {
		return lead.Lead{}, eris.Wrap(err, "parse estimated_roi_pct")
	}

	var sports []string
	if cells[10] != "" {
		for _, s := range strings.Split(cells[10], ",") {
			sports = append(sports, strings.TrimSpace(s))
		}
	}

	return lead.Lead{
		ID:                      cells[0],
		CreatedAt:               createdAt,
		UpdatedAt:               createdAt,
		Name:                    cells[2],
		Email:                   cells[3],
		Phone:                   cells[4],
		Business:                cells[5],
		City:                    cells[6],
		State:                   cells[7],
		FacilityType:            cells[8],
		FacilitySize:            cells[9],
		Sports:                  sports,
		EstimatedSquareFootage:  sf,
		EstimatedBudget:         budget,
		EstimatedMonthlyRevenue: revenue,
		EstimatedROIPct:         roi,
		Source:                  cells[15],
		UserAgent:               cells[16],
		Referrer:                cells[17],
		SyncStatus:              lead.SyncStatus(cells[18]),
		SyncError:               cells[19],
	}, nil
}

// WriteQuoteXLSX writes an equipment quote to an XLSX workbook, one row per
// line item plus the totals block.
func WriteQuoteXLSX(path string, q *cost.EquipmentQuote) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Quote")
	if err != nil {
		return eris.Wrap(err, "report: add sheet")
	}

	header := sheet.AddRow()
	for _, col := range []string{"category", "item", "quantity", "unit", "unit_cost", "total"} {
		header.AddCell().Value = col
	}

	for _, cat := range q.Categories {
		for _, li := range cat.Items {
			row := sheet.AddRow()
			row.AddCell().Value = cat.Category
			row.AddCell().Value = li.Name
			row.AddCell().SetInt(li.Quantity)
			row.AddCell().Value = li.Unit
			row.AddCell().SetFloat(li.UnitCost)
			row.AddCell().SetFloat(li.TotalCost)
		}
	}

	sheet.AddRow() // spacer
	for _, t := range []struct {
		label string
		value float64
	}{
		{"Equipment", q.Totals.Equipment},
		{"Flooring", q.Totals.Flooring},
		{"Installation", q.Totals.Installation},
		{"Grand total", q.Totals.GrandTotal},
	} {
		row := sheet.AddRow()
		row.AddCell().Value = t.label
		row.AddCell()
		row.AddCell()
		row.AddCell()
		row.AddCell()
		row.AddCell().SetFloat(t.value)
	}

	return eris.Wrapf(f.Save(path), "report: save %s", path)
}
