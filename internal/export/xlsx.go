package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"seoulmarket/server/internal/models"
)

const (
	summarySheet = "Summary"
	topSheet     = "Top"
	bottomSheet  = "Bottom"
)

var rankingHeader = []interface{}{"District", "Dong", "Apt. Name", "Price"}

// WriteOverview writes the overview KPIs and apartment rankings as an XLSX
// workbook with Summary, Top and Bottom sheets.
func WriteOverview(w io.Writer, view models.Overview) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	priceStyle, err := f.NewStyle(&excelize.Style{NumFmt: 3})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	if err := writeSummary(f, view, priceStyle); err != nil {
		return err
	}
	if err := writeRanking(f, topSheet, view.TopApartments, priceStyle); err != nil {
		return err
	}
	if err := writeRanking(f, bottomSheet, view.BottomApartments, priceStyle); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, view models.Overview, priceStyle int) error {
	sel := view.Selection
	rows := [][]interface{}{
		{"District", sel.District},
		{"Year", sel.Year},
		{"Month", sel.Month},
		{"Total Transaction", view.Summary.Count},
	}
	if view.Summary.HasData {
		rows = append(rows, []interface{}{"Average Sales Price (10,000won)", view.Summary.Mean})
	} else {
		rows = append(rows, []interface{}{"Average Sales Price (10,000won)", "no data"})
	}
	if view.ApartmentSummary.HasData {
		rows = append(rows,
			[]interface{}{"Min. Transaction (10,000won)", view.ApartmentSummary.Min},
			[]interface{}{"Max. Transaction (10,000won)", view.ApartmentSummary.Max},
		)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write summary row: %w", err)
		}
	}
	return f.SetColStyle(summarySheet, "B", priceStyle)
}

func writeRanking(f *excelize.File, sheet string, records []models.SaleRecord, priceStyle int) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}
	if err := f.SetSheetRow(sheet, "A1", &rankingHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{r.District, r.Neighborhood, r.Building, r.Amount}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}
	return f.SetColStyle(sheet, "D", priceStyle)
}
