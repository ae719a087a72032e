package stats

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/fernandomartin18/UbicAir/models"
)

// exportData bundles the three statistics payloads for an export.
type exportData struct {
	General  *models.GeneralStats
	Delays   *models.DelayAnalysis
	Airlines []models.AirlineStats
}

func collectExportData(ctx context.Context) (*exportData, error) {
	general, _, _, err := General(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to collect general stats: %w", err)
	}
	delays, _, _, err := Delays(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to collect delay analysis: %w", err)
	}
	airlines, _, _, err := Airlines(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to collect airline comparison: %w", err)
	}
	return &exportData{General: general, Delays: delays, Airlines: airlines}, nil
}

// ExportCSV writes all statistics to a ZIP containing one CSV per view.
func ExportCSV(ctx context.Context) (*bytes.Buffer, error) {
	data, err := collectExportData(ctx)
	if err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)

	files := []struct {
		name     string
		generate func() ([]byte, error)
	}{
		{"general_stats.csv", func() ([]byte, error) { return generateGeneralCSV(data.General) }},
		{"monthly_delays.csv", func() ([]byte, error) { return generateMonthlyCSV(data.Delays.Monthly) }},
		{"delay_distribution.csv", func() ([]byte, error) { return generateDistributionCSV(data.Delays.Distribution) }},
		{"airline_comparison.csv", func() ([]byte, error) { return generateAirlineCSV(data.Airlines) }},
	}

	for _, f := range files {
		content, err := f.generate()
		if err != nil {
			return nil, fmt.Errorf("failed to generate %s: %w", f.name, err)
		}
		entry, err := w.Create(f.name)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s in zip: %w", f.name, err)
		}
		if _, err := entry.Write(content); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", f.name, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to close zip writer: %w", err)
	}
	return buf, nil
}

func generateGeneralCSV(g *models.GeneralStats) ([]byte, error) {
	rows := [][]string{
		{"Metric", "Value"},
		{"Total Flights", strconv.Itoa(g.TotalFlights)},
		{"Avg Departure Delay", fmt.Sprintf("%.2f", g.AvgDepDelay)},
		{"Avg Arrival Delay", fmt.Sprintf("%.2f", g.AvgArrDelay)},
		{"Avg Air Time", fmt.Sprintf("%.2f", g.AvgAirTime)},
		{"Avg Distance", fmt.Sprintf("%.2f", g.AvgDistance)},
		{"On-Time Percentage", fmt.Sprintf("%.2f", g.OnTimePercentage)},
	}
	return writeCSV(rows)
}

func generateMonthlyCSV(monthly []models.MonthlyDelay) ([]byte, error) {
	rows := [][]string{{"Month", "Departure Delay", "Arrival Delay"}}
	for _, m := range monthly {
		rows = append(rows, []string{
			m.Month,
			fmt.Sprintf("%.2f", m.DepDelay),
			fmt.Sprintf("%.2f", m.ArrDelay),
		})
	}
	return writeCSV(rows)
}

func generateDistributionCSV(buckets []models.DelayBucket) ([]byte, error) {
	rows := [][]string{{"Range", "Count"}}
	for _, b := range buckets {
		rows = append(rows, []string{b.Range, strconv.Itoa(b.Count)})
	}
	return writeCSV(rows)
}

func generateAirlineCSV(airlines []models.AirlineStats) ([]byte, error) {
	rows := [][]string{{"Airline", "Flights", "On-Time %", "Avg Delay", "Avg Distance"}}
	for _, a := range airlines {
		rows = append(rows, []string{
			a.Airline,
			strconv.Itoa(a.Flights),
			fmt.Sprintf("%.2f", a.OnTime),
			fmt.Sprintf("%.2f", a.AvgDelay),
			fmt.Sprintf("%.2f", a.AvgDistance),
		})
	}
	return writeCSV(rows)
}

func writeCSV(rows [][]string) ([]byte, error) {
	buf := new(bytes.Buffer)
	writer := csv.NewWriter(buf)
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportXLSX writes all statistics to one workbook with a sheet per view.
func ExportXLSX(ctx context.Context) (*bytes.Buffer, error) {
	data, err := collectExportData(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := writeGeneralSheet(f, data.General); err != nil {
		return nil, err
	}
	if err := writeDelaySheet(f, data.Delays); err != nil {
		return nil, err
	}
	if err := writeAirlineSheet(f, data.Airlines); err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf, nil
}

func writeGeneralSheet(f *excelize.File, g *models.GeneralStats) error {
	const sheet = "General"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create %s sheet: %w", sheet, err)
	}
	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Total Flights", g.TotalFlights},
		{"Avg Departure Delay", g.AvgDepDelay},
		{"Avg Arrival Delay", g.AvgArrDelay},
		{"Avg Air Time", g.AvgAirTime},
		{"Avg Distance", g.AvgDistance},
		{"On-Time Percentage", g.OnTimePercentage},
	}
	return writeSheetRows(f, sheet, rows)
}

func writeDelaySheet(f *excelize.File, d *models.DelayAnalysis) error {
	const sheet = "Delays"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create %s sheet: %w", sheet, err)
	}
	rows := [][]interface{}{{"Month", "Departure Delay", "Arrival Delay"}}
	for _, m := range d.Monthly {
		rows = append(rows, []interface{}{m.Month, m.DepDelay, m.ArrDelay})
	}
	rows = append(rows, []interface{}{})
	rows = append(rows, []interface{}{"Range", "Count"})
	for _, b := range d.Distribution {
		rows = append(rows, []interface{}{b.Range, b.Count})
	}
	return writeSheetRows(f, sheet, rows)
}

func writeAirlineSheet(f *excelize.File, airlines []models.AirlineStats) error {
	const sheet = "Airlines"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create %s sheet: %w", sheet, err)
	}
	rows := [][]interface{}{{"Airline", "Flights", "On-Time %", "Avg Delay", "Avg Distance"}}
	for _, a := range airlines {
		rows = append(rows, []interface{}{a.Airline, a.Flights, a.OnTime, a.AvgDelay, a.AvgDistance})
	}
	return writeSheetRows(f, sheet, rows)
}

func writeSheetRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to compute cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d of %s: %w", i+1, sheet, err)
		}
	}
	return nil
}
