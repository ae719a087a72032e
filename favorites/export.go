package favorites

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExportXLSX writes the current favorites list to a one-sheet workbook.
func ExportXLSX(ctx context.Context) (*bytes.Buffer, error) {
	favs := Load(ctx)

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Favoritos"
	if _, err := f.NewSheet(sheet); err != nil {
		return nil, fmt.Errorf("failed to create favorites sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")

	rows := [][]interface{}{
		{"Origen", "Destino", "Aerolínea", "Fecha", "Salida", "Llegada", "Retraso salida", "Retraso llegada"},
	}
	for _, fav := range favs {
		rows = append(rows, []interface{}{
			fav.Origin, fav.Dest, fav.Airline, flightDay(fav.FlightDate),
			fav.DepTime, fav.ArrTime, fav.DepDelay, fav.ArrDelay,
		})
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, fmt.Errorf("failed to compute cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write favorites row %d: %w", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write favorites workbook: %w", err)
	}
	return buf, nil
}
