package helper

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"FloodGrid-App/internal/domain/model"
)

var mappingCSVHeader = []string{"row", "col", "lat", "lon"}

// WriteCellMappingCSV writes the cell mapping table with a row,col,lat,lon header
func WriteCellMappingCSV(w io.Writer, mapping []model.CellMapping) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(mappingCSVHeader); err != nil {
		return fmt.Errorf("failed to write mapping header: %w", err)
	}
	for _, m := range mapping {
		record := []string{
			strconv.Itoa(m.Row),
			strconv.Itoa(m.Col),
			strconv.FormatFloat(m.Latitude, 'f', 8, 64),
			strconv.FormatFloat(m.Longitude, 'f', 8, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write mapping row (%d,%d): %w", m.Row, m.Col, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
