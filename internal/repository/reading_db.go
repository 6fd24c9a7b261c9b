package repository

import (
	"FloodGrid-App/internal/domain/model"
)

const cellReadingsTable = "cell_readings"

// ReadingDB row shape of the cell_readings table
type ReadingDB struct {
	Row             int    `json:"cell_row"`
	Col             int    `json:"cell_col"`
	Survivors       int    `json:"survivors"`
	BuildingDamage  bool   `json:"building_damage"`
	Flood           bool   `json:"flood"`
	FloodPrediction bool   `json:"flood_prediction"`
	Notes           string `json:"notes"`
}

// ReadingToReadingDB converts a reading for storage
func ReadingToReadingDB(reading *model.Reading) *ReadingDB {
	return &ReadingDB{
		Row:             reading.Row,
		Col:             reading.Col,
		Survivors:       reading.Survivors,
		BuildingDamage:  bool(reading.BuildingDamage),
		Flood:           bool(reading.Flood),
		FloodPrediction: bool(reading.FloodPrediction),
		Notes:           reading.Notes,
	}
}

// ToReading converts a stored row back to a reading
func (r *ReadingDB) ToReading() model.Reading {
	return model.Reading{
		Row:             r.Row,
		Col:             r.Col,
		Survivors:       r.Survivors,
		BuildingDamage:  model.Flag(r.BuildingDamage),
		Flood:           model.Flag(r.Flood),
		FloodPrediction: model.Flag(r.FloodPrediction),
		Notes:           r.Notes,
	}
}
