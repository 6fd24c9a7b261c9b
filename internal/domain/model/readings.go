package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Reading one grid cell's data record as stored by the remote sheet
type Reading struct {
	Row             int    `json:"row" db:"cell_row"`                      // 1..10, south to north
	Col             int    `json:"col" db:"cell_col"`                      // 1..10, west to east
	Survivors       int    `json:"survivors" db:"survivors"`               // survivor count
	BuildingDamage  Flag   `json:"buildingDamage" db:"building_damage"`    // building damage observed
	Flood           Flag   `json:"flood" db:"flood"`                       // cell currently flooded
	FloodPrediction Flag   `json:"flood_prediction" db:"flood_prediction"` // flooding predicted
	Notes           string `json:"notes,omitempty" db:"notes"`
}

// InGrid reports whether the reading addresses a cell of a rows x cols grid.
func (r *Reading) InGrid(rows, cols int) bool {
	return r.Row >= 1 && r.Row <= rows && r.Col >= 1 && r.Col <= cols
}

// UnmarshalJSON accepts row, col and survivors as numbers or numeric strings.
// Blank cells ("" or null) decode as 0.
func (r *Reading) UnmarshalJSON(data []byte) error {
	var raw struct {
		Row             sheetInt  `json:"row"`
		Col             sheetInt  `json:"col"`
		Survivors       sheetInt  `json:"survivors"`
		BuildingDamage  Flag      `json:"buildingDamage"`
		Flood           Flag      `json:"flood"`
		FloodPrediction Flag      `json:"flood_prediction"`
		Notes           sheetText `json:"notes"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = Reading{
		Row:             int(raw.Row),
		Col:             int(raw.Col),
		Survivors:       int(raw.Survivors),
		BuildingDamage:  raw.BuildingDamage,
		Flood:           raw.Flood,
		FloodPrediction: raw.FloodPrediction,
		Notes:           string(raw.Notes),
	}
	return nil
}

// sheetInt an integer cell; the sheet sends blanks as "" and may quote numbers
type sheetInt int

func (n *sheetInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	text := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &text); err != nil {
			return fmt.Errorf("invalid number %s: %w", data, err)
		}
		text = strings.TrimSpace(text)
	}
	if text == "" || text == "null" {
		*n = 0
		return nil
	}

	v, err := strconv.ParseFloat(text, 64)
	if err != nil || v != math.Trunc(v) || math.IsInf(v, 0) {
		return fmt.Errorf("invalid integer %s", data)
	}
	*n = sheetInt(v)
	return nil
}

// sheetText a free-text cell, which the sheet turns into a number when it looks like one
type sheetText string

func (t *sheetText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*t = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = sheetText(s)
		return nil
	}
	*t = sheetText(data)
	return nil
}

// Flag a boolean that the sheet may deliver as true/false, 0/1 or "TRUE"/"1".
// Any non-zero number counts as set. It always marshals back as 0/1, which is what the sheet stores.
type Flag bool

func (f Flag) MarshalJSON() ([]byte, error) {
	if f {
		return []byte("1"), nil
	}
	return []byte("0"), nil
}

func (f *Flag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = false
		return nil
	}

	switch data[0] {
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return fmt.Errorf("invalid flag %s: %w", data, err)
		}
		*f = Flag(b)
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid flag %s: %w", data, err)
		}
		return f.parseString(s)
	default:
		n, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return fmt.Errorf("invalid flag %s: %w", data, err)
		}
		*f = n != 0
		return nil
	}
}

func (f *Flag) parseString(s string) error {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "0", "false", "no":
		*f = false
	case "true", "yes":
		*f = true
	default:
		n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("invalid flag %q", s)
		}
		*f = n != 0
	}
	return nil
}

// SubmitAck acknowledgment returned by the remote store after a POST
type SubmitAck struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// SubmitReadingRequest body of POST /readings
type SubmitReadingRequest struct {
	Row             int    `json:"row" validate:"required,min=1,max=10"`
	Col             int    `json:"col" validate:"required,min=1,max=10"`
	Survivors       int    `json:"survivors" validate:"min=0"`
	BuildingDamage  Flag   `json:"buildingDamage"`
	Flood           Flag   `json:"flood"`
	FloodPrediction Flag   `json:"flood_prediction"`
	Notes           string `json:"notes"`
}

// ToReading converts the request into a Reading
func (req *SubmitReadingRequest) ToReading() *Reading {
	return &Reading{
		Row:             req.Row,
		Col:             req.Col,
		Survivors:       req.Survivors,
		BuildingDamage:  req.BuildingDamage,
		Flood:           req.Flood,
		FloodPrediction: req.FloodPrediction,
		Notes:           req.Notes,
	}
}
