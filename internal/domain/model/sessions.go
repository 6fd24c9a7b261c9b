package model

import "time"

// StartSessionRequest POST /sessions
// Coordinates arrive as typed text and are parsed as decimal degrees.
type StartSessionRequest struct {
	Latitude       string `json:"latitude" validate:"required"`
	Longitude      string `json:"longitude" validate:"required"`
	ShowPrediction bool   `json:"show_prediction"`
}

// SessionStatus state of a poll session
type SessionStatus struct {
	SessionID      string    `json:"session_id"`
	Center         *Location `json:"center"`
	ShowPrediction bool      `json:"show_prediction"`
	Active         bool      `json:"active"`
	StartedAt      time.Time `json:"started_at"`
	Cycles         int       `json:"cycles"`
	SubmitFailures int       `json:"submit_failures"`
	FetchFailures  int       `json:"fetch_failures"`
	LastError      string    `json:"last_error,omitempty"`
	LastCycleAt    time.Time `json:"last_cycle_at,omitempty"`
}

// GridView GET /grid response
type GridView struct {
	SessionID       string        `json:"session_id"`
	Center          *Location     `json:"center"`
	Viewport        [2][2]float64 `json:"viewport"` // [[south, west], [north, east]]
	Counters        Counters      `json:"counters"`
	BaseLayer       interface{}   `json:"base_layer"`
	PredictionLayer interface{}   `json:"prediction_layer,omitempty"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// CellMapping GPS position of a cell center
type CellMapping struct {
	Row       int     `json:"row"`
	Col       int     `json:"col"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}
