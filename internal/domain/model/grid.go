package model

import (
	"time"

	"github.com/paulmach/orb"
)

// GridSpec physical layout of the survey grid
type GridSpec struct {
	WidthMeters  float64 // east-west extent
	HeightMeters float64 // north-south extent
	Rows         int
	Cols         int
	FitRadius    float64 // meters around the center shown on the first render
}

// DefaultGridSpec 50m x 50m area split into 10 x 10 cells
func DefaultGridSpec() GridSpec {
	return GridSpec{
		WidthMeters:  50,
		HeightMeters: 50,
		Rows:         10,
		Cols:         10,
		FitRadius:    100,
	}
}

// CellWidth east-west size of one cell in meters
func (g GridSpec) CellWidth() float64 { return g.WidthMeters / float64(g.Cols) }

// CellHeight north-south size of one cell in meters
func (g GridSpec) CellHeight() float64 { return g.HeightMeters / float64(g.Rows) }

// CellCount total number of cells
func (g GridSpec) CellCount() int { return g.Rows * g.Cols }

// CellStyle drawing options of a cell rectangle
type CellStyle struct {
	Color       string  `json:"color"`
	Weight      int     `json:"weight"`
	FillColor   string  `json:"fillColor"`
	FillOpacity float64 `json:"fillOpacity"`
}

// Cell one rendered rectangle
type Cell struct {
	Row     int       `json:"row"`
	Col     int       `json:"col"`
	Bounds  orb.Bound `json:"-"`
	Center  orb.Point `json:"-"`
	Style   CellStyle `json:"style"`
	Popup   string    `json:"popup,omitempty"`
	Flooded bool      `json:"flooded"`
}

// LabelPart one colored fragment of a cell label
type LabelPart struct {
	Text  string `json:"text"`
	Color string `json:"color"`
}

// Label text marker anchored at a cell center
type Label struct {
	Row      int         `json:"row"`
	Col      int         `json:"col"`
	Position orb.Point   `json:"-"`
	Parts    []LabelPart `json:"parts"`
}

// Text the label parts joined by a single space
func (l Label) Text() string {
	text := ""
	for i, p := range l.Parts {
		if i > 0 {
			text += " "
		}
		text += p.Text
	}
	return text
}

// Layer an independently drawn set of cells and labels
type Layer struct {
	Name   string  `json:"name"`
	ZIndex int     `json:"z_index"`
	Cells  []Cell  `json:"cells"`
	Labels []Label `json:"labels"`
}

// Cell returns the cell at row/col, or nil when the layer has none there
func (l *Layer) Cell(row, col int) *Cell {
	for i := range l.Cells {
		if l.Cells[i].Row == row && l.Cells[i].Col == col {
			return &l.Cells[i]
		}
	}
	return nil
}

// Label returns the label at row/col, or nil
func (l *Layer) Label(row, col int) *Label {
	for i := range l.Labels {
		if l.Labels[i].Row == row && l.Labels[i].Col == col {
			return &l.Labels[i]
		}
	}
	return nil
}

// Counters the four dashboard readouts
type Counters struct {
	TotalSurvivors      int `json:"total_survivors"`
	FloodCount          int `json:"flood_count"`
	NoFloodCount        int `json:"no_flood_count"`
	BuildingDamageCount int `json:"building_damage_count"`
}

// ViewState per-session map view: center, overlay toggle and whether the viewport was fit
type ViewState struct {
	Center         orb.Point // [lng, lat]
	ShowPrediction bool
	Initialized    bool
	Viewport       orb.Bound
}

// NewViewState creates an uninitialized view centered at lat/lng
func NewViewState(lat, lng float64, showPrediction bool) *ViewState {
	return &ViewState{
		Center:         orb.Point{lng, lat},
		ShowPrediction: showPrediction,
	}
}

// RenderResult output of a base grid update
type RenderResult struct {
	Layer    Layer
	Counters Counters
	Fitted   bool // viewport was fit during this render
}

// GridSnapshot the rendered state handed to snapshot repositories and the HTTP API
type GridSnapshot struct {
	SessionID       string
	Center          orb.Point
	Viewport        orb.Bound
	Counters        Counters
	BaseLayer       Layer
	PredictionLayer *Layer
	UpdatedAt       time.Time
}
