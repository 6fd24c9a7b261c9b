package service

import (
	"fmt"
	"strconv"

	"FloodGrid-App/internal/domain/helper"
	"FloodGrid-App/internal/domain/model"
)

const (
	BaseLayerName       = "grid"
	PredictionLayerName = "prediction"

	baseLayerZIndex       = 400
	predictionLayerZIndex = 450
)

var (
	defaultCellStyle = model.CellStyle{
		Color:       "#ffffff",
		Weight:      1,
		FillColor:   "#98ff98",
		FillOpacity: 0.05,
	}
	floodCellStyle = model.CellStyle{
		Color:       "#ffffff",
		Weight:      1,
		FillColor:   "blue",
		FillOpacity: 0.5,
	}
	predictionCellStyle = model.CellStyle{
		Color:       "#ffffff",
		Weight:      1,
		FillColor:   "yellow",
		FillOpacity: 0.5,
	}
)

const (
	survivorLabelColor = "#f587b1"
	damageLabelColor   = "pink"
	damageLabelText    = "BD"
)

// GridRenderer turns a view state and a set of readings into map layers.
// It holds no state of its own; everything mutable lives in model.ViewState.
type GridRenderer interface {
	// DrawGrid draws the base grid with every cell in the no-data style and fits the viewport on first use
	DrawGrid(state *model.ViewState) *model.RenderResult
	// UpdateWithReadings redraws the base grid and applies the readings to it
	UpdateWithReadings(state *model.ViewState, readings []model.Reading) *model.RenderResult
	// UpdatePredictionOverlay builds the prediction layer from scratch
	UpdatePredictionOverlay(state *model.ViewState, readings []model.Reading) *model.Layer
	// Spec grid layout in use
	Spec() model.GridSpec
}

type gridRendererImpl struct {
	spec model.GridSpec
}

// NewGridRenderer creates a renderer for the given grid layout
func NewGridRenderer(spec model.GridSpec) GridRenderer {
	return &gridRendererImpl{spec: spec}
}

func (r *gridRendererImpl) Spec() model.GridSpec {
	return r.spec
}

func (r *gridRendererImpl) DrawGrid(state *model.ViewState) *model.RenderResult {
	layer := model.Layer{
		Name:   BaseLayerName,
		ZIndex: baseLayerZIndex,
		Cells:  make([]model.Cell, 0, r.spec.CellCount()),
		Labels: []model.Label{},
	}

	for row := 1; row <= r.spec.Rows; row++ {
		for col := 1; col <= r.spec.Cols; col++ {
			layer.Cells = append(layer.Cells, model.Cell{
				Row:    row,
				Col:    col,
				Bounds: helper.CellBounds(r.spec, state.Center, row, col),
				Center: helper.CellCenter(r.spec, state.Center, row, col),
				Style:  defaultCellStyle,
				Popup:  fmt.Sprintf("Row: %d, Col: %d", row, col),
			})
		}
	}

	fitted := false
	if !state.Initialized {
		state.Viewport = helper.FitBounds(state.Center, r.spec.FitRadius)
		state.Initialized = true
		fitted = true
	}

	return &model.RenderResult{
		Layer:  layer,
		Fitted: fitted,
	}
}

func (r *gridRendererImpl) UpdateWithReadings(state *model.ViewState, readings []model.Reading) *model.RenderResult {
	result := r.DrawGrid(state)

	cells := r.latestByCell(readings)
	if len(cells) == 0 {
		return result
	}

	var counters model.Counters
	for i := range result.Layer.Cells {
		cell := &result.Layer.Cells[i]
		reading, ok := cells[cellKey{cell.Row, cell.Col}]
		if !ok {
			continue
		}

		if reading.Flood {
			cell.Style = floodCellStyle
			cell.Flooded = true
			counters.FloodCount++
		}

		var parts []model.LabelPart
		if reading.Survivors > 0 {
			counters.TotalSurvivors += reading.Survivors
			parts = append(parts, model.LabelPart{Text: strconv.Itoa(reading.Survivors), Color: survivorLabelColor})
		}
		if reading.BuildingDamage {
			counters.BuildingDamageCount++
			parts = append(parts, model.LabelPart{Text: damageLabelText, Color: damageLabelColor})
		}

		if len(parts) > 0 {
			result.Layer.Labels = append(result.Layer.Labels, model.Label{
				Row:      cell.Row,
				Col:      cell.Col,
				Position: cell.Center,
				Parts:    parts,
			})
		}
	}
	counters.NoFloodCount = r.spec.CellCount() - counters.FloodCount

	result.Counters = counters
	return result
}

func (r *gridRendererImpl) UpdatePredictionOverlay(state *model.ViewState, readings []model.Reading) *model.Layer {
	layer := &model.Layer{
		Name:   PredictionLayerName,
		ZIndex: predictionLayerZIndex,
		Cells:  []model.Cell{},
		Labels: []model.Label{},
	}

	cells := r.latestByCell(readings)
	for row := 1; row <= r.spec.Rows; row++ {
		for col := 1; col <= r.spec.Cols; col++ {
			reading, ok := cells[cellKey{row, col}]
			if !ok || !bool(reading.FloodPrediction) {
				continue
			}
			layer.Cells = append(layer.Cells, model.Cell{
				Row:    row,
				Col:    col,
				Bounds: helper.CellBounds(r.spec, state.Center, row, col),
				Center: helper.CellCenter(r.spec, state.Center, row, col),
				Style:  predictionCellStyle,
			})
		}
	}

	return layer
}

type cellKey struct {
	row, col int
}

// latestByCell keeps the last in-range reading per cell; out-of-range readings are dropped
func (r *gridRendererImpl) latestByCell(readings []model.Reading) map[cellKey]model.Reading {
	cells := make(map[cellKey]model.Reading, len(readings))
	for _, reading := range readings {
		if !reading.InGrid(r.spec.Rows, r.spec.Cols) {
			continue
		}
		cells[cellKey{reading.Row, reading.Col}] = reading
	}
	return cells
}
