package helper

import (
	"github.com/paulmach/orb/geojson"

	"FloodGrid-App/internal/domain/model"
)

// LayerToFeatureCollection converts a rendered layer into GeoJSON.
// Cells become Polygon features, labels become Point features with kind=label.
func LayerToFeatureCollection(layer *model.Layer) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	if layer == nil {
		return fc
	}

	for _, cell := range layer.Cells {
		f := geojson.NewFeature(cell.Bounds.ToPolygon())
		f.Properties["kind"] = "cell"
		f.Properties["layer"] = layer.Name
		f.Properties["z_index"] = layer.ZIndex
		f.Properties["row"] = cell.Row
		f.Properties["col"] = cell.Col
		f.Properties["color"] = cell.Style.Color
		f.Properties["weight"] = cell.Style.Weight
		f.Properties["fillColor"] = cell.Style.FillColor
		f.Properties["fillOpacity"] = cell.Style.FillOpacity
		f.Properties["flooded"] = cell.Flooded
		if cell.Popup != "" {
			f.Properties["popup"] = cell.Popup
		}
		fc.Append(f)
	}

	for _, label := range layer.Labels {
		f := geojson.NewFeature(label.Position)
		f.Properties["kind"] = "label"
		f.Properties["layer"] = layer.Name
		f.Properties["row"] = label.Row
		f.Properties["col"] = label.Col
		f.Properties["text"] = label.Text()
		f.Properties["parts"] = label.Parts
		fc.Append(f)
	}

	return fc
}

// SnapshotToGridView builds the JSON view served to the map page
func SnapshotToGridView(snapshot *model.GridSnapshot) *model.GridView {
	view := &model.GridView{
		SessionID: snapshot.SessionID,
		Center:    model.LocationFromPoint(snapshot.Center),
		Viewport: [2][2]float64{
			{snapshot.Viewport.Min.Lat(), snapshot.Viewport.Min.Lon()},
			{snapshot.Viewport.Max.Lat(), snapshot.Viewport.Max.Lon()},
		},
		Counters:  snapshot.Counters,
		BaseLayer: LayerToFeatureCollection(&snapshot.BaseLayer),
		UpdatedAt: snapshot.UpdatedAt,
	}
	if snapshot.PredictionLayer != nil {
		view.PredictionLayer = LayerToFeatureCollection(snapshot.PredictionLayer)
	}
	return view
}
