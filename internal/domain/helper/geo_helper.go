package helper

import (
	"math"

	"github.com/paulmach/orb"

	"FloodGrid-App/internal/domain/model"
)

// MetersPerDegree approximate length of one degree of latitude
const MetersPerDegree = 111000.0

// MetersToLatLng converts a north/east offset in meters to a lat/lng delta at centerLat.
// Flat-earth approximation, good for offsets of tens of meters.
func MetersToLatLng(metersLat, metersLng, centerLat float64) (lat, lng float64) {
	lat = metersLat / MetersPerDegree
	lng = metersLng / (MetersPerDegree * math.Cos(centerLat*math.Pi/180))
	return lat, lng
}

// CellCenter center point of cell (row, col), rows counted from the south and cols from the west.
// Offsets are cellSize*(i - n/2 + 0.5), so the grid sits half a cell north-east of center.
func CellCenter(spec model.GridSpec, center orb.Point, row, col int) orb.Point {
	latOffset, _ := MetersToLatLng(spec.CellHeight()*(float64(row)-float64(spec.Rows)/2+0.5), 0, center.Lat())
	_, lngOffset := MetersToLatLng(0, spec.CellWidth()*(float64(col)-float64(spec.Cols)/2+0.5), center.Lat())
	return orb.Point{center.Lon() + lngOffset, center.Lat() + latOffset}
}

// CellBounds rectangle of cell (row, col)
func CellBounds(spec model.GridSpec, center orb.Point, row, col int) orb.Bound {
	c := CellCenter(spec, center, row, col)
	halfLat, _ := MetersToLatLng(spec.CellHeight()/2, 0, center.Lat())
	_, halfLng := MetersToLatLng(0, spec.CellWidth()/2, center.Lat())

	return orb.Bound{
		Min: orb.Point{c.Lon() - halfLng, c.Lat() - halfLat},
		Max: orb.Point{c.Lon() + halfLng, c.Lat() + halfLat},
	}
}

// GridBounds outer rectangle of the whole grid
func GridBounds(spec model.GridSpec, center orb.Point) orb.Bound {
	southWest := CellBounds(spec, center, 1, 1)
	northEast := CellBounds(spec, center, spec.Rows, spec.Cols)
	return orb.Bound{Min: southWest.Min, Max: northEast.Max}
}

// FitBounds square viewport of radiusMeters around center
func FitBounds(center orb.Point, radiusMeters float64) orb.Bound {
	dLat, dLng := MetersToLatLng(radiusMeters, radiusMeters, center.Lat())
	return orb.Bound{
		Min: orb.Point{center.Lon() - dLng, center.Lat() - dLat},
		Max: orb.Point{center.Lon() + dLng, center.Lat() + dLat},
	}
}

// CellMapping GPS coordinates of every cell center, row-major
func CellMapping(spec model.GridSpec, center orb.Point) []model.CellMapping {
	mapping := make([]model.CellMapping, 0, spec.CellCount())
	for row := 1; row <= spec.Rows; row++ {
		for col := 1; col <= spec.Cols; col++ {
			p := CellCenter(spec, center, row, col)
			mapping = append(mapping, model.CellMapping{
				Row:       row,
				Col:       col,
				Latitude:  p.Lat(),
				Longitude: p.Lon(),
			})
		}
	}
	return mapping
}

// ValidateCoordinates checks lat/lng ranges
func ValidateCoordinates(lat, lng float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}
