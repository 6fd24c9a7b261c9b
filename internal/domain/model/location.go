package model

import "github.com/paulmach/orb"

// Location a WGS84 position
type Location struct {
	Latitude  float64 `json:"latitude" validate:"required,min=-90,max=90"`
	Longitude float64 `json:"longitude" validate:"required,min=-180,max=180"`
}

// ToPoint converts to an orb.Point ([lng, lat])
func (l *Location) ToPoint() orb.Point {
	return orb.Point{l.Longitude, l.Latitude}
}

// LocationFromPoint converts an orb.Point to a Location
func LocationFromPoint(p orb.Point) *Location {
	return &Location{
		Latitude:  p.Lat(),
		Longitude: p.Lon(),
	}
}
