package types

import "encoding/json"

// FeatureCollection is the subset of GeoJSON needed for district boundaries.
// Geometry is passed through untouched.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

type Feature struct {
	Type       string          `json:"type"`
	Properties map[string]any  `json:"properties"`
	Geometry   json.RawMessage `json:"geometry"`
}

// Name returns the string property used to join a feature to district data.
func (f Feature) Name(property string) string {
	s, _ := f.Properties[property].(string)
	return s
}
