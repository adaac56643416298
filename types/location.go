package types

// LatLng is a WGS84 coordinate pair in degrees.
type LatLng struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// Location is a geocoding hit.
type Location struct {
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Label string  `json:"label"`
}

// Marker is the single pin left by the last successful search.
type Marker struct {
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Label string  `json:"label"`
}

// LayerToggles are the sidebar checkboxes.
type LayerToggles struct {
	Crime       bool `json:"crime" form:"crime"`
	Food        bool `json:"food" form:"food"`
	Lodging     bool `json:"lodging" form:"lodging"`
	Attractions bool `json:"attractions" form:"attractions"`
}

// DefaultLayers mirrors the initial checkbox state of the sidebar.
func DefaultLayers() LayerToggles {
	return LayerToggles{Crime: true, Food: true}
}

type ViewState struct {
	MapCenter    LatLng       `json:"mapCenter"`
	SearchMarker *Marker      `json:"searchMarker,omitempty"`
	Layers       LayerToggles `json:"layers"`
}

// Enabled reports whether the layer for category is switched on.
func (l LayerToggles) Enabled(category Category) bool {
	switch category {
	case CategoryFood:
		return l.Food
	case CategoryLodging:
		return l.Lodging
	case CategoryAttraction:
		return l.Attractions
	default:
		return false
	}
}
