package mapview

import (
	"fmt"

	"go-kiezmap/types"
)

const defaultZoom = 13

// Input is everything one render of the map needs. Places holds the lists for the enabled categories only.
type Input struct {
	Center       types.LatLng
	Zoom         int
	Layers       types.LayerToggles
	Crime        types.CrimeTable
	CrimeFile    string
	Legend       string
	NameProperty string
	// Boundaries is nil when the geometry source could not be fetched.
	Boundaries   *types.FeatureCollection
	SearchMarker *types.Marker
	Places       map[types.Category][]types.Place
}

// View is the renderable map. The page script draws it with Leaflet as is.
type View struct {
	Center       types.LatLng  `json:"center"`
	Zoom         int           `json:"zoom"`
	Choropleth   *Choropleth   `json:"choropleth,omitempty"`
	SearchMarker *SearchMarker `json:"searchMarker,omitempty"`
	Groups       []MarkerGroup `json:"groups"`
	Warnings     []string      `json:"warnings"`
}

// Compose builds the map from the current state. It never fails: a missing layer becomes a warning.
func Compose(in Input) View {
	zoom := in.Zoom
	if zoom <= 0 {
		zoom = defaultZoom
	}
	view := View{
		Center:   in.Center,
		Zoom:     zoom,
		Groups:   []MarkerGroup{},
		Warnings: []string{},
	}

	// 1. Crime choropleth
	if in.Layers.Crime {
		switch {
		case in.Crime.Empty():
			view.Warnings = append(view.Warnings, fmt.Sprintf("crime data (%s) could not be read", in.CrimeFile))
		case in.Boundaries == nil || len(in.Boundaries.Features) == 0:
			view.Warnings = append(view.Warnings, "district boundaries are unavailable, crime layer hidden")
		default:
			view.Choropleth = NewChoropleth(in.Crime, *in.Boundaries, in.NameProperty, in.Legend)
		}
	}

	// 2. Search result
	if in.SearchMarker != nil {
		view.SearchMarker = newSearchMarker(*in.SearchMarker)
	}

	// 3. POI groups, in sidebar order
	for _, category := range types.Categories {
		if !in.Layers.Enabled(category) {
			continue
		}
		view.Groups = append(view.Groups, newMarkerGroup(category, in.Places[category]))
	}

	return view
}
