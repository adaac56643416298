package mapview

import (
	"fmt"
	"html"

	"go-kiezmap/types"
)

// MarkerStyle tells the page script how to draw one group. Circle markers ignore Icon.
type MarkerStyle struct {
	Shape  string `json:"shape"`
	Color  string `json:"color"`
	Icon   string `json:"icon,omitempty"`
	Radius int    `json:"radius,omitempty"`
}

var (
	searchStyle = MarkerStyle{Shape: "icon", Color: "red", Icon: "info-sign"}

	groupStyles = map[types.Category]MarkerStyle{
		types.CategoryFood:       {Shape: "circle", Color: "green", Radius: 5},
		types.CategoryLodging:    {Shape: "icon", Color: "blue", Icon: "bed"},
		types.CategoryAttraction: {Shape: "icon", Color: "purple", Icon: "camera"},
	}

	groupNames = map[types.Category]string{
		types.CategoryFood:       "Restaurants",
		types.CategoryLodging:    "Hotels",
		types.CategoryAttraction: "Sights",
	}
)

type SearchMarker struct {
	Lat   float64     `json:"lat"`
	Lng   float64     `json:"lng"`
	Popup string      `json:"popup"`
	Style MarkerStyle `json:"style"`
}

type PlaceMarker struct {
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Popup string  `json:"popup"`
}

type MarkerGroup struct {
	Category types.Category `json:"category"`
	Name     string         `json:"name"`
	Style    MarkerStyle    `json:"style"`
	Markers  []PlaceMarker  `json:"markers"`
}

func newSearchMarker(m types.Marker) *SearchMarker {
	return &SearchMarker{Lat: m.Lat, Lng: m.Lng, Popup: html.EscapeString(m.Label), Style: searchStyle}
}

func newMarkerGroup(category types.Category, places []types.Place) MarkerGroup {
	g := MarkerGroup{
		Category: category,
		Name:     groupNames[category],
		Style:    groupStyles[category],
		Markers:  make([]PlaceMarker, 0, len(places)),
	}
	for _, p := range places {
		g.Markers = append(g.Markers, PlaceMarker{Lat: p.Lat, Lng: p.Lng, Popup: PopupHTML(p)})
	}
	return g
}

// PopupHTML renders the marker popup: the bold place name and its outbound search link.
func PopupHTML(p types.Place) string {
	return fmt.Sprintf(`<div style="width:150px"><b>%s</b><br><a href="%s" target="_blank" rel="noopener">Google search</a></div>`,
		html.EscapeString(p.Name), html.EscapeString(p.Link))
}
