package mapview

import (
	"math"

	"go-kiezmap/types"
)

const (
	fillOpacity = 0.5
	lineOpacity = 0.2

	// Feature properties added by the join.
	ValueProperty = "Total_Crime"
	ColorProperty = "fillColor"
)

// YlOrRd is the six-class sequential palette, palest first.
var YlOrRd = []string{"#ffffb2", "#fed976", "#feb24c", "#fd8d3c", "#f03b20", "#bd0026"}

type Bin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Color string  `json:"color"`
}

type Choropleth struct {
	Legend      string                  `json:"legend"`
	Bins        []Bin                   `json:"bins"`
	FillOpacity float64                 `json:"fillOpacity"`
	LineOpacity float64                 `json:"lineOpacity"`
	Features    types.FeatureCollection `json:"features"`
	// Unmatched lists boundary names with no crime row. They render unfilled.
	Unmatched []string `json:"unmatched"`
}

// Scale splits [min, max] into len(YlOrRd) equal-width bins.
func Scale(min, max float64) []Bin {
	n := len(YlOrRd)
	width := (max - min) / float64(n)
	bins := make([]Bin, n)
	for i := range bins {
		bins[i] = Bin{Lower: min + width*float64(i), Upper: min + width*float64(i+1), Color: YlOrRd[i]}
	}
	bins[n-1].Upper = max
	return bins
}

// ColorFor returns the palette entry for v. When every district has the same total the palest
// color is used.
func ColorFor(v, min, max float64) string {
	if max <= min {
		return YlOrRd[0]
	}
	idx := int(math.Floor((v - min) / (max - min) * float64(len(YlOrRd))))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(YlOrRd) {
		idx = len(YlOrRd) - 1
	}
	return YlOrRd[idx]
}

// Join copies the boundaries and annotates every feature whose name property exactly matches a
// district in table with its total and fill color. It returns the names that found no match.
func Join(table types.CrimeTable, boundaries types.FeatureCollection, nameProperty string) (types.FeatureCollection, []string) {
	min, max := table.Bounds()
	joined := types.FeatureCollection{Type: "FeatureCollection", Features: make([]types.Feature, 0, len(boundaries.Features))}
	unmatched := []string{}

	for _, f := range boundaries.Features {
		props := make(map[string]any, len(f.Properties)+2)
		for k, v := range f.Properties {
			props[k] = v
		}
		name := f.Name(nameProperty)
		if total, ok := table.Lookup(name); ok {
			props[ValueProperty] = total
			props[ColorProperty] = ColorFor(total, min, max)
		} else {
			unmatched = append(unmatched, name)
		}
		joined.Features = append(joined.Features, types.Feature{Type: f.Type, Properties: props, Geometry: f.Geometry})
	}
	return joined, unmatched
}

func NewChoropleth(table types.CrimeTable, boundaries types.FeatureCollection, nameProperty, legend string) *Choropleth {
	min, max := table.Bounds()
	features, unmatched := Join(table, boundaries, nameProperty)
	return &Choropleth{
		Legend:      legend,
		Bins:        Scale(min, max),
		FillOpacity: fillOpacity,
		LineOpacity: lineOpacity,
		Features:    features,
		Unmatched:   unmatched,
	}
}
