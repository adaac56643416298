package types

// Category is a point-of-interest layer.
type Category string

const (
	CategoryFood       Category = "food"
	CategoryLodging    Category = "lodging"
	CategoryAttraction Category = "attraction"
)

// Categories lists every POI layer in sidebar order.
var Categories = []Category{CategoryFood, CategoryLodging, CategoryAttraction}

type Place struct {
	Name           string   `json:"name"`
	Lat            float64  `json:"lat"`
	Lng            float64  `json:"lng"`
	Link           string   `json:"link"`
	Category       Category `json:"category"`
	DistanceMeters float64  `json:"distanceMeters"`
}

// Weather is the current reading for the city center.
type Weather struct {
	TemperatureC  float64 `json:"temperature"`
	ConditionCode int     `json:"weathercode"`
	Condition     string  `json:"condition"`
}
