package geo

const (
	TypeFeatureCollection = "FeatureCollection"
	TypeFeature           = "Feature"
	TypePoint             = "Point"
)

// Record is a geotagged post as projected from the record store. Coordinates
// are kept as the text the store holds; they are never parsed.
type Record struct {
	C0 string `json:"c0"` // longitude
	C1 string `json:"c1"` // latitude
}

// FeatureCollection is the GeoJSON document published for a window.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

type Feature struct {
	Type     string   `json:"type"`
	Geometry Geometry `json:"geometry"`
}

type Geometry struct {
	Type        string    `json:"type"`
	Coordinates [2]string `json:"coordinates"`
}
