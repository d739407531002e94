package geo

import "encoding/json"

// NewFeatureCollection turns store records into point features, keeping the
// order the store returned them in.
func NewFeatureCollection(records []Record) FeatureCollection {
	features := make([]Feature, 0, len(records))
	for _, r := range records {
		features = append(features, Feature{
			Type: TypeFeature,
			Geometry: Geometry{
				Type:        TypePoint,
				Coordinates: [2]string{r.C0, r.C1},
			},
		})
	}

	return FeatureCollection{
		Type:     TypeFeatureCollection,
		Features: features,
	}
}

// Encode renders the document the way it is published: indented JSON.
func (fc FeatureCollection) Encode() ([]byte, error) {
	if fc.Features == nil {
		fc.Features = []Feature{}
	}
	return json.MarshalIndent(fc, "", "    ")
}
