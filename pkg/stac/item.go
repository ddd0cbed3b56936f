package stac

import "encoding/json"

// Item represents a STAC Item (GeoJSON Feature) assembled from a native
// granule record.
type Item struct {
	Version    string            `json:"stac_version"`
	Id         string            `json:"id"`
	Geometry   any               `json:"geometry"`
	Bbox       []float64         `json:"bbox,omitempty"`
	Properties map[string]any    `json:"properties"`
	Links      []*Link           `json:"links"`
	Assets     map[string]*Asset `json:"assets"`
	Collection string            `json:"collection,omitempty"`

	// AdditionalFields holds foreign members not defined in the STAC spec.
	AdditionalFields map[string]any `json:"-"`
}

var knownItemFields = map[string]bool{
	"type": true, "stac_version": true, "id": true, "geometry": true,
	"bbox": true, "properties": true, "links": true, "assets": true,
	"collection": true,
}

// GetLink returns the first link with the given rel, or nil.
func (item *Item) GetLink(rel string) *Link {
	return FindLink(item.Links, rel)
}

// MarshalJSON always emits type="Feature" and merges foreign members.
func (item Item) MarshalJSON() ([]byte, error) {
	type itemAlias Item
	data, err := json.Marshal(itemAlias(item))
	if err != nil {
		return nil, err
	}
	return mergeExtras(data, FeatureType, item.AdditionalFields)
}

// UnmarshalJSON captures foreign members alongside the STAC core fields.
func (item *Item) UnmarshalJSON(data []byte) error {
	type itemAlias Item
	var aux itemAlias
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*item = Item(aux)

	extras, err := splitExtras(data, knownItemFields)
	if err != nil {
		return err
	}
	item.AdditionalFields = extras
	return nil
}
