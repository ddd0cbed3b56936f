package stac

import "encoding/json"

// ItemCollection represents a GeoJSON FeatureCollection of STAC Items with
// context extension metadata.
type ItemCollection struct {
	Features []*Item  `json:"features"`
	Links    []*Link  `json:"links,omitempty"`
	Context  *Context `json:"context,omitempty"`
}

// Context carries the STAC context extension members echoed on search
// responses.
type Context struct {
	Returned int `json:"returned"`
	Limit    int `json:"limit"`
	Matched  int `json:"matched"`
}

// MarshalJSON always emits type="FeatureCollection".
func (ic ItemCollection) MarshalJSON() ([]byte, error) {
	type listAlias ItemCollection
	data, err := json.Marshal(listAlias(ic))
	if err != nil {
		return nil, err
	}
	return mergeExtras(data, FeatureCollectionType, nil)
}

// CollectionList represents the /collections response document.
type CollectionList struct {
	Collections []*Collection `json:"collections"`
	Links       []*Link       `json:"links,omitempty"`
}
