package stac

import "encoding/json"

// Collection represents a STAC Collection assembled from a native
// collection record.
type Collection struct {
	Version     string         `json:"stac_version"`
	Id          string         `json:"id"`
	Title       string         `json:"title,omitempty"`
	Description string         `json:"description"`
	Keywords    []string       `json:"keywords,omitempty"`
	License     string         `json:"license"`
	Providers   []*Provider    `json:"providers,omitempty"`
	Extent      *Extent        `json:"extent"`
	Summaries   map[string]any `json:"summaries,omitempty"`
	Links       []*Link        `json:"links"`

	// AdditionalFields holds foreign members not defined in the STAC spec.
	AdditionalFields map[string]any `json:"-"`
}

var knownCollectionFields = map[string]bool{
	"type": true, "stac_version": true, "id": true, "title": true,
	"description": true, "keywords": true, "license": true,
	"providers": true, "extent": true, "summaries": true, "links": true,
}

// GetLink returns the first link with the given rel, or nil.
func (col *Collection) GetLink(rel string) *Link {
	return FindLink(col.Links, rel)
}

// MarshalJSON always emits type="Collection" and merges foreign members.
func (col Collection) MarshalJSON() ([]byte, error) {
	type collectionAlias Collection
	data, err := json.Marshal(collectionAlias(col))
	if err != nil {
		return nil, err
	}
	return mergeExtras(data, CollectionType, col.AdditionalFields)
}

// UnmarshalJSON captures foreign members alongside the STAC core fields.
func (col *Collection) UnmarshalJSON(data []byte) error {
	type collectionAlias Collection
	var aux collectionAlias
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*col = Collection(aux)

	extras, err := splitExtras(data, knownCollectionFields)
	if err != nil {
		return err
	}
	col.AdditionalFields = extras
	return nil
}
