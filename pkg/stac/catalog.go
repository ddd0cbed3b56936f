package stac

import (
	"encoding/json"
	"fmt"
)

// Catalog represents a STAC Catalog. The bridge synthesizes catalogs for the
// API root, per-provider entry points, and the date-partitioned browse
// hierarchy; none are stored natively.
type Catalog struct {
	Version     string   `json:"stac_version"`
	ID          string   `json:"id"`
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description"`
	Links       []*Link  `json:"links"`
	ConformsTo  []string `json:"conformsTo,omitempty"`

	// AdditionalFields holds foreign members not defined in the STAC spec.
	AdditionalFields map[string]any `json:"-"`
}

var knownCatalogFields = map[string]bool{
	"type": true, "stac_version": true, "id": true, "title": true,
	"description": true, "links": true, "conformsTo": true,
}

// AddLink appends a link to the catalog.
func (cat *Catalog) AddLink(rel, href, title string) {
	link := NewLink(rel, href)
	link.Title = title
	cat.Links = append(cat.Links, link)
}

// GetLink returns the first link with the given rel, or nil.
func (cat *Catalog) GetLink(rel string) *Link {
	return FindLink(cat.Links, rel)
}

// GetLinks returns all links with the given rel.
func (cat *Catalog) GetLinks(rel string) []*Link {
	return FilterLinks(cat.Links, rel)
}

// MarshalJSON always emits type="Catalog" and merges foreign members.
func (cat Catalog) MarshalJSON() ([]byte, error) {
	type catalogAlias Catalog
	data, err := json.Marshal(catalogAlias(cat))
	if err != nil {
		return nil, err
	}
	return mergeExtras(data, CatalogType, cat.AdditionalFields)
}

// UnmarshalJSON validates the type discriminator and captures foreign members.
func (cat *Catalog) UnmarshalJSON(data []byte) error {
	type catalogAlias Catalog
	var aux catalogAlias
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*cat = Catalog(aux)

	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}
	if head.Type != "" && head.Type != CatalogType {
		return fmt.Errorf("invalid catalog type: expected %q, got %q", CatalogType, head.Type)
	}

	extras, err := splitExtras(data, knownCatalogFields)
	if err != nil {
		return err
	}
	cat.AdditionalFields = extras
	return nil
}
