// Package stac provides types for building SpatioTemporal Asset Catalog
// (STAC) documents: Catalog, Collection, Item, and their list forms.
//
// The bridge assembles these documents from native catalog records, so the
// types are construction-oriented: every document carries the required STAC
// members (id, stac_version, links, type discriminators) and supports
// "foreign members" - attributes outside the STAC core - through an
// AdditionalFields map that is merged into the JSON output.
//
//	item := stac.Item{Id: "G1234-PROV", Version: stac.Version}
//	item.AdditionalFields = map[string]any{"native:concept_id": "G1234-PROV"}
//	data, _ := json.Marshal(item)
package stac
