// Package assemble reshapes native Catalog Service records into STAC
// documents. Every document it returns is structurally complete - the
// external schema validator checks conformance but never fills defaults,
// so required members (id, stac_version, type discriminators, links) are
// the assembler's responsibility.
package assemble


// Site locates the assembled documents within the bridge's URL space. It
// is derived per request and passed explicitly; the assembler reads no
// process-wide state.
type Site struct {
	// RootHref is the absolute href of the catalog root, e.g.
	// "https://host/stac" or "https://host/cloudstac".
	RootHref string
	// Provider is the provider path segment scoping the request.
	Provider string
}

// ProviderHref returns the href of the provider catalog.
func (s Site) ProviderHref() string {
	return s.RootHref + "/" + s.Provider
}

// CollectionsHref returns the href of the provider's collection list.
func (s Site) CollectionsHref() string {
	return s.ProviderHref() + "/collections"
}

// CollectionHref returns the href of one collection document.
func (s Site) CollectionHref(collectionID string) string {
	return s.CollectionsHref() + "/" + collectionID
}

// ItemsHref returns the href of a collection's item listing.
func (s Site) ItemsHref(collectionID string) string {
	return s.CollectionHref(collectionID) + "/items"
}

// ItemHref returns the href of one item document.
func (s Site) ItemHref(collectionID, itemID string) string {
	return s.ItemsHref(collectionID) + "/" + itemID
}

// SearchHref returns the href of the provider's search endpoint.
func (s Site) SearchHref() string {
	return s.ProviderHref() + "/search"
}

// BrowseHref returns the href of a browse catalog node addressed by date
// path segments.
func (s Site) BrowseHref(collectionID string, segs ...string) string {
	href := s.CollectionHref(collectionID) + "/browse"
	for _, seg := range segs {
		href += "/" + seg
	}
	return href
}

func fallback(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
