// Package browse builds date-partitioned STAC catalogs from flat temporal
// facet data. A browse node for a collection drills down year -> month ->
// day, with the day node linking directly to items.
package browse

import (
	"fmt"
	"strings"

	"github.com/robert-malhotra/go-stac-bridge/assemble"
	"github.com/robert-malhotra/go-stac-bridge/catalog"
	"github.com/robert-malhotra/go-stac-bridge/pkg/stac"
)

// ErrBadDatePath reports a date path outside the year[/month[/day]] shape.
// The zero-segment case never reaches the builder; the routes only match
// once at least a year is present.
type ErrBadDatePath struct {
	Segments []string
}

func (e *ErrBadDatePath) Error() string {
	return fmt.Sprintf("browse: date path must be year[/month[/day]], got %q",
		strings.Join(e.Segments, "/"))
}

// Builder assembles browse catalog nodes. It holds only the catalog root
// href; everything else arrives per call.
type Builder struct {
	RootHref string
}

// Build assembles the catalog node addressed by segs, interpreted
// positionally as year, month, day. A year node lists months as children,
// a month node lists days, and a day node lists items. A node never
// carries both child and item links.
func (b *Builder) Build(provider, collectionID string, segs []string, facets *catalog.TemporalFacets) (*stac.Catalog, error) {
	if len(segs) < 1 || len(segs) > 3 {
		return nil, &ErrBadDatePath{Segments: segs}
	}

	site := assemble.Site{RootHref: b.RootHref, Provider: provider}
	date := strings.Join(segs, "-")

	node := &stac.Catalog{
		Version:     stac.Version,
		ID:          collectionID + "-" + date,
		Title:       date,
		Description: fmt.Sprintf("%s items for %s", collectionID, date),
		Links: []*stac.Link{
			stac.NewLink(stac.RelSelf, site.BrowseHref(collectionID, segs...)),
			stac.NewLink(stac.RelRoot, b.RootHref),
			stac.NewLink(stac.RelParent, parentHref(site, collectionID, segs)),
		},
	}

	switch len(segs) {
	case 1:
		for _, month := range facets.Months {
			addChild(node, site, collectionID, append(segs[:1:1], month))
		}
	case 2:
		for _, day := range facets.Days {
			addChild(node, site, collectionID, append(segs[:2:2], day))
		}
	case 3:
		for _, id := range facets.ItemIDs {
			node.Links = append(node.Links, &stac.Link{
				Rel:   stac.RelItem,
				Href:  site.ItemHref(collectionID, id),
				Type:  stac.GeoJSONType,
				Title: id,
			})
		}
	}
	return node, nil
}

// parentHref truncates the date path by one segment. The year node's
// parent is the collection document itself: a bare browse path with no
// date is not addressable.
func parentHref(site assemble.Site, collectionID string, segs []string) string {
	if len(segs) <= 1 {
		return site.CollectionHref(collectionID)
	}
	return site.BrowseHref(collectionID, segs[:len(segs)-1]...)
}

func addChild(node *stac.Catalog, site assemble.Site, collectionID string, segs []string) {
	node.Links = append(node.Links, &stac.Link{
		Rel:   stac.RelChild,
		Href:  site.BrowseHref(collectionID, segs...),
		Type:  stac.JSONType,
		Title: segs[len(segs)-1],
	})
}
