package assemble

import (
	"github.com/robert-malhotra/go-stac-bridge/catalog"
	"github.com/robert-malhotra/go-stac-bridge/paging"
	"github.com/robert-malhotra/go-stac-bridge/pkg/stac"
)

// licenseFallback is emitted when the native record carries no license;
// the STAC license member is required.
const licenseFallback = "not-provided"

// Collection assembles one STAC Collection from a native collection
// record.
func Collection(rec catalog.CollectionRecord, site Site) *stac.Collection {
	id := catalog.CollectionID(rec.ShortName, rec.Version)

	col := &stac.Collection{
		Version:     stac.Version,
		Id:          id,
		Title:       rec.Title,
		Description: fallback(rec.Summary, rec.Title),
		License:     licenseFallback,
		Extent:      collectionExtent(rec),
		Links: []*stac.Link{
			stac.NewLink(stac.RelSelf, site.CollectionHref(id)),
			stac.NewLink(stac.RelRoot, site.RootHref),
			stac.NewLink(stac.RelParent, site.ProviderHref()),
			{Rel: stac.RelItems, Href: site.ItemsHref(id), Type: stac.GeoJSONType},
		},
	}

	for _, link := range rec.Links {
		if link.Rel == catalog.LinkRelMetadata || link.Rel == catalog.LinkRelDoc {
			col.Links = append(col.Links, &stac.Link{
				Rel: stac.RelAbout, Href: link.Href, Type: link.Type, Title: link.Title,
			})
		}
	}
	return col
}

// CollectionList assembles the /collections document. Zero records yields
// an empty (not absent) collections array.
func CollectionList(recs []catalog.CollectionRecord, site Site, pc paging.Context) *stac.CollectionList {
	list := &stac.CollectionList{
		Collections: make([]*stac.Collection, 0, len(recs)),
		Links:       paging.BuildLinks(pc, len(recs), site.RootHref),
	}
	for _, rec := range recs {
		list.Collections = append(list.Collections, Collection(rec, site))
	}
	return list
}

func collectionExtent(rec catalog.CollectionRecord) *stac.Extent {
	spatial := stac.WholeEarth()
	if len(rec.Boxes) > 0 {
		var boxes [][]float64
		for _, box := range rec.Boxes {
			if bbox := boxToBbox(box); bbox != nil {
				boxes = append(boxes, bbox)
			}
		}
		if len(boxes) > 0 {
			spatial = &stac.SpatialExtent{Bbox: boxes}
		}
	}

	interval := make([]any, 2)
	if rec.TimeStart != "" {
		interval[0] = rec.TimeStart
	}
	if rec.TimeEnd != "" {
		interval[1] = rec.TimeEnd
	}

	return &stac.Extent{
		Spatial:  spatial,
		Temporal: &stac.TemporalExtent{Interval: [][]any{interval}},
	}
}
