package assemble

import (
	"fmt"

	"github.com/robert-malhotra/go-stac-bridge/catalog"
	"github.com/robert-malhotra/go-stac-bridge/paging"
	"github.com/robert-malhotra/go-stac-bridge/pkg/stac"
)

// Item assembles one STAC Item from a native granule record.
// collectionID is the STAC id of the granule's parent collection when the
// request scoped it; otherwise the native collection concept id stands in.
func Item(g catalog.GranuleRecord, collectionID string, site Site) *stac.Item {
	parent := fallback(collectionID, g.CollectionConceptID)
	geometry, bbox := granuleGeometry(g.Polygons, g.Boxes, g.Points)

	item := &stac.Item{
		Version:    stac.Version,
		Id:         g.ConceptID,
		Geometry:   geometry,
		Bbox:       bbox,
		Properties: granuleProperties(g),
		Assets:     granuleAssets(g.Links),
		Collection: parent,
		Links: []*stac.Link{
			{Rel: stac.RelSelf, Href: site.ItemHref(parent, g.ConceptID), Type: stac.GeoJSONType},
			stac.NewLink(stac.RelParent, site.CollectionHref(parent)),
			stac.NewLink(stac.RelCollection, site.CollectionHref(parent)),
			stac.NewLink(stac.RelRoot, site.RootHref),
		},
	}
	return item
}

// Items assembles a FeatureCollection page from a granule search result,
// attaching pagination links and context extension metadata.
func Items(result *catalog.GranuleResult, collectionID string, site Site, pc paging.Context) *stac.ItemCollection {
	features := make([]*stac.Item, 0, len(result.Granules))
	for _, g := range result.Granules {
		features = append(features, Item(g, collectionID, site))
	}
	return &stac.ItemCollection{
		Features: features,
		Links:    paging.BuildLinks(pc, len(features), site.RootHref),
		Context: &stac.Context{
			Returned: len(features),
			Limit:    pc.Limit,
			Matched:  result.Hits,
		},
	}
}

func granuleProperties(g catalog.GranuleRecord) map[string]any {
	props := map[string]any{
		// A missing start time still emits datetime: the member is
		// required and null is the STAC way to say "unknown".
		"datetime": nullable(g.TimeStart),
	}
	if g.TimeStart != "" {
		props["start_datetime"] = g.TimeStart
	}
	if g.TimeEnd != "" {
		props["end_datetime"] = g.TimeEnd
	}
	if g.CloudCover != nil {
		props["eo:cloud_cover"] = *g.CloudCover
	}
	if g.DayNightFlag != "" {
		props["cmr:day_night_flag"] = g.DayNightFlag
	}
	return props
}

func nullable(v string) any {
	if v == "" {
		return nil
	}
	return v
}

// granuleAssets maps native link roles onto STAC asset keys. Repeated
// roles get a numeric suffix: data, data1, data2...
func granuleAssets(links []catalog.Link) map[string]*stac.Asset {
	assets := make(map[string]*stac.Asset)
	counts := make(map[string]int)

	add := func(base string, link catalog.Link, roles ...string) {
		key := base
		if n := counts[base]; n > 0 {
			key = fmt.Sprintf("%s%d", base, n)
		}
		counts[base]++
		assets[key] = &stac.Asset{
			Href:  link.Href,
			Type:  link.Type,
			Title: link.Title,
			Roles: roles,
		}
	}

	for _, link := range links {
		switch link.Rel {
		case catalog.LinkRelData:
			add("data", link, "data")
		case catalog.LinkRelS3:
			add("s3", link, "data")
		case catalog.LinkRelBrowse:
			add("browse", link, "thumbnail")
		case catalog.LinkRelMetadata:
			add("metadata", link, "metadata")
		case catalog.LinkRelService:
			add("service", link, "service")
		}
	}
	return assets
}
