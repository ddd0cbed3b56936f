package catalog

import (
	"context"
	"fmt"
)

const (
	// cloudPageSize is the fixed page size for cloud-holding discovery.
	cloudPageSize = 2000
	// cloudPageCap bounds the paging loop against an upstream that never
	// signals end-of-results. It is unreachable under expected data
	// volumes; hitting it is surfaced as ErrResolverExhausted.
	cloudPageCap = 9999
)

// ResolveCloudCollections discovers the collections tagged as hosted on
// cloud object storage for a provider, optionally scoped to a set of
// collection concept ids. Pages are fetched sequentially starting at page
// 1 and accumulated until a page returns fewer records than the page size.
//
// The returned ids follow upstream page order and contain no duplicates
// (each page is a disjoint slice by construction). Any page failure is
// fatal: a truncated cloud-collection set would silently under-filter
// subsequent searches.
func (c *Client) ResolveCloudCollections(ctx context.Context, provider string, conceptIDs []string) ([]string, error) {
	base := NewQuery()
	base.Set("provider", provider)
	base.Set("tag_key", c.cloudTag)
	for _, id := range conceptIDs {
		base.Add("collection_concept_id", id)
	}
	base.SetInt("page_size", cloudPageSize)

	var ids []string
	for page := 1; page <= cloudPageCap; page++ {
		query := base.Clone()
		query.SetInt("page_num", page)

		records, err := c.FindCollections(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("resolve cloud collections page %d: %w", page, err)
		}
		for _, rec := range records {
			ids = append(ids, rec.ConceptID)
		}
		if len(records) < cloudPageSize {
			return ids, nil
		}
	}
	return nil, ErrResolverExhausted
}
