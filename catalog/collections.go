package catalog

import (
	"context"
	"fmt"
	"strings"
)

// CollectionID formats the STAC collection id for a native
// short-name/version pair.
func CollectionID(shortName, version string) string {
	return fmt.Sprintf("%s.v%s", shortName, version)
}

// ParseCollectionID splits a STAC collection id into its native short-name
// and version. The version suffix is introduced by the last ".v" separator
// so short names may themselves contain dots.
func ParseCollectionID(id string) (shortName, version string, err error) {
	sep := strings.LastIndex(id, ".v")
	if sep <= 0 || sep+2 >= len(id) {
		return "", "", fmt.Errorf("catalog: malformed collection id %q: %w", id, ErrNotFound)
	}
	return id[:sep], id[sep+2:], nil
}

type collectionsResponse struct {
	Hits  int                `json:"hits"`
	Items []CollectionRecord `json:"items"`
}

// FindCollections executes a native collection search.
func (c *Client) FindCollections(ctx context.Context, query Query) ([]CollectionRecord, error) {
	var resp collectionsResponse
	if err := c.getJSON(ctx, "/collections", query, &resp); err != nil {
		return nil, fmt.Errorf("find collections: %w", err)
	}
	return resp.Items, nil
}

// CollectionToNativeParams converts a provider and STAC collection id into
// the native short-name/version query fragment. It performs no network
// calls.
func CollectionToNativeParams(provider, stacID string) (Query, error) {
	shortName, version, err := ParseCollectionID(stacID)
	if err != nil {
		return Query{}, err
	}
	q := NewQuery()
	q.Set("provider", provider)
	q.Set("short_name", shortName)
	q.Set("version", version)
	return q, nil
}

// StacIDToConceptID resolves a STAC collection id to the native collection
// concept id. A collection absent for the provider yields ErrNotFound.
func (c *Client) StacIDToConceptID(ctx context.Context, provider, stacID string) (string, error) {
	query, err := CollectionToNativeParams(provider, stacID)
	if err != nil {
		return "", err
	}
	query.SetInt("page_size", 1)

	records, err := c.FindCollections(ctx, query)
	if err != nil {
		return "", err
	}
	if len(records) == 0 {
		return "", fmt.Errorf("collection %s/%s: %w", provider, stacID, ErrNotFound)
	}
	return records[0].ConceptID, nil
}

type providersResponse struct {
	Providers []ProviderRecord `json:"providers"`
}

// FindProviders lists the data providers hosted by the Catalog Service.
func (c *Client) FindProviders(ctx context.Context) ([]ProviderRecord, error) {
	var resp providersResponse
	if err := c.getJSON(ctx, "/providers", NewQuery(), &resp); err != nil {
		return nil, fmt.Errorf("find providers: %w", err)
	}
	return resp.Providers, nil
}
