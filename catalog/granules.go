package catalog

import (
	"context"
	"fmt"
)

type granulesResponse struct {
	Hits  int             `json:"hits"`
	Items []GranuleRecord `json:"items"`
}

// FindGranules executes a native granule search and returns one page of
// granule records plus the total hit count.
func (c *Client) FindGranules(ctx context.Context, query Query) (*GranuleResult, error) {
	var resp granulesResponse
	if err := c.getJSON(ctx, "/granules", query, &resp); err != nil {
		return nil, fmt.Errorf("find granules: %w", err)
	}
	return &GranuleResult{Granules: resp.Items, Hits: resp.Hits}, nil
}
