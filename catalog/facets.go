package catalog

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

// facetNode is one node of the v2 facet tree returned alongside granule
// search results.
type facetNode struct {
	Title    string      `json:"title"`
	Count    int         `json:"count,omitempty"`
	Children []facetNode `json:"children,omitempty"`
}

type facetedGranulesResponse struct {
	Hits   int             `json:"hits"`
	Items  []GranuleRecord `json:"items"`
	Facets *facetNode      `json:"facets,omitempty"`
}

// GetGranuleTemporalFacets fetches the temporal facet breakdown for a
// granule query, optionally narrowed to a year, month, or day. At day
// scope the granule ids of the page are collected so the browse catalog
// can emit item links; broader scopes request facets only.
func (c *Client) GetGranuleTemporalFacets(ctx context.Context, query Query, year, month, day string) (*TemporalFacets, error) {
	q := query.Clone()
	q.Set("include_facets", "v2")

	if year != "" {
		start, end, err := temporalRange(year, month, day)
		if err != nil {
			return nil, err
		}
		q.Set("temporal", start+","+end)
	}
	if day == "" {
		q.SetInt("page_size", 0)
	}

	var resp facetedGranulesResponse
	if err := c.getJSON(ctx, "/granules", q, &resp); err != nil {
		return nil, fmt.Errorf("granule temporal facets: %w", err)
	}

	facets := &TemporalFacets{}
	yearGroup := findFacetPath(resp.Facets, "Temporal", "Year")
	facets.Years = childTitles(yearGroup)

	monthGroup := findFacetPath(yearGroup, year, "Month")
	facets.Months = childTitles(monthGroup)

	dayGroup := findFacetPath(monthGroup, month, "Day")
	facets.Days = childTitles(dayGroup)

	if day != "" {
		for _, g := range resp.Items {
			facets.ItemIDs = append(facets.ItemIDs, g.ConceptID)
		}
	}
	return facets, nil
}

// temporalRange returns the inclusive RFC 3339 range covering the given
// year, year/month, or year/month/day.
func temporalRange(year, month, day string) (string, string, error) {
	y, err := strconv.Atoi(year)
	if err != nil {
		return "", "", fmt.Errorf("catalog: invalid year %q", year)
	}
	m, d := 1, 1
	if month != "" {
		if m, err = strconv.Atoi(month); err != nil || m < 1 || m > 12 {
			return "", "", fmt.Errorf("catalog: invalid month %q", month)
		}
	}
	if day != "" {
		if d, err = strconv.Atoi(day); err != nil || d < 1 || d > 31 {
			return "", "", fmt.Errorf("catalog: invalid day %q", day)
		}
	}

	start := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	var end time.Time
	switch {
	case day != "":
		end = start.AddDate(0, 0, 1)
	case month != "":
		end = start.AddDate(0, 1, 0)
	default:
		end = start.AddDate(1, 0, 0)
	}
	end = end.Add(-time.Second)
	return start.Format(time.RFC3339), end.Format(time.RFC3339), nil
}

// findFacetPath descends from node through the children titled by each
// step. Empty steps are skipped; a missing step yields nil.
func findFacetPath(node *facetNode, steps ...string) *facetNode {
	current := node
	for _, step := range steps {
		if current == nil {
			return nil
		}
		if step == "" {
			continue
		}
		var next *facetNode
		for i := range current.Children {
			if current.Children[i].Title == step {
				next = &current.Children[i]
				break
			}
		}
		current = next
	}
	return current
}

func childTitles(node *facetNode) []string {
	if node == nil {
		return nil
	}
	titles := make([]string, 0, len(node.Children))
	for _, child := range node.Children {
		titles = append(titles, child.Title)
	}
	return titles
}
