// Package paging derives per-request page context from transport metadata
// and constructs the self/root/prev/next links attached to paginated
// documents.
package paging

import (
	"net/url"
	"strconv"

	"github.com/robert-malhotra/go-stac-bridge/pkg/stac"
)

// Context captures the paging state of one request: current page number,
// page size, and the href the page links are derived from. It is computed
// once per request and never modified afterwards.
type Context struct {
	Page     int
	Limit    int
	BasePath string

	// query holds the request's non-paging parameters so page links
	// reproduce the effective query.
	query url.Values
}

// FromQuery derives a Context from a request's query string and base path.
// Out-of-range page and limit values fall back to their defaults; limit is
// clamped to maxLimit.
func FromQuery(values url.Values, basePath string, defaultLimit, maxLimit int) Context {
	pc := Context{Page: 1, Limit: defaultLimit, BasePath: basePath}

	if raw := values.Get("page"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil && page >= 1 {
			pc.Page = page
		}
	}
	if raw := values.Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit >= 0 {
			pc.Limit = limit
		}
	}
	if maxLimit > 0 && pc.Limit > maxLimit {
		pc.Limit = maxLimit
	}

	pc.query = make(url.Values, len(values))
	for key, vals := range values {
		if key == "page" {
			continue
		}
		pc.query[key] = append([]string(nil), vals...)
	}
	return pc
}

// HrefForPage renders the context's base path addressed to the given page.
// Page 1 stays unnumbered so the canonical first-page href is stable.
func (pc Context) HrefForPage(page int) string {
	query := make(url.Values, len(pc.query)+1)
	for key, vals := range pc.query {
		query[key] = vals
	}
	if page > 1 {
		query.Set("page", strconv.Itoa(page))
	}
	if encoded := query.Encode(); encoded != "" {
		return pc.BasePath + "?" + encoded
	}
	return pc.BasePath
}

// BuildLinks constructs the pagination links for a page holding
// resultCount records.
//
// prev appears only past page 1 with a non-empty page, so a deep request
// into empty territory does not advertise prior content. next appears
// exactly when the page is full: fewer results than requested means last
// page. When the total hit count is an exact multiple of the page size
// this advertises one trailing empty page - an inherent imprecision of
// cursor-less pagination that callers depend on, deliberately kept.
func BuildLinks(pc Context, resultCount int, rootHref string) []*stac.Link {
	links := []*stac.Link{
		stac.NewLink(stac.RelSelf, pc.HrefForPage(pc.Page)),
		stac.NewLink(stac.RelRoot, rootHref),
	}
	if pc.Page > 1 && resultCount > 0 {
		links = append(links, stac.NewLink(stac.RelPrev, pc.HrefForPage(pc.Page-1)))
	}
	if pc.Limit > 0 && resultCount == pc.Limit {
		links = append(links, stac.NewLink(stac.RelNext, pc.HrefForPage(pc.Page+1)))
	}
	return links
}
