package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/robert-malhotra/go-stac-bridge/assemble"
	"github.com/robert-malhotra/go-stac-bridge/browse"
	"github.com/robert-malhotra/go-stac-bridge/catalog"
	"github.com/robert-malhotra/go-stac-bridge/paging"
	"github.com/robert-malhotra/go-stac-bridge/pkg/stac"
	"github.com/robert-malhotra/go-stac-bridge/translate"
)

func (h *Handler) site(c *gin.Context, mode string) assemble.Site {
	return assemble.Site{RootHref: h.rootHref(mode), Provider: c.Param("provider")}
}

// Root serves the entry catalog of one route tree: a child link per
// upstream provider plus the conformance declaration.
func (h *Handler) Root(mode string) gin.HandlerFunc {
	title := "Geospatial metadata holdings"
	if mode == ModeCloud {
		title = "Cloud-hosted geospatial metadata holdings"
	}

	return func(c *gin.Context) {
		providers, err := h.cat.FindProviders(c.Request.Context())
		if err != nil {
			h.abortWithError(c, err)
			return
		}

		root := h.rootHref(mode)
		doc := &stac.Catalog{
			Version:     stac.Version,
			ID:          mode,
			Title:       title,
			Description: "Searchable STAC proxy over the upstream catalog service, organized by provider.",
			ConformsTo:  stac.Conformance,
			Links: []*stac.Link{
				stac.NewLink(stac.RelSelf, root),
				stac.NewLink(stac.RelRoot, root),
				stac.NewLink(stac.RelConformance, root+"/conformance"),
			},
		}
		for _, p := range providers {
			doc.AddLink(stac.RelChild, root+"/"+p.ID, p.Title)
		}
		c.JSON(http.StatusOK, doc)
	}
}

// Conformance serves the conformance class list on its own endpoint.
func (h *Handler) Conformance(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"conformsTo": stac.Conformance})
}

// Provider serves a provider-level catalog with navigation and search
// links. Unknown providers are a not-found outcome.
func (h *Handler) Provider(mode string) gin.HandlerFunc {
	return func(c *gin.Context) {
		provider := c.Param("provider")

		record, err := h.findProvider(c.Request.Context(), provider)
		if err != nil {
			h.abortWithError(c, err)
			return
		}

		site := h.site(c, mode)
		doc := &stac.Catalog{
			Version:     stac.Version,
			ID:          provider,
			Title:       fallbackStr(record.Title, provider),
			Description: fmt.Sprintf("Holdings of provider %s.", provider),
			Links: []*stac.Link{
				stac.NewLink(stac.RelSelf, site.ProviderHref()),
				stac.NewLink(stac.RelRoot, site.RootHref),
				stac.NewLink(stac.RelParent, site.RootHref),
				stac.NewLink(stac.RelChild, site.CollectionsHref()),
				{Rel: stac.RelSearch, Href: site.SearchHref(), Type: stac.GeoJSONType, Method: http.MethodGet},
				{Rel: stac.RelSearch, Href: site.SearchHref(), Type: stac.GeoJSONType, Method: http.MethodPost},
			},
		}
		c.JSON(http.StatusOK, doc)
	}
}

func (h *Handler) findProvider(ctx context.Context, id string) (*catalog.ProviderRecord, error) {
	providers, err := h.cat.FindProviders(ctx)
	if err != nil {
		return nil, err
	}
	for i := range providers {
		if providers[i].ID == id {
			return &providers[i], nil
		}
	}
	return nil, fmt.Errorf("provider %s: %w", id, catalog.ErrNotFound)
}

// Collections serves the paged collection list of a provider. The cloud
// tree narrows the list to cloud-tagged collections.
func (h *Handler) Collections(mode string) gin.HandlerFunc {
	return func(c *gin.Context) {
		site := h.site(c, mode)
		pc := paging.FromQuery(c.Request.URL.Query(), site.CollectionsHref(), h.defaultLimit, h.maxLimit)

		q := catalog.NewQuery()
		q.Set("provider", site.Provider)
		if mode == ModeCloud {
			q.Set("tag_key", h.cat.CloudTag())
		}
		q.SetInt("page_size", pc.Limit)
		q.SetInt("page_num", pc.Page)

		records, err := h.cat.FindCollections(c.Request.Context(), q)
		if err != nil {
			h.abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, assemble.CollectionList(records, site, pc))
	}
}

// GetCollection serves one collection document. Zero native records for
// the addressed id is a not-found outcome, not an empty document.
func (h *Handler) GetCollection(mode string) gin.HandlerFunc {
	return func(c *gin.Context) {
		site := h.site(c, mode)
		collectionID := c.Param("collectionId")

		q, err := catalog.CollectionToNativeParams(site.Provider, collectionID)
		if err != nil {
			h.abortWithError(c, err)
			return
		}
		if mode == ModeCloud {
			q.Set("tag_key", h.cat.CloudTag())
		}
		records, err := h.cat.FindCollections(c.Request.Context(), q)
		if err != nil {
			h.abortWithError(c, err)
			return
		}
		if len(records) == 0 {
			h.abortWithError(c, fmt.Errorf("collection %s/%s: %w", site.Provider, collectionID, catalog.ErrNotFound))
			return
		}
		c.JSON(http.StatusOK, assemble.Collection(records[0], site))
	}
}

// Items serves the item listing of one collection, honoring the full
// search parameter vocabulary.
func (h *Handler) Items(mode string) gin.HandlerFunc {
	return func(c *gin.Context) {
		site := h.site(c, mode)
		collectionID := c.Param("collectionId")

		params, err := translate.ParseSearchParams(c.Request.URL.Query())
		if err != nil {
			h.abortWithError(c, err)
			return
		}
		if len(params.Collections) > 0 {
			h.abortWithError(c, translate.ErrConflictingCollections)
			return
		}

		conceptID, err := h.cat.StacIDToConceptID(c.Request.Context(), site.Provider, collectionID)
		if err != nil {
			h.abortWithError(c, err)
			return
		}

		pc := paging.FromQuery(c.Request.URL.Query(), site.ItemsHref(collectionID), h.defaultLimit, h.maxLimit)
		params.Limit, params.Page = pc.Limit, pc.Page

		result, err := h.searchGranules(c.Request.Context(), mode, site.Provider, params, conceptID)
		if err != nil {
			h.abortWithError(c, err)
			return
		}
		h.writeItems(c, assemble.Items(result, collectionID, site, pc), params.Fields)
	}
}

// GetItem serves one item document. The item is addressed directly by
// concept id, so the cloud resolver is not consulted.
func (h *Handler) GetItem(mode string) gin.HandlerFunc {
	return func(c *gin.Context) {
		site := h.site(c, mode)
		collectionID := c.Param("collectionId")
		itemID := c.Param("itemId")

		conceptID, err := h.cat.StacIDToConceptID(c.Request.Context(), site.Provider, collectionID)
		if err != nil {
			h.abortWithError(c, err)
			return
		}

		q := catalog.NewQuery()
		q.Set("provider", site.Provider)
		q.Add("collection_concept_id", conceptID)
		q.Add("concept_id", itemID)

		result, err := h.cat.FindGranules(c.Request.Context(), q)
		if err != nil {
			h.abortWithError(c, err)
			return
		}
		if len(result.Granules) == 0 {
			h.abortWithError(c, fmt.Errorf("item %s in %s/%s: %w", itemID, site.Provider, collectionID, catalog.ErrNotFound))
			return
		}

		item := assemble.Item(result.Granules[0], collectionID, site)
		sel := translate.ParseFieldsParam(c.Query("fields"))
		if sel.IsZero() {
			c.JSON(http.StatusOK, item)
			return
		}
		obj, err := assemble.ApplyFields(item, translate.NormalizeFields(sel))
		if err != nil {
			h.abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, obj)
	}
}

// Search serves provider-wide item search for both the GET and POST
// forms.
func (h *Handler) Search(mode string) gin.HandlerFunc {
	return func(c *gin.Context) {
		site := h.site(c, mode)

		var params translate.SearchParams
		var err error
		if c.Request.Method == http.MethodPost {
			if err := c.ShouldBindJSON(&params); err != nil {
				h.abortWithError(c, &translate.TranslationError{Param: "body", Reason: err.Error()})
				return
			}
		} else {
			params, err = translate.ParseSearchParams(c.Request.URL.Query())
			if err != nil {
				h.abortWithError(c, err)
				return
			}
		}

		pc := h.searchPageContext(c, site, params)
		params.Limit, params.Page = pc.Limit, pc.Page

		result, err := h.searchGranules(c.Request.Context(), mode, site.Provider, params, "")
		if err != nil {
			h.abortWithError(c, err)
			return
		}
		h.writeItems(c, assemble.Items(result, "", site, pc), params.Fields)
	}
}

// searchPageContext derives the paging context for a search request. GET
// requests carry paging in the query string; POST requests carry it in
// the body, so the context is rebuilt from the parsed parameters.
func (h *Handler) searchPageContext(c *gin.Context, site assemble.Site, params translate.SearchParams) paging.Context {
	if c.Request.Method == http.MethodGet {
		return paging.FromQuery(c.Request.URL.Query(), site.SearchHref(), h.defaultLimit, h.maxLimit)
	}
	pc := paging.Context{Page: 1, Limit: h.defaultLimit, BasePath: site.SearchHref()}
	if params.Page > 0 {
		pc.Page = params.Page
	}
	if params.Limit > 0 {
		pc.Limit = params.Limit
	}
	if pc.Limit > h.maxLimit {
		pc.Limit = h.maxLimit
	}
	return pc
}

// searchGranules runs a granule search, scoping it through the
// cloud-holding resolver on the cloud tree first. An empty resolved set
// without a caller-requested scope means "no additional restriction"; an
// empty set against a requested scope means the scoped intersection is
// empty and the upstream search is skipped entirely.
func (h *Handler) searchGranules(ctx context.Context, mode, provider string, params translate.SearchParams, pathConceptID string) (*catalog.GranuleResult, error) {
	if mode == ModeCloud {
		scope := params.Collections
		if pathConceptID != "" {
			scope = []string{pathConceptID}
		}
		resolved, err := h.cat.ResolveCloudCollections(ctx, provider, scope)
		if err != nil {
			return nil, err
		}
		if len(scope) > 0 && len(resolved) == 0 {
			return &catalog.GranuleResult{}, nil
		}
		if pathConceptID == "" {
			params.Collections = resolved
		}
	}

	q, err := translate.Translate(provider, params, pathConceptID)
	if err != nil {
		return nil, err
	}
	return h.cat.FindGranules(ctx, q)
}

func (h *Handler) writeItems(c *gin.Context, doc *stac.ItemCollection, sel *translate.FieldSelection) {
	if sel.IsZero() {
		c.JSON(http.StatusOK, doc)
		return
	}
	obj, err := assemble.ApplyItemsFields(doc, translate.NormalizeFields(sel))
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, obj)
}

// Browse serves one node of the date-partitioned browse hierarchy.
func (h *Handler) Browse(mode string) gin.HandlerFunc {
	return func(c *gin.Context) {
		site := h.site(c, mode)
		collectionID := c.Param("collectionId")

		segs := make([]string, 0, 3)
		for _, name := range []string{"year", "month", "day"} {
			if seg := c.Param(name); seg != "" {
				if _, err := strconv.Atoi(seg); err != nil {
					h.abortWithError(c, &translate.TranslationError{Param: name, Reason: fmt.Sprintf("must be numeric, got %q", seg)})
					return
				}
				segs = append(segs, seg)
			}
		}

		conceptID, err := h.cat.StacIDToConceptID(c.Request.Context(), site.Provider, collectionID)
		if err != nil {
			h.abortWithError(c, err)
			return
		}

		q := catalog.NewQuery()
		q.Set("provider", site.Provider)
		q.Add("collection_concept_id", conceptID)

		facets, err := h.cat.GetGranuleTemporalFacets(c.Request.Context(), q,
			c.Param("year"), c.Param("month"), c.Param("day"))
		if err != nil {
			h.abortWithError(c, err)
			return
		}

		builder := &browse.Builder{RootHref: h.rootHref(mode)}
		node, err := builder.Build(site.Provider, collectionID, segs, facets)
		if err != nil {
			h.abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, node)
	}
}

// Health reports process liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func fallbackStr(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
