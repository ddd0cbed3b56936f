package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/robert-malhotra/go-stac-bridge/api"
	"github.com/robert-malhotra/go-stac-bridge/catalog"
)

// upstream is a stub Catalog Service. Handlers are keyed by endpoint
// path; unset endpoints answer 404.
type upstream struct {
	providers   http.HandlerFunc
	collections http.HandlerFunc
	granules    http.HandlerFunc

	granuleCalls atomic.Int32
}

func (u *upstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/providers":
		if u.providers != nil {
			u.providers(w, r)
			return
		}
	case "/collections":
		if u.collections != nil {
			u.collections(w, r)
			return
		}
	case "/granules":
		u.granuleCalls.Add(1)
		if u.granules != nil {
			u.granules(w, r)
			return
		}
	}
	http.NotFound(w, r)
}

func newBridge(t *testing.T, up *upstream) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	server := httptest.NewServer(up)
	t.Cleanup(server.Close)

	cat, err := catalog.New(
		catalog.WithBaseURL(server.URL),
		catalog.WithHTTPClient(server.Client()),
		catalog.WithRetryPolicy(nil),
	)
	require.NoError(t, err)

	h := api.NewHandler(cat, zap.NewNop(), api.NewMetrics(prometheus.NewRegistry()),
		"https://bridge.example.com", 10, 100)
	return api.NewRouter(h, zap.NewNop(), true)
}

func get(t *testing.T, router *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(rec, req)
	return rec
}

func post(t *testing.T, router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var obj map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &obj))
	return obj
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func providersHandler(ids ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		list := make([]any, 0, len(ids))
		for _, id := range ids {
			list = append(list, map[string]any{"provider_id": id, "short_name": id + " provider"})
		}
		writeJSON(w, map[string]any{"providers": list})
	}
}

func collectionItem(conceptID, shortName, version string) map[string]any {
	return map[string]any{
		"concept_id": conceptID,
		"short_name": shortName,
		"version_id": version,
		"title":      shortName + " dataset",
	}
}

func granuleItem(conceptID, collectionConceptID string) map[string]any {
	return map[string]any{
		"concept_id":            conceptID,
		"collection_concept_id": collectionConceptID,
		"title":                 conceptID,
		"time_start":            "2020-01-01T00:00:00Z",
		"time_end":              "2020-01-01T01:00:00Z",
		"boxes":                 []string{"39 -110 40 -105"},
	}
}

func linksOf(t *testing.T, obj map[string]any) []map[string]any {
	t.Helper()
	raw, ok := obj["links"].([]any)
	require.True(t, ok, "document has no links array")
	links := make([]map[string]any, 0, len(raw))
	for _, l := range raw {
		links = append(links, l.(map[string]any))
	}
	return links
}

func hrefsByRel(t *testing.T, obj map[string]any, rel string) []string {
	t.Helper()
	var hrefs []string
	for _, link := range linksOf(t, obj) {
		if link["rel"] == rel {
			hrefs = append(hrefs, link["href"].(string))
		}
	}
	return hrefs
}

func TestRootCatalog(t *testing.T) {
	router := newBridge(t, &upstream{providers: providersHandler("PROV", "OTHER")})

	rec := get(t, router, "/stac")
	require.Equal(t, http.StatusOK, rec.Code)

	obj := decode(t, rec)
	assert.Equal(t, "Catalog", obj["type"])
	assert.Equal(t, "stac", obj["id"])
	assert.NotEmpty(t, obj["conformsTo"])

	children := hrefsByRel(t, obj, "child")
	assert.Contains(t, children, "https://bridge.example.com/stac/PROV")
	assert.Contains(t, children, "https://bridge.example.com/stac/OTHER")
}

func TestConformance(t *testing.T) {
	router := newBridge(t, &upstream{})

	rec := get(t, router, "/stac/conformance")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, decode(t, rec)["conformsTo"])
}

func TestProviderCatalog(t *testing.T) {
	router := newBridge(t, &upstream{providers: providersHandler("PROV")})

	t.Run("known provider", func(t *testing.T) {
		rec := get(t, router, "/stac/PROV")
		require.Equal(t, http.StatusOK, rec.Code)

		obj := decode(t, rec)
		assert.Equal(t, "PROV", obj["id"])
		assert.Contains(t, hrefsByRel(t, obj, "child"),
			"https://bridge.example.com/stac/PROV/collections")
		assert.Len(t, hrefsByRel(t, obj, "search"), 2)
	})

	t.Run("unknown provider", func(t *testing.T) {
		rec := get(t, router, "/stac/NOPE")
		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.NotEmpty(t, decode(t, rec)["errors"])
	})
}

func TestGetCollection(t *testing.T) {
	up := &upstream{
		collections: func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("short_name") == "MOD09GA" {
				writeJSON(w, map[string]any{"hits": 1, "items": []any{
					collectionItem("C100-PROV", "MOD09GA", "061"),
				}})
				return
			}
			writeJSON(w, map[string]any{"hits": 0, "items": []any{}})
		},
	}
	router := newBridge(t, up)

	t.Run("found", func(t *testing.T) {
		rec := get(t, router, "/stac/PROV/collections/MOD09GA.v061")
		require.Equal(t, http.StatusOK, rec.Code)

		obj := decode(t, rec)
		assert.Equal(t, "Collection", obj["type"])
		assert.Equal(t, "MOD09GA.v061", obj["id"])
	})

	t.Run("zero records is not found", func(t *testing.T) {
		rec := get(t, router, "/stac/PROV/collections/ABSENT.v001")
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed id is not found", func(t *testing.T) {
		rec := get(t, router, "/stac/PROV/collections/garbage")
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestCollectionsList(t *testing.T) {
	up := &upstream{
		collections: func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "PROV", r.URL.Query().Get("provider"))
			assert.Equal(t, "2", r.URL.Query().Get("page_size"))
			writeJSON(w, map[string]any{"hits": 5, "items": []any{
				collectionItem("C100-PROV", "MOD09GA", "061"),
				collectionItem("C101-PROV", "MOD10A1", "061"),
			}})
		},
	}
	router := newBridge(t, up)

	rec := get(t, router, "/stac/PROV/collections?limit=2")
	require.Equal(t, http.StatusOK, rec.Code)

	obj := decode(t, rec)
	assert.Len(t, obj["collections"], 2)
	require.Len(t, hrefsByRel(t, obj, "next"), 1, "full page advertises next")
}

func TestItems(t *testing.T) {
	up := &upstream{
		collections: func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, map[string]any{"hits": 1, "items": []any{
				collectionItem("C100-PROV", "MOD09GA", "061"),
			}})
		},
		granules: func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "C100-PROV", r.URL.Query().Get("collection_concept_id"))
			writeJSON(w, map[string]any{"hits": 7, "items": []any{
				granuleItem("G1-PROV", "C100-PROV"),
			}})
		},
	}
	router := newBridge(t, up)

	rec := get(t, router, "/stac/PROV/collections/MOD09GA.v061/items")
	require.Equal(t, http.StatusOK, rec.Code)

	obj := decode(t, rec)
	assert.Equal(t, "FeatureCollection", obj["type"])
	assert.Len(t, obj["features"], 1)

	ctx := obj["context"].(map[string]any)
	assert.Equal(t, float64(1), ctx["returned"])
	assert.Equal(t, float64(7), ctx["matched"])
}

func TestItemsCollectionsConflict(t *testing.T) {
	router := newBridge(t, &upstream{})

	rec := get(t, router, "/stac/PROV/collections/MOD09GA.v061/items?collections=C200-PROV")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetItem(t *testing.T) {
	up := &upstream{
		collections: func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, map[string]any{"hits": 1, "items": []any{
				collectionItem("C100-PROV", "MOD09GA", "061"),
			}})
		},
		granules: func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("concept_id") == "G1-PROV" {
				writeJSON(w, map[string]any{"hits": 1, "items": []any{
					granuleItem("G1-PROV", "C100-PROV"),
				}})
				return
			}
			writeJSON(w, map[string]any{"hits": 0, "items": []any{}})
		},
	}
	router := newBridge(t, up)

	t.Run("found", func(t *testing.T) {
		rec := get(t, router, "/stac/PROV/collections/MOD09GA.v061/items/G1-PROV")
		require.Equal(t, http.StatusOK, rec.Code)

		obj := decode(t, rec)
		assert.Equal(t, "Feature", obj["type"])
		assert.Equal(t, "G1-PROV", obj["id"])
		assert.Equal(t, "MOD09GA.v061", obj["collection"])
	})

	t.Run("zero records is not found", func(t *testing.T) {
		rec := get(t, router, "/stac/PROV/collections/MOD09GA.v061/items/G9-PROV")
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("field exclusion drops assets but keeps id", func(t *testing.T) {
		rec := get(t, router, "/stac/PROV/collections/MOD09GA.v061/items/G1-PROV?fields=-assets,-id")
		require.Equal(t, http.StatusOK, rec.Code)

		obj := decode(t, rec)
		assert.NotContains(t, obj, "assets")
		assert.Equal(t, "G1-PROV", obj["id"])
	})
}

func TestSearchGet(t *testing.T) {
	up := &upstream{
		granules: func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "PROV", r.URL.Query().Get("provider"))
			assert.Equal(t, "-110,39,-105,40", r.URL.Query().Get("bounding_box"))
			writeJSON(w, map[string]any{"hits": 1, "items": []any{
				granuleItem("G1-PROV", "C100-PROV"),
			}})
		},
	}
	router := newBridge(t, up)

	rec := get(t, router, "/stac/PROV/search?bbox=-110,39,-105,40")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["features"], 1)
}

func TestSearchPost(t *testing.T) {
	up := &upstream{
		granules: func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, []string{"C100-PROV", "C200-PROV"},
				r.URL.Query()["collection_concept_id"])
			assert.Equal(t, "2020-01-01T00:00:00Z,", r.URL.Query().Get("temporal"))
			assert.Equal(t, "10,50", r.URL.Query().Get("cloud_cover"),
				"extension parameters pass through from the body")
			writeJSON(w, map[string]any{"hits": 0, "items": []any{}})
		},
	}
	router := newBridge(t, up)

	rec := post(t, router, "/stac/PROV/search",
		`{"collections": ["C100-PROV", "C200-PROV"], "datetime": "2020-01-01T00:00:00Z/..", "cloud_cover": "10,50"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode(t, rec)["features"])
}

func TestSearchErrorStatuses(t *testing.T) {
	router := newBridge(t, &upstream{})

	t.Run("malformed datetime is a bad request", func(t *testing.T) {
		rec := get(t, router, "/stac/PROV/search?datetime=notatime")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown sort property is unprocessable", func(t *testing.T) {
		rec := get(t, router, "/stac/PROV/search?sortby=bogus_property")
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("malformed body is a bad request", func(t *testing.T) {
		rec := post(t, router, "/stac/PROV/search", "{not json")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUpstreamFailureIsBadGateway(t *testing.T) {
	up := &upstream{
		granules: func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			writeJSON(w, map[string]any{"errors": []string{"upstream exploded"}})
		},
	}
	router := newBridge(t, up)

	rec := get(t, router, "/stac/PROV/search")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestCloudSearchScoping(t *testing.T) {
	up := &upstream{
		collections: func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "org.geo.cloud-hosted", r.URL.Query().Get("tag_key"))
			writeJSON(w, map[string]any{"hits": 2, "items": []any{
				collectionItem("C100-PROV", "MOD09GA", "061"),
				collectionItem("C101-PROV", "MOD10A1", "061"),
			}})
		},
		granules: func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, []string{"C100-PROV", "C101-PROV"},
				r.URL.Query()["collection_concept_id"])
			writeJSON(w, map[string]any{"hits": 0, "items": []any{}})
		},
	}
	router := newBridge(t, up)

	rec := get(t, router, "/cloudstac/PROV/search")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int32(1), up.granuleCalls.Load())
}

func TestCloudSearchEmptyScopedIntersection(t *testing.T) {
	up := &upstream{
		collections: func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, map[string]any{"hits": 0, "items": []any{}})
		},
	}
	router := newBridge(t, up)

	rec := post(t, router, "/cloudstac/PROV/search", `{"collections": ["C999-PROV"]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	obj := decode(t, rec)
	assert.Empty(t, obj["features"])
	assert.Equal(t, int32(0), up.granuleCalls.Load(),
		"an empty scoped intersection skips the upstream search")
}

func TestCloudSearchEmptyUnscopedSetStillSearches(t *testing.T) {
	up := &upstream{
		collections: func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, map[string]any{"hits": 0, "items": []any{}})
		},
		granules: func(w http.ResponseWriter, r *http.Request) {
			assert.Empty(t, r.URL.Query()["collection_concept_id"],
				"empty resolved set means no additional restriction")
			writeJSON(w, map[string]any{"hits": 0, "items": []any{}})
		},
	}
	router := newBridge(t, up)

	rec := get(t, router, "/cloudstac/PROV/search")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int32(1), up.granuleCalls.Load())
}

func TestCloudCollectionsFiltered(t *testing.T) {
	up := &upstream{
		collections: func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "org.geo.cloud-hosted", r.URL.Query().Get("tag_key"))
			writeJSON(w, map[string]any{"hits": 1, "items": []any{
				collectionItem("C100-PROV", "MOD09GA", "061"),
			}})
		},
	}
	router := newBridge(t, up)

	rec := get(t, router, "/cloudstac/PROV/collections")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["collections"], 1)
}

func TestCloudGetCollectionFiltered(t *testing.T) {
	up := &upstream{
		collections: func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("tag_key") != "org.geo.cloud-hosted" {
				writeJSON(w, map[string]any{"hits": 1, "items": []any{
					collectionItem("C100-PROV", "MOD09GA", "061"),
				}})
				return
			}
			writeJSON(w, map[string]any{"hits": 0, "items": []any{}})
		},
	}
	router := newBridge(t, up)

	t.Run("non-cloud collection stays visible on the default tree", func(t *testing.T) {
		rec := get(t, router, "/stac/PROV/collections/MOD09GA.v061")
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("non-cloud collection is not found on the cloud tree", func(t *testing.T) {
		rec := get(t, router, "/cloudstac/PROV/collections/MOD09GA.v061")
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestBrowseYearNode(t *testing.T) {
	up := &upstream{
		collections: func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, map[string]any{"hits": 1, "items": []any{
				collectionItem("C100-PROV", "MOD09GA", "061"),
			}})
		},
		granules: func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "v2", r.URL.Query().Get("include_facets"))
			writeJSON(w, map[string]any{
				"hits":  0,
				"items": []any{},
				"facets": map[string]any{
					"title": "Browse Granules",
					"children": []any{map[string]any{
						"title": "Temporal",
						"children": []any{map[string]any{
							"title": "Year",
							"children": []any{map[string]any{
								"title": "2020",
								"children": []any{map[string]any{
									"title": "Month",
									"children": []any{
										map[string]any{"title": "01"},
										map[string]any{"title": "02"},
									},
								}},
							}},
						}},
					}},
				},
			})
		},
	}
	router := newBridge(t, up)

	rec := get(t, router, "/stac/PROV/collections/MOD09GA.v061/browse/2020")
	require.Equal(t, http.StatusOK, rec.Code)

	obj := decode(t, rec)
	children := hrefsByRel(t, obj, "child")
	require.Len(t, children, 2)
	assert.Contains(t, children,
		"https://bridge.example.com/stac/PROV/collections/MOD09GA.v061/browse/2020/01")
	assert.Empty(t, hrefsByRel(t, obj, "item"))
	assert.Len(t, hrefsByRel(t, obj, "self"), 1)
	assert.Len(t, hrefsByRel(t, obj, "root"), 1)
}

func TestBrowseRejectsNonNumericSegment(t *testing.T) {
	router := newBridge(t, &upstream{})

	rec := get(t, router, "/stac/PROV/collections/MOD09GA.v061/browse/twentytwenty")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealth(t *testing.T) {
	router := newBridge(t, &upstream{})

	rec := get(t, router, "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode(t, rec)["status"])
}
