package translate

import (
	"encoding/json"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSearchParams(t *testing.T) {
	values := url.Values{
		"bbox":        {"-110,39.5,-105,40.5"},
		"datetime":    {"2020-01-01T00:00:00Z/2020-12-31T23:59:59Z"},
		"collections": {"C100-PROV,C200-PROV"},
		"ids":         {"G1-PROV"},
		"limit":       {"25"},
		"page":        {"3"},
		"fields":      {"id,-geometry"},
		"sortby":      {"-properties.datetime,id"},
		"cloud_cover": {"10,50"},
	}

	p, err := ParseSearchParams(values)
	require.NoError(t, err)

	assert.Equal(t, []float64{-110, 39.5, -105, 40.5}, p.BBox)
	assert.Equal(t, []string{"C100-PROV", "C200-PROV"}, p.Collections)
	assert.Equal(t, []string{"G1-PROV"}, p.IDs)
	assert.Equal(t, 25, p.Limit)
	assert.Equal(t, 3, p.Page)
	require.NotNil(t, p.Fields)
	assert.Equal(t, []string{"id"}, p.Fields.Include)
	assert.Equal(t, []string{"geometry"}, p.Fields.Exclude)
	require.Len(t, p.SortBy, 2)
	assert.Equal(t, SortSpec{Field: "properties.datetime", Direction: SortDescending}, p.SortBy[0])
	assert.Equal(t, SortSpec{Field: "id", Direction: SortAscending}, p.SortBy[1])
	assert.Equal(t, "10,50", p.Extra["cloud_cover"])
}

func TestSearchParamsUnmarshalJSON(t *testing.T) {
	body := []byte(`{
		"bbox": [-110, 39.5, -105, 40.5],
		"limit": 25,
		"cloud_cover": "10,50",
		"echo_granule": true
	}`)

	var p SearchParams
	require.NoError(t, json.Unmarshal(body, &p))

	assert.Equal(t, []float64{-110, 39.5, -105, 40.5}, p.BBox)
	assert.Equal(t, 25, p.Limit)
	assert.Equal(t, "10,50", p.Extra["cloud_cover"])
	assert.Equal(t, "true", p.Extra["echo_granule"])
}

func TestParseSearchParamsRejectsBadValues(t *testing.T) {
	for name, values := range map[string]url.Values{
		"non-numeric bbox": {"bbox": {"a,b,c,d"}},
		"negative limit":   {"limit": {"-1"}},
		"zero page":        {"page": {"0"}},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseSearchParams(values)
			var terr *TranslationError
			require.True(t, errors.As(err, &terr), "want TranslationError, got %v", err)
		})
	}
}

func TestTranslate(t *testing.T) {
	t.Run("core parameter mapping", func(t *testing.T) {
		p := SearchParams{
			BBox:        []float64{-110, 39.5, -105, 40.5},
			Datetime:    "2020-01-01T00:00:00Z/2020-12-31T23:59:59Z",
			Collections: []string{"C100-PROV", "C200-PROV"},
			IDs:         []string{"G1-PROV", "G2-PROV"},
			Limit:       25,
			Page:        3,
		}

		q, err := Translate("PROV", p, "")
		require.NoError(t, err)

		assert.Equal(t, "PROV", q.Get("provider"))
		assert.Equal(t, []string{"C100-PROV", "C200-PROV"}, q.GetAll("collection_concept_id"))
		assert.Equal(t, []string{"G1-PROV", "G2-PROV"}, q.GetAll("concept_id"))
		assert.Equal(t, "-110,39.5,-105,40.5", q.Get("bounding_box"))
		assert.Equal(t, "2020-01-01T00:00:00Z,2020-12-31T23:59:59Z", q.Get("temporal"))
		assert.Equal(t, "25", q.Get("page_size"))
		assert.Equal(t, "3", q.Get("page_num"))
	})

	t.Run("path collection scopes the query", func(t *testing.T) {
		q, err := Translate("PROV", SearchParams{}, "C100-PROV")
		require.NoError(t, err)
		assert.Equal(t, []string{"C100-PROV"}, q.GetAll("collection_concept_id"))
	})

	t.Run("conflicting collection scopes are rejected", func(t *testing.T) {
		p := SearchParams{Collections: []string{"C200-PROV"}}
		_, err := Translate("PROV", p, "C100-PROV")
		require.ErrorIs(t, err, ErrConflictingCollections)
	})

	t.Run("sortby maps to native sort keys", func(t *testing.T) {
		p := SearchParams{SortBy: []SortSpec{
			{Field: "properties.eo:cloud_cover", Direction: SortDescending},
			{Field: "id", Direction: SortAscending},
		}}

		q, err := Translate("PROV", p, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"-cloud_cover", "entry_id"}, q.GetAll("sort_key"))
	})

	t.Run("unknown sort property is a distinct error", func(t *testing.T) {
		p := SearchParams{SortBy: []SortSpec{{Field: "properties.nope", Direction: SortAscending}}}
		_, err := Translate("PROV", p, "")

		var serr *InvalidSortPropertyError
		require.True(t, errors.As(err, &serr))
		assert.Equal(t, "properties.nope", serr.Property)

		var terr *TranslationError
		assert.False(t, errors.As(err, &terr))
	})

	t.Run("extension parameters pass through", func(t *testing.T) {
		p := SearchParams{Extra: map[string]string{"cloud_cover": "10,50", "day_night_flag": "DAY"}}
		q, err := Translate("PROV", p, "")
		require.NoError(t, err)
		assert.Equal(t, "10,50", q.Get("cloud_cover"))
		assert.Equal(t, "DAY", q.Get("day_night_flag"))
	})
}

func TestDatetimeToTemporal(t *testing.T) {
	cases := map[string]struct {
		in   string
		want string
		ok   bool
	}{
		"closed range": {"2020-01-01T00:00:00Z/2020-06-01T00:00:00Z", "2020-01-01T00:00:00Z,2020-06-01T00:00:00Z", true},
		"open start":   {"../2020-06-01T00:00:00Z", ",2020-06-01T00:00:00Z", true},
		"open end":     {"2020-01-01T00:00:00Z/..", "2020-01-01T00:00:00Z,", true},
		"instant":      {"2020-01-01T00:00:00Z", "2020-01-01T00:00:00Z,2020-01-01T00:00:00Z", true},
		"both open":    {"../..", "", false},
		"not a date":   {"yesterday/today", "", false},
		"too many":     {"a/b/c", "", false},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := datetimeToTemporal(tc.in)
			if !tc.ok {
				var terr *TranslationError
				require.True(t, errors.As(err, &terr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestIntersectsToNative(t *testing.T) {
	t.Run("polygon uses the outer ring", func(t *testing.T) {
		geom := json.RawMessage(`{"type":"Polygon","coordinates":[[[10,0],[11,0],[11,1],[10,1],[10,0]]]}`)
		key, value, err := intersectsToNative(geom)
		require.NoError(t, err)
		assert.Equal(t, "polygon", key)
		assert.Equal(t, "10,0,11,0,11,1,10,1,10,0", value)
	})

	t.Run("point", func(t *testing.T) {
		key, value, err := intersectsToNative(json.RawMessage(`{"type":"Point","coordinates":[-105.5,40]}`))
		require.NoError(t, err)
		assert.Equal(t, "point", key)
		assert.Equal(t, "-105.5,40", value)
	})

	t.Run("unsupported geometry", func(t *testing.T) {
		_, _, err := intersectsToNative(json.RawMessage(`{"type":"MultiPolygon","coordinates":[]}`))
		var terr *TranslationError
		require.True(t, errors.As(err, &terr))
	})

	t.Run("short positions are rejected", func(t *testing.T) {
		for name, geom := range map[string]string{
			"line string": `{"type":"LineString","coordinates":[[0],[1]]}`,
			"polygon":     `{"type":"Polygon","coordinates":[[[10],[11],[11],[10]]]}`,
			"point":       `{"type":"Point","coordinates":[-105.5]}`,
		} {
			t.Run(name, func(t *testing.T) {
				_, _, err := intersectsToNative(json.RawMessage(geom))
				var terr *TranslationError
				require.True(t, errors.As(err, &terr), "want TranslationError, got %v", err)
			})
		}
	})
}

func TestBBoxToNative(t *testing.T) {
	got, err := bboxToNative([]float64{-110, 39.5, 100, -105, 40.5, 200})
	require.NoError(t, err)
	assert.Equal(t, "-110,39.5,-105,40.5", got, "elevation values are dropped")

	_, err = bboxToNative([]float64{1, 2, 3})
	require.Error(t, err)
}
