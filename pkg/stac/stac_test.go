package stac

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemMarshal(t *testing.T) {
	t.Run("type discriminator is implicit", func(t *testing.T) {
		item := Item{
			Version:    Version,
			Id:         "G1234-PROV",
			Geometry:   nil,
			Properties: map[string]any{"datetime": "2023-01-01T00:00:00Z"},
			Links:      []*Link{},
			Assets:     map[string]*Asset{},
		}

		data, err := json.Marshal(item)
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, "Feature", decoded["type"])
		assert.Equal(t, "G1234-PROV", decoded["id"])
	})

	t.Run("foreign members are merged", func(t *testing.T) {
		item := Item{
			Version:    Version,
			Id:         "G1234-PROV",
			Properties: map[string]any{},
			Links:      []*Link{},
			Assets:     map[string]*Asset{},
			AdditionalFields: map[string]any{
				"native:concept_id": "G1234-PROV",
				"native:revision":   3,
			},
		}

		data, err := json.Marshal(item)
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, "G1234-PROV", decoded["native:concept_id"])
		assert.Equal(t, float64(3), decoded["native:revision"])
	})

	t.Run("round-trip preserves foreign members", func(t *testing.T) {
		original := `{
			"type": "Feature",
			"stac_version": "1.0.0",
			"id": "item-1",
			"geometry": null,
			"properties": {},
			"links": [],
			"assets": {},
			"foreign_member": {"nested": "value"}
		}`

		var item Item
		require.NoError(t, json.Unmarshal([]byte(original), &item))
		require.Contains(t, item.AdditionalFields, "foreign_member")

		output, err := json.Marshal(item)
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(output, &decoded))
		assert.Equal(t, map[string]any{"nested": "value"}, decoded["foreign_member"])
	})
}

func TestCatalogMarshal(t *testing.T) {
	t.Run("type is always Catalog", func(t *testing.T) {
		cat := Catalog{Version: Version, ID: "root", Description: "Root catalog"}
		cat.AddLink(RelSelf, "https://example.com/stac", "")
		cat.AddLink(RelRoot, "https://example.com/stac", "")

		data, err := json.Marshal(cat)
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, "Catalog", decoded["type"])
	})

	t.Run("unmarshal rejects wrong type", func(t *testing.T) {
		var cat Catalog
		err := json.Unmarshal([]byte(`{"type": "Feature", "id": "x", "description": "y", "links": []}`), &cat)
		require.Error(t, err)
	})

	t.Run("link lookup", func(t *testing.T) {
		cat := Catalog{Version: Version, ID: "c"}
		cat.AddLink(RelSelf, "https://example.com/self", "")
		cat.AddLink(RelChild, "https://example.com/2001", "2001")
		cat.AddLink(RelChild, "https://example.com/2002", "2002")

		require.NotNil(t, cat.GetLink(RelSelf))
		assert.Len(t, cat.GetLinks(RelChild), 2)
		assert.Nil(t, cat.GetLink(RelItem))
	})
}

func TestItemCollectionMarshal(t *testing.T) {
	ic := ItemCollection{
		Features: []*Item{},
		Context:  &Context{Returned: 0, Limit: 10, Matched: 0},
	}

	data, err := json.Marshal(ic)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "FeatureCollection", decoded["type"])

	features, ok := decoded["features"].([]any)
	require.True(t, ok)
	assert.Empty(t, features)
}
