package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryOrdering(t *testing.T) {
	q := NewQuery()
	q.Set("provider", "PROV")
	q.Add("collection_concept_id", "C1-PROV")
	q.Add("collection_concept_id", "C2-PROV")
	q.Add("collection_concept_id", "C3-PROV")
	q.SetInt("page_size", 10)

	assert.Equal(t,
		"provider=PROV&collection_concept_id=C1-PROV&collection_concept_id=C2-PROV&collection_concept_id=C3-PROV&page_size=10",
		q.Encode())
	assert.Equal(t, []string{"C1-PROV", "C2-PROV", "C3-PROV"}, q.GetAll("collection_concept_id"))
}

func TestQuerySetReplacesAllValues(t *testing.T) {
	q := NewQuery()
	q.Add("sort_key", "short_name")
	q.Add("sort_key", "-start_date")
	q.Set("sort_key", "entry_title")

	require.Equal(t, []string{"entry_title"}, q.GetAll("sort_key"))
}

func TestQuerySetKeepsPosition(t *testing.T) {
	q := NewQuery()
	q.Set("a", "1")
	q.Set("b", "2")
	q.Set("a", "3")

	assert.Equal(t, "a=3&b=2", q.Encode())
}

func TestQueryCloneIsIndependent(t *testing.T) {
	q := NewQuery()
	q.Set("provider", "PROV")

	cp := q.Clone()
	cp.Set("provider", "OTHER")
	cp.Add("page_num", "2")

	assert.Equal(t, "PROV", q.Get("provider"))
	assert.False(t, q.Has("page_num"))
	assert.Equal(t, "OTHER", cp.Get("provider"))
}

func TestQueryDel(t *testing.T) {
	q := NewQuery()
	q.Add("concept_id", "G1")
	q.Set("page_size", "5")
	q.Add("concept_id", "G2")
	q.Del("concept_id")

	assert.False(t, q.Has("concept_id"))
	assert.Equal(t, "page_size=5", q.Encode())
}

func TestQueryEncodeEscapes(t *testing.T) {
	q := NewQuery()
	q.Set("temporal", "2020-01-01T00:00:00Z,2020-12-31T23:59:59Z")

	assert.Equal(t, "temporal=2020-01-01T00%3A00%3A00Z%2C2020-12-31T23%3A59%3A59Z", q.Encode())
}
