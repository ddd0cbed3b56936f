package catalog

import (
	"net/url"
	"strconv"
	"strings"
)

// Query is an ordered collection of native query parameters. Unlike
// url.Values it preserves insertion order across multi-valued keys
// (repeated concept ids, sort keys), which keeps native request
// construction deterministic.
//
// Query values are intended to be built fresh per request; derive variants
// with Clone rather than mutating a query shared between callers.
type Query struct {
	pairs []pair
}

type pair struct {
	key   string
	value string
}

// NewQuery returns an empty Query.
func NewQuery() Query {
	return Query{}
}

// Add appends a key/value pair, keeping any existing values for key.
func (q *Query) Add(key, value string) {
	q.pairs = append(q.pairs, pair{key: key, value: value})
}

// Set replaces all values for key with a single value. The replacement
// keeps the position of the first existing occurrence.
func (q *Query) Set(key, value string) {
	for i := range q.pairs {
		if q.pairs[i].key == key {
			q.pairs[i].value = value
			q.deleteAfter(key, i)
			return
		}
	}
	q.Add(key, value)
}

// SetInt is a convenience for integer-valued parameters.
func (q *Query) SetInt(key string, value int) {
	q.Set(key, strconv.Itoa(value))
}

// Get returns the first value for key, or "".
func (q *Query) Get(key string) string {
	for _, p := range q.pairs {
		if p.key == key {
			return p.value
		}
	}
	return ""
}

// GetAll returns all values for key in insertion order.
func (q *Query) GetAll(key string) []string {
	var out []string
	for _, p := range q.pairs {
		if p.key == key {
			out = append(out, p.value)
		}
	}
	return out
}

// Has reports whether key is present.
func (q *Query) Has(key string) bool {
	for _, p := range q.pairs {
		if p.key == key {
			return true
		}
	}
	return false
}

// Del removes all values for key.
func (q *Query) Del(key string) {
	kept := q.pairs[:0]
	for _, p := range q.pairs {
		if p.key != key {
			kept = append(kept, p)
		}
	}
	q.pairs = kept
}

// Len returns the number of key/value pairs.
func (q Query) Len() int {
	return len(q.pairs)
}

// Clone returns an independent copy of the query.
func (q Query) Clone() Query {
	cp := Query{pairs: make([]pair, len(q.pairs))}
	copy(cp.pairs, q.pairs)
	return cp
}

// Encode serializes the query in insertion order. url.Values.Encode sorts
// keys alphabetically, so it is not used here.
func (q Query) Encode() string {
	var b strings.Builder
	for i, p := range q.pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.value))
	}
	return b.String()
}

// deleteAfter removes later occurrences of key following index from.
func (q *Query) deleteAfter(key string, from int) {
	kept := q.pairs[:from+1]
	for _, p := range q.pairs[from+1:] {
		if p.key != key {
			kept = append(kept, p)
		}
	}
	q.pairs = kept
}
