// Package translate maps the STAC query vocabulary onto the Catalog
// Service's native parameter vocabulary. Translation is a pure function of
// its inputs: the translator never issues network calls and never mutates
// the parameters it is given.
package translate

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/robert-malhotra/go-stac-bridge/catalog"
)

// SearchParams is the closed set of recognized STAC search parameters.
// Unrecognized parameters land in Extra and pass through to the native
// query verbatim; this is the documented escape hatch for extension
// parameters the translation table does not know about.
type SearchParams struct {
	BBox        []float64       `json:"bbox,omitempty"`
	Datetime    string          `json:"datetime,omitempty"`
	Collections []string        `json:"collections,omitempty"`
	IDs         []string        `json:"ids,omitempty"`
	Intersects  json.RawMessage `json:"intersects,omitempty"`
	Limit       int             `json:"limit,omitempty"`
	Page        int             `json:"page,omitempty"`
	Fields      *FieldSelection `json:"fields,omitempty"`
	SortBy      []SortSpec      `json:"sortby,omitempty"`
	Extra       map[string]string `json:"-"`
}

// reserved names handled by the translation table; everything else in a
// GET query string or POST body is treated as an extension parameter.
var knownParams = map[string]bool{
	"bbox": true, "datetime": true, "collections": true, "ids": true,
	"intersects": true, "limit": true, "page": true, "fields": true,
	"sortby": true,
}

// UnmarshalJSON decodes a POST search body, routing members the
// translation table does not recognize into Extra so the escape hatch
// behaves the same for both request forms.
func (p *SearchParams) UnmarshalJSON(data []byte) error {
	type alias SearchParams
	if err := json.Unmarshal(data, (*alias)(p)); err != nil {
		return err
	}

	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return err
	}
	for key, raw := range members {
		if knownParams[key] {
			continue
		}
		if p.Extra == nil {
			p.Extra = make(map[string]string)
		}
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			s = string(raw)
		}
		p.Extra[key] = s
	}
	return nil
}

// ParseSearchParams decodes STAC search parameters from a GET query
// string.
func ParseSearchParams(values url.Values) (SearchParams, error) {
	var p SearchParams

	if raw := values.Get("bbox"); raw != "" {
		bbox, err := parseBBox(raw)
		if err != nil {
			return p, err
		}
		p.BBox = bbox
	}
	p.Datetime = values.Get("datetime")
	if raw := values.Get("collections"); raw != "" {
		p.Collections = splitList(raw)
	}
	if raw := values.Get("ids"); raw != "" {
		p.IDs = splitList(raw)
	}
	if raw := values.Get("intersects"); raw != "" {
		p.Intersects = json.RawMessage(raw)
	}
	if raw := values.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return p, translationErrorf("limit", "must be a non-negative integer, got %q", raw)
		}
		p.Limit = limit
	}
	if raw := values.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return p, translationErrorf("page", "must be a positive integer, got %q", raw)
		}
		p.Page = page
	}
	p.Fields = ParseFieldsParam(values.Get("fields"))
	for _, raw := range values["sortby"] {
		p.SortBy = append(p.SortBy, ParseSortParam(raw)...)
	}

	for key := range values {
		if knownParams[key] {
			continue
		}
		if p.Extra == nil {
			p.Extra = make(map[string]string)
		}
		p.Extra[key] = values.Get(key)
	}
	return p, nil
}

// Translate converts STAC search parameters into a native query for the
// given provider. pathCollection is the STAC collection id scoped by the
// request path, already resolved to a native concept id by the caller; an
// explicit collections parameter combined with it is a client error.
func Translate(provider string, p SearchParams, pathCollectionConceptID string) (catalog.Query, error) {
	if pathCollectionConceptID != "" && len(p.Collections) > 0 {
		return catalog.Query{}, ErrConflictingCollections
	}

	q := catalog.NewQuery()
	q.Set("provider", provider)

	if pathCollectionConceptID != "" {
		q.Add("collection_concept_id", pathCollectionConceptID)
	}
	for _, id := range p.Collections {
		q.Add("collection_concept_id", id)
	}
	for _, id := range p.IDs {
		q.Add("concept_id", id)
	}

	if len(p.BBox) > 0 {
		boundingBox, err := bboxToNative(p.BBox)
		if err != nil {
			return catalog.Query{}, err
		}
		q.Set("bounding_box", boundingBox)
	}

	if p.Datetime != "" {
		temporal, err := datetimeToTemporal(p.Datetime)
		if err != nil {
			return catalog.Query{}, err
		}
		q.Set("temporal", temporal)
	}

	if len(p.Intersects) > 0 {
		key, value, err := intersectsToNative(p.Intersects)
		if err != nil {
			return catalog.Query{}, err
		}
		q.Set(key, value)
	}

	if p.Limit > 0 {
		q.SetInt("page_size", p.Limit)
	}
	if p.Page > 0 {
		q.SetInt("page_num", p.Page)
	}

	if len(p.SortBy) > 0 {
		keys, err := sortKeys(p.SortBy)
		if err != nil {
			return catalog.Query{}, err
		}
		for _, key := range keys {
			q.Add("sort_key", key)
		}
	}

	for _, key := range sortedKeys(p.Extra) {
		q.Set(key, p.Extra[key])
	}
	return q, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseBBox(raw string) ([]float64, error) {
	parts := strings.Split(raw, ",")
	bbox := make([]float64, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, translationErrorf("bbox", "has non-numeric coordinate %q", part)
		}
		bbox = append(bbox, v)
	}
	return bbox, nil
}

// bboxToNative renders a 4- or 6-coordinate STAC bbox as the native
// west,south,east,north bounding box, dropping any elevation values.
func bboxToNative(bbox []float64) (string, error) {
	var w, s, e, n float64
	switch len(bbox) {
	case 4:
		w, s, e, n = bbox[0], bbox[1], bbox[2], bbox[3]
	case 6:
		w, s, e, n = bbox[0], bbox[1], bbox[3], bbox[4]
	default:
		return "", translationErrorf("bbox", "must contain 4 or 6 coordinates, got %d", len(bbox))
	}
	return fmt.Sprintf("%s,%s,%s,%s", formatCoord(w), formatCoord(s), formatCoord(e), formatCoord(n)), nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// datetimeToTemporal converts a STAC datetime (instant or slash-separated
// range with ".." open ends) to the native comma-separated temporal range.
func datetimeToTemporal(raw string) (string, error) {
	parts := strings.Split(raw, "/")
	switch len(parts) {
	case 1:
		if _, err := time.Parse(time.RFC3339, parts[0]); err != nil {
			return "", translationErrorf("datetime", "has malformed instant %q", parts[0])
		}
		return parts[0] + "," + parts[0], nil
	case 2:
		start, end := parts[0], parts[1]
		if start == ".." && end == ".." {
			return "", translationErrorf("datetime", "cannot be open at both ends")
		}
		for i, bound := range []string{start, end} {
			if bound == ".." {
				continue
			}
			if _, err := time.Parse(time.RFC3339, bound); err != nil {
				return "", translationErrorf("datetime", "has malformed bound %q", parts[i])
			}
		}
		if start == ".." {
			start = ""
		}
		if end == ".." {
			end = ""
		}
		return start + "," + end, nil
	default:
		return "", translationErrorf("datetime", "must be an instant or a start/end range, got %q", raw)
	}
}

// intersectsToNative converts a GeoJSON geometry to the matching native
// spatial parameter. Native coordinates are flat lon,lat sequences.
func intersectsToNative(raw json.RawMessage) (key, value string, err error) {
	var geom struct {
		Type        string          `json:"type"`
		Coordinates json.RawMessage `json:"coordinates"`
	}
	if err := json.Unmarshal(raw, &geom); err != nil {
		return "", "", translationErrorf("intersects", "is not a GeoJSON geometry: %v", err)
	}

	switch geom.Type {
	case "Point":
		var coords []float64
		if err := json.Unmarshal(geom.Coordinates, &coords); err != nil || len(coords) < 2 {
			return "", "", translationErrorf("intersects", "has malformed Point coordinates")
		}
		return "point", formatCoord(coords[0]) + "," + formatCoord(coords[1]), nil
	case "LineString":
		var coords [][]float64
		if err := json.Unmarshal(geom.Coordinates, &coords); err != nil || len(coords) < 2 {
			return "", "", translationErrorf("intersects", "has malformed LineString coordinates")
		}
		flat, err := flattenCoords(coords)
		if err != nil {
			return "", "", translationErrorf("intersects", "has malformed LineString coordinates")
		}
		return "line", flat, nil
	case "Polygon":
		var rings [][][]float64
		if err := json.Unmarshal(geom.Coordinates, &rings); err != nil || len(rings) == 0 || len(rings[0]) < 4 {
			return "", "", translationErrorf("intersects", "has malformed Polygon coordinates")
		}
		flat, err := flattenCoords(rings[0])
		if err != nil {
			return "", "", translationErrorf("intersects", "has malformed Polygon coordinates")
		}
		return "polygon", flat, nil
	default:
		return "", "", translationErrorf("intersects", "has unsupported geometry type %q", geom.Type)
	}
}

func flattenCoords(coords [][]float64) (string, error) {
	parts := make([]string, 0, len(coords)*2)
	for _, pos := range coords {
		if len(pos) < 2 {
			return "", fmt.Errorf("position has %d coordinates", len(pos))
		}
		parts = append(parts, formatCoord(pos[0]), formatCoord(pos[1]))
	}
	return strings.Join(parts, ","), nil
}

func sortedKeys(m map[string]string) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	// Extras are unordered by nature; sorting keeps the native query
	// deterministic.
	sort.Strings(keys)
	return keys
}
