package translate

import (
	"encoding/json"
	"strings"
)

// SortDirection enumerates sort orders.
type SortDirection string

const (
	// SortAscending orders results ascending.
	SortAscending SortDirection = "asc"
	// SortDescending orders results descending.
	SortDescending SortDirection = "desc"
)

// SortSpec describes one sortby clause in canonical form.
type SortSpec struct {
	Field     string        `json:"field"`
	Direction SortDirection `json:"direction"`
}

// sortPropertyTable maps supported STAC sort properties to native sort
// keys. Properties may be addressed bare or under the properties prefix.
var sortPropertyTable = map[string]string{
	"id":             "entry_id",
	"title":          "entry_title",
	"datetime":       "start_date",
	"start_datetime": "start_date",
	"end_datetime":   "end_date",
	"eo:cloud_cover": "cloud_cover",
}

// UnmarshalJSON accepts both clause forms used by STAC clients: the object
// form {"field": ..., "direction": ...} and the compact string form
// "-property".
func (s *SortSpec) UnmarshalJSON(data []byte) error {
	var compact string
	if err := json.Unmarshal(data, &compact); err == nil {
		*s = parseCompactSort(compact)
		return nil
	}

	type specAlias SortSpec
	var aux specAlias
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*s = SortSpec(aux)
	if s.Direction == "" {
		s.Direction = SortAscending
	}
	return nil
}

func parseCompactSort(raw string) SortSpec {
	spec := SortSpec{Field: raw, Direction: SortAscending}
	switch {
	case strings.HasPrefix(raw, "-"):
		spec.Field = raw[1:]
		spec.Direction = SortDescending
	case strings.HasPrefix(raw, "+"):
		spec.Field = raw[1:]
	}
	return spec
}

// ParseSortParam parses the GET form of the sort extension: a
// comma-separated list of properties with an optional +/- prefix.
func ParseSortParam(raw string) []SortSpec {
	var specs []SortSpec
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		specs = append(specs, parseCompactSort(part))
	}
	return specs
}

// sortKeys translates canonical sort specs into native sort_key values. A
// property outside the supported set fails with InvalidSortPropertyError.
func sortKeys(specs []SortSpec) ([]string, error) {
	keys := make([]string, 0, len(specs))
	for _, spec := range specs {
		property := strings.TrimPrefix(spec.Field, "properties.")
		key, ok := sortPropertyTable[property]
		if !ok {
			return nil, &InvalidSortPropertyError{Property: spec.Field}
		}
		if spec.Direction == SortDescending {
			key = "-" + key
		}
		keys = append(keys, key)
	}
	return keys, nil
}
