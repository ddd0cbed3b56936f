package translate

import "strings"

// FieldSelection is the canonical shape of the STAC fields extension: the
// attribute names a caller wants added to or removed from each assembled
// document. It is computed during translation and applied by the assembler
// as post-processing; it never reaches the native query.
type FieldSelection struct {
	Include []string `json:"include,omitempty"`
	Exclude []string `json:"exclude,omitempty"`
}

// IsZero reports whether no selection was requested.
func (f *FieldSelection) IsZero() bool {
	return f == nil || (len(f.Include) == 0 && len(f.Exclude) == 0)
}

// ParseFieldsParam parses the GET form of the fields extension: a
// comma-separated list where a "-" prefix excludes an attribute and an
// optional "+" prefix includes one.
func ParseFieldsParam(raw string) *FieldSelection {
	if raw == "" {
		return nil
	}
	sel := &FieldSelection{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		switch part[0] {
		case '-':
			sel.Exclude = append(sel.Exclude, part[1:])
		case '+':
			sel.Include = append(sel.Include, part[1:])
		default:
			sel.Include = append(sel.Include, part)
		}
	}
	return NormalizeFields(sel)
}

// NormalizeFields deduplicates the selection and drops names that appear
// in both sets: an attribute explicitly included wins over its exclusion.
func NormalizeFields(sel *FieldSelection) *FieldSelection {
	if sel.IsZero() {
		return nil
	}
	include := dedupe(sel.Include)
	included := make(map[string]bool, len(include))
	for _, name := range include {
		included[name] = true
	}

	var exclude []string
	for _, name := range dedupe(sel.Exclude) {
		if !included[name] {
			exclude = append(exclude, name)
		}
	}
	return &FieldSelection{Include: include, Exclude: exclude}
}

func dedupe(names []string) []string {
	var out []string
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}
