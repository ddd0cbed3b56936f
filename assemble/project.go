package assemble

import (
	"encoding/json"
	"strings"

	"github.com/robert-malhotra/go-stac-bridge/translate"
)

// requiredMembers can never be projected away: the documents must stay
// structurally valid STAC regardless of what the caller excludes.
var requiredMembers = map[string]bool{
	"id":           true,
	"type":         true,
	"stac_version": true,
	"links":        true,
}

// ApplyFields applies the fields extension to a single assembled document,
// returning its projected map form. Attribute names address top-level
// members or dotted paths into nested objects ("properties.datetime").
// A nil selection returns the document unchanged.
func ApplyFields(doc any, sel *translate.FieldSelection) (map[string]any, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, err
	}
	if sel.IsZero() {
		return obj, nil
	}

	if len(sel.Include) > 0 {
		kept := make(map[string]any, len(sel.Include)+len(requiredMembers))
		for member := range requiredMembers {
			if v, ok := obj[member]; ok {
				kept[member] = v
			}
		}
		for _, path := range sel.Include {
			copyPath(obj, kept, strings.Split(path, "."))
		}
		obj = kept
	}

	for _, path := range sel.Exclude {
		parts := strings.Split(path, ".")
		if len(parts) == 1 && requiredMembers[parts[0]] {
			continue
		}
		deletePath(obj, parts)
	}
	return obj, nil
}

// ApplyItemsFields projects every feature of a marshaled FeatureCollection
// document.
func ApplyItemsFields(doc any, sel *translate.FieldSelection) (map[string]any, error) {
	obj, err := ApplyFieldsNone(doc)
	if err != nil {
		return nil, err
	}
	if sel.IsZero() {
		return obj, nil
	}

	features, ok := obj["features"].([]any)
	if !ok {
		return obj, nil
	}
	projected := make([]any, 0, len(features))
	for _, feature := range features {
		p, err := ApplyFields(feature, sel)
		if err != nil {
			return nil, err
		}
		projected = append(projected, p)
	}
	obj["features"] = projected
	return obj, nil
}

// ApplyFieldsNone converts a document to its map form without projection.
func ApplyFieldsNone(doc any) (map[string]any, error) {
	return ApplyFields(doc, nil)
}

func copyPath(src, dst map[string]any, parts []string) {
	key := parts[0]
	val, ok := src[key]
	if !ok {
		return
	}
	if len(parts) == 1 {
		dst[key] = val
		return
	}
	srcChild, ok := val.(map[string]any)
	if !ok {
		return
	}
	dstChild, ok := dst[key].(map[string]any)
	if !ok {
		dstChild = make(map[string]any)
		dst[key] = dstChild
	}
	copyPath(srcChild, dstChild, parts[1:])
}

func deletePath(obj map[string]any, parts []string) {
	key := parts[0]
	if len(parts) == 1 {
		delete(obj, key)
		return
	}
	child, ok := obj[key].(map[string]any)
	if !ok {
		return
	}
	deletePath(child, parts[1:])
}
