package stac

import "encoding/json"

// Version is the STAC specification version stamped on every document.
const Version = "1.0.0"

// Document type discriminators.
const (
	CatalogType           = "Catalog"
	CollectionType        = "Collection"
	FeatureType           = "Feature"
	FeatureCollectionType = "FeatureCollection"
)

// Common STAC API conformance class URIs advertised by the bridge.
var Conformance = []string{
	"https://api.stacspec.org/v1.0.0/core",
	"https://api.stacspec.org/v1.0.0/collections",
	"https://api.stacspec.org/v1.0.0/ogcapi-features",
	"https://api.stacspec.org/v1.0.0/item-search",
	"https://api.stacspec.org/v1.0.0/item-search#fields",
	"https://api.stacspec.org/v1.0.0/item-search#sort",
	"https://api.stacspec.org/v1.0.0/item-search#context",
	"http://www.opengis.net/spec/ogcapi-features-1/1.0/conf/core",
	"http://www.opengis.net/spec/ogcapi-features-1/1.0/conf/geojson",
}

// mergeExtras merges foreign members into the marshaled form of a document.
// When typeName is non-empty the "type" member is forced to it, so callers
// can leave the discriminator implicit on the struct.
func mergeExtras(data []byte, typeName string, extras map[string]any) ([]byte, error) {
	if typeName == "" && len(extras) == 0 {
		return data, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, err
	}

	if typeName != "" {
		encoded, err := json.Marshal(typeName)
		if err != nil {
			return nil, err
		}
		obj["type"] = encoded
	}

	for key, val := range extras {
		encoded, err := json.Marshal(val)
		if err != nil {
			return nil, err
		}
		obj[key] = encoded
	}

	return json.Marshal(obj)
}

// splitExtras decodes the members of data not listed in known into a
// foreign-member map. Members that fail to decode are skipped.
func splitExtras(data []byte, known map[string]bool) (map[string]any, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	extras := make(map[string]any)
	for key, val := range raw {
		if known[key] {
			continue
		}
		var decoded any
		if err := json.Unmarshal(val, &decoded); err != nil {
			continue
		}
		extras[key] = decoded
	}
	return extras, nil
}
