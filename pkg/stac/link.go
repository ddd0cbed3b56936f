package stac

// Link relation types used throughout the bridge.
const (
	RelSelf        = "self"
	RelRoot        = "root"
	RelParent      = "parent"
	RelChild       = "child"
	RelItem        = "item"
	RelItems       = "items"
	RelCollection  = "collection"
	RelPrev        = "prev"
	RelNext        = "next"
	RelSearch      = "search"
	RelConformance = "conformance"
	RelAbout       = "about"
	RelVia         = "via"
)

// Media types attached to generated links.
const (
	JSONType    = "application/json"
	GeoJSONType = "application/geo+json"
)

// Link represents a STAC Link object.
type Link struct {
	Href   string `json:"href"`
	Rel    string `json:"rel"`
	Type   string `json:"type,omitempty"`
	Title  string `json:"title,omitempty"`
	Method string `json:"method,omitempty"`
}

// NewLink constructs a link with the application/json media type.
func NewLink(rel, href string) *Link {
	return &Link{Rel: rel, Href: href, Type: JSONType}
}

// FindLink returns the first link with the given rel, or nil.
func FindLink(links []*Link, rel string) *Link {
	for _, link := range links {
		if link != nil && link.Rel == rel {
			return link
		}
	}
	return nil
}

// FilterLinks returns all links with the given rel, preserving order.
func FilterLinks(links []*Link, rel string) []*Link {
	var out []*Link
	for _, link := range links {
		if link != nil && link.Rel == rel {
			out = append(out, link)
		}
	}
	return out
}
