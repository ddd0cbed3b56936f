package catalog

// Native link relation URIs used by the Catalog Service. The fragment
// identifies the role of the linked resource.
const (
	LinkRelData     = "http://esipfed.org/ns/fedsearch/1.1/data#"
	LinkRelBrowse   = "http://esipfed.org/ns/fedsearch/1.1/browse#"
	LinkRelMetadata = "http://esipfed.org/ns/fedsearch/1.1/metadata#"
	LinkRelService  = "http://esipfed.org/ns/fedsearch/1.1/service#"
	LinkRelS3       = "http://esipfed.org/ns/fedsearch/1.1/s3#"
	LinkRelDoc      = "http://esipfed.org/ns/fedsearch/1.1/documentation#"
)

// Link is a native record link.
type Link struct {
	Rel   string `json:"rel"`
	Href  string `json:"href"`
	Type  string `json:"type,omitempty"`
	Title string `json:"title,omitempty"`
}

// CollectionRecord is a native collection record as returned by the
// Catalog Service collection search.
type CollectionRecord struct {
	ConceptID string   `json:"concept_id"`
	ShortName string   `json:"short_name"`
	Version   string   `json:"version_id"`
	Title     string   `json:"title"`
	Summary   string   `json:"summary"`
	TimeStart string   `json:"time_start,omitempty"`
	TimeEnd   string   `json:"time_end,omitempty"`
	Boxes     []string `json:"boxes,omitempty"`
	Links     []Link   `json:"links,omitempty"`
}

// GranuleRecord is a native granule record as returned by the Catalog
// Service granule search.
type GranuleRecord struct {
	ConceptID           string   `json:"concept_id"`
	Title               string   `json:"title"`
	CollectionConceptID string   `json:"collection_concept_id"`
	TimeStart           string   `json:"time_start,omitempty"`
	TimeEnd             string   `json:"time_end,omitempty"`
	Boxes               []string `json:"boxes,omitempty"`
	Polygons            [][]string `json:"polygons,omitempty"`
	Points              []string `json:"points,omitempty"`
	CloudCover          *float64 `json:"cloud_cover,omitempty"`
	DayNightFlag        string   `json:"day_night_flag,omitempty"`
	Links               []Link   `json:"links,omitempty"`
}

// ProviderRecord identifies a data provider hosted by the Catalog Service.
type ProviderRecord struct {
	ID    string `json:"provider_id"`
	Title string `json:"short_name,omitempty"`
}

// GranuleResult is one page of granule search results plus the total hit
// count reported by the service.
type GranuleResult struct {
	Granules []GranuleRecord
	Hits     int
}

// TemporalFacets lists the years, months, days, and granule ids available
// for a collection within an optional year/month/day scope. It drives the
// date-partitioned browse catalogs and is never persisted.
type TemporalFacets struct {
	Years   []string
	Months  []string
	Days    []string
	ItemIDs []string
}
