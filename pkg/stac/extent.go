package stac

// Extent represents the spatial and temporal extent of a STAC Collection.
type Extent struct {
	Spatial  *SpatialExtent  `json:"spatial,omitempty"`
	Temporal *TemporalExtent `json:"temporal,omitempty"`
}

// SpatialExtent represents the spatial extent of a STAC Collection.
type SpatialExtent struct {
	Bbox [][]float64 `json:"bbox"`
}

// TemporalExtent represents the temporal extent of a STAC Collection.
// Interval endpoints are RFC 3339 strings or nil for open ranges.
type TemporalExtent struct {
	Interval [][]any `json:"interval"`
}

// WholeEarth is the spatial extent used when a native record carries no
// bounding geometry.
func WholeEarth() *SpatialExtent {
	return &SpatialExtent{Bbox: [][]float64{{-180, -90, 180, 90}}}
}
