package assemble

import (
	"strconv"
	"strings"
)

// Native spatial strings are space-separated latitude/longitude sequences:
// boxes are "S W N E", polygon rings and points alternate "lat lon".

func parseFloats(raw string) []float64 {
	fields := strings.Fields(raw)
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil
		}
		out = append(out, v)
	}
	return out
}

// boxToBbox converts a native "S W N E" box to a STAC [w, s, e, n] bbox.
func boxToBbox(box string) []float64 {
	vals := parseFloats(box)
	if len(vals) != 4 {
		return nil
	}
	return []float64{vals[1], vals[0], vals[3], vals[2]}
}

// ringToPositions converts a native "lat lon lat lon ..." ring to GeoJSON
// [lon, lat] positions.
func ringToPositions(ring string) [][]float64 {
	vals := parseFloats(ring)
	if len(vals) < 2 || len(vals)%2 != 0 {
		return nil
	}
	positions := make([][]float64, 0, len(vals)/2)
	for i := 0; i < len(vals); i += 2 {
		positions = append(positions, []float64{vals[i+1], vals[i]})
	}
	return positions
}

// granuleGeometry derives GeoJSON geometry and a bbox from a granule's
// native spatial strings. Polygons win over boxes, boxes over points; a
// granule with no spatial data gets a null geometry.
func granuleGeometry(polygons [][]string, boxes, points []string) (any, []float64) {
	if len(polygons) > 0 && len(polygons[0]) > 0 {
		ring := ringToPositions(polygons[0][0])
		if ring != nil {
			return map[string]any{
				"type":        "Polygon",
				"coordinates": [][][]float64{ring},
			}, ringBbox(ring)
		}
	}

	if len(boxes) > 0 {
		if bbox := boxToBbox(boxes[0]); bbox != nil {
			w, s, e, n := bbox[0], bbox[1], bbox[2], bbox[3]
			ring := [][]float64{{w, s}, {e, s}, {e, n}, {w, n}, {w, s}}
			return map[string]any{
				"type":        "Polygon",
				"coordinates": [][][]float64{ring},
			}, bbox
		}
	}

	if len(points) > 0 {
		if vals := parseFloats(points[0]); len(vals) == 2 {
			lon, lat := vals[1], vals[0]
			return map[string]any{
				"type":        "Point",
				"coordinates": []float64{lon, lat},
			}, []float64{lon, lat, lon, lat}
		}
	}

	return nil, nil
}

func ringBbox(ring [][]float64) []float64 {
	if len(ring) == 0 {
		return nil
	}
	w, s := ring[0][0], ring[0][1]
	e, n := w, s
	for _, pos := range ring[1:] {
		if pos[0] < w {
			w = pos[0]
		}
		if pos[0] > e {
			e = pos[0]
		}
		if pos[1] < s {
			s = pos[1]
		}
		if pos[1] > n {
			n = pos[1]
		}
	}
	return []float64{w, s, e, n}
}
