package geom

import (
	"encoding/json"
	"fmt"
)

// geoJSONGeometry is the wire shape for coordinate-bearing kinds.
type geoJSONGeometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// geoJSONCollection is the wire shape for GeometryCollection.
type geoJSONCollection struct {
	Type       string            `json:"type"`
	Geometries []json.RawMessage `json:"geometries"`
}

// MarshalGeoJSON renders g as a GeoJSON geometry object.
//
// Position length follows the layout: XY emits two values, XYZ three and
// XYZM four. GeoJSON has no slot for a measure without elevation, so XYM
// positions emit two values and drop M.
func MarshalGeoJSON(g Geometry) ([]byte, error) {
	switch v := g.(type) {
	case Point:
		return marshalCoords("Point", position(v))
	case LineString:
		return marshalCoords("LineString", lineCoords(v))
	case Polygon:
		return marshalCoords("Polygon", polygonCoords(v))
	case MultiPoint:
		coords := make([][]float64, 0, len(v.Points))
		for _, p := range v.Points {
			coords = append(coords, position(p))
		}
		return marshalCoords("MultiPoint", coords)
	case MultiLineString:
		coords := make([][][]float64, 0, len(v.Lines))
		for _, l := range v.Lines {
			coords = append(coords, lineCoords(l))
		}
		return marshalCoords("MultiLineString", coords)
	case MultiPolygon:
		coords := make([][][][]float64, 0, len(v.Polygons))
		for _, p := range v.Polygons {
			coords = append(coords, polygonCoords(p))
		}
		return marshalCoords("MultiPolygon", coords)
	case GeometryCollection:
		geoms := make([]json.RawMessage, 0, len(v.Geoms))
		for i, child := range v.Geoms {
			data, err := MarshalGeoJSON(child)
			if err != nil {
				return nil, fmt.Errorf("collection element %d: %w", i, err)
			}
			geoms = append(geoms, data)
		}
		return json.Marshal(geoJSONCollection{Type: "GeometryCollection", Geometries: geoms})
	case nil:
		return nil, fmt.Errorf("cannot marshal nil geometry")
	default:
		return nil, fmt.Errorf("cannot marshal geometry kind %s", g.Kind())
	}
}

// UnmarshalGeoJSON parses a GeoJSON geometry object into the model.
//
// Positions of length 2, 3 and 4 map to XY, XYZ and XYZM. Within a
// LineString or Polygon the layout of the first position wins; later
// positions are coerced to it.
func UnmarshalGeoJSON(data []byte) (Geometry, error) {
	var raw struct {
		Type        string            `json:"type"`
		Coordinates json.RawMessage   `json:"coordinates"`
		Geometries  []json.RawMessage `json:"geometries"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse GeoJSON: %w", err)
	}

	switch raw.Type {
	case "Point":
		var pos []float64
		if err := json.Unmarshal(raw.Coordinates, &pos); err != nil {
			return nil, fmt.Errorf("Point coordinates: %w", err)
		}
		return parsePosition(pos)
	case "LineString":
		var coords [][]float64
		if err := json.Unmarshal(raw.Coordinates, &coords); err != nil {
			return nil, fmt.Errorf("LineString coordinates: %w", err)
		}
		return parseLine(coords)
	case "Polygon":
		var coords [][][]float64
		if err := json.Unmarshal(raw.Coordinates, &coords); err != nil {
			return nil, fmt.Errorf("Polygon coordinates: %w", err)
		}
		return parsePolygon(coords)
	case "MultiPoint":
		var coords [][]float64
		if err := json.Unmarshal(raw.Coordinates, &coords); err != nil {
			return nil, fmt.Errorf("MultiPoint coordinates: %w", err)
		}
		mp := MultiPoint{}
		for _, pos := range coords {
			p, err := parsePosition(pos)
			if err != nil {
				return nil, err
			}
			mp.Points = append(mp.Points, p)
		}
		if len(mp.Points) > 0 {
			mp.Layout = mp.Points[0].Layout
		}
		return mp, nil
	case "MultiLineString":
		var coords [][][]float64
		if err := json.Unmarshal(raw.Coordinates, &coords); err != nil {
			return nil, fmt.Errorf("MultiLineString coordinates: %w", err)
		}
		ml := MultiLineString{}
		for _, lc := range coords {
			l, err := parseLine(lc)
			if err != nil {
				return nil, err
			}
			ml.Lines = append(ml.Lines, l)
		}
		if len(ml.Lines) > 0 {
			ml.Layout = ml.Lines[0].Layout
		}
		return ml, nil
	case "MultiPolygon":
		var coords [][][][]float64
		if err := json.Unmarshal(raw.Coordinates, &coords); err != nil {
			return nil, fmt.Errorf("MultiPolygon coordinates: %w", err)
		}
		mp := MultiPolygon{}
		for _, pc := range coords {
			p, err := parsePolygon(pc)
			if err != nil {
				return nil, err
			}
			mp.Polygons = append(mp.Polygons, p)
		}
		if len(mp.Polygons) > 0 {
			mp.Layout = mp.Polygons[0].Layout
		}
		return mp, nil
	case "GeometryCollection":
		gc := GeometryCollection{}
		for i, data := range raw.Geometries {
			child, err := UnmarshalGeoJSON(data)
			if err != nil {
				return nil, fmt.Errorf("collection element %d: %w", i, err)
			}
			gc.Geoms = append(gc.Geoms, child)
		}
		if len(gc.Geoms) > 0 {
			gc.Layout = layoutOf(gc.Geoms[0])
		}
		return gc, nil
	default:
		return nil, fmt.Errorf("unsupported GeoJSON type %q", raw.Type)
	}
}

func marshalCoords(typ string, coords interface{}) ([]byte, error) {
	data, err := json.Marshal(coords)
	if err != nil {
		return nil, err
	}
	return json.Marshal(geoJSONGeometry{Type: typ, Coordinates: data})
}

func position(p Point) []float64 {
	pos := append(make([]float64, 0, p.Layout.Dim()), p.X, p.Y)
	if p.Layout.HasZ() {
		pos = append(pos, p.Z)
	}
	if p.Layout == XYZM {
		pos = append(pos, p.M)
	}
	return pos
}

func lineCoords(l LineString) [][]float64 {
	coords := make([][]float64, 0, len(l.Points))
	for _, p := range l.Points {
		coords = append(coords, position(p))
	}
	return coords
}

func polygonCoords(p Polygon) [][][]float64 {
	coords := make([][][]float64, 0, len(p.Rings))
	for _, r := range p.Rings {
		coords = append(coords, lineCoords(r))
	}
	return coords
}

func parsePosition(pos []float64) (Point, error) {
	p := Point{}
	switch len(pos) {
	case 2:
		p.Layout = XY
	case 3:
		p.Layout = XYZ
		p.Z = pos[2]
	case 4:
		p.Layout = XYZM
		p.Z, p.M = pos[2], pos[3]
	default:
		return Point{}, fmt.Errorf("position has %d values, want 2-4", len(pos))
	}
	p.X, p.Y = pos[0], pos[1]
	return p, nil
}

func parseLine(coords [][]float64) (LineString, error) {
	// empty containers stay nil, matching the WKB decoder
	l := LineString{}
	for _, pos := range coords {
		p, err := parsePosition(pos)
		if err != nil {
			return LineString{}, err
		}
		l.Points = append(l.Points, p)
	}
	if len(l.Points) > 0 {
		l.Layout = l.Points[0].Layout
		for i := range l.Points {
			l.Points[i].Layout = l.Layout
		}
	}
	return l, nil
}

func parsePolygon(coords [][][]float64) (Polygon, error) {
	p := Polygon{}
	for _, rc := range coords {
		r, err := parseLine(rc)
		if err != nil {
			return Polygon{}, err
		}
		p.Rings = append(p.Rings, r)
	}
	if len(p.Rings) > 0 {
		p.Layout = p.Rings[0].Layout
		for i := range p.Rings {
			p.Rings[i].Layout = p.Layout
			for j := range p.Rings[i].Points {
				p.Rings[i].Points[j].Layout = p.Layout
			}
		}
	}
	return p, nil
}

// layoutOf returns the layout a geometry declares for itself.
func layoutOf(g Geometry) Layout {
	switch v := g.(type) {
	case Point:
		return v.Layout
	case LineString:
		return v.Layout
	case Polygon:
		return v.Layout
	case MultiPoint:
		return v.Layout
	case MultiLineString:
		return v.Layout
	case MultiPolygon:
		return v.Layout
	case GeometryCollection:
		return v.Layout
	default:
		return XY
	}
}
