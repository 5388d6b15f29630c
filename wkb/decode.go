// Package wkb implements the little-endian Well-Known Binary codec for the
// geometry model in package geom.
//
// Each geometry on the wire starts with a 5-byte header: byte order, kind
// code, Z flag, M flag and SRID flag. Points inside line strings and rings
// are bare coordinate tuples sharing the header's layout, while elements of
// multi-geometries and collections are fully framed sub-geometries with
// headers of their own. An SRID, when flagged, is read and discarded; the
// encoder never emits one.
package wkb

import (
	"fmt"

	"github.com/woozymasta/wkb/geom"
)

const (
	// ndr is the little-endian byte order tag. XDR (0) is unsupported.
	ndr byte = 1

	headerSize = 5
	sridSize   = 4
	countSize  = 4
	doubleSize = 8
)

// Decode parses one geometry from data. It fails fast on the first framing
// error and never returns a partial tree. Trailing bytes after the root
// geometry are ignored.
func Decode(data []byte) (geom.Geometry, error) {
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}
	r := &reader{buf: data}
	return decodeGeometry(r)
}

// DecodeHex unpacks a hex string (case-insensitive, no separators) and
// decodes the resulting bytes.
func DecodeHex(s string) (geom.Geometry, error) {
	data, err := decodeHexString(s)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// header is the per-geometry context resolved from the 5-byte wire header.
// It is passed down explicitly, so nested geometries can carry layouts that
// differ from their parent.
type header struct {
	kind   geom.Kind
	layout geom.Layout
}

func decodeHeader(r *reader) (header, error) {
	order, err := r.readByte()
	if err != nil {
		return header{}, err
	}
	if order != ndr {
		return header{}, fmt.Errorf("%w: order byte %d, only NDR (1) is supported", ErrByteOrder, order)
	}

	kind, err := r.readByte()
	if err != nil {
		return header{}, err
	}
	zFlag, err := r.readByte()
	if err != nil {
		return header{}, err
	}
	mFlag, err := r.readByte()
	if err != nil {
		return header{}, err
	}
	sridFlag, err := r.readByte()
	if err != nil {
		return header{}, err
	}

	h := header{
		kind:   geom.Kind(kind),
		layout: geom.LayoutFor(zFlag != 0, mFlag != 0),
	}

	switch {
	case h.kind.Supported():
	case h.kind.Reserved():
		return header{}, fmt.Errorf("%w: %s (%d)", ErrUnsupportedKind, h.kind, kind)
	default:
		return header{}, fmt.Errorf("%w: code %d", ErrUnknownKind, kind)
	}

	// SRID value is skipped, never stored or validated
	if sridFlag != 0 {
		if err := r.skip(sridSize); err != nil {
			return header{}, err
		}
	}

	return h, nil
}

func decodeGeometry(r *reader) (geom.Geometry, error) {
	h, err := decodeHeader(r)
	if err != nil {
		return nil, err
	}

	switch h.kind {
	case geom.KindPoint:
		return decodePoint(r, h.layout)
	case geom.KindLineString:
		return decodeLineString(r, h.layout)
	case geom.KindPolygon:
		return decodePolygon(r, h.layout)
	case geom.KindMultiPoint:
		return decodeMultiPoint(r, h.layout)
	case geom.KindMultiLineString:
		return decodeMultiLineString(r, h.layout)
	case geom.KindMultiPolygon:
		return decodeMultiPolygon(r, h.layout)
	default:
		return decodeCollection(r, h.layout)
	}
}

// decodeCount reads a 4-byte element count and rejects counts whose minimal
// encoding cannot fit in the remaining buffer, before any allocation.
func decodeCount(r *reader, minElemSize int) (int, error) {
	n, err := r.readUint32()
	if err != nil {
		return 0, err
	}
	if int64(n)*int64(minElemSize) > int64(r.remaining()) {
		return 0, fmt.Errorf("%w: declared count %d exceeds %d remaining bytes", ErrTruncated, n, r.remaining())
	}
	return int(n), nil
}

// decodePoint reads a bare coordinate tuple. When only M is flagged the
// third double is the measure, not an elevation.
func decodePoint(r *reader, layout geom.Layout) (geom.Point, error) {
	p := geom.Point{Layout: layout}
	var err error
	if p.X, err = r.readFloat64(); err != nil {
		return geom.Point{}, err
	}
	if p.Y, err = r.readFloat64(); err != nil {
		return geom.Point{}, err
	}
	if layout.HasZ() {
		if p.Z, err = r.readFloat64(); err != nil {
			return geom.Point{}, err
		}
	}
	if layout.HasM() {
		if p.M, err = r.readFloat64(); err != nil {
			return geom.Point{}, err
		}
	}
	return p, nil
}

// decodeLineString reads a counted sequence of bare points at the layout
// already resolved for this geometry. A count of zero consumes no further
// bytes.
func decodeLineString(r *reader, layout geom.Layout) (geom.LineString, error) {
	n, err := decodeCount(r, layout.Dim()*doubleSize)
	if err != nil {
		return geom.LineString{}, err
	}

	l := geom.LineString{Layout: layout}
	if n == 0 {
		return l, nil
	}

	l.Points = make([]geom.Point, 0, n)
	for i := 0; i < n; i++ {
		p, err := decodePoint(r, layout)
		if err != nil {
			return geom.LineString{}, err
		}
		l.Points = append(l.Points, p)
	}
	return l, nil
}

func decodePolygon(r *reader, layout geom.Layout) (geom.Polygon, error) {
	n, err := decodeCount(r, countSize)
	if err != nil {
		return geom.Polygon{}, err
	}

	p := geom.Polygon{Layout: layout}
	if n == 0 {
		return p, nil
	}

	p.Rings = make([]geom.LineString, 0, n)
	for i := 0; i < n; i++ {
		ring, err := decodeLineString(r, layout)
		if err != nil {
			return geom.Polygon{}, err
		}
		p.Rings = append(p.Rings, ring)
	}
	return p, nil
}

func decodeMultiPoint(r *reader, layout geom.Layout) (geom.MultiPoint, error) {
	n, err := decodeCount(r, headerSize)
	if err != nil {
		return geom.MultiPoint{}, err
	}

	mp := geom.MultiPoint{Layout: layout}
	if n == 0 {
		return mp, nil
	}

	mp.Points = make([]geom.Point, 0, n)
	for i := 0; i < n; i++ {
		elem, err := decodeGeometry(r)
		if err != nil {
			return geom.MultiPoint{}, err
		}
		p, ok := elem.(geom.Point)
		if !ok {
			return geom.MultiPoint{}, fmt.Errorf("%w: MultiPoint element %d is %s", ErrUnknownKind, i, elem.Kind())
		}
		mp.Points = append(mp.Points, p)
	}
	return mp, nil
}

func decodeMultiLineString(r *reader, layout geom.Layout) (geom.MultiLineString, error) {
	n, err := decodeCount(r, headerSize)
	if err != nil {
		return geom.MultiLineString{}, err
	}

	ml := geom.MultiLineString{Layout: layout}
	if n == 0 {
		return ml, nil
	}

	ml.Lines = make([]geom.LineString, 0, n)
	for i := 0; i < n; i++ {
		elem, err := decodeGeometry(r)
		if err != nil {
			return geom.MultiLineString{}, err
		}
		l, ok := elem.(geom.LineString)
		if !ok {
			return geom.MultiLineString{}, fmt.Errorf("%w: MultiLineString element %d is %s", ErrUnknownKind, i, elem.Kind())
		}
		ml.Lines = append(ml.Lines, l)
	}
	return ml, nil
}

func decodeMultiPolygon(r *reader, layout geom.Layout) (geom.MultiPolygon, error) {
	n, err := decodeCount(r, headerSize)
	if err != nil {
		return geom.MultiPolygon{}, err
	}

	mp := geom.MultiPolygon{Layout: layout}
	if n == 0 {
		return mp, nil
	}

	mp.Polygons = make([]geom.Polygon, 0, n)
	for i := 0; i < n; i++ {
		elem, err := decodeGeometry(r)
		if err != nil {
			return geom.MultiPolygon{}, err
		}
		p, ok := elem.(geom.Polygon)
		if !ok {
			return geom.MultiPolygon{}, fmt.Errorf("%w: MultiPolygon element %d is %s", ErrUnknownKind, i, elem.Kind())
		}
		mp.Polygons = append(mp.Polygons, p)
	}
	return mp, nil
}

// decodeCollection reads a counted sequence of fully framed geometries.
// Every element resolves its own header, so layouts and kinds may vary
// within one collection.
func decodeCollection(r *reader, layout geom.Layout) (geom.GeometryCollection, error) {
	n, err := decodeCount(r, headerSize)
	if err != nil {
		return geom.GeometryCollection{}, err
	}

	gc := geom.GeometryCollection{Layout: layout}
	if n == 0 {
		return gc, nil
	}

	gc.Geoms = make([]geom.Geometry, 0, n)
	for i := 0; i < n; i++ {
		elem, err := decodeGeometry(r)
		if err != nil {
			return geom.GeometryCollection{}, err
		}
		gc.Geoms = append(gc.Geoms, elem)
	}
	return gc, nil
}
