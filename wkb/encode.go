package wkb

import (
	"encoding/hex"
	"fmt"

	"github.com/woozymasta/wkb/geom"
)

// Encode serializes g into WKB bytes. Every geometry, nested ones included,
// emits a header derived from its own layout, so a collection of mixed
// dimensionalities round-trips faithfully. The source tree is never
// mutated, and the SRID flag is always written as zero.
//
// Encode fails only for nil values or Geometry implementations outside the
// model in package geom.
func Encode(g geom.Geometry) ([]byte, error) {
	w := &writer{buf: make([]byte, 0, 64)}
	if err := encodeGeometry(w, g); err != nil {
		return nil, err
	}
	return w.buf, nil
}

// EncodeHex serializes g and returns the bytes as a lower-case hex string.
func EncodeHex(g geom.Geometry) (string, error) {
	data, err := Encode(g)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(data), nil
}

func encodeHeader(w *writer, kind geom.Kind, layout geom.Layout) {
	w.writeByte(ndr)
	w.writeByte(byte(kind))
	w.writeByte(flagByte(layout.HasZ()))
	w.writeByte(flagByte(layout.HasM()))
	w.writeByte(0) // SRID never emitted
}

func flagByte(set bool) byte {
	if set {
		return 1
	}
	return 0
}

func encodeGeometry(w *writer, g geom.Geometry) error {
	switch v := g.(type) {
	case geom.Point:
		encodeHeader(w, geom.KindPoint, v.Layout)
		encodePointCoords(w, v, v.Layout)
	case geom.LineString:
		encodeHeader(w, geom.KindLineString, v.Layout)
		encodeLinePayload(w, v, v.Layout)
	case geom.Polygon:
		encodeHeader(w, geom.KindPolygon, v.Layout)
		w.writeUint32(uint32(len(v.Rings)))
		for _, ring := range v.Rings {
			encodeLinePayload(w, ring, v.Layout)
		}
	case geom.MultiPoint:
		encodeHeader(w, geom.KindMultiPoint, v.Layout)
		w.writeUint32(uint32(len(v.Points)))
		for _, p := range v.Points {
			if err := encodeGeometry(w, p); err != nil {
				return err
			}
		}
	case geom.MultiLineString:
		encodeHeader(w, geom.KindMultiLineString, v.Layout)
		w.writeUint32(uint32(len(v.Lines)))
		for _, l := range v.Lines {
			if err := encodeGeometry(w, l); err != nil {
				return err
			}
		}
	case geom.MultiPolygon:
		encodeHeader(w, geom.KindMultiPolygon, v.Layout)
		w.writeUint32(uint32(len(v.Polygons)))
		for _, p := range v.Polygons {
			if err := encodeGeometry(w, p); err != nil {
				return err
			}
		}
	case geom.GeometryCollection:
		encodeHeader(w, geom.KindGeometryCollection, v.Layout)
		w.writeUint32(uint32(len(v.Geoms)))
		for _, child := range v.Geoms {
			if err := encodeGeometry(w, child); err != nil {
				return err
			}
		}
	case nil:
		return fmt.Errorf("%w: nil geometry", ErrUnknownKind)
	default:
		return fmt.Errorf("%w: %T is not part of the geometry model", ErrUnknownKind, g)
	}
	return nil
}

// encodePointCoords writes a bare coordinate tuple. The layout comes from
// the enclosing geometry: points inside rings follow the ring's layout, not
// their own.
func encodePointCoords(w *writer, p geom.Point, layout geom.Layout) {
	w.writeFloat64(p.X)
	w.writeFloat64(p.Y)
	if layout.HasZ() {
		w.writeFloat64(p.Z)
	}
	if layout.HasM() {
		w.writeFloat64(p.M)
	}
}

// encodeLinePayload writes the counted bare-point payload shared by
// LineString bodies and polygon rings.
func encodeLinePayload(w *writer, l geom.LineString, layout geom.Layout) {
	w.writeUint32(uint32(len(l.Points)))
	for _, p := range l.Points {
		encodePointCoords(w, p, layout)
	}
}
