package wkb_test

import (
	"encoding/binary"
	"math"

	"github.com/woozymasta/wkb/geom"
)

// Wire-building helpers for fixtures. All values little-endian, matching the
// codec's NDR-only profile.

func hdr(kind, z, m, srid byte) []byte {
	return []byte{1, kind, z, m, srid}
}

func u32(v uint32) []byte {
	return binary.LittleEndian.AppendUint32(nil, v)
}

func f64(f float64) []byte {
	return binary.LittleEndian.AppendUint64(nil, math.Float64bits(f))
}

func cat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// mixedCollectionBytes frames a collection holding a 2D point and a 3D line
// string, each with its own header flags.
func mixedCollectionBytes() []byte {
	return cat(
		hdr(7, 0, 0, 0), u32(2),
		hdr(1, 0, 0, 0), f64(1), f64(2),
		hdr(2, 1, 0, 0), u32(2),
		f64(1), f64(2), f64(3),
		f64(4), f64(5), f64(7),
	)
}

func mixedCollection() geom.GeometryCollection {
	return geom.GeometryCollection{
		Layout: geom.XY,
		Geoms: []geom.Geometry{
			geom.Point{Layout: geom.XY, X: 1, Y: 2},
			geom.LineString{
				Layout: geom.XYZ,
				Points: []geom.Point{
					{Layout: geom.XYZ, X: 1, Y: 2, Z: 3},
					{Layout: geom.XYZ, X: 4, Y: 5, Z: 7},
				},
			},
		},
	}
}
