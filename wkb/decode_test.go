package wkb_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/woozymasta/wkb/geom"
	"github.com/woozymasta/wkb/wkb"
)

const (
	pointHex     = "0101000000000000000000f03f000000000000f03f"
	emptyLineHex = "010200000000000000"
)

func TestDecodePointHex(t *testing.T) {
	g, err := wkb.DecodeHex(pointHex)
	require.NoError(t, err)
	require.Equal(t, geom.Point{Layout: geom.XY, X: 1, Y: 1}, g)
}

func TestDecodeHexCaseInsensitive(t *testing.T) {
	g, err := wkb.DecodeHex("0101000000000000000000F03F000000000000F03F")
	require.NoError(t, err)
	require.Equal(t, geom.Point{Layout: geom.XY, X: 1, Y: 1}, g)
}

func TestDecodePointDimensions(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want geom.Point
	}{
		{
			name: "XYZ",
			data: cat(hdr(1, 1, 0, 0), f64(1), f64(2), f64(3)),
			want: geom.Point{Layout: geom.XYZ, X: 1, Y: 2, Z: 3},
		},
		{
			// third double is the measure when Z is absent
			name: "XYM",
			data: cat(hdr(1, 0, 1, 0), f64(1), f64(2), f64(4)),
			want: geom.Point{Layout: geom.XYM, X: 1, Y: 2, M: 4},
		},
		{
			name: "XYZM",
			data: cat(hdr(1, 1, 1, 0), f64(1), f64(2), f64(3), f64(4)),
			want: geom.Point{Layout: geom.XYZM, X: 1, Y: 2, Z: 3, M: 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := wkb.Decode(tt.data)
			require.NoError(t, err)
			require.Equal(t, tt.want, g)
		})
	}
}

func TestDecodeSRIDReadAndDiscarded(t *testing.T) {
	data := cat(hdr(1, 0, 0, 1), u32(4326), f64(1), f64(1))
	g, err := wkb.Decode(data)
	require.NoError(t, err)
	require.Equal(t, geom.Point{Layout: geom.XY, X: 1, Y: 1}, g)
}

func TestDecodeEmptyLineString(t *testing.T) {
	g, err := wkb.DecodeHex(emptyLineHex)
	require.NoError(t, err)
	require.Equal(t, geom.LineString{Layout: geom.XY}, g)

	// an empty container consumes nothing past its count field
	out, err := wkb.EncodeHex(g)
	require.NoError(t, err)
	require.Equal(t, emptyLineHex, out)
}

func TestDecodePolygonPreservesRingOrder(t *testing.T) {
	outer := []float64{0, 0, 4, 0, 4, 4, 0, 0}
	hole := []float64{1, 1, 2, 1, 1, 2, 1, 1}

	data := cat(hdr(3, 0, 0, 0), u32(2), ringBytes(outer), ringBytes(hole))
	g, err := wkb.Decode(data)
	require.NoError(t, err)

	p, ok := g.(geom.Polygon)
	require.True(t, ok)
	require.Len(t, p.Rings, 2)
	require.Equal(t, ringPoints(outer), p.Rings[0].Points)
	require.Equal(t, ringPoints(hole), p.Rings[1].Points)
}

func TestDecodeMultiPoint(t *testing.T) {
	data := cat(
		hdr(4, 0, 0, 0), u32(2),
		hdr(1, 0, 0, 0), f64(0), f64(0),
		hdr(1, 0, 0, 0), f64(1), f64(1),
	)
	g, err := wkb.Decode(data)
	require.NoError(t, err)
	require.Equal(t, geom.MultiPoint{
		Layout: geom.XY,
		Points: []geom.Point{
			{Layout: geom.XY},
			{Layout: geom.XY, X: 1, Y: 1},
		},
	}, g)
}

func TestDecodeHeterogeneousCollection(t *testing.T) {
	g, err := wkb.Decode(mixedCollectionBytes())
	require.NoError(t, err)
	require.Equal(t, mixedCollection(), g)
}

func TestDecodeTrailingBytesIgnored(t *testing.T) {
	data := append(cat(hdr(1, 0, 0, 0), f64(1), f64(1)), 0xff, 0xff)
	g, err := wkb.Decode(data)
	require.NoError(t, err)
	require.Equal(t, geom.Point{Layout: geom.XY, X: 1, Y: 1}, g)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty input", nil, wkb.ErrEmptyInput},
		{"XDR order byte", []byte{0}, wkb.ErrByteOrder},
		{"bogus order byte", []byte{2, 1, 0, 0, 0}, wkb.ErrByteOrder},
		{"truncated header", []byte{1, 2}, wkb.ErrTruncated},
		{"truncated mid-count", cat(hdr(2, 0, 0, 0), []byte{0, 0}), wkb.ErrTruncated},
		{"truncated point coords", cat(hdr(1, 0, 0, 0), f64(1)), wkb.ErrTruncated},
		{"truncated srid", cat(hdr(1, 0, 0, 1), []byte{0xe6, 0x10}), wkb.ErrTruncated},
		{"count exceeds buffer", cat(hdr(2, 0, 0, 0), u32(0xffffffff)), wkb.ErrTruncated},
		{"unknown kind code", cat(hdr(99, 0, 0, 0)), wkb.ErrUnknownKind},
		{"reserved curve kind", cat(hdr(8, 0, 0, 0)), wkb.ErrUnsupportedKind},
		{"reserved triangle kind", cat(hdr(17, 0, 0, 0)), wkb.ErrUnsupportedKind},
		{
			"nested element error surfaces",
			cat(hdr(7, 0, 0, 0), u32(1), hdr(99, 0, 0, 0)),
			wkb.ErrUnknownKind,
		},
		{
			"multipoint element kind mismatch",
			cat(hdr(4, 0, 0, 0), u32(1), hdr(2, 0, 0, 0), u32(0)),
			wkb.ErrUnknownKind,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := wkb.Decode(tt.data)
			require.ErrorIs(t, err, tt.want)
			require.Nil(t, g)
		})
	}
}

func TestDecodeHexErrors(t *testing.T) {
	_, err := wkb.DecodeHex("01zz")
	require.ErrorIs(t, err, wkb.ErrInvalidHex)

	_, err = wkb.DecodeHex("010")
	require.ErrorIs(t, err, wkb.ErrInvalidHex)

	_, err = wkb.DecodeHex("")
	require.ErrorIs(t, err, wkb.ErrEmptyInput)
}

func ringBytes(coords []float64) []byte {
	out := u32(uint32(len(coords) / 2))
	for _, c := range coords {
		out = append(out, f64(c)...)
	}
	return out
}

func ringPoints(coords []float64) []geom.Point {
	points := make([]geom.Point, 0, len(coords)/2)
	for i := 0; i < len(coords); i += 2 {
		points = append(points, geom.Point{Layout: geom.XY, X: coords[i], Y: coords[i+1]})
	}
	return points
}
