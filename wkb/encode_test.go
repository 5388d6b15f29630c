package wkb_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/woozymasta/wkb/geom"
	"github.com/woozymasta/wkb/wkb"
)

func TestEncodePointHex(t *testing.T) {
	out, err := wkb.EncodeHex(geom.Point{Layout: geom.XY, X: 1, Y: 1})
	require.NoError(t, err)
	require.Equal(t, pointHex, out)
}

func TestEncodeHexIsLowercase(t *testing.T) {
	out, err := wkb.EncodeHex(geom.Point{Layout: geom.XY, X: 1, Y: 1})
	require.NoError(t, err)
	require.Equal(t, strings.ToLower(out), out)
}

func TestEncodeEmptyLineString(t *testing.T) {
	out, err := wkb.EncodeHex(geom.LineString{Layout: geom.XY})
	require.NoError(t, err)
	require.Equal(t, emptyLineHex, out)
}

func TestEncodeHeaderFlags(t *testing.T) {
	tests := []struct {
		name   string
		layout geom.Layout
		want   []byte
	}{
		{"XY", geom.XY, hdr(1, 0, 0, 0)},
		{"XYZ", geom.XYZ, hdr(1, 1, 0, 0)},
		{"XYM", geom.XYM, hdr(1, 0, 1, 0)},
		{"XYZM", geom.XYZM, hdr(1, 1, 1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := wkb.Encode(geom.Point{Layout: tt.layout, X: 1, Y: 2, Z: 3, M: 4})
			require.NoError(t, err)
			require.Equal(t, tt.want, data[:5])
			require.Len(t, data, 5+tt.layout.Dim()*8)
		})
	}
}

// Each nested geometry re-derives its own header flags, so mixed
// dimensionalities inside one collection survive encoding.
func TestEncodeNestedLayouts(t *testing.T) {
	data, err := wkb.Encode(mixedCollection())
	require.NoError(t, err)
	require.Equal(t, mixedCollectionBytes(), data)
}

// Ring points are bare tuples written at the polygon's layout, whatever
// their own layout fields claim.
func TestEncodeRingFollowsPolygonLayout(t *testing.T) {
	p := geom.Polygon{
		Layout: geom.XY,
		Rings: []geom.LineString{{
			Layout: geom.XYZ,
			Points: []geom.Point{
				{Layout: geom.XYZ, X: 0, Y: 0, Z: 9},
				{Layout: geom.XYZ, X: 1, Y: 0, Z: 9},
				{Layout: geom.XYZ, X: 0, Y: 1, Z: 9},
			},
		}},
	}

	data, err := wkb.Encode(p)
	require.NoError(t, err)
	// header + ring count + point count + 3 bare XY tuples
	require.Len(t, data, 5+4+4+3*16)
}

func TestEncodeDoesNotMutateSource(t *testing.T) {
	line := geom.LineString{
		Layout: geom.XY,
		Points: []geom.Point{{Layout: geom.XY, X: 1, Y: 2}},
	}
	want := geom.LineString{
		Layout: geom.XY,
		Points: []geom.Point{{Layout: geom.XY, X: 1, Y: 2}},
	}

	_, err := wkb.Encode(line)
	require.NoError(t, err)
	require.Equal(t, want, line)
}

type fakeGeometry struct{}

func (fakeGeometry) Kind() geom.Kind { return geom.KindCircularString }

func TestEncodeErrors(t *testing.T) {
	_, err := wkb.Encode(nil)
	require.ErrorIs(t, err, wkb.ErrUnknownKind)

	_, err = wkb.Encode(fakeGeometry{})
	require.ErrorIs(t, err, wkb.ErrUnknownKind)

	// a bad element inside an otherwise fine collection
	_, err = wkb.Encode(geom.GeometryCollection{Geoms: []geom.Geometry{fakeGeometry{}}})
	require.ErrorIs(t, err, wkb.ErrUnknownKind)
}
