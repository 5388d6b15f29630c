// Package geom defines the geometry model shared by the WKB codec and the
// GeoJSON bridge: points, line strings, polygons and their homogeneous and
// heterogeneous collections. The types are plain values with no behavior
// beyond structural accessors; validity of the geometry itself (ring
// closure, winding, self-intersection) is out of scope.
package geom

// Kind identifies a geometry variant by its WKB kind code.
type Kind uint32

const (
	KindPoint              Kind = 1
	KindLineString         Kind = 2
	KindPolygon            Kind = 3
	KindMultiPoint         Kind = 4
	KindMultiLineString    Kind = 5
	KindMultiPolygon       Kind = 6
	KindGeometryCollection Kind = 7

	// Reserved by the format for the curve/surface family. The codec
	// recognizes the codes but implements no payload logic for them.
	KindCircularString    Kind = 8
	KindCompoundCurve     Kind = 9
	KindCurvePolygon      Kind = 10
	KindMultiCurve        Kind = 11
	KindMultiSurface      Kind = 12
	KindCurve             Kind = 13
	KindSurface           Kind = 14
	KindPolyhedralSurface Kind = 15
	KindTIN               Kind = 16
	KindTriangle          Kind = 17
)

var kindNames = map[Kind]string{
	KindPoint:              "Point",
	KindLineString:         "LineString",
	KindPolygon:            "Polygon",
	KindMultiPoint:         "MultiPoint",
	KindMultiLineString:    "MultiLineString",
	KindMultiPolygon:       "MultiPolygon",
	KindGeometryCollection: "GeometryCollection",
	KindCircularString:     "CircularString",
	KindCompoundCurve:      "CompoundCurve",
	KindCurvePolygon:       "CurvePolygon",
	KindMultiCurve:         "MultiCurve",
	KindMultiSurface:       "MultiSurface",
	KindCurve:              "Curve",
	KindSurface:            "Surface",
	KindPolyhedralSurface:  "PolyhedralSurface",
	KindTIN:                "TIN",
	KindTriangle:           "Triangle",
}

// String returns the canonical kind name, which for the implemented kinds
// matches the GeoJSON "type" member.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Supported reports whether the codec implements payload logic for k.
func (k Kind) Supported() bool {
	return k >= KindPoint && k <= KindGeometryCollection
}

// Reserved reports whether k is a known curve/surface code without payload
// support.
func (k Kind) Reserved() bool {
	return k >= KindCircularString && k <= KindTriangle
}

// Layout describes which optional coordinate dimensions accompany X and Y.
// It is the explicit dimensionality context threaded through the codec:
// every geometry carries its own Layout, resolved from its own WKB header,
// so nested geometries inside a collection may differ from their parent.
type Layout uint8

const (
	// XY is plain 2D and the zero value.
	XY Layout = iota
	// XYZ adds elevation.
	XYZ
	// XYM adds a measure without elevation.
	XYM
	// XYZM adds both elevation and measure.
	XYZM
)

// LayoutFor maps header Z/M flags to a Layout.
func LayoutFor(hasZ, hasM bool) Layout {
	switch {
	case hasZ && hasM:
		return XYZM
	case hasZ:
		return XYZ
	case hasM:
		return XYM
	default:
		return XY
	}
}

// HasZ reports whether the layout carries an elevation dimension.
func (l Layout) HasZ() bool { return l == XYZ || l == XYZM }

// HasM reports whether the layout carries a measure dimension.
func (l Layout) HasM() bool { return l == XYM || l == XYZM }

// Dim returns the number of doubles per coordinate tuple: 2, 3 or 4.
func (l Layout) Dim() int {
	dim := 2
	if l.HasZ() {
		dim++
	}
	if l.HasM() {
		dim++
	}
	return dim
}

func (l Layout) String() string {
	switch l {
	case XYZ:
		return "XYZ"
	case XYM:
		return "XYM"
	case XYZM:
		return "XYZM"
	default:
		return "XY"
	}
}

// Geometry is the closed sum over the seven implemented variants. Ownership
// is strictly tree-shaped: a composite exclusively owns its children and
// values are copied, never shared.
type Geometry interface {
	Kind() Kind
}

// Point is a single coordinate tuple. Z and M are meaningful only when the
// layout declares them and are zero otherwise.
type Point struct {
	Layout Layout
	X, Y   float64
	Z, M   float64
}

func (Point) Kind() Kind { return KindPoint }

// LineString is an ordered point sequence; it may be empty. Points inside a
// line string share the layout of the line string itself.
type LineString struct {
	Layout Layout
	Points []Point
}

func (LineString) Kind() Kind { return KindLineString }

// Polygon is an ordered ring sequence. Ring 0 is conventionally the exterior
// boundary, the rest holes; the model only preserves order.
type Polygon struct {
	Layout Layout
	Rings  []LineString
}

func (Polygon) Kind() Kind { return KindPolygon }

// MultiPoint is a homogeneous point collection. Each element is a fully
// framed geometry on the wire and may carry its own layout.
type MultiPoint struct {
	Layout Layout
	Points []Point
}

func (MultiPoint) Kind() Kind { return KindMultiPoint }

// MultiLineString is a homogeneous line string collection.
type MultiLineString struct {
	Layout Layout
	Lines  []LineString
}

func (MultiLineString) Kind() Kind { return KindMultiLineString }

// MultiPolygon is a homogeneous polygon collection.
type MultiPolygon struct {
	Layout   Layout
	Polygons []Polygon
}

func (MultiPolygon) Kind() Kind { return KindMultiPolygon }

// GeometryCollection is a heterogeneous geometry collection.
type GeometryCollection struct {
	Layout Layout
	Geoms  []Geometry
}

func (GeometryCollection) Kind() Kind { return KindGeometryCollection }
