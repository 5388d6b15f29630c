// Package render rasterizes geometry outlines for quick visual inspection.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
	"math"

	"github.com/woozymasta/wkb/geom"

	"github.com/chai2010/webp"
	xdraw "golang.org/x/image/draw"
)

// Options controls the output raster.
type Options struct {
	Size       int // output edge length in pixels
	Quality    float32
	Stroke     color.RGBA
	Background color.RGBA
}

// DefaultOptions returns the options used by the render command.
func DefaultOptions() Options {
	return Options{
		Size:       512,
		Quality:    90,
		Stroke:     color.RGBA{R: 0x20, G: 0x50, B: 0xa0, A: 0xff},
		Background: color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	}
}

// WriteWebP rasterizes g and writes a WebP image to w.
func WriteWebP(w io.Writer, g geom.Geometry, opts Options) error {
	img, err := Raster(g, opts)
	if err != nil {
		return err
	}
	return webp.Encode(w, img, &webp.Options{Quality: opts.Quality})
}

// Raster draws the outline of g onto a square RGBA canvas. Drawing happens
// at double resolution and is downscaled for smoother strokes.
func Raster(g geom.Geometry, opts Options) (*image.RGBA, error) {
	if opts.Size <= 0 {
		opts.Size = 512
	}

	bb, ok := boundsOf(g)
	if !ok {
		return nil, fmt.Errorf("geometry has no coordinates to render")
	}

	super := image.NewRGBA(image.Rect(0, 0, opts.Size*2, opts.Size*2))
	draw.Draw(super, super.Bounds(), &image.Uniform{C: opts.Background}, image.Point{}, draw.Src)

	proj := newProjection(bb, opts.Size*2)
	drawGeometry(super, g, proj, opts.Stroke)

	out := image.NewRGBA(image.Rect(0, 0, opts.Size, opts.Size))
	xdraw.ApproxBiLinear.Scale(out, out.Bounds(), super, super.Bounds(), xdraw.Src, nil)

	return out, nil
}

// box is an axis-aligned bounding box in geometry coordinates.
type box struct {
	minX, minY, maxX, maxY float64
}

func (b *box) extend(p geom.Point) {
	b.minX = math.Min(b.minX, p.X)
	b.minY = math.Min(b.minY, p.Y)
	b.maxX = math.Max(b.maxX, p.X)
	b.maxY = math.Max(b.maxY, p.Y)
}

// boundsOf walks the tree collecting X/Y extents. Z and M play no role in
// the raster.
func boundsOf(g geom.Geometry) (box, bool) {
	bb := box{
		minX: math.Inf(1), minY: math.Inf(1),
		maxX: math.Inf(-1), maxY: math.Inf(-1),
	}
	found := false

	var walk func(geom.Geometry)
	walk = func(g geom.Geometry) {
		switch v := g.(type) {
		case geom.Point:
			bb.extend(v)
			found = true
		case geom.LineString:
			for _, p := range v.Points {
				bb.extend(p)
			}
			found = found || len(v.Points) > 0
		case geom.Polygon:
			for _, ring := range v.Rings {
				walk(ring)
			}
		case geom.MultiPoint:
			for _, p := range v.Points {
				walk(p)
			}
		case geom.MultiLineString:
			for _, l := range v.Lines {
				walk(l)
			}
		case geom.MultiPolygon:
			for _, p := range v.Polygons {
				walk(p)
			}
		case geom.GeometryCollection:
			for _, child := range v.Geoms {
				walk(child)
			}
		}
	}
	walk(g)

	return bb, found
}

// projection maps geometry coordinates to pixel coordinates, preserving
// aspect ratio, centering the drawing and flipping Y so north is up.
type projection struct {
	bb         box
	scale      float64
	offX, offY float64
	height     int
}

func newProjection(bb box, size int) projection {
	spanX := bb.maxX - bb.minX
	spanY := bb.maxY - bb.minY
	span := math.Max(spanX, spanY)
	if span == 0 {
		// degenerate extent, e.g. a single point
		span = 1
	}

	margin := float64(size) * 0.05
	scale := (float64(size) - 2*margin) / span

	return projection{
		bb:     bb,
		scale:  scale,
		offX:   margin + (float64(size)-2*margin-spanX*scale)/2,
		offY:   margin + (float64(size)-2*margin-spanY*scale)/2,
		height: size,
	}
}

func (pr projection) pixel(p geom.Point) (int, int) {
	x := pr.offX + (p.X-pr.bb.minX)*pr.scale
	y := pr.offY + (p.Y-pr.bb.minY)*pr.scale
	return int(math.Round(x)), pr.height - 1 - int(math.Round(y))
}

func drawGeometry(img *image.RGBA, g geom.Geometry, proj projection, stroke color.RGBA) {
	switch v := g.(type) {
	case geom.Point:
		x, y := proj.pixel(v)
		drawMarker(img, x, y, stroke)
	case geom.LineString:
		drawPolyline(img, v.Points, proj, stroke, false)
	case geom.Polygon:
		for _, ring := range v.Rings {
			drawPolyline(img, ring.Points, proj, stroke, true)
		}
	case geom.MultiPoint:
		for _, p := range v.Points {
			drawGeometry(img, p, proj, stroke)
		}
	case geom.MultiLineString:
		for _, l := range v.Lines {
			drawGeometry(img, l, proj, stroke)
		}
	case geom.MultiPolygon:
		for _, p := range v.Polygons {
			drawGeometry(img, p, proj, stroke)
		}
	case geom.GeometryCollection:
		for _, child := range v.Geoms {
			drawGeometry(img, child, proj, stroke)
		}
	}
}

func drawPolyline(img *image.RGBA, points []geom.Point, proj projection, stroke color.RGBA, closed bool) {
	if len(points) == 0 {
		return
	}
	if len(points) == 1 {
		x, y := proj.pixel(points[0])
		drawMarker(img, x, y, stroke)
		return
	}

	for i := 1; i < len(points); i++ {
		x0, y0 := proj.pixel(points[i-1])
		x1, y1 := proj.pixel(points[i])
		drawLine(img, x0, y0, x1, y1, stroke)
	}

	if closed {
		x0, y0 := proj.pixel(points[len(points)-1])
		x1, y1 := proj.pixel(points[0])
		drawLine(img, x0, y0, x1, y1, stroke)
	}
}

// drawMarker fills a small square centered on the pixel.
func drawMarker(img *image.RGBA, cx, cy int, c color.RGBA) {
	const r = 3
	for y := cy - r; y <= cy+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			if image.Pt(x, y).In(img.Bounds()) {
				img.SetRGBA(x, y, c)
			}
		}
	}
}

// drawLine is a plain Bresenham segment.
func drawLine(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		if image.Pt(x0, y0).In(img.Bounds()) {
			img.SetRGBA(x0, y0, c)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
