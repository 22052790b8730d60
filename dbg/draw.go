package dbg

import (
	"io"
	"math"

	"github.com/fogleman/gg"
	imgcat "github.com/martinlindhe/imgcat/lib"
	"github.com/osuushi/normals/advanced"
	"golang.org/x/exp/constraints"
)

// Padding around the cloud so that normals at the edge stay in frame
const drawPadding = 40

// Render a point cloud with its normals. Points are white dots and normals are
// cyan ticks of length normalLength (in point units). Normals flagged in
// highlight, if non-nil, are drawn in yellow instead.
//
// The context is flipped so the origin is at the bottom left, like the data.
func Draw[T constraints.Float](points []advanced.Point[T], normals []advanced.Vector[T], highlight []bool, scale, normalLength float64) *gg.Context {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		minX = math.Min(minX, float64(p.X))
		minY = math.Min(minY, float64(p.Y))
		maxX = math.Max(maxX, float64(p.X))
		maxY = math.Max(maxY, float64(p.Y))
	}
	if len(points) == 0 {
		minX, minY, maxX, maxY = 0, 0, 0, 0
	}

	width := int(scale*(maxX-minX)) + drawPadding*2
	height := int(scale*(maxY-minY)) + drawPadding*2
	c := gg.NewContext(width, height)
	c.SetRGB(0, 0, 0)
	c.DrawRectangle(0, 0, float64(width), float64(height))
	c.Fill()

	// Flip the context so the origin is at the bottom left
	c.Translate(0, float64(height))
	c.Scale(1, -1)
	c.Translate(drawPadding, drawPadding)
	c.Scale(scale, scale)
	c.Translate(-minX, -minY)

	c.SetLineWidth(1.5 / scale)
	for i, n := range normals {
		if i >= len(points) {
			break
		}
		p := points[i]
		x, y := float64(p.X), float64(p.Y)
		c.DrawLine(x, y, x+normalLength*float64(n.X), y+normalLength*float64(n.Y))
		if highlight != nil && i < len(highlight) && highlight[i] {
			c.SetRGB(1, 1, 0)
		} else {
			c.SetRGB(0, 1, 1)
		}
		c.Stroke()
	}

	c.SetRGB(1, 1, 1)
	for _, p := range points {
		c.DrawCircle(float64(p.X), float64(p.Y), 2/scale)
		c.Fill()
	}
	return c
}

// Save a rendering to path as a PNG.
func SavePNG[T constraints.Float](path string, points []advanced.Point[T], normals []advanced.Vector[T], highlight []bool, scale, normalLength float64) error {
	return Draw(points, normals, highlight, scale, normalLength).SavePNG(path)
}

// Print a PNG to the terminal (iTerm only).
func Cat(path string, w io.Writer) error {
	return imgcat.CatFile(path, w)
}
