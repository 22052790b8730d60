package fixture

import (
	"embed"
	"log"
	"strconv"
	"strings"

	"github.com/JoshVarga/svgparser"
	"github.com/osuushi/normals/advanced"
)

// This file parses the svg fixtures and outputs point clouds. This is not a
// full (or even correct) svg parser. It collects the vertices of every polygon
// and polyline in document order. If anything goes wrong, it exits.
//
// Fixtures are available by name in the fixtures/ directory, sans extension.

//go:embed fixtures
var fixtures embed.FS

func Load(name string) []advanced.Point[float64] {
	fixture, err := fixtures.Open("fixtures/" + name + ".svg")
	if err != nil {
		log.Fatalf("Could not load fixture %q: %v", name, err)
	}

	defer fixture.Close()
	rootEl, err := svgparser.Parse(fixture, true)
	if err != nil {
		log.Fatalf("Failed to parse fixture %q: %v", name, err)
	}

	var points []advanced.Point[float64]
	for _, tag := range []string{"polygon", "polyline"} {
		for _, el := range rootEl.FindAll(tag) {
			points = append(points, parsePoints(el.Attributes["points"])...)
		}
	}
	if len(points) == 0 {
		log.Fatalf("No points found in fixture %q", name)
	}
	return points
}

func parsePoints(pointString string) []advanced.Point[float64] {
	pointStrings := strings.Fields(pointString)
	points := make([]advanced.Point[float64], 0, len(pointStrings))
	for _, pointString := range pointStrings {
		coords := strings.Split(pointString, ",")
		if len(coords) != 2 {
			log.Fatalf("Invalid point string %q", pointString)
		}
		x, err := strconv.ParseFloat(coords[0], 64)
		if err != nil {
			log.Fatalf("Invalid x value %q: %v", coords[0], err)
		}
		y, err := strconv.ParseFloat(coords[1], 64)
		if err != nil {
			log.Fatalf("Invalid y value %q: %v", coords[1], err)
		}
		points = append(points, advanced.Point[float64]{X: x, Y: y})
	}
	return points
}

// Convert a fixture to another float type.
func LoadAs[T float32 | float64](name string) []advanced.Point[T] {
	points := Load(name)
	result := make([]advanced.Point[T], len(points))
	for i, p := range points {
		result[i] = advanced.Point[T]{X: T(p.X), Y: T(p.Y)}
	}
	return result
}
