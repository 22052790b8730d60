package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/osuushi/normals"
	"github.com/pkg/errors"
)

// Read newline separated points in the form "x y". Blank lines are skipped.
func readPoints(in io.Reader) ([]normals.Point, error) {
	var points []normals.Point
	scanner := bufio.NewScanner(in)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		point, err := parsePoint(line)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNumber)
		}
		points = append(points, point)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading points")
	}
	return points, nil
}

func parsePoint(line string) (normals.Point, error) {
	parts := strings.Fields(line)
	if len(parts) != 2 {
		return normals.Point{}, errors.Errorf("expected \"x y\", got %q", line)
	}
	x, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return normals.Point{}, errors.Wrap(err, "x")
	}
	y, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return normals.Point{}, errors.Wrap(err, "y")
	}
	return normals.Point{X: x, Y: y}, nil
}

func formatLine(p normals.Point, n normals.Vector) string {
	return fmt.Sprintf("%g %g %g %g", p.X, p.Y, n.X, n.Y)
}
