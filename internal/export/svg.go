package export

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/wheelsim/internal/trace"
)

var ErrTooFewPoints = errors.New("export: need at least two samples")

type Point struct {
	X, Y float64
}

// PositionPoints maps samples to (time, unrolled position).
func PositionPoints(samples []trace.Sample) []Point {
	points := make([]Point, len(samples))
	for i, s := range samples {
		points[i] = Point{X: float64(s.T), Y: s.Position}
	}
	return points
}

// VelocityPoints maps samples to (time, velocity).
func VelocityPoints(samples []trace.Sample) []Point {
	points := make([]Point, len(samples))
	for i, s := range samples {
		points[i] = Point{X: float64(s.T), Y: s.Velocity}
	}
	return points
}

// WriteSVG draws samples as a position-over-time line.
func WriteSVG(w io.Writer, samples []trace.Sample, width, height int) error {
	svg, err := TrajectoryToSVG(PositionPoints(samples), width, height, "#00ff00")
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, svg)
	return err
}

// TrajectoryToSVG draws points as a single polyline scaled into the box.
func TrajectoryToSVG(points []Point, width, height int, strokeColor string) (string, error) {
	if len(points) < 2 {
		return "", ErrTooFewPoints
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX = min(minX, p.X)
		maxX = max(maxX, p.X)
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}

	// Add padding
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor)

	for i, p := range points {
		x := (p.X - minX) / rangeX * float64(width)
		y := float64(height) - (p.Y-minY)/rangeY*float64(height)
		if i > 0 {
			sb.WriteString(" L")
		}
		fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
	}

	sb.WriteString(`"/>
</svg>
`)
	return sb.String(), nil
}
