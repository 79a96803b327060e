package export

import (
	"fmt"
	"strings"

	"gonum.org/v1/plot/plotter"
)

// SnapshotToSVG draws the projected trajectory as a single SVG path.
func SnapshotToSVG(s *Snapshot, width, height int, strokeColor string) string {
	return TrajectoryToSVG(s.Projected(), width, height, strokeColor)
}

// TrajectoryToSVG creates an SVG path from 2D points, fitted to the view
// box with 10% padding.
func TrajectoryToSVG(points plotter.XYs, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	minX, maxX, minY, maxY := plotter.XYRange(points)

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<circle cx="%.1f" cy="%.1f" r="3" fill="#ffaa00"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height,
		(0-minX)/rangeX*float64(width), float64(height)-(0-minY)/rangeY*float64(height),
		strokeColor))

	for i, p := range points {
		x := (p.X - minX) / rangeX * float64(width)
		y := float64(height) - (p.Y-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
