// Package chart turns numeric series into SVG polyline/polygon coordinate
// strings on a fixed logical canvas. Pure functions, defined for empty and
// single-element input.
package chart

import (
	"math"
	"strconv"
	"strings"
)

// Default canvas sizes used by the dashboard mini-charts and the full
// reports page.
const (
	MiniWidth  = 240
	MiniHeight = 80

	ReportWidth  = 110
	ReportHeight = 60
)

// Vertical padding keeps the line off the canvas edges: 6px above the
// baseline, 12px of headroom at the top.
const (
	padBottom = 6
	padTop    = 12
)

// LinePoints returns a space-joined "x,y" list for an SVG polyline. For n
// values the x step is width/(n-1), or the full width for a single value.
// Coordinates are rounded to the nearest integer.
func LinePoints(values []float64, width, height int) string {
	if len(values) == 0 {
		return ""
	}

	max := 1.0
	for _, v := range values {
		if v > max {
			max = v
		}
	}

	step := float64(width)
	if len(values) > 1 {
		step = float64(width) / float64(len(values)-1)
	}

	usable := float64(height - padBottom - padTop)
	var b strings.Builder
	for i, v := range values {
		x := 0.0
		if len(values) > 1 {
			x = float64(i) * step
		}
		y := float64(height) - (v/max)*usable - padBottom

		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.Itoa(int(math.Round(x))))
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(int(math.Round(y))))
	}
	return b.String()
}

// AreaPolygon returns the LinePoints string closed against the canvas
// baseline, producing a fillable polygon: bottom-left corner, the line,
// bottom-right corner.
func AreaPolygon(values []float64, width, height int) string {
	line := LinePoints(values, width, height)
	if line == "" {
		return ""
	}
	h := strconv.Itoa(height)
	return "0," + h + " " + line + " " + strconv.Itoa(width) + "," + h
}
