// Package polar converts positions on a circular chart into pixel coordinates.
//
// A position is a (level, angle) pair: the level is a radius measured in
// rings, the angle is in degrees counter-clockwise from the positive x axis.
// Each dimension is mapped to pixels independently through an [Axis], the
// same way a chart maps data values onto its plot area.
package polar

import (
	"image"
	"math"
)

// Axis maps a data-space coordinate onto a pixel coordinate.
type Axis interface {
	Pixel(v float64) int
}

// Cartesian returns the data-space coordinates of a polar position.
// A level of 0 always yields the origin.
func Cartesian(level, angleDegrees float64) (x, y float64) {
	rad := angleDegrees * math.Pi / 180
	return level * math.Cos(rad), level * math.Sin(rad)
}

// Project maps a polar position to a pixel coordinate using one axis per
// dimension. It is a pure function of its inputs.
func Project(xAxis, yAxis Axis, level, angleDegrees float64) image.Point {
	x, y := Cartesian(level, angleDegrees)
	return image.Pt(xAxis.Pixel(x), yAxis.Pixel(y))
}

// Normalize folds an angle in degrees into [0, 360).
func Normalize(angleDegrees float64) float64 {
	a := math.Mod(angleDegrees, 360)
	if a < 0 {
		a += 360
	}
	return a
}
