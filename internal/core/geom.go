// Package core provides fundamental types and utilities for the chronoshift
// front end. It contains no external dependencies (especially no Bubble Tea)
// to keep effect logic pure and testable.
package core

import "math"

// Rect is an axis-aligned rectangle in a continuous coordinate space.
// Screens lay controls out in these units and the particle effects
// simulate in the same space.
type Rect struct {
	X, Y float64 // Top-left corner position
	W, H float64 // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return !(r.W > 0) || !(r.H > 0)
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Relative returns r expressed in the coordinate space of outer,
// i.e. translated by outer's top-left corner.
func (r Rect) Relative(outer Rect) Rect {
	return Rect{X: r.X - outer.X, Y: r.Y - outer.Y, W: r.W, H: r.H}
}

// Scale multiplies position and size by sx horizontally and sy vertically.
func (r Rect) Scale(sx, sy float64) Rect {
	return Rect{X: r.X * sx, Y: r.Y * sy, W: r.W * sx, H: r.H * sy}
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
