// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package design holds the template design model: percentage-space geometry,
// the text/image/shape/logo layer variants, and templates that own an
// ordered collection of layers. Everything here is plain value data with no
// I/O; persistence and brand lookups live in other packages.
package design

import "math"

// MinExtent is the smallest width or height a layer may have, in percent.
// Layers must always have a positive size.
const MinExtent = 0.1

// Dimensions is the pixel size of a template canvas.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Geometry places a layer in percentage space. X, Y, Width and Height are
// percentages (0-100) of the template dimensions; Rotation is in degrees
// about the layer's own centre and is not bounded.
type Geometry struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Rotation float64 `json:"rotation"`
}

// Rect is a pixel rectangle produced for a specific canvas size and scale.
type Rect struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	W        float64 `json:"w"`
	H        float64 `json:"h"`
	Rotation float64 `json:"rotation"`
}

// ClampPercent bounds v to [0, 100]. Out-of-range values are coerced rather
// than rejected so a layer dragged partially off-canvas stays valid.
// NaN becomes 0.
func ClampPercent(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}

// ClampExtent bounds a width or height to [MinExtent, 100].
func ClampExtent(v float64) float64 {
	if math.IsNaN(v) || v < MinExtent {
		return MinExtent
	}
	if v > 100 {
		return 100
	}
	return v
}

// Normalize returns g with position clamped to percentage space and size
// clamped to [MinExtent, 100]. Infinite or NaN rotations are reset to 0.
func (g Geometry) Normalize() Geometry {
	g.X = ClampPercent(g.X)
	g.Y = ClampPercent(g.Y)
	g.Width = ClampExtent(g.Width)
	g.Height = ClampExtent(g.Height)
	if math.IsNaN(g.Rotation) || math.IsInf(g.Rotation, 0) {
		g.Rotation = 0
	}
	return g
}

// ToPixels converts percentage geometry into a pixel rectangle for the given
// canvas dimensions at the given scale (zoom). Scale is a rendering concern
// and is never stored on a layer; a non-positive scale is treated as 1.
func ToPixels(g Geometry, d Dimensions, scale float64) Rect {
	if scale <= 0 || math.IsNaN(scale) {
		scale = 1
	}
	w := float64(d.Width) * scale
	h := float64(d.Height) * scale
	return Rect{
		X:        g.X / 100 * w,
		Y:        g.Y / 100 * h,
		W:        g.Width / 100 * w,
		H:        g.Height / 100 * h,
		Rotation: g.Rotation,
	}
}

// ToPercent is the inverse of ToPixels for a point: it converts a pixel
// coordinate on a canvas drawn at scale into clamped percentage space.
func ToPercent(px, py float64, d Dimensions, scale float64) (x, y float64) {
	if scale <= 0 || math.IsNaN(scale) {
		scale = 1
	}
	if d.Width <= 0 || d.Height <= 0 {
		return 0, 0
	}
	x = ClampPercent(px / (float64(d.Width) * scale) * 100)
	y = ClampPercent(py / (float64(d.Height) * scale) * 100)
	return x, y
}
