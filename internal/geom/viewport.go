// Package geom implements the coordinate mapping between the caller's
// user-space coordinate system and the pixel space of a drawing surface.
package geom

import (
	"errors"
	"math"
)

// Default scale bounds installed when a viewport is created.
const (
	DefaultXMin = 0.0
	DefaultXMax = 1.0
	DefaultYMin = 0.0
	DefaultYMax = 1.0
)

// Border is the symmetric inset applied to every configured scale range,
// expressed as a fraction of the range size. The historical value is zero:
// user coordinates map edge to edge.
const Border = 0.0

// ErrInvalidRange is returned when a scale range is set with a minimum
// that is not strictly less than its maximum.
var ErrInvalidRange = errors.New("minimum must be less than maximum")

// Viewport maps a rectangular user-space region onto a fixed-size pixel
// surface. X grows rightward in both spaces. User-space Y grows upward
// while pixel-space Y grows downward, so the vertical mapping is inverted.
type Viewport struct {
	xmin, xmax float64
	ymin, ymax float64
	width      float64
	height     float64
}

// NewViewport returns a viewport over a width x height pixel surface with
// the default unit scale on both axes.
func NewViewport(width, height float64) Viewport {
	v := Viewport{width: width, height: height}
	v.xmin, v.xmax = inset(DefaultXMin, DefaultXMax)
	v.ymin, v.ymax = inset(DefaultYMin, DefaultYMax)
	return v
}

func inset(min, max float64) (float64, float64) {
	size := max - min
	return min - Border*size, max + Border*size
}

// Resize changes the pixel dimensions the viewport maps onto. The user
// scale is unaffected.
func (v *Viewport) Resize(width, height float64) {
	v.width = width
	v.height = height
}

// SetXRange sets the horizontal user scale so that min maps to the left
// edge and max to the right edge. Fails if min >= max.
func (v *Viewport) SetXRange(min, max float64) error {
	if min >= max {
		return ErrInvalidRange
	}
	v.xmin, v.xmax = inset(min, max)
	return nil
}

// SetYRange sets the vertical user scale so that min maps to the bottom
// edge and max to the top edge. Fails if min >= max.
func (v *Viewport) SetYRange(min, max float64) error {
	if min >= max {
		return ErrInvalidRange
	}
	v.ymin, v.ymax = inset(min, max)
	return nil
}

// Width returns the pixel width of the mapped surface.
func (v Viewport) Width() float64 { return v.width }

// Height returns the pixel height of the mapped surface.
func (v Viewport) Height() float64 { return v.height }

// XRange returns the configured horizontal user-space bounds.
func (v Viewport) XRange() (min, max float64) { return v.xmin, v.xmax }

// YRange returns the configured vertical user-space bounds.
func (v Viewport) YRange() (min, max float64) { return v.ymin, v.ymax }

// Center returns the user-space midpoint of the viewport.
func (v Viewport) Center() (x, y float64) {
	return (v.xmin + v.xmax) / 2.0, (v.ymin + v.ymax) / 2.0
}

// ScaleX converts a user-space x position to pixel space.
func (v Viewport) ScaleX(x float64) float64 {
	return v.width * (x - v.xmin) / (v.xmax - v.xmin)
}

// ScaleY converts a user-space y position to pixel space, inverting the
// vertical axis.
func (v Viewport) ScaleY(y float64) float64 {
	return v.height * (v.ymax - y) / (v.ymax - v.ymin)
}

// FactorX converts a user-space horizontal length to a pixel length.
// Lengths are unaffected by the axis origin, only by the range magnitude.
func (v Viewport) FactorX(w float64) float64 {
	return w * v.width / math.Abs(v.xmax-v.xmin)
}

// FactorY converts a user-space vertical length to a pixel length.
func (v Viewport) FactorY(h float64) float64 {
	return h * v.height / math.Abs(v.ymax-v.ymin)
}

// UserX converts a pixel-space x position back to user space. It is the
// inverse of ScaleX.
func (v Viewport) UserX(x float64) float64 {
	return v.xmin + x*(v.xmax-v.xmin)/v.width
}

// UserY converts a pixel-space y position back to user space. It is the
// inverse of ScaleY.
func (v Viewport) UserY(y float64) float64 {
	return v.ymax - y*(v.ymax-v.ymin)/v.height
}
