// Licensed to NASA JPL under one or more contributor
// license agreements. See the NOTICE file distributed with
// this work for additional information regarding copyright
// ownership. NASA JPL licenses this file to you under
// the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package roi

import (
	"math"

	"github.com/microvis/core/core/geom"
)

// EllipseROI - axis-aligned ellipse defined by its bounding box
type EllipseROI struct {
	rect  geom.Rect
	plane ImagePlane
}

// makeEllipse - normalises a flipped box (a negative Scale factor mirrors
// the shape) so the stored rect always has its origin at the min corner and
// non-negative dimensions
func makeEllipse(x float64, y float64, width float64, height float64, plane ImagePlane) *EllipseROI {
	if width < 0 {
		x += width
		width = -width
	}
	if height < 0 {
		y += height
		height = -height
	}
	return &EllipseROI{rect: geom.MakeRect(x, y, width, height), plane: plane}
}

func (e *EllipseROI) RoiName() string {
	return "Ellipse"
}

func (e *EllipseROI) RoiType() RoiType {
	return RoiTypeArea
}

func (e *EllipseROI) Plane() ImagePlane {
	return e.plane
}

func (e *EllipseROI) BoundsX() float64 {
	return e.rect.X
}

func (e *EllipseROI) BoundsY() float64 {
	return e.rect.Y
}

func (e *EllipseROI) BoundsWidth() float64 {
	return e.rect.W
}

func (e *EllipseROI) BoundsHeight() float64 {
	return e.rect.H
}

func (e *EllipseROI) CentroidX() float64 {
	return e.rect.X + e.rect.W/2
}

func (e *EllipseROI) CentroidY() float64 {
	return e.rect.Y + e.rect.H/2
}

func (e *EllipseROI) Area() float64 {
	return e.ScaledArea(1, 1)
}

func (e *EllipseROI) ScaledArea(pixelWidth float64, pixelHeight float64) float64 {
	return math.Pi * (e.rect.W * pixelWidth / 2) * (e.rect.H * pixelHeight / 2)
}

// Length - the perimeter, using Ramanujan's approximation (exact closed
// form doesn't exist for an ellipse)
func (e *EllipseROI) Length() float64 {
	return e.ScaledLength(1, 1)
}

func (e *EllipseROI) ScaledLength(pixelWidth float64, pixelHeight float64) float64 {
	// A degenerate ellipse has no perimeter
	if e.IsEmpty() {
		return 0
	}
	a := e.rect.W * pixelWidth / 2
	b := e.rect.H * pixelHeight / 2
	return math.Pi * (3*(a+b) - math.Sqrt((3*a+b)*(a+3*b)))
}

func (e *EllipseROI) NumPoints() int {
	return 4
}

// AllPoints - the 4 quadrant extrema (top, right, bottom, left)
func (e *EllipseROI) AllPoints() []geom.Point2 {
	cx, cy := e.CentroidX(), e.CentroidY()
	return []geom.Point2{
		{X: cx, Y: e.rect.Y},
		{X: e.rect.MaxX(), Y: cy},
		{X: cx, Y: e.rect.MaxY()},
		{X: e.rect.X, Y: cy},
	}
}

func (e *EllipseROI) IsEmpty() bool {
	return e.rect.W == 0 || e.rect.H == 0
}

func (e *EllipseROI) Contains(x float64, y float64) bool {
	if e.IsEmpty() {
		return false
	}
	// Normalised ellipse equation
	nx := (x - e.CentroidX()) / (e.rect.W / 2)
	ny := (y - e.CentroidY()) / (e.rect.H / 2)
	return nx*nx+ny*ny <= 1
}

func (e *EllipseROI) Intersects(x float64, y float64, width float64, height float64) bool {
	if !intersectsBounds(e, x, y, width, height) {
		return false
	}
	if e.IsEmpty() {
		return false
	}

	// Normalise so the ellipse becomes the unit circle. The rectangle stays
	// axis-aligned under per-axis scaling, so clamping the circle centre
	// into it gives the nearest rectangle point and the test is exact.
	a := e.rect.W / 2
	b := e.rect.H / 2
	cx, cy := e.CentroidX(), e.CentroidY()

	nearX := math.Max(x, math.Min(cx, x+width))
	nearY := math.Max(y, math.Min(cy, y+height))

	nx := (nearX - cx) / a
	ny := (nearY - cy) / b
	return nx*nx+ny*ny <= 1
}

func (e *EllipseROI) Translate(dx float64, dy float64) ROI {
	if dx == 0 && dy == 0 {
		return e
	}
	return makeEllipse(e.rect.X+dx, e.rect.Y+dy, e.rect.W, e.rect.H, e.plane)
}

func (e *EllipseROI) Scale(scaleX float64, scaleY float64, originX float64, originY float64) ROI {
	return makeEllipse(
		scaleOrdinate(e.rect.X, scaleX, originX),
		scaleOrdinate(e.rect.Y, scaleY, originY),
		e.rect.W*scaleX,
		e.rect.H*scaleY,
		e.plane,
	)
}

func (e *EllipseROI) UpdatePlane(plane ImagePlane) ROI {
	return makeEllipse(e.rect.X, e.rect.Y, e.rect.W, e.rect.H, plane)
}

func (e *EllipseROI) Duplicate() ROI {
	return makeEllipse(e.rect.X, e.rect.Y, e.rect.W, e.rect.H, e.plane)
}

// ConvexHull - an ellipse is convex, returns itself
func (e *EllipseROI) ConvexHull() ROI {
	return e
}

func (e *EllipseROI) RequestsPixelSnapping() bool {
	return true
}
