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

import "github.com/microvis/core/core/geom"

// RectangleROI - axis-aligned rectangular area ROI
type RectangleROI struct {
	rect  geom.Rect
	plane ImagePlane
}

// makeRectangle - normalises a flipped box (a negative Scale factor mirrors
// the shape) so the stored rect always has its origin at the min corner and
// non-negative dimensions
func makeRectangle(x float64, y float64, width float64, height float64, plane ImagePlane) *RectangleROI {
	if width < 0 {
		x += width
		width = -width
	}
	if height < 0 {
		y += height
		height = -height
	}
	return &RectangleROI{rect: geom.MakeRect(x, y, width, height), plane: plane}
}

func (r *RectangleROI) RoiName() string {
	return "Rectangle"
}

func (r *RectangleROI) RoiType() RoiType {
	return RoiTypeArea
}

func (r *RectangleROI) Plane() ImagePlane {
	return r.plane
}

func (r *RectangleROI) BoundsX() float64 {
	return r.rect.X
}

func (r *RectangleROI) BoundsY() float64 {
	return r.rect.Y
}

func (r *RectangleROI) BoundsWidth() float64 {
	return r.rect.W
}

func (r *RectangleROI) BoundsHeight() float64 {
	return r.rect.H
}

func (r *RectangleROI) CentroidX() float64 {
	return r.rect.X + r.rect.W/2
}

func (r *RectangleROI) CentroidY() float64 {
	return r.rect.Y + r.rect.H/2
}

func (r *RectangleROI) Area() float64 {
	return r.ScaledArea(1, 1)
}

func (r *RectangleROI) ScaledArea(pixelWidth float64, pixelHeight float64) float64 {
	return r.rect.W * pixelWidth * r.rect.H * pixelHeight
}

// Length - an area ROI reports its perimeter as length
func (r *RectangleROI) Length() float64 {
	return r.ScaledLength(1, 1)
}

func (r *RectangleROI) ScaledLength(pixelWidth float64, pixelHeight float64) float64 {
	// A degenerate rectangle has no perimeter, not a doubled edge
	if r.IsEmpty() {
		return 0
	}
	return 2 * (r.rect.W*pixelWidth + r.rect.H*pixelHeight)
}

func (r *RectangleROI) NumPoints() int {
	return 4
}

// AllPoints - corners in clockwise order from the top-left
func (r *RectangleROI) AllPoints() []geom.Point2 {
	return []geom.Point2{
		{X: r.rect.X, Y: r.rect.Y},
		{X: r.rect.MaxX(), Y: r.rect.Y},
		{X: r.rect.MaxX(), Y: r.rect.MaxY()},
		{X: r.rect.X, Y: r.rect.MaxY()},
	}
}

func (r *RectangleROI) IsEmpty() bool {
	return r.rect.W == 0 || r.rect.H == 0
}

func (r *RectangleROI) Contains(x float64, y float64) bool {
	return r.rect.Contains(x, y)
}

func (r *RectangleROI) Intersects(x float64, y float64, width float64, height float64) bool {
	// For a rectangle the bounds test IS the exact test
	return intersectsBounds(r, x, y, width, height)
}

func (r *RectangleROI) Translate(dx float64, dy float64) ROI {
	if dx == 0 && dy == 0 {
		return r
	}
	return makeRectangle(r.rect.X+dx, r.rect.Y+dy, r.rect.W, r.rect.H, r.plane)
}

func (r *RectangleROI) Scale(scaleX float64, scaleY float64, originX float64, originY float64) ROI {
	return makeRectangle(
		scaleOrdinate(r.rect.X, scaleX, originX),
		scaleOrdinate(r.rect.Y, scaleY, originY),
		r.rect.W*scaleX,
		r.rect.H*scaleY,
		r.plane,
	)
}

func (r *RectangleROI) UpdatePlane(plane ImagePlane) ROI {
	return makeRectangle(r.rect.X, r.rect.Y, r.rect.W, r.rect.H, plane)
}

func (r *RectangleROI) Duplicate() ROI {
	return makeRectangle(r.rect.X, r.rect.Y, r.rect.W, r.rect.H, r.plane)
}

func (r *RectangleROI) ConvexHull() ROI {
	return r
}

func (r *RectangleROI) RequestsPixelSnapping() bool {
	return true
}
