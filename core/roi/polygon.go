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

// PolygonROI - closed polygon area ROI. The vertex list is treated as
// implicitly closed (last vertex connects back to the first). The slice is
// never handed out or modified after construction.
type PolygonROI struct {
	points []geom.Point2
	bounds geom.Rect
	plane  ImagePlane
}

func makePolygon(points []geom.Point2, plane ImagePlane) *PolygonROI {
	owned := make([]geom.Point2, len(points))
	copy(owned, points)
	return &PolygonROI{points: owned, bounds: boundsOf(owned), plane: plane}
}

func (p *PolygonROI) RoiName() string {
	return "Polygon"
}

func (p *PolygonROI) RoiType() RoiType {
	return RoiTypeArea
}

func (p *PolygonROI) Plane() ImagePlane {
	return p.plane
}

func (p *PolygonROI) BoundsX() float64 {
	return p.bounds.X
}

func (p *PolygonROI) BoundsY() float64 {
	return p.bounds.Y
}

func (p *PolygonROI) BoundsWidth() float64 {
	return p.bounds.W
}

func (p *PolygonROI) BoundsHeight() float64 {
	return p.bounds.H
}

// CentroidX - mean of the vertices. Cheap, and consistent with how the
// line-like variants approximate their centroid.
func (p *PolygonROI) CentroidX() float64 {
	sum := 0.0
	for _, pt := range p.points {
		sum += pt.X
	}
	return sum / float64(len(p.points))
}

func (p *PolygonROI) CentroidY() float64 {
	sum := 0.0
	for _, pt := range p.points {
		sum += pt.Y
	}
	return sum / float64(len(p.points))
}

func (p *PolygonROI) Area() float64 {
	return p.ScaledArea(1, 1)
}

// ScaledArea - shoelace formula over the closed vertex ring
func (p *PolygonROI) ScaledArea(pixelWidth float64, pixelHeight float64) float64 {
	sum := 0.0
	n := len(p.points)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += p.points[i].X * p.points[j].Y
		sum -= p.points[j].X * p.points[i].Y
	}
	return math.Abs(sum) / 2 * pixelWidth * pixelHeight
}

func (p *PolygonROI) Length() float64 {
	return p.ScaledLength(1, 1)
}

func (p *PolygonROI) ScaledLength(pixelWidth float64, pixelHeight float64) float64 {
	sum := 0.0
	n := len(p.points)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += math.Hypot(
			(p.points[j].X-p.points[i].X)*pixelWidth,
			(p.points[j].Y-p.points[i].Y)*pixelHeight,
		)
	}
	return sum
}

func (p *PolygonROI) NumPoints() int {
	return len(p.points)
}

func (p *PolygonROI) AllPoints() []geom.Point2 {
	result := make([]geom.Point2, len(p.points))
	copy(result, p.points)
	return result
}

func (p *PolygonROI) IsEmpty() bool {
	return p.bounds.W == 0 && p.bounds.H == 0
}

// Contains - even-odd ray cast against the closed ring
func (p *PolygonROI) Contains(x float64, y float64) bool {
	inside := false
	n := len(p.points)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		pi, pj := p.points[i], p.points[j]
		if (pi.Y > y) != (pj.Y > y) &&
			x < (pj.X-pi.X)*(y-pi.Y)/(pj.Y-pi.Y)+pi.X {
			inside = !inside
		}
	}
	return inside
}

func (p *PolygonROI) Intersects(x float64, y float64, width float64, height float64) bool {
	if !intersectsBounds(p, x, y, width, height) {
		return false
	}

	rect := geom.MakeRect(x, y, width, height)

	// Rectangle entirely inside the polygon?
	if p.Contains(x, y) {
		return true
	}

	// Any polygon edge touching the rectangle? Covers vertices inside the
	// rectangle too, since such an edge endpoint is in the rectangle.
	n := len(p.points)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		if rect.IntersectsSegment(p.points[i], p.points[j]) {
			return true
		}
	}

	return false
}

func (p *PolygonROI) Translate(dx float64, dy float64) ROI {
	if dx == 0 && dy == 0 {
		return p
	}
	return makePolygon(translatePoints(p.points, dx, dy), p.plane)
}

func (p *PolygonROI) Scale(scaleX float64, scaleY float64, originX float64, originY float64) ROI {
	return makePolygon(scalePoints(p.points, scaleX, scaleY, originX, originY), p.plane)
}

func (p *PolygonROI) UpdatePlane(plane ImagePlane) ROI {
	return makePolygon(p.points, plane)
}

func (p *PolygonROI) Duplicate() ROI {
	return makePolygon(p.points, p.plane)
}

func (p *PolygonROI) ConvexHull() ROI {
	hull := ConvexHullOf(p.points)
	if len(hull) < 3 {
		return p
	}
	return makePolygon(hull, p.plane)
}

func (p *PolygonROI) RequestsPixelSnapping() bool {
	return true
}
