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

// PointsROI - a set of marker points with no length or interior
type PointsROI struct {
	points []geom.Point2
	bounds geom.Rect
	plane  ImagePlane
}

func makePoints(points []geom.Point2, plane ImagePlane) *PointsROI {
	owned := make([]geom.Point2, len(points))
	copy(owned, points)
	return &PointsROI{points: owned, bounds: boundsOf(owned), plane: plane}
}

func (p *PointsROI) RoiName() string {
	return "Points"
}

func (p *PointsROI) RoiType() RoiType {
	return RoiTypePoint
}

func (p *PointsROI) Plane() ImagePlane {
	return p.plane
}

func (p *PointsROI) BoundsX() float64 {
	return p.bounds.X
}

func (p *PointsROI) BoundsY() float64 {
	return p.bounds.Y
}

func (p *PointsROI) BoundsWidth() float64 {
	return p.bounds.W
}

func (p *PointsROI) BoundsHeight() float64 {
	return p.bounds.H
}

// Centroid of an empty point set is the origin, never NaN
func (p *PointsROI) CentroidX() float64 {
	if len(p.points) == 0 {
		return 0
	}
	sum := 0.0
	for _, pt := range p.points {
		sum += pt.X
	}
	return sum / float64(len(p.points))
}

func (p *PointsROI) CentroidY() float64 {
	if len(p.points) == 0 {
		return 0
	}
	sum := 0.0
	for _, pt := range p.points {
		sum += pt.Y
	}
	return sum / float64(len(p.points))
}

func (p *PointsROI) Area() float64 {
	return 0
}

func (p *PointsROI) ScaledArea(pixelWidth float64, pixelHeight float64) float64 {
	return 0
}

func (p *PointsROI) Length() float64 {
	return 0
}

func (p *PointsROI) ScaledLength(pixelWidth float64, pixelHeight float64) float64 {
	return 0
}

func (p *PointsROI) NumPoints() int {
	return len(p.points)
}

func (p *PointsROI) AllPoints() []geom.Point2 {
	result := make([]geom.Point2, len(p.points))
	copy(result, p.points)
	return result
}

// IsEmpty - a single point is still a usable marker, so only a point-less
// set is empty
func (p *PointsROI) IsEmpty() bool {
	return len(p.points) == 0
}

func (p *PointsROI) Contains(x float64, y float64) bool {
	return false
}

func (p *PointsROI) Intersects(x float64, y float64, width float64, height float64) bool {
	if !intersectsBounds(p, x, y, width, height) {
		return false
	}
	rect := geom.MakeRect(x, y, width, height)
	for _, pt := range p.points {
		if rect.ContainsClosed(pt.X, pt.Y) {
			return true
		}
	}
	return false
}

func (p *PointsROI) Translate(dx float64, dy float64) ROI {
	if dx == 0 && dy == 0 {
		return p
	}
	return makePoints(translatePoints(p.points, dx, dy), p.plane)
}

func (p *PointsROI) Scale(scaleX float64, scaleY float64, originX float64, originY float64) ROI {
	return makePoints(scalePoints(p.points, scaleX, scaleY, originX, originY), p.plane)
}

func (p *PointsROI) UpdatePlane(plane ImagePlane) ROI {
	return makePoints(p.points, plane)
}

func (p *PointsROI) Duplicate() ROI {
	return makePoints(p.points, p.plane)
}

func (p *PointsROI) ConvexHull() ROI {
	hull := ConvexHullOf(p.points)
	if len(hull) < 3 {
		return p
	}
	return makePolygon(hull, p.plane)
}

func (p *PointsROI) RequestsPixelSnapping() bool {
	return true
}
