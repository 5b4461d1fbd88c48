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

// LineROI - a straight segment between two end points
type LineROI struct {
	x1, y1 float64
	x2, y2 float64
	plane  ImagePlane
}

func makeLine(x1 float64, y1 float64, x2 float64, y2 float64, plane ImagePlane) *LineROI {
	return &LineROI{x1: x1, y1: y1, x2: x2, y2: y2, plane: plane}
}

func (l *LineROI) RoiName() string {
	return "Line"
}

func (l *LineROI) RoiType() RoiType {
	return RoiTypeLine
}

func (l *LineROI) Plane() ImagePlane {
	return l.plane
}

func (l *LineROI) BoundsX() float64 {
	return math.Min(l.x1, l.x2)
}

func (l *LineROI) BoundsY() float64 {
	return math.Min(l.y1, l.y2)
}

func (l *LineROI) BoundsWidth() float64 {
	return math.Abs(l.x1 - l.x2)
}

func (l *LineROI) BoundsHeight() float64 {
	return math.Abs(l.y1 - l.y2)
}

func (l *LineROI) CentroidX() float64 {
	return l.x1/2 + l.x2/2
}

func (l *LineROI) CentroidY() float64 {
	return l.y1/2 + l.y2/2
}

func (l *LineROI) Area() float64 {
	return 0
}

func (l *LineROI) ScaledArea(pixelWidth float64, pixelHeight float64) float64 {
	return 0
}

func (l *LineROI) Length() float64 {
	return l.ScaledLength(1, 1)
}

func (l *LineROI) ScaledLength(pixelWidth float64, pixelHeight float64) float64 {
	return math.Hypot((l.x2-l.x1)*pixelWidth, (l.y2-l.y1)*pixelHeight)
}

func (l *LineROI) NumPoints() int {
	return 2
}

func (l *LineROI) AllPoints() []geom.Point2 {
	return []geom.Point2{
		{X: l.x1, Y: l.y1},
		{X: l.x2, Y: l.y2},
	}
}

func (l *LineROI) IsEmpty() bool {
	return l.x1 == l.x2 && l.y1 == l.y2
}

func (l *LineROI) Contains(x float64, y float64) bool {
	return false
}

func (l *LineROI) Intersects(x float64, y float64, width float64, height float64) bool {
	if !intersectsBounds(l, x, y, width, height) {
		return false
	}
	rect := geom.MakeRect(x, y, width, height)
	return rect.IntersectsSegment(
		geom.Point2{X: l.x1, Y: l.y1},
		geom.Point2{X: l.x2, Y: l.y2},
	)
}

func (l *LineROI) Translate(dx float64, dy float64) ROI {
	if dx == 0 && dy == 0 {
		return l
	}
	return makeLine(l.x1+dx, l.y1+dy, l.x2+dx, l.y2+dy, l.plane)
}

func (l *LineROI) Scale(scaleX float64, scaleY float64, originX float64, originY float64) ROI {
	return makeLine(
		scaleOrdinate(l.x1, scaleX, originX),
		scaleOrdinate(l.y1, scaleY, originY),
		scaleOrdinate(l.x2, scaleX, originX),
		scaleOrdinate(l.y2, scaleY, originY),
		l.plane,
	)
}

func (l *LineROI) UpdatePlane(plane ImagePlane) ROI {
	return makeLine(l.x1, l.y1, l.x2, l.y2, plane)
}

func (l *LineROI) Duplicate() ROI {
	return makeLine(l.x1, l.y1, l.x2, l.y2, l.plane)
}

func (l *LineROI) ConvexHull() ROI {
	return l
}

func (l *LineROI) RequestsPixelSnapping() bool {
	return true
}
