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
	"sync/atomic"

	"github.com/microvis/core/core/geom"
)

// BowROI - a two-anchor annotation shape. The head and tail anchors define
// a straight baseline, and the rendered shape is a bow/fan: two arcs of
// radius |head-tail| centred at the tail, meeting at the tail, together
// spanning 90 degrees centred on the baseline direction. The arc is fully
// derived from the two anchors at query time, so transforms only need to
// move the anchors and the arc re-derives.
//
// NOTE: length reporting, hit-testing and the convex hull all use the
// straight head-tail chord, NOT the rendered arc. See the method comments,
// this is intended behaviour.
type BowROI struct {
	headX, headY float64
	tailX, tailY float64
	plane        ImagePlane

	// Lazily computed arc points. Two goroutines may race to compute this,
	// both arrive at the same value so last-write-wins is harmless.
	arcPoints atomic.Pointer[[]geom.Point2]
}

// Arc sampling constants: total span is a quarter turn (so the half-span
// either side of the baseline is 45 degrees), sampled at 10 segments per
// half.
const (
	bowHalfSpanRadians = math.Pi / 2 / 2
	bowArcSegments     = 10
)

// makeBow - internal constructor, does NOT validate coordinates. Callers
// are the validating factory and the deserialisation proxy.
func makeBow(headX float64, headY float64, tailX float64, tailY float64, plane ImagePlane) *BowROI {
	return &BowROI{headX: headX, headY: headY, tailX: tailX, tailY: tailY, plane: plane}
}

func (b *BowROI) RoiName() string {
	return "Bow"
}

func (b *BowROI) RoiType() RoiType {
	return RoiTypeLine
}

func (b *BowROI) Plane() ImagePlane {
	return b.plane
}

func (b *BowROI) HeadX() float64 {
	return b.headX
}

func (b *BowROI) HeadY() float64 {
	return b.headY
}

func (b *BowROI) TailX() float64 {
	return b.tailX
}

func (b *BowROI) TailY() float64 {
	return b.tailY
}

// Bounds are the tight box around the two anchors. The rendered arc can
// bulge outside this box, bounds deliberately track the defining points.
func (b *BowROI) BoundsX() float64 {
	return math.Min(b.headX, b.tailX)
}

func (b *BowROI) BoundsY() float64 {
	return math.Min(b.headY, b.tailY)
}

func (b *BowROI) BoundsWidth() float64 {
	return math.Abs(b.headX - b.tailX)
}

func (b *BowROI) BoundsHeight() float64 {
	return math.Abs(b.headY - b.tailY)
}

// CentroidX - midpoint of the anchors, a cheap approximation rather than
// the true centroid of the arc
func (b *BowROI) CentroidX() float64 {
	return b.headX/2 + b.tailX/2
}

func (b *BowROI) CentroidY() float64 {
	return b.headY/2 + b.tailY/2
}

// Area - a bow is a LINE type ROI with no interior, despite the fan shape
// it renders as
func (b *BowROI) Area() float64 {
	return 0
}

func (b *BowROI) ScaledArea(pixelWidth float64, pixelHeight float64) float64 {
	return 0
}

// Length - the head-tail chord distance, not the arc length
func (b *BowROI) Length() float64 {
	return b.ScaledLength(1, 1)
}

func (b *BowROI) ScaledLength(pixelWidth float64, pixelHeight float64) float64 {
	dx := (b.headX - b.tailX) * pixelWidth
	dy := (b.headY - b.tailY) * pixelHeight
	return math.Hypot(dx, dy)
}

func (b *BowROI) NumPoints() int {
	return 2
}

// AllPoints - just the two anchors, never the sampled arc
func (b *BowROI) AllPoints() []geom.Point2 {
	return []geom.Point2{
		{X: b.headX, Y: b.headY},
		{X: b.tailX, Y: b.tailY},
	}
}

func (b *BowROI) IsEmpty() bool {
	return b.headX == b.tailX && b.headY == b.tailY
}

// Contains - always false, a bow has no interior
func (b *BowROI) Contains(x float64, y float64) bool {
	return false
}

// Intersects - bounding box rejection, then an exact test against the
// straight head-tail segment. The chord stands in for the rendered arc
// here: a rectangle crossing only the arc reports no intersection.
func (b *BowROI) Intersects(x float64, y float64, width float64, height float64) bool {
	if !intersectsBounds(b, x, y, width, height) {
		return false
	}
	rect := geom.MakeRect(x, y, width, height)
	return rect.IntersectsSegment(
		geom.Point2{X: b.headX, Y: b.headY},
		geom.Point2{X: b.tailX, Y: b.tailY},
	)
}

func (b *BowROI) Translate(dx float64, dy float64) ROI {
	if dx == 0 && dy == 0 {
		return b
	}
	return makeBow(b.headX+dx, b.headY+dy, b.tailX+dx, b.tailY+dy, b.plane)
}

func (b *BowROI) Scale(scaleX float64, scaleY float64, originX float64, originY float64) ROI {
	return makeBow(
		scaleOrdinate(b.headX, scaleX, originX),
		scaleOrdinate(b.headY, scaleY, originY),
		scaleOrdinate(b.tailX, scaleX, originX),
		scaleOrdinate(b.tailY, scaleY, originY),
		b.plane,
	)
}

func (b *BowROI) UpdatePlane(plane ImagePlane) ROI {
	return makeBow(b.headX, b.headY, b.tailX, b.tailY, plane)
}

func (b *BowROI) Duplicate() ROI {
	return makeBow(b.headX, b.headY, b.tailX, b.tailY, b.plane)
}

// ConvexHull - returns itself. For hit-testing purposes the bow is treated
// as already convex even though the rendered fan outline isn't strictly a
// convex polygon.
func (b *BowROI) ConvexHull() ROI {
	return b
}

// RequestsPixelSnapping - freehand arc anchors shouldn't snap to pixels
func (b *BowROI) RequestsPixelSnapping() bool {
	return false
}

// ComputePoints - the polyline the viewer renders. Sampled as:
// lower arc from (baseline angle - half-span) up to the baseline angle,
// then the tail pivot, then the upper arc from the baseline angle up to
// (baseline angle + half-span). Each arc contributes bowArcSegments+1
// points of radius |head-tail| centred at the tail, so with the pivot the
// result always has 2*(bowArcSegments+1)+1 points.
// Callers get a fresh slice each time, mutating it can't touch the cache.
func (b *BowROI) ComputePoints() []geom.Point2 {
	if cached := b.arcPoints.Load(); cached != nil {
		return copyPoints(*cached)
	}

	dx := b.headX - b.tailX
	dy := b.headY - b.tailY
	angle := math.Atan2(dy, dx)
	length := math.Hypot(dy, dx)

	unit := bowHalfSpanRadians / bowArcSegments

	points := make([]geom.Point2, 0, 2*(bowArcSegments+1)+1)

	// Lower half arc
	for p := 0; p < bowArcSegments+1; p++ {
		dt := angle - bowHalfSpanRadians + unit*float64(p)
		points = append(points, geom.Point2{
			X: math.Cos(dt)*length + b.tailX,
			Y: math.Sin(dt)*length + b.tailY,
		})
	}

	// The tail pivot closes the lower arc
	points = append(points, geom.Point2{X: b.tailX, Y: b.tailY})

	// Upper half arc
	for p := 0; p < bowArcSegments+1; p++ {
		dt := angle + unit*float64(p)
		points = append(points, geom.Point2{
			X: math.Cos(dt)*length + b.tailX,
			Y: math.Sin(dt)*length + b.tailY,
		})
	}

	b.arcPoints.Store(&points)
	return copyPoints(points)
}

func copyPoints(points []geom.Point2) []geom.Point2 {
	out := make([]geom.Point2, len(points))
	copy(out, points)
	return out
}
