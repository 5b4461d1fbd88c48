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

package geom

// Rect - axis-aligned rectangle, X/Y is the top-left corner in image space
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

func MakeRect(x float64, y float64, w float64, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

func (r Rect) MaxX() float64 {
	return r.X + r.W
}

func (r Rect) MaxY() float64 {
	return r.Y + r.H
}

// Contains - closed on the min edges, open on the max edges, so adjacent
// rectangles don't both claim their shared edge
func (r Rect) Contains(x float64, y float64) bool {
	return x >= r.X && x < r.MaxX() && y >= r.Y && y < r.MaxY()
}

// ContainsClosed - closed on all edges. Degenerate (zero width/height)
// rectangles still contain points lying on them, which is what bounding
// box rejection tests need for line-like shapes.
func (r Rect) ContainsClosed(x float64, y float64) bool {
	return x >= r.X && x <= r.MaxX() && y >= r.Y && y <= r.MaxY()
}

// Intersects - true if the two CLOSED rectangles share at least one point.
// Zero-extent rectangles (bounds of a horizontal/vertical line) intersect
// anything overlapping the degenerate edge.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.MaxX() && other.X <= r.MaxX() &&
		r.Y <= other.MaxY() && other.Y <= r.MaxY()
}

// IntersectsSegment - true if the closed rectangle touches the line segment a-b
func (r Rect) IntersectsSegment(a Point2, b Point2) bool {
	if r.ContainsClosed(a.X, a.Y) || r.ContainsClosed(b.X, b.Y) {
		return true
	}

	// Neither end point is inside, so they only intersect if the segment
	// crosses one of the rectangle edges
	corners := [4]Point2{
		{X: r.X, Y: r.Y},
		{X: r.MaxX(), Y: r.Y},
		{X: r.MaxX(), Y: r.MaxY()},
		{X: r.X, Y: r.MaxY()},
	}

	for i := 0; i < 4; i++ {
		if SegmentsIntersect(a, b, corners[i], corners[(i+1)%4]) {
			return true
		}
	}

	return false
}

// SegmentsIntersect - segment p1-p2 vs segment p3-p4, touching counts
func SegmentsIntersect(p1 Point2, p2 Point2, p3 Point2, p4 Point2) bool {
	d1 := cross(p3, p4, p1)
	d2 := cross(p3, p4, p2)
	d3 := cross(p1, p2, p3)
	d4 := cross(p1, p2, p4)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	// Collinear cases - a point of one segment lies on the other
	if d1 == 0 && onSegment(p3, p4, p1) {
		return true
	}
	if d2 == 0 && onSegment(p3, p4, p2) {
		return true
	}
	if d3 == 0 && onSegment(p1, p2, p3) {
		return true
	}
	if d4 == 0 && onSegment(p1, p2, p4) {
		return true
	}

	return false
}

// cross - z component of (b-a) x (p-a)
func cross(a Point2, b Point2, p Point2) float64 {
	return (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
}

// onSegment - assumes p is already known to be collinear with a-b
func onSegment(a Point2, b Point2, p Point2) bool {
	return min(a.X, b.X) <= p.X && p.X <= max(a.X, b.X) &&
		min(a.Y, b.Y) <= p.Y && p.Y <= max(a.Y, b.Y)
}

func min(a float64, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func max(a float64, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
