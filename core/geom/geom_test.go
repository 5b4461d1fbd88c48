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

import (
	"fmt"
	"math"
	"testing"
)

func Example_point2() {
	p := Point2{X: 3, Y: 4}

	fmt.Println(p.DistanceTo(Point2{}))
	fmt.Println(p.Translated(-3, -4))
	fmt.Println(MidPoint(Point2{X: 0, Y: 0}, Point2{X: 10, Y: 6}))
	fmt.Println(Point2{X: math.NaN(), Y: 0}.IsFinite())

	// Output:
	// 5
	// {0 0}
	// {5 3}
	// false
}

func Test_rectIntersects(t *testing.T) {
	r := MakeRect(0, 0, 10, 10)

	if !r.Intersects(MakeRect(5, 5, 10, 10)) {
		t.Errorf("overlapping rectangles")
	}
	if !r.Intersects(MakeRect(10, 0, 5, 5)) {
		t.Errorf("edge-touching rectangles intersect (closed test)")
	}
	if r.Intersects(MakeRect(11, 0, 5, 5)) {
		t.Errorf("separated rectangles")
	}

	// Degenerate zero-height rectangle, the bounds of a horizontal line
	flat := MakeRect(0, 5, 10, 0)
	if !flat.Intersects(MakeRect(2, 4, 2, 2)) {
		t.Errorf("rectangle overlapping a degenerate edge")
	}
	if flat.Intersects(MakeRect(2, 6, 2, 2)) {
		t.Errorf("rectangle below a degenerate edge")
	}
}

func Test_rectIntersectsSegment(t *testing.T) {
	r := MakeRect(0, 0, 10, 10)

	cases := []struct {
		a, b Point2
		want bool
	}{
		{Point2{X: 5, Y: 5}, Point2{X: 20, Y: 20}, true},    // one end inside
		{Point2{X: -5, Y: 5}, Point2{X: 15, Y: 5}, true},    // straight through
		{Point2{X: -5, Y: -5}, Point2{X: 15, Y: -5}, false}, // passes above
		{Point2{X: -5, Y: 5}, Point2{X: 5, Y: 15}, true},    // clips a corner region
		{Point2{X: 12, Y: 0}, Point2{X: 12, Y: 10}, false},  // parallel outside
		{Point2{X: 10, Y: -5}, Point2{X: 10, Y: 15}, true},  // along an edge
	}

	for i, c := range cases {
		if got := r.IntersectsSegment(c.a, c.b); got != c.want {
			t.Errorf("case %v: %v-%v got %v, want %v", i, c.a, c.b, got, c.want)
		}
	}
}

func Test_segmentsIntersect(t *testing.T) {
	if !SegmentsIntersect(Point2{X: 0, Y: 0}, Point2{X: 10, Y: 10}, Point2{X: 0, Y: 10}, Point2{X: 10, Y: 0}) {
		t.Errorf("crossing diagonals")
	}
	if SegmentsIntersect(Point2{X: 0, Y: 0}, Point2{X: 10, Y: 0}, Point2{X: 0, Y: 1}, Point2{X: 10, Y: 1}) {
		t.Errorf("parallel segments")
	}
	if !SegmentsIntersect(Point2{X: 0, Y: 0}, Point2{X: 10, Y: 0}, Point2{X: 5, Y: 0}, Point2{X: 5, Y: 5}) {
		t.Errorf("T junction touches")
	}
	if !SegmentsIntersect(Point2{X: 0, Y: 0}, Point2{X: 10, Y: 0}, Point2{X: 4, Y: 0}, Point2{X: 6, Y: 0}) {
		t.Errorf("collinear overlap")
	}
}
