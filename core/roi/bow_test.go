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
	"testing"

	"github.com/microvis/core/core/geom"
)

const floatTolerance = 1e-9

func almostEqual(a float64, b float64) bool {
	return math.Abs(a-b) < floatTolerance
}

func mustMakeBow(t *testing.T, headX, headY, tailX, tailY float64, plane ImagePlane) *BowROI {
	t.Helper()
	bow, err := NewBow(headX, headY, tailX, tailY, plane)
	if err != nil {
		t.Fatalf("NewBow failed: %v", err)
	}
	return bow
}

func Test_bowBasics(t *testing.T) {
	plane := PlaneWithChannel(1, 0, 0)
	bow := mustMakeBow(t, 10, 20, 30, 40, plane)

	if bow.RoiName() != "Bow" {
		t.Errorf("RoiName: %v", bow.RoiName())
	}
	if bow.RoiType() != RoiTypeLine {
		t.Errorf("RoiType: %v", bow.RoiType())
	}
	if bow.Plane() != plane {
		t.Errorf("Plane: %v", bow.Plane())
	}
	if bow.NumPoints() != 2 {
		t.Errorf("NumPoints: %v", bow.NumPoints())
	}
	if bow.RequestsPixelSnapping() {
		t.Errorf("bow should not request pixel snapping")
	}

	// Length is the chord, area is always zero
	if !almostEqual(bow.Length(), math.Hypot(20, 20)) {
		t.Errorf("Length: %v", bow.Length())
	}
	if bow.Area() != 0 || bow.ScaledArea(2, 3) != 0 {
		t.Errorf("bow must have zero area")
	}

	// Scaled length applies pixel sizes per axis
	if !almostEqual(bow.ScaledLength(2, 1), math.Hypot(40, 20)) {
		t.Errorf("ScaledLength: %v", bow.ScaledLength(2, 1))
	}

	// Centroid is the anchor midpoint
	if !almostEqual(bow.CentroidX(), 20) || !almostEqual(bow.CentroidY(), 30) {
		t.Errorf("Centroid: %v, %v", bow.CentroidX(), bow.CentroidY())
	}

	// AllPoints returns the 2 defining anchors, never the sampled arc
	points := bow.AllPoints()
	if len(points) != 2 || points[0].X != 10 || points[0].Y != 20 || points[1].X != 30 || points[1].Y != 40 {
		t.Errorf("AllPoints: %v", points)
	}
}

func Test_bowBoundsTightness(t *testing.T) {
	bow := mustMakeBow(t, 30, 20, 10, 40, DefaultPlane())

	if bow.BoundsX() != 10 || bow.BoundsY() != 20 || bow.BoundsWidth() != 20 || bow.BoundsHeight() != 20 {
		t.Errorf("bounds: %v, %v, %v, %v", bow.BoundsX(), bow.BoundsY(), bow.BoundsWidth(), bow.BoundsHeight())
	}
}

func Test_bowEmptiness(t *testing.T) {
	if !mustMakeBow(t, 5, 5, 5, 5, DefaultPlane()).IsEmpty() {
		t.Errorf("coincident anchors must be empty")
	}
	if mustMakeBow(t, 5, 5, 5, 6, DefaultPlane()).IsEmpty() {
		t.Errorf("distinct anchors must not be empty")
	}
}

func Test_bowTranslateIdentity(t *testing.T) {
	bow := mustMakeBow(t, 10, 20, 30, 40, DefaultPlane())

	// Zero translation returns the same instance, no allocation
	moved := bow.Translate(0, 0)
	if moved != ROI(bow) {
		t.Errorf("Translate(0,0) must return the receiver")
	}
}

func Test_bowTranslateComposability(t *testing.T) {
	bow := mustMakeBow(t, 10, 20, 30, 40, DefaultPlane())

	twice := bow.Translate(1.5, -2).Translate(3, 0.25).(*BowROI)
	once := bow.Translate(4.5, -1.75).(*BowROI)

	if !almostEqual(twice.HeadX(), once.HeadX()) || !almostEqual(twice.HeadY(), once.HeadY()) ||
		!almostEqual(twice.TailX(), once.TailX()) || !almostEqual(twice.TailY(), once.TailY()) {
		t.Errorf("translate composition mismatch: %+v vs %+v", twice.AllPoints(), once.AllPoints())
	}

	// The original is untouched
	if bow.HeadX() != 10 || bow.TailY() != 40 {
		t.Errorf("translate must not mutate the receiver")
	}
}

func Test_bowScale(t *testing.T) {
	bow := mustMakeBow(t, 0, 0, 10, 0, DefaultPlane())

	scaled := bow.Scale(2, 1, 0, 0).(*BowROI)
	if scaled.TailX() != 20 || scaled.TailY() != 0 || scaled.HeadX() != 0 {
		t.Errorf("scale: head (%v, %v), tail (%v, %v)", scaled.HeadX(), scaled.HeadY(), scaled.TailX(), scaled.TailY())
	}
	if !almostEqual(scaled.Length(), 20) {
		t.Errorf("scaled length: %v", scaled.Length())
	}

	// Scaling about a non-zero origin
	offOrigin := bow.Scale(2, 2, 5, 5).(*BowROI)
	if offOrigin.HeadX() != -5 || offOrigin.HeadY() != -5 || offOrigin.TailX() != 15 || offOrigin.TailY() != -5 {
		t.Errorf("off-origin scale: %+v", offOrigin.AllPoints())
	}
}

func Test_bowUpdatePlaneAndDuplicate(t *testing.T) {
	bow := mustMakeBow(t, 10, 20, 30, 40, PlaneWithChannel(1, 2, 3))

	other := PlaneWithChannel(2, 5, 7)
	updated := bow.UpdatePlane(other).(*BowROI)
	if updated == bow {
		t.Errorf("UpdatePlane must return a new instance")
	}
	if updated.Plane() != other {
		t.Errorf("UpdatePlane plane: %v", updated.Plane())
	}
	if updated.HeadX() != 10 || updated.TailY() != 40 {
		t.Errorf("UpdatePlane must not change geometry")
	}

	dup := bow.Duplicate().(*BowROI)
	if dup == bow {
		t.Errorf("Duplicate must return a new instance")
	}
	if dup.HeadX() != bow.HeadX() || dup.TailY() != bow.TailY() || dup.Plane() != bow.Plane() {
		t.Errorf("Duplicate must be equivalent")
	}
}

func Test_bowComputePoints(t *testing.T) {
	bow := mustMakeBow(t, 10, 20, 30, 40, DefaultPlane())
	points := bow.ComputePoints()

	// 2 arcs of N+1 points each, plus the tail pivot
	if len(points) != 23 {
		t.Fatalf("expected 23 arc points, got %v", len(points))
	}

	length := bow.Length()
	tailX, tailY := bow.TailX(), bow.TailY()

	for i, pt := range points {
		if i == 11 {
			// The pivot is the tail itself
			if pt.X != tailX || pt.Y != tailY {
				t.Errorf("point 11 should be the tail, got %v", pt)
			}
			continue
		}
		// Every arc point is at radius |head-tail| from the tail
		dist := math.Hypot(pt.X-tailX, pt.Y-tailY)
		if !almostEqual(dist, length) {
			t.Errorf("point %v radius %v, want %v", i, dist, length)
		}
	}

	// Both arcs meet the baseline at the head: the last lower arc sample and
	// the first upper arc sample both land on it
	for _, i := range []int{10, 12} {
		if !almostEqual(points[i].X, bow.HeadX()) || !almostEqual(points[i].Y, bow.HeadY()) {
			t.Errorf("point %v should be the head, got %v", i, points[i])
		}
	}

	// Repeated calls return the cached result unchanged
	again := bow.ComputePoints()
	if len(again) != len(points) || again[0] != points[0] || again[22] != points[22] {
		t.Errorf("repeated ComputePoints differs")
	}
}

func Test_bowComputePointsMutationSafe(t *testing.T) {
	bow := mustMakeBow(t, 10, 20, 30, 40, DefaultPlane())

	first := bow.ComputePoints()
	want := first[0]

	// A caller scribbling on its result must not corrupt later calls
	first[0] = geom.Point2{X: -999, Y: -999}

	second := bow.ComputePoints()
	if second[0] != want {
		t.Errorf("mutation of a returned slice leaked into the cache: %v", second[0])
	}
}

func Test_bowContainsAlwaysFalse(t *testing.T) {
	bow := mustMakeBow(t, 0, 0, 10, 10, DefaultPlane())

	// No interior anywhere, not even on the anchors or the chord
	for _, pt := range [][2]float64{{0, 0}, {10, 10}, {5, 5}, {7, 3}} {
		if bow.Contains(pt[0], pt[1]) {
			t.Errorf("Contains(%v, %v) should be false", pt[0], pt[1])
		}
	}
}

func Test_bowIntersectsUsesChord(t *testing.T) {
	bow := mustMakeBow(t, 0, 0, 10, 10, DefaultPlane())

	// Rectangle crossing the chord (the diagonal y == x)
	if !bow.Intersects(4, 4, 2, 2) {
		t.Errorf("rectangle on the chord should intersect")
	}

	// Rectangle touching only the chord end point
	if !bow.Intersects(-2, -2, 2, 2) {
		t.Errorf("rectangle touching the head should intersect")
	}

	// Inside the bounds but clear of the chord
	if bow.Intersects(7, 1, 1, 1) {
		t.Errorf("rectangle off the chord should not intersect")
	}

	// This rectangle overlaps the RENDERED arc (the lower fan passes through
	// roughly (5, -3.2)) but misses the chord and the bounds. The chord is an
	// accepted approximation of the arc, so this reports no intersection.
	if bow.Intersects(4.5, -3.5, 1, 1) {
		t.Errorf("arc-only overlap is expected to report no intersection")
	}
}

func Test_bowConvexHullIsSelf(t *testing.T) {
	bow := mustMakeBow(t, 0, 0, 10, 10, DefaultPlane())
	if bow.ConvexHull() != ROI(bow) {
		t.Errorf("bow convex hull should be itself")
	}
}

func Test_bowFactoryRejectsNonFinite(t *testing.T) {
	if _, err := NewBow(math.NaN(), 0, 10, 10, DefaultPlane()); err == nil {
		t.Errorf("NaN head must be rejected")
	}
	if _, err := NewBow(0, 0, math.Inf(1), 10, DefaultPlane()); err == nil {
		t.Errorf("infinite tail must be rejected")
	}
}

func Test_bowComputePointsConcurrent(t *testing.T) {
	bow := mustMakeBow(t, 3, 4, 20, 6, DefaultPlane())

	// Racing first computations must agree - run a few goroutines and
	// compare what each saw
	results := make(chan float64, 8)
	for i := 0; i < 8; i++ {
		go func() {
			points := bow.ComputePoints()
			results <- points[0].X + points[22].Y
		}()
	}

	first := <-results
	for i := 1; i < 8; i++ {
		if got := <-results; got != first {
			t.Errorf("concurrent ComputePoints diverged: %v vs %v", got, first)
		}
	}
}
