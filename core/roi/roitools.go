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
	"fmt"
	"math"
	"sort"

	"github.com/microvis/core/core/geom"
)

// Shared geometry helpers for the ROI variants. Composition over a base
// class hierarchy: variants call these rather than inheriting them.

// scaleOrdinate - one ordinate scaled about an origin
func scaleOrdinate(v float64, scale float64, origin float64) float64 {
	return origin + (v-origin)*scale
}

// intersectsBounds - the cheap reject test every Intersects implementation
// runs before exact geometry
func intersectsBounds(r ROI, x float64, y float64, width float64, height float64) bool {
	bounds := geom.MakeRect(r.BoundsX(), r.BoundsY(), r.BoundsWidth(), r.BoundsHeight())
	return bounds.Intersects(geom.MakeRect(x, y, width, height))
}

// boundsOf - tightest axis-aligned box containing all given points
func boundsOf(points []geom.Point2) geom.Rect {
	if len(points) == 0 {
		return geom.Rect{}
	}

	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY

	for _, pt := range points[1:] {
		minX = math.Min(minX, pt.X)
		minY = math.Min(minY, pt.Y)
		maxX = math.Max(maxX, pt.X)
		maxY = math.Max(maxY, pt.Y)
	}

	return geom.MakeRect(minX, minY, maxX-minX, maxY-minY)
}

// translatePoints - every point shifted by (dx, dy)
func translatePoints(points []geom.Point2, dx float64, dy float64) []geom.Point2 {
	result := make([]geom.Point2, len(points))
	for i, pt := range points {
		result[i] = pt.Translated(dx, dy)
	}
	return result
}

// scalePoints - every point scaled about (originX, originY)
func scalePoints(points []geom.Point2, scaleX float64, scaleY float64, originX float64, originY float64) []geom.Point2 {
	result := make([]geom.Point2, len(points))
	for i, pt := range points {
		result[i] = geom.Point2{
			X: scaleOrdinate(pt.X, scaleX, originX),
			Y: scaleOrdinate(pt.Y, scaleY, originY),
		}
	}
	return result
}

// checkFinitePoints - factories call this so no ROI with NaN/Inf ordinates
// can escape into the object graph. The only non-finite construction stage
// allowed anywhere is inside the deserialisation proxy path.
func checkFinitePoints(points ...geom.Point2) error {
	for _, pt := range points {
		if !pt.IsFinite() {
			return fmt.Errorf("ROI coordinates must be finite, got (%v, %v)", pt.X, pt.Y)
		}
	}
	return nil
}

// ConvexHullOf - convex hull of a point set via the monotone chain
// algorithm. Returns hull vertices in counter-clockwise order (image
// coordinates, y down) without repeating the first vertex. Collinear
// points along hull edges are dropped. Degenerate inputs (< 3 distinct
// points) are returned as-is.
func ConvexHullOf(points []geom.Point2) []geom.Point2 {
	if len(points) < 3 {
		result := make([]geom.Point2, len(points))
		copy(result, points)
		return result
	}

	sorted := make([]geom.Point2, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].X != sorted[j].X {
			return sorted[i].X < sorted[j].X
		}
		return sorted[i].Y < sorted[j].Y
	})

	hullCross := func(o, a, b geom.Point2) float64 {
		return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
	}

	// Lower hull
	var lower []geom.Point2
	for _, pt := range sorted {
		for len(lower) >= 2 && hullCross(lower[len(lower)-2], lower[len(lower)-1], pt) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, pt)
	}

	// Upper hull
	var upper []geom.Point2
	for i := len(sorted) - 1; i >= 0; i-- {
		pt := sorted[i]
		for len(upper) >= 2 && hullCross(upper[len(upper)-2], upper[len(upper)-1], pt) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, pt)
	}

	// Each list ends with the first point of the other, drop those
	hull := append(lower[:len(lower)-1], upper[:len(upper)-1]...)

	if len(hull) < 3 {
		// All input points were collinear
		return hull
	}
	return hull
}
