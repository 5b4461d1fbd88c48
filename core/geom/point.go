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

// Small 2D geometry primitives shared by the ROI model. Everything here
// works in image pixel coordinates at full resolution.
package geom

import "math"

// Point2 - a 2D coordinate pair. Plain value type, copy freely.
type Point2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point2) Translated(dx float64, dy float64) Point2 {
	return Point2{X: p.X + dx, Y: p.Y + dy}
}

func (p Point2) DistanceTo(other Point2) float64 {
	return math.Hypot(other.X-p.X, other.Y-p.Y)
}

// MidPoint - written as half-sums so huge ordinates don't overflow
func MidPoint(a Point2, b Point2) Point2 {
	return Point2{X: a.X/2 + b.X/2, Y: a.Y/2 + b.Y/2}
}

// IsFinite - false for NaN or +/-Inf in either ordinate
func (p Point2) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}
