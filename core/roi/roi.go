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

// The region-of-interest geometry model. Every ROI variant is an immutable
// value object bound to one ImagePlane: all transform operations return a
// new instance and read operations are pure, so instances can be shared
// between goroutines without synchronisation. Variants are reconstructed
// from storage only through the serialisation proxies in serialise.go.
package roi

import "github.com/microvis/core/core/geom"

// RoiType - broad classification of a ROI variant
type RoiType int

const (
	// RoiTypeArea - shapes with an interior (rectangle, ellipse, polygon)
	RoiTypeArea RoiType = iota

	// RoiTypeLine - shapes with length but no interior (line, bow)
	RoiTypeLine

	// RoiTypePoint - point collections, no length or interior
	RoiTypePoint
)

var roiTypeName = map[RoiType]string{
	RoiTypeArea:  "AREA",
	RoiTypeLine:  "LINE",
	RoiTypePoint: "POINT",
}

func (t RoiType) String() string {
	if name, ok := roiTypeName[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// ROI - the capability contract every shape variant implements. Generic
// code (hit-testing, measurement, object tree handling) works against this
// without knowing the concrete variant.
//
// Bounds are always the tightest axis-aligned box containing AllPoints().
// Area operations return 0 for non-area variants, length operations return
// 0 for non-line variants. Degenerate (zero extent) ROIs report
// IsEmpty() == true.
type ROI interface {
	// RoiName - human readable variant name, eg "Bow"
	RoiName() string
	RoiType() RoiType

	// Plane - which image plane this ROI belongs to
	Plane() ImagePlane

	// Bounding box in image pixel coordinates at full resolution
	BoundsX() float64
	BoundsY() float64
	BoundsWidth() float64
	BoundsHeight() float64

	CentroidX() float64
	CentroidY() float64

	Area() float64
	ScaledArea(pixelWidth float64, pixelHeight float64) float64
	Length() float64
	ScaledLength(pixelWidth float64, pixelHeight float64) float64

	// NumPoints - how many defining control points the variant has
	NumPoints() int

	// AllPoints - the DEFINING control points, not a sampled outline
	AllPoints() []geom.Point2

	IsEmpty() bool

	// Contains - point-in-shape test. Always false for variants with no
	// interior, even on their outline.
	Contains(x float64, y float64) bool

	// Intersects - rectangle intersection test. Implementations reject via
	// the bounding box before any exact geometric test.
	Intersects(x float64, y float64, width float64, height float64) bool

	// Translate - returns a shifted copy. Returns the receiver unchanged
	// when dx and dy are both zero.
	Translate(dx float64, dy float64) ROI

	// Scale - returns a copy with every ordinate transformed as
	// origin + (v - origin) * scale, per axis
	Scale(scaleX float64, scaleY float64, originX float64, originY float64) ROI

	// UpdatePlane - returns a copy bound to another plane, geometry unchanged
	UpdatePlane(plane ImagePlane) ROI

	// Duplicate - returns an equivalent independent copy
	Duplicate() ROI

	// ConvexHull - convex hull of the shape. Variants treated as already
	// convex return themselves.
	ConvexHull() ROI

	// RequestsPixelSnapping - whether interactive drawing tools should snap
	// input coordinates to pixel boundaries for this variant. The core never
	// snaps anything itself, it only declares the preference.
	RequestsPixelSnapping() bool
}
