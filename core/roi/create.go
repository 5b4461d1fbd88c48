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

	"github.com/microvis/core/core/geom"
)

// Factory functions, the ONLY construction path callers get. They validate
// that every ordinate is finite, so no half-initialised or NaN shape can
// enter the object graph.

func NewBow(headX float64, headY float64, tailX float64, tailY float64, plane ImagePlane) (*BowROI, error) {
	err := checkFinitePoints(geom.Point2{X: headX, Y: headY}, geom.Point2{X: tailX, Y: tailY})
	if err != nil {
		return nil, err
	}
	return makeBow(headX, headY, tailX, tailY, plane), nil
}

func NewLine(x1 float64, y1 float64, x2 float64, y2 float64, plane ImagePlane) (*LineROI, error) {
	err := checkFinitePoints(geom.Point2{X: x1, Y: y1}, geom.Point2{X: x2, Y: y2})
	if err != nil {
		return nil, err
	}
	return makeLine(x1, y1, x2, y2, plane), nil
}

func NewRectangle(x float64, y float64, width float64, height float64, plane ImagePlane) (*RectangleROI, error) {
	err := checkRectParams(x, y, width, height)
	if err != nil {
		return nil, err
	}
	return makeRectangle(x, y, width, height, plane), nil
}

func NewEllipse(x float64, y float64, width float64, height float64, plane ImagePlane) (*EllipseROI, error) {
	err := checkRectParams(x, y, width, height)
	if err != nil {
		return nil, err
	}
	return makeEllipse(x, y, width, height, plane), nil
}

func NewPolygon(points []geom.Point2, plane ImagePlane) (*PolygonROI, error) {
	if len(points) < 3 {
		return nil, fmt.Errorf("polygon ROI needs at least 3 points, got %v", len(points))
	}
	err := checkFinitePoints(points...)
	if err != nil {
		return nil, err
	}
	return makePolygon(points, plane), nil
}

func NewPoints(points []geom.Point2, plane ImagePlane) (*PointsROI, error) {
	err := checkFinitePoints(points...)
	if err != nil {
		return nil, err
	}
	return makePoints(points, plane), nil
}

func checkRectParams(x float64, y float64, width float64, height float64) error {
	err := checkFinitePoints(geom.Point2{X: x, Y: y}, geom.Point2{X: width, Y: height})
	if err != nil {
		return err
	}
	if width < 0 || height < 0 {
		return fmt.Errorf("ROI width/height must not be negative, got %v x %v", width, height)
	}
	return nil
}
