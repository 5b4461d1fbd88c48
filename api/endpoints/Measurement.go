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

package endpoints

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/microvis/core/api/handlers"
	"github.com/microvis/core/api/permission"
	apiRouter "github.com/microvis/core/api/router"
	"github.com/microvis/core/core/errorwithstatus"
	"github.com/microvis/core/core/geom"
	"github.com/microvis/core/core/roi"
)

////////////////////////////////////////////////////////////////////////////////////////////////////////////
// Measurement - geometry queries on a shape sent in the request. Nothing
// here touches storage, the shape rides in as its proxy envelope and
// answers come straight back.

const measurementPathPrefix = "measurement"

type measureResponse struct {
	RoiType  string         `json:"roiType"`
	Kind     string         `json:"kind"`
	Plane    roi.ImagePlane `json:"plane"`
	BoundsX  float64        `json:"boundsX"`
	BoundsY  float64        `json:"boundsY"`
	BoundsW  float64        `json:"boundsW"`
	BoundsH  float64        `json:"boundsH"`
	Centroid geom.Point2    `json:"centroid"`

	Area         float64 `json:"area"`
	ScaledArea   float64 `json:"scaledArea"`
	Length       float64 `json:"length"`
	ScaledLength float64 `json:"scaledLength"`

	NumPoints int  `json:"numPoints"`
	IsEmpty   bool `json:"isEmpty"`

	// The rendered outline for shapes that have one (eg the bow arc),
	// otherwise the defining points
	Outline []geom.Point2 `json:"outline"`
}

type hitTestResponse struct {
	Hit bool `json:"hit"`
}

type transformRequest struct {
	Roi *roi.Envelope `json:"roi"`

	TranslateX float64 `json:"translateX"`
	TranslateY float64 `json:"translateY"`

	// Zero means "not scaling", a transform request never collapses a shape
	ScaleX  float64 `json:"scaleX"`
	ScaleY  float64 `json:"scaleY"`
	OriginX float64 `json:"originX"`
	OriginY float64 `json:"originY"`
}

func registerMeasurementHandler(router *apiRouter.ApiObjectRouter) {
	router.AddJSONHandler(handlers.MakeEndpointPath(measurementPathPrefix), apiRouter.MakeMethodPermission("POST", permission.PermReadAnnotation), measurementPost)
	router.AddJSONHandler(handlers.MakeEndpointPath(measurementPathPrefix+"/contains"), apiRouter.MakeMethodPermission("POST", permission.PermReadAnnotation), measurementContains)
	router.AddJSONHandler(handlers.MakeEndpointPath(measurementPathPrefix+"/intersect"), apiRouter.MakeMethodPermission("POST", permission.PermReadAnnotation), measurementIntersect)
	router.AddJSONHandler(handlers.MakeEndpointPath(measurementPathPrefix+"/transform"), apiRouter.MakeMethodPermission("POST", permission.PermReadAnnotation), measurementTransform)
}

func readShapeFromBody(params handlers.ApiHandlerParams) (roi.ROI, error) {
	var envelope roi.Envelope
	err := json.NewDecoder(params.Request.Body).Decode(&envelope)
	if err != nil {
		return nil, errorwithstatus.MakeBadRequestError(fmt.Errorf("failed to parse ROI envelope: %v", err))
	}

	shape, err := envelope.ToROI()
	if err != nil {
		return nil, errorwithstatus.MakeUnprocessableError(err)
	}
	return shape, nil
}

// Query params arrive as strings, missing ones fall back to the given value
func floatParam(params handlers.ApiHandlerParams, name string, fallback float64) (float64, error) {
	str, present := params.PathParams[name]
	if !present {
		return fallback, nil
	}

	val, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, errorwithstatus.MakeBadRequestError(fmt.Errorf("invalid %v: %v", name, str))
	}
	return val, nil
}

func requiredFloatParam(params handlers.ApiHandlerParams, name string) (float64, error) {
	str, present := params.PathParams[name]
	if !present {
		return 0, errorwithstatus.MakeBadRequestError(fmt.Errorf("missing parameter: %v", name))
	}

	val, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, errorwithstatus.MakeBadRequestError(fmt.Errorf("invalid %v: %v", name, str))
	}
	return val, nil
}

func measurementPost(params handlers.ApiHandlerParams) (interface{}, error) {
	shape, err := readShapeFromBody(params)
	if err != nil {
		return nil, err
	}

	pixelWidth, err := floatParam(params, "pixelWidth", params.Svcs.Config.DefaultPixelWidthMicrons)
	if err != nil {
		return nil, err
	}
	pixelHeight, err := floatParam(params, "pixelHeight", params.Svcs.Config.DefaultPixelHeightMicrons)
	if err != nil {
		return nil, err
	}

	outline := shape.AllPoints()
	if bow, ok := shape.(*roi.BowROI); ok {
		outline = bow.ComputePoints()
	}

	return measureResponse{
		RoiType:      shape.RoiName(),
		Kind:         shape.RoiType().String(),
		Plane:        shape.Plane(),
		BoundsX:      shape.BoundsX(),
		BoundsY:      shape.BoundsY(),
		BoundsW:      shape.BoundsWidth(),
		BoundsH:      shape.BoundsHeight(),
		Centroid:     geom.Point2{X: shape.CentroidX(), Y: shape.CentroidY()},
		Area:         shape.Area(),
		ScaledArea:   shape.ScaledArea(pixelWidth, pixelHeight),
		Length:       shape.Length(),
		ScaledLength: shape.ScaledLength(pixelWidth, pixelHeight),
		NumPoints:    shape.NumPoints(),
		IsEmpty:      shape.IsEmpty(),
		Outline:      outline,
	}, nil
}

func measurementContains(params handlers.ApiHandlerParams) (interface{}, error) {
	shape, err := readShapeFromBody(params)
	if err != nil {
		return nil, err
	}

	x, err := requiredFloatParam(params, "x")
	if err != nil {
		return nil, err
	}
	y, err := requiredFloatParam(params, "y")
	if err != nil {
		return nil, err
	}

	return hitTestResponse{Hit: shape.Contains(x, y)}, nil
}

func measurementIntersect(params handlers.ApiHandlerParams) (interface{}, error) {
	shape, err := readShapeFromBody(params)
	if err != nil {
		return nil, err
	}

	x, err := requiredFloatParam(params, "x")
	if err != nil {
		return nil, err
	}
	y, err := requiredFloatParam(params, "y")
	if err != nil {
		return nil, err
	}
	w, err := requiredFloatParam(params, "w")
	if err != nil {
		return nil, err
	}
	h, err := requiredFloatParam(params, "h")
	if err != nil {
		return nil, err
	}

	return hitTestResponse{Hit: shape.Intersects(x, y, w, h)}, nil
}

func measurementTransform(params handlers.ApiHandlerParams) (interface{}, error) {
	var request transformRequest
	err := json.NewDecoder(params.Request.Body).Decode(&request)
	if err != nil {
		return nil, errorwithstatus.MakeBadRequestError(fmt.Errorf("failed to parse transform request: %v", err))
	}
	if request.Roi == nil {
		return nil, errorwithstatus.MakeBadRequestError(errors.New("transform requires an ROI"))
	}

	shape, err := request.Roi.ToROI()
	if err != nil {
		return nil, errorwithstatus.MakeUnprocessableError(err)
	}

	shape = shape.Translate(request.TranslateX, request.TranslateY)

	if request.ScaleX != 0 || request.ScaleY != 0 {
		scaleX := request.ScaleX
		scaleY := request.ScaleY
		if scaleX == 0 {
			scaleX = 1
		}
		if scaleY == 0 {
			scaleY = 1
		}
		shape = shape.Scale(scaleX, scaleY, request.OriginX, request.OriginY)
	}

	result, err := roi.ToEnvelope(shape)
	if err != nil {
		return nil, err
	}
	return result, nil
}
