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
	"io"
	"strconv"

	"github.com/microvis/core/api/handlers"
	"github.com/microvis/core/api/permission"
	apiRouter "github.com/microvis/core/api/router"
	"github.com/microvis/core/core/annotation"
	"github.com/microvis/core/core/errorwithstatus"
	"github.com/microvis/core/core/roi"
)

////////////////////////////////////////////////////////////////////////////////////////////////////////////
// Annotations - saved ROIs with names/descriptions

const annotationPathPrefix = "annotation"

type annotationInput struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	ImageName   string        `json:"imageName"`
	Roi         *roi.Envelope `json:"roi"`
}

type annotationImportExportParams struct {
	Path string `json:"path"`
}

func registerAnnotationHandler(router *apiRouter.ApiObjectRouter) {
	router.AddJSONHandler(handlers.MakeEndpointPath(annotationPathPrefix), apiRouter.MakeMethodPermission("GET", permission.PermReadAnnotation), annotationList)
	router.AddJSONHandler(handlers.MakeEndpointPath(annotationPathPrefix), apiRouter.MakeMethodPermission("POST", permission.PermWriteAnnotation), annotationPost)

	router.AddJSONHandler(handlers.MakeEndpointPath(annotationPathPrefix, idIdentifier), apiRouter.MakeMethodPermission("GET", permission.PermReadAnnotation), annotationGet)
	router.AddJSONHandler(handlers.MakeEndpointPath(annotationPathPrefix, idIdentifier), apiRouter.MakeMethodPermission("PUT", permission.PermWriteAnnotation), annotationPut)
	router.AddJSONHandler(handlers.MakeEndpointPath(annotationPathPrefix, idIdentifier), apiRouter.MakeMethodPermission("DELETE", permission.PermWriteAnnotation), annotationDelete)

	router.AddJSONHandler(handlers.MakeEndpointPath(annotationPathPrefix+"/import"), apiRouter.MakeMethodPermission("POST", permission.PermWriteAnnotation), annotationImport)
	router.AddJSONHandler(handlers.MakeEndpointPath(annotationPathPrefix+"/export"), apiRouter.MakeMethodPermission("POST", permission.PermReadAnnotation), annotationExport)
}

// Store errors become HTTP statuses here: unknown IDs are 404s, shapes that
// fail the proxy integrity checks are 422s, anything else is a 500
func makeAnnotationError(err error, id string) error {
	if errors.Is(err, annotation.ErrItemNotFound) {
		return errorwithstatus.MakeNotFoundError(id)
	}

	var integrityErr *roi.IntegrityError
	if errors.As(err, &integrityErr) {
		return errorwithstatus.MakeUnprocessableError(err)
	}

	return err
}

func readAnnotationInput(body io.Reader) (annotationInput, error) {
	var input annotationInput
	err := json.NewDecoder(body).Decode(&input)
	if err != nil {
		return input, errorwithstatus.MakeBadRequestError(fmt.Errorf("failed to parse annotation: %v", err))
	}
	return input, nil
}

// Optional query params: imageName narrows to one image, c/z/t narrow to
// one image plane (unspecified plane components take their defaults)
func annotationList(params handlers.ApiHandlerParams) (interface{}, error) {
	summaries, err := params.Svcs.Annotations.List(params.Request.Context(), params.PathParams["imageName"])
	if err != nil {
		return nil, makeAnnotationError(err, "")
	}

	plane, filterByPlane, err := readPlaneFilter(params)
	if err != nil {
		return nil, err
	}
	if !filterByPlane {
		return summaries, nil
	}

	// Plane identity lives on the shape, so a plane filter has to fetch and
	// reconstruct each candidate
	filtered := []annotation.SummaryItem{}
	for _, summary := range summaries {
		item, err := params.Svcs.Annotations.Get(params.Request.Context(), summary.ID)
		if err != nil {
			return nil, makeAnnotationError(err, summary.ID)
		}

		shape, err := item.Roi.ToROI()
		if err != nil {
			return nil, makeAnnotationError(err, summary.ID)
		}

		if shape.Plane() == plane {
			filtered = append(filtered, summary)
		}
	}

	return filtered, nil
}

func readPlaneFilter(params handlers.ApiHandlerParams) (roi.ImagePlane, bool, error) {
	plane := roi.DefaultPlane()
	present := false

	for _, comp := range []struct {
		name  string
		value *int
	}{
		{"c", &plane.C},
		{"z", &plane.Z},
		{"t", &plane.T},
	} {
		str, ok := params.PathParams[comp.name]
		if !ok {
			continue
		}

		val, err := strconv.Atoi(str)
		if err != nil {
			return plane, false, errorwithstatus.MakeBadRequestError(fmt.Errorf("invalid %v: %v", comp.name, str))
		}
		*comp.value = val
		present = true
	}

	return plane, present, nil
}

func annotationGet(params handlers.ApiHandlerParams) (interface{}, error) {
	id := params.PathParams[idIdentifier]

	item, err := params.Svcs.Annotations.Get(params.Request.Context(), id)
	if err != nil {
		return nil, makeAnnotationError(err, id)
	}
	return item, nil
}

func annotationPost(params handlers.ApiHandlerParams) (interface{}, error) {
	input, err := readAnnotationInput(params.Request.Body)
	if err != nil {
		return nil, err
	}

	item := annotation.Item{
		Name:        input.Name,
		Description: input.Description,
		ImageName:   input.ImageName,
		Roi:         input.Roi,
	}

	saved, err := params.Svcs.Annotations.Create(params.Request.Context(), item)
	if err != nil {
		return nil, makeAnnotationError(err, "")
	}
	return saved, nil
}

func annotationPut(params handlers.ApiHandlerParams) (interface{}, error) {
	id := params.PathParams[idIdentifier]

	input, err := readAnnotationInput(params.Request.Body)
	if err != nil {
		return nil, err
	}

	item := annotation.Item{
		ID:          id,
		Name:        input.Name,
		Description: input.Description,
		ImageName:   input.ImageName,
		Roi:         input.Roi,
	}

	saved, err := params.Svcs.Annotations.Update(params.Request.Context(), item)
	if err != nil {
		return nil, makeAnnotationError(err, id)
	}
	return saved, nil
}

func annotationDelete(params handlers.ApiHandlerParams) (interface{}, error) {
	id := params.PathParams[idIdentifier]

	err := params.Svcs.Annotations.Delete(params.Request.Context(), id)
	if err != nil {
		return nil, makeAnnotationError(err, id)
	}

	// Return the deleted id, matches what other endpoints do
	return id, nil
}

func annotationImport(params handlers.ApiHandlerParams) (interface{}, error) {
	var importParams annotationImportExportParams
	err := json.NewDecoder(params.Request.Body).Decode(&importParams)
	if err != nil || len(importParams.Path) <= 0 {
		return nil, errorwithstatus.MakeBadRequestError(errors.New("import requires a file path"))
	}

	saved, err := annotation.ImportSet(params.Request.Context(), params.Svcs.Annotations, params.Svcs.FS, params.Svcs.Config.AnnotationBucket, importParams.Path)
	if err != nil {
		if params.Svcs.FS.IsNotFoundError(err) {
			return nil, errorwithstatus.MakeNotFoundError(importParams.Path)
		}
		return nil, makeAnnotationError(err, importParams.Path)
	}

	return saved, nil
}

func annotationExport(params handlers.ApiHandlerParams) (interface{}, error) {
	var exportParams annotationImportExportParams
	err := json.NewDecoder(params.Request.Body).Decode(&exportParams)
	if err != nil || len(exportParams.Path) <= 0 {
		return nil, errorwithstatus.MakeBadRequestError(errors.New("export requires a file path"))
	}

	count, err := annotation.ExportSet(params.Request.Context(), params.Svcs.Annotations, params.Svcs.FS, params.Svcs.Config.AnnotationBucket, exportParams.Path)
	if err != nil {
		return nil, makeAnnotationError(err, exportParams.Path)
	}

	return map[string]interface{}{"path": exportParams.Path, "count": count}, nil
}
