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
	"fmt"

	"github.com/microvis/core/api/handlers"
	apiRouter "github.com/microvis/core/api/router"
	"github.com/microvis/core/api/services"
)

////////////////////////////////////////////////////////////////////////////////////////////////////////////
// Getting component versions

// ComponentVersion is getting versions of stuff in API, public because it's used in integration test
type ComponentVersion struct {
	Component string `json:"component"`
	Version   string `json:"version"`
}

// ComponentVersionsGetResponse is wrapper of above
type ComponentVersionsGetResponse struct {
	Components []ComponentVersion `json:"components"`
}

func getAPIVersion() string {
	if len(services.ApiVersion) <= 0 {
		return "N/A - Local build"
	}

	ver := services.ApiVersion
	if len(services.GitHash) > 8 {
		ver += "-" + services.GitHash[0:8]
	}

	return ver
}

func registerVersionHandler(router *apiRouter.ApiObjectRouter) {
	// User goes to root of API, returns HTML
	router.AddPublicHandler("/", "GET", rootRequest)

	// User requesting version as JSON
	router.AddPublicHandler("/version", "GET", componentVersionsGet)
}

func componentVersionsGet(params handlers.ApiHandlerGenericPublicParams) error {
	result := ComponentVersionsGetResponse{
		Components: []ComponentVersion{
			{
				Component: "API",
				Version:   getAPIVersion(),
			},
		},
	}

	handlers.ToJSON(params.Writer, result)
	return nil
}

////////////////////////////////////////////////////////////////////////////////////////////////////////////
// Root request, which also shows version

func rootRequest(params handlers.ApiHandlerGenericPublicParams) error {
	params.Writer.Header().Add("Content-Type", "text/html")

	var start string = `<!DOCTYPE html>
<html lang="en"><head></head>
<body style="font-family: Arial, Helvetica, sans-serif">
<center>`
	var mid = fmt.Sprintf("<h1>MICROVIS API</h1><p>Version %s</p><p>Git Commit: %s", getAPIVersion(), services.GitHash)
	var end string = `</p>
</center>
</body></html>`

	_, err := params.Writer.Write([]byte(start + mid + end))
	return err
}
