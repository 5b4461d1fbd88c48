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
	"net/http"
	"net/http/httptest"

	"github.com/gorilla/mux"

	"github.com/microvis/core/api/config"
	"github.com/microvis/core/api/services"
	"github.com/microvis/core/core/annotation"
	"github.com/microvis/core/core/fileaccess"
	"github.com/microvis/core/core/logger"
	"github.com/microvis/core/core/settings"
	"github.com/microvis/core/core/timestamper"
)

const AnnotationBucketForUnitTest = "annotation-bucket"
const ConfigBucketForUnitTest = "config-bucket"

type MockIDGenerator struct {
	ids []string
}

func (m *MockIDGenerator) GenObjectID() string {
	if len(m.ids) > 0 {
		id := m.ids[0]
		m.ids = m.ids[1:]
		return id
	}
	return "NO_ID_DEFINED"
}

// MakeMockSvcs - builds APIServices with in-memory storage so endpoint
// tests never have to talk to mongo or S3
func MakeMockSvcs(idGen *MockIDGenerator, queuedTimeStamps []int64) services.APIServices {
	cfg := config.APIConfig{
		AnnotationBucket:          AnnotationBucketForUnitTest,
		ConfigBucket:              ConfigBucketForUnitTest,
		EnvironmentName:           "unit-test",
		LogLevel:                  logger.LogDebug,
		DefaultPixelWidthMicrons:  1,
		DefaultPixelHeightMicrons: 1,
	}

	if idGen == nil {
		idGen = &MockIDGenerator{}
	}

	ts := &timestamper.MockTimeNowStamper{QueuedTimeStamps: queuedTimeStamps}
	log := &logger.NullLogger{}

	return services.APIServices{
		Config:      cfg,
		Log:         log,
		FS:          fileaccess.MakeMemoryAccess(),
		IDGen:       idGen,
		TimeStamper: ts,
		Annotations: annotation.MakeMemStore(idGen, ts),
		Settings:    settings.MakeRegistry(log),
	}
}

func executeRequest(req *http.Request, router *mux.Router) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}
