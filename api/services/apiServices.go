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

package services

import (
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/microvis/core/api/config"
	"github.com/microvis/core/core/annotation"
	"github.com/microvis/core/core/fileaccess"
	"github.com/microvis/core/core/idgen"
	"github.com/microvis/core/core/logger"
	"github.com/microvis/core/core/settings"
	"github.com/microvis/core/core/timestamper"
)

// NOTE: these 2 vars are set during compilation in CI build (see Makefile)
var ApiVersion string
var GitHash string

// APIServices - the services HTTP handlers get to use. Instead of a bunch
// of global variables we pass this around, and unit tests swap in mocks for
// the interfaces.
type APIServices struct {
	// Configuration read in on startup
	Config config.APIConfig

	// Default logger
	Log logger.ILogger

	// AWS session, set up on startup
	AWSSession *session.Session

	// Anything talking to S3 should use this
	S3 s3iface.S3API

	// Anything accessing files should use this
	FS fileaccess.FileAccess

	// ID generator
	IDGen idgen.IDGenerator

	// Timestamp retriever - so it can be mocked for unit tests
	TimeStamper timestamper.ITimeStamper

	// Our mongo db connection
	Mongo *mongo.Client

	// Annotation storage
	Annotations annotation.Store

	// Typed settings registry
	Settings *settings.Registry
}
