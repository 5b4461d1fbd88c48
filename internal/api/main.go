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

package main

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/gorilla/handlers"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/microvis/core/api/config"
	"github.com/microvis/core/api/endpoints"
	"github.com/microvis/core/api/services"
	"github.com/microvis/core/core/annotation"
	"github.com/microvis/core/core/awsutil"
	"github.com/microvis/core/core/fileaccess"
	"github.com/microvis/core/core/idgen"
	"github.com/microvis/core/core/logger"
	"github.com/microvis/core/core/mongoconn"
	"github.com/microvis/core/core/settings"
	"github.com/microvis/core/core/timestamper"
	"github.com/microvis/core/core/utils"
)

const settingsSavePath = "settings/api.json"

func main() {
	// Prometheus scrapes on its own port, away from the API routes
	go func() {
		http.Handle("/metrics", promhttp.Handler())
		http.ListenAndServe(":2112", nil)
	}()

	cfg := loadConfig()
	svcs := initServices(cfg)

	router := endpoints.MakeRouter(*svcs)

	printRoutePermissions(router.GetPermissions())

	logware := endpoints.LoggerMiddleware{
		APIServices: svcs,
	}
	router.Router.Use(logware.Middleware, endpoints.PrometheusMiddleware)

	svcs.Log.Infof("API version \"%v\" started...", services.ApiVersion)

	log.Fatal(
		http.ListenAndServe(":8080",
			handlers.CORS(
				handlers.AllowedHeaders([]string{"X-Requested-With", "Content-Type", "Authorization"}),
				handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "HEAD", "OPTIONS"}),
				handlers.AllowedOrigins([]string{"*"}))(router.Router)))
}

func loadConfig() config.APIConfig {
	cfg, err := config.Init()
	if err != nil {
		log.Fatalf("Something went wrong with API config. Error: %v\n", err)
	}

	// Show the config
	cfgJSON, err := json.MarshalIndent(cfg, "", utils.PrettyPrintIndentForJSON)
	if err != nil {
		log.Fatalf("Error trying to display config\n")
	}

	log.Println(string(cfgJSON))
	return cfg
}

func initServices(cfg config.APIConfig) *services.APIServices {
	// Get a session for the bucket region
	sess, err := awsutil.GetSession()
	if err != nil {
		log.Fatalf("Failed to create AWS session. Error: %v", err)
	}

	s3svc, err := awsutil.GetS3(sess)
	if err != nil {
		log.Fatalf("Failed to create AWS S3 service. Error: %v", err)
	}

	fs := fileaccess.MakeS3Access(s3svc)

	iLog := &logger.StdOutLogger{}
	iLog.SetLogLevel(cfg.LogLevel)

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.SentryEndpoint,
		Environment: cfg.EnvironmentName,
		Release:     services.ApiVersion,
	}); err != nil {
		iLog.Errorf("Sentry initialization failed: %v", err)
	}

	// Connect to mongo
	mongoClient, err := mongoconn.Connect(sess, cfg.MongoSecret, iLog)
	if err != nil {
		log.Fatal(err)
	}

	dbName := mongoconn.GetDatabaseName("microvis", cfg.EnvironmentName)
	db := mongoClient.Database(dbName)

	idGen := &idgen.IDGen{}
	ts := &timestamper.UnixTimeNowStamper{}

	reg := makeSettingsRegistry(iLog)
	if err := reg.Load(fs, cfg.ConfigBucket, settingsSavePath); err != nil {
		// Defaults still apply, the API can run without saved settings
		iLog.Errorf("Failed to load saved settings: %v", err)
	}

	return &services.APIServices{
		Config:      cfg,
		Log:         iLog,
		AWSSession:  sess,
		S3:          s3svc,
		FS:          fs,
		IDGen:       idGen,
		TimeStamper: ts,
		Mongo:       mongoClient,
		Annotations: annotation.MakeMongoStore(db, idGen, ts),
		Settings:    reg,
	}
}

// The settings a UI can enumerate and edit through the settings endpoints
func makeSettingsRegistry(iLog logger.ILogger) *settings.Registry {
	reg := settings.MakeRegistry(iLog)

	// Registration only fails on a duplicate key
	must := func(err error) {
		if err != nil {
			log.Fatalf("Failed to register setting: %v", err)
		}
	}

	must(reg.RegisterBool("viewer.showGrid", false, "Viewer", "Show the alignment grid over images"))
	must(reg.RegisterInt("viewer.maxCachedTiles", 256, "Viewer", "Image tiles kept in the viewer cache"))
	must(reg.RegisterChoice("viewer.theme", "light", []string{"light", "dark"}, "Viewer", "Viewer colour theme"))
	must(reg.RegisterFloat("export.pixelWidthMicrons", 0.25, "Export", "Pixel width used for scaled measurements in exports"))
	must(reg.RegisterChoice("export.defaultFormat", "json", []string{"json", "csv"}, "Export", "Format offered first in export dialogs"))

	return reg
}
