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

// API configuration as read from JSON, with env var overrides
package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/microvis/core/core/logger"
)

// APIConfig combines config JSON values and env vars
type APIConfig struct {
	AdminEmails []string

	// Where annotation set files get imported from/exported to
	AnnotationBucket string

	// Settings files live here
	ConfigBucket string

	EnvironmentName string

	LogLevel logger.LogLevel // Can be changed at runtime, but if API restarts, it goes back to configured value

	// Mongo connection, blank means a local unauthenticated DB
	MongoSecret string

	SentryEndpoint string

	// Pixel size used when measurement requests don't supply one
	DefaultPixelWidthMicrons  float64
	DefaultPixelHeightMicrons float64
}

func NewConfigFromFile(configFilePath string) (APIConfig, error) {
	var cfg APIConfig

	fmt.Printf("Loading custom config from: %s\n", configFilePath)
	customConfig, err := os.ReadFile(configFilePath)
	if err != nil {
		return cfg, fmt.Errorf("could not read config file at %s", configFilePath)
	}
	return buildConfig(customConfig)
}

func NewConfigFromJsonString(configJson string) (APIConfig, error) {
	return buildConfig([]byte(configJson))
}

func buildConfig(configJson []byte) (APIConfig, error) {
	var cfg APIConfig

	err := json.Unmarshal(configJson, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse custom config: %v", err)
	}

	// Override Config with any values explicitly set in Env Vars (MICROVIS_CONFIG_*)
	// NOTE: For []string slices, pass in a comma-separated string to the corresponding MICROVIS_CONFIG_ var
	// 			Ex: export MICROVIS_CONFIG_AdminEmails="me@example.com,you@example.com"
	reflection := reflect.ValueOf(&cfg).Elem()
	for i := 0; i < reflection.NumField(); i++ {
		fieldName := reflection.Type().Field(i).Name
		field := reflection.Field(i)
		if val, present := os.LookupEnv(fmt.Sprintf("MICROVIS_CONFIG_%s", fieldName)); present {
			switch field.Kind() {
			case reflect.String:
				field.SetString(val)
			case reflect.Slice:
				if field.Type().Elem().Kind() == reflect.String {
					slicedVal := strings.Split(val, ",")
					field.Set(reflect.ValueOf(slicedVal))
				}
			case reflect.Int, reflect.Int32, reflect.Int64:
				i, err := strconv.Atoi(val)
				if err != nil {
					fmt.Printf("Could not cast value MICROVIS_CONFIG_%s=%s to Int", fieldName, val)
					continue
				}
				field.SetInt(int64(i))
			case reflect.Float64:
				f, err := strconv.ParseFloat(val, 64)
				if err != nil {
					fmt.Printf("Could not cast value MICROVIS_CONFIG_%s=%s to Float", fieldName, val)
					continue
				}
				field.SetFloat(f)
			}
		}
	}
	return cfg, nil
}

// Init config, loads config params
func Init() (APIConfig, error) {
	configFilePath := flag.String("customConfigPath", "", "Path to the json file holding a set of custom config for the API")
	flag.Parse()

	var cfg APIConfig
	var err error

	if configFilePath != nil && *configFilePath != "" {
		cfg, err = NewConfigFromFile(*configFilePath)
	} else {
		err = errors.New("no configuration provided")
	}
	if err != nil {
		return cfg, err
	}

	if cfg.DefaultPixelWidthMicrons <= 0 {
		cfg.DefaultPixelWidthMicrons = 1
	}
	if cfg.DefaultPixelHeightMicrons <= 0 {
		cfg.DefaultPixelHeightMicrons = 1
	}

	return cfg, nil
}
