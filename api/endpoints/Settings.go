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
	"fmt"

	"github.com/microvis/core/api/handlers"
	"github.com/microvis/core/api/permission"
	apiRouter "github.com/microvis/core/api/router"
	"github.com/microvis/core/core/errorwithstatus"
	"github.com/microvis/core/core/settings"
)

////////////////////////////////////////////////////////////////////////////////////////////////////////////
// Settings - the typed registry, exposed for a UI to enumerate and edit

const settingsPathPrefix = "settings"

// Where the registry persists between API restarts
const settingsSavePath = "settings/api.json"

type settingEntry struct {
	Key          string      `json:"key"`
	Category     string      `json:"category"`
	Description  string      `json:"description"`
	Kind         string      `json:"kind"`
	Choices      []string    `json:"choices,omitempty"`
	DefaultValue interface{} `json:"defaultValue"`
	Value        interface{} `json:"value"`
}

type settingSetRequest struct {
	Value interface{} `json:"value"`
}

func registerSettingsHandler(router *apiRouter.ApiObjectRouter) {
	router.AddJSONHandler(handlers.MakeEndpointPath(settingsPathPrefix), apiRouter.MakeMethodPermission("GET", permission.PermReadSettings), settingsList)
	router.AddJSONHandler(handlers.MakeEndpointPath(settingsPathPrefix, idIdentifier), apiRouter.MakeMethodPermission("GET", permission.PermReadSettings), settingsGet)
	router.AddJSONHandler(handlers.MakeEndpointPath(settingsPathPrefix, idIdentifier), apiRouter.MakeMethodPermission("PUT", permission.PermWriteSettings), settingsPut)
	router.AddJSONHandler(handlers.MakeEndpointPath(settingsPathPrefix+"/reset"), apiRouter.MakeMethodPermission("POST", permission.PermWriteSettings), settingsReset)
}

func makeSettingEntry(entry settings.Entry) settingEntry {
	return settingEntry{
		Key:          entry.Key,
		Category:     entry.Category,
		Description:  entry.Description,
		Kind:         entry.Kind.String(),
		Choices:      entry.Choices,
		DefaultValue: entry.DefaultValue,
		Value:        entry.Value,
	}
}

func findSettingEntry(reg *settings.Registry, key string) (settings.Entry, error) {
	for _, entry := range reg.Entries() {
		if entry.Key == key {
			return entry, nil
		}
	}
	return settings.Entry{}, errorwithstatus.MakeNotFoundError(key)
}

func saveSettings(params handlers.ApiHandlerParams) {
	err := params.Svcs.Settings.Save(params.Svcs.FS, params.Svcs.Config.ConfigBucket, settingsSavePath)
	if err != nil {
		// The edit took effect in memory, losing persistence is logged not fatal
		params.Svcs.Log.Errorf("Failed to save settings: %v", err)
	}
}

func settingsList(params handlers.ApiHandlerParams) (interface{}, error) {
	result := []settingEntry{}
	for _, entry := range params.Svcs.Settings.Entries() {
		result = append(result, makeSettingEntry(entry))
	}
	return result, nil
}

func settingsGet(params handlers.ApiHandlerParams) (interface{}, error) {
	entry, err := findSettingEntry(params.Svcs.Settings, params.PathParams[idIdentifier])
	if err != nil {
		return nil, err
	}
	return makeSettingEntry(entry), nil
}

func settingsPut(params handlers.ApiHandlerParams) (interface{}, error) {
	key := params.PathParams[idIdentifier]

	var request settingSetRequest
	err := json.NewDecoder(params.Request.Body).Decode(&request)
	if err != nil {
		return nil, errorwithstatus.MakeBadRequestError(fmt.Errorf("failed to parse setting value: %v", err))
	}

	entry, err := findSettingEntry(params.Svcs.Settings, key)
	if err != nil {
		return nil, err
	}

	reg := params.Svcs.Settings

	// JSON numbers all arrive as float64, map onto the registered kind
	switch entry.Kind {
	case settings.KindBool:
		value, ok := request.Value.(bool)
		if !ok {
			return nil, errorwithstatus.MakeBadRequestError(fmt.Errorf("setting %v needs a bool value", key))
		}
		err = reg.SetBool(key, value)
	case settings.KindInt:
		value, ok := request.Value.(float64)
		if !ok || value != float64(int64(value)) {
			return nil, errorwithstatus.MakeBadRequestError(fmt.Errorf("setting %v needs an integer value", key))
		}
		err = reg.SetInt(key, int64(value))
	case settings.KindFloat:
		value, ok := request.Value.(float64)
		if !ok {
			return nil, errorwithstatus.MakeBadRequestError(fmt.Errorf("setting %v needs a number value", key))
		}
		err = reg.SetFloat(key, value)
	case settings.KindString:
		value, ok := request.Value.(string)
		if !ok {
			return nil, errorwithstatus.MakeBadRequestError(fmt.Errorf("setting %v needs a string value", key))
		}
		err = reg.SetString(key, value)
	case settings.KindChoice:
		value, ok := request.Value.(string)
		if !ok {
			return nil, errorwithstatus.MakeBadRequestError(fmt.Errorf("setting %v needs a string value", key))
		}
		err = reg.SetChoice(key, value)
	}

	if err != nil {
		return nil, errorwithstatus.MakeBadRequestError(err)
	}

	saveSettings(params)

	entry, err = findSettingEntry(reg, key)
	if err != nil {
		return nil, err
	}
	return makeSettingEntry(entry), nil
}

func settingsReset(params handlers.ApiHandlerParams) (interface{}, error) {
	params.Svcs.Settings.ResetToDefaults()
	saveSettings(params)

	return settingsList(params)
}
