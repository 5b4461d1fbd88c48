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

// Typed settings registry. Settings are registered explicitly with a kind,
// default and category, so the full set is known up front and a UI can
// enumerate it without any reflection tricks. Values persist as a flat JSON
// map through fileaccess.
package settings

import (
	"fmt"
	"sort"
	"sync"

	"github.com/microvis/core/core/fileaccess"
	"github.com/microvis/core/core/logger"
)

type Kind int

const (
	KindBool Kind = iota
	KindInt
	KindFloat
	KindString
	KindChoice
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindChoice:
		return "choice"
	}
	return "unknown"
}

// Entry - one registered setting. Value/DefaultValue hold bool, int64,
// float64 or string depending on Kind, choice values are strings.
type Entry struct {
	Key          string
	Category     string
	Description  string
	Kind         Kind
	Choices      []string
	DefaultValue interface{}
	Value        interface{}
}

type Listener func(key string)

type Registry struct {
	mu        sync.Mutex
	entries   map[string]*Entry
	order     []string
	listeners map[string][]Listener
	log       logger.ILogger
}

func MakeRegistry(log logger.ILogger) *Registry {
	return &Registry{
		entries:   map[string]*Entry{},
		listeners: map[string][]Listener{},
		log:       log,
	}
}

func (r *Registry) register(entry Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[entry.Key]; exists {
		return fmt.Errorf("setting already registered: %v", entry.Key)
	}

	entry.Value = entry.DefaultValue
	r.entries[entry.Key] = &entry
	r.order = append(r.order, entry.Key)
	return nil
}

func (r *Registry) RegisterBool(key string, defaultValue bool, category string, description string) error {
	return r.register(Entry{Key: key, Category: category, Description: description, Kind: KindBool, DefaultValue: defaultValue})
}

func (r *Registry) RegisterInt(key string, defaultValue int64, category string, description string) error {
	return r.register(Entry{Key: key, Category: category, Description: description, Kind: KindInt, DefaultValue: defaultValue})
}

func (r *Registry) RegisterFloat(key string, defaultValue float64, category string, description string) error {
	return r.register(Entry{Key: key, Category: category, Description: description, Kind: KindFloat, DefaultValue: defaultValue})
}

func (r *Registry) RegisterString(key string, defaultValue string, category string, description string) error {
	return r.register(Entry{Key: key, Category: category, Description: description, Kind: KindString, DefaultValue: defaultValue})
}

func (r *Registry) RegisterChoice(key string, defaultValue string, choices []string, category string, description string) error {
	found := false
	for _, choice := range choices {
		if choice == defaultValue {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("setting %v: default \"%v\" is not one of the choices", key, defaultValue)
	}

	return r.register(Entry{Key: key, Category: category, Description: description, Kind: KindChoice, Choices: choices, DefaultValue: defaultValue})
}

func (r *Registry) get(key string, kind Kind) (interface{}, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, exists := r.entries[key]
	if !exists {
		return nil, fmt.Errorf("unknown setting: %v", key)
	}
	if entry.Kind != kind {
		return nil, fmt.Errorf("setting %v is %v, not %v", key, entry.Kind, kind)
	}
	return entry.Value, nil
}

func (r *Registry) set(key string, kind Kind, value interface{}) error {
	r.mu.Lock()

	entry, exists := r.entries[key]
	if !exists {
		r.mu.Unlock()
		return fmt.Errorf("unknown setting: %v", key)
	}
	if entry.Kind != kind {
		r.mu.Unlock()
		return fmt.Errorf("setting %v is %v, not %v", key, entry.Kind, kind)
	}

	if entry.Kind == KindChoice {
		valid := false
		for _, choice := range entry.Choices {
			if choice == value.(string) {
				valid = true
				break
			}
		}
		if !valid {
			r.mu.Unlock()
			return fmt.Errorf("setting %v: \"%v\" is not one of the choices", key, value)
		}
	}

	entry.Value = value
	toNotify := append([]Listener{}, r.listeners[key]...)

	// Listeners run outside the lock so they can read other settings
	r.mu.Unlock()

	for _, listener := range toNotify {
		listener(key)
	}
	return nil
}

func (r *Registry) GetBool(key string) (bool, error) {
	value, err := r.get(key, KindBool)
	if err != nil {
		return false, err
	}
	return value.(bool), nil
}

func (r *Registry) SetBool(key string, value bool) error {
	return r.set(key, KindBool, value)
}

func (r *Registry) GetInt(key string) (int64, error) {
	value, err := r.get(key, KindInt)
	if err != nil {
		return 0, err
	}
	return value.(int64), nil
}

func (r *Registry) SetInt(key string, value int64) error {
	return r.set(key, KindInt, value)
}

func (r *Registry) GetFloat(key string) (float64, error) {
	value, err := r.get(key, KindFloat)
	if err != nil {
		return 0, err
	}
	return value.(float64), nil
}

func (r *Registry) SetFloat(key string, value float64) error {
	return r.set(key, KindFloat, value)
}

func (r *Registry) GetString(key string) (string, error) {
	value, err := r.get(key, KindString)
	if err != nil {
		return "", err
	}
	return value.(string), nil
}

func (r *Registry) SetString(key string, value string) error {
	return r.set(key, KindString, value)
}

func (r *Registry) GetChoice(key string) (string, error) {
	value, err := r.get(key, KindChoice)
	if err != nil {
		return "", err
	}
	return value.(string), nil
}

func (r *Registry) SetChoice(key string, value string) error {
	return r.set(key, KindChoice, value)
}

// AddListener - fires after the keyed setting changes value
func (r *Registry) AddListener(key string, listener Listener) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[key]; !exists {
		return fmt.Errorf("unknown setting: %v", key)
	}
	r.listeners[key] = append(r.listeners[key], listener)
	return nil
}

// ResetToDefaults - puts every setting back to its registered default.
// Doesn't fire listeners, this is a bulk operation not an edit.
func (r *Registry) ResetToDefaults() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, entry := range r.entries {
		entry.Value = entry.DefaultValue
	}
}

// Entries - copies of all settings in registration order, for display
func (r *Registry) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := []Entry{}
	for _, key := range r.order {
		result = append(result, *r.entries[key])
	}
	return result
}

// Categories - the distinct categories in use, sorted
func (r *Registry) Categories() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := map[string]bool{}
	result := []string{}
	for _, entry := range r.entries {
		if !seen[entry.Category] {
			seen[entry.Category] = true
			result = append(result, entry.Category)
		}
	}

	sort.Strings(result)
	return result
}

// Save - persists current values as a flat key->value JSON map
func (r *Registry) Save(fs fileaccess.FileAccess, bucket string, path string) error {
	r.mu.Lock()
	values := map[string]interface{}{}
	for key, entry := range r.entries {
		values[key] = entry.Value
	}
	r.mu.Unlock()

	return fs.WriteJSON(bucket, path, values)
}

// Load - reads persisted values back in. Keys that are no longer registered
// or whose stored value doesn't fit the registered kind are skipped with a
// warning, a stale settings file shouldn't stop startup.
func (r *Registry) Load(fs fileaccess.FileAccess, bucket string, path string) error {
	values := map[string]interface{}{}
	err := fs.ReadJSON(bucket, path, &values, true)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for key, value := range values {
		entry, exists := r.entries[key]
		if !exists {
			r.log.Infof("Ignoring unrecognised saved setting: %v", key)
			continue
		}

		converted, ok := convertSavedValue(entry, value)
		if !ok {
			r.log.Errorf("Saved setting %v has wrong type, keeping default", key)
			continue
		}
		entry.Value = converted
	}

	return nil
}

// JSON numbers decode as float64 so ints need converting back, and choice
// values have to still be valid choices
func convertSavedValue(entry *Entry, value interface{}) (interface{}, bool) {
	switch entry.Kind {
	case KindBool:
		b, ok := value.(bool)
		return b, ok
	case KindInt:
		f, ok := value.(float64)
		if !ok || f != float64(int64(f)) {
			return nil, false
		}
		return int64(f), true
	case KindFloat:
		f, ok := value.(float64)
		return f, ok
	case KindString:
		s, ok := value.(string)
		return s, ok
	case KindChoice:
		s, ok := value.(string)
		if !ok {
			return nil, false
		}
		for _, choice := range entry.Choices {
			if choice == s {
				return s, true
			}
		}
		return nil, false
	}
	return nil, false
}
