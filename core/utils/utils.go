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

// Various utility functions for strings, slices/maps and JSON printing
package utils

import (
	"strings"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// PrettyPrintIndentForJSON - the one indent string for all saved JSON, so
// files diff cleanly
const PrettyPrintIndentForJSON = "    "

// Simple Go helper functions
// stuff that you'd expect to be part of the std lib but aren't

func ItemInSlice[T comparable](a T, list []T) bool {
	for _, b := range list {
		if b == a {
			return true
		}
	}
	return false
}

// GetSortedMapKeys - map keys in sorted order. Handy for endpoints that
// need deterministic listings for unit tests.
func GetSortedMapKeys[K constraints.Ordered, V any](theMap map[K]V) []K {
	keys := maps.Keys(theMap)
	slices.Sort(keys)
	return keys
}

func AbsI64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// MakeSaveableFileName - user supplied names can't go directly into file
// paths or bucket object names
func MakeSaveableFileName(name string) string {
	result := name
	for _, badChar := range []string{"/", "\\", "?", "$", "#", "!", "'", "\"", "&"} {
		result = strings.ReplaceAll(result, badChar, " ")
	}
	return strings.TrimSpace(result)
}
