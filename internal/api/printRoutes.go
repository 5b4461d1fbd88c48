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
	"fmt"
	"sort"
	"strings"
)

// Dumps the route->permission table at startup so a reader of the logs can
// see what the API exposes without digging through handler registration
func printRoutePermissions(routePermissions map[string]string) {
	rows := []string{}
	longestPath := 0

	// Keys are method+path, split them back apart so we can sort by path
	for key := range routePermissions {
		pathStart := strings.Index(key, "/")
		method := key[0:pathStart]
		path := key[pathStart:]

		rows = append(rows, fmt.Sprintf("%v|%v|%v", path, method, key))

		if len(path) > longestPath {
			longestPath = len(path)
		}
	}
	sort.Strings(rows)

	fmt.Println("Route Permissions:")
	fmtString := fmt.Sprintf("%%-7v%%-%vv -> %%v\n", longestPath)

	for _, row := range rows {
		bits := strings.Split(row, "|")
		fmt.Printf(fmtString, bits[1], bits[0], routePermissions[bits[2]])
	}
}
