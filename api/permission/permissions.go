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

package permission

// We have a few public things, mainly getting the API version...
const PermPublic = "public"

// Permissions for routes. Auth is handled by infrastructure in front of the
// API, these tags get attached to routes so the deployment can wire the
// right access rules up per method+path.

// For reading annotations and running measurements on them
const PermReadAnnotation = "read:annotation"

// For writing/deleting/importing annotations
const PermWriteAnnotation = "write:annotation"

// Settings registry access
const PermReadSettings = "read:settings"
const PermWriteSettings = "write:settings"
