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

// Generic object storage interface so annotation set files can live in AWS
// S3, on a local file system, or in memory for unit tests. Paths are
// bucket + object key everywhere; the local implementation treats the
// bucket as a root directory.
package fileaccess

// FileAccess - code against this, never against the S3 API or os directly
type FileAccess interface {
	ListObjects(bucket string, prefix string) ([]string, error)

	ObjectExists(bucket string, path string) (bool, error)

	ReadObject(bucket string, path string) ([]byte, error)
	WriteObject(bucket string, path string, data []byte) error

	ReadJSON(bucket string, path string, itemsPtr interface{}, emptyIfNotFound bool) error
	WriteJSON(bucket string, path string, itemsPtr interface{}) error
	WriteJSONNoIndent(bucket string, path string, itemsPtr interface{}) error

	DeleteObject(bucket string, path string) error

	CopyObject(srcBucket string, srcPath string, dstBucket string, dstPath string) error

	// EmptyObjects - deletes everything in the bucket but leaves the bucket there
	EmptyObjects(bucket string) error

	// IsNotFoundError - was the error returned by one of the above just
	// "no such object"?
	IsNotFoundError(err error) bool
}
