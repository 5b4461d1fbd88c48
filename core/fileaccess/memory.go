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

package fileaccess

import (
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/microvis/core/core/utils"
)

var errMemoryObjectNotFound = errors.New("object not found")

// In-memory implementation of file access, for unit tests. Objects are
// keyed by bucket then path, and all operations are safe for concurrent use.
type MemoryAccess struct {
	mu      sync.Mutex
	objects map[string]map[string][]byte
}

func MakeMemoryAccess() *MemoryAccess {
	return &MemoryAccess{objects: map[string]map[string][]byte{}}
}

func (mem *MemoryAccess) ListObjects(bucket string, prefix string) ([]string, error) {
	mem.mu.Lock()
	defer mem.mu.Unlock()

	result := []string{}
	for path := range mem.objects[bucket] {
		if strings.HasPrefix(path, prefix) {
			result = append(result, path)
		}
	}

	// Listings come back sorted, like S3
	sort.Strings(result)
	return result, nil
}

func (mem *MemoryAccess) ObjectExists(bucket string, path string) (bool, error) {
	mem.mu.Lock()
	defer mem.mu.Unlock()

	_, ok := mem.objects[bucket][path]
	return ok, nil
}

func (mem *MemoryAccess) ReadObject(bucket string, path string) ([]byte, error) {
	mem.mu.Lock()
	defer mem.mu.Unlock()

	data, ok := mem.objects[bucket][path]
	if !ok {
		return nil, errMemoryObjectNotFound
	}
	return data, nil
}

func (mem *MemoryAccess) WriteObject(bucket string, path string, data []byte) error {
	mem.mu.Lock()
	defer mem.mu.Unlock()

	if mem.objects[bucket] == nil {
		mem.objects[bucket] = map[string][]byte{}
	}
	mem.objects[bucket][path] = data
	return nil
}

func (mem *MemoryAccess) ReadJSON(bucket string, path string, itemsPtr interface{}, emptyIfNotFound bool) error {
	fileData, err := mem.ReadObject(bucket, path)
	if err != nil {
		if emptyIfNotFound && mem.IsNotFoundError(err) {
			return nil
		}
		return err
	}

	return json.Unmarshal(fileData, itemsPtr)
}

func (mem *MemoryAccess) WriteJSON(bucket string, path string, itemsPtr interface{}) error {
	fileData, err := json.MarshalIndent(itemsPtr, "", utils.PrettyPrintIndentForJSON)
	if err != nil {
		return err
	}

	return mem.WriteObject(bucket, path, fileData)
}

func (mem *MemoryAccess) WriteJSONNoIndent(bucket string, path string, itemsPtr interface{}) error {
	fileData, err := json.Marshal(itemsPtr)
	if err != nil {
		return err
	}

	return mem.WriteObject(bucket, path, fileData)
}

func (mem *MemoryAccess) DeleteObject(bucket string, path string) error {
	mem.mu.Lock()
	defer mem.mu.Unlock()

	if _, ok := mem.objects[bucket][path]; !ok {
		return errMemoryObjectNotFound
	}
	delete(mem.objects[bucket], path)
	return nil
}

func (mem *MemoryAccess) CopyObject(srcBucket string, srcPath string, dstBucket string, dstPath string) error {
	mem.mu.Lock()
	defer mem.mu.Unlock()

	data, ok := mem.objects[srcBucket][srcPath]
	if !ok {
		return errMemoryObjectNotFound
	}

	if mem.objects[dstBucket] == nil {
		mem.objects[dstBucket] = map[string][]byte{}
	}
	mem.objects[dstBucket][dstPath] = data
	return nil
}

func (mem *MemoryAccess) EmptyObjects(bucket string) error {
	mem.mu.Lock()
	defer mem.mu.Unlock()

	mem.objects[bucket] = map[string][]byte{}
	return nil
}

func (mem *MemoryAccess) IsNotFoundError(err error) bool {
	return errors.Is(err, errMemoryObjectNotFound)
}
