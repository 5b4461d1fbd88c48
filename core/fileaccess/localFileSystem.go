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
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/microvis/core/core/utils"
)

// Implementation of file access backed by the local file system. The bucket
// parameter is treated as a root directory, object keys as paths under it.
type FSAccess struct {
}

func (fs *FSAccess) ListObjects(rootPath string, prefix string) ([]string, error) {
	result := []string{}

	// path.Join cleans off things like ./ so the walked paths match it
	rootOnly := path.Join(rootPath)
	startPath := fs.filePath(rootPath, prefix)

	err := filepath.Walk(startPath, func(pathFound string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		// Return keys relative to the root, like S3 does
		toSave := pathFound
		if strings.HasPrefix(toSave, rootOnly) {
			toSave = toSave[len(rootOnly)+1:]
		}
		result = append(result, toSave)
		return nil
	})

	return result, err
}

func (fs *FSAccess) ObjectExists(rootPath string, filePath string) (bool, error) {
	_, err := os.Stat(fs.filePath(rootPath, filePath))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func (fs *FSAccess) ReadObject(rootPath string, filePath string) ([]byte, error) {
	return os.ReadFile(fs.filePath(rootPath, filePath))
}

func (fs *FSAccess) WriteObject(rootPath string, filePath string, data []byte) error {
	fullPath := fs.filePath(rootPath, filePath)

	// Ensure any subdirs in between are created
	err := os.MkdirAll(filepath.Dir(fullPath), 0777)
	if err != nil {
		return err
	}

	return os.WriteFile(fullPath, data, 0777)
}

func (fs *FSAccess) ReadJSON(rootPath string, filePath string, itemsPtr interface{}, emptyIfNotFound bool) error {
	fileData, err := fs.ReadObject(rootPath, filePath)
	if err != nil {
		// Missing files can optionally be treated as empty data, eg reading
		// an annotation set that hasn't been saved yet
		if emptyIfNotFound && fs.IsNotFoundError(err) {
			return nil
		}
		return err
	}

	return json.Unmarshal(fileData, itemsPtr)
}

func (fs *FSAccess) WriteJSON(rootPath string, filePath string, itemsPtr interface{}) error {
	fileData, err := json.MarshalIndent(itemsPtr, "", utils.PrettyPrintIndentForJSON)
	if err != nil {
		return err
	}

	return fs.WriteObject(rootPath, filePath, fileData)
}

func (fs *FSAccess) WriteJSONNoIndent(rootPath string, filePath string, itemsPtr interface{}) error {
	fileData, err := json.Marshal(itemsPtr)
	if err != nil {
		return err
	}

	return fs.WriteObject(rootPath, filePath, fileData)
}

func (fs *FSAccess) DeleteObject(rootPath string, filePath string) error {
	return os.Remove(fs.filePath(rootPath, filePath))
}

func (fs *FSAccess) CopyObject(srcRootPath string, srcPath string, dstRootPath string, dstPath string) error {
	fin, err := os.Open(fs.filePath(srcRootPath, srcPath))
	if err != nil {
		return err
	}
	defer fin.Close()

	dstFullPath := fs.filePath(dstRootPath, dstPath)
	err = os.MkdirAll(filepath.Dir(dstFullPath), 0777)
	if err != nil {
		return err
	}

	fout, err := os.Create(dstFullPath)
	if err != nil {
		return err
	}
	defer fout.Close()

	_, err = io.Copy(fout, fin)
	return err
}

func (fs *FSAccess) EmptyObjects(rootPath string) error {
	// Delete everything under the root dir but keep the dir itself, to match
	// what emptying an S3 bucket does
	d, err := os.Open(rootPath)
	if err != nil {
		return err
	}
	defer d.Close()

	names, err := d.Readdirnames(-1)
	if err != nil {
		return err
	}
	for _, name := range names {
		err = os.RemoveAll(filepath.Join(rootPath, name))
		if err != nil {
			return err
		}
	}
	return nil
}

func (fs *FSAccess) IsNotFoundError(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}

func (fs *FSAccess) filePath(rootPath string, filePath string) string {
	return path.Join(rootPath, filePath)
}
