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

package annotation

import (
	"context"
	"fmt"

	"github.com/microvis/core/core/fileaccess"
)

// Annotation sets can be exported to a JSON file and imported elsewhere. The
// file carries the same proxy envelopes as the DB, so an imported shape goes
// through the exact same integrity checks as one saved through the API.

// ExportSet - writes every stored annotation to a JSON file
func ExportSet(ctx context.Context, store Store, fs fileaccess.FileAccess, bucket string, path string) (int, error) {
	summaries, err := store.List(ctx, "")
	if err != nil {
		return 0, err
	}

	items := []Item{}
	for _, summary := range summaries {
		item, err := store.Get(ctx, summary.ID)
		if err != nil {
			return 0, err
		}
		items = append(items, item)
	}

	err = fs.WriteJSON(bucket, path, items)
	if err != nil {
		return 0, err
	}

	return len(items), nil
}

// ImportSet - reads a set file and saves each annotation as a new item.
// IDs and timestamps are assigned fresh, a set file is a transfer format
// not a backup. Fails without storing anything if any shape is corrupt.
func ImportSet(ctx context.Context, store Store, fs fileaccess.FileAccess, bucket string, path string) ([]Item, error) {
	fileItems := []Item{}
	err := fs.ReadJSON(bucket, path, &fileItems, false)
	if err != nil {
		return nil, err
	}

	// Check everything up front so a bad entry can't leave a half-imported set
	for idx, item := range fileItems {
		err = checkItem(item)
		if err != nil {
			return nil, fmt.Errorf("annotation set entry %v: %w", idx, err)
		}
	}

	saved := []Item{}
	for _, item := range fileItems {
		savedItem, err := store.Create(ctx, item)
		if err != nil {
			return nil, err
		}
		saved = append(saved, savedItem)
	}

	return saved, nil
}
