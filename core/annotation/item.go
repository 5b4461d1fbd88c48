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

// Annotation storage: named ROIs saved against an image, in mongo for the
// API and in memory for unit tests. The ROI itself is persisted as its
// proxy envelope, never as the live shape.
package annotation

import (
	"context"
	"errors"
	"fmt"

	"github.com/microvis/core/core/roi"
)

// Item - a saved annotation. The shape rides along as its serialisation
// envelope so what goes into mongo is exactly the persisted ROI contract.
type Item struct {
	ID              string        `json:"id" bson:"_id"`
	Name            string        `json:"name" bson:"name"`
	Description     string        `json:"description,omitempty" bson:"description,omitempty"`
	ImageName       string        `json:"imageName" bson:"imageName"`
	Roi             *roi.Envelope `json:"roi" bson:"roi"`
	CreatedUnixSec  int64         `json:"createdUnixSec" bson:"createdUnixSec"`
	ModifiedUnixSec int64         `json:"modifiedUnixSec" bson:"modifiedUnixSec"`
}

// SummaryItem - what listing returns, enough for a UI to show a table of
// annotations without shipping every shape across
type SummaryItem struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	ImageName       string `json:"imageName"`
	RoiType         string `json:"roiType"`
	CreatedUnixSec  int64  `json:"createdUnixSec"`
	ModifiedUnixSec int64  `json:"modifiedUnixSec"`
}

// Store - annotation persistence. Create assigns the ID and timestamps,
// Update refreshes the modified timestamp. List with an empty imageName
// returns everything.
type Store interface {
	List(ctx context.Context, imageName string) ([]SummaryItem, error)
	Get(ctx context.Context, id string) (Item, error)
	Create(ctx context.Context, item Item) (Item, error)
	Update(ctx context.Context, item Item) (Item, error)
	Delete(ctx context.Context, id string) error
}

// ErrItemNotFound - returned by Get/Update/Delete for an unknown ID
var ErrItemNotFound = errors.New("annotation not found")

// checkItem - an item is only storable if its ROI reconstructs through the
// proxy envelope. Corrupt shapes are rejected here, before they hit storage.
func checkItem(item Item) error {
	if len(item.Name) <= 0 {
		return errors.New("annotation name cannot be empty")
	}
	if item.Roi == nil {
		return errors.New("annotation has no ROI")
	}

	_, err := item.Roi.ToROI()
	if err != nil {
		return err
	}
	return nil
}

func makeSummary(item Item) (SummaryItem, error) {
	shape, err := item.Roi.ToROI()
	if err != nil {
		return SummaryItem{}, fmt.Errorf("annotation %v: %w", item.ID, err)
	}

	return SummaryItem{
		ID:              item.ID,
		Name:            item.Name,
		ImageName:       item.ImageName,
		RoiType:         shape.RoiName(),
		CreatedUnixSec:  item.CreatedUnixSec,
		ModifiedUnixSec: item.ModifiedUnixSec,
	}, nil
}
