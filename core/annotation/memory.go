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
	"sort"
	"sync"

	"github.com/microvis/core/core/idgen"
	"github.com/microvis/core/core/timestamper"
)

// In-memory annotation store, for unit tests. Same contract as MongoStore.
type MemStore struct {
	mu    sync.Mutex
	items map[string]Item
	idGen idgen.IDGenerator
	ts    timestamper.ITimeStamper
}

func MakeMemStore(idGen idgen.IDGenerator, ts timestamper.ITimeStamper) *MemStore {
	return &MemStore{items: map[string]Item{}, idGen: idGen, ts: ts}
}

func (s *MemStore) List(ctx context.Context, imageName string) ([]SummaryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := []SummaryItem{}
	for _, item := range s.items {
		if len(imageName) > 0 && item.ImageName != imageName {
			continue
		}
		summary, err := makeSummary(item)
		if err != nil {
			return nil, err
		}
		result = append(result, summary)
	}

	// Map iteration order isn't stable, listings should be
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *MemStore) Get(ctx context.Context, id string) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return Item{}, ErrItemNotFound
	}
	return item, nil
}

func (s *MemStore) Create(ctx context.Context, item Item) (Item, error) {
	err := checkItem(item)
	if err != nil {
		return Item{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.ts.GetTimeNowSec()
	item.ID = s.idGen.GenObjectID()
	item.CreatedUnixSec = now
	item.ModifiedUnixSec = now

	s.items[item.ID] = item
	return item, nil
}

func (s *MemStore) Update(ctx context.Context, item Item) (Item, error) {
	err := checkItem(item)
	if err != nil {
		return Item{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.items[item.ID]
	if !ok {
		return Item{}, ErrItemNotFound
	}

	item.CreatedUnixSec = existing.CreatedUnixSec
	item.ModifiedUnixSec = s.ts.GetTimeNowSec()

	s.items[item.ID] = item
	return item, nil
}

func (s *MemStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return ErrItemNotFound
	}
	delete(s.items, id)
	return nil
}
