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
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/microvis/core/core/idgen"
	"github.com/microvis/core/core/timestamper"
)

const AnnotationsCollectionName = "annotations"

// Mongo-backed annotation store
type MongoStore struct {
	db    *mongo.Database
	idGen idgen.IDGenerator
	ts    timestamper.ITimeStamper
}

func MakeMongoStore(db *mongo.Database, idGen idgen.IDGenerator, ts timestamper.ITimeStamper) *MongoStore {
	return &MongoStore{db: db, idGen: idGen, ts: ts}
}

func (s *MongoStore) collection() *mongo.Collection {
	return s.db.Collection(AnnotationsCollectionName)
}

func (s *MongoStore) List(ctx context.Context, imageName string) ([]SummaryItem, error) {
	filter := bson.M{}
	if len(imageName) > 0 {
		filter["imageName"] = imageName
	}

	cursor, err := s.collection().Find(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := []Item{}
	err = cursor.All(ctx, &items)
	if err != nil {
		return nil, err
	}

	result := []SummaryItem{}
	for _, item := range items {
		summary, err := makeSummary(item)
		if err != nil {
			// The error names the offending item, a corrupt stored shape
			// fails the listing loudly rather than being silently dropped
			return nil, err
		}
		result = append(result, summary)
	}

	return result, nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (Item, error) {
	var item Item
	err := s.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return item, ErrItemNotFound
		}
		return item, err
	}
	return item, nil
}

func (s *MongoStore) Create(ctx context.Context, item Item) (Item, error) {
	err := checkItem(item)
	if err != nil {
		return Item{}, err
	}

	now := s.ts.GetTimeNowSec()
	item.ID = s.idGen.GenObjectID()
	item.CreatedUnixSec = now
	item.ModifiedUnixSec = now

	_, err = s.collection().InsertOne(ctx, item)
	if err != nil {
		return Item{}, err
	}

	return item, nil
}

func (s *MongoStore) Update(ctx context.Context, item Item) (Item, error) {
	err := checkItem(item)
	if err != nil {
		return Item{}, err
	}

	existing, err := s.Get(ctx, item.ID)
	if err != nil {
		return Item{}, err
	}

	// Creation time is immutable once saved
	item.CreatedUnixSec = existing.CreatedUnixSec
	item.ModifiedUnixSec = s.ts.GetTimeNowSec()

	filter := bson.D{{Key: "_id", Value: item.ID}}
	replaceResult, err := s.collection().ReplaceOne(ctx, filter, item)
	if err != nil {
		return Item{}, err
	}

	if replaceResult.MatchedCount != 1 {
		return Item{}, fmt.Errorf("annotation %v update matched %v documents", item.ID, replaceResult.MatchedCount)
	}

	return item, nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	deleteResult, err := s.collection().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}

	if deleteResult.DeletedCount != 1 {
		return ErrItemNotFound
	}
	return nil
}
