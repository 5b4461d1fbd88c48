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

package mongoconn

import (
	"context"
	"fmt"
	"os"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/microvis/core/core/logger"
)

// Assumes local mongo running in docker as per this command:
// docker run -d --name mongo-on-docker -p 27017:27017 mongo
func connectToLocalMongoDB(log logger.ILogger) (*mongo.Client, error) {
	log.Infof("Connecting to local mongo db...")

	mongoUri, set := os.LookupEnv("LOCAL_MONGO_URI")
	if !set {
		mongoUri = "mongodb://localhost"
	}

	cmdMonitor := makeMongoCommandMonitor(log)
	client, err := mongo.Connect(context.TODO(), options.Client().ApplyURI(mongoUri).SetMonitor(cmdMonitor).SetDirect(true))
	if err != nil {
		return nil, fmt.Errorf("Failed to create new local mongo DB connection: %v", err)
	}

	// Ping to confirm the connection actually works
	var result bson.M
	err = client.Database("admin").RunCommand(context.TODO(), bson.D{{Key: "ping", Value: 1}}).Decode(&result)
	if err != nil {
		return nil, err
	}

	log.Infof("Successfully connected to local mongo db!")
	return client, nil
}
