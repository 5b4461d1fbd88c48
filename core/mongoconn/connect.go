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

// Lowest-level code to connect to Mongo DB, either locally in Docker or a
// remote cluster whose credentials sit in AWS Secrets Manager.
package mongoconn

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws/session"
	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/microvis/core/core/logger"
)

func Connect(
	sess *session.Session, // Can be nil for local connection
	mongoSecret string, // empty for local connection
	iLog logger.ILogger,
) (*mongo.Client, error) {
	// A blank secret means a local DB with no auth
	if len(mongoSecret) <= 0 {
		return connectToLocalMongoDB(iLog)
	}

	connectionInfo, err := getMongoConnectionInfoFromSecretCache(sess, mongoSecret)
	if err != nil {
		return nil, fmt.Errorf("Failed to read mongo secret \"%v\" info from secrets cache: %v", mongoSecret, err)
	}

	return connectToRemoteMongoDB(
		connectionInfo.Host,
		connectionInfo.Username,
		connectionInfo.Password,
		iLog,
	)
}

// GetDatabaseName - environment name forms part of the DB name so multiple
// environments can share a cluster
func GetDatabaseName(dbName string, envName string) string {
	return dbName + "-" + envName
}

func makeMongoCommandMonitor(log logger.ILogger) *event.CommandMonitor {
	return &event.CommandMonitor{
		Started: func(_ context.Context, evt *event.CommandStartedEvent) {
			log.Debugf("Mongo request:\n%v", evt.Command)
		},
		Succeeded: func(_ context.Context, evt *event.CommandSucceededEvent) {
			log.Debugf("Mongo success:\n%v", evt.CommandFinishedEvent)
		},
		Failed: func(_ context.Context, evt *event.CommandFailedEvent) {
			log.Errorf("Mongo FAIL:\n%v", evt.Failure)
		},
	}
}
