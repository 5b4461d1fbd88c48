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
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/microvis/core/core/logger"
)

const remoteConnectTimeout = 3 * time.Second

func connectToRemoteMongoDB(
	mongoEndpoint string,
	mongoUsername string,
	mongoPassword string,
	iLog logger.ILogger,
) (*mongo.Client, error) {
	iLog.Infof("Connecting to remote mongo db: %v, user: %v", mongoEndpoint, mongoUsername)

	tlsConfig, err := getCustomTLSConfig("./rds-combined-ca-bundle.pem")
	if err != nil {
		return nil, fmt.Errorf("Failed getting TLS configuration: %v", err)
	}

	if strings.Contains(mongoEndpoint, "localhost") {
		tlsConfig.InsecureSkipVerify = true
	}

	connectionURI := fmt.Sprintf("mongodb://%s/", mongoEndpoint)
	cmdMonitor := makeMongoCommandMonitor(iLog)

	ctx, cancel := context.WithTimeout(context.Background(), remoteConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx,
		options.Client().
			ApplyURI(connectionURI).
			SetMonitor(cmdMonitor).
			SetTLSConfig(tlsConfig).
			SetRetryWrites(false).
			SetDirect(true).
			SetAuth(
				options.Credential{
					Username:    mongoUsername,
					Password:    mongoPassword,
					PasswordSet: true,
					AuthSource:  "admin",
				}))
	if err != nil {
		return nil, fmt.Errorf("Failed to create new mongo DB connection: %v", err)
	}

	// Ping to confirm the connection actually works
	var result bson.M
	err = client.Database("admin").RunCommand(context.TODO(), bson.D{{Key: "ping", Value: 1}}).Decode(&result)
	if err != nil {
		return nil, err
	}

	iLog.Infof("Successfully connected to remote mongo db!")
	return client, nil
}

func getCustomTLSConfig(caFile string) (*tls.Config, error) {
	tlsConfig := new(tls.Config)
	certs, err := os.ReadFile(caFile)
	if err != nil {
		return tlsConfig, err
	}

	tlsConfig.RootCAs = x509.NewCertPool()
	if !tlsConfig.RootCAs.AppendCertsFromPEM(certs) {
		return tlsConfig, errors.New("Failed parsing pem file")
	}

	return tlsConfig, nil
}
