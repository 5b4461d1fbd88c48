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
	"encoding/json"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/secretsmanager"
	"github.com/aws/aws-secretsmanager-caching-go/secretcache"
	"github.com/pkg/errors"
)

// What Secrets Manager hands back for a DocumentDB cluster secret
type MongoConnectionInfo struct {
	DbClusterIdentifier string `json:"dbClusterIdentifier"`
	Password            string `json:"password"`
	Engine              string `json:"engine"`
	Port                string `json:"port"`
	Host                string `json:"host"`
	Ssl                 string `json:"ssl"`
	Username            string `json:"username"`
}

func getMongoConnectionInfoFromSecretCache(sess *session.Session, secretName string) (MongoConnectionInfo, error) {
	// Build the secret manager off our session so region is set, needed when
	// running locally
	secMan := secretsmanager.New(sess)

	var info MongoConnectionInfo
	secCache, err := secretcache.New(func(c *secretcache.Cache) { c.Client = secMan })
	if err != nil {
		return info, err
	}

	secretValue, err := secCache.GetSecretString(secretName)
	if err != nil {
		return info, errors.Wrapf(err, "Failed to read secret: %v", secretName)
	}

	err = json.Unmarshal([]byte(secretValue), &info)
	if err != nil {
		return info, errors.Wrapf(err, "Failed to parse secret: %v", secretName)
	}

	return info, nil
}
