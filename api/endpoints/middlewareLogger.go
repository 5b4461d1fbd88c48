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

package endpoints

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/getsentry/sentry-go"

	"github.com/microvis/core/api/services"
	"github.com/microvis/core/core/logger"
)

// How many chars of request body to display in logs
const bodyTextReqLogLength = 200

// How many chars of resp body to display in logs
const bodyTextRespLogHeadLength = 600
const bodyTextRespLogTailLength = 300

// If req/resp body is longer than the limits, we print this to show it was cut off
const logSnipIndicator = "\n    ---- >8 -------- >8 -------- >8 -------- >8 ----\n"

type LoggerMiddleware struct {
	*services.APIServices
}

func (h *LoggerMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Read the HTTP body so we can log it, then pass it on to the next in chain
		bodyBytes, err := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(bodyBytes))

		reqBodyText := "REQ BODY ERROR"
		if err == nil {
			reqBodyText = string(bodyBytes)
		}
		if len(reqBodyText) > bodyTextReqLogLength {
			reqBodyText = reqBodyText[0:bodyTextReqLogLength] + logSnipIndicator
		}

		// Store a copy of the response so it can be logged
		buf := new(bytes.Buffer)
		w2 := &responseWriterWithCopy{RealWriter: w, Body: buf, Status: 0}

		next.ServeHTTP(w2, r)

		// We only log if we're in debug log level OR we detected an error
		hadError := w2.Status != 0 && w2.Status != http.StatusOK && w2.Status != http.StatusNotModified

		respBodyText := buf.String()
		if len(respBodyText) > bodyTextRespLogHeadLength+bodyTextRespLogTailLength {
			respBodyText = respBodyText[0:bodyTextRespLogHeadLength] +
				logSnipIndicator +
				respBodyText[len(respBodyText)-bodyTextRespLogTailLength:]
		}

		if hadError {
			if hub := sentry.GetHubFromContext(r.Context()); hub != nil {
				hub.WithScope(func(scope *sentry.Scope) {
					scope.SetExtra("method", r.Method)
					for name, values := range r.Header {
						scope.SetExtra(name, strings.Join(values, "; "))
					}
					hub.CaptureMessage("Error detected in http request")
				})
			}

			h.Log.Errorf("API returned %v for %v \"%v %v\", query params: %v. Response body: \"%v\"",
				w2.Status,
				r.Method,
				r.Host,
				r.URL,
				r.URL.Query(),
				respBodyText,
			)
		} else if h.Config.LogLevel == logger.LogDebug {
			h.Log.Debugf("API request %v \"%v %v\", body: %v. Returned %v, response body: \"%v\"",
				r.Method,
				r.Host,
				r.URL,
				reqBodyText,
				w2.StatusText(),
				fmt.Sprintf("%.120s", respBodyText),
			)
		}
	})
}
