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

package roi

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/microvis/core/core/geom"
)

func Test_bowRoundTrip(t *testing.T) {
	bow := mustMakeBow(t, 10, 20, 30, 40, PlaneWithChannel(1, 0, 0))

	data, err := MarshalROI(bow)
	if err != nil {
		t.Fatalf("MarshalROI failed: %v", err)
	}

	// The legacy name field is never written
	if strings.Contains(string(data), "name") {
		t.Errorf("legacy name field should be absent: %v", string(data))
	}

	restored, err := UnmarshalROI(data)
	if err != nil {
		t.Fatalf("UnmarshalROI failed: %v", err)
	}

	back, ok := restored.(*BowROI)
	if !ok {
		t.Fatalf("expected a BowROI, got %v", restored.RoiName())
	}

	if back.HeadX() != 10 || back.HeadY() != 20 || back.TailX() != 30 || back.TailY() != 40 {
		t.Errorf("anchors: %+v", back.AllPoints())
	}
	if back.Plane() != PlaneWithChannel(1, 0, 0) {
		t.Errorf("plane: %v", back.Plane())
	}
	if !almostEqual(back.Length(), math.Hypot(20, 20)) {
		t.Errorf("length after round trip: %v", back.Length())
	}
}

func Test_bowLegacyNameIgnored(t *testing.T) {
	// Old files could carry a name, readers must drop it silently
	data := []byte(`{"type":"bow","bow":{"headX":1,"headY":2,"tailX":3,"tailY":4,"name":"old label","c":-1,"z":0,"t":0}}`)

	restored, err := UnmarshalROI(data)
	if err != nil {
		t.Fatalf("UnmarshalROI failed: %v", err)
	}

	rewritten, err := MarshalROI(restored)
	if err != nil {
		t.Fatalf("MarshalROI failed: %v", err)
	}
	if strings.Contains(string(rewritten), "old label") {
		t.Errorf("legacy name must not survive a round trip")
	}
}

func Test_unmarshalRejectsCorruptData(t *testing.T) {
	cases := map[string]string{
		"unknown type":    `{"type":"blob"}`,
		"missing payload": `{"type":"bow"}`,
		"not json":        `¯\_(ツ)_/¯`,
		"wrong payload":   `{"type":"bow","line":{"x1":0,"y1":0,"x2":1,"y2":1,"c":-1,"z":0,"t":0}}`,
		"empty polygon":   `{"type":"polygon","polygon":{"points":[],"c":-1,"z":0,"t":0}}`,
	}

	for name, data := range cases {
		_, err := UnmarshalROI([]byte(data))
		if err == nil {
			t.Errorf("%v: expected an error", name)
			continue
		}

		// Corruption is signalled distinctly from ordinary I/O errors
		var integrity *IntegrityError
		if !errors.As(err, &integrity) {
			t.Errorf("%v: expected IntegrityError, got %T: %v", name, err, err)
		}
	}
}

func Test_directReconstructionRejected(t *testing.T) {
	// Bypassing the proxy is a data integrity error by design
	var bow BowROI
	err := json.Unmarshal([]byte(`{"headX":1,"headY":2,"tailX":3,"tailY":4}`), &bow)
	if err == nil {
		t.Fatalf("direct unmarshal into a BowROI must fail")
	}

	var integrity *IntegrityError
	if !errors.As(err, &integrity) {
		t.Errorf("expected IntegrityError, got %T: %v", err, err)
	}
}

func Test_marshalViaInterfaceUsesProxy(t *testing.T) {
	// json.Marshal of the interface must produce the envelope form, not an
	// empty object from the unexported fields
	var r ROI = mustMakeBow(t, 1, 2, 3, 4, DefaultPlane())

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if !strings.Contains(string(data), `"type":"bow"`) || !strings.Contains(string(data), `"headX":1`) {
		t.Errorf("unexpected serialised form: %v", string(data))
	}
}

func Test_variantRoundTrips(t *testing.T) {
	plane := PlaneWithChannel(2, 1, 5)

	line, _ := NewLine(1, 2, 3, 4, plane)
	rect, _ := NewRectangle(5, 6, 7, 8, plane)
	ellipse, _ := NewEllipse(0, 0, 10, 20, plane)
	poly, _ := NewPolygon([]geom.Point2{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 0, Y: 3}}, plane)
	marks, _ := NewPoints([]geom.Point2{{X: 9, Y: 9}}, plane)

	for _, original := range []ROI{line, rect, ellipse, poly, marks} {
		data, err := MarshalROI(original)
		if err != nil {
			t.Errorf("%v: marshal failed: %v", original.RoiName(), err)
			continue
		}

		restored, err := UnmarshalROI(data)
		if err != nil {
			t.Errorf("%v: unmarshal failed: %v", original.RoiName(), err)
			continue
		}

		// Identity-defining measurements survive the trip
		if restored.RoiName() != original.RoiName() ||
			restored.Plane() != original.Plane() ||
			!almostEqual(restored.Area(), original.Area()) ||
			!almostEqual(restored.Length(), original.Length()) ||
			!almostEqual(restored.BoundsX(), original.BoundsX()) ||
			!almostEqual(restored.BoundsWidth(), original.BoundsWidth()) {
			t.Errorf("%v: round trip mismatch", original.RoiName())
		}
	}
}
