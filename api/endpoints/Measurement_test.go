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
	"encoding/json"
	"math"
	"net/http"
	"testing"

	"github.com/microvis/core/core/roi"
)

func postShapeJSON(t *testing.T, shape roi.ROI) []byte {
	t.Helper()

	envelope, err := roi.ToEnvelope(shape)
	if err != nil {
		t.Fatalf("failed to make envelope: %v", err)
	}
	body, err := json.Marshal(envelope)
	if err != nil {
		t.Fatalf("failed to marshal envelope: %v", err)
	}
	return body
}

func Test_measureBow(t *testing.T) {
	svcs := MakeMockSvcs(nil, nil)
	router := MakeRouter(svcs)

	bow, err := roi.NewBow(1, 2, 3, 4, roi.DefaultPlane())
	if err != nil {
		t.Fatalf("failed to make bow: %v", err)
	}

	req, _ := http.NewRequest("POST", "/measurement?pixelWidth=0.5&pixelHeight=0.5", bytes.NewReader(postShapeJSON(t, bow)))
	resp := executeRequest(req, router.Router)
	if resp.Code != 200 {
		t.Fatalf("measure failed: %v, %v", resp.Code, resp.Body.String())
	}

	var measured measureResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &measured); err != nil {
		t.Fatalf("measure response wasn't valid: %v", err)
	}

	if measured.RoiType != "Bow" || measured.Kind != "LINE" {
		t.Errorf("shape identity wrong: %v, %v", measured.RoiType, measured.Kind)
	}
	if measured.BoundsX != 1 || measured.BoundsY != 2 || measured.BoundsW != 2 || measured.BoundsH != 2 {
		t.Errorf("bounds wrong: %+v", measured)
	}
	if measured.Centroid.X != 2 || measured.Centroid.Y != 3 {
		t.Errorf("centroid wrong: %+v", measured.Centroid)
	}
	if measured.Area != 0 || measured.NumPoints != 2 || measured.IsEmpty {
		t.Errorf("line properties wrong: %+v", measured)
	}

	chord := math.Hypot(2, 2)
	if math.Abs(measured.Length-chord) > 1e-9 {
		t.Errorf("length wrong: %v", measured.Length)
	}
	if math.Abs(measured.ScaledLength-chord*0.5) > 1e-9 {
		t.Errorf("scaled length didn't use the query pixel size: %v", measured.ScaledLength)
	}

	// A bow measures its rendered arc outline, not just the two anchors
	if len(measured.Outline) != 23 {
		t.Errorf("expected 23 arc outline points, got %v", len(measured.Outline))
	}
}

func Test_measureRectangleDefaults(t *testing.T) {
	svcs := MakeMockSvcs(nil, nil)
	svcs.Config.DefaultPixelWidthMicrons = 0.25
	svcs.Config.DefaultPixelHeightMicrons = 0.5
	router := MakeRouter(svcs)

	rect, _ := roi.NewRectangle(0, 0, 10, 4, roi.DefaultPlane())

	// No pixel size on the query, the configured defaults apply
	req, _ := http.NewRequest("POST", "/measurement", bytes.NewReader(postShapeJSON(t, rect)))
	resp := executeRequest(req, router.Router)
	if resp.Code != 200 {
		t.Fatalf("measure failed: %v, %v", resp.Code, resp.Body.String())
	}

	var measured measureResponse
	json.Unmarshal(resp.Body.Bytes(), &measured)

	if measured.Area != 40 {
		t.Errorf("area wrong: %v", measured.Area)
	}
	if math.Abs(measured.ScaledArea-40*0.25*0.5) > 1e-9 {
		t.Errorf("scaled area didn't use configured pixel size: %v", measured.ScaledArea)
	}
}

func Test_measurementHitTests(t *testing.T) {
	svcs := MakeMockSvcs(nil, nil)
	router := MakeRouter(svcs)

	rect, _ := roi.NewRectangle(0, 0, 10, 5, roi.DefaultPlane())
	rectJSON := postShapeJSON(t, rect)

	bow, _ := roi.NewBow(1, 2, 3, 4, roi.DefaultPlane())
	bowJSON := postShapeJSON(t, bow)

	cases := []struct {
		name  string
		url   string
		shape []byte
		hit   bool
	}{
		{"rect contains inner point", "/measurement/contains?x=2&y=3", rectJSON, true},
		{"rect excludes outer point", "/measurement/contains?x=20&y=3", rectJSON, false},
		{"bow has no interior", "/measurement/contains?x=2&y=3", bowJSON, false},
		{"rect crossing bow chord", "/measurement/intersect?x=1.5&y=1&w=1&h=5", bowJSON, true},
		{"rect clear of bow", "/measurement/intersect?x=10&y=10&w=1&h=1", bowJSON, false},
	}

	for _, c := range cases {
		req, _ := http.NewRequest("POST", c.url, bytes.NewReader(c.shape))
		resp := executeRequest(req, router.Router)
		if resp.Code != 200 {
			t.Errorf("%v: request failed: %v, %v", c.name, resp.Code, resp.Body.String())
			continue
		}

		var result hitTestResponse
		json.Unmarshal(resp.Body.Bytes(), &result)
		if result.Hit != c.hit {
			t.Errorf("%v: expected hit=%v", c.name, c.hit)
		}
	}

	// Hit tests need their coordinates
	req, _ := http.NewRequest("POST", "/measurement/contains?x=2", bytes.NewReader(postShapeJSON(t, rect)))
	resp := executeRequest(req, router.Router)
	if resp.Code != 400 {
		t.Errorf("expected 400 for missing y, got %v", resp.Code)
	}
}

func Test_measurementTransform(t *testing.T) {
	svcs := MakeMockSvcs(nil, nil)
	router := MakeRouter(svcs)

	bow, _ := roi.NewBow(1, 2, 3, 4, roi.DefaultPlane())
	envelope, _ := roi.ToEnvelope(bow)

	request := transformRequest{
		Roi:        envelope,
		TranslateX: 10,
		TranslateY: 20,
		ScaleX:     2,
		// ScaleY omitted, stays 1
	}
	body, _ := json.Marshal(request)

	req, _ := http.NewRequest("POST", "/measurement/transform", bytes.NewReader(body))
	resp := executeRequest(req, router.Router)
	if resp.Code != 200 {
		t.Fatalf("transform failed: %v, %v", resp.Code, resp.Body.String())
	}

	var resultEnvelope roi.Envelope
	if err := json.Unmarshal(resp.Body.Bytes(), &resultEnvelope); err != nil {
		t.Fatalf("transform response wasn't an envelope: %v", err)
	}

	shape, err := resultEnvelope.ToROI()
	if err != nil {
		t.Fatalf("transform result didn't reconstruct: %v", err)
	}

	moved, ok := shape.(*roi.BowROI)
	if !ok {
		t.Fatalf("transform changed the shape type: %T", shape)
	}

	// Translate to (11,22)-(13,24), then x doubles about origin 0
	if moved.HeadX() != 22 || moved.HeadY() != 22 || moved.TailX() != 26 || moved.TailY() != 24 {
		t.Errorf("transformed anchors wrong: (%v,%v)-(%v,%v)",
			moved.HeadX(), moved.HeadY(), moved.TailX(), moved.TailY())
	}
}

func Test_measurementRejectsCorruptShape(t *testing.T) {
	svcs := MakeMockSvcs(nil, nil)
	router := MakeRouter(svcs)

	req, _ := http.NewRequest("POST", "/measurement", bytes.NewReader([]byte(`{"type": "bow"}`)))
	resp := executeRequest(req, router.Router)
	if resp.Code != 422 {
		t.Errorf("expected 422 for envelope without payload, got %v", resp.Code)
	}

	req, _ = http.NewRequest("POST", "/measurement", bytes.NewReader([]byte("{broken")))
	resp = executeRequest(req, router.Router)
	if resp.Code != 400 {
		t.Errorf("expected 400 for unparseable body, got %v", resp.Code)
	}
}
