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
	"fmt"
	"net/http"
	"testing"

	"github.com/microvis/core/core/annotation"
)

const bowAnnotationJSON = `{
	"name": "vessel",
	"description": "main vessel wall",
	"imageName": "slide1.tif",
	"roi": {"type": "bow", "bow": {"headX": 1, "headY": 2, "tailX": 3, "tailY": 4, "c": -1, "z": 0, "t": 0}}
}`

func Test_annotationCRUD(t *testing.T) {
	svcs := MakeMockSvcs(
		&MockIDGenerator{ids: []string{"ann1"}},
		[]int64{100, 200},
	)
	router := MakeRouter(svcs)

	// Empty list to start
	req, _ := http.NewRequest("GET", "/annotation", nil)
	resp := executeRequest(req, router.Router)
	if resp.Code != 200 || resp.Body.String() != "[]\n" {
		t.Errorf("empty list wrong: %v, %v", resp.Code, resp.Body.String())
	}

	// Create
	req, _ = http.NewRequest("POST", "/annotation", bytes.NewReader([]byte(bowAnnotationJSON)))
	resp = executeRequest(req, router.Router)
	if resp.Code != 200 {
		t.Fatalf("create failed: %v, %v", resp.Code, resp.Body.String())
	}

	var created annotation.Item
	if err := json.Unmarshal(resp.Body.Bytes(), &created); err != nil {
		t.Fatalf("create response wasn't an item: %v", err)
	}
	if created.ID != "ann1" || created.CreatedUnixSec != 100 || created.Name != "vessel" {
		t.Errorf("created item wrong: %+v", created)
	}

	// Read it back
	req, _ = http.NewRequest("GET", "/annotation/ann1", nil)
	resp = executeRequest(req, router.Router)
	if resp.Code != 200 {
		t.Fatalf("get failed: %v", resp.Code)
	}
	var got annotation.Item
	json.Unmarshal(resp.Body.Bytes(), &got)
	if got.ImageName != "slide1.tif" || got.Roi == nil || got.Roi.Type != "bow" {
		t.Errorf("got item wrong: %+v", got)
	}

	// List has a summary with the shape name resolved
	req, _ = http.NewRequest("GET", "/annotation", nil)
	resp = executeRequest(req, router.Router)
	var summaries []annotation.SummaryItem
	json.Unmarshal(resp.Body.Bytes(), &summaries)
	if len(summaries) != 1 || summaries[0].RoiType != "Bow" {
		t.Errorf("summaries wrong: %+v", summaries)
	}

	// Update
	updateJSON := `{"name": "artery", "imageName": "slide1.tif", "roi": {"type": "bow", "bow": {"headX": 5, "headY": 6, "tailX": 7, "tailY": 8, "c": -1, "z": 0, "t": 0}}}`
	req, _ = http.NewRequest("PUT", "/annotation/ann1", bytes.NewReader([]byte(updateJSON)))
	resp = executeRequest(req, router.Router)
	if resp.Code != 200 {
		t.Fatalf("update failed: %v, %v", resp.Code, resp.Body.String())
	}
	var updated annotation.Item
	json.Unmarshal(resp.Body.Bytes(), &updated)
	if updated.Name != "artery" || updated.CreatedUnixSec != 100 || updated.ModifiedUnixSec != 200 {
		t.Errorf("updated item wrong: %+v", updated)
	}

	// Delete, then a get is a 404
	req, _ = http.NewRequest("DELETE", "/annotation/ann1", nil)
	resp = executeRequest(req, router.Router)
	if resp.Code != 200 {
		t.Fatalf("delete failed: %v", resp.Code)
	}

	req, _ = http.NewRequest("GET", "/annotation/ann1", nil)
	resp = executeRequest(req, router.Router)
	if resp.Code != 404 {
		t.Errorf("expected 404 after delete, got %v", resp.Code)
	}
}

func Test_annotationListFilters(t *testing.T) {
	svcs := MakeMockSvcs(
		&MockIDGenerator{ids: []string{"ann1", "ann2"}},
		[]int64{100, 110},
	)
	router := MakeRouter(svcs)

	// One annotation on the default plane of slide1, one on z slice 3 of slide2
	req, _ := http.NewRequest("POST", "/annotation", bytes.NewReader([]byte(bowAnnotationJSON)))
	resp := executeRequest(req, router.Router)
	if resp.Code != 200 {
		t.Fatalf("create failed: %v", resp.Code)
	}

	slicedJSON := `{"name": "nucleus", "imageName": "slide2.tif", "roi": {"type": "bow", "bow": {"headX": 1, "headY": 2, "tailX": 3, "tailY": 4, "c": -1, "z": 3, "t": 0}}}`
	req, _ = http.NewRequest("POST", "/annotation", bytes.NewReader([]byte(slicedJSON)))
	resp = executeRequest(req, router.Router)
	if resp.Code != 200 {
		t.Fatalf("create failed: %v", resp.Code)
	}

	listIDs := func(url string) []string {
		req, _ := http.NewRequest("GET", url, nil)
		resp := executeRequest(req, router.Router)
		if resp.Code != 200 {
			t.Fatalf("%v failed: %v, %v", url, resp.Code, resp.Body.String())
		}

		var summaries []annotation.SummaryItem
		json.Unmarshal(resp.Body.Bytes(), &summaries)

		ids := []string{}
		for _, summary := range summaries {
			ids = append(ids, summary.ID)
		}
		return ids
	}

	if ids := listIDs("/annotation"); len(ids) != 2 {
		t.Errorf("unfiltered list wrong: %v", ids)
	}
	if ids := listIDs("/annotation?imageName=slide2.tif"); len(ids) != 1 || ids[0] != "ann2" {
		t.Errorf("image filter wrong: %v", ids)
	}
	if ids := listIDs("/annotation?z=3"); len(ids) != 1 || ids[0] != "ann2" {
		t.Errorf("plane filter wrong: %v", ids)
	}
	if ids := listIDs("/annotation?z=0"); len(ids) != 1 || ids[0] != "ann1" {
		t.Errorf("default plane filter wrong: %v", ids)
	}
	if ids := listIDs("/annotation?z=9"); len(ids) != 0 {
		t.Errorf("empty plane filter wrong: %v", ids)
	}

	req, _ = http.NewRequest("GET", "/annotation?z=three", nil)
	resp = executeRequest(req, router.Router)
	if resp.Code != 400 {
		t.Errorf("expected 400 for bad plane filter, got %v", resp.Code)
	}
}

func Test_annotationRejectsCorruptShape(t *testing.T) {
	svcs := MakeMockSvcs(nil, []int64{1})
	router := MakeRouter(svcs)

	// Unknown shape tag must be a 422, not a 500
	badJSON := `{"name": "blob", "roi": {"type": "blob"}}`
	req, _ := http.NewRequest("POST", "/annotation", bytes.NewReader([]byte(badJSON)))
	resp := executeRequest(req, router.Router)
	if resp.Code != 422 {
		t.Errorf("expected 422 for corrupt shape, got %v: %v", resp.Code, resp.Body.String())
	}

	// Unparseable JSON is a plain bad request
	req, _ = http.NewRequest("POST", "/annotation", bytes.NewReader([]byte("{not json")))
	resp = executeRequest(req, router.Router)
	if resp.Code != 400 {
		t.Errorf("expected 400 for bad JSON, got %v", resp.Code)
	}

	// A bow with out-of-range coordinates never reaches storage
	nanJSON := `{"name": "vessel", "roi": {"type": "bow", "bow": {"headX": 1e999, "headY": 2, "tailX": 3, "tailY": 4, "c": -1, "z": 0, "t": 0}}}`
	req, _ = http.NewRequest("POST", "/annotation", bytes.NewReader([]byte(nanJSON)))
	resp = executeRequest(req, router.Router)
	if resp.Code != 400 && resp.Code != 422 {
		t.Errorf("expected rejection for non-finite bow, got %v", resp.Code)
	}
}

func Test_annotationImportExport(t *testing.T) {
	svcs := MakeMockSvcs(
		&MockIDGenerator{ids: []string{"ann1", "ann2", "ann3"}},
		[]int64{100, 110, 120},
	)
	router := MakeRouter(svcs)

	// Save one annotation, export the set, then import it again
	req, _ := http.NewRequest("POST", "/annotation", bytes.NewReader([]byte(bowAnnotationJSON)))
	resp := executeRequest(req, router.Router)
	if resp.Code != 200 {
		t.Fatalf("create failed: %v", resp.Code)
	}

	req, _ = http.NewRequest("POST", "/annotation/export", bytes.NewReader([]byte(`{"path": "sets/slide1.json"}`)))
	resp = executeRequest(req, router.Router)
	if resp.Code != 200 {
		t.Fatalf("export failed: %v, %v", resp.Code, resp.Body.String())
	}

	exists, _ := svcs.FS.ObjectExists(AnnotationBucketForUnitTest, "sets/slide1.json")
	if !exists {
		t.Errorf("export didn't write the set file")
	}

	req, _ = http.NewRequest("POST", "/annotation/import", bytes.NewReader([]byte(`{"path": "sets/slide1.json"}`)))
	resp = executeRequest(req, router.Router)
	if resp.Code != 200 {
		t.Fatalf("import failed: %v, %v", resp.Code, resp.Body.String())
	}

	var imported []annotation.Item
	json.Unmarshal(resp.Body.Bytes(), &imported)
	if len(imported) != 1 || imported[0].ID != "ann2" {
		t.Errorf("imported items wrong: %+v", imported)
	}

	// Importing a missing file is a 404
	req, _ = http.NewRequest("POST", "/annotation/import", bytes.NewReader([]byte(`{"path": "sets/nope.json"}`)))
	resp = executeRequest(req, router.Router)
	if resp.Code != 404 {
		t.Errorf("expected 404 for missing set file, got %v", resp.Code)
	}
}

func Example_version() {
	svcs := MakeMockSvcs(nil, nil)
	router := MakeRouter(svcs)

	req, _ := http.NewRequest("GET", "/version", nil)
	resp := executeRequest(req, router.Router)

	fmt.Println(resp.Code)
	fmt.Println(resp.Body.String())

	// Output:
	// 200
	// {
	//     "components": [
	//         {
	//             "component": "API",
	//             "version": "N/A - Local build"
	//         }
	//     ]
	// }
}
