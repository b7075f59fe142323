package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"statease/internal/config"
)

func testApp() *App {
	return NewApp(&config.Config{
		Upload: config.UploadConfig{
			MaxBytes:    10 << 20,
			MaxRows:     100000,
			PreviewRows: 100,
		},
	})
}

func uploadCSV(t *testing.T, app *App, filename, content string) string {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write([]byte(content)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("upload failed with %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("upload response not JSON: %v", err)
	}
	return resp["dataset_id"].(string)
}

const scoresCSV = "score,group\n10,A\n12,A\n9,A\n11,A\n10,A\n15,B\n14,B\n16,B\n15,B\n14,B\n"

func postJSON(t *testing.T, app *App, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	testApp().Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestListTests(t *testing.T) {
	rec := httptest.NewRecorder()
	testApp().Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tests", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Tests []map[string]interface{} `json:"tests"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response not JSON: %v", err)
	}
	if len(resp.Tests) != 10 {
		t.Fatalf("expected 10 tests in catalog, got %d", len(resp.Tests))
	}
	if resp.Tests[0]["id"] != "independent_t" {
		t.Fatalf("expected declaration order, first=%v", resp.Tests[0]["id"])
	}
}

func TestUploadAndAnalyze(t *testing.T) {
	app := testApp()
	id := uploadCSV(t, app, "scores.csv", scoresCSV)

	rec := postJSON(t, app, "/analyze", map[string]interface{}{
		"dataset_id":     id,
		"test_id":        "independent_t",
		"variables":      []string{"score"},
		"group_variable": "group",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("analyze failed with %d: %s", rec.Code, rec.Body.String())
	}

	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("result not JSON: %v", err)
	}
	if result["kind"] != "independent_t_test" {
		t.Fatalf("expected kind tag, got %v", result["kind"])
	}
	if _, ok := result["interpretation"].(string); !ok {
		t.Fatalf("expected interpretation string, got %v", result["interpretation"])
	}
}

func TestAnalyze_ErrorStatuses(t *testing.T) {
	app := testApp()
	id := uploadCSV(t, app, "scores.csv", scoresCSV)

	cases := []struct {
		name string
		body map[string]interface{}
		want int
	}{
		{
			"unknown test id",
			map[string]interface{}{"dataset_id": id, "test_id": "bogus"},
			http.StatusBadRequest,
		},
		{
			"missing column",
			map[string]interface{}{"dataset_id": id, "test_id": "shapiro_wilk", "variables": []string{"nope"}},
			http.StatusBadRequest,
		},
		{
			"unknown dataset",
			map[string]interface{}{"dataset_id": "does-not-exist", "test_id": "shapiro_wilk", "variables": []string{"score"}},
			http.StatusNotFound,
		},
	}
	for _, c := range cases {
		rec := postJSON(t, app, "/analyze", c.body)
		if rec.Code != c.want {
			t.Fatalf("%s: expected %d, got %d: %s", c.name, c.want, rec.Code, rec.Body.String())
		}
	}
}

func TestAnalyze_NumericalErrorIs422(t *testing.T) {
	app := testApp()
	id := uploadCSV(t, app, "flat.csv", "score,group\n5,A\n5,A\n5,A\n7,B\n7,B\n7,B\n")

	rec := postJSON(t, app, "/analyze", map[string]interface{}{
		"dataset_id":     id,
		"test_id":        "independent_t",
		"variables":      []string{"score"},
		"group_variable": "group",
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for zero-variance groups, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "NUMERICAL_ERROR") {
		t.Fatalf("expected NUMERICAL_ERROR code in body: %s", rec.Body.String())
	}
}

func TestUpload_RejectsBadFilename(t *testing.T) {
	app := testApp()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, _ := mw.CreateFormFile("file", "notes.txt")
	fmt.Fprint(fw, "a,b\n1,2\n")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for .txt upload, got %d", rec.Code)
	}
}

func TestDatasetDetailAndList(t *testing.T) {
	app := testApp()
	id := uploadCSV(t, app, "scores.csv", scoresCSV)

	rec := httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/datasets/"+id, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("detail failed with %d", rec.Code)
	}
	var detail map[string]interface{}
	json.Unmarshal(rec.Body.Bytes(), &detail)
	if detail["n_rows"].(float64) != 10 {
		t.Fatalf("expected 10 rows, got %v", detail["n_rows"])
	}

	rec = httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/datasets", nil))
	var list struct {
		Datasets []map[string]interface{} `json:"datasets"`
	}
	json.Unmarshal(rec.Body.Bytes(), &list)
	if len(list.Datasets) != 1 {
		t.Fatalf("expected one stored dataset, got %d", len(list.Datasets))
	}
}

func TestNormalityBattery(t *testing.T) {
	app := testApp()
	id := uploadCSV(t, app, "scores.csv", scoresCSV)

	rec := httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/datasets/"+id+"/normality", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("battery failed with %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Results []map[string]interface{} `json:"results"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response not JSON: %v", err)
	}
	if len(resp.Results) != 1 || resp.Results[0]["column"] != "score" {
		t.Fatalf("expected one screened column named score, got %v", resp.Results)
	}
}

func TestReport(t *testing.T) {
	app := testApp()
	id := uploadCSV(t, app, "scores.csv", scoresCSV)

	rec := postJSON(t, app, "/report", map[string]interface{}{
		"dataset_id": id,
		"title":      "Scores Report",
		"selections": []map[string]interface{}{
			{"test_id": "independent_t", "variables": []string{"score"}, "group_variable": "group"},
			{"test_id": "shapiro_wilk", "variables": []string{"score"}},
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("report failed with %d: %s", rec.Code, rec.Body.String())
	}
	doc := rec.Body.String()
	for _, want := range []string{"Scores Report", "Independent t-test", "Shapiro-Wilk test"} {
		if !strings.Contains(doc, want) {
			t.Fatalf("report missing %q", want)
		}
	}
}
