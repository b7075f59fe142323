package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"statease/domain/analysis"
	"statease/domain/dataset"
	"statease/internal"
	"statease/internal/battery"
	"statease/internal/errors"
	"statease/internal/profiling"
	"statease/internal/report"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// statusFor maps the error taxonomy to HTTP statuses. Caller-fixable input
// problems are 400, degenerate-data computation failures are 422.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.CodeValidation, errors.CodeInsufficientData, errors.CodeUnsupportedRange, errors.CodeInvalidInput:
		return http.StatusBadRequest
	case errors.CodeNumerical:
		return http.StatusUnprocessableEntity
	case errors.CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		internal.DefaultLogger.Error("internal error: %v", err)
	} else {
		internal.DefaultLogger.Debug("request rejected: %v", err)
	}
	writeJSON(w, status, map[string]errorBody{
		"error": {Code: errors.GetCode(err), Message: err.Error()},
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("[API] write response: %v", err)
	}
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *App) handleListTests(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"tests": a.engine.Registry().List(),
	})
}

type columnInfo struct {
	Name string             `json:"name"`
	Type dataset.ColumnType `json:"type"`
}

type uploadResponse struct {
	DatasetID string                           `json:"dataset_id"`
	Filename  string                           `json:"filename"`
	NumRows   int                              `json:"n_rows"`
	Columns   []columnInfo                     `json:"columns"`
	Profiles  map[string]dataset.ColumnProfile `json:"profiles"`
	Preview   []map[string]interface{}         `json:"preview"`
}

func (a *App) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(a.cfg.Upload.MaxBytes); err != nil {
		writeError(w, errors.InvalidInput("request is not a valid multipart upload"))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, errors.InvalidInput("missing file field in upload"))
		return
	}
	defer file.Close()

	table, err := a.reader.Read(header.Filename, file)
	if err != nil {
		writeError(w, err)
		return
	}

	ds := profiling.BuildDataset(table)
	stored := a.store.Put(header.Filename, ds)
	log.Printf("[API] stored dataset %s (%s, %d rows)", stored.ID, stored.Filename, ds.NumRows())

	writeJSON(w, http.StatusOK, uploadResponse{
		DatasetID: stored.ID,
		Filename:  stored.Filename,
		NumRows:   ds.NumRows(),
		Columns:   columnInfos(ds),
		Profiles:  ds.Profiles,
		Preview:   preview(ds, a.cfg.Upload.PreviewRows),
	})
}

func (a *App) handleListDatasets(w http.ResponseWriter, r *http.Request) {
	type entry struct {
		DatasetID  string `json:"dataset_id"`
		Filename   string `json:"filename"`
		NumRows    int    `json:"n_rows"`
		UploadedAt string `json:"uploaded_at"`
	}
	out := []entry{}
	for _, stored := range a.store.List() {
		out = append(out, entry{
			DatasetID:  stored.ID,
			Filename:   stored.Filename,
			NumRows:    stored.Dataset.NumRows(),
			UploadedAt: stored.UploadedAt.Format("2006-01-02T15:04:05Z"),
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"datasets": out})
}

func (a *App) handleDatasetDetail(w http.ResponseWriter, r *http.Request) {
	stored, err := a.store.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, uploadResponse{
		DatasetID: stored.ID,
		Filename:  stored.Filename,
		NumRows:   stored.Dataset.NumRows(),
		Columns:   columnInfos(stored.Dataset),
		Profiles:  stored.Dataset.Profiles,
		Preview:   preview(stored.Dataset, a.cfg.Upload.PreviewRows),
	})
}

type analyzeRequest struct {
	DatasetID     string          `json:"dataset_id"`
	TestID        analysis.TestID `json:"test_id"`
	Variables     []string        `json:"variables"`
	GroupVariable string          `json:"group_variable,omitempty"`
}

func (a *App) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.InvalidInput("request body is not valid JSON"))
		return
	}
	stored, err := a.store.Get(req.DatasetID)
	if err != nil {
		writeError(w, err)
		return
	}

	raw, err := a.engine.Run(stored.Dataset, analysis.Selection{
		TestID:        req.TestID,
		Variables:     req.Variables,
		GroupVariable: req.GroupVariable,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(raw)
}

func (a *App) handleNormalityBattery(w http.ResponseWriter, r *http.Request) {
	stored, err := a.store.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	results, err := battery.Run(r.Context(), a.engine, stored.Dataset)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"dataset_id": stored.ID,
		"results":    results,
	})
}

type reportRequest struct {
	DatasetID  string               `json:"dataset_id"`
	Title      string               `json:"title,omitempty"`
	Selections []analysis.Selection `json:"selections"`
}

func (a *App) handleReport(w http.ResponseWriter, r *http.Request) {
	var req reportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.InvalidInput("request body is not valid JSON"))
		return
	}
	stored, err := a.store.Get(req.DatasetID)
	if err != nil {
		writeError(w, err)
		return
	}
	if len(req.Selections) == 0 {
		writeError(w, errors.InvalidInput("report requires at least one selection"))
		return
	}

	results := make([]json.RawMessage, 0, len(req.Selections))
	for _, sel := range req.Selections {
		raw, err := a.engine.Run(stored.Dataset, sel)
		if err != nil {
			writeError(w, err)
			return
		}
		results = append(results, raw)
	}

	doc, err := report.RenderHTML(report.Request{
		Title:       req.Title,
		DatasetName: stored.Filename,
		Dataset:     stored.Dataset,
		Results:     results,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(doc)
}

func columnInfos(ds *dataset.Dataset) []columnInfo {
	out := make([]columnInfo, 0, len(ds.ColumnNames()))
	for _, name := range ds.ColumnNames() {
		col, _ := ds.Column(name)
		out = append(out, columnInfo{Name: name, Type: col.Type})
	}
	return out
}

// preview renders the first rows as JSON-friendly records with nil for
// missing cells.
func preview(ds *dataset.Dataset, limit int) []map[string]interface{} {
	n := ds.NumRows()
	if n > limit {
		n = limit
	}
	names := ds.ColumnNames()
	rows := make([]map[string]interface{}, n)
	for i := 0; i < n; i++ {
		row := make(map[string]interface{}, len(names))
		for _, name := range names {
			col, _ := ds.Column(name)
			if col.Missing(i) {
				row[name] = nil
				continue
			}
			if col.Type == dataset.TypeNumeric {
				row[name] = col.Numeric[i]
			} else {
				row[name] = col.Labels[i]
			}
		}
		rows[i] = row
	}
	return rows
}
