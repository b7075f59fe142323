// Package tabular parses uploaded CSV and XLSX files into raw string
// tables. Type inference and dataset construction happen downstream in the
// profiler; this layer only deals with file formats and upload limits.
package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"statease/internal/errors"
)

var dangerousChars = regexp.MustCompile(`[<>:"|?*]`)

// ValidateFilename rejects path traversal attempts, shell-hostile
// characters, and unsupported extensions.
func ValidateFilename(name string) error {
	if name == "" {
		return errors.InvalidInput("filename is empty")
	}
	if strings.Contains(name, "../") || strings.Contains(name, "..\\") {
		return errors.InvalidInput("filename contains a path traversal sequence")
	}
	if dangerousChars.MatchString(name) {
		return errors.InvalidInput("filename contains forbidden characters")
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".xlsx":
		return nil
	}
	return errors.InvalidInput("unsupported file type; only .csv and .xlsx are accepted")
}

// Table is a parsed upload: a header row and the raw string cells beneath
// it. Ragged rows are padded with empty cells to the header width.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Reader parses uploads within the configured size and row limits.
type Reader struct {
	maxBytes int64
	maxRows  int
}

func NewReader(maxBytes int64, maxRows int) *Reader {
	return &Reader{maxBytes: maxBytes, maxRows: maxRows}
}

// Read parses the upload named by filename from r. The format is chosen by
// extension; ValidateFilename must pass first.
func (rd *Reader) Read(filename string, r io.Reader) (*Table, error) {
	if err := ValidateFilename(filename); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(r, rd.maxBytes+1))
	if err != nil {
		return nil, errors.Wrap(err, "read upload")
	}
	if int64(len(data)) > rd.maxBytes {
		return nil, errors.InvalidInput("file exceeds the upload size limit")
	}

	start := time.Now()
	var rows [][]string
	if strings.ToLower(filepath.Ext(filename)) == ".csv" {
		rows, err = readCSV(data)
	} else {
		rows, err = readXLSX(data)
	}
	if err != nil {
		return nil, err
	}
	log.Printf("[Reader] %s parsed in %.2fms (%d rows)", filename, float64(time.Since(start).Nanoseconds())/1e6, len(rows))

	if len(rows) < 2 {
		return nil, errors.InvalidInput("file must have a header row and at least one data row")
	}
	if len(rows)-1 > rd.maxRows {
		return nil, errors.InvalidInput("file exceeds the row limit")
	}

	headers := rows[0]
	for i, h := range headers {
		if strings.TrimSpace(h) == "" {
			return nil, errors.InvalidInput(fmt.Sprintf("header row has an empty column name at position %d", i+1))
		}
	}

	body := make([][]string, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) < len(headers) {
			padded := make([]string, len(headers))
			copy(padded, row)
			row = padded
		}
		body[i] = row[:len(headers)]
	}
	return &Table{Headers: headers, Rows: body}, nil
}

func readCSV(data []byte) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "parse CSV")
	}
	return rows, nil
}

func readXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "open XLSX")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.InvalidInput("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrap(err, "read first sheet")
	}
	return rows, nil
}
