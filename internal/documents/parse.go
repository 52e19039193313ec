package documents

import (
	"bytes"
	"encoding/csv"
	"io"
	"path/filepath"
	"strings"

	ltpdf "github.com/ledongthuc/pdf"
	"github.com/xuri/excelize/v2"
)

// ExtractText converts raw file bytes into plain text for the extraction
// pipeline. PDF, CSV, and XLSX files get format-aware extraction; tabular
// formats fall back to the raw bytes when parsing fails. Everything else is
// treated as plain text.
func ExtractText(data []byte, contentType, filename string) (string, error) {
	switch {
	case isPDF(contentType, filename):
		return extractPDFText(data)
	case isCSV(contentType, filename):
		return extractCSVText(data), nil
	case isXLSX(contentType, filename):
		return extractXLSXText(data), nil
	default:
		return string(data), nil
	}
}

func isPDF(contentType, filename string) bool {
	return contentType == "application/pdf" ||
		strings.EqualFold(filepath.Ext(filename), ".pdf")
}

func isCSV(contentType, filename string) bool {
	return contentType == "text/csv" ||
		strings.EqualFold(filepath.Ext(filename), ".csv")
}

func isXLSX(contentType, filename string) bool {
	return contentType == "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" ||
		strings.EqualFold(filepath.Ext(filename), ".xlsx")
}

func extractPDFText(data []byte) (string, error) {
	reader, err := ltpdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	if _, err := io.Copy(&sb, plain); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// extractCSVText renders each record as one line of comma-joined cells.
// Returns the raw bytes when the content is not parseable CSV.
func extractCSVText(data []byte) string {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil || len(records) == 0 {
		return string(data)
	}

	lines := make([]string, 0, len(records))
	for _, record := range records {
		lines = append(lines, strings.Join(record, ", "))
	}

	return strings.Join(lines, "\n")
}

// extractXLSXText renders every sheet's rows as comma-joined lines with a
// sheet name header. Returns the raw bytes when the workbook is unreadable.
func extractXLSXText(data []byte) string {
	wb, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return string(data)
	}
	defer wb.Close()

	var sb strings.Builder
	for _, sheet := range wb.GetSheetList() {
		rows, err := wb.GetRows(sheet)
		if err != nil {
			continue
		}

		sb.WriteString(sheet)
		sb.WriteString("\n")
		for _, row := range rows {
			sb.WriteString(strings.Join(row, ", "))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	if sb.Len() == 0 {
		return string(data)
	}

	return strings.TrimRight(sb.String(), "\n")
}
