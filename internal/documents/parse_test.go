package documents_test

import (
	"testing"

	"github.com/reqsmith/casegen/internal/documents"
)

func TestExtractTextPlain(t *testing.T) {
	text, err := documents.ExtractText(
		[]byte("The system shall respond within 100ms."),
		"text/plain",
		"requirements.txt",
	)
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}

	if text != "The system shall respond within 100ms." {
		t.Errorf("text = %q, want raw content", text)
	}
}

func TestExtractTextCSV(t *testing.T) {
	data := []byte("id,requirement\nREQ-001,The system shall brake\nREQ-002,The system shall log")

	text, err := documents.ExtractText(data, "text/csv", "requirements.csv")
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}

	want := "id, requirement\nREQ-001, The system shall brake\nREQ-002, The system shall log"
	if text != want {
		t.Errorf("text = %q, want %q", text, want)
	}
}

func TestExtractTextCSVByExtension(t *testing.T) {
	data := []byte("a,b\n1,2")

	text, err := documents.ExtractText(data, "application/octet-stream", "sheet.CSV")
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}

	if text != "a, b\n1, 2" {
		t.Errorf("text = %q, want parsed CSV", text)
	}
}

func TestExtractTextMalformedCSVFallsBack(t *testing.T) {
	data := []byte("a,\"unterminated\nquote")

	text, err := documents.ExtractText(data, "text/csv", "broken.csv")
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}

	if text != string(data) {
		t.Errorf("text = %q, want raw fallback", text)
	}
}

func TestExtractTextUnreadableXLSXFallsBack(t *testing.T) {
	data := []byte("not a workbook")

	text, err := documents.ExtractText(
		data,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		"sheet.xlsx",
	)
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}

	if text != string(data) {
		t.Errorf("text = %q, want raw fallback", text)
	}
}
