package excel

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"hufschlaeger.net/jira-issues-exporter/internal/domain/export"
)

func testRecords(count int) []*export.Record {
	var records []*export.Record
	for i := 1; i <= count; i++ {
		record := export.NewRecord()
		record.Set("key", export.Ptr(fmt.Sprintf("DEMO-%d", i)))
		record.Set("summary", export.Ptr(fmt.Sprintf("Issue %d", i)))
		records = append(records, record)
	}
	return records
}

func readSheet(t *testing.T, path string) [][]string {
	t.Helper()

	file, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile(%q) error = %v", path, err)
	}
	defer func() { _ = file.Close() }()

	rows, err := file.GetRows("Jira Issues")
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	return rows
}

func TestWrite_RoundTrip(t *testing.T) {
	destination := filepath.Join(t.TempDir(), "out", "report.xlsx")

	// out/ existiert noch nicht, muss angelegt werden
	if err := NewWriter().Write(testRecords(3), destination, nil); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	rows := readSheet(t, destination)
	if len(rows) != 4 {
		t.Fatalf("got %d rows, expected 4 (1 header + 3 data)", len(rows))
	}

	header := rows[0]
	if len(header) != 2 || header[0] != "key" || header[1] != "summary" {
		t.Errorf("header = %v, expected [key summary]", header)
	}

	if rows[1][0] != "DEMO-1" || rows[3][1] != "Issue 3" {
		t.Errorf("unexpected cell content: %v", rows)
	}
}

func TestWrite_SingleRecordLeavesOnlyDestination(t *testing.T) {
	dir := t.TempDir()
	destination := filepath.Join(dir, "report.xlsx")

	if err := NewWriter().Write(testRecords(1), destination, nil); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	rows := readSheet(t, destination)
	if len(rows) != 2 {
		t.Errorf("got %d rows, expected 2 (1 header + 1 data)", len(rows))
	}

	// Keine Temp-Datei darf übrig bleiben, nur das Ziel selbst
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "report.xlsx" {
		var names []string
		for _, entry := range entries {
			names = append(names, entry.Name())
		}
		t.Errorf("directory contains %v, expected only report.xlsx", names)
	}
}

func TestWrite_OverwritesInsteadOfAppending(t *testing.T) {
	destination := filepath.Join(t.TempDir(), "report.xlsx")
	writer := NewWriter()
	records := testRecords(3)

	if err := writer.Write(records, destination, nil); err != nil {
		t.Fatalf("first Write() error = %v", err)
	}
	if err := writer.Write(records, destination, nil); err != nil {
		t.Fatalf("second Write() error = %v", err)
	}

	rows := readSheet(t, destination)
	if len(rows) != 4 {
		t.Errorf("got %d rows after double export, expected 4", len(rows))
	}
}

func TestWrite_ExplicitFieldOrder(t *testing.T) {
	destination := filepath.Join(t.TempDir(), "report.xlsx")

	if err := NewWriter().Write(testRecords(1), destination, []string{"summary", "key"}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	rows := readSheet(t, destination)
	if rows[0][0] != "summary" || rows[0][1] != "key" {
		t.Errorf("header = %v, expected [summary key]", rows[0])
	}
	if rows[1][0] != "Issue 1" || rows[1][1] != "DEMO-1" {
		t.Errorf("data row = %v", rows[1])
	}
}

func TestWrite_EmptyRecordsWithFieldOrder(t *testing.T) {
	destination := filepath.Join(t.TempDir(), "report.xlsx")

	if err := NewWriter().Write(nil, destination, []string{"key", "summary"}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	rows := readSheet(t, destination)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, expected header-only file", len(rows))
	}
}

func TestWrite_EmptyRecordsWithoutFieldOrder(t *testing.T) {
	destination := filepath.Join(t.TempDir(), "report.xlsx")

	err := NewWriter().Write(nil, destination, nil)
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got: %v", err)
	}
}

func TestWrite_NilValueBecomesEmptyCell(t *testing.T) {
	destination := filepath.Join(t.TempDir(), "report.xlsx")

	record := export.NewRecord()
	record.Set("key", export.Ptr("DEMO-1"))
	record.Set("assignee", nil)

	if err := NewWriter().Write([]*export.Record{record}, destination, nil); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	file, err := excelize.OpenFile(destination)
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	defer func() { _ = file.Close() }()

	// nil wird eine leere Zelle, nie der Text "nil"
	value, err := file.GetCellValue("Jira Issues", "B2")
	if err != nil {
		t.Fatalf("GetCellValue() error = %v", err)
	}
	if value != "" {
		t.Errorf("cell B2 = %q, expected empty", value)
	}
}

func TestWrite_ExportErrorCarriesPath(t *testing.T) {
	tmp := t.TempDir()

	// Ziel unterhalb einer regulären Datei erzwingt einen Dateisystemfehler
	blockerPath := filepath.Join(tmp, "blocker")
	if err := NewWriter().Write(testRecords(1), blockerPath, nil); err != nil {
		t.Fatalf("setup write failed: %v", err)
	}

	destination := filepath.Join(blockerPath, "sub", "report.xlsx")
	err := NewWriter().Write(testRecords(1), destination, nil)
	if err == nil {
		t.Fatal("expected error when parent is a regular file")
	}

	var exportErr *ExportError
	if !errors.As(err, &exportErr) {
		t.Fatalf("expected ExportError, got: %v", err)
	}
	if exportErr.Path != destination {
		t.Errorf("ExportError.Path = %q, expected %q", exportErr.Path, destination)
	}
}
