package excel

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"hufschlaeger.net/jira-issues-exporter/internal/domain/export"
)

// ErrNoData wird zurückgegeben wenn weder Records noch eine explizite
// Feld-Reihenfolge vorliegen, also keine Header ableitbar sind.
var ErrNoData = errors.New("keine Daten und keine Feldliste für den Export")

// ExportError kapselt einen fehlgeschlagenen Datei-Export.
type ExportError struct {
	Path string
	Err  error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("Export nach %q fehlgeschlagen: %v", e.Path, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }

type Writer struct {
	sheetName   string
	columnWidth float64
}

func NewWriter() *Writer {
	return &Writer{
		sheetName:   "Jira Issues",
		columnWidth: 20,
	}
}

// Write schreibt die Records als ein Sheet: eine Header-Zeile, eine Zeile
// pro Record. Fehlt fieldOrder, kommt die Reihenfolge aus dem ersten
// Record. Eine bestehende Datei wird überschrieben, nie angehängt.
// Geschrieben wird erst in eine Temp-Datei und dann umbenannt, damit ein
// abgebrochener Export keine halbe Datei hinterlässt.
func (w *Writer) Write(records []*export.Record, destination string, fieldOrder []string) error {
	if len(fieldOrder) == 0 {
		if len(records) == 0 {
			return ErrNoData
		}
		fieldOrder = records[0].Fields()
	}

	file := excelize.NewFile()
	defer func() { _ = file.Close() }()

	if err := file.SetSheetName("Sheet1", w.sheetName); err != nil {
		return &ExportError{Path: destination, Err: err}
	}

	// Header-Zeile
	for col, field := range fieldOrder {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return &ExportError{Path: destination, Err: err}
		}
		if err := file.SetCellValue(w.sheetName, cell, field); err != nil {
			return &ExportError{Path: destination, Err: err}
		}
	}

	// Daten-Zeilen, nil-Werte bleiben leere Zellen
	for row, record := range records {
		for col, field := range fieldOrder {
			value, ok := record.Get(field)
			if !ok || value == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return &ExportError{Path: destination, Err: err}
			}
			if err := file.SetCellValue(w.sheetName, cell, *value); err != nil {
				return &ExportError{Path: destination, Err: err}
			}
		}
	}

	if lastColumn, err := excelize.ColumnNumberToName(len(fieldOrder)); err == nil {
		if err := file.SetColWidth(w.sheetName, "A", lastColumn, w.columnWidth); err != nil {
			return &ExportError{Path: destination, Err: err}
		}
	}

	return w.save(file, destination)
}

func (w *Writer) save(file *excelize.File, destination string) error {
	dir := filepath.Dir(destination)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &ExportError{Path: destination, Err: err}
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(destination)+".*")
	if err != nil {
		return &ExportError{Path: destination, Err: err}
	}
	tmpPath := tmp.Name()

	// Über den io.Writer schreiben: SaveAs würde die Endung des
	// Temp-Namens als Workbook-Format ablehnen
	if err := file.Write(tmp); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return &ExportError{Path: destination, Err: err}
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return &ExportError{Path: destination, Err: err}
	}

	if err := os.Rename(tmpPath, destination); err != nil {
		_ = os.Remove(tmpPath)
		return &ExportError{Path: destination, Err: err}
	}

	return nil
}
