package service

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"hufschlaeger.net/jira-issues-exporter/internal/config"
	"hufschlaeger.net/jira-issues-exporter/internal/domain/export"
	excelRepo "hufschlaeger.net/jira-issues-exporter/internal/repository/excel"
	jiraRepo "hufschlaeger.net/jira-issues-exporter/internal/repository/jira"
	"hufschlaeger.net/jira-issues-exporter/pkg/utils"
)

type Exporter struct {
	config    *config.Config
	jiraRepo  *jiraRepo.Repository
	excelRepo *excelRepo.Writer
	mapper    *Mapper
	in        *bufio.Reader
	out       io.Writer
}

func NewExporter(cfg *config.Config) (*Exporter, error) {
	repo, err := jiraRepo.NewRepository(cfg)
	if err != nil {
		return nil, err
	}

	return &Exporter{
		config:    cfg,
		jiraRepo:  repo,
		excelRepo: excelRepo.NewWriter(),
		mapper:    NewMapper(cfg),
		in:        bufio.NewReader(os.Stdin),
		out:       os.Stdout,
	}, nil
}

// SetIO tauscht Ein- und Ausgabe aus (für Tests).
func (e *Exporter) SetIO(in io.Reader, out io.Writer) {
	e.in = bufio.NewReader(in)
	e.out = out
}

// Run startet den Hauptablauf: verbinden, abfragen, auflisten,
// optional exportieren. Streng sequentiell, ein Durchlauf pro Aufruf.
func (e *Exporter) Run(ctx context.Context) error {
	// 1. Zugangsdaten prüfen, bevor irgendetwas gesendet wird
	if err := e.config.Validate(); err != nil {
		return err
	}

	// Im nicht-interaktiven Modus muss die JQL vorab feststehen;
	// sonst würde stillschweigend eine leere Abfrage gesendet
	if e.config.AutoConfirm && e.config.Query == "" {
		return fmt.Errorf("keine JQL-Abfrage konfiguriert für den nicht-interaktiven Modus")
	}

	// 2. Verbindung mit einem Versuch prüfen
	fmt.Fprintf(e.out, "🔐 Verbinde mit Jira: %s\n", e.config.GetBaseURL())
	if err := e.jiraRepo.Connect(ctx); err != nil {
		return err
	}

	// 3. Abfrage und Treffer-Limit bestimmen
	query := e.resolveQuery()
	maxResults := e.resolveMaxResults()

	// 4. Issues laden
	fmt.Fprintf(e.out, "🔍 Führe JQL-Abfrage aus: %s\n", query)
	issues, err := e.jiraRepo.Search(ctx, query, maxResults)
	if err != nil {
		return err
	}

	records := e.mapper.IssuesToRecords(issues)
	fmt.Fprintf(e.out, "📊 Gefunden: %d Issues\n", len(records))

	if len(records) == 0 {
		fmt.Fprintln(e.out, "ℹ️  Keine Issues gefunden")
		return nil
	}

	// 5. Trefferliste ausgeben
	e.printRecords(records)

	// 6. Optionaler Excel-Export
	if !e.confirmExport() {
		return nil
	}

	if err := e.excelRepo.Write(records, e.config.OutputFile, nil); err != nil {
		return err
	}

	fmt.Fprintf(e.out, "✅ Datei erstellt: %s (%d Issues)\n", e.config.OutputFile, len(records))
	return nil
}

// resolveQuery nimmt die Abfrage aus der Konfiguration oder fragt
// interaktiv nach. Die JQL wird unverändert durchgereicht.
func (e *Exporter) resolveQuery() string {
	if e.config.Query != "" {
		return e.config.Query
	}
	return e.prompt("JQL-Abfrage eingeben: ")
}

// resolveMaxResults fragt das Treffer-Limit ab. Leere oder ungültige
// Eingabe bedeutet: alle Treffer laden (Limit 0).
func (e *Exporter) resolveMaxResults() int {
	if e.config.MaxResults != 0 {
		return e.config.MaxResults
	}
	if e.config.AutoConfirm {
		return 0
	}

	input := e.prompt("Maximale Trefferzahl (leer = alle): ")
	if input == "" {
		return 0
	}

	parsed, err := strconv.Atoi(input)
	if err != nil {
		fmt.Fprintln(e.out, "⚠️  Ungültige Eingabe, lade alle Treffer")
		return 0
	}

	return parsed
}

// printRecords listet Key und Summary jedes Treffers auf.
func (e *Exporter) printRecords(records []*export.Record) {
	for _, record := range records {
		key, _ := record.Get("key")
		summary, _ := record.Get("summary")
		fmt.Fprintf(e.out, "   %s - %s\n",
			export.String(key),
			utils.TruncateText(export.String(summary), 80))
	}
}

// confirmExport fragt nach, ob die Treffer exportiert werden sollen.
func (e *Exporter) confirmExport() bool {
	if e.config.AutoConfirm {
		return true
	}

	answer := strings.ToLower(e.prompt("\nIssues nach Excel exportieren? (y/n): "))
	switch answer {
	case "y", "yes", "j", "ja":
		return true
	}
	return false
}

func (e *Exporter) prompt(label string) string {
	fmt.Fprint(e.out, label)

	line, err := e.in.ReadString('\n')
	if err != nil && line == "" {
		return ""
	}

	return strings.TrimSpace(line)
}
