package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"hufschlaeger.net/jira-issues-exporter/internal/config"
)

// ParseFlags liest Flags über die Umgebungs-Defaults aus config.NewConfig.
// Flags schlagen Environment-Variablen; was beides fehlt, wird später
// interaktiv abgefragt (JQL, Trefferzahl, Export-Bestätigung).
func ParseFlags(args []string) (*config.Config, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, err
	}

	flags := flag.NewFlagSet("jira-issues-exporter", flag.ContinueOnError)
	flags.Usage = func() { printUsage(flags) }

	var fieldList string

	flags.StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Jira Server URL")
	flags.StringVar(&cfg.Username, "username", cfg.Username, "Jira Benutzername (Basic Auth)")
	flags.StringVar(&cfg.APIToken, "api-token", cfg.APIToken, "Jira API Token (Basic Auth)")
	flags.StringVar(&cfg.ClientID, "client-id", cfg.ClientID, "OAuth Client ID")
	flags.StringVar(&cfg.ClientSecret, "client-secret", cfg.ClientSecret, "OAuth Client Secret")
	flags.StringVar(&cfg.AccessToken, "access-token", cfg.AccessToken, "OAuth Access Token")

	flags.StringVar(&cfg.Query, "query", "", "JQL-Abfrage (sonst interaktive Eingabe)")
	flags.IntVar(&cfg.MaxResults, "max-results", 0, "Maximale Trefferzahl (<= 0: alle)")
	flags.StringVar(&cfg.OutputFile, "output", cfg.OutputFile, "Output Datei")
	flags.StringVar(&fieldList, "fields", "", "Kommagetrennte Feldliste für den Export")
	flags.BoolVar(&cfg.AutoConfirm, "yes", false, "Keine Rückfragen, Export immer durchführen")
	flags.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "Konfiguration beim Start ausgeben")

	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	if fieldList != "" {
		cfg.Fields = splitFields(fieldList)
	}

	if err := cfg.Validate(); err != nil {
		flags.Usage()
		return nil, err
	}

	// Ohne Rückfragen gibt es keine Gelegenheit, die JQL nachzureichen
	if cfg.AutoConfirm && cfg.Query == "" {
		flags.Usage()
		return nil, fmt.Errorf("-yes erfordert eine JQL-Abfrage über -query")
	}

	return cfg, nil
}

func splitFields(fieldList string) []string {
	var fields []string
	for _, field := range strings.Split(fieldList, ",") {
		if trimmed := strings.TrimSpace(field); trimmed != "" {
			fields = append(fields, trimmed)
		}
	}
	return fields
}

func printUsage(flags *flag.FlagSet) {
	fmt.Fprintf(os.Stderr, `Jira Issues Exporter

Usage: %s [OPTIONS]

Beispiele:
  # Interaktive Abfrage, Basic Auth aus der Umgebung
  %s

  # JQL und Limit direkt übergeben
  %s -query "project = DEMO" -max-results 5

  # Ohne Rückfragen direkt nach Excel exportieren
  %s -query "project = DEMO" -yes -output reports/demo.xlsx

Optionen:
`, os.Args[0], os.Args[0], os.Args[0], os.Args[0])
	flags.PrintDefaults()
	fmt.Fprintf(os.Stderr, `
Environment Variables:
  JIRA_SERVER         Jira Server URL
  JIRA_USERNAME       Jira Benutzername (Basic Auth)
  JIRA_API_TOKEN      Jira API Token (Basic Auth)
  JIRA_CLIENT_ID      OAuth Client ID
  JIRA_CLIENT_SECRET  OAuth Client Secret
  JIRA_ACCESS_TOKEN   OAuth Access Token
  OUTPUT_FILE         Output Datei
`)
}
