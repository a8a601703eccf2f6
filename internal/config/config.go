package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// ErrMissingCredentials wird zurückgegeben wenn kein vollständiger
// Credential-Satz vorliegt (weder Basic Auth noch OAuth).
var ErrMissingCredentials = errors.New("keine vollständigen Jira-Zugangsdaten gefunden")

// AuthScheme beschreibt die gewählte Authentifizierungsmethode.
type AuthScheme int

const (
	AuthNone AuthScheme = iota
	AuthBasic
	AuthOAuth
)

// DefaultFields sind die Felder die ohne explizite Auswahl exportiert werden.
var DefaultFields = []string{
	"key", "summary", "description", "status", "priority", "type",
	"created", "updated", "resolved", "assignee", "reporter", "project",
	"fixVersions", "components", "labels", "environment", "resolution",
	"timeSpent",
}

type Config struct {
	ServerURL    string
	Username     string
	APIToken     string
	ClientID     string
	ClientSecret string
	AccessToken  string
	Query        string
	MaxResults   int
	OutputFile   string
	Fields       []string
	AutoConfirm  bool
	Verbose      bool
}

func NewConfig() (*Config, error) {
	// .env laden (ignoriere Fehler wenn Datei nicht existiert)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Printf("⚠️  Warnung beim Laden der .env: %v\n", err)
	}

	cfg := &Config{
		ServerURL:    getEnv("JIRA_SERVER", "https://your-jira-instance.atlassian.net"),
		Username:     getEnv("JIRA_USERNAME", ""),
		APIToken:     getEnv("JIRA_API_TOKEN", ""),
		ClientID:     getEnv("JIRA_CLIENT_ID", ""),
		ClientSecret: getEnv("JIRA_CLIENT_SECRET", ""),
		AccessToken:  getEnv("JIRA_ACCESS_TOKEN", ""),
		OutputFile:   getEnv("OUTPUT_FILE", "jira_issues.xlsx"),
		Fields:       append([]string(nil), DefaultFields...),
		Verbose:      getBoolEnv("VERBOSE", false),
	}

	if cfg.Verbose {
		cfg.printDebugInfo()
	}

	return cfg, nil
}

func (c *Config) printDebugInfo() {
	fmt.Printf("🔧 Configuration loaded:\n")
	fmt.Printf("   Jira Server: %s\n", c.ServerURL)
	fmt.Printf("   Output File: %s\n", c.OutputFile)
	fmt.Printf("   Has API Token: %t (length: %d)\n",
		c.APIToken != "", len(c.APIToken))
	fmt.Printf("   Has Access Token: %t\n", c.AccessToken != "")
	fmt.Printf("   Fields: %s\n", strings.Join(c.Fields, ", "))
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// Scheme bestimmt die Authentifizierungsmethode. Basic Auth hat Vorrang,
// danach OAuth; unvollständige Sätze zählen nicht.
func (c *Config) Scheme() AuthScheme {
	if c.ServerURL != "" && c.Username != "" && c.APIToken != "" {
		return AuthBasic
	}
	if c.ServerURL != "" && c.ClientID != "" && c.ClientSecret != "" && c.AccessToken != "" {
		return AuthOAuth
	}
	return AuthNone
}

// Validate prüft ob ein vollständiger Credential-Satz vorliegt.
// Läuft vor jedem Netzwerkzugriff.
func (c *Config) Validate() error {
	if c.Scheme() == AuthNone {
		return fmt.Errorf("%w (JIRA_USERNAME + JIRA_API_TOKEN oder JIRA_CLIENT_ID + JIRA_CLIENT_SECRET + JIRA_ACCESS_TOKEN)", ErrMissingCredentials)
	}
	return nil
}

// GetBaseURL liefert die Server-URL ohne trailing Slash.
func (c *Config) GetBaseURL() string {
	return strings.TrimSuffix(c.ServerURL, "/")
}
