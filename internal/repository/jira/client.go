package jira

import (
	"context"
	"fmt"
	"net/http"
	"time"

	gojira "github.com/andygrunwald/go-jira"

	"hufschlaeger.net/jira-issues-exporter/internal/config"
)

// AuthError kapselt einen fehlgeschlagenen Verbindungsaufbau zu Jira.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("Jira-Authentifizierung fehlgeschlagen: %v", e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// QueryError kapselt eine fehlgeschlagene JQL-Suche. Damit bleibt
// "Abfrage fehlgeschlagen" von "keine Treffer" unterscheidbar.
type QueryError struct {
	Query string
	Err   error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("JQL-Abfrage %q fehlgeschlagen: %v", e.Query, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// restFields bildet Export-Feldnamen auf Jira REST Feld-IDs ab.
// "key" fehlt bewusst: der Key kommt immer mit, ohne Feld-Parameter.
var restFields = map[string]string{
	"summary":     "summary",
	"description": "description",
	"status":      "status",
	"priority":    "priority",
	"type":        "issuetype",
	"created":     "created",
	"updated":     "updated",
	"resolved":    "resolutiondate",
	"assignee":    "assignee",
	"reporter":    "reporter",
	"project":     "project",
	"fixVersions": "fixVersions",
	"components":  "components",
	"labels":      "labels",
	"environment": "environment",
	"resolution":  "resolution",
	"timeSpent":   "timespent",
}

type Repository struct {
	config *config.Config
	client *gojira.Client
}

// NewRepository baut den Jira-Client passend zur Authentifizierungsmethode
// auf. Es findet noch kein Netzwerkzugriff statt; unvollständige
// Zugangsdaten schlagen hier fehl, bevor irgendetwas gesendet wird.
func NewRepository(cfg *config.Config) (*Repository, error) {
	var httpClient *http.Client

	switch cfg.Scheme() {
	case config.AuthBasic:
		transport := gojira.BasicAuthTransport{
			Username: cfg.Username,
			Password: cfg.APIToken,
		}
		httpClient = transport.Client()
	case config.AuthOAuth:
		transport := gojira.BearerAuthTransport{
			Token: cfg.AccessToken,
		}
		httpClient = transport.Client()
	default:
		return nil, cfg.Validate()
	}

	httpClient.Timeout = 30 * time.Second

	client, err := gojira.NewClient(httpClient, cfg.GetBaseURL())
	if err != nil {
		return nil, fmt.Errorf("ungültige Jira-URL %q: %w", cfg.ServerURL, err)
	}

	return &Repository{config: cfg, client: client}, nil
}

// Connect prüft die Zugangsdaten mit genau einem Request gegen /myself.
// Kein Retry: ein Versuch, dann Fehler.
func (r *Repository) Connect(ctx context.Context) error {
	if _, _, err := r.client.User.GetSelfWithContext(ctx); err != nil {
		return &AuthError{Err: err}
	}
	return nil
}

// Search reicht die JQL-Abfrage unverändert an Jira durch. Die Syntax
// prüft allein der Server. maxResults <= 0 lässt den maxResults-Parameter
// weg, der Server entscheidet dann wie viele Treffer ein Aufruf liefert
// (keine Pagination auf Client-Seite).
func (r *Repository) Search(ctx context.Context, jql string, maxResults int) ([]gojira.Issue, error) {
	options := &gojira.SearchOptions{
		Fields: r.restFieldIDs(),
	}
	if maxResults > 0 {
		options.MaxResults = maxResults
	}

	issues, _, err := r.client.Issue.SearchWithContext(ctx, jql, options)
	if err != nil {
		return nil, &QueryError{Query: jql, Err: err}
	}

	return issues, nil
}

func (r *Repository) restFieldIDs() []string {
	var ids []string
	for _, field := range r.config.Fields {
		if id, ok := restFields[field]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}
