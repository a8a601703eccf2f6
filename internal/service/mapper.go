package service

import (
	"strings"
	"time"

	gojira "github.com/andygrunwald/go-jira"

	"hufschlaeger.net/jira-issues-exporter/internal/config"
	"hufschlaeger.net/jira-issues-exporter/internal/domain/export"
	"hufschlaeger.net/jira-issues-exporter/pkg/utils"
)

// UnassignedSentinel steht in der assignee-Spalte wenn niemand zugewiesen ist.
const UnassignedSentinel = "Unassigned"

type Mapper struct {
	config *config.Config
}

func NewMapper(cfg *config.Config) *Mapper {
	return &Mapper{config: cfg}
}

// IssueToRecord projiziert ein Jira-Issue auf einen flachen Export-Record.
// Projiziert werden die konfigurierten Felder; "key" ist immer dabei und
// immer das erste Feld. Fehlende Felder werden nil (bzw. ein leerer
// Join-String bei Listen), nie ein Absturz.
func (m *Mapper) IssueToRecord(issue gojira.Issue) *export.Record {
	record := export.NewRecord()
	record.Set("key", export.Ptr(issue.Key))

	for _, field := range m.config.Fields {
		if field == "key" {
			continue
		}
		record.Set(field, m.projectField(issue, field))
	}

	return record
}

// IssuesToRecords konvertiert eine Trefferliste, ein Record pro Issue.
func (m *Mapper) IssuesToRecords(issues []gojira.Issue) []*export.Record {
	records := make([]*export.Record, 0, len(issues))
	for _, issue := range issues {
		records = append(records, m.IssueToRecord(issue))
	}
	return records
}

func (m *Mapper) projectField(issue gojira.Issue, field string) *string {
	fields := issue.Fields
	if fields == nil {
		// Listen-Felder bleiben auch dann ein leerer Join-String
		switch field {
		case "fixVersions", "components", "labels":
			return export.Ptr("")
		case "assignee":
			return export.Ptr(UnassignedSentinel)
		}
		return nil
	}

	switch field {
	case "summary":
		return export.Ptr(fields.Summary)
	case "description":
		return nonEmpty(fields.Description)
	case "status":
		if fields.Status != nil {
			return nonEmpty(fields.Status.Name)
		}
	case "priority":
		if fields.Priority != nil {
			return nonEmpty(fields.Priority.Name)
		}
	case "type":
		return nonEmpty(fields.Type.Name)
	case "created":
		return formatTime(fields.Created)
	case "updated":
		return formatTime(fields.Updated)
	case "resolved":
		return formatTime(fields.Resolutiondate)
	case "assignee":
		if fields.Assignee != nil {
			return export.Ptr(displayName(fields.Assignee))
		}
		return export.Ptr(UnassignedSentinel)
	case "reporter":
		if fields.Reporter != nil {
			return export.Ptr(displayName(fields.Reporter))
		}
	case "project":
		if fields.Project.Name != "" {
			return export.Ptr(fields.Project.Name)
		}
		return nonEmpty(fields.Project.Key)
	case "fixVersions":
		return export.Ptr(joinVersions(fields.FixVersions))
	case "components":
		return export.Ptr(joinComponents(fields.Components))
	case "labels":
		return export.Ptr(strings.Join(fields.Labels, ", "))
	case "environment":
		return nonEmpty(fields.Environment)
	case "resolution":
		if fields.Resolution != nil {
			return nonEmpty(fields.Resolution.Name)
		}
	case "timeSpent":
		if fields.TimeSpent > 0 {
			return export.Ptr(utils.FormatWorklog(fields.TimeSpent))
		}
	}

	return nil
}

// Helper Functions

func nonEmpty(value string) *string {
	if value == "" {
		return nil
	}
	return export.Ptr(value)
}

func formatTime(t gojira.Time) *string {
	return nonEmpty(utils.FormatTimestamp(time.Time(t)))
}

func displayName(user *gojira.User) string {
	if user.DisplayName != "" {
		return user.DisplayName
	}
	return user.Name
}

func joinVersions(versions []*gojira.FixVersion) string {
	var names []string
	for _, version := range versions {
		if version != nil {
			names = append(names, version.Name)
		}
	}
	return strings.Join(names, ", ")
}

func joinComponents(components []*gojira.Component) string {
	var names []string
	for _, component := range components {
		if component != nil {
			names = append(names, component.Name)
		}
	}
	return strings.Join(names, ", ")
}
