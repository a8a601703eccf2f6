package utils

import (
	"fmt"
	"strings"
	"time"
)

// FormatTimestamp konvertiert einen Jira-Zeitstempel in ein lesbares Format.
// Der Nullwert wird zur leeren Zeichenkette.
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}

// FormatWorklog rendert erfasste Arbeitszeit in Sekunden als Jira-übliche
// Kurzform ("1d 2h 30m"). 0 Sekunden werden zur leeren Zeichenkette.
func FormatWorklog(seconds int) string {
	if seconds <= 0 {
		return ""
	}

	// Jira rechnet mit 8h-Arbeitstagen
	days := seconds / (8 * 3600)
	hours := (seconds % (8 * 3600)) / 3600
	minutes := (seconds % 3600) / 60

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	if len(parts) == 0 {
		return fmt.Sprintf("%ds", seconds)
	}

	return strings.Join(parts, " ")
}

// TruncateText kürzt Text auf maximale Länge
func TruncateText(text string, maxLength int) string {
	if len(text) <= maxLength {
		return text
	}

	if maxLength <= 3 {
		return text[:maxLength]
	}

	return text[:maxLength-3] + "..."
}
