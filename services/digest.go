package services

import (
	"fmt"
	"html"
	"strings"
)

const (
	AlertSubject    = "Critical Alert: SFTP Cleanup Errors"
	digestSeparator = "<br>&nbsp;<br>"
)

// BuildDigest erzeugt je eine HTML-Zeile pro Target, das Eingriff erfordert.
// Saubere Ergebnisse tauchen nicht auf.
func BuildDigest(outcomes []Outcome) []string {
	var lines []string
	for _, outcome := range outcomes {
		switch o := outcome.(type) {
		case FilesPresent:
			lines = append(lines, fmt.Sprintf(
				"Auf Server: <b>%s</b> unter Pfad: <b>%s</b> verbleiben unverarbeitete Dateien: <b>%s</b>",
				html.EscapeString(o.Hostname),
				html.EscapeString(o.RemotePath),
				html.EscapeString(strings.Join(o.Files, ", "))))
		case ScanError:
			lines = append(lines, fmt.Sprintf(
				"Server <b>%s</b> (Pfad: <b>%s</b>) meldete einen Fehler: %s",
				html.EscapeString(o.Hostname),
				html.EscapeString(o.RemotePath),
				html.EscapeString(o.Message)))
		}
	}
	return lines
}

// DigestBody verbindet die Zeilen zum HTML-Body der Alarm-Mail
func DigestBody(lines []string) string {
	return strings.Join(lines, digestSeparator)
}
