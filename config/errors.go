package config

import "strings"

// MissingKeysError listet alle fehlenden Pflicht-Schlüssel
type MissingKeysError struct {
	Keys []string
}

func (e *MissingKeysError) Error() string {
	return "fehlende Konfiguration: " + strings.Join(e.Keys, ", ")
}
