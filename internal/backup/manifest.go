package backup

import "time"

// FormatVersion is the backup document version. Increment on breaking changes.
const FormatVersion = 1

// Document is the YAML form of an override backup:
//
//	version: 1
//	exported_at: 2026-01-02T15:04:05Z
//	overrides:
//	    a: Apple
//	    "!": Bang
type Document struct {
	Version    int               `yaml:"version"`
	ExportedAt time.Time         `yaml:"exported_at"`
	Overrides  map[string]string `yaml:"overrides" validate:"dive,keys,character,endkeys"`
}
