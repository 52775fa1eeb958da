package backup

// RestoreMode determines how imported overrides combine with the current set.
type RestoreMode string

const (
	// RestoreModeReplace discards current overrides and uses the backup's.
	RestoreModeReplace RestoreMode = "replace"

	// RestoreModeMerge keeps current overrides and lets the backup win on conflict.
	RestoreModeMerge RestoreMode = "merge"
)

// Valid returns true if the restore mode is recognized.
func (m RestoreMode) Valid() bool {
	switch m {
	case RestoreModeReplace, RestoreModeMerge:
		return true
	default:
		return false
	}
}

// RestoreOptions configures an import.
type RestoreOptions struct {
	Mode   RestoreMode
	DryRun bool // Validate and report without changing overrides
}

// DefaultRestoreOptions replaces the current overrides.
func DefaultRestoreOptions() RestoreOptions {
	return RestoreOptions{Mode: RestoreModeReplace}
}

// RestoreResult describes the outcome of an import.
type RestoreResult struct {
	Mode RestoreMode `json:"mode"`
	// Imported counts backup entries that changed a code word.
	Imported int `json:"imported"`
	// Unchanged counts backup entries that already matched.
	Unchanged int `json:"unchanged"`
	// Removed counts current overrides dropped by a replace.
	Removed int  `json:"removed"`
	DryRun  bool `json:"dry_run"`
}

// ExportResult describes a written backup file.
type ExportResult struct {
	Path  string `json:"path"`
	Size  int64  `json:"size"`
	Count int    `json:"count"`
}
