// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds everything taskhub reads from configuration.
//
// Values come from defaults, an optional taskhub.yaml in the working
// directory, and TASKHUB_* environment variables (loaded in LoadConfig,
// precedence env > file > defaults). Add fields here as the app grows; the
// struct is handed to every subsystem that needs configuration.
type AppConfig struct {
	// DataDir is the base directory that owns the json/, binarios/, and
	// backups/ subdirectories. One running instance per data directory.
	DataDir string

	// BackupRetention is how long pruned backup snapshots are kept. The
	// newest snapshot per store kind survives regardless.
	BackupRetention time.Duration

	// Autosave persists both formats after every mutating operation instead
	// of only on explicit save.
	Autosave bool

	// Logging configuration.
	LogLevel  string // debug | info | warn | error
	LogFormat string // console | json
}
