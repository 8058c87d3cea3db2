// internal/app/bootstrap/config.go
package bootstrap

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// appConfigKeys defines the configuration keys for taskhub with their
// defaults. Each key is reachable as TASKHUB_<KEY> in the environment or as
// the same name in an optional taskhub.yaml config file.
var appConfigKeys = []struct {
	Name    string
	Default any
	Desc    string
}{
	{Name: "data_dir", Default: "data", Desc: "Base directory for stores and backups"},
	{Name: "backup_retention", Default: "168h", Desc: "How long to keep backup snapshots (e.g. 168h for 7 days)"},
	{Name: "autosave", Default: false, Desc: "Persist after every mutating operation"},
	{Name: "log_level", Default: "info", Desc: "Log level: debug, info, warn, error"},
	{Name: "log_format", Default: "console", Desc: "Log output format: console or json"},
}

// LoadConfig loads taskhub configuration with precedence env > file >
// defaults. A missing config file is fine; a malformed one is not.
func LoadConfig() (AppConfig, error) {
	v := viper.New()
	for _, key := range appConfigKeys {
		v.SetDefault(key.Name, key.Default)
	}
	v.SetEnvPrefix("TASKHUB")
	v.AutomaticEnv()
	v.SetConfigName("taskhub")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return AppConfig{}, fmt.Errorf("read config file: %w", err)
		}
	}

	retention, err := time.ParseDuration(v.GetString("backup_retention"))
	if err != nil {
		return AppConfig{}, fmt.Errorf("invalid backup_retention: %w", err)
	}

	return AppConfig{
		DataDir:         v.GetString("data_dir"),
		BackupRetention: retention,
		Autosave:        v.GetBool("autosave"),
		LogLevel:        v.GetString("log_level"),
		LogFormat:       v.GetString("log_format"),
	}, nil
}

// ValidateConfig enforces invariants the rest of the app assumes. It is the
// place to reject configurations before any directory or file is touched.
func ValidateConfig(cfg AppConfig) error {
	if strings.TrimSpace(cfg.DataDir) == "" {
		return errors.New("data_dir must not be empty")
	}
	if cfg.BackupRetention <= 0 {
		return fmt.Errorf("backup_retention must be positive, got %s", cfg.BackupRetention)
	}
	switch cfg.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("log_format must be console or json, got %q", cfg.LogFormat)
	}
	return nil
}
