// internal/app/bootstrap/config_test.go
package bootstrap

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.DataDir != "data" {
		t.Errorf("DataDir = %q, want %q", cfg.DataDir, "data")
	}
	if cfg.BackupRetention != 168*time.Hour {
		t.Errorf("BackupRetention = %s, want 168h", cfg.BackupRetention)
	}
	if cfg.Autosave {
		t.Error("Autosave = true, want false by default")
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "console" {
		t.Errorf("logging = %s/%s, want info/console", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("TASKHUB_DATA_DIR", "/var/lib/taskhub")
	t.Setenv("TASKHUB_BACKUP_RETENTION", "24h")
	t.Setenv("TASKHUB_AUTOSAVE", "true")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.DataDir != "/var/lib/taskhub" {
		t.Errorf("DataDir = %q, want %q", cfg.DataDir, "/var/lib/taskhub")
	}
	if cfg.BackupRetention != 24*time.Hour {
		t.Errorf("BackupRetention = %s, want 24h", cfg.BackupRetention)
	}
	if !cfg.Autosave {
		t.Error("Autosave = false, want true")
	}
}

func TestLoadConfigBadRetention(t *testing.T) {
	t.Setenv("TASKHUB_BACKUP_RETENTION", "a fortnight")
	if _, err := LoadConfig(); err == nil {
		t.Error("LoadConfig succeeded with a bad duration, want error")
	}
}

func TestValidateConfig(t *testing.T) {
	valid := AppConfig{
		DataDir:         "data",
		BackupRetention: 168 * time.Hour,
		LogLevel:        "info",
		LogFormat:       "console",
	}
	if err := ValidateConfig(valid); err != nil {
		t.Fatalf("ValidateConfig rejected a valid config: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*AppConfig)
	}{
		{"blank data dir", func(c *AppConfig) { c.DataDir = "  " }},
		{"zero retention", func(c *AppConfig) { c.BackupRetention = 0 }},
		{"negative retention", func(c *AppConfig) { c.BackupRetention = -time.Hour }},
		{"unknown log format", func(c *AppConfig) { c.LogFormat = "xml" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid
			tc.mutate(&cfg)
			if err := ValidateConfig(cfg); err == nil {
				t.Error("ValidateConfig succeeded, want error")
			}
		})
	}
}
