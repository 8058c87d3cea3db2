// internal/app/bootstrap/startup.go
package bootstrap

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/dalemusser/taskhub/internal/app/coordinator"
	"github.com/dalemusser/taskhub/internal/app/store/backup"
	"github.com/dalemusser/taskhub/internal/app/store/bsonstore"
	"github.com/dalemusser/taskhub/internal/app/store/jsonstore"
	"github.com/dalemusser/taskhub/internal/app/store/layout"
	"github.com/dalemusser/taskhub/internal/app/store/persist"
)

// BuildSystem assembles the full storage stack under cfg.DataDir and returns
// a coordinator loaded from the most recent valid snapshot.
func BuildSystem(cfg AppConfig, logger *zap.Logger) (*coordinator.System, error) {
	lay, err := layout.New(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("prepare data directory: %w", err)
	}
	rot := backup.New(lay.BackupDir(), logger.Named("backup"))
	pm := persist.New(lay, rot, jsonstore.New(), bsonstore.New(), logger.Named("persist"))

	sys, err := coordinator.New(coordinator.Config{
		Autosave:        cfg.Autosave,
		BackupRetention: cfg.BackupRetention,
	}, pm, logger.Named("coordinator"))
	if err != nil {
		return nil, fmt.Errorf("load system state: %w", err)
	}
	return sys, nil
}
