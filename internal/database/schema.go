package database

import (
	"context"
	"fmt"
	"log/slog"

	"devconnector/internal/config"
	"devconnector/internal/middleware"

	"gorm.io/gorm"
)

// SchemaStatus describes what ApplySchema will do for a given config.
type SchemaStatus struct {
	Environment        string
	Driver             string
	WillRunAutoMigrate bool
}

// Production only migrates when DB_AUTO_MIGRATE is set explicitly.
func schemaPolicy(cfg *config.Config) bool {
	return cfg.DBAutoMigrate || !cfg.IsProduction()
}

func GetSchemaStatus(cfg *config.Config) SchemaStatus {
	return SchemaStatus{
		Environment:        cfg.Env,
		Driver:             cfg.DBDriver,
		WillRunAutoMigrate: schemaPolicy(cfg),
	}
}

func ApplySchema(ctx context.Context, db *gorm.DB, cfg *config.Config) error {
	if !schemaPolicy(cfg) {
		middleware.Logger.Info("Skipping GORM AutoMigrate", slog.String("env", cfg.Env))
		return nil
	}

	middleware.Logger.Info("Running GORM AutoMigrate", slog.String("env", cfg.Env), slog.String("driver", cfg.DBDriver))
	if err := db.WithContext(ctx).AutoMigrate(PersistentModels()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	middleware.Logger.Info("Database migration completed")
	return nil
}
