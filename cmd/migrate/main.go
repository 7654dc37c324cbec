// Command migrate runs schema operations for the backend.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"devconnector/internal/config"
	"devconnector/internal/database"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func usage() error {
	return fmt.Errorf("usage: go run ./cmd/migrate/main.go <up|status>")
}

func run() error {
	flag.Parse()
	if flag.NArg() < 1 {
		return usage()
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(flag.Arg(0))) {
	case "up":
		// An explicit run migrates even where the startup policy would skip.
		cfg.DBAutoMigrate = true
		db, err := database.Connect(cfg)
		if err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
		log.Println("schema applied")
	case "status":
		status := database.GetSchemaStatus(cfg)
		log.Printf("env=%s driver=%s auto_migrate_on_start=%v",
			status.Environment, status.Driver, status.WillRunAutoMigrate)
	default:
		return usage()
	}
	return nil
}
