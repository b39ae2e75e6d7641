package main

import (
	"github.com/ericogr/vino-arena/internal/config"
	"github.com/ericogr/vino-arena/internal/logging"
	"github.com/ericogr/vino-arena/internal/storage"
)

func loadSettingsOrExit() config.Settings {
	settings, err := config.LoadSettings()
	if err != nil {
		logging.Fatal("Invalid environment configuration", err, nil)
	}
	return settings
}

func loadConfigOrExit(path string) *config.LoadedConfig {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		logging.Fatal("Missing or invalid game configuration", err, logging.Fields{"config_path": path})
	}
	return cfg
}

func createRepositoryOrExit(dbPath string, cfg *config.LoadedConfig) storage.Repository {
	db, err := storage.OpenAndMigrate(dbPath)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}
	return storage.NewSQLiteRepository(db, cfg.SeedWines, cfg.OpenBattlesTTL)
}
