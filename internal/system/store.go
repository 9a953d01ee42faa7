package system

import (
	"context"
	"fmt"

	"memberclub-backend/internal/config"
	"memberclub-backend/internal/logger"
	"memberclub-backend/internal/repository/postgres"
	"memberclub-backend/internal/storage"
)

// OpenRecordStore returns the record store selected by cfg.Storage.Type.
func OpenRecordStore(ctx context.Context, cfg *config.Config) (storage.RecordStore, error) {
	switch cfg.Storage.Type {
	case storage.TypeFile, "":
		logger.Info("Using file storage", "data_dir", cfg.Storage.DataDir)
		return storage.NewFileStore(cfg.Storage.DataDir)
	case storage.TypePostgres:
		logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database)
		store, err := postgres.Open(ctx, cfg.GetDatabaseConnectionString())
		if err != nil {
			return nil, err
		}
		if err := store.EnsureSchema(ctx); err != nil {
			store.Close()
			return nil, err
		}
		logger.Info("Database connection established")
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported storage type %q", cfg.Storage.Type)
	}
}
