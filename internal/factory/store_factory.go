package factory

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/jfmartin/mail-harvester/internal/adapters/store"
	"github.com/jfmartin/mail-harvester/internal/config"
	"github.com/jfmartin/mail-harvester/internal/core"
)

// StoreFactory creates record stores based on configuration
type StoreFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewStoreFactory creates a new store factory
func NewStoreFactory(cfg *config.Config, logger *zap.Logger) *StoreFactory {
	return &StoreFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateRecordStore creates a record store based on the configuration
func (f *StoreFactory) CreateRecordStore() (core.RecordStore, error) {
	storageCfg := f.cfg.GetStorage()

	switch storageCfg.Type {
	case "csv":
		return store.NewCSVStore(storageCfg.CSVPath, f.logger)
	case "sqlite":
		if err := os.MkdirAll(filepath.Dir(storageCfg.SQLitePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create SQLite directory: %w", err)
		}
		return store.NewSQLiteStore(storageCfg.SQLitePath, f.logger)
	case "mysql":
		return store.NewMySQLStore(storageCfg.MySQLDSN, f.logger)
	case "memory":
		return store.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", storageCfg.Type)
	}
}
