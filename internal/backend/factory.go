package backend

import (
	"context"
	"fmt"

	"finledger/internal/config"
	"finledger/internal/log"
	"finledger/internal/storage"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *log.Logger
}

// NewFactory creates a new persistence port factory
func NewFactory(logger *log.Logger) Factory {
	if logger == nil {
		logger = log.New(log.Config{Component: log.ComponentBackend})
	}
	return &DefaultFactory{
		logger: logger,
	}
}

// FromAppConfig converts the application config to backend config
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	backendType := Type(appConfig.StorageBackend)
	if !backendType.IsValid() {
		return Config{}, fmt.Errorf("invalid backend type in config: %s", appConfig.StorageBackend)
	}

	return Config{
		Type:         backendType,
		LedgerPath:   appConfig.LedgerPath,
		SQLiteDBPath: appConfig.SQLiteDBPath,
	}, nil
}

// CreatePort implements Factory.CreatePort
func (f *DefaultFactory) CreatePort(_ context.Context, config Config) (*Result, error) {
	if !config.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", config.Type)
	}

	switch config.Type {
	case JSONFileBackend:
		port, err := storage.NewJSONFile(config.LedgerPath)
		if err != nil {
			return nil, fmt.Errorf("initialize jsonfile port: %w", err)
		}
		f.logger.Info("Initialized jsonfile backend", log.FieldPath, config.LedgerPath)
		return &Result{Port: port, Cleanup: port.Close}, nil

	case SQLiteBackend:
		port, err := storage.NewSQLite(config.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite port: %w", err)
		}
		f.logger.Info("Initialized sqlite backend", log.FieldPath, config.SQLiteDBPath)
		return &Result{Port: port, Cleanup: port.Close}, nil

	case MemoryBackend:
		port := storage.NewMemory()
		f.logger.Info("Initialized memory backend")
		return &Result{Port: port, Cleanup: port.Close}, nil

	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}
