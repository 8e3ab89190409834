package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	_ "github.com/joho/godotenv/autoload"
	"github.com/wharfdock/wharfd/core/fxlog"
	"github.com/wharfdock/wharfd/internal/apiserver"
	"github.com/wharfdock/wharfd/internal/containerservice"
	"github.com/wharfdock/wharfd/internal/types"
	"go.uber.org/fx"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	slog.SetLogLoggerLevel(slog.LevelDebug)
	fx.New(
		fxlog.Logger(),
		fx.Provide(provideConfig),
		fx.Provide(provideGORM),
		fx.Provide(containerservice.New),
		fx.Provide(apiserver.New),
		fx.Provide(func(lc fx.Lifecycle, service *containerservice.Service) types.ContainerService {
			lc.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					return service.Start(ctx)
				},
				OnStop: func(ctx context.Context) error {
					return service.Stop(ctx)
				},
			})
			return service
		}),
		fx.Invoke(func(lc fx.Lifecycle, server *apiserver.Server) {
			lc.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					return server.Start(ctx)
				},
				OnStop: func(ctx context.Context) error {
					return server.Stop(ctx)
				},
			})
		}),
	).Run()
}

func provideConfig() (*types.Config, error) {
	config := types.Config{
		APIAddr:          os.Getenv("WHARFD_API_ADDR"),
		StorageDirectory: os.Getenv("WHARFD_STORAGE_DIRECTORY"),
	}
	if config.APIAddr == "" {
		config.APIAddr = ":3600"
	}
	if config.StorageDirectory == "" {
		config.StorageDirectory = "/var/lib/wharfd"
	}
	if !filepath.IsAbs(config.StorageDirectory) {
		absPath, err := filepath.Abs(config.StorageDirectory)
		if err != nil {
			return nil, fmt.Errorf("failed to get absolute path of the storage directory: %w", err)
		}
		config.StorageDirectory = absPath
	}
	if err := os.MkdirAll(config.StorageDirectory, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &config, nil
}

func provideGORM(config *types.Config) (*gorm.DB, error) {
	dbName := "wharfd.db?_busy_timeout=5000&_journal_mode=WAL&_synchronous=NORMAL"
	db, err := gorm.Open(sqlite.Open(path.Join(config.StorageDirectory, dbName)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&types.Container{},
		&types.ContainerEvent{},
	)
	if err != nil {
		return nil, err
	}
	return db, nil
}
