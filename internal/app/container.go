package app

import (
	"context"
	"errors"

	"github.com/doeshing/envsync/internal/application/doctor"
	"github.com/doeshing/envsync/internal/application/envsync"
	"github.com/doeshing/envsync/internal/domain"
	"github.com/doeshing/envsync/internal/infrastructure/config"
	"github.com/doeshing/envsync/internal/infrastructure/envfile"
	"github.com/doeshing/envsync/internal/infrastructure/history"
	"github.com/doeshing/envsync/internal/infrastructure/manifest"
	"github.com/doeshing/envsync/internal/pkg/logger"
	"github.com/doeshing/envsync/internal/ports"
)

// Container wires up application services with infrastructure adapters.
type Container struct {
	Config         domain.Config
	ConfigProvider ports.ConfigProvider
	ConfigLoader   *config.FileLoader
	SyncService    *envsync.Service
	DoctorService  *doctor.Service
	HistoryStore   ports.HistoryRepository
	Logger         *logger.ZapLogger

	sqlite *history.SQLiteStore
}

// BuildContainer constructs the dependency graph.
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	log, err := logger.New(verbose)
	if err != nil {
		return nil, err
	}

	cfgLoader := config.NewFileLoader("")
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}
	log.Debug("config.loaded", map[string]interface{}{"path": cfgLoader.Path()})

	c := &Container{
		Config:         cfg,
		ConfigProvider: cfgLoader,
		ConfigLoader:   cfgLoader,
		Logger:         log,
	}

	if cfg.History.Enabled {
		c.sqlite = history.NewSQLiteStore(cfg.History.Path)
		if c.sqlite.Degraded() {
			log.Warn("history.sqlite_unavailable", map[string]interface{}{"path": cfg.History.Path})
		}
		c.HistoryStore = c.sqlite
	}

	c.SyncService = &envsync.Service{
		Locator: manifest.NewLocator(cfg.ManifestName),
		Reader:  manifest.NewReader(cfg.SchemaField),
		Store:   envfile.NewStore(),
		History: c.HistoryStore,
		Logger:  log,
		EnvFile: cfg.EnvFile,
	}

	c.DoctorService = &doctor.Service{
		ConfigProvider: cfgLoader,
		Sync:           c.SyncService,
		History:        c.HistoryStore,
	}

	return c, nil
}

// Close releases the history database and flushes logs.
func (c *Container) Close() error {
	var errs []error
	if c.sqlite != nil {
		errs = append(errs, c.sqlite.Close())
	}
	if c.Logger != nil {
		// Syncing stderr fails with EINVAL on some platforms; it is not actionable.
		_ = c.Logger.Sync()
	}
	return errors.Join(errs...)
}
