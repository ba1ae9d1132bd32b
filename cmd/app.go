package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/killallgit/marathon-api/api/types"
	"github.com/killallgit/marathon-api/internal/database"
	"github.com/killallgit/marathon-api/internal/services/catalog"
	"github.com/killallgit/marathon-api/internal/services/enrichment"
	"github.com/killallgit/marathon-api/internal/services/marathons"
	"github.com/killallgit/marathon-api/internal/services/storage"
	"github.com/killallgit/marathon-api/pkg/config"
)

// app owns every long-lived component built from configuration
type app struct {
	cfg         *config.Config
	db          *database.DB
	backend     storage.Store
	writeBehind *storage.WriteBehind
	cache       *catalog.DetailsCache
	catalog     *catalog.CachedClient
	engine      *marathons.Engine
}

// appOptions tunes how the app is assembled
type appOptions struct {
	// writeBehind makes store writes asynchronous; the CLI writes through
	writeBehind bool
	// onFailure replaces the default storage failure logger
	onFailure storage.FailureHandler
}

// newApp wires config → database → store → catalog → enrichment → engine
func newApp(ctx context.Context, cfg *config.Config, opts appOptions) (*app, error) {
	a := &app{cfg: cfg}

	backend, db, err := openBackend(cfg)
	if err != nil {
		return nil, err
	}
	a.backend, a.db = backend, db

	onFailure := opts.onFailure
	if onFailure == nil {
		onFailure = storage.LogFailure
	}

	store := backend
	if opts.writeBehind {
		a.writeBehind = storage.NewWriteBehind(backend,
			storage.WithFlushInterval(cfg.Storage.FlushInterval),
			storage.WithFailureHandler(onFailure),
		)
		store = a.writeBehind
	}

	engineOpts := []marathons.Option{marathons.WithFailureHandler(onFailure)}
	if enricher := a.newEnricher(); enricher != nil {
		engineOpts = append(engineOpts, marathons.WithEnricher(enricher))
	}

	a.engine = marathons.NewEngine(ctx, store, engineOpts...)
	return a, nil
}

// openBackend opens the configured persistence backend. The database is only
// opened for the sqlite backend.
func openBackend(cfg *config.Config) (storage.Store, *database.DB, error) {
	switch strings.ToLower(cfg.Storage.Backend) {
	case "memory":
		log.Printf("[WARNING] Using in-memory storage; marathons are lost on exit")
		return storage.NewMemoryStore(cfg.Storage.QuotaBytes), nil, nil
	case "file":
		store, err := storage.NewFileStore(cfg.Storage.Dir, cfg.Storage.QuotaBytes)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open file store: %w", err)
		}
		log.Printf("[INFO] Using file storage in %s", store.Dir())
		return store, nil, nil
	case "sqlite", "":
		db, err := openDatabase(cfg)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Migrate(); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		log.Printf("[INFO] Using sqlite storage at %s", cfg.Database.Path)
		return storage.NewSQLStore(db.DB), db, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// openDatabase opens the sqlite database and applies pool settings
func openDatabase(cfg *config.Config) (*database.DB, error) {
	db, err := database.Initialize(cfg.Database.Path, cfg.Database.LogQueries)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if sqlDB, err := db.DB.DB(); err == nil && cfg.Database.Path != "" && cfg.Database.Path != ":memory:" {
		if cfg.Database.MaxConnections > 0 {
			sqlDB.SetMaxOpenConns(cfg.Database.MaxConnections)
		}
		if cfg.Database.MaxIdleConnections > 0 {
			sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConnections)
		}
		if cfg.Database.ConnectionMaxLifetime > 0 {
			sqlDB.SetConnMaxLifetime(cfg.Database.ConnectionMaxLifetime)
		}
	}
	return db, nil
}

// newEnricher builds catalog enrichment, or nil when no API key is configured
func (a *app) newEnricher() *enrichment.Enricher {
	cc := a.cfg.Catalog
	if cc.APIKey == "" {
		log.Printf("[WARNING] catalog.api_key is not set; partial movie records will not be completed")
		return nil
	}

	a.cache = catalog.NewDetailsCache(cc.CacheTTL)
	a.catalog = catalog.NewCachedClient(catalog.Config{
		BaseURL:           cc.BaseURL,
		APIKey:            cc.APIKey,
		RequestsPerMinute: cc.RequestsPerMinute,
		BurstSize:         cc.BurstSize,
		Timeout:           cc.Timeout,
		MaxRetries:        cc.MaxRetries,
		RetryBackoff:      cc.RetryBackoff,
		UserAgent:         cc.UserAgent,
	}, a.cache)

	return enrichment.NewEnricher(a.catalog, enrichment.WithTimeout(a.cfg.Marathon.EnrichmentTimeout))
}

// store is what the engine persists through
func (a *app) store() storage.Store {
	if a.writeBehind != nil {
		return a.writeBehind
	}
	return a.backend
}

// dependencies returns the handler dependencies
func (a *app) dependencies() *types.Dependencies {
	deps := &types.Dependencies{
		DB:     a.db,
		Engine: a.engine,
		Store:  a.store(),
		Config: a.cfg,
	}
	if a.catalog != nil {
		deps.Catalog = a.catalog
	}
	return deps
}

// Close stops enrichment, flushes pending writes and closes the database
func (a *app) Close() error {
	var errs []error
	if a.engine != nil {
		errs = append(errs, a.engine.Close())
	}
	if a.writeBehind != nil {
		errs = append(errs, a.writeBehind.Close())
	}
	if a.cache != nil {
		a.cache.Stop()
	}
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	return errors.Join(errs...)
}
