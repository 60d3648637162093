package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/it-logbook-api/internal/config"
	"github.com/it-logbook-api/internal/domain"
	"github.com/it-logbook-api/internal/logging"
	"github.com/it-logbook-api/internal/migrations"
	"github.com/it-logbook-api/internal/repository"
	"github.com/it-logbook-api/internal/service"
)

const connectAttempts = 30

// app bundles the long-lived dependencies shared by the commands.
type app struct {
	cfg         *config.Config
	logger      *slog.Logger
	db          *gorm.DB
	deptStore   repository.DepartmentStore
	deptService service.DepartmentService
	store       *service.LogbookStore

	closers []io.Closer
}

// appOptions selects the optional resources a command needs.
type appOptions struct {
	// refData opens the department list. The bbolt file is locked while
	// open, so only the long-running server takes it.
	refData bool
}

// newApp loads configuration, opens the row store and builds the logbook
// store. The store is not loaded yet. Without opts.refData the store skips
// department checks on writes.
func newApp(opts appOptions) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger, logCloser := logging.New(cfg.Log)
	slog.SetDefault(logger)
	a := &app{cfg: cfg, logger: logger, closers: []io.Closer{logCloser}}

	a.db, err = connectDB(cfg.Database)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	a.closers = append(a.closers, sqlDB)

	if err := prepareSchema(a.db, cfg.Database); err != nil {
		a.Close()
		return nil, err
	}

	var catalog service.DepartmentCatalog
	if opts.refData {
		a.deptStore, err = repository.NewBoltDepartmentStore(cfg.RefData.Path)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.closers = append(a.closers, a.deptStore)
		a.deptService = service.NewDepartmentService(a.deptStore, service.DefaultDepartments)
		catalog = a.deptService
	}

	a.store = service.NewLogbookStore(
		repository.NewWorkEntryRepository(a.db),
		repository.NewBackupEntryRepository(a.db),
		catalog,
		logger,
		service.Options{
			Seed:               service.DefaultSeed(),
			WorkExportPrefix:   cfg.Export.WorkPrefix,
			BackupExportPrefix: cfg.Export.BackupPrefix,
		},
	)
	return a, nil
}

// load fills the logbook store and logs any kind served from seed data.
func (a *app) load(ctx context.Context) service.LoadReport {
	report := a.store.Load(ctx)
	for _, kr := range []service.KindReport{report.WorkEntries, report.BackupEntries} {
		if kr.Err != nil {
			a.logger.Warn("serving seed data", slog.Any("error", kr.Err))
		}
	}
	return report
}

// loadInBackground runs load on its own goroutine. The returned stop cancels
// the load and waits for it, so it must run before Close.
func (a *app) loadInBackground(ctx context.Context) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Go(func() { a.load(ctx) })
	return func() {
		cancel()
		wg.Wait()
	}
}

// Close releases resources in reverse order of acquisition.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			a.logger.Error("failed to close resource", slog.Any("error", err))
		}
	}
	a.closers = nil
}

func connectDB(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	}

	if cfg.Driver == "sqlite" {
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
		return gorm.Open(sqlite.Open(cfg.SQLitePath), gormCfg)
	}

	var db *gorm.DB
	var err error

	for range connectAttempts {
		db, err = gorm.Open(postgres.Open(cfg.DSN()), gormCfg)
		if err == nil {
			sqlDB, _ := db.DB()
			if err = sqlDB.Ping(); err == nil {
				return db, nil
			}
		}
		time.Sleep(time.Second)
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", connectAttempts, err)
}

// prepareSchema migrates PostgreSQL with goose and SQLite with AutoMigrate.
func prepareSchema(db *gorm.DB, cfg config.DatabaseConfig) error {
	if cfg.Driver == "sqlite" {
		if err := db.AutoMigrate(&domain.WorkEntryRow{}, &domain.BackupEntryRow{}); err != nil {
			return fmt.Errorf("failed to migrate sqlite schema: %w", err)
		}
		return nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	return migrations.Up(sqlDB)
}
