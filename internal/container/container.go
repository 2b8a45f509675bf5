package container

import (
	"context"
	"fmt"

	"marquee/adapters/excel"
	"marquee/adapters/postgres"
	"marquee/internal"
	"marquee/internal/config"
	"marquee/internal/dataset"
	"marquee/internal/errors"
	"marquee/internal/migration"
	"marquee/ports"
	"marquee/ui/services"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Infrastructure, set only for the postgres source
	DB         *sqlx.DB
	RecordRepo ports.RecordRepository

	Loader   dataset.Loader
	Store    *dataset.Store
	Explorer *services.Explorer
}

// New creates a new dependency injection container for the configured source
func New(cfg *config.Config, logger *internal.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}

	c := &Container{
		Config: cfg,
		Logger: logger,
	}

	switch cfg.Data.Source {
	case config.SourcePostgres:
		db, err := OpenDatabase(context.Background(), cfg.Database.URL)
		if err != nil {
			return nil, err
		}
		c.InitWithDatabase(db)
	default:
		columns, err := excel.LoadColumnMap(cfg.Data.ColumnsFile)
		if err != nil {
			return nil, err
		}
		c.Loader = dataset.NewFileLoader(cfg.Data.File, cfg.Data.Sheet, columns)
		logger.Info("Using file data source: %s", cfg.Data.File)
	}

	c.Store = dataset.NewStore(c.Loader, logger)
	c.Explorer = services.NewExplorer(c.Store, cfg.Explorer)

	return c, nil
}

// InitWithDatabase wires the record store as the dataset source
func (c *Container) InitWithDatabase(db *sqlx.DB) {
	c.DB = db
	c.RecordRepo = postgres.NewRecordRepository(db)
	c.Loader = &dataset.RepositoryLoader{Repo: c.RecordRepo}
	c.Logger.Info("Using postgres data source")
}

// Preload loads the dataset up front so the first request is not the slow one
func (c *Container) Preload(ctx context.Context) error {
	ds, err := c.Store.Get(ctx)
	if err != nil {
		return err
	}
	c.Logger.Info("Loaded %d of %d rows from %s (snapshot %s)",
		ds.Stats.Kept, ds.Stats.Input, ds.Source, ds.SnapshotID)
	if ds.Stats.DroppedDates > 0 {
		c.Logger.Warn("Dropped %d rows with unparseable dates", ds.Stats.DroppedDates)
	}
	return nil
}

// Shutdown releases the database connection and flushes the logger
func (c *Container) Shutdown(ctx context.Context) error {
	defer c.Logger.Sync()
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return errors.DatabaseError("failed to close database", err)
		}
	}
	return nil
}

// OpenDatabase connects to Postgres and applies the schema
func OpenDatabase(ctx context.Context, url string) (*sqlx.DB, error) {
	if url == "" {
		return nil, errors.ConfigInvalid("DATABASE_URL is required")
	}

	db, err := sqlx.ConnectContext(ctx, "postgres", url)
	if err != nil {
		return nil, errors.DatabaseError("failed to connect to database", err)
	}

	if err := migration.NewRunner().Run(ctx, db); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "database migration failed")
	}

	return db, nil
}
