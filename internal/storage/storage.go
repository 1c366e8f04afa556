package storage

import (
	"context"
	"fmt"

	"bookCatalog/internal/book"
	"bookCatalog/internal/config"
	"bookCatalog/internal/storage/jsonfile"
	"bookCatalog/internal/storage/sqlstore"
	"bookCatalog/internal/user"
	"bookCatalog/package/client/database"
	"bookCatalog/package/logger"
)

type Storages struct {
	Users user.Storage
	Books book.Storage
	close func() error
}

func (s *Storages) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// Open builds the storages for the configured driver and makes sure the
// backing files or tables exist.
func Open(ctx context.Context, cfg config.StorageConfig) (*Storages, error) {
	switch cfg.Driver {
	case config.DriverJSON:
		logger.Log.Infof("Using json storage users=%s books=%s", cfg.UsersFile, cfg.BooksFile)
		users := jsonfile.NewUserStorage(cfg.UsersFile)
		books := jsonfile.NewBookStorage(cfg.BooksFile)
		if err := users.Init(ctx); err != nil {
			return nil, err
		}
		if err := books.Init(ctx); err != nil {
			return nil, err
		}
		return &Storages{Users: users, Books: books}, nil

	case config.DriverSQLite, config.DriverPostgres:
		driver := database.Postgres
		if cfg.Driver == config.DriverSQLite {
			driver = database.SQLite
		}
		db, err := database.Open(ctx, driver, cfg.DSN)
		if err != nil {
			return nil, err
		}
		if err := sqlstore.Migrate(ctx, db, driver); err != nil {
			db.Close()
			return nil, err
		}
		users, err := sqlstore.NewUserStorage(db, driver)
		if err != nil {
			db.Close()
			return nil, err
		}
		books, err := sqlstore.NewBookStorage(db, driver)
		if err != nil {
			db.Close()
			return nil, err
		}
		return &Storages{Users: users, Books: books, close: db.Close}, nil
	}
	return nil, fmt.Errorf("storage: unknown driver %q", cfg.Driver)
}
