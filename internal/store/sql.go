package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/listo-app/listo/internal/model"
)

// SQLStore implements Store on top of PostgreSQL or SQLite.
type SQLStore struct {
	db     *sqlx.DB
	q      sqlx.ExtContext
	sb     squirrel.StatementBuilderType
	driver string
	inTx   bool
	log    *zap.Logger
}

var _ Store = (*SQLStore)(nil)

// Open connects to the database described by cfg and applies pending
// schema migrations.
func Open(cfg model.DatabaseConfig, log *zap.Logger) (*SQLStore, error) {
	switch cfg.Driver {
	case model.DriverPostgres:
		return NewPostgresStore(cfg.DSN, log)
	case model.DriverSQLite:
		return NewSQLiteStore(cfg.DSN, log)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// NewPostgresStore connects to PostgreSQL using a libpq connection string
// and runs any pending schema migrations.
func NewPostgresStore(dsn string, log *zap.Logger) (*SQLStore, error) {
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening postgres db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	s := NewWithDB(db, model.DriverPostgres, log)
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath, enables
// foreign keys, and runs any pending schema migrations.
func NewSQLiteStore(dbPath string, log *zap.Logger) (*SQLStore, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// A single connection keeps ":memory:" databases alive and serialises
	// writers the way SQLite wants anyway.
	db.SetMaxOpenConns(1)

	if !strings.Contains(dbPath, ":memory:") {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enabling WAL mode: %w", err)
		}
	}

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := NewWithDB(db, model.DriverSQLite, log)
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// NewWithDB wraps an existing connection without touching the schema.
func NewWithDB(db *sqlx.DB, driver string, log *zap.Logger) *SQLStore {
	if log == nil {
		log = zap.NewNop()
	}
	var format squirrel.PlaceholderFormat = squirrel.Question
	if driver == model.DriverPostgres {
		format = squirrel.Dollar
	}
	return &SQLStore{
		db:     db,
		q:      db,
		sb:     squirrel.StatementBuilder.PlaceholderFormat(format),
		driver: driver,
		log:    log.Named("store"),
	}
}

// Driver returns the database driver name.
func (s *SQLStore) Driver() string {
	return s.driver
}

// Close closes the underlying database connection.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// Ping checks the database connection.
func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// InTx runs fn inside a transaction. The Store passed to fn is bound to the
// transaction; fn must not use the outer store. Nested calls reuse the
// enclosing transaction.
func (s *SQLStore) InTx(ctx context.Context, fn func(tx Store) error) (err error) {
	if s.inTx {
		return fn(s)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	txStore := *s
	txStore.q = tx
	txStore.inTx = true

	if err := fn(&txStore); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order, each in its own transaction.
func (s *SQLStore) runMigrations() error {
	set := sqliteMigrations
	if s.driver == model.DriverPostgres {
		set = postgresMigrations
	}

	if _, err := s.db.Exec(schemaVersionTable); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	currentVersion := 0
	if err := s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version"); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	for _, m := range set {
		if m.version <= currentVersion {
			continue
		}
		tx, err := s.db.Beginx()
		if err != nil {
			return fmt.Errorf("beginning migration v%d: %w", m.version, err)
		}
		if _, err := tx.Exec(m.sql); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
		if _, err := tx.Exec(s.db.Rebind("INSERT INTO schema_version (version) VALUES (?)"), m.version); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("recording migration v%d: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration v%d: %w", m.version, err)
		}
		s.log.Info("applied migration", zap.Int("version", m.version), zap.String("driver", s.driver))
	}

	return nil
}

// SchemaVersion returns the highest applied migration version.
func (s *SQLStore) SchemaVersion(ctx context.Context) (int, error) {
	var v int
	if err := s.db.GetContext(ctx, &v, "SELECT COALESCE(MAX(version), 0) FROM schema_version"); err != nil {
		return 0, fmt.Errorf("reading schema version: %w", err)
	}
	return v, nil
}

// get runs a squirrel query and scans a single row into dest.
func (s *SQLStore) get(ctx context.Context, dest interface{}, b squirrel.Sqlizer) error {
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("building query: %w", err)
	}
	return sqlx.GetContext(ctx, s.q, dest, query, args...)
}

// selectRows runs a squirrel query and scans all rows into dest.
func (s *SQLStore) selectRows(ctx context.Context, dest interface{}, b squirrel.Sqlizer) error {
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("building query: %w", err)
	}
	return sqlx.SelectContext(ctx, s.q, dest, query, args...)
}

// exec runs a squirrel statement and returns the number of affected rows.
func (s *SQLStore) exec(ctx context.Context, b squirrel.Sqlizer) (int64, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("building statement: %w", err)
	}
	res, err := s.q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return n, nil
}
