package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"

	"github.com/hongminglow/staffly-be/internal/ids"
	"github.com/hongminglow/staffly-be/internal/storage"
	"github.com/hongminglow/staffly-be/internal/storage/postgres/migrations"
)

// Ensure Store satisfies the storage.Store interface at compile time.
var _ storage.Store = (*Store)(nil)

const uniqueViolation = "23505"

// Store provides Postgres-backed persistence for users, payrolls, and tasks.
type Store struct {
	pool *pgxpool.Pool
	db   *sqlx.DB
}

// NewStore connects a pgx pool and exposes it through database/sql for sqlx.
func NewStore(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	return &Store{
		pool: pool,
		db:   sqlx.NewDb(stdlib.OpenDBFromPool(pool), "pgx"),
	}, nil
}

// newWithDB wraps an existing connection; used with sqlmock in tests.
func newWithDB(db *sql.DB) *Store {
	return &Store{db: sqlx.NewDb(db, "pgx")}
}

func (s *Store) Users() storage.UserStore       { return &userStore{db: s.db} }
func (s *Store) Payrolls() storage.PayrollStore { return &payrollStore{db: s.db} }
func (s *Store) Tasks() storage.TaskStore       { return &taskStore{db: s.db} }

// Migrate applies the embedded goose migrations.
func (s *Store) Migrate(ctx context.Context) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, s.db.DB, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases database resources.
func (s *Store) Close(context.Context) error {
	err := s.db.Close()
	if s.pool != nil {
		s.pool.Close()
	}
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func checkID(id string) error {
	if !ids.Valid(id) {
		return storage.ErrInvalidID
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return storage.ErrNotFound
	}
	return err
}
