// Package session persists the login state of the client (bearer token and
// user email) in a local SQLite database.
//
// Every accessor reads the database; nothing is cached in memory, so
// concurrent processes sharing the file observe each other's writes on their
// next read. There is no locking across processes and no expiry logic.
package session

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/teacherlms/internal/client/migrations"
	"github.com/dmitrijs2005/teacherlms/internal/client/models"
	"github.com/dmitrijs2005/teacherlms/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/teacherlms/internal/common"
	"github.com/dmitrijs2005/teacherlms/internal/dbx"
)

// Store is the session store.
type Store struct {
	db *sql.DB
}

// RunMigrations applies the embedded goose migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// Open opens (creating if needed) the session database at dsn and migrates it.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate session db: %w", err)
	}

	return &Store{db: db}, nil
}

// NewStore wraps an already migrated database.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) repo(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(db)
}

// Get reads the whole session.
func (s *Store) Get(ctx context.Context) (models.Session, error) {
	all, err := s.repo(s.db).List(ctx)
	if err != nil {
		return models.Session{}, err
	}
	return models.Session{
		Token:     all[common.AccessTokenKey],
		UserEmail: all[common.UserEmailKey],
	}, nil
}

// Token returns the stored bearer token, or "" when absent.
func (s *Store) Token(ctx context.Context) (string, error) {
	token, _, err := s.repo(s.db).Get(ctx, common.AccessTokenKey)
	return token, err
}

// Set stores token and email together.
func (s *Store) Set(ctx context.Context, token, email string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		r := s.repo(tx)
		if err := r.Set(ctx, common.AccessTokenKey, token); err != nil {
			return err
		}
		if email == "" {
			return r.Delete(ctx, common.UserEmailKey)
		}
		return r.Set(ctx, common.UserEmailKey, email)
	})
}

// SetEmail stores the user email, keeping the token.
func (s *Store) SetEmail(ctx context.Context, email string) error {
	return s.repo(s.db).Set(ctx, common.UserEmailKey, email)
}

// Clear removes both session keys.
func (s *Store) Clear(ctx context.Context) error {
	return s.repo(s.db).Delete(ctx, common.AccessTokenKey, common.UserEmailKey)
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// TokenExpiry reads the "exp" claim of a JWT-shaped token without verifying
// its signature. The result is informational only. ok is false for opaque
// tokens or tokens without an expiry.
func TokenExpiry(token string) (exp time.Time, ok bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	t, err := claims.GetExpirationTime()
	if err != nil || t == nil {
		return time.Time{}, false
	}
	return t.Time, true
}
