// Package accounts provides the PostgreSQL-backed repository for account
// records.
package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

// PostgresRepository implements account storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts an account and returns it with the generated id. A unique
// index on email maps conflicts to common.ErrEmailTaken.
func (r *PostgresRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	query := `
		INSERT INTO accounts (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		account.Name, account.Email, account.PasswordHash).Scan(&account.ID, &account.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, common.ErrEmailTaken
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return account, nil
}

// GetByEmail returns the account with the given normalized email, or
// common.ErrNotFound.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	query := `
		SELECT id, name, email, password_hash, created_at FROM accounts
		WHERE email = $1
	`
	account := &models.Account{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&account.ID, &account.Name, &account.Email, &account.PasswordHash, &account.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return account, nil
}

// GetByID returns the account with the given id, or common.ErrNotFound.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	query := `
		SELECT id, name, email, password_hash, created_at FROM accounts
		WHERE id = $1
	`
	account := &models.Account{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&account.ID, &account.Name, &account.Email, &account.PasswordHash, &account.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return account, nil
}
