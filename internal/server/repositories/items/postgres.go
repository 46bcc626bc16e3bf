// Package items provides the PostgreSQL-backed repository for item records.
//
// Ownership checks are folded into the mutation statements themselves:
// UPDATE and DELETE filter on id AND account_id in a single statement, so
// there is no window between verifying the owner and applying the write.
package items

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

// PostgresRepository implements item storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts an item owned by item.AccountID and returns it with the
// generated id.
func (r *PostgresRepository) Create(ctx context.Context, item *models.Item) (*models.Item, error) {
	query := `
		INSERT INTO items (account_id, title, completed)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		item.AccountID, item.Title, item.Completed).Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return item, nil
}

// SelectByAccount returns all items owned by accountID in creation order.
func (r *PostgresRepository) SelectByAccount(ctx context.Context, accountID string) ([]*models.Item, error) {
	query := `
		SELECT id, account_id, title, completed, created_at FROM items
		WHERE account_id = $1
		ORDER BY seq
	`
	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to select items: %w", err)
	}
	defer rows.Close()

	var result []*models.Item
	for rows.Next() {
		var item models.Item
		if err := rows.Scan(&item.ID, &item.AccountID, &item.Title, &item.Completed, &item.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID returns the item only when it exists and is owned by accountID.
// A row owned by someone else is reported as common.ErrNotFound, same as an
// absent row.
func (r *PostgresRepository) GetByID(ctx context.Context, accountID string, id string) (*models.Item, error) {
	query := `
		SELECT id, account_id, title, completed, created_at FROM items
		WHERE id = $1 AND account_id = $2
	`
	item := &models.Item{}
	err := r.db.QueryRowContext(ctx, query, id, accountID).Scan(
		&item.ID, &item.AccountID, &item.Title, &item.Completed, &item.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return item, nil
}

// Update applies patch to the row matching id AND accountID in one atomic
// statement. Fields left nil in patch keep their stored value. No matching
// row (absent or foreign-owned) yields common.ErrNotFound.
func (r *PostgresRepository) Update(ctx context.Context, accountID string, id string, patch models.ItemPatch) (*models.Item, error) {
	query := `
		UPDATE items
		SET title = COALESCE($3::text, title), completed = COALESCE($4::boolean, completed)
		WHERE id = $1 AND account_id = $2
		RETURNING id, account_id, title, completed, created_at
	`
	item := &models.Item{}
	err := r.db.QueryRowContext(ctx, query, id, accountID, patch.Title, patch.Completed).Scan(
		&item.ID, &item.AccountID, &item.Title, &item.Completed, &item.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return item, nil
}

// Delete removes the row matching id AND accountID in one atomic statement.
// No matching row yields common.ErrNotFound; a second delete of the same id
// therefore also yields common.ErrNotFound.
func (r *PostgresRepository) Delete(ctx context.Context, accountID string, id string) error {
	query := `
		DELETE FROM items
		WHERE id = $1 AND account_id = $2
	`
	res, err := r.db.ExecContext(ctx, query, id, accountID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}
