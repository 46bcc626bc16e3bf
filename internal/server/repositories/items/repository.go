package items

import (
	"context"

	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

// Repository is the owner-scoped item store. Every method takes the owning
// account id; no call path can reach another account's rows.
type Repository interface {
	Create(ctx context.Context, item *models.Item) (*models.Item, error)
	SelectByAccount(ctx context.Context, accountID string) ([]*models.Item, error)
	GetByID(ctx context.Context, accountID string, id string) (*models.Item, error)
	Update(ctx context.Context, accountID string, id string, patch models.ItemPatch) (*models.Item, error)
	Delete(ctx context.Context, accountID string, id string) error
}
