package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// ItemService is the CRUD surface for items. Every operation takes the
// authenticated account id from the authorization gate; none accepts an
// owner id from request payloads.
type ItemService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewItemService(db *sql.DB, m repomanager.RepositoryManager) *ItemService {
	return &ItemService{
		db:          db,
		repomanager: m,
	}
}

// parseItemID validates the id format. A malformed id cannot match any
// stored item, so it is reported as common.ErrNotFound, indistinguishable
// from an absent record.
func parseItemID(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", common.ErrNotFound
	}
	return parsed.String(), nil
}

// List returns the account's items in creation order.
func (s *ItemService) List(ctx context.Context, accountID string) ([]*models.Item, error) {

	repo := s.repomanager.Items(s.db)

	result, err := repo.SelectByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("error selecting items: %w", err)
	}

	return result, nil
}

// Create stores a new incomplete item owned by accountID and returns it with
// the generated id.
func (s *ItemService) Create(ctx context.Context, accountID string, title string) (*models.Item, error) {

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: please add a title", common.ErrValidation)
	}

	item := &models.Item{
		AccountID: accountID,
		Title:     title,
		Completed: false,
	}

	repo := s.repomanager.Items(s.db)

	item, err := repo.Create(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("error creating item: %w", err)
	}

	return item, nil
}

// Get returns a single item owned by accountID. Items owned by other
// accounts are reported as common.ErrNotFound.
func (s *ItemService) Get(ctx context.Context, accountID string, id string) (*models.Item, error) {

	id, err := parseItemID(id)
	if err != nil {
		return nil, err
	}

	repo := s.repomanager.Items(s.db)

	item, err := repo.GetByID(ctx, accountID, id)
	if err != nil {
		return nil, err
	}

	return item, nil
}

// Update applies the patch to an item owned by accountID. The ownership
// check and the write happen in one store operation.
func (s *ItemService) Update(ctx context.Context, accountID string, id string, patch models.ItemPatch) (*models.Item, error) {

	id, err := parseItemID(id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		trimmed := strings.TrimSpace(*patch.Title)
		if trimmed == "" {
			return nil, fmt.Errorf("%w: please add a title", common.ErrValidation)
		}
		patch.Title = &trimmed
	}

	repo := s.repomanager.Items(s.db)

	item, err := repo.Update(ctx, accountID, id, patch)
	if err != nil {
		return nil, err
	}

	return item, nil
}

// Delete removes an item owned by accountID. Deletion is terminal: a second
// call with the same id yields common.ErrNotFound.
func (s *ItemService) Delete(ctx context.Context, accountID string, id string) error {

	id, err := parseItemID(id)
	if err != nil {
		return err
	}

	repo := s.repomanager.Items(s.db)

	return repo.Delete(ctx, accountID, id)
}
