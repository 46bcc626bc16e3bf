package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/taskkeeper/internal/client/api"
	"github.com/dmitrijs2005/taskkeeper/internal/client/cache"
	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
	"github.com/dmitrijs2005/taskkeeper/internal/common"
)

// ItemService keeps the local cache and the server in sync. Every mutation
// updates the cache first and undoes exactly that update if the server call
// fails, so the visible list never lingers in a half-applied state.
type ItemService struct {
	client api.Client
	store  *cache.Store
}

func NewItemService(client api.Client, store *cache.Store) *ItemService {
	return &ItemService{client: client, store: store}
}

// Items returns the current cached view.
func (s *ItemService) Items() []models.Item {
	return s.store.Items()
}

// Refresh replaces the cache with the server's authoritative list.
func (s *ItemService) Refresh(ctx context.Context) error {
	items, err := s.client.ListItems(ctx)
	if err != nil {
		return fmt.Errorf("refresh: %w", err)
	}
	s.store.Dispatch(cache.Action{Type: cache.ActionReplaceAll, Items: items})
	return nil
}

// Clear empties the cache. Used on logout.
func (s *ItemService) Clear() {
	s.store.Dispatch(cache.Action{Type: cache.ActionReplaceAll})
}

// Add creates an item. The new entry appears immediately under a provisional
// id and is reconciled to the server-assigned id once the create returns.
func (s *ItemService) Add(ctx context.Context, title string) (models.Item, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Item{}, fmt.Errorf("%w: please add a title", common.ErrValidation)
	}

	tempID := "pending-" + uuid.NewString()
	s.store.Dispatch(cache.Action{Type: cache.ActionAdd, Item: models.Item{ID: tempID, Title: title}})

	created, err := s.client.CreateItem(ctx, title)
	if err != nil {
		s.store.Dispatch(cache.Action{Type: cache.ActionAddRollback, ID: tempID})
		return models.Item{}, fmt.Errorf("add item: %w", err)
	}

	s.store.Dispatch(cache.Action{Type: cache.ActionUpdate, ID: tempID, Item: created})
	return created, nil
}

// Update applies a partial patch to an item. The pre-mutation entry is
// snapshotted so a failed server call restores it exactly.
func (s *ItemService) Update(ctx context.Context, id string, patch models.ItemPatch) (models.Item, error) {
	prev, _, ok := s.store.Get(id)
	if !ok {
		return models.Item{}, common.ErrNotFound
	}

	s.store.Dispatch(cache.Action{Type: cache.ActionUpdate, ID: id, Item: patch.Apply(prev)})

	updated, err := s.client.UpdateItem(ctx, id, patch)
	if err != nil {
		s.store.Dispatch(cache.Action{Type: cache.ActionUpdateRollback, ID: id, Item: prev})
		return models.Item{}, fmt.Errorf("update item: %w", err)
	}

	s.store.Dispatch(cache.Action{Type: cache.ActionUpdate, ID: id, Item: updated})
	return updated, nil
}

// Remove deletes an item, restoring it at its original position if the
// server rejects the delete.
func (s *ItemService) Remove(ctx context.Context, id string) error {
	prev, idx, ok := s.store.Get(id)
	if !ok {
		return common.ErrNotFound
	}

	s.store.Dispatch(cache.Action{Type: cache.ActionRemove, ID: id})

	if err := s.client.DeleteItem(ctx, id); err != nil {
		s.store.Dispatch(cache.Action{Type: cache.ActionRemoveRollback, Item: prev, Index: idx})
		return fmt.Errorf("remove item: %w", err)
	}
	return nil
}
