// Package cache holds the client's local view of the current account's
// items. It is an explicitly owned state container with a fixed action set,
// so optimistic mutations and their rollbacks can be unit-tested without any
// rendering or transport.
package cache

import (
	"sync"

	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
)

type ActionType string

const (
	ActionAdd            ActionType = "ADD"
	ActionAddRollback    ActionType = "ADD_ROLLBACK"
	ActionUpdate         ActionType = "UPDATE"
	ActionUpdateRollback ActionType = "UPDATE_ROLLBACK"
	ActionRemove         ActionType = "REMOVE"
	ActionRemoveRollback ActionType = "REMOVE_ROLLBACK"
	ActionReplaceAll     ActionType = "REPLACE_ALL"
)

// Action is a single state transition.
//
// Field use by type:
//   - ADD: Item (prepended)
//   - ADD_ROLLBACK, REMOVE: ID (entry removed)
//   - UPDATE: ID (entry looked up), Item (replacement; its id may differ
//     from ID, which is how a pending entry reconciles to the
//     server-assigned id)
//   - UPDATE_ROLLBACK: ID, Item (the pre-mutation snapshot)
//   - REMOVE_ROLLBACK: Item, Index (reinserted at its original position)
//   - REPLACE_ALL: Items (authoritative server state)
type Action struct {
	Type  ActionType
	ID    string
	Item  models.Item
	Index int
	Items []models.Item
}

// Store is the ordered item cache. All access goes through Dispatch and the
// read accessors; the zero value is not usable, construct with New.
type Store struct {
	mu    sync.Mutex
	items []models.Item
}

func New() *Store {
	return &Store{}
}

// Dispatch applies one action to the cache. Unknown action types and
// lookups that miss are no-ops: a rollback for an entry that refresh
// already superseded must not corrupt state.
func (s *Store) Dispatch(a Action) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch a.Type {
	case ActionAdd:
		s.items = append([]models.Item{a.Item}, s.items...)

	case ActionAddRollback, ActionRemove:
		if i := s.indexOf(a.ID); i >= 0 {
			s.items = append(s.items[:i], s.items[i+1:]...)
		}

	case ActionUpdate, ActionUpdateRollback:
		if i := s.indexOf(a.ID); i >= 0 {
			s.items[i] = a.Item
		}

	case ActionRemoveRollback:
		i := a.Index
		if i < 0 {
			i = 0
		}
		if i > len(s.items) {
			i = len(s.items)
		}
		s.items = append(s.items[:i], append([]models.Item{a.Item}, s.items[i:]...)...)

	case ActionReplaceAll:
		s.items = append([]models.Item(nil), a.Items...)
	}
}

// Items returns a snapshot copy of the cache in order.
func (s *Store) Items() []models.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Item(nil), s.items...)
}

// Get returns the entry with the given id and its position.
func (s *Store) Get(id string) (models.Item, int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		return s.items[i], i, true
	}
	return models.Item{}, -1, false
}

func (s *Store) indexOf(id string) int {
	for i, item := range s.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}
