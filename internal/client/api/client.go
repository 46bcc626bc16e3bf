// Package api contains the HTTP client for the taskkeeper server.
package api

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
)

var (
	ErrUnavailable = errors.New("server unavailable")
)

// Client is the server surface the client application depends on. The
// concrete implementation is HTTPClient; tests substitute fakes.
type Client interface {
	Ping(ctx context.Context) error
	Register(ctx context.Context, name, email, password string) (*models.Session, error)
	Login(ctx context.Context, email, password string) (*models.Session, error)
	ListItems(ctx context.Context) ([]models.Item, error)
	CreateItem(ctx context.Context, title string) (models.Item, error)
	UpdateItem(ctx context.Context, id string, patch models.ItemPatch) (models.Item, error)
	DeleteItem(ctx context.Context, id string) error

	// SetToken installs the bearer token used on item calls. An empty
	// token clears it.
	SetToken(token string)
}
