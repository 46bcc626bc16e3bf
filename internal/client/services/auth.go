// Package services contains the client application services: the auth
// service managing the persisted session, and the item service keeping the
// local cache in sync with the server.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/taskkeeper/internal/client/api"
	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
)

// AuthService authenticates against the server and persists the resulting
// session to a JSON file so a restarted client resumes logged in.
type AuthService struct {
	client      api.Client
	sessionFile string
	session     *models.Session
}

func NewAuthService(client api.Client, sessionFile string) *AuthService {
	return &AuthService{client: client, sessionFile: sessionFile}
}

// Session returns the current session, or nil when logged out.
func (a *AuthService) Session() *models.Session {
	return a.session
}

// Load restores a previously saved session. A missing file means logged
// out; a malformed or incomplete file is discarded the same way.
func (a *AuthService) Load() error {
	data, err := os.ReadFile(a.sessionFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read session file: %w", err)
	}

	var s models.Session
	if err := json.Unmarshal(data, &s); err != nil || !s.Valid() {
		return nil
	}

	a.session = &s
	a.client.SetToken(s.Token)
	return nil
}

// Register creates an account and logs the client in as it.
func (a *AuthService) Register(ctx context.Context, name, email, password string) (*models.Session, error) {
	s, err := a.client.Register(ctx, name, email, password)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if err := a.install(s); err != nil {
		return nil, err
	}
	return s, nil
}

// Login authenticates with existing credentials.
func (a *AuthService) Login(ctx context.Context, email, password string) (*models.Session, error) {
	s, err := a.client.Login(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if err := a.install(s); err != nil {
		return nil, err
	}
	return s, nil
}

// Logout clears the in-memory session, the client token, and the
// persisted session file.
func (a *AuthService) Logout() error {
	a.session = nil
	a.client.SetToken("")
	if err := os.Remove(a.sessionFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

// Ping checks server liveness.
func (a *AuthService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *AuthService) install(s *models.Session) error {
	a.session = s
	a.client.SetToken(s.Token)

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if dir := filepath.Dir(a.sessionFile); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create session dir: %w", err)
		}
	}
	if err := os.WriteFile(a.sessionFile, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}
