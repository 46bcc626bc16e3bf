// Package services implements the server-side application logic on top of
// the repositories.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/auth"
	"github.com/dmitrijs2005/taskkeeper/internal/server/config"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/repomanager"
)

const minPasswordLength = 6

// Session is the authenticated view of an account returned by registration
// and login.
type Session struct {
	Account *models.Account
	Token   string
}

type AccountService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

func NewAccountService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *AccountService {
	return &AccountService{
		db:                    db,
		repomanager:           m,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// normalizeEmail lowercases and trims an email; uniqueness is enforced on
// the normalized form.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateRegistration(name, email, password string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", common.ErrValidation)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("%w: please include a valid email", common.ErrValidation)
	}
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: password must be %d or more characters", common.ErrValidation, minPasswordLength)
	}
	return nil
}

// Register creates an account with a bcrypt-hashed password and returns the
// stored account together with a fresh session token.
func (s *AccountService) Register(ctx context.Context, name, email, password string) (*Session, error) {

	email = normalizeEmail(email)
	if err := validateRegistration(name, email, password); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, common.ErrInternal
	}

	account := &models.Account{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: hash,
	}

	repo := s.repomanager.Accounts(s.db)

	account, err = repo.Create(ctx, account)
	if err != nil {
		if errors.Is(err, common.ErrEmailTaken) {
			return nil, common.ErrEmailTaken
		}
		return nil, fmt.Errorf("error creating account: %w", err)
	}

	token, err := auth.GenerateToken(account.ID, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return nil, common.ErrInternal
	}

	return &Session{Account: account, Token: token}, nil
}

// Login verifies the credentials and returns the account with a fresh
// session token. An unknown email and a wrong password are reported
// identically as common.ErrUnauthorized.
func (s *AccountService) Login(ctx context.Context, email, password string) (*Session, error) {

	repo := s.repomanager.Accounts(s.db)

	account, err := repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, common.ErrInternal
	}

	if !auth.CheckPassword(account.PasswordHash, password) {
		return nil, common.ErrUnauthorized
	}

	token, err := auth.GenerateToken(account.ID, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return nil, common.ErrInternal
	}

	return &Session{Account: account, Token: token}, nil
}

// Resolve maps a verified token subject back to a stored account. A subject
// that no longer resolves yields common.ErrUnknownSubject, which the gate
// treats the same as an invalid token.
func (s *AccountService) Resolve(ctx context.Context, accountID string) (*models.Account, error) {

	repo := s.repomanager.Accounts(s.db)

	account, err := repo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnknownSubject
		}
		return nil, common.ErrInternal
	}

	return account, nil
}
