package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/server/auth"
	"github.com/dmitrijs2005/taskkeeper/internal/server/config"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	accountsrepo "github.com/dmitrijs2005/taskkeeper/internal/server/repositories/accounts"
	itemsrepo "github.com/dmitrijs2005/taskkeeper/internal/server/repositories/items"
)

// --- fakes ---

type fakeAccountsRepo struct {
	createOut *models.Account
	createErr error

	byEmailOut *models.Account
	byEmailErr error

	byIDOut *models.Account
	byIDErr error

	gotCreate *models.Account
}

func (f *fakeAccountsRepo) Create(ctx context.Context, a *models.Account) (*models.Account, error) {
	f.gotCreate = a
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	a.ID = "a-1"
	return a, nil
}

func (f *fakeAccountsRepo) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	if f.byEmailErr != nil {
		return nil, f.byEmailErr
	}
	return f.byEmailOut, nil
}

func (f *fakeAccountsRepo) GetByID(ctx context.Context, id string) (*models.Account, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	return f.byIDOut, nil
}

type fakeRepoManager struct {
	a *fakeAccountsRepo
	i *fakeItemsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error    { return nil }
func (m *fakeRepoManager) Accounts(db dbx.DBTX) accountsrepo.Repository   { return m.a }
func (m *fakeRepoManager) Items(db dbx.DBTX) itemsrepo.Repository         { return m.i }

func newAccountService(t *testing.T, rm *fakeRepoManager) *AccountService {
	t.Helper()
	cfg := &config.Config{
		SecretKey:             "k",
		TokenValidityDuration: time.Hour,
	}
	return NewAccountService(nil, rm, cfg)
}

// --- tests ---

func TestRegister_Success(t *testing.T) {
	repo := &fakeAccountsRepo{}
	svc := newAccountService(t, &fakeRepoManager{a: repo})

	sess, err := svc.Register(context.Background(), "Alice", "A@X.com", "secret1")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if sess.Account.Email != "a@x.com" {
		t.Fatalf("expected normalized email, got %q", sess.Account.Email)
	}
	if repo.gotCreate.PasswordHash == "secret1" || repo.gotCreate.PasswordHash == "" {
		t.Fatalf("password must be stored as a hash, got %q", repo.gotCreate.PasswordHash)
	}

	accountID, err := auth.GetAccountIDFromToken(sess.Token, []byte("k"))
	if err != nil {
		t.Fatalf("token does not verify: %v", err)
	}
	if accountID != sess.Account.ID {
		t.Fatalf("token subject mismatch: got %q want %q", accountID, sess.Account.ID)
	}
}

func TestRegister_Validation(t *testing.T) {
	svc := newAccountService(t, &fakeRepoManager{a: &fakeAccountsRepo{}})

	tests := []struct {
		name     string
		userName string
		email    string
		password string
	}{
		{name: "empty name", userName: "  ", email: "a@x.com", password: "secret1"},
		{name: "bad email", userName: "Alice", email: "not-an-email", password: "secret1"},
		{name: "short password", userName: "Alice", email: "a@x.com", password: "12345"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.userName, tt.email, tt.password)
			if !errors.Is(err, common.ErrValidation) {
				t.Fatalf("expected common.ErrValidation, got %v", err)
			}
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := newAccountService(t, &fakeRepoManager{a: &fakeAccountsRepo{createErr: common.ErrEmailTaken}})

	_, err := svc.Register(context.Background(), "Alice", "a@x.com", "secret1")
	if !errors.Is(err, common.ErrEmailTaken) {
		t.Fatalf("expected common.ErrEmailTaken, got %v", err)
	}
}

func TestLogin_Success(t *testing.T) {
	hash, err := auth.HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	repo := &fakeAccountsRepo{byEmailOut: &models.Account{ID: "a-1", Name: "Alice", Email: "a@x.com", PasswordHash: hash}}
	svc := newAccountService(t, &fakeRepoManager{a: repo})

	sess, err := svc.Login(context.Background(), "A@X.com ", "secret1")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if sess.Account.ID != "a-1" || sess.Token == "" {
		t.Fatalf("unexpected session: %+v", sess)
	}
}

func TestLogin_WrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	hash, err := auth.HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	knownRepo := &fakeAccountsRepo{byEmailOut: &models.Account{ID: "a-1", PasswordHash: hash}}
	unknownRepo := &fakeAccountsRepo{byEmailErr: common.ErrNotFound}

	_, errWrongPass := newAccountService(t, &fakeRepoManager{a: knownRepo}).Login(context.Background(), "a@x.com", "wrong")
	_, errUnknown := newAccountService(t, &fakeRepoManager{a: unknownRepo}).Login(context.Background(), "b@x.com", "secret1")

	if !errors.Is(errWrongPass, common.ErrUnauthorized) {
		t.Fatalf("expected common.ErrUnauthorized for wrong password, got %v", errWrongPass)
	}
	if !errors.Is(errUnknown, common.ErrUnauthorized) {
		t.Fatalf("expected common.ErrUnauthorized for unknown email, got %v", errUnknown)
	}
	if errWrongPass.Error() != errUnknown.Error() {
		t.Fatalf("credential failures must be indistinguishable: %v vs %v", errWrongPass, errUnknown)
	}
}

func TestResolve_UnknownSubject(t *testing.T) {
	svc := newAccountService(t, &fakeRepoManager{a: &fakeAccountsRepo{byIDErr: common.ErrNotFound}})

	_, err := svc.Resolve(context.Background(), "a-gone")
	if !errors.Is(err, common.ErrUnknownSubject) {
		t.Fatalf("expected common.ErrUnknownSubject, got %v", err)
	}
}
