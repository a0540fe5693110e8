package account

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	accounts map[string]*Account
	nextID   int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{accounts: map[string]*Account{}, nextID: 1}
}

func (r *fakeRepo) GetByEmail(ctx context.Context, email string) (*Account, error) {
	for _, a := range r.accounts {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fakeRepo) GetByID(ctx context.Context, id string) (*Account, error) {
	a, ok := r.accounts[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *fakeRepo) Create(ctx context.Context, a *Account) error {
	for _, x := range r.accounts {
		if x.Email == a.Email {
			return ErrEmailAlreadyUsed
		}
	}
	a.ID = "acc-" + strconv.Itoa(r.nextID)
	r.nextID++
	a.CreatedAt = time.Now()
	cp := *a
	r.accounts[a.ID] = &cp
	return nil
}

func (r *fakeRepo) UpdateLastLogin(ctx context.Context, id string, t time.Time) error {
	a, ok := r.accounts[id]
	if !ok {
		return ErrNotFound
	}
	a.LastLoginAt = &t
	return nil
}

func (r *fakeRepo) List(ctx context.Context, filter Filter) ([]*Account, int, error) {
	var out []*Account
	for _, a := range r.accounts {
		out = append(out, a)
	}
	return out, len(out), nil
}

// fakeHasher marks hashes with a prefix instead of running bcrypt.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakeHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

func TestRegister(t *testing.T) {
	svc := NewService(newFakeRepo(), fakeHasher{})

	a, err := svc.Register(context.Background(), "  Ada@Example.COM ", "s3cretpass", "Ada", RoleCandidate)
	require.NoError(t, err)

	assert.Equal(t, "ada@example.com", a.Email, "email is normalized")
	assert.Equal(t, "hashed:s3cretpass", a.PasswordHash)
	assert.Equal(t, RoleCandidate, a.Role)
	assert.True(t, a.IsActive)
	require.NotNil(t, a.DisplayName)
	assert.Equal(t, "Ada", *a.DisplayName)
}

func TestRegisterValidation(t *testing.T) {
	svc := NewService(newFakeRepo(), fakeHasher{})

	tests := []struct {
		name     string
		email    string
		password string
		role     Role
		wantErr  error
	}{
		{"empty email", "   ", "s3cretpass", RoleCandidate, ErrEmailRequired},
		{"short password", "a@b.com", "short", RoleCandidate, ErrPasswordTooShort},
		{"admin role rejected", "a@b.com", "s3cretpass", RoleAdmin, ErrInvalidRole},
		{"unknown role rejected", "a@b.com", "s3cretpass", Role("moderator"), ErrInvalidRole},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.email, tc.password, "", tc.role)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewService(newFakeRepo(), fakeHasher{})

	_, err := svc.Register(context.Background(), "a@b.com", "s3cretpass", "", RoleExpert)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "A@B.com", "s3cretpass", "", RoleCandidate)
	assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
}

func TestLogin(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, fakeHasher{})

	registered, err := svc.Register(context.Background(), "a@b.com", "s3cretpass", "", RoleCandidate)
	require.NoError(t, err)

	t.Run("success updates last login", func(t *testing.T) {
		a, err := svc.Login(context.Background(), "a@b.com", "s3cretpass")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, a.ID)
		assert.NotNil(t, repo.accounts[a.ID].LastLoginAt)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "a@b.com", "wrongpass")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "nobody@b.com", "s3cretpass")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("inactive account", func(t *testing.T) {
		repo.accounts[registered.ID].IsActive = false
		defer func() { repo.accounts[registered.ID].IsActive = true }()

		_, err := svc.Login(context.Background(), "a@b.com", "s3cretpass")
		assert.ErrorIs(t, err, ErrInactiveAccount)
	})
}
