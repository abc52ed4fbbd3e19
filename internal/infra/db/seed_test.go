package db_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"smokeysalmons/internal/config"
	"smokeysalmons/internal/domain/model"
	"smokeysalmons/internal/infra/db"
	repo "smokeysalmons/internal/repository"
)

// =====================
// モック
// =====================

type AdminUserRepoMock struct {
	mock.Mock
}

func (m *AdminUserRepoMock) FindByEmail(ctx context.Context, email string) (model.AdminUser, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.AdminUser), args.Error(1)
}

func (m *AdminUserRepoMock) Create(ctx context.Context, user model.AdminUser) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// =====================
// SeedAdmin
// =====================

func TestSeedAdmin_CreatesWhenMissing(t *testing.T) {
	admins := new(AdminUserRepoMock)
	cfg := config.Config{AdminEmail: "admin@example.com", AdminPassword: "s3cret-pass"}

	admins.On("FindByEmail", mock.Anything, "admin@example.com").
		Return(model.AdminUser{}, repo.ErrNotFound).Once()
	admins.On("Create", mock.Anything, mock.MatchedBy(func(u model.AdminUser) bool {
		if u.Email != "admin@example.com" || !u.IsActive || u.ID == "" {
			return false
		}
		return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cret-pass")) == nil
	})).Return(nil).Once()

	err := db.SeedAdmin(context.Background(), admins, cfg)

	assert.NoError(t, err)
	admins.AssertExpectations(t)
}

func TestSeedAdmin_SkipsWhenAlreadyExists(t *testing.T) {
	admins := new(AdminUserRepoMock)
	cfg := config.Config{AdminEmail: "admin@example.com", AdminPassword: "s3cret-pass"}

	admins.On("FindByEmail", mock.Anything, "admin@example.com").
		Return(model.AdminUser{ID: "a-001", Email: "admin@example.com"}, nil).Once()

	err := db.SeedAdmin(context.Background(), admins, cfg)

	assert.NoError(t, err)
	admins.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSeedAdmin_SkipsWithoutCredentials(t *testing.T) {
	admins := new(AdminUserRepoMock)

	err := db.SeedAdmin(context.Background(), admins, config.Config{AdminEmail: "admin@example.com"})

	assert.NoError(t, err)
	admins.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
}

func TestSeedAdmin_PropagatesLookupError(t *testing.T) {
	admins := new(AdminUserRepoMock)
	cfg := config.Config{AdminEmail: "admin@example.com", AdminPassword: "s3cret-pass"}
	boom := errors.New("connection reset")

	admins.On("FindByEmail", mock.Anything, "admin@example.com").
		Return(model.AdminUser{}, boom).Once()

	err := db.SeedAdmin(context.Background(), admins, cfg)

	assert.ErrorIs(t, err, boom)
	admins.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
