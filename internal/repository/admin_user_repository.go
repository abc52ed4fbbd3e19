package repository

import (
	"context"

	"smokeysalmons/internal/domain/model"
)

type AdminUserRepository interface {
	FindByEmail(ctx context.Context, email string) (model.AdminUser, error)
	Create(ctx context.Context, user model.AdminUser) error
}
