package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"smokeysalmons/internal/domain/model"
	repo "smokeysalmons/internal/repository"
)

type AdminUserGormRepository struct {
	db *gorm.DB
}

func NewAdminUserGormRepository(db *gorm.DB) *AdminUserGormRepository {
	return &AdminUserGormRepository{db: db}
}

func (r *AdminUserGormRepository) FindByEmail(ctx context.Context, email string) (model.AdminUser, error) {
	var u model.AdminUser
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.AdminUser{}, repo.ErrNotFound
	}
	if err != nil {
		return model.AdminUser{}, err
	}
	return u, nil
}

func (r *AdminUserGormRepository) Create(ctx context.Context, user model.AdminUser) error {
	return r.db.WithContext(ctx).Create(&user).Error
}
