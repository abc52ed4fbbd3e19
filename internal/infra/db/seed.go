package db

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"smokeysalmons/internal/config"
	"smokeysalmons/internal/domain/model"
	infraRepo "smokeysalmons/internal/infra/repository"
	repo "smokeysalmons/internal/repository"
)

// Seedは参照データ（商品・フレーバー）と管理者を投入する。
// 既に存在するものはそのまま（価格の上書きはしない）。
func Seed(ctx context.Context, gormDB *gorm.DB, cfg config.Config) error {
	flavors := []model.Flavor{
		{Name: "Classic Dill & Lemon", Description: "Bright and classic"},
		{Name: "Maple Glaze", Description: "Lightly sweet"},
		{Name: "Harissa Heat", Description: "Warm spice"},
		{Name: "Black Pepper", Description: "Peppery bite"},
	}
	for _, f := range flavors {
		f.ID = uuid.NewString()
		var existing model.Flavor
		err := gormDB.WithContext(ctx).Where("name = ?", f.Name).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			if err := gormDB.WithContext(ctx).Create(&f).Error; err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
	}

	products := []model.Product{
		{Slug: "whole", Name: "Whole Salmon", Description: "Whole fish, cut to portions", BasePrice: decimal.NewFromInt(240)},
		{Slug: "half", Name: "Half Salmon", Description: "Front half by default", BasePrice: decimal.NewFromInt(130)},
		{Slug: "quarter", Name: "Quarter (standard)", Description: "Standard back quarter", BasePrice: decimal.NewFromInt(75)},
		{Slug: "taster", Name: "Taster Platter", Description: "3-4 flavors, small portions", BasePrice: decimal.NewFromInt(85)},
	}
	for _, p := range products {
		p.ID = uuid.NewString()
		var existing model.Product
		err := gormDB.WithContext(ctx).Where("slug = ?", p.Slug).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			if err := gormDB.WithContext(ctx).Create(&p).Error; err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
	}

	return SeedAdmin(ctx, infraRepo.NewAdminUserGormRepository(gormDB), cfg)
}

// SeedAdminは管理者の初期ユーザーを作る（メール＋パスワードが設定されているときだけ）。
// 既存ならパスワードも含めて触らない。
func SeedAdmin(ctx context.Context, admins repo.AdminUserRepository, cfg config.Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	_, err := admins.FindByEmail(ctx, cfg.AdminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), 12)
	if err != nil {
		return err
	}

	return admins.Create(ctx, model.AdminUser{
		ID:           uuid.NewString(),
		Email:        cfg.AdminEmail,
		PasswordHash: string(hash),
		IsActive:     true,
	})
}
