package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"smokeysalmons/internal/domain/model"
)

type PromotionGormRepository struct {
	db *gorm.DB
}

func NewPromotionGormRepository(db *gorm.DB) *PromotionGormRepository {
	return &PromotionGormRepository{db: db}
}

func (r *PromotionGormRepository) ListUsable(ctx context.Context, now time.Time) ([]model.Promotion, error) {
	var items []model.Promotion
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Where("ends_at IS NULL OR ends_at >= ?", now).
		Find(&items).Error
	if err != nil {
		return []model.Promotion{}, err
	}
	return items, nil
}

func (r *PromotionGormRepository) List(ctx context.Context) ([]model.Promotion, error) {
	var items []model.Promotion
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&items).Error; err != nil {
		return []model.Promotion{}, err
	}
	return items, nil
}

func (r *PromotionGormRepository) Upsert(ctx context.Context, p model.Promotion) (model.Promotion, error) {
	var existing model.Promotion
	err := r.db.WithContext(ctx).Where("code = ?", p.Code).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
			return model.Promotion{}, err
		}
		return p, nil
	}
	if err != nil {
		return model.Promotion{}, err
	}

	//codeはキーなので変えず、それ以外を上書き
	existing.Type = p.Type
	existing.Value = p.Value
	existing.MinOrder = p.MinOrder
	existing.StartsAt = p.StartsAt
	existing.EndsAt = p.EndsAt
	existing.Active = p.Active
	if err := r.db.WithContext(ctx).Save(&existing).Error; err != nil {
		return model.Promotion{}, err
	}
	return existing, nil
}
