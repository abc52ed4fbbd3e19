package repository

import (
	"context"

	"gorm.io/gorm"

	"smokeysalmons/internal/domain/model"
)

type ProductGormRepository struct {
	db *gorm.DB
}

func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

func (r *ProductGormRepository) List(ctx context.Context) ([]model.Product, error) {
	var items []model.Product
	if err := r.db.WithContext(ctx).Order("created_at asc").Find(&items).Error; err != nil {
		return []model.Product{}, err
	}
	return items, nil
}

func (r *ProductGormRepository) FindBySlugs(ctx context.Context, slugs []string) ([]model.Product, error) {
	if len(slugs) == 0 {
		return []model.Product{}, nil
	}
	var items []model.Product
	if err := r.db.WithContext(ctx).Where("slug IN ?", slugs).Find(&items).Error; err != nil {
		return []model.Product{}, err
	}
	return items, nil
}

type FlavorGormRepository struct {
	db *gorm.DB
}

func NewFlavorGormRepository(db *gorm.DB) *FlavorGormRepository {
	return &FlavorGormRepository{db: db}
}

func (r *FlavorGormRepository) List(ctx context.Context) ([]model.Flavor, error) {
	var items []model.Flavor
	if err := r.db.WithContext(ctx).Order("created_at asc").Find(&items).Error; err != nil {
		return []model.Flavor{}, err
	}
	return items, nil
}

func (r *FlavorGormRepository) FindByNames(ctx context.Context, names []string) ([]model.Flavor, error) {
	if len(names) == 0 {
		return []model.Flavor{}, nil
	}
	var items []model.Flavor
	if err := r.db.WithContext(ctx).Where("name IN ?", names).Find(&items).Error; err != nil {
		return []model.Flavor{}, err
	}
	return items, nil
}
