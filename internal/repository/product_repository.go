package repository

import (
	"context"

	"smokeysalmons/internal/domain/model"
)

type ProductRepository interface {
	List(ctx context.Context) ([]model.Product, error)
	FindBySlugs(ctx context.Context, slugs []string) ([]model.Product, error)
}

type FlavorRepository interface {
	List(ctx context.Context) ([]model.Flavor, error)
	FindByNames(ctx context.Context, names []string) ([]model.Flavor, error)
}
