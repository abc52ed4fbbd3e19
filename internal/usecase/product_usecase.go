package usecase

import (
	"context"
	"net/http"

	"smokeysalmons/internal/domain/model"
	repo "smokeysalmons/internal/repository"
)

type ProductUsecase struct {
	products repo.ProductRepository
	flavors  repo.FlavorRepository
}

func NewProductUsecase(products repo.ProductRepository, flavors repo.FlavorRepository) *ProductUsecase {
	return &ProductUsecase{products: products, flavors: flavors}
}

type CatalogOutput struct {
	Products []model.Product `json:"products"`
	Flavors  []model.Flavor  `json:"flavors"`
}

// 公開カタログ。注文時の価格解決もこの商品データが源泉。
func (u *ProductUsecase) Catalog(ctx context.Context) (CatalogOutput, error) {
	products, err := u.products.List(ctx)
	if err != nil {
		return CatalogOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	flavors, err := u.flavors.List(ctx)
	if err != nil {
		return CatalogOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return CatalogOutput{Products: products, Flavors: flavors}, nil
}
