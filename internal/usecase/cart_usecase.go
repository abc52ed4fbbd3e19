package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"smokeysalmons/internal/pricing"
	repo "smokeysalmons/internal/repository"
)

// カートはクライアント保持なので、サーバー側は価格プレビューだけを提供する
type CartUsecase struct {
	products repo.ProductRepository
}

func NewCartUsecase(products repo.ProductRepository) *CartUsecase {
	return &CartUsecase{products: products}
}

type PricedLineOutput struct {
	Key       string          `json:"key"`
	Flavor    string          `json:"flavor,omitempty"`
	Qty       int64           `json:"qty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type PriceCartOutput struct {
	Items    []PricedLineOutput `json:"items"`
	Subtotal decimal.Decimal    `json:"subtotal"`
	Discount decimal.Decimal    `json:"discount"`
	Total    decimal.Decimal    `json:"total"`
}

// PriceCartは単価をカタログから引き直して小計を返す。
// 割引はここでは計算しない（プロモーション検証APIの関心）。
func (u *CartUsecase) PriceCart(ctx context.Context, items []CartItemInput) (PriceCartOutput, error) {
	if len(items) == 0 {
		return PriceCartOutput{
			Items:    []PricedLineOutput{},
			Subtotal: decimal.Zero,
			Discount: decimal.Zero,
			Total:    decimal.Zero,
		}, nil
	}
	for _, it := range items {
		if strings.TrimSpace(it.Key) == "" {
			return PriceCartOutput{}, NewHTTPError(http.StatusBadRequest, "invalid item key")
		}
		if it.Qty <= 0 {
			return PriceCartOutput{}, NewHTTPError(http.StatusBadRequest, "invalid qty")
		}
	}

	products, err := u.products.FindBySlugs(ctx, distinctKeys(items))
	if err != nil {
		return PriceCartOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	catalog := make(catalogMap, len(products))
	for _, p := range products {
		catalog[p.Slug] = p.BasePrice
	}

	lines := make([]pricing.CartLine, 0, len(items))
	for _, it := range items {
		lines = append(lines, pricing.CartLine{Key: it.Key, Flavor: it.Flavor, Qty: it.Qty})
	}

	priced, err := pricing.PriceItems(catalog, lines)
	if err != nil {
		var unknown *pricing.UnknownProductError
		if errors.As(err, &unknown) {
			return PriceCartOutput{}, NewHTTPError(http.StatusBadRequest, unknown.Error())
		}
		return PriceCartOutput{}, NewHTTPError(http.StatusInternalServerError, "pricing failed")
	}

	sub := pricing.Subtotal(priced)

	outItems := make([]PricedLineOutput, 0, len(priced))
	for _, pl := range priced {
		outItems = append(outItems, PricedLineOutput{
			Key:       pl.Key,
			Flavor:    pl.Flavor,
			Qty:       pl.Qty,
			UnitPrice: pl.UnitPrice,
		})
	}

	return PriceCartOutput{
		Items:    outItems,
		Subtotal: sub,
		Discount: decimal.Zero,
		Total:    sub,
	}, nil
}
