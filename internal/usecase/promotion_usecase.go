package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"smokeysalmons/internal/domain/model"
	"smokeysalmons/internal/pricing"
	repo "smokeysalmons/internal/repository"
)

type PromotionUsecase struct {
	promotions repo.PromotionRepository
	clock      Clock
	idGen      IDGenerator
}

func NewPromotionUsecase(promotions repo.PromotionRepository, clock Clock, idGen IDGenerator) *PromotionUsecase {
	return &PromotionUsecase{promotions: promotions, clock: clock, idGen: idGen}
}

type ValidatePromotionInput struct {
	Code     string
	Subtotal decimal.Decimal
}

type PromotionOutput struct {
	ID       string           `json:"id"`
	Code     string           `json:"code"`
	Type     string           `json:"type"`
	Value    decimal.Decimal  `json:"value"`
	MinOrder *decimal.Decimal `json:"min_order,omitempty"`
	StartsAt *time.Time       `json:"starts_at,omitempty"`
	EndsAt   *time.Time       `json:"ends_at,omitempty"`
	Active   bool             `json:"active"`
}

type ValidatePromotionOutput struct {
	Valid     bool             `json:"valid"`
	Message   string           `json:"message,omitempty"`
	Discount  decimal.Decimal  `json:"discount"`
	Total     decimal.Decimal  `json:"total"`
	Promotion *PromotionOutput `json:"promotion,omitempty"`
}

// Validateはコードを照合して割引プレビューを返す。
// 不一致の理由（失効・未登録・停止中）は出し分けない（コード総当たり対策）。
func (u *PromotionUsecase) Validate(ctx context.Context, in ValidatePromotionInput) (ValidatePromotionOutput, error) {
	code := strings.TrimSpace(in.Code)
	if code == "" {
		return ValidatePromotionOutput{}, NewHTTPError(http.StatusBadRequest, "invalid code")
	}
	if in.Subtotal.IsNegative() {
		return ValidatePromotionOutput{}, NewHTTPError(http.StatusBadRequest, "invalid subtotal")
	}

	promos, err := u.promotions.ListUsable(ctx, u.clock.Now())
	if err != nil {
		return ValidatePromotionOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	var promo *model.Promotion
	for i := range promos {
		if strings.EqualFold(promos[i].Code, code) {
			promo = &promos[i]
			break
		}
	}

	if promo == nil {
		return ValidatePromotionOutput{
			Valid:    false,
			Message:  "Invalid or expired promotion code",
			Discount: decimal.Zero,
			Total:    in.Subtotal,
		}, nil
	}

	//最低注文額未満は「有効だが割引0」になる（価格側のルール）
	res := pricing.ApplyPromotion(in.Subtotal, promo)

	out := toPromotionOutput(*promo)
	return ValidatePromotionOutput{
		Valid:     true,
		Discount:  res.Discount,
		Total:     res.Total,
		Promotion: &out,
	}, nil
}

type UpsertPromotionInput struct {
	Code     string
	Type     string
	Value    decimal.Decimal
	MinOrder *decimal.Decimal
	StartsAt *time.Time
	EndsAt   *time.Time
	Active   bool
}

// Upsertはcode単位のcreate-or-update。管理者専用。
func (u *PromotionUsecase) Upsert(ctx context.Context, in UpsertPromotionInput) (PromotionOutput, error) {
	code := strings.TrimSpace(in.Code)
	if code == "" || len(code) > 20 {
		return PromotionOutput{}, NewHTTPError(http.StatusBadRequest, "invalid code")
	}
	if !model.ValidDiscountType(in.Type) {
		return PromotionOutput{}, NewHTTPError(http.StatusBadRequest, "invalid type")
	}
	if !in.Value.IsPositive() {
		return PromotionOutput{}, NewHTTPError(http.StatusBadRequest, "value must be positive")
	}
	if in.MinOrder != nil && in.MinOrder.IsNegative() {
		return PromotionOutput{}, NewHTTPError(http.StatusBadRequest, "invalid min_order")
	}
	if in.StartsAt != nil && in.EndsAt != nil && in.EndsAt.Before(*in.StartsAt) {
		return PromotionOutput{}, NewHTTPError(http.StatusBadRequest, "ends_at before starts_at")
	}

	saved, err := u.promotions.Upsert(ctx, model.Promotion{
		ID:       u.idGen.NewID(),
		Code:     code,
		Type:     model.DiscountType(in.Type),
		Value:    in.Value,
		MinOrder: in.MinOrder,
		StartsAt: in.StartsAt,
		EndsAt:   in.EndsAt,
		Active:   in.Active,
	})
	if err != nil {
		return PromotionOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return toPromotionOutput(saved), nil
}

func (u *PromotionUsecase) List(ctx context.Context) ([]PromotionOutput, error) {
	promos, err := u.promotions.List(ctx)
	if err != nil {
		return []PromotionOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]PromotionOutput, 0, len(promos))
	for _, p := range promos {
		outs = append(outs, toPromotionOutput(p))
	}
	return outs, nil
}

func toPromotionOutput(p model.Promotion) PromotionOutput {
	return PromotionOutput{
		ID:       p.ID,
		Code:     p.Code,
		Type:     string(p.Type),
		Value:    p.Value,
		MinOrder: p.MinOrder,
		StartsAt: p.StartsAt,
		EndsAt:   p.EndsAt,
		Active:   p.Active,
	}
}
