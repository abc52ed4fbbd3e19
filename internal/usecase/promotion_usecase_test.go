package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"smokeysalmons/internal/domain/model"
	"smokeysalmons/internal/usecase"
)

func newPromotionUsecase(promos *PromotionRepoMock) *usecase.PromotionUsecase {
	return usecase.NewPromotionUsecase(promos, &fixedClock{t: testNow}, &seqIDGen{})
}

func savePromo() model.Promotion {
	return model.Promotion{
		ID:     "promo-1",
		Code:   "SAVE10",
		Type:   model.DiscountTypePercentage,
		Value:  decimal.NewFromInt(10),
		Active: true,
	}
}

// =====================
// Validate
// =====================

func TestValidatePromotion_CaseInsensitiveMatch(t *testing.T) {
	promos := new(PromotionRepoMock)
	promos.On("ListUsable", mock.Anything, testNow).Return([]model.Promotion{savePromo()}, nil)

	uc := newPromotionUsecase(promos)

	out, err := uc.Validate(context.Background(), usecase.ValidatePromotionInput{
		Code:     "save10",
		Subtotal: decimal.NewFromInt(240),
	})
	assert.NoError(t, err)
	assert.True(t, out.Valid)
	assert.True(t, out.Discount.Equal(decimal.NewFromInt(24)))
	assert.True(t, out.Total.Equal(decimal.NewFromInt(216)))
	if assert.NotNil(t, out.Promotion) {
		assert.Equal(t, "SAVE10", out.Promotion.Code)
	}
}

func TestValidatePromotion_UnknownCodeUsesUniformMessage(t *testing.T) {
	promos := new(PromotionRepoMock)
	promos.On("ListUsable", mock.Anything, testNow).Return([]model.Promotion{savePromo()}, nil)

	uc := newPromotionUsecase(promos)

	out, err := uc.Validate(context.Background(), usecase.ValidatePromotionInput{
		Code:     "GHOST",
		Subtotal: decimal.NewFromInt(240),
	})
	assert.NoError(t, err)
	assert.False(t, out.Valid)
	//失効・未登録・停止中の理由は出し分けない
	assert.Equal(t, "Invalid or expired promotion code", out.Message)
	assert.True(t, out.Discount.IsZero())
	assert.True(t, out.Total.Equal(decimal.NewFromInt(240)))
}

func TestValidatePromotion_MinOrderUnmetIsValidWithZeroDiscount(t *testing.T) {
	min := decimal.NewFromInt(200)
	p := savePromo()
	p.MinOrder = &min

	promos := new(PromotionRepoMock)
	promos.On("ListUsable", mock.Anything, testNow).Return([]model.Promotion{p}, nil)

	uc := newPromotionUsecase(promos)

	out, err := uc.Validate(context.Background(), usecase.ValidatePromotionInput{
		Code:     "SAVE10",
		Subtotal: decimal.NewFromInt(130),
	})
	assert.NoError(t, err)
	assert.True(t, out.Valid)
	assert.True(t, out.Discount.IsZero())
	assert.True(t, out.Total.Equal(decimal.NewFromInt(130)))
}

func TestValidatePromotion_RejectsEmptyCode(t *testing.T) {
	uc := newPromotionUsecase(new(PromotionRepoMock))

	_, err := uc.Validate(context.Background(), usecase.ValidatePromotionInput{
		Code:     "  ",
		Subtotal: decimal.NewFromInt(100),
	})
	assertErrContains(t, err, "invalid code")
}

// =====================
// Upsert
// =====================

func TestUpsertPromotion_Success(t *testing.T) {
	promos := new(PromotionRepoMock)
	promos.On("Upsert", mock.Anything, mock.MatchedBy(func(p model.Promotion) bool {
		return p.Code == "WINTER20" && p.Type == model.DiscountTypeFixed && p.Active
	})).Return(model.Promotion{ID: "promo-2", Code: "WINTER20", Type: model.DiscountTypeFixed, Value: decimal.NewFromInt(20), Active: true}, nil)

	uc := newPromotionUsecase(promos)

	out, err := uc.Upsert(context.Background(), usecase.UpsertPromotionInput{
		Code:   " WINTER20 ",
		Type:   "FIXED",
		Value:  decimal.NewFromInt(20),
		Active: true,
	})
	assert.NoError(t, err)
	assert.Equal(t, "WINTER20", out.Code)

	promos.AssertExpectations(t)
}

func TestUpsertPromotion_RejectsBadType(t *testing.T) {
	uc := newPromotionUsecase(new(PromotionRepoMock))

	_, err := uc.Upsert(context.Background(), usecase.UpsertPromotionInput{
		Code:  "X",
		Type:  "BOGO",
		Value: decimal.NewFromInt(10),
	})
	assertErrContains(t, err, "invalid type")
}

func TestUpsertPromotion_RejectsNonPositiveValue(t *testing.T) {
	uc := newPromotionUsecase(new(PromotionRepoMock))

	_, err := uc.Upsert(context.Background(), usecase.UpsertPromotionInput{
		Code:  "X",
		Type:  "FIXED",
		Value: decimal.Zero,
	})
	assertErrContains(t, err, "value must be positive")
}

func TestUpsertPromotion_RejectsEndsBeforeStarts(t *testing.T) {
	uc := newPromotionUsecase(new(PromotionRepoMock))

	starts := testNow
	ends := testNow.Add(-time.Hour)

	_, err := uc.Upsert(context.Background(), usecase.UpsertPromotionInput{
		Code:     "X",
		Type:     "FIXED",
		Value:    decimal.NewFromInt(10),
		StartsAt: &starts,
		EndsAt:   &ends,
	})
	assertErrContains(t, err, "ends_at before starts_at")
}
