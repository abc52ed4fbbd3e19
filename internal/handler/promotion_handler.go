package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"smokeysalmons/internal/usecase"
)

type PromotionHandler struct {
	uc *usecase.PromotionUsecase
}

func NewPromotionHandler(uc *usecase.PromotionUsecase) *PromotionHandler {
	return &PromotionHandler{uc: uc}
}

type PromotionValidateRequest struct {
	Code     string          `json:"code"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

func (h *PromotionHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/promotions/validate", h.validate)
}

func (h *PromotionHandler) validate(c echo.Context) error {
	var req PromotionValidateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Validate(c.Request().Context(), usecase.ValidatePromotionInput{
		Code:     req.Code,
		Subtotal: req.Subtotal,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
