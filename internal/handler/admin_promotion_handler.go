package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"smokeysalmons/internal/config"
	"smokeysalmons/internal/middleware"
	"smokeysalmons/internal/usecase"
)

type AdminPromotionHandler struct {
	uc *usecase.PromotionUsecase
}

func NewAdminPromotionHandler(uc *usecase.PromotionUsecase) *AdminPromotionHandler {
	return &AdminPromotionHandler{uc: uc}
}

type PromotionUpsertRequest struct {
	Code     string           `json:"code"`
	Type     string           `json:"type"`
	Value    decimal.Decimal  `json:"value"`
	MinOrder *decimal.Decimal `json:"min_order"`
	StartsAt *time.Time       `json:"starts_at"`
	EndsAt   *time.Time       `json:"ends_at"`
	Active   bool             `json:"active"`
}

func (h *AdminPromotionHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	admin := e.Group("/admin")
	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.AdminRoleGuard())

	admin.GET("/promotions", h.list)
	admin.POST("/promotions", h.upsert)
}

func (h *AdminPromotionHandler) list(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminPromotionHandler) upsert(c echo.Context) error {
	var req PromotionUpsertRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Upsert(c.Request().Context(), usecase.UpsertPromotionInput{
		Code:     req.Code,
		Type:     req.Type,
		Value:    req.Value,
		MinOrder: req.MinOrder,
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
		Active:   req.Active,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
