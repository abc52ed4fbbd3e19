package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"smokeysalmons/internal/usecase"
)

// カートはクライアント保持。サーバーは価格プレビューだけ返す。
type CartHandler struct {
	uc *usecase.CartUsecase
}

func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

type CartPriceRequest struct {
	Items []OrderItemRequest `json:"items"`
}

func (h *CartHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/cart/price", h.price)
}

func (h *CartHandler) price(c echo.Context) error {
	var req CartPriceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	items := make([]usecase.CartItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, usecase.CartItemInput{Key: it.Key, Flavor: it.Flavor, Qty: it.Qty})
	}

	out, err := h.uc.PriceCart(c.Request().Context(), items)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
