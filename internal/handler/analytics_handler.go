package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"smokeysalmons/internal/usecase"
)

// クライアントからのfire-and-forget計測イベントを受ける
type AnalyticsHandler struct {
	analytics usecase.Analytics
}

func NewAnalyticsHandler(analytics usecase.Analytics) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

type AnalyticsEventRequest struct {
	Name string `json:"name"`
	Item struct {
		Key    string          `json:"key"`
		Name   string          `json:"name"`
		Flavor string          `json:"flavor"`
		Qty    int64           `json:"qty"`
		Price  decimal.Decimal `json:"price"`
	} `json:"item"`
}

func (h *AnalyticsHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/analytics", h.track)
}

func (h *AnalyticsHandler) track(c echo.Context) error {
	var req AnalyticsEventRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	//未知のイベント名は黙って捨てる（計測は呼び出し元を失敗させない）
	if req.Name == "add_to_cart" {
		h.analytics.Track(usecase.AddToCartEvent{
			Key:    req.Item.Key,
			Name:   req.Item.Name,
			Flavor: req.Item.Flavor,
			Qty:    req.Item.Qty,
			Price:  req.Item.Price,
		})
	}

	return c.NoContent(http.StatusAccepted)
}
