package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"smokeysalmons/internal/config"
)

// チェックアウト画面が使う公開設定（支払い先の電話番号など）
type SiteConfigHandler struct {
	cfg config.Config
}

func NewSiteConfigHandler(cfg config.Config) *SiteConfigHandler {
	return &SiteConfigHandler{cfg: cfg}
}

type SiteConfigResponse struct {
	BrandName             string          `json:"brand_name"`
	DeliveryFee           decimal.Decimal `json:"delivery_fee"`
	DeliveryCity          string          `json:"delivery_city"`
	BitPhone              string          `json:"bit_phone,omitempty"`
	PayboxPhone           string          `json:"paybox_phone,omitempty"`
	PaymentTimeoutMinutes int             `json:"payment_timeout_minutes"`
}

func (h *SiteConfigHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/site-config", h.get)
}

func (h *SiteConfigHandler) get(c echo.Context) error {
	return c.JSON(http.StatusOK, SiteConfigResponse{
		BrandName:             h.cfg.BrandName,
		DeliveryFee:           h.cfg.DeliveryFeeAmount(),
		DeliveryCity:          h.cfg.DeliveryCity,
		BitPhone:              h.cfg.BitPhone,
		PayboxPhone:           h.cfg.PayboxPhone,
		PaymentTimeoutMinutes: h.cfg.PaymentTimeoutMinutes,
	})
}
