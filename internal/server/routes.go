package server

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"smokeysalmons/internal/config"
	"smokeysalmons/internal/handler"
)

type Handlers struct {
	Health         *handler.HealthHandler
	SiteConfig     *handler.SiteConfigHandler
	Product        *handler.ProductHandler
	Cart           *handler.CartHandler
	Order          *handler.OrderHandler
	Promotion      *handler.PromotionHandler
	Analytics      *handler.AnalyticsHandler
	Auth           *handler.AuthHandler
	AdminOrder     *handler.AdminOrderHandler
	AdminPromotion *handler.AdminPromotionHandler
}

// Newは全ルートを登録したechoを返す
func New(cfg config.Config, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Recover())

	h.Health.RegisterRoutes(e)
	h.SiteConfig.RegisterRoutes(e)
	h.Product.RegisterRoutes(e)
	h.Cart.RegisterRoutes(e)
	h.Order.RegisterRoutes(e)
	h.Promotion.RegisterRoutes(e)
	h.Analytics.RegisterRoutes(e)
	h.Auth.RegisterRoutes(e)
	h.AdminOrder.RegisterRoutes(e, cfg)
	h.AdminPromotion.RegisterRoutes(e, cfg)

	return e
}
