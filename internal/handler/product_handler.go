package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"smokeysalmons/internal/usecase"
)

// /products の公開API
type ProductHandler struct {
	uc *usecase.ProductUsecase
}

func NewProductHandler(uc *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

func (h *ProductHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/products", h.list)
}

func (h *ProductHandler) list(c echo.Context) error {
	out, err := h.uc.Catalog(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
