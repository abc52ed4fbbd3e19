package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"smokeysalmons/internal/usecase"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

type OrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

type OrderItemRequest struct {
	Key    string `json:"key"`
	Flavor string `json:"flavor"`
	Qty    int64  `json:"qty"`
}

type OrderCreateRequest struct {
	Name           string             `json:"name"`
	Phone          string             `json:"phone"`
	Email          string             `json:"email"`
	Method         string             `json:"method"`
	City           string             `json:"city"`
	Street         string             `json:"street"`
	Apt            string             `json:"apt"`
	Notes          string             `json:"notes"`
	DeliverySlot   string             `json:"delivery_slot"`
	PaymentMethod  string             `json:"payment_method"`
	PromotionCode  string             `json:"promotion_code"`
	MarketingOptIn bool               `json:"marketing_opt_in"`
	Items          []OrderItemRequest `json:"items"`
}

type OrderCreateResponse struct {
	ID   string `json:"id"`
	Code string `json:"code"`
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/orders", h.create)
	e.GET("/orders/:id", h.detail)
	e.GET("/orders/code/:code", h.detailByCode)
}

func (h *OrderHandler) create(c echo.Context) error {
	var req OrderCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	items := make([]usecase.CartItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, usecase.CartItemInput{Key: it.Key, Flavor: it.Flavor, Qty: it.Qty})
	}

	out, err := h.uc.PlaceOrder(c.Request().Context(), usecase.PlaceOrderInput{
		Name:           req.Name,
		Phone:          req.Phone,
		Email:          req.Email,
		Method:         req.Method,
		City:           req.City,
		Street:         req.Street,
		Apt:            req.Apt,
		Notes:          req.Notes,
		DeliverySlot:   req.DeliverySlot,
		PaymentMethod:  req.PaymentMethod,
		PromotionCode:  req.PromotionCode,
		MarketingOptIn: req.MarketingOptIn,
		Items:          items,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, OrderCreateResponse{ID: out.ID, Code: out.Code})
}

func (h *OrderHandler) detail(c echo.Context) error {
	out, err := h.uc.GetOrder(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) detailByCode(c echo.Context) error {
	out, err := h.uc.GetOrderByCode(c.Request().Context(), c.Param("code"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
