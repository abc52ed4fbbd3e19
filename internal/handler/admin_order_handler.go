package handler

import (
	"bytes"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"smokeysalmons/internal/config"
	"smokeysalmons/internal/middleware"
	"smokeysalmons/internal/repository"
	"smokeysalmons/internal/usecase"
)

type SuccessResponse struct {
	Message string `json:"message"`
}

type AdminOrderHandler struct {
	uc *usecase.AdminOrderUsecase
}

func NewAdminOrderHandler(uc *usecase.AdminOrderUsecase) *AdminOrderHandler {
	return &AdminOrderHandler{uc: uc}
}

type OrderStatusUpdateRequest struct {
	Status string `json:"status"`
}

type ExpirePaymentsResponse struct {
	Success   bool  `json:"success"`
	Cancelled int64 `json:"cancelled"`
}

func (h *AdminOrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	admin := e.Group("/admin")
	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.AdminRoleGuard())

	admin.GET("/orders", h.list)
	admin.GET("/orders.csv", h.exportCSV)
	admin.PUT("/orders/:id/status", h.updateStatus)
	admin.PUT("/orders/:id/payment-status", h.updatePaymentStatus)
	admin.POST("/payments/expire", h.expirePayments)
}

func (h *AdminOrderHandler) list(c echo.Context) error {
	page := 1
	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid page"})
		}
		page = p
	}

	limit := 50
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		limit = l
	}

	var fromPtr *time.Time
	if v := c.QueryParam("from"); v != "" {
		tm, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid from"})
		}
		fromPtr = &tm
	}

	var toPtr *time.Time
	if v := c.QueryParam("to"); v != "" {
		tm, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid to"})
		}
		toPtr = &tm
	}

	out, err := h.uc.List(c.Request().Context(), repository.AdminOrderListFilter{
		Page:          page,
		Limit:         limit,
		Status:        c.QueryParam("status"),
		PaymentStatus: c.QueryParam("payment_status"),
		From:          fromPtr,
		To:            toPtr,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *AdminOrderHandler) updateStatus(c echo.Context) error {
	var req OrderStatusUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	adminID, ok := getAdminIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	if err := h.uc.UpdateStatus(c.Request().Context(), adminID, c.Param("id"), req.Status); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "updated"})
}

func (h *AdminOrderHandler) updatePaymentStatus(c echo.Context) error {
	var req OrderStatusUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	adminID, ok := getAdminIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	if err := h.uc.UpdatePaymentStatus(c.Request().Context(), adminID, c.Param("id"), req.Status); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "updated"})
}

func (h *AdminOrderHandler) expirePayments(c echo.Context) error {
	count, err := h.uc.ExpirePayments(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, ExpirePaymentsResponse{Success: true, Cancelled: count})
}

func (h *AdminOrderHandler) exportCSV(c echo.Context) error {
	//ステータスを確定する前に一度バッファへ書き切る。
	//途中で失敗したとき、200のCSVにエラーJSONが混ざるのを防ぐ。
	var buf bytes.Buffer
	if err := h.uc.ExportCSV(c.Request().Context(), &buf); err != nil {
		return writeError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="orders.csv"`)
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

//middleware.AuthJWT が c.Set("admin_id", string) した値を取り出す

func getAdminIDFromContext(c echo.Context) (string, bool) {
	v := c.Get(middleware.CtxAdminIDKey)
	if v == nil {
		return "", false
	}

	id, ok := v.(string)
	if !ok || id == "" {
		return "", false
	}

	return id, true
}
