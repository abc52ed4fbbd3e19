package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"smokeysalmons/internal/config"
	"smokeysalmons/internal/domain/model"
	"smokeysalmons/internal/handler"
	repo "smokeysalmons/internal/repository"
	"smokeysalmons/internal/usecase"
)

// =====================
// モック
// =====================

type TxManagerMock struct {
	Repos repo.TxRepos
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(m.Repos)
}

type TxReposMock struct {
	orders     *OrderRepoMock
	orderItems *OrderItemRepoMock
}

func (r *TxReposMock) Orders() repo.OrderRepository         { return r.orders }
func (r *TxReposMock) OrderItems() repo.OrderItemRepository { return r.orderItems }
func (r *TxReposMock) Products() repo.ProductRepository {
	panic("not used in admin order handler tests")
}
func (r *TxReposMock) Flavors() repo.FlavorRepository {
	panic("not used in admin order handler tests")
}
func (r *TxReposMock) Promotions() repo.PromotionRepository {
	panic("not used in admin order handler tests")
}

type OrderRepoMock struct {
	mock.Mock
}

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID string) (model.Order, error) {
	panic("not used in admin order handler tests")
}

func (m *OrderRepoMock) FindByCode(ctx context.Context, code string) (model.Order, error) {
	panic("not used in admin order handler tests")
}

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) error {
	panic("not used in admin order handler tests")
}

func (m *OrderRepoMock) UpdateStatusIf(ctx context.Context, orderID string, from, to model.OrderStatus) (bool, error) {
	panic("not used in admin order handler tests")
}

func (m *OrderRepoMock) UpdatePaymentStatusIf(ctx context.Context, orderID string, from, to model.PaymentStatus) (bool, error) {
	panic("not used in admin order handler tests")
}

func (m *OrderRepoMock) CancelExpired(ctx context.Context, now time.Time) (int64, error) {
	panic("not used in admin order handler tests")
}

func (m *OrderRepoMock) ListAdmin(ctx context.Context, f repo.AdminOrderListFilter) ([]model.Order, int64, error) {
	panic("not used in admin order handler tests")
}

func (m *OrderRepoMock) ListAll(ctx context.Context) ([]model.Order, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Order), args.Error(1)
}

type OrderItemRepoMock struct {
	mock.Mock
}

func (m *OrderItemRepoMock) CreateBulk(ctx context.Context, orderID string, items []model.OrderItem) error {
	panic("not used in admin order handler tests")
}

func (m *OrderItemRepoMock) ListByOrderID(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]model.OrderItem), args.Error(1)
}

type NotifierStub struct{}

func (NotifierStub) SendOrderConfirmation(ctx context.Context, n usecase.OrderNotification) error {
	return nil
}

func (NotifierStub) SendAdminAlert(ctx context.Context, n usecase.OrderNotification) error {
	return nil
}

func (NotifierStub) SendPaymentConfirmation(ctx context.Context, n usecase.OrderNotification) error {
	return nil
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// =====================
// ヘルパー
// =====================

func newExportServer(t *testing.T, orders *OrderRepoMock, items *OrderItemRepoMock) (*echo.Echo, string) {
	t.Helper()

	cfg := config.Config{JWTSecret: "test-secret"}
	txm := &TxManagerMock{Repos: &TxReposMock{orders: orders, orderItems: items}}
	uc := usecase.NewAdminOrderUsecase(txm, orders, NotifierStub{}, zap.NewNop().Sugar(), fixedClock{t: time.Now()})

	e := echo.New()
	handler.NewAdminOrderHandler(uc).RegisterRoutes(e, cfg)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "admin-001",
		"role": "ADMIN",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(cfg.JWTSecret))
	assert.NoError(t, err)

	return e, signed
}

func getExport(e *echo.Echo, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/admin/orders.csv", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// =====================
// GET /admin/orders.csv
// =====================

func TestExportCSV_SuccessReturnsCSVAttachment(t *testing.T) {
	orders := new(OrderRepoMock)
	items := new(OrderItemRepoMock)

	email := "dana@example.com"
	orders.On("ListAll", mock.Anything).Return([]model.Order{{
		ID:            "o-001",
		Code:          "ABC234",
		Status:        model.OrderStatusPending,
		PaymentStatus: model.PaymentStatusUnpaid,
		PaymentMethod: model.PaymentMethodCash,
		ContactName:   "Dana Levi",
		ContactPhone:  "050-1234567",
		ContactEmail:  &email,
		Total:         decimal.NewFromInt(240),
		PlacedAt:      time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC),
	}}, nil).Once()
	items.On("ListByOrderID", mock.Anything, "o-001").Return([]model.OrderItem{{
		ID:                  "i-001",
		OrderID:             "o-001",
		ProductID:           "p-whole",
		ProductNameSnapshot: "Whole Salmon",
		Quantity:            1,
		UnitPrice:           decimal.NewFromInt(240),
	}}, nil).Once()

	e, token := newExportServer(t, orders, items)
	rec := getExport(e, token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/csv")
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "orders.csv")
	assert.True(t, strings.HasPrefix(rec.Body.String(), "placedAt,code,status"))
	assert.Contains(t, rec.Body.String(), "ABC234")
}

func TestExportCSV_FailureReturnsJSONErrorNotPartialCSV(t *testing.T) {
	orders := new(OrderRepoMock)
	items := new(OrderItemRepoMock)

	orders.On("ListAll", mock.Anything).Return([]model.Order{}, assert.AnError).Once()

	e, token := newExportServer(t, orders, items)
	rec := getExport(e, token)

	//失敗したらエラーJSONのみ。200のCSVボディにJSONが混ざらないこと。
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "application/json")
	assert.NotContains(t, rec.Body.String(), "placedAt,code,status")
	assert.Contains(t, rec.Body.String(), "db error")
}

func TestExportCSV_RequiresToken(t *testing.T) {
	e, _ := newExportServer(t, new(OrderRepoMock), new(OrderItemRepoMock))

	req := httptest.NewRequest(http.MethodGet, "/admin/orders.csv", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
