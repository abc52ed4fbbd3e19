package usecase_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"smokeysalmons/internal/domain/model"
	repo "smokeysalmons/internal/repository"
	"smokeysalmons/internal/usecase"
)

// =====================
// TxManager / TxRepos mocks
// =====================

// TxManagerMock は WithinTx の中で渡す repos を固定して unit テストを回す
type TxManagerMock struct {
	Repos repo.TxRepos
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(m.Repos)
}

type TxReposMock struct {
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
	products   repo.ProductRepository
	flavors    repo.FlavorRepository
	promotions repo.PromotionRepository
}

func (r *TxReposMock) Orders() repo.OrderRepository         { return r.orders }
func (r *TxReposMock) OrderItems() repo.OrderItemRepository { return r.orderItems }
func (r *TxReposMock) Products() repo.ProductRepository     { return r.products }
func (r *TxReposMock) Flavors() repo.FlavorRepository       { return r.flavors }
func (r *TxReposMock) Promotions() repo.PromotionRepository { return r.promotions }

// =====================
// Repository mocks
// =====================

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID string) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) FindByCode(ctx context.Context, code string) (model.Order, error) {
	args := m.Called(ctx, code)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *OrderRepoMock) UpdateStatusIf(ctx context.Context, orderID string, from, to model.OrderStatus) (bool, error) {
	args := m.Called(ctx, orderID, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *OrderRepoMock) UpdatePaymentStatusIf(ctx context.Context, orderID string, from, to model.PaymentStatus) (bool, error) {
	args := m.Called(ctx, orderID, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *OrderRepoMock) CancelExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepoMock) ListAdmin(ctx context.Context, f repo.AdminOrderListFilter) ([]model.Order, int64, error) {
	args := m.Called(ctx, f)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Get(1).(int64), args.Error(2)
}

func (m *OrderRepoMock) ListAll(ctx context.Context) ([]model.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) CreateBulk(ctx context.Context, orderID string, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *OrderItemRepoMock) ListByOrderID(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) List(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	products, _ := args.Get(0).([]model.Product)
	return products, args.Error(1)
}

func (m *ProductRepoMock) FindBySlugs(ctx context.Context, slugs []string) ([]model.Product, error) {
	args := m.Called(ctx, slugs)
	products, _ := args.Get(0).([]model.Product)
	return products, args.Error(1)
}

type FlavorRepoMock struct{ mock.Mock }

func (m *FlavorRepoMock) List(ctx context.Context) ([]model.Flavor, error) {
	args := m.Called(ctx)
	flavors, _ := args.Get(0).([]model.Flavor)
	return flavors, args.Error(1)
}

func (m *FlavorRepoMock) FindByNames(ctx context.Context, names []string) ([]model.Flavor, error) {
	args := m.Called(ctx, names)
	flavors, _ := args.Get(0).([]model.Flavor)
	return flavors, args.Error(1)
}

type PromotionRepoMock struct{ mock.Mock }

func (m *PromotionRepoMock) ListUsable(ctx context.Context, now time.Time) ([]model.Promotion, error) {
	args := m.Called(ctx, now)
	promos, _ := args.Get(0).([]model.Promotion)
	return promos, args.Error(1)
}

func (m *PromotionRepoMock) List(ctx context.Context) ([]model.Promotion, error) {
	args := m.Called(ctx)
	promos, _ := args.Get(0).([]model.Promotion)
	return promos, args.Error(1)
}

func (m *PromotionRepoMock) Upsert(ctx context.Context, p model.Promotion) (model.Promotion, error) {
	args := m.Called(ctx, p)
	saved, _ := args.Get(0).(model.Promotion)
	return saved, args.Error(1)
}

type AdminUserRepoMock struct{ mock.Mock }

func (m *AdminUserRepoMock) FindByEmail(ctx context.Context, email string) (model.AdminUser, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(model.AdminUser)
	return u, args.Error(1)
}

func (m *AdminUserRepoMock) Create(ctx context.Context, user model.AdminUser) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// =====================
// Notifier / Analytics mocks
// =====================

type NotifierMock struct{ mock.Mock }

func (m *NotifierMock) SendOrderConfirmation(ctx context.Context, n usecase.OrderNotification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *NotifierMock) SendAdminAlert(ctx context.Context, n usecase.OrderNotification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *NotifierMock) SendPaymentConfirmation(ctx context.Context, n usecase.OrderNotification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

// AnalyticsSpy は呼ばれたイベントをそのまま貯める（失敗しない約束なのでmock.Mock不要）
type AnalyticsSpy struct {
	Events []usecase.AnalyticsEvent
}

func (s *AnalyticsSpy) Track(event usecase.AnalyticsEvent) {
	s.Events = append(s.Events, event)
}

// =====================
// Clock / ID / Code stubs
// =====================

type fixedClock struct{ t time.Time }

func (c *fixedClock) Now() time.Time { return c.t }

type seqIDGen struct {
	n int
}

func (g *seqIDGen) NewID() string {
	g.n++
	return fmt.Sprintf("id-%03d", g.n)
}

// stubCodeGen は決めたコードを順に返す（衝突リトライの再現用）
type stubCodeGen struct {
	codes []string
	i     int
}

func (g *stubCodeGen) Generate() (string, error) {
	if g.i >= len(g.codes) {
		return g.codes[len(g.codes)-1], nil
	}
	c := g.codes[g.i]
	g.i++
	return c, nil
}

// =====================
// Helper: error contains（HTTPErrorの実装詳細に依存しない）
// =====================

func assertErrContains(t *testing.T, err error, wantSubstr string) {
	t.Helper()
	if assert.Error(t, err) {
		assert.True(t, strings.Contains(err.Error(), wantSubstr), "err=%q want contains %q", err.Error(), wantSubstr)
	}
}
