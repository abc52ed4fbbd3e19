package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID() string
}

// 注文コードを生成する約束
type CodeGenerator interface {
	Generate() (string, error)
}

type OrderNotification struct {
	To        string
	OrderCode string
	Customer  string
	Phone     string
	Summary   []string
	Total     decimal.Decimal
	Method    string
}

// 通知の約束。失敗してもログに残すだけで、注文処理は失敗させない。
type Notifier interface {
	SendOrderConfirmation(ctx context.Context, n OrderNotification) error
	SendAdminAlert(ctx context.Context, n OrderNotification) error
	SendPaymentConfirmation(ctx context.Context, n OrderNotification) error
}

type AnalyticsEvent interface {
	EventName() string
}

type AddToCartEvent struct {
	Key    string
	Name   string
	Flavor string
	Qty    int64
	Price  decimal.Decimal
}

func (AddToCartEvent) EventName() string { return "add_to_cart" }

type OrderPlacedEvent struct {
	OrderID string
	Code    string
	Total   decimal.Decimal
	Items   int
}

func (OrderPlacedEvent) EventName() string { return "order_placed" }

// 計測の約束。呼び出し元をブロックも失敗もさせない。
type Analytics interface {
	Track(event AnalyticsEvent)
}
