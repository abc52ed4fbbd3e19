package repository

import (
	"context"
	"time"

	"smokeysalmons/internal/domain/model"
)

type AdminOrderListFilter struct {
	Page          int
	Limit         int
	Status        string
	PaymentStatus string
	From          *time.Time
	To            *time.Time
}

type OrderRepository interface {
	FindByID(ctx context.Context, orderID string) (model.Order, error)
	FindByCode(ctx context.Context, code string) (model.Order, error)
	Create(ctx context.Context, order model.Order) error

	// UpdateStatusIfは現在ステータスがfromのときだけ更新する（CAS）。
	// 更新できなかったらfalse（並行更新に負けた等）。
	UpdateStatusIf(ctx context.Context, orderID string, from, to model.OrderStatus) (bool, error)
	UpdatePaymentStatusIf(ctx context.Context, orderID string, from, to model.PaymentStatus) (bool, error)

	// CancelExpiredは支払い期限切れの注文をまとめてCANCELLEDにして件数を返す。
	// 支払いステータスは触らない（返金ではなくフルフィルメント側のキャンセル）。
	CancelExpired(ctx context.Context, now time.Time) (int64, error)

	//管理者用の注文一覧
	ListAdmin(ctx context.Context, f AdminOrderListFilter) ([]model.Order, int64, error)
	//CSVエクスポート用（placedAt降順で全件）
	ListAll(ctx context.Context) ([]model.Order, error)
}
