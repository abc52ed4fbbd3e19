package repository

import (
	"context"

	"smokeysalmons/internal/domain/model"
)

type OrderItemRepository interface {
	//親注文と同じトランザクション内で一括作成する
	CreateBulk(ctx context.Context, orderID string, items []model.OrderItem) error
	ListByOrderID(ctx context.Context, orderID string) ([]model.OrderItem, error)
}
