package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 注文明細。単価は注文時点のスナップショットで、後で商品価格が変わっても動かさない。
type OrderItem struct {
	ID                  string          `gorm:"primaryKey;type:varchar(36)" json:"id"`
	OrderID             string          `gorm:"type:varchar(36);not null;index" json:"order_id"`
	ProductID           string          `gorm:"type:varchar(36);not null;index" json:"product_id"`
	FlavorID            *string         `gorm:"type:varchar(36)" json:"flavor_id"`
	ProductNameSnapshot string          `gorm:"type:varchar(255);not null" json:"product_name_snapshot"`
	FlavorNameSnapshot  *string         `gorm:"type:varchar(100)" json:"flavor_name_snapshot"`
	Quantity            int64           `gorm:"not null" json:"quantity"`
	UnitPrice           decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"unit_price"`
	CreatedAt           time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}
