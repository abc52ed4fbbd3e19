package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type DiscountType string

const (
	DiscountTypePercentage DiscountType = "PERCENTAGE"
	DiscountTypeFixed      DiscountType = "FIXED"
)

// Promotionは割引ルール。注文フローからは読み取り専用。
type Promotion struct {
	ID        string           `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Code      string           `gorm:"type:varchar(20);not null;uniqueIndex" json:"code"`
	Type      DiscountType     `gorm:"type:varchar(20);not null" json:"type"`
	Value     decimal.Decimal  `gorm:"type:numeric(10,2);not null" json:"value"`
	MinOrder  *decimal.Decimal `gorm:"type:numeric(10,2)" json:"min_order"`
	StartsAt  *time.Time       `json:"starts_at"`
	EndsAt    *time.Time       `json:"ends_at"`
	Active    bool             `gorm:"not null;default:false" json:"active"`
	CreatedAt time.Time        `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time        `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func ValidDiscountType(s string) bool {
	switch DiscountType(s) {
	case DiscountTypePercentage, DiscountTypeFixed:
		return true
	default:
		return false
	}
}
