package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID            string          `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Slug          string          `gorm:"type:varchar(50);not null;uniqueIndex" json:"slug"`
	Name          string          `gorm:"type:varchar(255);not null" json:"name"`
	Description   string          `gorm:"type:text" json:"description"`
	BasePrice     decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"base_price"`
	IsMarketPrice bool            `gorm:"not null;default:false" json:"is_market_price"`
	CreatedAt     time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
