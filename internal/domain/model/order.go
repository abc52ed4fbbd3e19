package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusPreparing OrderStatus = "PREPARING"
	OrderStatusReady     OrderStatus = "READY"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

type PaymentStatus string

const (
	PaymentStatusUnpaid   PaymentStatus = "UNPAID"
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

type PaymentMethod string

const (
	PaymentMethodBit    PaymentMethod = "BIT"
	PaymentMethodPaybox PaymentMethod = "PAYBOX"
	PaymentMethodCash   PaymentMethod = "CASH"
)

type FulfillmentMethod string

const (
	FulfillmentDelivery FulfillmentMethod = "DELIVERY"
	FulfillmentPickup   FulfillmentMethod = "PICKUP"
)

// 進行方向のみ許可。CANCELLEDはPENDING/CONFIRMEDからだけ到達できる。
// DELIVERED / CANCELLED は終端。
var orderStatusTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusPreparing, OrderStatusCancelled},
	OrderStatusPreparing: {OrderStatusReady},
	OrderStatusReady:     {OrderStatusDelivered},
	OrderStatusDelivered: {},
	OrderStatusCancelled: {},
}

// REFUNDEDは終端。CASH回収はUNPAID→PAID、BIT/PAYBOXはPENDING→PAID。
var paymentStatusTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentStatusUnpaid:   {PaymentStatusPaid},
	PaymentStatusPending:  {PaymentStatusPaid},
	PaymentStatusPaid:     {PaymentStatusRefunded},
	PaymentStatusRefunded: {},
}

func (s OrderStatus) CanTransition(next OrderStatus) bool {
	for _, t := range orderStatusTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

func (s PaymentStatus) CanTransition(next PaymentStatus) bool {
	for _, t := range paymentStatusTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

func ValidOrderStatus(s string) bool {
	_, ok := orderStatusTransitions[OrderStatus(s)]
	return ok
}

func ValidPaymentStatus(s string) bool {
	_, ok := paymentStatusTransitions[PaymentStatus(s)]
	return ok
}

func ValidPaymentMethod(s string) bool {
	switch PaymentMethod(s) {
	case PaymentMethodBit, PaymentMethodPaybox, PaymentMethodCash:
		return true
	default:
		return false
	}
}

func ValidFulfillmentMethod(s string) bool {
	switch FulfillmentMethod(s) {
	case FulfillmentDelivery, FulfillmentPickup:
		return true
	default:
		return false
	}
}

// 金額は total == subtotal - discount + delivery_fee を常に満たす
type Order struct {
	ID     string            `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Code   string            `gorm:"type:varchar(10);not null;uniqueIndex" json:"code"`
	Method FulfillmentMethod `gorm:"type:varchar(10);not null" json:"method"`
	Status OrderStatus       `gorm:"type:varchar(20);not null;index" json:"status"`

	Subtotal    decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"subtotal"`
	Discount    decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"discount"`
	DeliveryFee decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"delivery_fee"`
	Total       decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total"`

	PromotionCode *string `gorm:"type:varchar(20)" json:"promotion_code"`

	ContactName    string  `gorm:"type:varchar(255);not null" json:"contact_name"`
	ContactPhone   string  `gorm:"type:varchar(50);not null" json:"contact_phone"`
	ContactEmail   *string `gorm:"type:varchar(255)" json:"contact_email"`
	MarketingOptIn bool    `gorm:"not null;default:false" json:"marketing_opt_in"`

	City          *string `gorm:"type:varchar(100)" json:"city"`
	Street        *string `gorm:"type:varchar(255)" json:"street"`
	Apt           *string `gorm:"type:varchar(50)" json:"apt"`
	DeliveryNotes *string `gorm:"type:text" json:"delivery_notes"`
	DeliverySlot  *string `gorm:"type:varchar(50)" json:"delivery_slot"`

	PaymentMethod    PaymentMethod `gorm:"type:varchar(10);not null" json:"payment_method"`
	PaymentStatus    PaymentStatus `gorm:"type:varchar(10);not null;index" json:"payment_status"`
	PaymentExpiresAt *time.Time    `gorm:"index" json:"payment_expires_at"`

	PlacedAt  time.Time `gorm:"not null;index" json:"placed_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
