package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"smokeysalmons/internal/config"
	"smokeysalmons/internal/domain/model"
	"smokeysalmons/internal/pricing"
	repo "smokeysalmons/internal/repository"
)

// 注文コード衝突時の引き直し回数
const maxCodeAttempts = 5

type OrderUsecase struct {
	tx        repo.TransactionManager
	notifier  Notifier
	analytics Analytics
	logger    *zap.SugaredLogger
	clock     Clock
	idGen     IDGenerator
	codeGen   CodeGenerator
	cfg       config.Config
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	notifier Notifier,
	analytics Analytics,
	logger *zap.SugaredLogger,
	clock Clock,
	idGen IDGenerator,
	codeGen CodeGenerator,
	cfg config.Config,
) *OrderUsecase {
	return &OrderUsecase{
		tx:        tx,
		notifier:  notifier,
		analytics: analytics,
		logger:    logger,
		clock:     clock,
		idGen:     idGen,
		codeGen:   codeGen,
		cfg:       cfg,
	}
}

type CartItemInput struct {
	Key    string `json:"key"`
	Flavor string `json:"flavor"`
	Qty    int64  `json:"qty"`
}

type PlaceOrderInput struct {
	Name           string
	Phone          string
	Email          string
	Method         string
	City           string
	Street         string
	Apt            string
	Notes          string
	DeliverySlot   string
	PaymentMethod  string
	PromotionCode  string
	MarketingOptIn bool
	Items          []CartItemInput
}

type OrderItemOutput struct {
	Name      string          `json:"name"`
	Flavor    string          `json:"flavor,omitempty"`
	Qty       int64           `json:"qty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type OrderOutput struct {
	ID               string            `json:"id"`
	Code             string            `json:"code"`
	Method           string            `json:"method"`
	Status           string            `json:"status"`
	Subtotal         decimal.Decimal   `json:"subtotal"`
	Discount         decimal.Decimal   `json:"discount"`
	DeliveryFee      decimal.Decimal   `json:"delivery_fee"`
	Total            decimal.Decimal   `json:"total"`
	PromotionCode    *string           `json:"promotion_code,omitempty"`
	ContactName      string            `json:"contact_name"`
	ContactPhone     string            `json:"contact_phone"`
	ContactEmail     *string           `json:"contact_email,omitempty"`
	MarketingOptIn   bool              `json:"marketing_opt_in"`
	City             *string           `json:"city,omitempty"`
	Street           *string           `json:"street,omitempty"`
	Apt              *string           `json:"apt,omitempty"`
	DeliveryNotes    *string           `json:"delivery_notes,omitempty"`
	DeliverySlot     *string           `json:"delivery_slot,omitempty"`
	PaymentMethod    string            `json:"payment_method"`
	PaymentStatus    string            `json:"payment_status"`
	PaymentExpiresAt *time.Time        `json:"payment_expires_at,omitempty"`
	PlacedAt         time.Time         `json:"placed_at"`
	Items            []OrderItemOutput `json:"items"`
}

// PlaceOrderはカートを価格付けし、プロモーションを再評価して注文を確定する。
// 通知と計測はベストエフォートで、失敗しても注文の成功は変えない。
func (u *OrderUsecase) PlaceOrder(ctx context.Context, in PlaceOrderInput) (OrderOutput, error) {
	if err := u.validatePlaceOrder(in); err != nil {
		return OrderOutput{}, err
	}

	now := u.clock.Now()

	var placed model.Order
	var placedItems []model.OrderItem

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//商品をまとめて解決
		keys := distinctKeys(in.Items)
		products, err := r.Products().FindBySlugs(ctx, keys)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		bySlug := make(map[string]model.Product, len(products))
		catalog := make(catalogMap, len(products))
		for _, p := range products {
			bySlug[p.Slug] = p
			catalog[p.Slug] = p.BasePrice
		}

		lines := make([]pricing.CartLine, 0, len(in.Items))
		for _, it := range in.Items {
			lines = append(lines, pricing.CartLine{Key: it.Key, Flavor: it.Flavor, Qty: it.Qty})
		}

		priced, err := pricing.PriceItems(catalog, lines)
		if err != nil {
			var unknown *pricing.UnknownProductError
			if errors.As(err, &unknown) {
				//不明キーは注文全体を拒否する
				return NewHTTPError(http.StatusBadRequest, unknown.Error())
			}
			return NewHTTPError(http.StatusInternalServerError, "pricing failed")
		}
		sub := pricing.Subtotal(priced)

		//プロモーションは提出時点の状態で再評価する（検証時のキャッシュは信用しない）
		discount := decimal.Zero
		total := sub
		var promoCode *string
		if code := strings.TrimSpace(in.PromotionCode); code != "" {
			promos, err := r.Promotions().ListUsable(ctx, now)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			for i := range promos {
				if strings.EqualFold(promos[i].Code, code) {
					res := pricing.ApplyPromotion(sub, &promos[i])
					discount = res.Discount
					total = res.Total
					promoCode = &promos[i].Code
					break
				}
			}
			//見つからない場合はエラーにせず割引0のまま進む
		}

		fee := pricing.DeliveryFee(model.FulfillmentMethod(in.Method), in.City, u.cfg.DeliveryFeeAmount(), u.cfg.DeliveryCity)
		total = total.Add(fee)

		paymentStatus := model.PaymentStatusUnpaid
		var expiresAt *time.Time
		if model.PaymentMethod(in.PaymentMethod) != model.PaymentMethodCash {
			paymentStatus = model.PaymentStatusPending
			t := now.Add(u.cfg.PaymentTimeout())
			expiresAt = &t
		}

		//フレーバー解決（不明な名前はスナップショットだけ残して参照はnil）
		flavorNames := distinctFlavors(in.Items)
		flavors, err := r.Flavors().FindByNames(ctx, flavorNames)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		flavorByName := make(map[string]model.Flavor, len(flavors))
		for _, f := range flavors {
			flavorByName[f.Name] = f
		}

		order := model.Order{
			ID:               u.idGen.NewID(),
			Method:           model.FulfillmentMethod(in.Method),
			Status:           model.OrderStatusPending,
			Subtotal:         sub,
			Discount:         discount,
			DeliveryFee:      fee,
			Total:            total,
			PromotionCode:    promoCode,
			ContactName:      strings.TrimSpace(in.Name),
			ContactPhone:     strings.TrimSpace(in.Phone),
			ContactEmail:     optString(in.Email),
			MarketingOptIn:   in.MarketingOptIn,
			City:             optString(in.City),
			Street:           optString(in.Street),
			Apt:              optString(in.Apt),
			DeliveryNotes:    optString(in.Notes),
			DeliverySlot:     optString(in.DeliverySlot),
			PaymentMethod:    model.PaymentMethod(in.PaymentMethod),
			PaymentStatus:    paymentStatus,
			PaymentExpiresAt: expiresAt,
			PlacedAt:         now,
		}

		//コード衝突は引き直してリトライ（idが真の主キーでcodeは表示用）
		created := false
		for attempt := 0; attempt < maxCodeAttempts; attempt++ {
			code, err := u.codeGen.Generate()
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "code generation failed")
			}
			order.Code = code

			err = r.Orders().Create(ctx, order)
			if err == nil {
				created = true
				break
			}
			if errors.Is(err, repo.ErrDuplicate) {
				continue
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if !created {
			return NewHTTPError(http.StatusInternalServerError, "could not allocate order code")
		}

		items := make([]model.OrderItem, 0, len(priced))
		for _, pl := range priced {
			p := bySlug[pl.Key]
			item := model.OrderItem{
				ID:                  u.idGen.NewID(),
				ProductID:           p.ID,
				ProductNameSnapshot: p.Name,
				Quantity:            pl.Qty,
				UnitPrice:           pl.UnitPrice,
				CreatedAt:           now,
			}
			if pl.Flavor != "" {
				name := pl.Flavor
				item.FlavorNameSnapshot = &name
				if f, ok := flavorByName[name]; ok {
					id := f.ID
					item.FlavorID = &id
				}
			}
			items = append(items, item)
		}
		if err := r.OrderItems().CreateBulk(ctx, order.ID, items); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		placed = order
		placedItems = items
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}

	u.afterPlace(ctx, placed, placedItems)

	return toOrderOutput(placed, placedItems), nil
}

func (u *OrderUsecase) GetOrder(ctx context.Context, orderID string) (OrderOutput, error) {
	if strings.TrimSpace(orderID) == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(o, items)
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func (u *OrderUsecase) GetOrderByCode(ctx context.Context, code string) (OrderOutput, error) {
	if strings.TrimSpace(code) == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid code")
	}

	var out OrderOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(o, items)
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// 副作用はログに残すだけで伝播させない
func (u *OrderUsecase) afterPlace(ctx context.Context, o model.Order, items []model.OrderItem) {
	summary := summaryLines(items)

	if o.ContactEmail != nil && *o.ContactEmail != "" {
		n := OrderNotification{
			To:        *o.ContactEmail,
			OrderCode: o.Code,
			Customer:  o.ContactName,
			Phone:     o.ContactPhone,
			Summary:   summary,
			Total:     o.Total,
			Method:    string(o.PaymentMethod),
		}
		if err := u.notifier.SendOrderConfirmation(ctx, n); err != nil {
			u.logger.Errorw("order confirmation send failed", "code", o.Code, "error", err)
		}
	}

	if u.cfg.AdminEmail != "" {
		n := OrderNotification{
			To:        u.cfg.AdminEmail,
			OrderCode: o.Code,
			Customer:  o.ContactName,
			Phone:     o.ContactPhone,
			Summary:   summary,
			Total:     o.Total,
			Method:    string(o.PaymentMethod),
		}
		if err := u.notifier.SendAdminAlert(ctx, n); err != nil {
			u.logger.Errorw("admin alert send failed", "code", o.Code, "error", err)
		}
	}

	u.analytics.Track(OrderPlacedEvent{
		OrderID: o.ID,
		Code:    o.Code,
		Total:   o.Total,
		Items:   len(items),
	})
}

func (u *OrderUsecase) validatePlaceOrder(in PlaceOrderInput) error {
	if len(strings.TrimSpace(in.Name)) < 2 {
		return NewHTTPError(http.StatusBadRequest, "invalid name")
	}
	if len(strings.TrimSpace(in.Phone)) < 5 {
		return NewHTTPError(http.StatusBadRequest, "invalid phone")
	}
	if in.Email != "" {
		if _, err := mail.ParseAddress(in.Email); err != nil {
			return NewHTTPError(http.StatusBadRequest, "invalid email")
		}
	}
	if !model.ValidFulfillmentMethod(in.Method) {
		return NewHTTPError(http.StatusBadRequest, "invalid method")
	}
	if !model.ValidPaymentMethod(in.PaymentMethod) {
		return NewHTTPError(http.StatusBadRequest, "invalid payment_method")
	}
	if len(in.Items) == 0 {
		return NewHTTPError(http.StatusBadRequest, "cart empty")
	}
	for _, it := range in.Items {
		if strings.TrimSpace(it.Key) == "" {
			return NewHTTPError(http.StatusBadRequest, "invalid item key")
		}
		if it.Qty <= 0 {
			return NewHTTPError(http.StatusBadRequest, "invalid qty")
		}
	}

	if model.FulfillmentMethod(in.Method) == model.FulfillmentDelivery {
		if strings.TrimSpace(in.City) == "" || strings.TrimSpace(in.Street) == "" {
			return NewHTTPError(http.StatusBadRequest, "city and street are required for delivery orders")
		}
		//配達料が0でも配達対象外の市は弾く（料金計算とは別の関心）
		if !pricing.CityEligible(in.City, u.cfg.DeliveryCity) {
			return NewHTTPError(http.StatusBadRequest, fmt.Sprintf("delivery is only available in %s", u.cfg.DeliveryCity))
		}
	}

	return nil
}

type catalogMap map[string]decimal.Decimal

func (m catalogMap) UnitPrice(key string) (decimal.Decimal, bool) {
	p, ok := m[key]
	return p, ok
}

func distinctKeys(items []CartItemInput) []string {
	seen := make(map[string]bool, len(items))
	keys := make([]string, 0, len(items))
	for _, it := range items {
		if !seen[it.Key] {
			seen[it.Key] = true
			keys = append(keys, it.Key)
		}
	}
	return keys
}

func distinctFlavors(items []CartItemInput) []string {
	seen := make(map[string]bool, len(items))
	names := make([]string, 0, len(items))
	for _, it := range items {
		if it.Flavor != "" && !seen[it.Flavor] {
			seen[it.Flavor] = true
			names = append(names, it.Flavor)
		}
	}
	return names
}

func optString(s string) *string {
	v := strings.TrimSpace(s)
	if v == "" {
		return nil
	}
	return &v
}

// "Whole Salmon (Maple Glaze) x 2" の形でメールや管理画面に出す
func summaryLines(items []model.OrderItem) []string {
	lines := make([]string, 0, len(items))
	for _, it := range items {
		name := it.ProductNameSnapshot
		if it.FlavorNameSnapshot != nil {
			name = fmt.Sprintf("%s (%s)", name, *it.FlavorNameSnapshot)
		}
		lines = append(lines, fmt.Sprintf("%s x %d", name, it.Quantity))
	}
	return lines
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		oi := OrderItemOutput{
			Name:      it.ProductNameSnapshot,
			Qty:       it.Quantity,
			UnitPrice: it.UnitPrice,
		}
		if it.FlavorNameSnapshot != nil {
			oi.Flavor = *it.FlavorNameSnapshot
		}
		outItems = append(outItems, oi)
	}

	return OrderOutput{
		ID:               o.ID,
		Code:             o.Code,
		Method:           string(o.Method),
		Status:           string(o.Status),
		Subtotal:         o.Subtotal,
		Discount:         o.Discount,
		DeliveryFee:      o.DeliveryFee,
		Total:            o.Total,
		PromotionCode:    o.PromotionCode,
		ContactName:      o.ContactName,
		ContactPhone:     o.ContactPhone,
		ContactEmail:     o.ContactEmail,
		MarketingOptIn:   o.MarketingOptIn,
		City:             o.City,
		Street:           o.Street,
		Apt:              o.Apt,
		DeliveryNotes:    o.DeliveryNotes,
		DeliverySlot:     o.DeliverySlot,
		PaymentMethod:    string(o.PaymentMethod),
		PaymentStatus:    string(o.PaymentStatus),
		PaymentExpiresAt: o.PaymentExpiresAt,
		PlacedAt:         o.PlacedAt,
		Items:            outItems,
	}
}
