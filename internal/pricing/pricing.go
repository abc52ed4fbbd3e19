package pricing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"smokeysalmons/internal/domain/model"
)

// CartLineはクライアントが持つカート1行。単価は信用しない。
type CartLine struct {
	Key    string
	Flavor string
	Qty    int64
}

// PricedLineはカタログで単価を解決した行
type PricedLine struct {
	CartLine
	UnitPrice decimal.Decimal
}

// Catalogはslug→単価の解決。注文フローからは読み取り専用。
type Catalog interface {
	UnitPrice(key string) (decimal.Decimal, bool)
}

// 不明な商品キー。注文全体を拒否するためのエラー（行スキップはしない）。
type UnknownProductError struct {
	Key string
}

func (e *UnknownProductError) Error() string {
	return fmt.Sprintf("unknown product key: %s", e.Key)
}

// PriceItemsはカタログから単価を引いて入力順のまま返す
func PriceItems(catalog Catalog, lines []CartLine) ([]PricedLine, error) {
	priced := make([]PricedLine, 0, len(lines))
	for _, l := range lines {
		unit, ok := catalog.UnitPrice(l.Key)
		if !ok {
			return nil, &UnknownProductError{Key: l.Key}
		}
		priced = append(priced, PricedLine{CartLine: l, UnitPrice: unit})
	}
	return priced, nil
}

// Subtotalはqty*unitPriceの合計。空なら0。
func Subtotal(lines []PricedLine) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.UnitPrice.Mul(decimal.NewFromInt(l.Qty)))
	}
	return sum
}

type PromotionResult struct {
	Discount decimal.Decimal
	Total    decimal.Decimal
}

// ApplyPromotionは割引を計算する純関数。
// 条件を満たさない場合はエラーではなく割引0で返す。
func ApplyPromotion(subtotal decimal.Decimal, promo *model.Promotion) PromotionResult {
	if promo == nil || !promo.Active {
		return PromotionResult{Discount: decimal.Zero, Total: subtotal}
	}
	if promo.MinOrder != nil && subtotal.LessThan(*promo.MinOrder) {
		return PromotionResult{Discount: decimal.Zero, Total: subtotal}
	}

	discount := decimal.Zero
	switch promo.Type {
	case model.DiscountTypePercentage:
		//丸めは行ごとではなく1回だけ（通貨単位へ四捨五入）
		discount = subtotal.Mul(promo.Value).Div(decimal.NewFromInt(100)).Round(0)
	case model.DiscountTypeFixed:
		discount = decimal.Min(promo.Value, subtotal)
	}

	total := subtotal.Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}
	return PromotionResult{Discount: discount, Total: total}
}

// CityEligibleは正規化した市名が配達対象と一致するか
func CityEligible(city string, supportedCity string) bool {
	return strings.EqualFold(strings.TrimSpace(city), strings.TrimSpace(supportedCity))
}

// DeliveryFeeは配達料。DELIVERYかつ対象の市のときだけfee、それ以外は0。
// 住所の妥当性判断とは別物（fee 0でも配達不可の市はバリデーションで弾く）。
func DeliveryFee(method model.FulfillmentMethod, city string, fee decimal.Decimal, supportedCity string) decimal.Decimal {
	if method != model.FulfillmentDelivery {
		return decimal.Zero
	}
	if !CityEligible(city, supportedCity) {
		return decimal.Zero
	}
	return fee
}
