package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Coupon applies a percent discount to a subscription contribution.
type Coupon struct {
	CouponID        string          `json:"couponID"`
	Code            string          `json:"code"`
	DiscountPercent decimal.Decimal `json:"discountPercent"` // 0 < p <= 100
	ExpiresAt       time.Time       `json:"expiresAt"`
	MaxRedemptions  int             `json:"maxRedemptions"` // 0 = unlimited
	Redemptions     int             `json:"redemptions"`
	IsActive        bool            `json:"isActive"`
	AuditFields
}

// Usable reports whether the coupon can still be redeemed at the given time.
func (c Coupon) Usable(now time.Time) bool {
	if !c.IsActive || now.After(c.ExpiresAt) {
		return false
	}
	return c.MaxRedemptions == 0 || c.Redemptions < c.MaxRedemptions
}

// Apply returns the contribution after discount, rounded to 2 places.
func (c Coupon) Apply(amount decimal.Decimal) decimal.Decimal {
	discount := amount.Mul(c.DiscountPercent).Div(decimal.NewFromInt(100))
	return amount.Sub(discount).Round(2)
}
