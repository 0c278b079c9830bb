package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Coupon is the database representation of a discount coupon.
type Coupon struct {
	CouponID        string          `db:"coupon_id"`
	Code            string          `db:"code"`
	DiscountPercent decimal.Decimal `db:"discount_percent"`
	ExpiresAt       time.Time       `db:"expires_at"`
	MaxRedemptions  int             `db:"max_redemptions"`
	Redemptions     int             `db:"redemptions"`
	IsActive        bool            `db:"is_active"`
	AuditFields
}
