package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Subscription is the database representation of a project subscription.
type Subscription struct {
	SubscriptionID     string          `db:"subscription_id"`
	UserID             string          `db:"user_id"`
	ProjectID          string          `db:"project_id"`
	ContributionAmount decimal.Decimal `db:"contribution_amount"`
	ReservedCapacity   decimal.Decimal `db:"reserved_capacity"`
	PaymentStatus      string          `db:"payment_status"`
	PaymentOrderID     string          `db:"payment_order_id"`
	CouponCode         string          `db:"coupon_code"`
	SubscribedAt       time.Time       `db:"subscribed_at"`
	AuditFields
}
