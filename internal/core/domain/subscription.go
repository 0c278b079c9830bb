package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentState tracks the settlement of a subscription's gateway order.
type PaymentState string

const (
	PaymentPending PaymentState = "PENDING"
	PaymentSuccess PaymentState = "SUCCESS"
	PaymentFailed  PaymentState = "FAILED"
)

// Subscription links a user's contribution to a project. Only SUCCESS-paid
// subscriptions participate in reward accrual.
type Subscription struct {
	SubscriptionID     string          `json:"subscriptionID"`
	UserID             string          `json:"userID"`
	ProjectID          string          `json:"projectID"`
	ContributionAmount decimal.Decimal `json:"contributionAmount"`
	ReservedCapacity   decimal.Decimal `json:"reservedCapacity"`
	PaymentStatus      PaymentState    `json:"paymentStatus"`
	PaymentOrderID     string          `json:"paymentOrderID,omitempty"`
	CouponCode         string          `json:"couponCode,omitempty"`
	SubscribedAt       time.Time       `json:"subscribedAt"`
	AuditFields
}
