package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sunyield/sunyield_backend/internal/core/domain"
)

// SubscribeRequest defines the data needed to subscribe to a project.
type SubscribeRequest struct {
	ProjectID          string          `json:"projectID" binding:"required"`
	ContributionAmount decimal.Decimal `json:"contributionAmount" binding:"required"`
	CouponCode         string          `json:"couponCode"` // Optional
}

// SubscriptionResponse defines the data returned for a subscription.
type SubscriptionResponse struct {
	SubscriptionID     string              `json:"subscriptionID"`
	UserID             string              `json:"userID"`
	ProjectID          string              `json:"projectID"`
	ContributionAmount decimal.Decimal     `json:"contributionAmount"`
	ReservedCapacity   decimal.Decimal     `json:"reservedCapacity"`
	PaymentStatus      domain.PaymentState `json:"paymentStatus"`
	PaymentOrderID     string              `json:"paymentOrderID,omitempty"`
	CouponCode         string              `json:"couponCode,omitempty"`
	SubscribedAt       time.Time           `json:"subscribedAt"`
}

// ToSubscriptionResponse converts a domain.Subscription to the DTO.
func ToSubscriptionResponse(s *domain.Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		SubscriptionID:     s.SubscriptionID,
		UserID:             s.UserID,
		ProjectID:          s.ProjectID,
		ContributionAmount: s.ContributionAmount,
		ReservedCapacity:   s.ReservedCapacity,
		PaymentStatus:      s.PaymentStatus,
		PaymentOrderID:     s.PaymentOrderID,
		CouponCode:         s.CouponCode,
		SubscribedAt:       s.SubscribedAt,
	}
}

// ToListSubscriptionsResponse converts a slice of domain.Subscription to DTOs.
func ToListSubscriptionsResponse(subs []domain.Subscription) []SubscriptionResponse {
	responses := make([]SubscriptionResponse, len(subs))
	for i, s := range subs {
		responses[i] = ToSubscriptionResponse(&s)
	}
	return responses
}

// SubscribeResponse pairs the pending subscription with its gateway order.
type SubscribeResponse struct {
	Subscription SubscriptionResponse `json:"subscription"`
	OrderID      string               `json:"orderID"`
	PayableNow   decimal.Decimal      `json:"payableNow"` // after coupon
}

// SettlementWebhookRequest is the gateway callback payload.
type SettlementWebhookRequest struct {
	OrderID string                    `json:"orderId" binding:"required"`
	Amount  decimal.Decimal           `json:"amount" binding:"required"`
	Status  domain.PaymentOrderStatus `json:"status" binding:"required,oneof=SUCCESS FAILED CANCELLED"`
}
