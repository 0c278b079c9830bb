package services

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sunyield/sunyield_backend/internal/core/domain"
)

// PaymentGatewaySvc abstracts the payment provider. The shipped
// implementation is a simulator with configured latency and success rate.
type PaymentGatewaySvc interface {
	// CreateOrder registers a pay-in order with the gateway.
	CreateOrder(ctx context.Context, userID string, amount decimal.Decimal, kind domain.PaymentOrderKind) (*domain.PaymentOrder, error)

	// GetOrder polls the gateway for current order status.
	GetOrder(ctx context.Context, orderID string) (*domain.PaymentOrder, error)

	// SettleOrder resolves a pending order and returns the settlement
	// event the gateway would deliver on its webhook.
	SettleOrder(ctx context.Context, orderID string) (*domain.SettlementEvent, error)
}
