package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentOrderKind distinguishes pay-in orders from payout orders.
type PaymentOrderKind string

const (
	OrderPayIn  PaymentOrderKind = "PAYIN"
	OrderPayout PaymentOrderKind = "PAYOUT"
)

// PaymentOrderStatus is the gateway-side lifecycle of an order.
type PaymentOrderStatus string

const (
	OrderPending   PaymentOrderStatus = "PENDING"
	OrderSuccess   PaymentOrderStatus = "SUCCESS"
	OrderFailed    PaymentOrderStatus = "FAILED"
	OrderCancelled PaymentOrderStatus = "CANCELLED"
)

// PaymentOrder is the gateway's view of a payment or payout. The ledger only
// ever consumes the resulting SettlementEvent; order internals stay in the
// gateway collaborator.
type PaymentOrder struct {
	OrderID       string             `json:"orderID"`
	Kind          PaymentOrderKind   `json:"kind"`
	Amount        decimal.Decimal    `json:"amount"`
	Currency      string             `json:"currency"`
	CustomerName  string             `json:"customerName"`
	CustomerEmail string             `json:"customerEmail"`
	CustomerPhone string             `json:"customerPhone,omitempty"`
	Note          string             `json:"note,omitempty"`
	Status        PaymentOrderStatus `json:"status"`
	TransactionID string             `json:"transactionID,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
	ProcessedAt   *time.Time         `json:"processedAt,omitempty"`
}

// SettlementEvent is the opaque upstream confirmation the ledger reacts to.
type SettlementEvent struct {
	OrderID string             `json:"orderId"`
	Amount  decimal.Decimal    `json:"amount"`
	Status  PaymentOrderStatus `json:"status"`
}
