package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// WithdrawalStatus tracks a payout request. Only PAID withdrawals count
// toward the monthly cap.
type WithdrawalStatus string

const (
	WithdrawalPending  WithdrawalStatus = "PENDING"
	WithdrawalPaid     WithdrawalStatus = "PAID"
	WithdrawalRejected WithdrawalStatus = "REJECTED"
)

// PayoutMethod selects how a withdrawal is settled.
type PayoutMethod string

const (
	PayoutUPI  PayoutMethod = "UPI"
	PayoutBank PayoutMethod = "BANK"
)

// Withdrawal is a payout request against the wallet balance.
type Withdrawal struct {
	WithdrawalID       string           `json:"withdrawalID"`
	UserID             string           `json:"userID"`
	Amount             decimal.Decimal  `json:"amount"`
	Status             WithdrawalStatus `json:"status"`
	PayoutMethod       PayoutMethod     `json:"payoutMethod"`
	UPIID              string           `json:"upiId,omitempty"`
	BankAccountNumber  string           `json:"bankAccountNumber,omitempty"`
	IFSCCode           string           `json:"ifscCode,omitempty"`
	PaymentReferenceID string           `json:"paymentReferenceID,omitempty"`
	AdminNotes         string           `json:"adminNotes,omitempty"`
	RequestedAt        time.Time        `json:"requestedAt"`
	AuditFields
}
