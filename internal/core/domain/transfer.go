package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferKind classifies a ledger entry. Each kind is either a credit to
// the receiving user or a debit from the sending user; GIFT is both (it is
// recorded once with both users set).
type TransferKind string

const (
	KindAdminCredit      TransferKind = "ADMIN_CREDIT"
	KindAddFunds         TransferKind = "ADD_FUNDS"
	KindGift             TransferKind = "GIFT"
	KindInvestment       TransferKind = "INVESTMENT"
	KindSubscription     TransferKind = "SUBSCRIPTION"
	KindWithdrawal       TransferKind = "WITHDRAWAL"
	KindReinvest         TransferKind = "REINVEST"
	KindDonate           TransferKind = "DONATE"
	KindWithdrawalRefund TransferKind = "WITHDRAWAL_REFUND"
)

// CreditKinds are the kinds that increase the balance of ToUserID.
var CreditKinds = []TransferKind{KindAdminCredit, KindAddFunds, KindGift, KindWithdrawalRefund}

// DebitKinds are the kinds that decrease the balance of FromUserID.
var DebitKinds = []TransferKind{KindInvestment, KindSubscription, KindWithdrawal, KindReinvest, KindDonate, KindGift}

// IsDebit reports whether the kind reduces the sender's balance.
func (k TransferKind) IsDebit() bool {
	switch k {
	case KindInvestment, KindSubscription, KindWithdrawal, KindReinvest, KindDonate, KindGift:
		return true
	}
	return false
}

// IsCredit reports whether the kind increases the recipient's balance.
func (k TransferKind) IsCredit() bool {
	switch k {
	case KindAdminCredit, KindAddFunds, KindGift, KindWithdrawalRefund:
		return true
	}
	return false
}

// Transfer is a single append-only ledger record. FromUserID is empty for
// system-originated credits, ToUserID is empty for outflows to the system or
// a project. A Transfer is never updated or deleted once written.
type Transfer struct {
	TransferID string          `json:"transferID"`
	FromUserID string          `json:"fromUserID,omitempty"`
	ToUserID   string          `json:"toUserID,omitempty"`
	ProjectID  string          `json:"projectID,omitempty"`
	Amount     decimal.Decimal `json:"amount"` // always positive
	Kind       TransferKind    `json:"kind"`
	OccurredAt time.Time       `json:"occurredAt"`
	Notes      string          `json:"notes,omitempty"`
	AuditFields
}
