package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Withdrawal is the database representation of a payout request.
type Withdrawal struct {
	WithdrawalID       string          `db:"withdrawal_id"`
	UserID             string          `db:"user_id"`
	Amount             decimal.Decimal `db:"amount"`
	Status             string          `db:"status"`
	PayoutMethod       string          `db:"payout_method"`
	UPIID              string          `db:"upi_id"`
	BankAccountNumber  string          `db:"bank_account_number"`
	IFSCCode           string          `db:"ifsc_code"`
	PaymentReferenceID string          `db:"payment_reference_id"`
	AdminNotes         string          `db:"admin_notes"`
	RequestedAt        time.Time       `db:"requested_at"`
	AuditFields
}
