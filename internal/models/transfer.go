package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transfer is the database representation of a ledger record. The table is
// append-only; there are no update paths for these rows.
type Transfer struct {
	TransferID string          `db:"transfer_id"`
	FromUserID *string         `db:"from_user_id"` // NULL = system origin
	ToUserID   *string         `db:"to_user_id"`   // NULL = system/project sink
	ProjectID  *string         `db:"project_id"`
	Amount     decimal.Decimal `db:"amount"`
	Kind       string          `db:"kind"`
	OccurredAt time.Time       `db:"occurred_at"`
	Notes      string          `db:"notes"`
	AuditFields
}
