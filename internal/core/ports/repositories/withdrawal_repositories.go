package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/sunyield/sunyield_backend/internal/core/domain"
)

// WithdrawalReader defines read operations for payout requests.
type WithdrawalReader interface {
	// FindWithdrawalByID retrieves a single withdrawal.
	FindWithdrawalByID(ctx context.Context, withdrawalID string) (*domain.Withdrawal, error)

	// ListWithdrawalsByUser retrieves a user's withdrawal history, newest first.
	ListWithdrawalsByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Withdrawal, *string, error)

	// ListWithdrawalsByStatus retrieves withdrawals in one status for admin review.
	ListWithdrawalsByStatus(ctx context.Context, status domain.WithdrawalStatus, limit int, offset int) ([]domain.Withdrawal, error)
}

// WithdrawalWriter defines write operations for payout requests.
type WithdrawalWriter interface {
	// SaveWithdrawalInTx persists a withdrawal within the authorizer's
	// transaction so the payout record and its WITHDRAWAL ledger entry
	// commit together.
	SaveWithdrawalInTx(ctx context.Context, tx pgx.Tx, withdrawal domain.Withdrawal) error

	// SumPaidWithdrawalsInRangeInTx sums the user's PAID withdrawals with
	// requested_at within [start, end), inside the caller's transaction.
	// Backed by the (user_id, status, requested_at) index.
	SumPaidWithdrawalsInRangeInTx(ctx context.Context, tx pgx.Tx, userID string, start, end time.Time) (decimal.Decimal, error)

	// UpdateWithdrawalStatusInTx records an admin decision within the
	// caller's transaction (used with the refund credit append).
	UpdateWithdrawalStatusInTx(ctx context.Context, tx pgx.Tx, withdrawalID string, status domain.WithdrawalStatus, adminNotes string, updatedByUserID string) error
}

// WithdrawalRepositoryFacade combines withdrawal read and write interfaces.
type WithdrawalRepositoryFacade interface {
	WithdrawalReader
	WithdrawalWriter
}
