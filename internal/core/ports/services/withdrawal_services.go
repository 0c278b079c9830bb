package services

import (
	"context"

	"github.com/sunyield/sunyield_backend/internal/core/domain"
	"github.com/sunyield/sunyield_backend/internal/dto"
)

// WithdrawalReaderSvc defines read operations for withdrawal data
type WithdrawalReaderSvc interface {
	// GetWithdrawalByID retrieves a single withdrawal. Non-admin callers
	// only see their own.
	GetWithdrawalByID(ctx context.Context, withdrawalID string, requestingUserID string, isAdmin bool) (*domain.Withdrawal, error)

	// ListWithdrawalsByUser retrieves a user's withdrawal history.
	ListWithdrawalsByUser(ctx context.Context, userID string, params dto.ListWithdrawalsParams) (*dto.ListWithdrawalsResponse, error)

	// ListWithdrawalsByStatus retrieves withdrawals for admin review.
	ListWithdrawalsByStatus(ctx context.Context, status domain.WithdrawalStatus, limit, offset int) ([]domain.Withdrawal, error)
}

// WithdrawalWriterSvc defines write operations for withdrawal data
type WithdrawalWriterSvc interface {
	// RequestWithdrawal authorizes and debits the payout amount, then
	// records the withdrawal as PAID with a simulated payout reference in
	// the same transaction.
	RequestWithdrawal(ctx context.Context, userID string, req dto.CreateWithdrawalRequest) (*domain.Withdrawal, error)

	// RejectWithdrawal reverses a paid withdrawal: the status moves to
	// REJECTED and a WITHDRAWAL_REFUND credit lands in the same transaction.
	RejectWithdrawal(ctx context.Context, withdrawalID string, req dto.RejectWithdrawalRequest, adminUserID string) (*domain.Withdrawal, error)
}

// WithdrawalSvcFacade combines all withdrawal-related service interfaces
type WithdrawalSvcFacade interface {
	WithdrawalReaderSvc
	WithdrawalWriterSvc
}
