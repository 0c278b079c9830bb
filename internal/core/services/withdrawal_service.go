package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/sunyield/sunyield_backend/internal/apperrors"
	"github.com/sunyield/sunyield_backend/internal/core/domain"
	portsrepo "github.com/sunyield/sunyield_backend/internal/core/ports/repositories"
	portssvc "github.com/sunyield/sunyield_backend/internal/core/ports/services"
	"github.com/sunyield/sunyield_backend/internal/dto"
	"github.com/sunyield/sunyield_backend/internal/middleware"
	"github.com/sunyield/sunyield_backend/internal/utils"
)

// withdrawalService handles payout requests against the wallet balance.
type withdrawalService struct {
	withdrawalRepo portsrepo.WithdrawalRepositoryFacade
	transferRepo   portsrepo.TransferRepositoryWithTx
	userRepo       portsrepo.UserRepositoryFacade
	walletSvc      portssvc.WalletSvcFacade
	notifier       portssvc.NotifierSvc
}

// NewWithdrawalService creates a new WithdrawalService.
func NewWithdrawalService(
	withdrawalRepo portsrepo.WithdrawalRepositoryFacade,
	transferRepo portsrepo.TransferRepositoryWithTx,
	userRepo portsrepo.UserRepositoryFacade,
	walletSvc portssvc.WalletSvcFacade,
	notifier portssvc.NotifierSvc,
) portssvc.WithdrawalSvcFacade {
	return &withdrawalService{
		withdrawalRepo: withdrawalRepo,
		transferRepo:   transferRepo,
		userRepo:       userRepo,
		walletSvc:      walletSvc,
		notifier:       notifier,
	}
}

// Ensure withdrawalService implements the portssvc.WithdrawalSvcFacade interface
var _ portssvc.WithdrawalSvcFacade = (*withdrawalService)(nil)

// RequestWithdrawal runs the payout through the wallet authorizer. The
// withdrawal row is written by the in-transaction hook so it commits
// atomically with its WITHDRAWAL ledger entry.
func (s *withdrawalService) RequestWithdrawal(ctx context.Context, userID string, req dto.CreateWithdrawalRequest) (*domain.Withdrawal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	switch req.PayoutMethod {
	case domain.PayoutUPI:
		if req.UPIID == "" {
			return nil, fmt.Errorf("%w: upiId is required for UPI payouts", apperrors.ErrValidation)
		}
	case domain.PayoutBank:
		if req.BankAccountNumber == "" || req.IFSCCode == "" {
			return nil, fmt.Errorf("%w: bank account and IFSC are required for bank payouts", apperrors.ErrValidation)
		}
	default:
		return nil, fmt.Errorf("%w: unknown payout method %s", apperrors.ErrValidation, req.PayoutMethod)
	}

	now := time.Now().UTC()
	withdrawal := domain.Withdrawal{
		WithdrawalID:      uuid.NewString(),
		UserID:            userID,
		Amount:            req.Amount,
		Status:            domain.WithdrawalPaid,
		PayoutMethod:      req.PayoutMethod,
		UPIID:             req.UPIID,
		BankAccountNumber: req.BankAccountNumber,
		IFSCCode:          req.IFSCCode,
		RequestedAt:       now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	// Simulated payout settles instantly; the reference is generated here,
	// never inside a gateway call from the critical section.
	reference, err := utils.GenerateSecureRandomString(12)
	if err != nil {
		return nil, fmt.Errorf("failed to generate payout reference: %w", apperrors.ErrInternal)
	}
	withdrawal.PaymentReferenceID = "PAYOUT-" + reference

	debit := dto.DebitRequest{
		Amount: req.Amount,
		Kind:   domain.KindWithdrawal,
		Notes:  "withdrawal " + withdrawal.WithdrawalID,
	}
	_, err = s.walletSvc.AuthorizeAndDebit(ctx, userID, debit, func(ctx context.Context, tx pgx.Tx, _ *domain.Transfer) error {
		return s.withdrawalRepo.SaveWithdrawalInTx(ctx, tx, withdrawal)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Withdrawal paid",
		slog.String("withdrawal_id", withdrawal.WithdrawalID),
		slog.String("amount", req.Amount.String()),
		slog.String("reference", withdrawal.PaymentReferenceID))

	if s.notifier != nil {
		user, lookupErr := s.userRepo.FindUserByID(ctx, userID)
		if lookupErr == nil {
			go func(email, amount, ref string) {
				if notifyErr := s.notifier.SendWithdrawalConfirmation(context.WithoutCancel(ctx), email, amount, ref); notifyErr != nil {
					logger.Warn("Withdrawal notification failed", slog.String("error", notifyErr.Error()))
				}
			}(user.Email, req.Amount.String(), withdrawal.PaymentReferenceID)
		}
	}

	return &withdrawal, nil
}

// RejectWithdrawal reverses a paid withdrawal. The status change and the
// WITHDRAWAL_REFUND credit commit in one transaction, so the ledger and the
// payout record can never disagree.
func (s *withdrawalService) RejectWithdrawal(ctx context.Context, withdrawalID string, req dto.RejectWithdrawalRequest, adminUserID string) (*domain.Withdrawal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	withdrawal, err := s.withdrawalRepo.FindWithdrawalByID(ctx, withdrawalID)
	if err != nil {
		return nil, fmt.Errorf("failed to find withdrawal %s: %w", withdrawalID, err)
	}
	if withdrawal.Status == domain.WithdrawalRejected {
		return nil, fmt.Errorf("%w: withdrawal %s is already rejected", apperrors.ErrDuplicate, withdrawalID)
	}

	tx, err := s.transferRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", apperrors.ErrInternal)
	}
	defer func() {
		_ = s.transferRepo.Rollback(ctx, tx)
	}()

	now := time.Now().UTC()
	if err := s.withdrawalRepo.UpdateWithdrawalStatusInTx(ctx, tx, withdrawalID, domain.WithdrawalRejected, req.AdminNotes, adminUserID); err != nil {
		return nil, fmt.Errorf("failed to update withdrawal status: %w", err)
	}

	refund := domain.Transfer{
		TransferID: uuid.NewString(),
		ToUserID:   withdrawal.UserID,
		Amount:     withdrawal.Amount,
		Kind:       domain.KindWithdrawalRefund,
		OccurredAt: now,
		Notes:      "refund for rejected withdrawal " + withdrawalID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     adminUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: adminUserID,
		},
	}
	if err := s.transferRepo.AppendTransferInTx(ctx, tx, refund); err != nil {
		return nil, fmt.Errorf("failed to append refund credit: %w", err)
	}

	if err := s.transferRepo.Commit(ctx, tx); err != nil {
		logger.Error("Failed to commit withdrawal rejection", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to commit rejection: %w", apperrors.ErrInternal)
	}

	logger.Info("Withdrawal rejected and refunded",
		slog.String("withdrawal_id", withdrawalID),
		slog.String("refund_transfer_id", refund.TransferID),
		slog.String("amount", withdrawal.Amount.String()))

	withdrawal.Status = domain.WithdrawalRejected
	withdrawal.AdminNotes = req.AdminNotes
	withdrawal.LastUpdatedAt = now
	withdrawal.LastUpdatedBy = adminUserID
	return withdrawal, nil
}

// GetWithdrawalByID retrieves a single withdrawal with an ownership check.
func (s *withdrawalService) GetWithdrawalByID(ctx context.Context, withdrawalID string, requestingUserID string, isAdmin bool) (*domain.Withdrawal, error) {
	withdrawal, err := s.withdrawalRepo.FindWithdrawalByID(ctx, withdrawalID)
	if err != nil {
		return nil, fmt.Errorf("failed to find withdrawal %s: %w", withdrawalID, err)
	}
	if !isAdmin && withdrawal.UserID != requestingUserID {
		// Obscure existence
		return nil, apperrors.ErrNotFound
	}
	return withdrawal, nil
}

// ListWithdrawalsByUser retrieves a user's withdrawal history.
func (s *withdrawalService) ListWithdrawalsByUser(ctx context.Context, userID string, params dto.ListWithdrawalsParams) (*dto.ListWithdrawalsResponse, error) {
	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	withdrawals, nextToken, err := s.withdrawalRepo.ListWithdrawalsByUser(ctx, userID, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve withdrawals: %w", err)
	}

	resp := dto.ToListWithdrawalsResponse(withdrawals, nextToken)
	return &resp, nil
}

// ListWithdrawalsByStatus retrieves withdrawals for admin review.
func (s *withdrawalService) ListWithdrawalsByStatus(ctx context.Context, status domain.WithdrawalStatus, limit, offset int) ([]domain.Withdrawal, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	withdrawals, err := s.withdrawalRepo.ListWithdrawalsByStatus(ctx, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve withdrawals by status: %w", err)
	}
	return withdrawals, nil
}
