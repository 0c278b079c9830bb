package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/sunyield/sunyield_backend/internal/apperrors"
	"github.com/sunyield/sunyield_backend/internal/core/domain"
	portsrepo "github.com/sunyield/sunyield_backend/internal/core/ports/repositories"
	portssvc "github.com/sunyield/sunyield_backend/internal/core/ports/services"
	"github.com/sunyield/sunyield_backend/internal/dto"
	"github.com/sunyield/sunyield_backend/internal/middleware"
)

// Fallback policy values, used when system config has no entry.
var (
	defaultMonthlyWithdrawalCap = decimal.NewFromInt(3000)
	defaultMinWithdrawal        = decimal.NewFromInt(100)
)

// walletService derives balances from the ledger and guards every debit.
type walletService struct {
	transferRepo   portsrepo.TransferRepositoryWithTx
	userRepo       portsrepo.UserRepositoryFacade
	rewardRepo     portsrepo.RewardRepositoryFacade
	withdrawalRepo portsrepo.WithdrawalRepositoryFacade
	configSvc      portssvc.ConfigSvcFacade
}

// NewWalletService creates a new WalletService.
func NewWalletService(
	transferRepo portsrepo.TransferRepositoryWithTx,
	userRepo portsrepo.UserRepositoryFacade,
	rewardRepo portsrepo.RewardRepositoryFacade,
	withdrawalRepo portsrepo.WithdrawalRepositoryFacade,
	configSvc portssvc.ConfigSvcFacade,
) portssvc.WalletSvcFacade {
	return &walletService{
		transferRepo:   transferRepo,
		userRepo:       userRepo,
		rewardRepo:     rewardRepo,
		withdrawalRepo: withdrawalRepo,
		configSvc:      configSvc,
	}
}

// Ensure walletService implements the portssvc.WalletSvcFacade interface
var _ portssvc.WalletSvcFacade = (*walletService)(nil)

// GetBalance derives the balance from the user's own aggregates:
// SUCCESS rewards plus net transfers. No balance column exists anywhere.
func (s *walletService) GetBalance(ctx context.Context, userID string) (decimal.Decimal, error) {
	if _, err := s.userRepo.FindUserByID(ctx, userID); err != nil {
		return decimal.Zero, fmt.Errorf("failed to find user %s: %w", userID, err)
	}

	rewards, err := s.rewardRepo.SumSuccessRewards(ctx, userID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum rewards for user %s: %w", userID, err)
	}

	net, err := s.transferRepo.NetTransferAmount(ctx, userID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum transfers for user %s: %w", userID, err)
	}

	return rewards.Add(net), nil
}

// balanceInTx is GetBalance evaluated inside an open transaction, after the
// user row lock is held. The authorizer must use this variant so the read
// and the append see the same ledger state.
func (s *walletService) balanceInTx(ctx context.Context, tx pgx.Tx, userID string) (decimal.Decimal, error) {
	rewards, err := s.rewardRepo.SumSuccessRewardsInTx(ctx, tx, userID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum rewards for user %s: %w", userID, err)
	}

	net, err := s.transferRepo.NetTransferAmountInTx(ctx, tx, userID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum transfers for user %s: %w", userID, err)
	}

	return rewards.Add(net), nil
}

// GetWalletSummary returns the balance with its component aggregates.
func (s *walletService) GetWalletSummary(ctx context.Context, userID string) (*dto.WalletSummaryResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	balance, err := s.GetBalance(ctx, userID)
	if err != nil {
		return nil, err
	}

	rewards, err := s.rewardRepo.SumSuccessRewards(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum rewards for user %s: %w", userID, err)
	}

	totalCredits := decimal.Zero
	for _, kind := range domain.CreditKinds {
		sum, err := s.transferRepo.SumIncomingByKind(ctx, userID, kind)
		if err != nil {
			logger.Error("Failed to sum incoming transfers", slog.String("kind", string(kind)), slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to sum incoming %s transfers: %w", kind, err)
		}
		totalCredits = totalCredits.Add(sum)
	}

	totalDebits := decimal.Zero
	for _, kind := range domain.DebitKinds {
		sum, err := s.transferRepo.SumOutgoingByKind(ctx, userID, kind)
		if err != nil {
			logger.Error("Failed to sum outgoing transfers", slog.String("kind", string(kind)), slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to sum outgoing %s transfers: %w", kind, err)
		}
		totalDebits = totalDebits.Add(sum)
	}

	withdrawn, err := s.transferRepo.SumOutgoingByKind(ctx, userID, domain.KindWithdrawal)
	if err != nil {
		return nil, fmt.Errorf("failed to sum withdrawals: %w", err)
	}

	return &dto.WalletSummaryResponse{
		UserID:         userID,
		Balance:        balance,
		RewardsEarned:  rewards,
		TotalCredits:   totalCredits,
		TotalDebits:    totalDebits,
		TotalWithdrawn: withdrawn,
	}, nil
}

// ListTransfers retrieves the user's ledger history with token pagination.
func (s *walletService) ListTransfers(ctx context.Context, userID string, params dto.ListTransfersParams) (*dto.ListTransfersResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	transfers, nextToken, err := s.transferRepo.ListTransfersByUser(ctx, userID, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list transfers", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve transfers: %w", err)
	}

	resp := dto.ToListTransfersResponse(transfers, nextToken)
	return &resp, nil
}

// Credit appends a credit record. Credits cannot overdraw anything, so no
// locking is needed; the append is a single insert.
func (s *walletService) Credit(ctx context.Context, userID string, req dto.CreditRequest, actorUserID string) (*domain.Transfer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: credit amount must be positive", apperrors.ErrValidation)
	}
	if !req.Kind.IsCredit() {
		return nil, fmt.Errorf("%w: kind %s is not a credit", apperrors.ErrValidation, req.Kind)
	}

	if _, err := s.userRepo.FindUserByID(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to find user %s: %w", userID, err)
	}

	now := time.Now().UTC()
	transfer := domain.Transfer{
		TransferID: uuid.NewString(),
		ToUserID:   userID,
		ProjectID:  req.ProjectID,
		Amount:     req.Amount,
		Kind:       req.Kind,
		OccurredAt: now,
		Notes:      req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorUserID,
		},
	}

	if err := s.transferRepo.AppendTransfer(ctx, transfer); err != nil {
		logger.Error("Failed to append credit", slog.String("error", err.Error()), slog.String("kind", string(req.Kind)))
		return nil, fmt.Errorf("failed to append credit: %w", err)
	}

	logger.Info("Credit appended", slog.String("transfer_id", transfer.TransferID), slog.String("kind", string(req.Kind)), slog.String("amount", req.Amount.String()))
	return &transfer, nil
}

// AuthorizeAndDebit is the single gate for money leaving a wallet. The whole
// pipeline runs inside one transaction with the user's row locked FOR
// UPDATE, so concurrent debits against the same wallet serialize: the first
// commits, the second re-reads the reduced balance and fails fast with
// ErrInsufficientBalance. No retries.
func (s *walletService) AuthorizeAndDebit(ctx context.Context, userID string, req dto.DebitRequest, inTx func(ctx context.Context, tx pgx.Tx, transfer *domain.Transfer) error) (*domain.Transfer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: debit amount must be positive", apperrors.ErrValidation)
	}
	if !req.Kind.IsDebit() {
		return nil, fmt.Errorf("%w: kind %s is not a debit", apperrors.ErrValidation, req.Kind)
	}
	if fc := req.FundingCredit; fc != nil {
		if fc.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: funding credit amount must be positive", apperrors.ErrValidation)
		}
		if !fc.Kind.IsCredit() {
			return nil, fmt.Errorf("%w: kind %s is not a credit", apperrors.ErrValidation, fc.Kind)
		}
	}

	tx, err := s.transferRepo.Begin(ctx)
	if err != nil {
		logger.Error("Failed to begin transaction", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to begin transaction: %w", apperrors.ErrInternal)
	}
	defer func() {
		// No-op when the transaction already committed.
		_ = s.transferRepo.Rollback(ctx, tx)
	}()

	// Per-user serialization point.
	user, err := s.userRepo.LockUserForUpdate(ctx, tx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock user %s: %w", userID, err)
	}

	if req.Kind == domain.KindWithdrawal {
		if user.KYCStatus != domain.KYCApproved {
			logger.Warn("Withdrawal blocked, KYC not approved", slog.String("kyc_status", string(user.KYCStatus)))
			return nil, fmt.Errorf("withdrawal requires approved KYC: %w", apperrors.ErrKycRequired)
		}

		minWithdrawal := s.configSvc.GetDecimal(ctx, domain.ConfigMinWithdrawalAmount, defaultMinWithdrawal)
		if req.Amount.LessThan(minWithdrawal) {
			return nil, fmt.Errorf("%w: minimum withdrawal is %s", apperrors.ErrBelowMinimum, minWithdrawal.String())
		}

		monthlyCap := s.configSvc.GetDecimal(ctx, domain.ConfigMonthlyWithdrawalCap, defaultMonthlyWithdrawalCap)
		start, end := currentMonthWindow(time.Now().UTC())
		paidThisMonth, err := s.withdrawalRepo.SumPaidWithdrawalsInRangeInTx(ctx, tx, userID, start, end)
		if err != nil {
			logger.Error("Failed to sum paid withdrawals", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to sum paid withdrawals: %w", err)
		}
		if paidThisMonth.Add(req.Amount).GreaterThan(monthlyCap) {
			logger.Warn("Withdrawal blocked by monthly cap",
				slog.String("paid_this_month", paidThisMonth.String()),
				slog.String("requested", req.Amount.String()),
				slog.String("cap", monthlyCap.String()))
			return nil, fmt.Errorf("%w: %s already paid this month, cap is %s", apperrors.ErrMonthlyCapExceeded, paidThisMonth.String(), monthlyCap.String())
		}
	}

	// A funding credit lands first so the balance read below sees it. It
	// commits or rolls back together with the debit.
	if fc := req.FundingCredit; fc != nil {
		creditAt := time.Now().UTC()
		credit := domain.Transfer{
			TransferID: uuid.NewString(),
			ToUserID:   userID,
			ProjectID:  fc.ProjectID,
			Amount:     fc.Amount,
			Kind:       fc.Kind,
			OccurredAt: creditAt,
			Notes:      fc.Notes,
			AuditFields: domain.AuditFields{
				CreatedAt:     creditAt,
				CreatedBy:     userID,
				LastUpdatedAt: creditAt,
				LastUpdatedBy: userID,
			},
		}
		if err := s.transferRepo.AppendTransferInTx(ctx, tx, credit); err != nil {
			logger.Error("Failed to append funding credit", slog.String("error", err.Error()), slog.String("kind", string(fc.Kind)))
			return nil, fmt.Errorf("failed to append funding credit: %w", err)
		}
	}

	available, err := s.balanceInTx(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	if available.LessThan(req.Amount) {
		return nil, fmt.Errorf("%w: available %s, requested %s", apperrors.ErrInsufficientBalance, available.String(), req.Amount.String())
	}

	now := time.Now().UTC()
	transfer := domain.Transfer{
		TransferID: uuid.NewString(),
		FromUserID: userID,
		ToUserID:   req.ToUserID,
		ProjectID:  req.ProjectID,
		Amount:     req.Amount,
		Kind:       req.Kind,
		OccurredAt: now,
		Notes:      req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.transferRepo.AppendTransferInTx(ctx, tx, transfer); err != nil {
		logger.Error("Failed to append debit", slog.String("error", err.Error()), slog.String("kind", string(req.Kind)))
		return nil, fmt.Errorf("failed to append debit: %w", err)
	}

	if inTx != nil {
		if err := inTx(ctx, tx, &transfer); err != nil {
			return nil, err
		}
	}

	if err := s.transferRepo.Commit(ctx, tx); err != nil {
		logger.Error("Failed to commit debit transaction", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to commit debit: %w", apperrors.ErrInternal)
	}

	logger.Info("Debit authorized",
		slog.String("transfer_id", transfer.TransferID),
		slog.String("kind", string(req.Kind)),
		slog.String("amount", req.Amount.String()))
	return &transfer, nil
}

// currentMonthWindow returns [start, end) of the UTC calendar month
// containing t.
func currentMonthWindow(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}
