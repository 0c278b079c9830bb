package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sunyield/sunyield_backend/internal/apperrors"
	"github.com/sunyield/sunyield_backend/internal/core/domain"
	portsrepo "github.com/sunyield/sunyield_backend/internal/core/ports/repositories"
	portssvc "github.com/sunyield/sunyield_backend/internal/core/ports/services"
	"github.com/sunyield/sunyield_backend/internal/dto"
	"github.com/sunyield/sunyield_backend/internal/middleware"
)

// engagementService covers the wallet-funded actions: reinvest, donate and
// gift. All of them are debits through the wallet authorizer.
type engagementService struct {
	userRepo     portsrepo.UserRepositoryFacade
	transferRepo portsrepo.TransferRepositoryWithTx
	projectRepo  portsrepo.ProjectRepositoryFacade
	walletSvc    portssvc.WalletSvcFacade
}

// NewEngagementService creates a new EngagementService.
func NewEngagementService(
	userRepo portsrepo.UserRepositoryFacade,
	transferRepo portsrepo.TransferRepositoryWithTx,
	projectRepo portsrepo.ProjectRepositoryFacade,
	walletSvc portssvc.WalletSvcFacade,
) portssvc.EngagementSvcFacade {
	return &engagementService{
		userRepo:     userRepo,
		transferRepo: transferRepo,
		projectRepo:  projectRepo,
		walletSvc:    walletSvc,
	}
}

// Ensure engagementService implements the portssvc.EngagementSvcFacade interface
var _ portssvc.EngagementSvcFacade = (*engagementService)(nil)

// Reinvest debits the user's wallet toward a project.
func (s *engagementService) Reinvest(ctx context.Context, userID string, req dto.ReinvestRequest) (*domain.Transfer, error) {
	project, err := s.projectRepo.FindProjectByID(ctx, req.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to find project %s: %w", req.ProjectID, err)
	}
	if project.Status != domain.ProjectActive {
		return nil, fmt.Errorf("%w: project %s is not open for reinvestment", apperrors.ErrValidation, req.ProjectID)
	}

	debit := dto.DebitRequest{
		Amount:    req.Amount,
		Kind:      domain.KindReinvest,
		ProjectID: req.ProjectID,
		Notes:     req.Notes,
	}
	return s.walletSvc.AuthorizeAndDebit(ctx, userID, debit, nil)
}

// Donate debits the user's wallet as a donation, optionally toward a project.
func (s *engagementService) Donate(ctx context.Context, userID string, req dto.DonateRequest) (*domain.Transfer, error) {
	if req.ProjectID != "" {
		if _, err := s.projectRepo.FindProjectByID(ctx, req.ProjectID); err != nil {
			return nil, fmt.Errorf("failed to find project %s: %w", req.ProjectID, err)
		}
	}

	debit := dto.DebitRequest{
		Amount:    req.Amount,
		Kind:      domain.KindDonate,
		ProjectID: req.ProjectID,
		Notes:     req.Notes,
	}
	return s.walletSvc.AuthorizeAndDebit(ctx, userID, debit, nil)
}

// Gift moves funds to another user's wallet. The record carries both user
// IDs: the authorizer counts it as the sender's debit, the balance formula
// counts the same row as the recipient's credit, so one append moves the
// money atomically.
func (s *engagementService) Gift(ctx context.Context, senderUserID string, req dto.GiftRequest) (*domain.Transfer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	recipient, err := s.userRepo.FindUserByEmail(ctx, req.RecipientEmail)
	if err != nil {
		return nil, fmt.Errorf("recipient not found: %w", err)
	}
	if recipient.UserID == senderUserID {
		return nil, fmt.Errorf("%w: cannot gift to yourself", apperrors.ErrValidation)
	}

	debit := dto.DebitRequest{
		Amount:   req.Amount,
		Kind:     domain.KindGift,
		ToUserID: recipient.UserID,
		Notes:    req.Notes,
	}
	transfer, err := s.walletSvc.AuthorizeAndDebit(ctx, senderUserID, debit, nil)
	if err != nil {
		return nil, err
	}

	logger.Info("Gift sent",
		slog.String("transfer_id", transfer.TransferID),
		slog.String("recipient_id", recipient.UserID),
		slog.String("amount", req.Amount.String()))
	return transfer, nil
}

// GetEngagementStats returns the user's totals by kind plus balance.
func (s *engagementService) GetEngagementStats(ctx context.Context, userID string) (*dto.EngagementStatsResponse, error) {
	balance, err := s.walletSvc.GetBalance(ctx, userID)
	if err != nil {
		return nil, err
	}

	reinvested, err := s.transferRepo.SumOutgoingByKind(ctx, userID, domain.KindReinvest)
	if err != nil {
		return nil, fmt.Errorf("failed to sum reinvestments: %w", err)
	}
	donated, err := s.transferRepo.SumOutgoingByKind(ctx, userID, domain.KindDonate)
	if err != nil {
		return nil, fmt.Errorf("failed to sum donations: %w", err)
	}
	gifted, err := s.transferRepo.SumOutgoingByKind(ctx, userID, domain.KindGift)
	if err != nil {
		return nil, fmt.Errorf("failed to sum gifts sent: %w", err)
	}
	received, err := s.transferRepo.SumIncomingByKind(ctx, userID, domain.KindGift)
	if err != nil {
		return nil, fmt.Errorf("failed to sum gifts received: %w", err)
	}

	return &dto.EngagementStatsResponse{
		UserID:          userID,
		Balance:         balance,
		TotalReinvested: reinvested,
		TotalDonated:    donated,
		TotalGifted:     gifted,
		GiftsReceived:   received,
	}, nil
}
