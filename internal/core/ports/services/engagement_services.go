package services

import (
	"context"

	"github.com/sunyield/sunyield_backend/internal/core/domain"
	"github.com/sunyield/sunyield_backend/internal/dto"
)

// EngagementSvcFacade defines the wallet-funded engagement operations.
// Each one is a debit through the wallet authorizer.
type EngagementSvcFacade interface {
	// Reinvest debits the user's wallet toward a project (REINVEST).
	Reinvest(ctx context.Context, userID string, req dto.ReinvestRequest) (*domain.Transfer, error)

	// Donate debits the user's wallet as a donation (DONATE).
	Donate(ctx context.Context, userID string, req dto.DonateRequest) (*domain.Transfer, error)

	// Gift moves funds between wallets: a GIFT debit from the sender and a
	// GIFT credit to the recipient committed in one transaction.
	Gift(ctx context.Context, senderUserID string, req dto.GiftRequest) (*domain.Transfer, error)

	// GetEngagementStats returns the user's totals by kind plus available
	// balance.
	GetEngagementStats(ctx context.Context, userID string) (*dto.EngagementStatsResponse, error)
}
