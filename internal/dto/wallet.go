package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sunyield/sunyield_backend/internal/core/domain"
)

// CreditRequest defines a credit append into a user's wallet.
type CreditRequest struct {
	Amount    decimal.Decimal     `json:"amount" binding:"required"`
	Kind      domain.TransferKind `json:"kind" binding:"required,oneof=ADMIN_CREDIT ADD_FUNDS GIFT WITHDRAWAL_REFUND"`
	ProjectID string              `json:"projectID"` // Optional
	Notes     string              `json:"notes"`     // Optional
}

// DebitRequest defines a debit to run through the wallet authorizer.
type DebitRequest struct {
	Amount    decimal.Decimal     `json:"amount" binding:"required"`
	Kind      domain.TransferKind `json:"kind" binding:"required,oneof=INVESTMENT SUBSCRIPTION WITHDRAWAL REINVEST DONATE GIFT"`
	ProjectID string              `json:"projectID"` // Optional
	ToUserID  string              `json:"toUserID"`  // Set for GIFT
	Notes     string              `json:"notes"`     // Optional

	// FundingCredit, when set, is appended inside the same locked
	// transaction before the balance read, so the debit sees it.
	// Only services set this; it is never client-supplied.
	FundingCredit *CreditRequest `json:"-"`
}

// TransferResponse defines the data returned for a ledger record.
type TransferResponse struct {
	TransferID string              `json:"transferID"`
	FromUserID string              `json:"fromUserID,omitempty"`
	ToUserID   string              `json:"toUserID,omitempty"`
	ProjectID  string              `json:"projectID,omitempty"`
	Amount     decimal.Decimal     `json:"amount"`
	Kind       domain.TransferKind `json:"kind"`
	OccurredAt time.Time           `json:"occurredAt"`
	Notes      string              `json:"notes,omitempty"`
}

// ToTransferResponse converts a domain.Transfer to TransferResponse DTO.
func ToTransferResponse(t *domain.Transfer) TransferResponse {
	return TransferResponse{
		TransferID: t.TransferID,
		FromUserID: t.FromUserID,
		ToUserID:   t.ToUserID,
		ProjectID:  t.ProjectID,
		Amount:     t.Amount,
		Kind:       t.Kind,
		OccurredAt: t.OccurredAt,
		Notes:      t.Notes,
	}
}

// ListTransfersParams defines query parameters for ledger history.
type ListTransfersParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListTransfersResponse wraps a page of ledger records.
type ListTransfersResponse struct {
	Transfers []TransferResponse `json:"transfers"`
	NextToken *string            `json:"nextToken,omitempty"`
}

// ToListTransfersResponse converts a page of domain.Transfer to the DTO.
func ToListTransfersResponse(transfers []domain.Transfer, nextToken *string) ListTransfersResponse {
	responses := make([]TransferResponse, len(transfers))
	for i, t := range transfers {
		responses[i] = ToTransferResponse(&t)
	}
	return ListTransfersResponse{Transfers: responses, NextToken: nextToken}
}

// BalanceResponse defines the data returned for a wallet balance query.
type BalanceResponse struct {
	UserID  string          `json:"userID"`
	Balance decimal.Decimal `json:"balance"`
}

// WalletSummaryResponse breaks the balance into its component aggregates.
type WalletSummaryResponse struct {
	UserID         string          `json:"userID"`
	Balance        decimal.Decimal `json:"balance"`
	RewardsEarned  decimal.Decimal `json:"rewardsEarned"`
	TotalCredits   decimal.Decimal `json:"totalCredits"`
	TotalDebits    decimal.Decimal `json:"totalDebits"`
	TotalWithdrawn decimal.Decimal `json:"totalWithdrawn"`
}

// ReinvestRequest defines a wallet-funded reinvestment into a project.
type ReinvestRequest struct {
	ProjectID string          `json:"projectID" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Notes     string          `json:"notes"` // Optional
}

// DonateRequest defines a wallet-funded donation.
type DonateRequest struct {
	ProjectID string          `json:"projectID"` // Optional: donate toward a project
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Notes     string          `json:"notes"` // Optional
}

// GiftRequest defines a wallet-to-wallet gift.
type GiftRequest struct {
	RecipientEmail string          `json:"recipientEmail" binding:"required,email"`
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	Notes          string          `json:"notes"` // Optional
}

// EngagementStatsResponse summarizes a user's wallet activity by kind.
type EngagementStatsResponse struct {
	UserID          string          `json:"userID"`
	Balance         decimal.Decimal `json:"balance"`
	TotalReinvested decimal.Decimal `json:"totalReinvested"`
	TotalDonated    decimal.Decimal `json:"totalDonated"`
	TotalGifted     decimal.Decimal `json:"totalGifted"`
	GiftsReceived   decimal.Decimal `json:"giftsReceived"`
}
