package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sunyield/sunyield_backend/internal/core/domain"
)

// CreateWithdrawalRequest defines the data needed to request a payout.
type CreateWithdrawalRequest struct {
	Amount            decimal.Decimal     `json:"amount" binding:"required"`
	PayoutMethod      domain.PayoutMethod `json:"payoutMethod" binding:"required,oneof=UPI BANK"`
	UPIID             string              `json:"upiId"`             // Required for UPI
	BankAccountNumber string              `json:"bankAccountNumber"` // Required for BANK
	IFSCCode          string              `json:"ifscCode"`          // Required for BANK
}

// RejectWithdrawalRequest defines the admin rejection payload.
type RejectWithdrawalRequest struct {
	AdminNotes string `json:"adminNotes" binding:"required"`
}

// WithdrawalResponse defines the data returned for a withdrawal.
type WithdrawalResponse struct {
	WithdrawalID       string                  `json:"withdrawalID"`
	UserID             string                  `json:"userID"`
	Amount             decimal.Decimal         `json:"amount"`
	Status             domain.WithdrawalStatus `json:"status"`
	PayoutMethod       domain.PayoutMethod     `json:"payoutMethod"`
	PaymentReferenceID string                  `json:"paymentReferenceID,omitempty"`
	AdminNotes         string                  `json:"adminNotes,omitempty"`
	RequestedAt        time.Time               `json:"requestedAt"`
}

// ToWithdrawalResponse converts a domain.Withdrawal to WithdrawalResponse DTO.
func ToWithdrawalResponse(w *domain.Withdrawal) WithdrawalResponse {
	return WithdrawalResponse{
		WithdrawalID:       w.WithdrawalID,
		UserID:             w.UserID,
		Amount:             w.Amount,
		Status:             w.Status,
		PayoutMethod:       w.PayoutMethod,
		PaymentReferenceID: w.PaymentReferenceID,
		AdminNotes:         w.AdminNotes,
		RequestedAt:        w.RequestedAt,
	}
}

// ListWithdrawalsParams defines query parameters for withdrawal history.
type ListWithdrawalsParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListWithdrawalsResponse wraps a page of withdrawals.
type ListWithdrawalsResponse struct {
	Withdrawals []WithdrawalResponse `json:"withdrawals"`
	NextToken   *string              `json:"nextToken,omitempty"`
}

// ToListWithdrawalsResponse converts a page of domain.Withdrawal to the DTO.
func ToListWithdrawalsResponse(withdrawals []domain.Withdrawal, nextToken *string) ListWithdrawalsResponse {
	responses := make([]WithdrawalResponse, len(withdrawals))
	for i, w := range withdrawals {
		responses[i] = ToWithdrawalResponse(&w)
	}
	return ListWithdrawalsResponse{Withdrawals: responses, NextToken: nextToken}
}
