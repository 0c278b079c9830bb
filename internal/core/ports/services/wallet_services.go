package services

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/sunyield/sunyield_backend/internal/core/domain"
	"github.com/sunyield/sunyield_backend/internal/dto"
)

// WalletReaderSvc defines read operations over a user's wallet.
type WalletReaderSvc interface {
	// GetBalance derives the user's current balance from their ledger and
	// reward aggregates.
	GetBalance(ctx context.Context, userID string) (decimal.Decimal, error)

	// GetWalletSummary returns the balance together with its component
	// aggregates (rewards earned, funds added, invested, withdrawn).
	GetWalletSummary(ctx context.Context, userID string) (*dto.WalletSummaryResponse, error)

	// ListTransfers retrieves the user's ledger history, newest first.
	ListTransfers(ctx context.Context, userID string, params dto.ListTransfersParams) (*dto.ListTransfersResponse, error)
}

// WalletCreditSvc defines credit paths into a wallet. Credits are
// unconditional appends and never pass through the debit authorizer.
type WalletCreditSvc interface {
	// Credit appends a credit record of the given kind to the user's ledger.
	Credit(ctx context.Context, userID string, req dto.CreditRequest, actorUserID string) (*domain.Transfer, error)
}

// WalletAuthorizerSvc is the single gate for money leaving a wallet.
// Every debit of any kind goes through AuthorizeAndDebit.
type WalletAuthorizerSvc interface {
	// AuthorizeAndDebit runs the authorization pipeline (KYC, minimum
	// amount, monthly cap for withdrawals, balance sufficiency) and appends
	// the debit record, all within one transaction holding the user's row
	// lock. A req.FundingCredit is appended in the same transaction before
	// the balance read. The optional inTx hook runs inside the same
	// transaction after the append, so dependent records commit atomically
	// with the debit.
	AuthorizeAndDebit(ctx context.Context, userID string, req dto.DebitRequest, inTx func(ctx context.Context, tx pgx.Tx, transfer *domain.Transfer) error) (*domain.Transfer, error)
}

// WalletSvcFacade combines all wallet-related service interfaces
type WalletSvcFacade interface {
	WalletReaderSvc
	WalletCreditSvc
	WalletAuthorizerSvc
}
