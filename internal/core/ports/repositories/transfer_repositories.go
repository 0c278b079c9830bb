package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/sunyield/sunyield_backend/internal/core/domain"
)

// TransferReader defines read operations over the append-only ledger.
type TransferReader interface {
	// FindTransferByID retrieves a single ledger record.
	FindTransferByID(ctx context.Context, transferID string) (*domain.Transfer, error)

	// ListTransfersByUser retrieves a keyset-paginated history of a user's
	// ledger records (both directions), newest first.
	ListTransfersByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Transfer, *string, error)

	// NetTransferAmount returns credits-in minus debits-out for the user,
	// aggregated in SQL over only that user's rows.
	NetTransferAmount(ctx context.Context, userID string) (decimal.Decimal, error)

	// SumOutgoingByKind returns the user's total outflow for one kind.
	SumOutgoingByKind(ctx context.Context, userID string, kind domain.TransferKind) (decimal.Decimal, error)

	// SumIncomingByKind returns the user's total inflow for one kind.
	SumIncomingByKind(ctx context.Context, userID string, kind domain.TransferKind) (decimal.Decimal, error)
}

// TransferWriter defines append operations. The ledger has no update or
// delete paths.
type TransferWriter interface {
	// AppendTransfer appends a credit record outside any caller transaction.
	AppendTransfer(ctx context.Context, transfer domain.Transfer) error

	// AppendTransferInTx appends a record within the caller's transaction.
	// Debits must only be appended through the wallet authorizer, which owns
	// that transaction.
	AppendTransferInTx(ctx context.Context, tx pgx.Tx, transfer domain.Transfer) error

	// NetTransferAmountInTx is NetTransferAmount evaluated inside the
	// caller's transaction, after the user row lock is held.
	NetTransferAmountInTx(ctx context.Context, tx pgx.Tx, userID string) (decimal.Decimal, error)
}

// TransferRepositoryFacade combines ledger read and append interfaces.
type TransferRepositoryFacade interface {
	TransferReader
	TransferWriter
}

// TransferRepositoryWithTx extends the facade with transaction control.
type TransferRepositoryWithTx interface {
	TransferRepositoryFacade
	TransactionManager
}
