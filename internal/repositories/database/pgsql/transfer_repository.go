package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/sunyield/sunyield_backend/internal/apperrors"
	"github.com/sunyield/sunyield_backend/internal/core/domain"
	portsrepo "github.com/sunyield/sunyield_backend/internal/core/ports/repositories"
	"github.com/sunyield/sunyield_backend/internal/models"
	"github.com/sunyield/sunyield_backend/internal/utils/mapping"
	"github.com/sunyield/sunyield_backend/internal/utils/pagination"
)

// querier abstracts over the pool and an open transaction so the same query
// helpers back both the plain and InTx variants.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type PgxTransferRepository struct {
	BaseRepository
}

func newPgxTransferRepository(db *pgxpool.Pool) portsrepo.TransferRepositoryWithTx {
	return &PgxTransferRepository{BaseRepository: BaseRepository{Pool: db}}
}

// Ensure PgxTransferRepository implements portsrepo.TransferRepositoryWithTx
var _ portsrepo.TransferRepositoryWithTx = (*PgxTransferRepository)(nil)

const transferColumns = `transfer_id, from_user_id, to_user_id, project_id, amount, kind, occurred_at, notes,
		created_at, created_by, last_updated_at, last_updated_by`

func kindStrings(kinds []domain.TransferKind) []string {
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = string(k)
	}
	return out
}

func scanTransfer(row pgx.Row) (*models.Transfer, error) {
	var m models.Transfer
	err := row.Scan(
		&m.TransferID,
		&m.FromUserID,
		&m.ToUserID,
		&m.ProjectID,
		&m.Amount,
		&m.Kind,
		&m.OccurredAt,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func appendTransfer(ctx context.Context, q querier, transfer domain.Transfer) error {
	m := mapping.ToModelTransfer(transfer)
	query := `
        INSERT INTO transfers (` + transferColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
    `
	_, err := q.Exec(ctx, query,
		m.TransferID,
		m.FromUserID,
		m.ToUserID,
		m.ProjectID,
		m.Amount,
		m.Kind,
		m.OccurredAt,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to append transfer %s: %w", m.TransferID, err)
	}
	return nil
}

func (r *PgxTransferRepository) AppendTransfer(ctx context.Context, transfer domain.Transfer) error {
	return appendTransfer(ctx, r.Pool, transfer)
}

func (r *PgxTransferRepository) AppendTransferInTx(ctx context.Context, tx pgx.Tx, transfer domain.Transfer) error {
	return appendTransfer(ctx, tx, transfer)
}

func (r *PgxTransferRepository) FindTransferByID(ctx context.Context, transferID string) (*domain.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM transfers WHERE transfer_id = $1;`
	m, err := scanTransfer(r.Pool.QueryRow(ctx, query, transferID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("transfer not found")
		}
		return nil, fmt.Errorf("failed to find transfer %s: %w", transferID, err)
	}
	d := mapping.ToDomainTransfer(*m)
	return &d, nil
}

func (r *PgxTransferRepository) ListTransfersByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Transfer, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	args := []any{userID, limit + 1}
	query := `
        SELECT ` + transferColumns + `
        FROM transfers
        WHERE (to_user_id = $1 OR from_user_id = $1)
    `
	if nextToken != nil && *nextToken != "" {
		occurredAt, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += ` AND (occurred_at, created_at) < ($3, $4)`
		args = append(args, occurredAt, createdAt)
	}
	query += `
        ORDER BY occurred_at DESC, created_at DESC
        LIMIT $2;
    `

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query transfers for user %s: %w", userID, err)
	}
	defer rows.Close()

	modelTransfers := []models.Transfer{}
	for rows.Next() {
		m, err := scanTransfer(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan transfer row: %w", err)
		}
		modelTransfers = append(modelTransfers, *m)
	}
	if rows.Err() != nil {
		return nil, nil, fmt.Errorf("error iterating transfer rows: %w", rows.Err())
	}

	var newNextToken *string
	if len(modelTransfers) > limit {
		modelTransfers = modelTransfers[:limit]
		last := modelTransfers[limit-1]
		token := pagination.EncodeToken(last.OccurredAt, last.CreatedAt)
		newNextToken = &token
	}

	return mapping.ToDomainTransferSlice(modelTransfers), newNextToken, nil
}

func netTransferAmount(ctx context.Context, q querier, userID string) (decimal.Decimal, error) {
	// Credits count toward the recipient, debits against the sender. A GIFT
	// row carries both sides, so the CASE arms net out within one row.
	query := `
        SELECT COALESCE(SUM(
            CASE WHEN to_user_id = $1 AND kind = ANY($2) THEN amount ELSE 0 END
            - CASE WHEN from_user_id = $1 AND kind = ANY($3) THEN amount ELSE 0 END
        ), 0)
        FROM transfers
        WHERE to_user_id = $1 OR from_user_id = $1;
    `
	var net decimal.Decimal
	err := q.QueryRow(ctx, query, userID, kindStrings(domain.CreditKinds), kindStrings(domain.DebitKinds)).Scan(&net)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum transfers for user %s: %w", userID, err)
	}
	return net, nil
}

func (r *PgxTransferRepository) NetTransferAmount(ctx context.Context, userID string) (decimal.Decimal, error) {
	return netTransferAmount(ctx, r.Pool, userID)
}

func (r *PgxTransferRepository) NetTransferAmountInTx(ctx context.Context, tx pgx.Tx, userID string) (decimal.Decimal, error) {
	return netTransferAmount(ctx, tx, userID)
}

func (r *PgxTransferRepository) SumOutgoingByKind(ctx context.Context, userID string, kind domain.TransferKind) (decimal.Decimal, error) {
	query := `
        SELECT COALESCE(SUM(amount), 0)
        FROM transfers
        WHERE from_user_id = $1 AND kind = $2;
    `
	var total decimal.Decimal
	err := r.Pool.QueryRow(ctx, query, userID, string(kind)).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum outgoing %s transfers: %w", kind, err)
	}
	return total, nil
}

func (r *PgxTransferRepository) SumIncomingByKind(ctx context.Context, userID string, kind domain.TransferKind) (decimal.Decimal, error) {
	query := `
        SELECT COALESCE(SUM(amount), 0)
        FROM transfers
        WHERE to_user_id = $1 AND kind = $2;
    `
	var total decimal.Decimal
	err := r.Pool.QueryRow(ctx, query, userID, string(kind)).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum incoming %s transfers: %w", kind, err)
	}
	return total, nil
}
