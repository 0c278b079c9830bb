package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/sunyield/sunyield_backend/internal/apperrors"
	"github.com/sunyield/sunyield_backend/internal/core/domain"
	portsrepo "github.com/sunyield/sunyield_backend/internal/core/ports/repositories"
	"github.com/sunyield/sunyield_backend/internal/models"
	"github.com/sunyield/sunyield_backend/internal/utils/mapping"
	"github.com/sunyield/sunyield_backend/internal/utils/pagination"
)

type PgxWithdrawalRepository struct {
	db *pgxpool.Pool
}

func newPgxWithdrawalRepository(db *pgxpool.Pool) portsrepo.WithdrawalRepositoryFacade {
	return &PgxWithdrawalRepository{db: db}
}

// Ensure PgxWithdrawalRepository implements portsrepo.WithdrawalRepositoryFacade
var _ portsrepo.WithdrawalRepositoryFacade = (*PgxWithdrawalRepository)(nil)

const withdrawalColumns = `withdrawal_id, user_id, amount, status, payout_method, upi_id, bank_account_number,
		ifsc_code, payment_reference_id, admin_notes, requested_at,
		created_at, created_by, last_updated_at, last_updated_by`

func scanWithdrawal(row pgx.Row) (*models.Withdrawal, error) {
	var m models.Withdrawal
	err := row.Scan(
		&m.WithdrawalID,
		&m.UserID,
		&m.Amount,
		&m.Status,
		&m.PayoutMethod,
		&m.UPIID,
		&m.BankAccountNumber,
		&m.IFSCCode,
		&m.PaymentReferenceID,
		&m.AdminNotes,
		&m.RequestedAt,
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

func (r *PgxWithdrawalRepository) FindWithdrawalByID(ctx context.Context, withdrawalID string) (*domain.Withdrawal, error) {
	query := `SELECT ` + withdrawalColumns + ` FROM withdrawals WHERE withdrawal_id = $1;`
	m, err := scanWithdrawal(r.db.QueryRow(ctx, query, withdrawalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("withdrawal not found")
		}
		return nil, fmt.Errorf("failed to find withdrawal %s: %w", withdrawalID, err)
	}
	d := mapping.ToDomainWithdrawal(*m)
	return &d, nil
}

func (r *PgxWithdrawalRepository) ListWithdrawalsByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Withdrawal, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	args := []any{userID, limit + 1}
	query := `
        SELECT ` + withdrawalColumns + `
        FROM withdrawals
        WHERE user_id = $1
    `
	if nextToken != nil && *nextToken != "" {
		requestedAt, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += ` AND (requested_at, created_at) < ($3, $4)`
		args = append(args, requestedAt, createdAt)
	}
	query += `
        ORDER BY requested_at DESC, created_at DESC
        LIMIT $2;
    `

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query withdrawals for user %s: %w", userID, err)
	}
	defer rows.Close()

	modelWithdrawals := []models.Withdrawal{}
	for rows.Next() {
		m, err := scanWithdrawal(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan withdrawal row: %w", err)
		}
		modelWithdrawals = append(modelWithdrawals, *m)
	}
	if rows.Err() != nil {
		return nil, nil, fmt.Errorf("error iterating withdrawal rows: %w", rows.Err())
	}

	var newNextToken *string
	if len(modelWithdrawals) > limit {
		modelWithdrawals = modelWithdrawals[:limit]
		last := modelWithdrawals[limit-1]
		token := pagination.EncodeToken(last.RequestedAt, last.CreatedAt)
		newNextToken = &token
	}

	return mapping.ToDomainWithdrawalSlice(modelWithdrawals), newNextToken, nil
}

func (r *PgxWithdrawalRepository) ListWithdrawalsByStatus(ctx context.Context, status domain.WithdrawalStatus, limit int, offset int) ([]domain.Withdrawal, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
        SELECT ` + withdrawalColumns + `
        FROM withdrawals
        WHERE status = $1
        ORDER BY requested_at DESC
        LIMIT $2 OFFSET $3;
    `
	rows, err := r.db.Query(ctx, query, string(status), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query withdrawals by status: %w", err)
	}
	defer rows.Close()

	modelWithdrawals := []models.Withdrawal{}
	for rows.Next() {
		m, err := scanWithdrawal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan withdrawal row: %w", err)
		}
		modelWithdrawals = append(modelWithdrawals, *m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating withdrawal rows: %w", rows.Err())
	}

	return mapping.ToDomainWithdrawalSlice(modelWithdrawals), nil
}

func (r *PgxWithdrawalRepository) SaveWithdrawalInTx(ctx context.Context, tx pgx.Tx, withdrawal domain.Withdrawal) error {
	m := mapping.ToModelWithdrawal(withdrawal)
	query := `
        INSERT INTO withdrawals (` + withdrawalColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
    `
	_, err := tx.Exec(ctx, query,
		m.WithdrawalID,
		m.UserID,
		m.Amount,
		m.Status,
		m.PayoutMethod,
		m.UPIID,
		m.BankAccountNumber,
		m.IFSCCode,
		m.PaymentReferenceID,
		m.AdminNotes,
		m.RequestedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save withdrawal %s: %w", m.WithdrawalID, err)
	}
	return nil
}

// SumPaidWithdrawalsInRangeInTx feeds the monthly cap check. It runs inside
// the authorizer's transaction, after the user row lock is held.
func (r *PgxWithdrawalRepository) SumPaidWithdrawalsInRangeInTx(ctx context.Context, tx pgx.Tx, userID string, start, end time.Time) (decimal.Decimal, error) {
	query := `
        SELECT COALESCE(SUM(amount), 0)
        FROM withdrawals
        WHERE user_id = $1 AND status = $2 AND requested_at >= $3 AND requested_at < $4;
    `
	var total decimal.Decimal
	err := tx.QueryRow(ctx, query, userID, string(domain.WithdrawalPaid), start, end).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum paid withdrawals for user %s: %w", userID, err)
	}
	return total, nil
}

func (r *PgxWithdrawalRepository) UpdateWithdrawalStatusInTx(ctx context.Context, tx pgx.Tx, withdrawalID string, status domain.WithdrawalStatus, adminNotes string, updatedByUserID string) error {
	query := `
        UPDATE withdrawals
        SET status = $1, admin_notes = $2, last_updated_at = now(), last_updated_by = $3
        WHERE withdrawal_id = $4;
    `
	cmdTag, err := tx.Exec(ctx, query, string(status), adminNotes, updatedByUserID, withdrawalID)
	if err != nil {
		return fmt.Errorf("failed to update withdrawal %s: %w", withdrawalID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("withdrawal not found: %w", apperrors.ErrNotFound)
	}
	return nil
}
