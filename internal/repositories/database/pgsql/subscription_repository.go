package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/sunyield/sunyield_backend/internal/apperrors"
	"github.com/sunyield/sunyield_backend/internal/core/domain"
	portsrepo "github.com/sunyield/sunyield_backend/internal/core/ports/repositories"
	"github.com/sunyield/sunyield_backend/internal/models"
	"github.com/sunyield/sunyield_backend/internal/utils/mapping"
)

type PgxSubscriptionRepository struct {
	db *pgxpool.Pool
}

func newPgxSubscriptionRepository(db *pgxpool.Pool) portsrepo.SubscriptionRepositoryFacade {
	return &PgxSubscriptionRepository{db: db}
}

// Ensure PgxSubscriptionRepository implements portsrepo.SubscriptionRepositoryFacade
var _ portsrepo.SubscriptionRepositoryFacade = (*PgxSubscriptionRepository)(nil)

const subscriptionColumns = `subscription_id, user_id, project_id, contribution_amount, reserved_capacity,
		payment_status, payment_order_id, coupon_code, subscribed_at,
		created_at, created_by, last_updated_at, last_updated_by`

func scanSubscription(row pgx.Row) (*models.Subscription, error) {
	var m models.Subscription
	err := row.Scan(
		&m.SubscriptionID,
		&m.UserID,
		&m.ProjectID,
		&m.ContributionAmount,
		&m.ReservedCapacity,
		&m.PaymentStatus,
		&m.PaymentOrderID,
		&m.CouponCode,
		&m.SubscribedAt,
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

func (r *PgxSubscriptionRepository) FindSubscriptionByID(ctx context.Context, subscriptionID string) (*domain.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE subscription_id = $1;`
	m, err := scanSubscription(r.db.QueryRow(ctx, query, subscriptionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("subscription not found")
		}
		return nil, fmt.Errorf("failed to find subscription %s: %w", subscriptionID, err)
	}
	d := mapping.ToDomainSubscription(*m)
	return &d, nil
}

func (r *PgxSubscriptionRepository) FindSubscriptionByOrderID(ctx context.Context, orderID string) (*domain.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE payment_order_id = $1;`
	m, err := scanSubscription(r.db.QueryRow(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("subscription not found")
		}
		return nil, fmt.Errorf("failed to find subscription for order %s: %w", orderID, err)
	}
	d := mapping.ToDomainSubscription(*m)
	return &d, nil
}

func (r *PgxSubscriptionRepository) ListSubscriptionsByUser(ctx context.Context, userID string) ([]domain.Subscription, error) {
	query := `
        SELECT ` + subscriptionColumns + `
        FROM subscriptions
        WHERE user_id = $1
        ORDER BY subscribed_at DESC;
    `
	return r.querySubscriptions(ctx, query, userID)
}

func (r *PgxSubscriptionRepository) ListPaidSubscriptionsByProject(ctx context.Context, projectID string) ([]domain.Subscription, error) {
	query := `
        SELECT ` + subscriptionColumns + `
        FROM subscriptions
        WHERE project_id = $1 AND payment_status = $2
        ORDER BY subscribed_at;
    `
	return r.querySubscriptions(ctx, query, projectID, string(domain.PaymentSuccess))
}

func (r *PgxSubscriptionRepository) querySubscriptions(ctx context.Context, query string, args ...any) ([]domain.Subscription, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query subscriptions: %w", err)
	}
	defer rows.Close()

	modelSubs := []models.Subscription{}
	for rows.Next() {
		m, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan subscription row: %w", err)
		}
		modelSubs = append(modelSubs, *m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating subscription rows: %w", rows.Err())
	}

	return mapping.ToDomainSubscriptionSlice(modelSubs), nil
}

func (r *PgxSubscriptionRepository) SumPaidContributions(ctx context.Context, projectID string) (decimal.Decimal, error) {
	query := `
        SELECT COALESCE(SUM(contribution_amount), 0)
        FROM subscriptions
        WHERE project_id = $1 AND payment_status = $2;
    `
	var total decimal.Decimal
	err := r.db.QueryRow(ctx, query, projectID, string(domain.PaymentSuccess)).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum contributions for project %s: %w", projectID, err)
	}
	return total, nil
}

func (r *PgxSubscriptionRepository) SumReservedCapacity(ctx context.Context, projectID string) (decimal.Decimal, error) {
	query := `
        SELECT COALESCE(SUM(reserved_capacity), 0)
        FROM subscriptions
        WHERE project_id = $1 AND payment_status = $2;
    `
	var total decimal.Decimal
	err := r.db.QueryRow(ctx, query, projectID, string(domain.PaymentSuccess)).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum reserved capacity for project %s: %w", projectID, err)
	}
	return total, nil
}

func (r *PgxSubscriptionRepository) SaveSubscription(ctx context.Context, subscription domain.Subscription) error {
	m := mapping.ToModelSubscription(subscription)
	query := `
        INSERT INTO subscriptions (` + subscriptionColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
    `
	_, err := r.db.Exec(ctx, query,
		m.SubscriptionID,
		m.UserID,
		m.ProjectID,
		m.ContributionAmount,
		m.ReservedCapacity,
		m.PaymentStatus,
		m.PaymentOrderID,
		m.CouponCode,
		m.SubscribedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save subscription: %w", err)
	}
	return nil
}

func (r *PgxSubscriptionRepository) UpdatePaymentStatus(ctx context.Context, subscriptionID string, status domain.PaymentState, updatedByUserID string) error {
	query := `
        UPDATE subscriptions
        SET payment_status = $1, last_updated_at = now(), last_updated_by = $2
        WHERE subscription_id = $3;
    `
	cmdTag, err := r.db.Exec(ctx, query, string(status), updatedByUserID, subscriptionID)
	if err != nil {
		return fmt.Errorf("failed to update payment status for subscription %s: %w", subscriptionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("subscription not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxSubscriptionRepository) UpdatePaymentStatusInTx(ctx context.Context, tx pgx.Tx, subscriptionID string, from, to domain.PaymentState, updatedByUserID string) error {
	query := `
        UPDATE subscriptions
        SET payment_status = $1, last_updated_at = now(), last_updated_by = $2
        WHERE subscription_id = $3 AND payment_status = $4;
    `
	cmdTag, err := tx.Exec(ctx, query, string(to), updatedByUserID, subscriptionID, string(from))
	if err != nil {
		return fmt.Errorf("failed to update payment status for subscription %s: %w", subscriptionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("subscription %s is no longer %s: %w", subscriptionID, from, apperrors.ErrConcurrentModification)
	}
	return nil
}
