package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sunyield/sunyield_backend/internal/apperrors"
	"github.com/sunyield/sunyield_backend/internal/core/domain"
	portsrepo "github.com/sunyield/sunyield_backend/internal/core/ports/repositories"
	"github.com/sunyield/sunyield_backend/internal/models"
	"github.com/sunyield/sunyield_backend/internal/utils/mapping"
)

type PgxCouponRepository struct {
	db *pgxpool.Pool
}

func newPgxCouponRepository(db *pgxpool.Pool) portsrepo.CouponRepositoryFacade {
	return &PgxCouponRepository{db: db}
}

// Ensure PgxCouponRepository implements portsrepo.CouponRepositoryFacade
var _ portsrepo.CouponRepositoryFacade = (*PgxCouponRepository)(nil)

const couponColumns = `coupon_id, code, discount_percent, expires_at, max_redemptions, redemptions, is_active,
		created_at, created_by, last_updated_at, last_updated_by`

func scanCoupon(row pgx.Row) (*models.Coupon, error) {
	var m models.Coupon
	err := row.Scan(
		&m.CouponID,
		&m.Code,
		&m.DiscountPercent,
		&m.ExpiresAt,
		&m.MaxRedemptions,
		&m.Redemptions,
		&m.IsActive,
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

func (r *PgxCouponRepository) FindCouponByID(ctx context.Context, couponID string) (*domain.Coupon, error) {
	query := `SELECT ` + couponColumns + ` FROM coupons WHERE coupon_id = $1;`
	m, err := scanCoupon(r.db.QueryRow(ctx, query, couponID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("coupon not found")
		}
		return nil, fmt.Errorf("failed to find coupon %s: %w", couponID, err)
	}
	d := mapping.ToDomainCoupon(*m)
	return &d, nil
}

func (r *PgxCouponRepository) FindCouponByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	query := `SELECT ` + couponColumns + ` FROM coupons WHERE code = $1;`
	m, err := scanCoupon(r.db.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("coupon not found")
		}
		return nil, fmt.Errorf("failed to find coupon by code: %w", err)
	}
	d := mapping.ToDomainCoupon(*m)
	return &d, nil
}

func (r *PgxCouponRepository) ListCoupons(ctx context.Context, limit int, offset int) ([]domain.Coupon, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
        SELECT ` + couponColumns + `
        FROM coupons
        ORDER BY created_at DESC
        LIMIT $1 OFFSET $2;
    `
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query coupons: %w", err)
	}
	defer rows.Close()

	modelCoupons := []models.Coupon{}
	for rows.Next() {
		m, err := scanCoupon(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan coupon row: %w", err)
		}
		modelCoupons = append(modelCoupons, *m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating coupon rows: %w", rows.Err())
	}

	return mapping.ToDomainCouponSlice(modelCoupons), nil
}

func (r *PgxCouponRepository) SaveCoupon(ctx context.Context, coupon domain.Coupon) error {
	m := mapping.ToModelCoupon(coupon)
	query := `
        INSERT INTO coupons (` + couponColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
    `
	_, err := r.db.Exec(ctx, query,
		m.CouponID,
		m.Code,
		m.DiscountPercent,
		m.ExpiresAt,
		m.MaxRedemptions,
		m.Redemptions,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save coupon: %w", err)
	}
	return nil
}

func (r *PgxCouponRepository) UpdateCoupon(ctx context.Context, coupon domain.Coupon) error {
	m := mapping.ToModelCoupon(coupon)
	query := `
        UPDATE coupons
        SET code = $1, discount_percent = $2, expires_at = $3, max_redemptions = $4,
            is_active = $5, last_updated_at = $6, last_updated_by = $7
        WHERE coupon_id = $8;
    `
	cmdTag, err := r.db.Exec(ctx, query,
		m.Code,
		m.DiscountPercent,
		m.ExpiresAt,
		m.MaxRedemptions,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.CouponID,
	)
	if err != nil {
		return fmt.Errorf("failed to update coupon: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("coupon not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

// IncrementRedemptions guards the redemption limit in SQL so concurrent
// settlements cannot push the counter past max_redemptions.
func (r *PgxCouponRepository) IncrementRedemptions(ctx context.Context, couponID string) error {
	query := `
        UPDATE coupons
        SET redemptions = redemptions + 1, last_updated_at = now()
        WHERE coupon_id = $1
          AND (max_redemptions = 0 OR redemptions < max_redemptions);
    `
	cmdTag, err := r.db.Exec(ctx, query, couponID)
	if err != nil {
		return fmt.Errorf("failed to increment coupon redemptions: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("coupon exhausted or not found: %w", apperrors.ErrConcurrentModification)
	}
	return nil
}
