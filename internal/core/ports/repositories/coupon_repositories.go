package repositories

import (
	"context"

	"github.com/sunyield/sunyield_backend/internal/core/domain"
)

// CouponReader defines read operations for coupon data
type CouponReader interface {
	// FindCouponByID retrieves a coupon by its internal ID.
	FindCouponByID(ctx context.Context, couponID string) (*domain.Coupon, error)

	// FindCouponByCode retrieves a coupon by its public code.
	FindCouponByCode(ctx context.Context, code string) (*domain.Coupon, error)

	// ListCoupons retrieves all coupons for admin management.
	ListCoupons(ctx context.Context, limit int, offset int) ([]domain.Coupon, error)
}

// CouponWriter defines write operations for coupon data
type CouponWriter interface {
	// SaveCoupon persists a new coupon.
	SaveCoupon(ctx context.Context, coupon domain.Coupon) error

	// UpdateCoupon updates coupon policy fields.
	UpdateCoupon(ctx context.Context, coupon domain.Coupon) error

	// IncrementRedemptions bumps the redemption counter after a successful
	// subscription payment.
	IncrementRedemptions(ctx context.Context, couponID string) error
}

// CouponRepositoryFacade combines coupon read and write interfaces.
type CouponRepositoryFacade interface {
	CouponReader
	CouponWriter
}
