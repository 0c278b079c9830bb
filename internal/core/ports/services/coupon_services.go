package services

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sunyield/sunyield_backend/internal/core/domain"
	"github.com/sunyield/sunyield_backend/internal/dto"
)

// CouponSvcFacade defines coupon management and redemption operations.
type CouponSvcFacade interface {
	// CreateCoupon persists a new coupon (admin).
	CreateCoupon(ctx context.Context, req dto.CreateCouponRequest, creatorUserID string) (*domain.Coupon, error)

	// UpdateCoupon updates coupon policy fields (admin).
	UpdateCoupon(ctx context.Context, couponID string, req dto.UpdateCouponRequest, requestingUserID string) (*domain.Coupon, error)

	// ListCoupons retrieves coupons for admin management.
	ListCoupons(ctx context.Context, limit, offset int) ([]domain.Coupon, error)

	// ValidateCoupon checks a code is currently usable and returns the
	// discounted amount.
	ValidateCoupon(ctx context.Context, code string, amount decimal.Decimal) (*domain.Coupon, decimal.Decimal, error)

	// RedeemCoupon bumps the redemption counter after a settled payment.
	RedeemCoupon(ctx context.Context, couponID string) error
}
