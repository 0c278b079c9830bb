package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sunyield/sunyield_backend/internal/apperrors"
	"github.com/sunyield/sunyield_backend/internal/core/domain"
	portsrepo "github.com/sunyield/sunyield_backend/internal/core/ports/repositories"
	portssvc "github.com/sunyield/sunyield_backend/internal/core/ports/services"
	"github.com/sunyield/sunyield_backend/internal/dto"
	"github.com/sunyield/sunyield_backend/internal/middleware"
)

var oneHundred = decimal.NewFromInt(100)

// couponService manages discount coupons and their redemption.
type couponService struct {
	couponRepo portsrepo.CouponRepositoryFacade
}

// NewCouponService creates a new CouponService.
func NewCouponService(couponRepo portsrepo.CouponRepositoryFacade) portssvc.CouponSvcFacade {
	return &couponService{couponRepo: couponRepo}
}

// Ensure couponService implements the portssvc.CouponSvcFacade interface
var _ portssvc.CouponSvcFacade = (*couponService)(nil)

// CreateCoupon persists a new coupon.
func (s *couponService) CreateCoupon(ctx context.Context, req dto.CreateCouponRequest, creatorUserID string) (*domain.Coupon, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" {
		return nil, fmt.Errorf("%w: coupon code is required", apperrors.ErrValidation)
	}
	if req.DiscountPercent.LessThanOrEqual(decimal.Zero) || req.DiscountPercent.GreaterThan(oneHundred) {
		return nil, fmt.Errorf("%w: discount must be in (0, 100]", apperrors.ErrValidation)
	}
	if req.MaxRedemptions < 0 {
		return nil, fmt.Errorf("%w: max redemptions cannot be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	coupon := domain.Coupon{
		CouponID:        uuid.NewString(),
		Code:            code,
		DiscountPercent: req.DiscountPercent,
		ExpiresAt:       req.ExpiresAt,
		MaxRedemptions:  req.MaxRedemptions,
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.couponRepo.SaveCoupon(ctx, coupon); err != nil {
		logger.Error("Failed to save coupon", slog.String("error", err.Error()), slog.String("code", code))
		return nil, fmt.Errorf("failed to save coupon: %w", err)
	}

	logger.Info("Coupon created", slog.String("coupon_id", coupon.CouponID), slog.String("code", code))
	return &coupon, nil
}

// UpdateCoupon applies the provided policy fields to an existing coupon.
func (s *couponService) UpdateCoupon(ctx context.Context, couponID string, req dto.UpdateCouponRequest, requestingUserID string) (*domain.Coupon, error) {
	coupon, err := s.couponRepo.FindCouponByID(ctx, couponID)
	if err != nil {
		return nil, fmt.Errorf("failed to find coupon %s: %w", couponID, err)
	}

	if req.DiscountPercent != nil {
		if req.DiscountPercent.LessThanOrEqual(decimal.Zero) || req.DiscountPercent.GreaterThan(oneHundred) {
			return nil, fmt.Errorf("%w: discount must be in (0, 100]", apperrors.ErrValidation)
		}
		coupon.DiscountPercent = *req.DiscountPercent
	}
	if req.ExpiresAt != nil {
		coupon.ExpiresAt = *req.ExpiresAt
	}
	if req.MaxRedemptions != nil {
		if *req.MaxRedemptions < 0 {
			return nil, fmt.Errorf("%w: max redemptions cannot be negative", apperrors.ErrValidation)
		}
		coupon.MaxRedemptions = *req.MaxRedemptions
	}
	if req.IsActive != nil {
		coupon.IsActive = *req.IsActive
	}

	coupon.LastUpdatedAt = time.Now().UTC()
	coupon.LastUpdatedBy = requestingUserID

	if err := s.couponRepo.UpdateCoupon(ctx, *coupon); err != nil {
		return nil, fmt.Errorf("failed to update coupon: %w", err)
	}
	return coupon, nil
}

// ListCoupons retrieves coupons for admin management.
func (s *couponService) ListCoupons(ctx context.Context, limit, offset int) ([]domain.Coupon, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	coupons, err := s.couponRepo.ListCoupons(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list coupons: %w", err)
	}
	return coupons, nil
}

// ValidateCoupon checks a code is currently usable and returns the
// discounted amount.
func (s *couponService) ValidateCoupon(ctx context.Context, code string, amount decimal.Decimal) (*domain.Coupon, decimal.Decimal, error) {
	coupon, err := s.couponRepo.FindCouponByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("failed to find coupon: %w", err)
	}
	if !coupon.Usable(time.Now().UTC()) {
		return nil, decimal.Zero, fmt.Errorf("%w: coupon %s is expired or exhausted", apperrors.ErrValidation, coupon.Code)
	}
	return coupon, coupon.Apply(amount), nil
}

// RedeemCoupon bumps the redemption counter after a settled payment.
func (s *couponService) RedeemCoupon(ctx context.Context, couponID string) error {
	if err := s.couponRepo.IncrementRedemptions(ctx, couponID); err != nil {
		return fmt.Errorf("failed to record redemption for coupon %s: %w", couponID, err)
	}
	return nil
}
