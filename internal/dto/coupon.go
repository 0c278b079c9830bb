package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sunyield/sunyield_backend/internal/core/domain"
)

// CreateCouponRequest defines the data needed to create a coupon.
type CreateCouponRequest struct {
	Code            string          `json:"code" binding:"required"`
	DiscountPercent decimal.Decimal `json:"discountPercent" binding:"required"`
	ExpiresAt       time.Time       `json:"expiresAt" binding:"required"`
	MaxRedemptions  int             `json:"maxRedemptions"` // 0 = unlimited
}

// UpdateCouponRequest defines the data allowed for updating a coupon.
type UpdateCouponRequest struct {
	DiscountPercent *decimal.Decimal `json:"discountPercent"`
	ExpiresAt       *time.Time       `json:"expiresAt"`
	MaxRedemptions  *int             `json:"maxRedemptions"`
	IsActive        *bool            `json:"isActive"`
}

// ValidateCouponRequest checks a code against a contribution amount.
type ValidateCouponRequest struct {
	Code   string          `json:"code" binding:"required"`
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// ValidateCouponResponse returns the discount a code would apply.
type ValidateCouponResponse struct {
	Code             string          `json:"code"`
	DiscountPercent  decimal.Decimal `json:"discountPercent"`
	OriginalAmount   decimal.Decimal `json:"originalAmount"`
	DiscountedAmount decimal.Decimal `json:"discountedAmount"`
}

// CouponResponse defines the data returned for a coupon.
type CouponResponse struct {
	CouponID        string          `json:"couponID"`
	Code            string          `json:"code"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	ExpiresAt       time.Time       `json:"expiresAt"`
	MaxRedemptions  int             `json:"maxRedemptions"`
	Redemptions     int             `json:"redemptions"`
	IsActive        bool            `json:"isActive"`
}

// ToCouponResponse converts a domain.Coupon to CouponResponse DTO.
func ToCouponResponse(c *domain.Coupon) CouponResponse {
	return CouponResponse{
		CouponID:        c.CouponID,
		Code:            c.Code,
		DiscountPercent: c.DiscountPercent,
		ExpiresAt:       c.ExpiresAt,
		MaxRedemptions:  c.MaxRedemptions,
		Redemptions:     c.Redemptions,
		IsActive:        c.IsActive,
	}
}
