package mapping

import (
	"github.com/sunyield/sunyield_backend/internal/core/domain"
	"github.com/sunyield/sunyield_backend/internal/models"
)

// ToModelCoupon converts a domain Coupon to a model Coupon
func ToModelCoupon(d domain.Coupon) models.Coupon {
	return models.Coupon{
		CouponID:        d.CouponID,
		Code:            d.Code,
		DiscountPercent: d.DiscountPercent,
		ExpiresAt:       d.ExpiresAt,
		MaxRedemptions:  d.MaxRedemptions,
		Redemptions:     d.Redemptions,
		IsActive:        d.IsActive,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCoupon converts a model Coupon to a domain Coupon
func ToDomainCoupon(m models.Coupon) domain.Coupon {
	return domain.Coupon{
		CouponID:        m.CouponID,
		Code:            m.Code,
		DiscountPercent: m.DiscountPercent,
		ExpiresAt:       m.ExpiresAt,
		MaxRedemptions:  m.MaxRedemptions,
		Redemptions:     m.Redemptions,
		IsActive:        m.IsActive,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCouponSlice converts model Coupons to domain Coupons
func ToDomainCouponSlice(ms []models.Coupon) []domain.Coupon {
	ds := make([]domain.Coupon, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCoupon(m)
	}
	return ds
}
