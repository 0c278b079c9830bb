package mapping

import (
	"github.com/sunyield/sunyield_backend/internal/core/domain"
	"github.com/sunyield/sunyield_backend/internal/models"
)

// ToModelSubscription converts a domain Subscription to a model Subscription
func ToModelSubscription(d domain.Subscription) models.Subscription {
	return models.Subscription{
		SubscriptionID:     d.SubscriptionID,
		UserID:             d.UserID,
		ProjectID:          d.ProjectID,
		ContributionAmount: d.ContributionAmount,
		ReservedCapacity:   d.ReservedCapacity,
		PaymentStatus:      string(d.PaymentStatus),
		PaymentOrderID:     d.PaymentOrderID,
		CouponCode:         d.CouponCode,
		SubscribedAt:       d.SubscribedAt,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSubscription converts a model Subscription to a domain Subscription
func ToDomainSubscription(m models.Subscription) domain.Subscription {
	return domain.Subscription{
		SubscriptionID:     m.SubscriptionID,
		UserID:             m.UserID,
		ProjectID:          m.ProjectID,
		ContributionAmount: m.ContributionAmount,
		ReservedCapacity:   m.ReservedCapacity,
		PaymentStatus:      domain.PaymentState(m.PaymentStatus),
		PaymentOrderID:     m.PaymentOrderID,
		CouponCode:         m.CouponCode,
		SubscribedAt:       m.SubscribedAt,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainSubscriptionSlice converts model Subscriptions to domain Subscriptions
func ToDomainSubscriptionSlice(ms []models.Subscription) []domain.Subscription {
	ds := make([]domain.Subscription, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSubscription(m)
	}
	return ds
}
