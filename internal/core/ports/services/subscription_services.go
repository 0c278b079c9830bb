package services

import (
	"context"

	"github.com/sunyield/sunyield_backend/internal/core/domain"
	"github.com/sunyield/sunyield_backend/internal/dto"
)

// SubscriptionReaderSvc defines read operations for subscription data
type SubscriptionReaderSvc interface {
	// GetSubscriptionByID retrieves a subscription. Non-admin callers only
	// see their own.
	GetSubscriptionByID(ctx context.Context, subscriptionID string, requestingUserID string, isAdmin bool) (*domain.Subscription, error)

	// ListSubscriptionsByUser retrieves a user's subscriptions.
	ListSubscriptionsByUser(ctx context.Context, userID string) ([]domain.Subscription, error)
}

// SubscriptionWriterSvc defines write operations for subscription data
type SubscriptionWriterSvc interface {
	// Subscribe validates the contribution against project limits, applies
	// an optional coupon, creates a gateway order and a PENDING
	// subscription tied to it.
	Subscribe(ctx context.Context, userID string, req dto.SubscribeRequest) (*dto.SubscribeResponse, error)

	// HandleSettlement processes a gateway settlement event: on success the
	// settled amount lands as an ADD_FUNDS credit, the SUBSCRIPTION debit is
	// authorized against it, the subscription flips to SUCCESS and project
	// capacity is reserved. On failure the subscription flips to FAILED
	// with no ledger effect.
	HandleSettlement(ctx context.Context, event domain.SettlementEvent) (*domain.Subscription, error)
}

// SubscriptionSvcFacade combines all subscription-related service interfaces
type SubscriptionSvcFacade interface {
	SubscriptionReaderSvc
	SubscriptionWriterSvc
}
