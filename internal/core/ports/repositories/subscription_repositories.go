package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/sunyield/sunyield_backend/internal/core/domain"
)

// SubscriptionReader defines read operations for subscription data
type SubscriptionReader interface {
	// FindSubscriptionByID retrieves a specific subscription.
	FindSubscriptionByID(ctx context.Context, subscriptionID string) (*domain.Subscription, error)

	// FindSubscriptionByOrderID retrieves the subscription linked to a
	// payment gateway order.
	FindSubscriptionByOrderID(ctx context.Context, orderID string) (*domain.Subscription, error)

	// ListSubscriptionsByUser retrieves all of a user's subscriptions.
	ListSubscriptionsByUser(ctx context.Context, userID string) ([]domain.Subscription, error)

	// ListPaidSubscriptionsByProject retrieves the SUCCESS-paid
	// subscriptions on a project; these are the reward accrual population.
	ListPaidSubscriptionsByProject(ctx context.Context, projectID string) ([]domain.Subscription, error)

	// SumPaidContributions returns the total SUCCESS-paid contribution on a
	// project.
	SumPaidContributions(ctx context.Context, projectID string) (decimal.Decimal, error)

	// SumReservedCapacity returns the total capacity reserved by
	// SUCCESS-paid subscriptions on a project.
	SumReservedCapacity(ctx context.Context, projectID string) (decimal.Decimal, error)
}

// SubscriptionWriter defines write operations for subscription data
type SubscriptionWriter interface {
	// SaveSubscription persists a new subscription.
	SaveSubscription(ctx context.Context, subscription domain.Subscription) error

	// UpdatePaymentStatus records the settlement outcome of the
	// subscription's gateway order.
	UpdatePaymentStatus(ctx context.Context, subscriptionID string, status domain.PaymentState, updatedByUserID string) error

	// UpdatePaymentStatusInTx transitions the payment status from one
	// state to another within an existing transaction. Returns
	// apperrors.ErrConcurrentModification when the row is no longer in
	// the expected state.
	UpdatePaymentStatusInTx(ctx context.Context, tx pgx.Tx, subscriptionID string, from, to domain.PaymentState, updatedByUserID string) error
}

// SubscriptionRepositoryFacade combines subscription read and write interfaces.
type SubscriptionRepositoryFacade interface {
	SubscriptionReader
	SubscriptionWriter
}
