package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/sunyield/sunyield_backend/internal/apperrors"
	"github.com/sunyield/sunyield_backend/internal/core/domain"
	portsrepo "github.com/sunyield/sunyield_backend/internal/core/ports/repositories"
	portssvc "github.com/sunyield/sunyield_backend/internal/core/ports/services"
	"github.com/sunyield/sunyield_backend/internal/dto"
	"github.com/sunyield/sunyield_backend/internal/middleware"
)

// subscriptionService ties user contributions to projects through the
// payment gateway.
type subscriptionService struct {
	subscriptionRepo portsrepo.SubscriptionRepositoryFacade
	projectRepo      portsrepo.ProjectRepositoryFacade
	userRepo         portsrepo.UserRepositoryFacade
	walletSvc        portssvc.WalletSvcFacade
	paymentSvc       portssvc.PaymentGatewaySvc
	couponSvc        portssvc.CouponSvcFacade
}

// NewSubscriptionService creates a new SubscriptionService.
func NewSubscriptionService(
	subscriptionRepo portsrepo.SubscriptionRepositoryFacade,
	projectRepo portsrepo.ProjectRepositoryFacade,
	userRepo portsrepo.UserRepositoryFacade,
	walletSvc portssvc.WalletSvcFacade,
	paymentSvc portssvc.PaymentGatewaySvc,
	couponSvc portssvc.CouponSvcFacade,
) portssvc.SubscriptionSvcFacade {
	return &subscriptionService{
		subscriptionRepo: subscriptionRepo,
		projectRepo:      projectRepo,
		userRepo:         userRepo,
		walletSvc:        walletSvc,
		paymentSvc:       paymentSvc,
		couponSvc:        couponSvc,
	}
}

// Ensure subscriptionService implements the portssvc.SubscriptionSvcFacade interface
var _ portssvc.SubscriptionSvcFacade = (*subscriptionService)(nil)

// Subscribe validates the contribution, applies an optional coupon and
// creates the gateway order plus a PENDING subscription bound to it. The
// gateway order is created before any ledger work and entirely outside it.
func (s *subscriptionService) Subscribe(ctx context.Context, userID string, req dto.SubscribeRequest) (*dto.SubscribeResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.ContributionAmount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: contribution must be positive", apperrors.ErrValidation)
	}

	project, err := s.projectRepo.FindProjectByID(ctx, req.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to find project %s: %w", req.ProjectID, err)
	}
	if project.Status != domain.ProjectActive {
		return nil, fmt.Errorf("%w: project %s is not open for subscription", apperrors.ErrValidation, req.ProjectID)
	}
	if req.ContributionAmount.LessThan(project.MinContribution) {
		return nil, fmt.Errorf("%w: minimum contribution for project %s is %s", apperrors.ErrValidation, req.ProjectID, project.MinContribution.String())
	}

	payable := req.ContributionAmount
	if req.CouponCode != "" {
		_, discounted, err := s.couponSvc.ValidateCoupon(ctx, req.CouponCode, req.ContributionAmount)
		if err != nil {
			return nil, fmt.Errorf("coupon %s rejected: %w", req.CouponCode, err)
		}
		payable = discounted
	}

	order, err := s.paymentSvc.CreateOrder(ctx, userID, payable, domain.OrderPayIn)
	if err != nil {
		return nil, fmt.Errorf("failed to create gateway order: %w", err)
	}

	// Reserved capacity is the contribution's share of the project priced
	// per kWp.
	reserved := decimal.Zero
	if project.SubscriptionPrice.IsPositive() {
		reserved = req.ContributionAmount.Div(project.SubscriptionPrice).Round(4)
	}

	now := time.Now().UTC()
	subscription := domain.Subscription{
		SubscriptionID:     uuid.NewString(),
		UserID:             userID,
		ProjectID:          req.ProjectID,
		ContributionAmount: req.ContributionAmount,
		ReservedCapacity:   reserved,
		PaymentStatus:      domain.PaymentPending,
		PaymentOrderID:     order.OrderID,
		CouponCode:         req.CouponCode,
		SubscribedAt:       now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.subscriptionRepo.SaveSubscription(ctx, subscription); err != nil {
		logger.Error("Failed to save subscription", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save subscription: %w", err)
	}

	logger.Info("Subscription created",
		slog.String("subscription_id", subscription.SubscriptionID),
		slog.String("project_id", req.ProjectID),
		slog.String("order_id", order.OrderID),
		slog.String("payable", payable.String()))

	return &dto.SubscribeResponse{
		Subscription: dto.ToSubscriptionResponse(&subscription),
		OrderID:      order.OrderID,
		PayableNow:   payable,
	}, nil
}

// HandleSettlement reacts to the gateway's settlement event. A successful
// pay-in lands as an ADD_FUNDS credit, the SUBSCRIPTION debit is authorized
// against it, and the subscription flips PENDING to SUCCESS, all in one
// transaction. A gateway retry after a failed attempt finds the subscription
// still PENDING with no ledger trace; a retry after a committed settlement
// is rejected as a duplicate. Failure flips the subscription to FAILED with
// no ledger effect.
func (s *subscriptionService) HandleSettlement(ctx context.Context, event domain.SettlementEvent) (*domain.Subscription, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	subscription, err := s.subscriptionRepo.FindSubscriptionByOrderID(ctx, event.OrderID)
	if err != nil {
		return nil, fmt.Errorf("no subscription for order %s: %w", event.OrderID, err)
	}
	if subscription.PaymentStatus != domain.PaymentPending {
		return nil, fmt.Errorf("%w: subscription %s already settled as %s", apperrors.ErrDuplicate, subscription.SubscriptionID, subscription.PaymentStatus)
	}

	if event.Status != domain.OrderSuccess {
		if err := s.subscriptionRepo.UpdatePaymentStatus(ctx, subscription.SubscriptionID, domain.PaymentFailed, subscription.UserID); err != nil {
			return nil, fmt.Errorf("failed to mark subscription failed: %w", err)
		}
		subscription.PaymentStatus = domain.PaymentFailed
		logger.Info("Subscription payment failed", slog.String("subscription_id", subscription.SubscriptionID), slog.String("order_id", event.OrderID))
		return subscription, nil
	}

	// External money in, spent on the subscription through the authorizer.
	// The ADD_FUNDS credit, the SUBSCRIPTION debit and the status flip
	// commit or roll back together.
	debit := dto.DebitRequest{
		Amount:    event.Amount,
		Kind:      domain.KindSubscription,
		ProjectID: subscription.ProjectID,
		Notes:     "subscription " + subscription.SubscriptionID,
		FundingCredit: &dto.CreditRequest{
			Amount:    event.Amount,
			Kind:      domain.KindAddFunds,
			ProjectID: subscription.ProjectID,
			Notes:     "gateway settlement " + event.OrderID,
		},
	}
	_, err = s.walletSvc.AuthorizeAndDebit(ctx, subscription.UserID, debit, func(ctx context.Context, tx pgx.Tx, _ *domain.Transfer) error {
		return s.subscriptionRepo.UpdatePaymentStatusInTx(ctx, tx, subscription.SubscriptionID, domain.PaymentPending, domain.PaymentSuccess, subscription.UserID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to settle subscription: %w", err)
	}
	subscription.PaymentStatus = domain.PaymentSuccess

	if subscription.CouponCode != "" {
		if coupon, _, err := s.couponSvc.ValidateCoupon(ctx, subscription.CouponCode, subscription.ContributionAmount); err == nil {
			if err := s.couponSvc.RedeemCoupon(ctx, coupon.CouponID); err != nil {
				logger.Warn("Failed to record coupon redemption", slog.String("coupon", subscription.CouponCode), slog.String("error", err.Error()))
			}
		}
	}

	logger.Info("Subscription settled",
		slog.String("subscription_id", subscription.SubscriptionID),
		slog.String("order_id", event.OrderID),
		slog.String("amount", event.Amount.String()))
	return subscription, nil
}

// GetSubscriptionByID retrieves a subscription with an ownership check.
func (s *subscriptionService) GetSubscriptionByID(ctx context.Context, subscriptionID string, requestingUserID string, isAdmin bool) (*domain.Subscription, error) {
	subscription, err := s.subscriptionRepo.FindSubscriptionByID(ctx, subscriptionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find subscription %s: %w", subscriptionID, err)
	}
	if !isAdmin && subscription.UserID != requestingUserID {
		// Obscure existence
		return nil, apperrors.ErrNotFound
	}
	return subscription, nil
}

// ListSubscriptionsByUser retrieves all of a user's subscriptions.
func (s *subscriptionService) ListSubscriptionsByUser(ctx context.Context, userID string) ([]domain.Subscription, error) {
	subs, err := s.subscriptionRepo.ListSubscriptionsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	return subs, nil
}
