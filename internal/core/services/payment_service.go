package services

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sunyield/sunyield_backend/internal/apperrors"
	"github.com/sunyield/sunyield_backend/internal/core/domain"
	portsrepo "github.com/sunyield/sunyield_backend/internal/core/ports/repositories"
	portssvc "github.com/sunyield/sunyield_backend/internal/core/ports/services"
	"github.com/sunyield/sunyield_backend/internal/middleware"
)

// mockPaymentGateway simulates an external payment provider. Orders live in
// memory; settlement resolves after a configured delay with a configured
// success rate. The gateway is a collaborator only: nothing here touches the
// ledger, and callers must never invoke it while holding the user row lock.
type mockPaymentGateway struct {
	userRepo portsrepo.UserRepositoryFacade

	delay       time.Duration
	successRate float64 // 0..1
	timeout     time.Duration

	mu     sync.Mutex
	orders map[string]*domain.PaymentOrder
}

// NewMockPaymentGateway creates the simulated gateway.
func NewMockPaymentGateway(userRepo portsrepo.UserRepositoryFacade, delay time.Duration, successRate float64, timeout time.Duration) portssvc.PaymentGatewaySvc {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &mockPaymentGateway{
		userRepo:    userRepo,
		delay:       delay,
		successRate: successRate,
		timeout:     timeout,
		orders:      make(map[string]*domain.PaymentOrder),
	}
}

// Ensure mockPaymentGateway implements the portssvc.PaymentGatewaySvc interface
var _ portssvc.PaymentGatewaySvc = (*mockPaymentGateway)(nil)

// CreateOrder registers a pay-in order with the gateway.
func (g *mockPaymentGateway) CreateOrder(ctx context.Context, userID string, amount decimal.Decimal, kind domain.PaymentOrderKind) (*domain.PaymentOrder, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: order amount must be positive", apperrors.ErrValidation)
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	user, err := g.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user %s: %w", userID, err)
	}

	order := &domain.PaymentOrder{
		OrderID:       "ORD-" + uuid.NewString(),
		Kind:          kind,
		Amount:        amount,
		Currency:      "INR",
		CustomerName:  user.FullName,
		CustomerEmail: user.Email,
		CustomerPhone: user.Contact,
		Status:        domain.OrderPending,
		CreatedAt:     time.Now().UTC(),
	}

	g.mu.Lock()
	g.orders[order.OrderID] = order
	g.mu.Unlock()

	logger.Info("Gateway order created",
		slog.String("order_id", order.OrderID),
		slog.String("kind", string(kind)),
		slog.String("amount", amount.String()))
	snapshot := *order
	return &snapshot, nil
}

// GetOrder polls the gateway for current order status.
func (g *mockPaymentGateway) GetOrder(ctx context.Context, orderID string) (*domain.PaymentOrder, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	order, ok := g.orders[orderID]
	if !ok {
		return nil, fmt.Errorf("order %s: %w", orderID, apperrors.ErrNotFound)
	}
	snapshot := *order
	return &snapshot, nil
}

// SettleOrder resolves a pending order after the configured processing
// delay and emits the settlement event. Settlement outcome follows the
// configured success rate.
func (g *mockPaymentGateway) SettleOrder(ctx context.Context, orderID string) (*domain.SettlementEvent, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	if g.delay > 0 {
		select {
		case <-time.After(g.delay):
		case <-ctx.Done():
			return nil, fmt.Errorf("gateway settlement timed out: %w", ctx.Err())
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	order, ok := g.orders[orderID]
	if !ok {
		return nil, fmt.Errorf("order %s: %w", orderID, apperrors.ErrNotFound)
	}
	if order.Status != domain.OrderPending {
		return nil, fmt.Errorf("%w: order %s already settled as %s", apperrors.ErrDuplicate, orderID, order.Status)
	}

	now := time.Now().UTC()
	if rand.Float64() < g.successRate {
		order.Status = domain.OrderSuccess
		order.TransactionID = "TXN-" + uuid.NewString()
	} else {
		order.Status = domain.OrderFailed
	}
	order.ProcessedAt = &now

	logger.Info("Gateway order settled",
		slog.String("order_id", orderID),
		slog.String("status", string(order.Status)))

	return &domain.SettlementEvent{
		OrderID: order.OrderID,
		Amount:  order.Amount,
		Status:  order.Status,
	}, nil
}
