package services

import (
	"context"
	"log/slog"

	portssvc "github.com/sunyield/sunyield_backend/internal/core/ports/services"
	"github.com/sunyield/sunyield_backend/internal/middleware"
)

// logNotifier is the shipped NotifierSvc: it writes the notification to the
// structured log instead of an email/SMS provider. Swapping in a real
// provider only means implementing the same interface.
type logNotifier struct{}

// NewLogNotifier creates the logging notification service.
func NewLogNotifier() portssvc.NotifierSvc {
	return &logNotifier{}
}

// Ensure logNotifier implements the portssvc.NotifierSvc interface
var _ portssvc.NotifierSvc = (*logNotifier)(nil)

func (n *logNotifier) SendOTPEmail(ctx context.Context, email, otp string) error {
	// The code itself stays out of the log.
	middleware.GetLoggerFromCtx(ctx).Info("Notification: OTP email",
		slog.String("email", email),
		slog.Int("otp_digits", len(otp)))
	return nil
}

func (n *logNotifier) SendWithdrawalConfirmation(ctx context.Context, email string, amount string, reference string) error {
	middleware.GetLoggerFromCtx(ctx).Info("Notification: withdrawal confirmation",
		slog.String("email", email),
		slog.String("amount", amount),
		slog.String("reference", reference))
	return nil
}

func (n *logNotifier) SendRewardNotification(ctx context.Context, email string, amount string, month, year int) error {
	middleware.GetLoggerFromCtx(ctx).Info("Notification: reward accrued",
		slog.String("email", email),
		slog.String("amount", amount),
		slog.Int("month", month),
		slog.Int("year", year))
	return nil
}
