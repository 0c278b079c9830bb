package services

import "context"

// NotifierSvc delivers user-facing notifications. Implementations are
// fire-and-forget from the caller's perspective: delivery failures are
// logged and never surfaced to ledger operations.
type NotifierSvc interface {
	// SendOTPEmail delivers a verification OTP.
	SendOTPEmail(ctx context.Context, email, otp string) error

	// SendWithdrawalConfirmation notifies a user their payout was made.
	SendWithdrawalConfirmation(ctx context.Context, email string, amount string, reference string) error

	// SendRewardNotification tells a user rewards landed for a period.
	SendRewardNotification(ctx context.Context, email string, amount string, month, year int) error
}
