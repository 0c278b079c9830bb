package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/sunyield/sunyield_backend/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by their login email.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindUsers retrieves a paginated list of users.
	FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUser updates an existing user's details.
	UpdateUser(ctx context.Context, user domain.User) error

	// UpdateKYCStatus sets the user's KYC status after a review decision.
	UpdateKYCStatus(ctx context.Context, userID string, status domain.KYCStatus, updatedByUserID string) error
}

// UserLocker exposes the per-user serialization point used by the debit
// authorizer: the user row is locked FOR UPDATE inside the caller's
// transaction so concurrent debits serialize.
type UserLocker interface {
	// LockUserForUpdate locks the user's row within tx and returns the user.
	LockUserForUpdate(ctx context.Context, tx pgx.Tx, userID string) (*domain.User, error)
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
	UserLocker
}
