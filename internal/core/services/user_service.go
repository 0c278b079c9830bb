package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sunyield/sunyield_backend/internal/apperrors"
	"github.com/sunyield/sunyield_backend/internal/core/domain"
	portsrepo "github.com/sunyield/sunyield_backend/internal/core/ports/repositories"
	portssvc "github.com/sunyield/sunyield_backend/internal/core/ports/services"
	"github.com/sunyield/sunyield_backend/internal/dto"
	"github.com/sunyield/sunyield_backend/internal/middleware"
	"github.com/sunyield/sunyield_backend/internal/utils"
)

const (
	otpDigits = 6
	otpExpiry = 5 * time.Minute
)

// userService manages user accounts, registration and credential checks.
type userService struct {
	userRepo portsrepo.UserRepositoryFacade
	notifier portssvc.NotifierSvc
}

// NewUserService creates a new UserService.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, notifier portssvc.NotifierSvc) portssvc.UserSvcFacade {
	return &userService{
		userRepo: userRepo,
		notifier: notifier,
	}
}

// Ensure userService implements the portssvc.UserSvcFacade interface
var _ portssvc.UserSvcFacade = (*userService)(nil)

// GetUserByID retrieves a user by ID.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email.
func (s *userService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

// ListUsers retrieves a paginated list of users.
func (s *userService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	users, err := s.userRepo.FindUsers(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// RegisterUser creates a new unverified user and issues an OTP via the
// notification stub.
func (s *userService) RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	email := normalizeEmail(req.Email)

	existing, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: email already registered", apperrors.ErrDuplicate)
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", apperrors.ErrInternal)
	}

	otp, err := utils.GenerateOTP(otpDigits)
	if err != nil {
		return nil, fmt.Errorf("failed to generate otp: %w", apperrors.ErrInternal)
	}

	now := time.Now().UTC()
	otpExpiresAt := now.Add(otpExpiry)
	user := domain.User{
		UserID:       uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		FullName:     req.FullName,
		Contact:      req.Contact,
		KYCStatus:    domain.KYCPending,
		Role:         domain.RoleUser,
		IsVerified:   false,
		OTPHash:      utils.HashRefreshToken(otp),
		OTPExpiresAt: &otpExpiresAt,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     "self-registration",
			LastUpdatedAt: now,
			LastUpdatedBy: "self-registration",
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		logger.Error("Failed to save user", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	if s.notifier != nil {
		go func(email, otp string) {
			if notifyErr := s.notifier.SendOTPEmail(context.WithoutCancel(ctx), email, otp); notifyErr != nil {
				logger.Warn("OTP delivery failed", slog.String("error", notifyErr.Error()))
			}
		}(email, otp)
	}

	logger.Info("User registered", slog.String("user_id", user.UserID))
	return &user, nil
}

// VerifyOTP checks the emailed OTP and marks the user verified.
func (s *userService) VerifyOTP(ctx context.Context, email, otp string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user.IsVerified {
		return nil, fmt.Errorf("%w: account already verified", apperrors.ErrDuplicate)
	}
	if user.OTPHash == "" || user.OTPExpiresAt == nil {
		return nil, fmt.Errorf("no pending verification: %w", apperrors.ErrUnauthorized)
	}
	if time.Now().UTC().After(*user.OTPExpiresAt) {
		return nil, fmt.Errorf("otp expired: %w", apperrors.ErrUnauthorized)
	}
	if !utils.CompareRefreshTokenHash(otp, user.OTPHash) {
		return nil, fmt.Errorf("otp mismatch: %w", apperrors.ErrUnauthorized)
	}

	user.IsVerified = true
	user.OTPHash = ""
	user.OTPExpiresAt = nil
	user.LastUpdatedAt = time.Now().UTC()
	user.LastUpdatedBy = user.UserID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return nil, fmt.Errorf("failed to mark user verified: %w", err)
	}

	logger.Info("User verified", slog.String("user_id", user.UserID))
	return user, nil
}

// ResendOTP issues a fresh OTP for an unverified user.
func (s *userService) ResendOTP(ctx context.Context, email string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return fmt.Errorf("failed to find user: %w", err)
	}
	if user.IsVerified {
		return fmt.Errorf("%w: account already verified", apperrors.ErrDuplicate)
	}

	otp, err := utils.GenerateOTP(otpDigits)
	if err != nil {
		return fmt.Errorf("failed to generate otp: %w", apperrors.ErrInternal)
	}

	now := time.Now().UTC()
	expiresAt := now.Add(otpExpiry)
	user.OTPHash = utils.HashRefreshToken(otp)
	user.OTPExpiresAt = &expiresAt
	user.LastUpdatedAt = now
	user.LastUpdatedBy = user.UserID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return fmt.Errorf("failed to store new otp: %w", err)
	}

	if s.notifier != nil {
		go func(email, otp string) {
			if notifyErr := s.notifier.SendOTPEmail(context.WithoutCancel(ctx), email, otp); notifyErr != nil {
				logger.Warn("OTP delivery failed", slog.String("error", notifyErr.Error()))
			}
		}(user.Email, otp)
	}
	return nil
}

// AuthenticateUser authenticates a user with email and password.
func (s *userService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Same error as a bad password; never reveal which part failed.
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		logger.Warn("Password mismatch", slog.String("user_id", user.UserID))
		return nil, apperrors.ErrUnauthorized
	}
	if !user.IsVerified {
		return nil, fmt.Errorf("account not verified: %w", apperrors.ErrForbidden)
	}

	return user, nil
}

// FindOrCreateGoogleUser resolves a Google identity to a local user.
func (s *userService) FindOrCreateGoogleUser(ctx context.Context, info *domain.GoogleUserInfo) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if info.Email == "" || !info.VerifiedEmail {
		return nil, fmt.Errorf("%w: google account email is not verified", apperrors.ErrUnauthorized)
	}
	email := normalizeEmail(info.Email)

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	// First Google login creates a verified account with no local password.
	now := time.Now().UTC()
	newUser := domain.User{
		UserID:     uuid.NewString(),
		Email:      email,
		FullName:   info.Name,
		KYCStatus:  domain.KYCPending,
		Role:       domain.RoleUser,
		IsVerified: true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     "google-oauth",
			LastUpdatedAt: now,
			LastUpdatedBy: "google-oauth",
		},
	}
	if err := s.userRepo.SaveUser(ctx, newUser); err != nil {
		return nil, fmt.Errorf("failed to create google user: %w", err)
	}

	logger.Info("Google user created", slog.String("user_id", newUser.UserID))
	return &newUser, nil
}

// UpdateUser updates an existing user's profile.
func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error) {
	if userID != requestingUserID {
		return nil, fmt.Errorf("%w: users may only update their own profile", apperrors.ErrForbidden)
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Contact != nil {
		user.Contact = *req.Contact
	}
	user.LastUpdatedAt = time.Now().UTC()
	user.LastUpdatedBy = requestingUserID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// UpdateRefreshToken updates the refresh token details for a user.
func (s *userService) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to find user: %w", err)
	}

	user.RefreshTokenHash = refreshTokenHash
	user.RefreshTokenExpiryTime = &refreshTokenExpiryTime
	user.LastUpdatedAt = time.Now().UTC()
	user.LastUpdatedBy = userID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	return nil
}

// ClearRefreshToken clears the refresh token for a user (logout).
func (s *userService) ClearRefreshToken(ctx context.Context, userID string) error {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to find user: %w", err)
	}

	user.RefreshTokenHash = ""
	user.RefreshTokenExpiryTime = nil
	user.LastUpdatedAt = time.Now().UTC()
	user.LastUpdatedBy = userID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
