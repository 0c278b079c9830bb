package services

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sunyield/sunyield_backend/internal/apperrors"
	"github.com/sunyield/sunyield_backend/internal/core/domain"
	portsrepo "github.com/sunyield/sunyield_backend/internal/core/ports/repositories"
	portssvc "github.com/sunyield/sunyield_backend/internal/core/ports/services"
	"github.com/sunyield/sunyield_backend/internal/dto"
	"github.com/sunyield/sunyield_backend/internal/middleware"
)

// Indian PAN format: five letters, four digits, one letter.
var panPattern = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)

// kycService handles identity document submission and review.
type kycService struct {
	kycRepo  portsrepo.KYCRepositoryFacade
	userRepo portsrepo.UserRepositoryFacade
}

// NewKYCService creates a new KYCService.
func NewKYCService(kycRepo portsrepo.KYCRepositoryFacade, userRepo portsrepo.UserRepositoryFacade) portssvc.KYCSvcFacade {
	return &kycService{
		kycRepo:  kycRepo,
		userRepo: userRepo,
	}
}

// Ensure kycService implements the portssvc.KYCSvcFacade interface
var _ portssvc.KYCSvcFacade = (*kycService)(nil)

// SubmitKYC records a submission and moves the user to PENDING.
func (s *kycService) SubmitKYC(ctx context.Context, userID string, req dto.SubmitKYCRequest) (*domain.KYCSubmission, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	pan := strings.ToUpper(strings.TrimSpace(req.PAN))
	if !panPattern.MatchString(pan) {
		return nil, fmt.Errorf("%w: invalid PAN format", apperrors.ErrValidation)
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user %s: %w", userID, err)
	}
	if user.KYCStatus == domain.KYCApproved {
		return nil, fmt.Errorf("%w: KYC already approved", apperrors.ErrDuplicate)
	}

	now := time.Now().UTC()
	submission := domain.KYCSubmission{
		KYCID:        uuid.NewString(),
		UserID:       userID,
		PAN:          pan,
		DocumentPath: req.DocumentPath,
		Status:       domain.KYCPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.kycRepo.SaveSubmission(ctx, submission); err != nil {
		logger.Error("Failed to save KYC submission", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save KYC submission: %w", err)
	}

	if err := s.userRepo.UpdateKYCStatus(ctx, userID, domain.KYCPending, userID); err != nil {
		return nil, fmt.Errorf("failed to update user KYC status: %w", err)
	}

	logger.Info("KYC submitted", slog.String("kyc_id", submission.KYCID))
	return &submission, nil
}

// GetSubmissionByUserID retrieves the user's latest submission.
func (s *kycService) GetSubmissionByUserID(ctx context.Context, userID string) (*domain.KYCSubmission, error) {
	submission, err := s.kycRepo.FindSubmissionByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find KYC submission for user %s: %w", userID, err)
	}
	return submission, nil
}

// ListPendingSubmissions retrieves submissions awaiting review.
func (s *kycService) ListPendingSubmissions(ctx context.Context, limit, offset int) ([]domain.KYCSubmission, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	submissions, err := s.kycRepo.ListPendingSubmissions(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending submissions: %w", err)
	}
	return submissions, nil
}

// ReviewSubmission records the admin decision and mirrors it onto the user.
func (s *kycService) ReviewSubmission(ctx context.Context, submissionID string, req dto.ReviewKYCRequest, adminUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Status != domain.KYCApproved && req.Status != domain.KYCRejected {
		return fmt.Errorf("%w: review status must be APPROVED or REJECTED", apperrors.ErrValidation)
	}

	target, err := s.kycRepo.FindSubmissionByID(ctx, submissionID)
	if err != nil {
		return fmt.Errorf("failed to find submission %s: %w", submissionID, err)
	}
	if target.Status != domain.KYCPending {
		return fmt.Errorf("%w: submission %s already reviewed", apperrors.ErrDuplicate, submissionID)
	}

	if err := s.kycRepo.UpdateSubmissionStatus(ctx, submissionID, req.Status, adminUserID, req.AdminNotes); err != nil {
		return fmt.Errorf("failed to update submission status: %w", err)
	}

	if err := s.userRepo.UpdateKYCStatus(ctx, target.UserID, req.Status, adminUserID); err != nil {
		return fmt.Errorf("failed to update user KYC status: %w", err)
	}

	logger.Info("KYC reviewed",
		slog.String("kyc_id", submissionID),
		slog.String("user_id", target.UserID),
		slog.String("status", string(req.Status)))
	return nil
}
