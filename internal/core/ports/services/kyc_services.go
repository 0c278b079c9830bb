package services

import (
	"context"

	"github.com/sunyield/sunyield_backend/internal/core/domain"
	"github.com/sunyield/sunyield_backend/internal/dto"
)

// KYCSvcFacade defines KYC submission and review operations.
type KYCSvcFacade interface {
	// SubmitKYC records a user's KYC submission and moves them to PENDING.
	SubmitKYC(ctx context.Context, userID string, req dto.SubmitKYCRequest) (*domain.KYCSubmission, error)

	// GetSubmissionByUserID retrieves the user's latest submission.
	GetSubmissionByUserID(ctx context.Context, userID string) (*domain.KYCSubmission, error)

	// ListPendingSubmissions retrieves submissions awaiting review.
	ListPendingSubmissions(ctx context.Context, limit, offset int) ([]domain.KYCSubmission, error)

	// ReviewSubmission records the admin decision and updates the user's
	// KYC status.
	ReviewSubmission(ctx context.Context, submissionID string, req dto.ReviewKYCRequest, adminUserID string) error
}
