package repositories

import (
	"context"

	"github.com/sunyield/sunyield_backend/internal/core/domain"
)

// KYCReader defines read operations for KYC submissions
type KYCReader interface {
	// FindSubmissionByID retrieves a specific KYC submission.
	FindSubmissionByID(ctx context.Context, submissionID string) (*domain.KYCSubmission, error)

	// FindSubmissionByUserID retrieves the latest KYC submission for a user.
	FindSubmissionByUserID(ctx context.Context, userID string) (*domain.KYCSubmission, error)

	// ListPendingSubmissions retrieves submissions awaiting admin review.
	ListPendingSubmissions(ctx context.Context, limit int, offset int) ([]domain.KYCSubmission, error)
}

// KYCWriter defines write operations for KYC submissions
type KYCWriter interface {
	// SaveSubmission persists a new KYC submission.
	SaveSubmission(ctx context.Context, submission domain.KYCSubmission) error

	// UpdateSubmissionStatus records the admin review decision.
	UpdateSubmissionStatus(ctx context.Context, submissionID string, status domain.KYCStatus, reviewedBy string, remarks string) error
}

// KYCRepositoryFacade combines KYC read and write interfaces.
type KYCRepositoryFacade interface {
	KYCReader
	KYCWriter
}
