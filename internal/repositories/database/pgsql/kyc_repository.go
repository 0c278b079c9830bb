package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sunyield/sunyield_backend/internal/apperrors"
	"github.com/sunyield/sunyield_backend/internal/core/domain"
	portsrepo "github.com/sunyield/sunyield_backend/internal/core/ports/repositories"
	"github.com/sunyield/sunyield_backend/internal/models"
	"github.com/sunyield/sunyield_backend/internal/utils/mapping"
)

type PgxKYCRepository struct {
	db *pgxpool.Pool
}

func newPgxKYCRepository(db *pgxpool.Pool) portsrepo.KYCRepositoryFacade {
	return &PgxKYCRepository{db: db}
}

// Ensure PgxKYCRepository implements portsrepo.KYCRepositoryFacade
var _ portsrepo.KYCRepositoryFacade = (*PgxKYCRepository)(nil)

const kycColumns = `kyc_id, user_id, pan, document_path, status, admin_notes,
		created_at, created_by, last_updated_at, last_updated_by`

func scanKYCSubmission(row pgx.Row) (*models.KYCSubmission, error) {
	var m models.KYCSubmission
	err := row.Scan(
		&m.KYCID,
		&m.UserID,
		&m.PAN,
		&m.DocumentPath,
		&m.Status,
		&m.AdminNotes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxKYCRepository) FindSubmissionByID(ctx context.Context, submissionID string) (*domain.KYCSubmission, error) {
	query := `SELECT ` + kycColumns + ` FROM kyc_submissions WHERE kyc_id = $1;`
	m, err := scanKYCSubmission(r.db.QueryRow(ctx, query, submissionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("kyc submission not found")
		}
		return nil, fmt.Errorf("failed to find kyc submission %s: %w", submissionID, err)
	}
	d := mapping.ToDomainKYCSubmission(*m)
	return &d, nil
}

func (r *PgxKYCRepository) FindSubmissionByUserID(ctx context.Context, userID string) (*domain.KYCSubmission, error) {
	query := `
        SELECT ` + kycColumns + `
        FROM kyc_submissions
        WHERE user_id = $1
        ORDER BY created_at DESC
        LIMIT 1;
    `
	m, err := scanKYCSubmission(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("kyc submission not found")
		}
		return nil, fmt.Errorf("failed to find kyc submission for user %s: %w", userID, err)
	}
	d := mapping.ToDomainKYCSubmission(*m)
	return &d, nil
}

func (r *PgxKYCRepository) ListPendingSubmissions(ctx context.Context, limit int, offset int) ([]domain.KYCSubmission, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
        SELECT ` + kycColumns + `
        FROM kyc_submissions
        WHERE status = $1
        ORDER BY created_at
        LIMIT $2 OFFSET $3;
    `
	rows, err := r.db.Query(ctx, query, string(domain.KYCPending), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending kyc submissions: %w", err)
	}
	defer rows.Close()

	modelSubs := []models.KYCSubmission{}
	for rows.Next() {
		m, err := scanKYCSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan kyc submission row: %w", err)
		}
		modelSubs = append(modelSubs, *m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating kyc submission rows: %w", rows.Err())
	}

	return mapping.ToDomainKYCSubmissionSlice(modelSubs), nil
}

func (r *PgxKYCRepository) SaveSubmission(ctx context.Context, submission domain.KYCSubmission) error {
	m := mapping.ToModelKYCSubmission(submission)
	query := `
        INSERT INTO kyc_submissions (` + kycColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
    `
	_, err := r.db.Exec(ctx, query,
		m.KYCID,
		m.UserID,
		m.PAN,
		m.DocumentPath,
		m.Status,
		m.AdminNotes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save kyc submission: %w", err)
	}
	return nil
}

func (r *PgxKYCRepository) UpdateSubmissionStatus(ctx context.Context, submissionID string, status domain.KYCStatus, reviewedBy string, remarks string) error {
	query := `
        UPDATE kyc_submissions
        SET status = $1, admin_notes = $2, last_updated_at = now(), last_updated_by = $3
        WHERE kyc_id = $4;
    `
	cmdTag, err := r.db.Exec(ctx, query, string(status), remarks, reviewedBy, submissionID)
	if err != nil {
		return fmt.Errorf("failed to update kyc submission %s: %w", submissionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("kyc submission not found: %w", apperrors.ErrNotFound)
	}
	return nil
}
