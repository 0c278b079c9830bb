package mapping

import (
	"github.com/sunyield/sunyield_backend/internal/core/domain"
	"github.com/sunyield/sunyield_backend/internal/models"
)

// ToModelKYCSubmission converts a domain KYCSubmission to a model KYCSubmission
func ToModelKYCSubmission(d domain.KYCSubmission) models.KYCSubmission {
	return models.KYCSubmission{
		KYCID:        d.KYCID,
		UserID:       d.UserID,
		PAN:          d.PAN,
		DocumentPath: d.DocumentPath,
		Status:       string(d.Status),
		AdminNotes:   d.AdminNotes,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainKYCSubmission converts a model KYCSubmission to a domain KYCSubmission
func ToDomainKYCSubmission(m models.KYCSubmission) domain.KYCSubmission {
	return domain.KYCSubmission{
		KYCID:        m.KYCID,
		UserID:       m.UserID,
		PAN:          m.PAN,
		DocumentPath: m.DocumentPath,
		Status:       domain.KYCStatus(m.Status),
		AdminNotes:   m.AdminNotes,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainKYCSubmissionSlice converts model KYCSubmissions to domain KYCSubmissions
func ToDomainKYCSubmissionSlice(ms []models.KYCSubmission) []domain.KYCSubmission {
	ds := make([]domain.KYCSubmission, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainKYCSubmission(m)
	}
	return ds
}
