package dto

import (
	"github.com/sunyield/sunyield_backend/internal/core/domain"
)

// SubmitKYCRequest defines the data needed to submit KYC documents.
type SubmitKYCRequest struct {
	PAN          string `json:"pan" binding:"required,len=10"`
	DocumentPath string `json:"documentPath"` // Optional
}

// ReviewKYCRequest defines the admin review decision payload.
type ReviewKYCRequest struct {
	Status     domain.KYCStatus `json:"status" binding:"required,oneof=APPROVED REJECTED"`
	AdminNotes string           `json:"adminNotes"`
}

// KYCSubmissionResponse defines the data returned for a KYC submission.
type KYCSubmissionResponse struct {
	KYCID      string           `json:"kycID"`
	UserID     string           `json:"userID"`
	PAN        string           `json:"pan"`
	Status     domain.KYCStatus `json:"status"`
	AdminNotes string           `json:"adminNotes,omitempty"`
}

// ToKYCSubmissionResponse converts a domain.KYCSubmission to the DTO.
func ToKYCSubmissionResponse(k *domain.KYCSubmission) KYCSubmissionResponse {
	return KYCSubmissionResponse{
		KYCID:      k.KYCID,
		UserID:     k.UserID,
		PAN:        k.PAN,
		Status:     k.Status,
		AdminNotes: k.AdminNotes,
	}
}
