package domain

// KYCSubmission holds the identity documents a user submits for review.
// The review outcome is mirrored onto User.KYCStatus.
type KYCSubmission struct {
	KYCID        string    `json:"kycID"`
	UserID       string    `json:"userID"`
	PAN          string    `json:"pan"`
	DocumentPath string    `json:"documentPath,omitempty"`
	Status       KYCStatus `json:"status"`
	AdminNotes   string    `json:"adminNotes,omitempty"`
	AuditFields
}
