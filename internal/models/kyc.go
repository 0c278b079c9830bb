package models

// KYCSubmission is the database representation of a KYC review request.
type KYCSubmission struct {
	KYCID        string `db:"kyc_id"`
	UserID       string `db:"user_id"`
	PAN          string `db:"pan"`
	DocumentPath string `db:"document_path"`
	Status       string `db:"status"`
	AdminNotes   string `db:"admin_notes"`
	AuditFields
}
