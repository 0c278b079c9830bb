package models

import "time"

// User is the database representation of a platform user.
type User struct {
	UserID       string `db:"user_id"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
	FullName     string `db:"full_name"`
	Contact      string `db:"contact"`
	KYCStatus    string `db:"kyc_status"`
	Role         string `db:"role"`
	IsVerified   bool   `db:"is_verified"`

	OTPHash      string     `db:"otp_hash"`
	OTPExpiresAt *time.Time `db:"otp_expires_at"`

	RefreshTokenHash       string     `db:"refresh_token_hash"`
	RefreshTokenExpiryTime *time.Time `db:"refresh_token_expiry_time"`

	AuditFields
}
