package domain

import "time"

// KYCStatus tracks the verification state of a user's identity documents.
type KYCStatus string

const (
	KYCPending  KYCStatus = "PENDING"
	KYCApproved KYCStatus = "APPROVED"
	KYCRejected KYCStatus = "REJECTED"
)

// Role controls access to admin-only operations.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User represents a registered investor on the platform.
type User struct {
	UserID       string    `json:"userID"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName"`
	Contact      string    `json:"contact"`
	KYCStatus    KYCStatus `json:"kycStatus"`
	Role         Role      `json:"role"`
	IsVerified   bool      `json:"isVerified"`
	// OTP verification state; cleared once the account is verified.
	OTPHash      string     `json:"-"`
	OTPExpiresAt *time.Time `json:"-"`
	// Refresh token state for session continuation.
	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
	AuditFields
}

// GoogleUserInfo is the subset of the Google userinfo payload used at login.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}
