package mapping

import (
	"github.com/sunyield/sunyield_backend/internal/core/domain"
	"github.com/sunyield/sunyield_backend/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:                 d.UserID,
		Email:                  d.Email,
		PasswordHash:           d.PasswordHash,
		FullName:               d.FullName,
		Contact:                d.Contact,
		KYCStatus:              string(d.KYCStatus),
		Role:                   string(d.Role),
		IsVerified:             d.IsVerified,
		OTPHash:                d.OTPHash,
		OTPExpiresAt:           d.OTPExpiresAt,
		RefreshTokenHash:       d.RefreshTokenHash,
		RefreshTokenExpiryTime: d.RefreshTokenExpiryTime,
		AuditFields:            ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:                 m.UserID,
		Email:                  m.Email,
		PasswordHash:           m.PasswordHash,
		FullName:               m.FullName,
		Contact:                m.Contact,
		KYCStatus:              domain.KYCStatus(m.KYCStatus),
		Role:                   domain.Role(m.Role),
		IsVerified:             m.IsVerified,
		OTPHash:                m.OTPHash,
		OTPExpiresAt:           m.OTPExpiresAt,
		RefreshTokenHash:       m.RefreshTokenHash,
		RefreshTokenExpiryTime: m.RefreshTokenExpiryTime,
		AuditFields:            ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainUserSlice converts a slice of model Users to a slice of domain Users
func ToDomainUserSlice(ms []models.User) []domain.User {
	ds := make([]domain.User, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainUser(m)
	}
	return ds
}
