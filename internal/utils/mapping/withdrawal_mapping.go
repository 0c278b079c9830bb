package mapping

import (
	"github.com/sunyield/sunyield_backend/internal/core/domain"
	"github.com/sunyield/sunyield_backend/internal/models"
)

// ToModelWithdrawal converts a domain Withdrawal to a model Withdrawal
func ToModelWithdrawal(d domain.Withdrawal) models.Withdrawal {
	return models.Withdrawal{
		WithdrawalID:       d.WithdrawalID,
		UserID:             d.UserID,
		Amount:             d.Amount,
		Status:             string(d.Status),
		PayoutMethod:       string(d.PayoutMethod),
		UPIID:              d.UPIID,
		BankAccountNumber:  d.BankAccountNumber,
		IFSCCode:           d.IFSCCode,
		PaymentReferenceID: d.PaymentReferenceID,
		AdminNotes:         d.AdminNotes,
		RequestedAt:        d.RequestedAt,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainWithdrawal converts a model Withdrawal to a domain Withdrawal
func ToDomainWithdrawal(m models.Withdrawal) domain.Withdrawal {
	return domain.Withdrawal{
		WithdrawalID:       m.WithdrawalID,
		UserID:             m.UserID,
		Amount:             m.Amount,
		Status:             domain.WithdrawalStatus(m.Status),
		PayoutMethod:       domain.PayoutMethod(m.PayoutMethod),
		UPIID:              m.UPIID,
		BankAccountNumber:  m.BankAccountNumber,
		IFSCCode:           m.IFSCCode,
		PaymentReferenceID: m.PaymentReferenceID,
		AdminNotes:         m.AdminNotes,
		RequestedAt:        m.RequestedAt,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainWithdrawalSlice converts model Withdrawals to domain Withdrawals
func ToDomainWithdrawalSlice(ms []models.Withdrawal) []domain.Withdrawal {
	ds := make([]domain.Withdrawal, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainWithdrawal(m)
	}
	return ds
}
