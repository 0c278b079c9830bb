package mapping

import (
	"github.com/sunyield/sunyield_backend/internal/core/domain"
	"github.com/sunyield/sunyield_backend/internal/models"
)

// ToModelTransfer converts a domain Transfer to a model Transfer.
// Empty user/project IDs become NULL columns.
func ToModelTransfer(d domain.Transfer) models.Transfer {
	m := models.Transfer{
		TransferID:  d.TransferID,
		Amount:      d.Amount,
		Kind:        string(d.Kind),
		OccurredAt:  d.OccurredAt,
		Notes:       d.Notes,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
	if d.FromUserID != "" {
		from := d.FromUserID
		m.FromUserID = &from
	}
	if d.ToUserID != "" {
		to := d.ToUserID
		m.ToUserID = &to
	}
	if d.ProjectID != "" {
		proj := d.ProjectID
		m.ProjectID = &proj
	}
	return m
}

// ToDomainTransfer converts a model Transfer to a domain Transfer
func ToDomainTransfer(m models.Transfer) domain.Transfer {
	d := domain.Transfer{
		TransferID:  m.TransferID,
		Amount:      m.Amount,
		Kind:        domain.TransferKind(m.Kind),
		OccurredAt:  m.OccurredAt,
		Notes:       m.Notes,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
	if m.FromUserID != nil {
		d.FromUserID = *m.FromUserID
	}
	if m.ToUserID != nil {
		d.ToUserID = *m.ToUserID
	}
	if m.ProjectID != nil {
		d.ProjectID = *m.ProjectID
	}
	return d
}

// ToDomainTransferSlice converts a slice of model Transfers to domain Transfers
func ToDomainTransferSlice(ms []models.Transfer) []domain.Transfer {
	ds := make([]domain.Transfer, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransfer(m)
	}
	return ds
}
