package mapping

import (
	"github.com/SscSPs/marketplace_ledger/internal/core/domain"
	"github.com/SscSPs/marketplace_ledger/internal/models"
)

// ToModelPeriod converts a domain AccountingPeriod to a model AccountingPeriod
func ToModelPeriod(d domain.AccountingPeriod) models.AccountingPeriod {
	return models.AccountingPeriod{
		PeriodID:     d.PeriodID,
		TenantID:     d.TenantID,
		StartDate:    d.StartDate,
		EndDate:      d.EndDate,
		Status:       string(d.Status),
		ClosedBy:     d.ClosedBy,
		ClosedAt:     d.ClosedAt,
		CloseReason:  d.CloseReason,
		ReopenedBy:   d.ReopenedBy,
		ReopenedAt:   d.ReopenedAt,
		ReopenReason: d.ReopenReason,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPeriod converts a model AccountingPeriod to a domain AccountingPeriod.
// DATE columns come back at midnight UTC, which is what the domain expects.
func ToDomainPeriod(m models.AccountingPeriod) domain.AccountingPeriod {
	return domain.AccountingPeriod{
		PeriodID:     m.PeriodID,
		TenantID:     m.TenantID,
		StartDate:    domain.DateOf(m.StartDate),
		EndDate:      domain.DateOf(m.EndDate),
		Status:       domain.PeriodStatus(m.Status),
		ClosedBy:     m.ClosedBy,
		ClosedAt:     m.ClosedAt,
		CloseReason:  m.CloseReason,
		ReopenedBy:   m.ReopenedBy,
		ReopenedAt:   m.ReopenedAt,
		ReopenReason: m.ReopenReason,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPeriodSlice converts a slice of model periods to domain periods
func ToDomainPeriodSlice(ms []models.AccountingPeriod) []domain.AccountingPeriod {
	ds := make([]domain.AccountingPeriod, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPeriod(m)
	}
	return ds
}

// ToModelOpeningBalance converts a domain OpeningBalance to a model OpeningBalance
func ToModelOpeningBalance(d domain.OpeningBalance) models.OpeningBalance {
	return models.OpeningBalance(d)
}

// ToDomainOpeningBalance converts a model OpeningBalance to a domain OpeningBalance
func ToDomainOpeningBalance(m models.OpeningBalance) domain.OpeningBalance {
	return domain.OpeningBalance(m)
}
