package mapping

import (
	"github.com/SscSPs/marketplace_ledger/internal/core/domain"
	"github.com/SscSPs/marketplace_ledger/internal/models"
)

// ToModelJournal converts a domain Journal header to a model Journal
func ToModelJournal(d domain.Journal) models.Journal {
	return models.Journal{
		JournalID:       d.JournalID,
		TenantID:        d.TenantID,
		BusinessUnit:    nullable(d.BusinessUnit),
		TransactionDate: d.TransactionDate,
		Description:     d.Description,
		ReferenceID:     nullable(d.ReferenceID),
		ReferenceType:   string(d.ReferenceType),
		Status:          models.JournalStatus(d.Status),
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournal converts a model Journal to a domain Journal without lines
func ToDomainJournal(m models.Journal) domain.Journal {
	return domain.Journal{
		JournalID:       m.JournalID,
		TenantID:        m.TenantID,
		BusinessUnit:    deref(m.BusinessUnit),
		TransactionDate: domain.DateOf(m.TransactionDate),
		Description:     m.Description,
		ReferenceID:     deref(m.ReferenceID),
		ReferenceType:   domain.ReferenceType(m.ReferenceType),
		Status:          domain.JournalStatus(m.Status),
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalLine converts a domain JournalLine to a model JournalLine
func ToModelJournalLine(d domain.JournalLine, lineNo int) models.JournalLine {
	return models.JournalLine{
		LineID:      d.LineID,
		JournalID:   d.JournalID,
		LineNo:      lineNo,
		AccountID:   d.AccountID,
		AccountCode: d.AccountCode,
		Debit:       d.Debit,
		Credit:      d.Credit,
		Description: nullable(d.Description),
		EntityType:  nullable(d.EntityType),
		EntityID:    nullable(d.EntityID),
	}
}

// ToDomainJournalLine converts a model JournalLine to a domain JournalLine
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:      m.LineID,
		JournalID:   m.JournalID,
		AccountID:   m.AccountID,
		AccountCode: m.AccountCode,
		Debit:       m.Debit,
		Credit:      m.Credit,
		Description: deref(m.Description),
		EntityType:  deref(m.EntityType),
		EntityID:    deref(m.EntityID),
	}
}
