package mapping

import (
	"github.com/SscSPs/marketplace_ledger/internal/core/domain"
	"github.com/SscSPs/marketplace_ledger/internal/models"
)

// ToModelMarketplaceTransaction converts a saga row to its model
func ToModelMarketplaceTransaction(d domain.MarketplaceTransaction) models.MarketplaceTransaction {
	return models.MarketplaceTransaction{
		TransactionID:       d.TransactionID,
		TenantID:            d.TenantID,
		Type:                string(d.Type),
		Status:              string(d.Status),
		JournalID:           d.JournalID,
		SettlementJournalID: d.SettlementJournalID,
		ReversalJournalID:   d.ReversalJournalID,
		ReferenceID:         d.ReferenceID,
		EntityID:            d.EntityID,
		Amount:              d.Amount,
		IdempotencyKey:      d.IdempotencyKey,
		CreatedBy:           d.CreatedBy,
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
		FulfilledAt:         d.FulfilledAt,
		SettledAt:           d.SettledAt,
		ReversedAt:          d.ReversedAt,
		ReversalReason:      d.ReversalReason,
	}
}

// ToDomainMarketplaceTransaction converts a model row to a saga row
func ToDomainMarketplaceTransaction(m models.MarketplaceTransaction) domain.MarketplaceTransaction {
	return domain.MarketplaceTransaction{
		TransactionID:       m.TransactionID,
		TenantID:            m.TenantID,
		Type:                domain.ChannelType(m.Type),
		Status:              domain.TransactionStatus(m.Status),
		JournalID:           m.JournalID,
		SettlementJournalID: m.SettlementJournalID,
		ReversalJournalID:   m.ReversalJournalID,
		ReferenceID:         m.ReferenceID,
		EntityID:            m.EntityID,
		Amount:              m.Amount,
		IdempotencyKey:      m.IdempotencyKey,
		CreatedBy:           m.CreatedBy,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
		FulfilledAt:         m.FulfilledAt,
		SettledAt:           m.SettledAt,
		ReversedAt:          m.ReversedAt,
		ReversalReason:      m.ReversalReason,
	}
}
