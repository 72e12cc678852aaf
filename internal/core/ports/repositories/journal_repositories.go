package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/marketplace_ledger/internal/core/domain"
)

// JournalReader defines read operations for journal data
type JournalReader interface {
	// FindJournalByID retrieves a journal with its lines.
	FindJournalByID(ctx context.Context, tenantID, journalID string) (*domain.Journal, error)

	// FindJournalByReference returns the first journal tagged with the reference, or apperrors.ErrNotFound.
	FindJournalByReference(ctx context.Context, tenantID string, refType domain.ReferenceType, referenceID string) (*domain.Journal, error)

	// ListJournals retrieves a page of journals, newest first, using token-based pagination.
	ListJournals(ctx context.Context, tenantID string, limit int, nextToken *string) ([]domain.Journal, *string, error)

	// CountDraftsInRange counts DRAFT journals dated within [start, end].
	CountDraftsInRange(ctx context.Context, tenantID string, start, end time.Time) (int, error)

	// SumPostedMovements totals POSTED lines per account for the filter.
	SumPostedMovements(ctx context.Context, tenantID string, filter domain.MovementFilter) (map[string]domain.AccountMovement, error)
}

// JournalWriter defines write operations for journal data
type JournalWriter interface {
	// SaveJournal persists the header and all lines as one atomic unit.
	SaveJournal(ctx context.Context, journal domain.Journal) error

	// UpdateJournalStatus flips status only if the current status equals from.
	// Zero affected rows yields apperrors.ErrConflict.
	UpdateJournalStatus(ctx context.Context, tenantID, journalID string, from, to domain.JournalStatus, actor string, at time.Time) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
