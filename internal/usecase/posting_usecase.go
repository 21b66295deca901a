package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/tavola/ledger/internal/domain"
	"github.com/tavola/ledger/internal/journal"
)

// PostingUseCase turns journal events into persisted, balanced ledger
// entries. The only mutating operation in the system is here: one
// posting is one database transaction spanning the entry, its lines,
// the outbox event and the audit record.
type PostingUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	entryRepo   EntryRepository
	outboxRepo  OutboxRepository
	auditRepo   AuditRepository
	catalog     *journal.Catalog
	idGen       IDGenerator
	cache       Cache
	retrier     Retrier
}

// NewPostingUseCase creates a new PostingUseCase. cache may be nil when
// the balance cache is disabled.
func NewPostingUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	entryRepo EntryRepository,
	outboxRepo OutboxRepository,
	auditRepo AuditRepository,
	catalog *journal.Catalog,
	idGen IDGenerator,
	cache Cache,
) *PostingUseCase {
	return &PostingUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
		outboxRepo:  outboxRepo,
		auditRepo:   auditRepo,
		catalog:     catalog,
		idGen:       idGen,
		cache:       cache,
	}
}

// WithRetrier enables retrying the persist transaction on transient
// database failures.
func (uc *PostingUseCase) WithRetrier(retrier Retrier) *PostingUseCase {
	uc.retrier = retrier
	return uc
}

// PostEventInput represents input for posting a named journal event.
type PostEventInput struct {
	Template      string
	Amounts       domain.AmountsBag
	ReferenceType string
	ReferenceID   string
	Metadata      map[string]any
	OccurredAt    *time.Time
}

// PostEvent resolves the named template, builds its lines from the
// amounts bag and persists the balanced entry atomically.
func (uc *PostingUseCase) PostEvent(ctx context.Context, input PostEventInput) (*domain.LedgerEntry, error) {
	tpl, err := uc.catalog.Get(input.Template)
	if err != nil {
		return nil, err
	}

	specs, err := tpl.BuildLines(input.Amounts)
	if err != nil {
		return nil, err
	}

	return uc.post(ctx, tpl.TransactionType, input.Template, specs, input.ReferenceType, input.ReferenceID, input.Metadata, input.OccurredAt)
}

// PostEntryInput represents input for posting caller-supplied lines
// directly, bypassing the template catalog.
type PostEntryInput struct {
	TransactionType string
	Lines           []journal.LineSpec
	ReferenceType   string
	ReferenceID     string
	Metadata        map[string]any
	OccurredAt      *time.Time
}

// PostEntry persists a direct journal entry. The same balance gate
// applies: unbalanced line sets are rejected with nothing persisted.
func (uc *PostingUseCase) PostEntry(ctx context.Context, input PostEntryInput) (*domain.LedgerEntry, error) {
	return uc.post(ctx, input.TransactionType, input.TransactionType, input.Lines, input.ReferenceType, input.ReferenceID, input.Metadata, input.OccurredAt)
}

func (uc *PostingUseCase) post(
	ctx context.Context,
	transactionType, templateName string,
	specs []journal.LineSpec,
	referenceType, referenceID string,
	metadata map[string]any,
	occurredAt *time.Time,
) (*domain.LedgerEntry, error) {
	if err := domain.ValidateReference(referenceType); err != nil {
		return nil, err
	}

	if err := domain.ValidateReference(referenceID); err != nil {
		return nil, err
	}

	if metadata != nil {
		serialized, err := json.Marshal(metadata)
		if err != nil {
			return nil, err
		}

		if err := domain.ValidateMetadataSize(serialized); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()

	eventAt := now
	if occurredAt != nil {
		eventAt = occurredAt.UTC()
	}

	entry := &domain.LedgerEntry{
		ID:              uc.idGen.Generate(),
		TransactionType: transactionType,
		ReferenceType:   referenceType,
		ReferenceID:     referenceID,
		OccurredAt:      eventAt,
		Metadata:        metadata,
		CreatedAt:       now,
	}

	accounts := make(map[string]*domain.Account, len(specs))

	for _, spec := range specs {
		account, ok := accounts[spec.AccountKey]
		if !ok {
			var err error

			account, err = uc.accountRepo.GetByKey(ctx, spec.AccountKey)
			if err != nil {
				return nil, err
			}

			accounts[spec.AccountKey] = account
		}

		amount := spec.Amount
		side := spec.Side

		// A negative evaluated amount posts to the opposite side, so a
		// negative purchase variance lands as a credit instead of a
		// negative debit.
		if amount.IsNegative() {
			amount = amount.Neg()
			side = oppositeSide(side)
		}

		if err := domain.ValidateLineAmount(amount); err != nil {
			return nil, err
		}

		line := &domain.LedgerEntryLine{
			ID:        uc.idGen.Generate(),
			EntryID:   entry.ID,
			AccountID: account.ID,
			Memo:      spec.Memo,
		}

		if side == domain.SideDebit {
			line.Debit = amount
		} else {
			line.Credit = amount
		}

		entry.Lines = append(entry.Lines, line)
	}

	// The balance gate: debits must equal credits exactly or the whole
	// posting is rejected before anything touches the database.
	if err := entry.Validate(); err != nil {
		return nil, err
	}

	persist := func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		if err := uc.entryRepo.Create(ctx, tx, entry); err != nil {
			return err
		}

		if uc.outboxRepo != nil {
			event := &domain.OutboxEvent{
				ID:            uc.idGen.Generate(),
				AggregateID:   entry.ID,
				AggregateType: domain.AggregateTypeEntry,
				EventType:     domain.EventTypeEntryPosted,
				Payload: map[string]any{
					"entry_id":         entry.ID,
					"transaction_type": entry.TransactionType,
					"reference_type":   entry.ReferenceType,
					"reference_id":     entry.ReferenceID,
					"total_debit":      entry.TotalDebit().String(),
					"total_credit":     entry.TotalCredit().String(),
					"line_count":       len(entry.Lines),
					"occurred_at":      entry.OccurredAt.Format(time.RFC3339),
				},
				CreatedAt: now,
			}

			if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
				return err
			}
		}

		if uc.auditRepo != nil {
			audit := &domain.AuditLog{
				ID:           uc.idGen.Generate(),
				Action:       string(domain.AuditActionEntryPost),
				ResourceType: domain.AggregateTypeEntry,
				ResourceID:   entry.ID,
				Payload: domain.JSON{
					"template":       templateName,
					"reference_type": entry.ReferenceType,
					"reference_id":   entry.ReferenceID,
					"total_debit":    entry.TotalDebit().String(),
				},
				Status:    domain.AuditStatusSuccess,
				CreatedAt: now,
			}

			if err := uc.auditRepo.CreateTx(ctx, tx, audit); err != nil {
				return err
			}
		}

		return tx.Commit(ctx)
	}

	if uc.retrier != nil {
		err := uc.retrier.Retry(ctx, persist)
		if err != nil {
			return nil, err
		}
	} else if err := persist(); err != nil {
		return nil, err
	}

	uc.invalidateBalances(ctx, entry)

	return entry, nil
}

// invalidateBalances drops cached live balances for every account the
// entry touched. Best effort: a failed delete only means one stale read
// within the cache TTL.
func (uc *PostingUseCase) invalidateBalances(ctx context.Context, entry *domain.LedgerEntry) {
	if uc.cache == nil {
		return
	}

	seen := make(map[string]bool, len(entry.Lines))
	for _, line := range entry.Lines {
		if seen[line.AccountID] {
			continue
		}

		seen[line.AccountID] = true
		_ = uc.cache.Delete(ctx, BalanceCacheKey(line.AccountID))
	}
}

// BalanceCacheKey is the cache key for an account's live balance.
func BalanceCacheKey(accountID string) string {
	return "balance:" + accountID
}

func oppositeSide(s domain.Side) domain.Side {
	if s == domain.SideDebit {
		return domain.SideCredit
	}

	return domain.SideDebit
}
