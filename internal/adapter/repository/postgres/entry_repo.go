package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/tavola/ledger/internal/domain"
	"github.com/tavola/ledger/internal/infrastructure/postgres/generated"
	"github.com/tavola/ledger/internal/usecase"
)

// EntryRepository implements usecase.EntryRepository over the
// append-only entry and line tables.
type EntryRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create persists an entry with all of its lines inside the
// transaction. Lines are never written outside their entry.
func (r *EntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	var metadata []byte
	if entry.Metadata != nil {
		var err error

		metadata, err = json.Marshal(entry.Metadata)
		if err != nil {
			return err
		}
	}

	_, err := queries.CreateLedgerEntry(ctx, generated.CreateLedgerEntryParams{
		ID:              entry.ID,
		TransactionType: entry.TransactionType,
		ReferenceType:   stringToPgText(entry.ReferenceType),
		ReferenceID:     stringToPgText(entry.ReferenceID),
		OccurredAt:      timeToPgTimestamptz(entry.OccurredAt),
		Metadata:        metadata,
		CreatedAt:       timeToPgTimestamptz(entry.CreatedAt),
	})
	if err != nil {
		return err
	}

	for _, line := range entry.Lines {
		err := queries.CreateLedgerEntryLine(ctx, generated.CreateLedgerEntryLineParams{
			ID:        line.ID,
			EntryID:   line.EntryID,
			AccountID: line.AccountID,
			Debit:     decimalToNumeric(line.Debit),
			Credit:    decimalToNumeric(line.Credit),
			Memo:      stringToPgText(line.Memo),
		})
		if err != nil {
			return err
		}
	}

	return nil
}

// GetByID retrieves an entry with its lines.
func (r *EntryRepository) GetByID(ctx context.Context, id string) (*domain.LedgerEntry, error) {
	row, err := r.queries.GetLedgerEntryByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}

		return nil, err
	}

	entry, err := rowToEntry(row)
	if err != nil {
		return nil, err
	}

	lineRows, err := r.queries.GetLinesByEntryID(ctx, id)
	if err != nil {
		return nil, err
	}

	for _, lineRow := range lineRows {
		entry.Lines = append(entry.Lines, rowToLine(lineRow))
	}

	return entry, nil
}

// Find returns entries matching the filter, newest first, with their
// lines attached in one batch read.
func (r *EntryRepository) Find(ctx context.Context, filter domain.EntryFilter) ([]*domain.LedgerEntry, error) {
	rows, err := r.queries.FindLedgerEntries(ctx, generated.FindLedgerEntriesParams{
		AccountID:       filter.AccountID,
		TransactionType: filter.TransactionType,
		ReferenceType:   filter.ReferenceType,
		ReferenceID:     filter.ReferenceID,
		OccurredFrom:    timePtrToPgTimestamptz(filter.From),
		OccurredTo:      timePtrToPgTimestamptz(filter.To),
		Limit:           int32(filter.Limit),
		Offset:          int32(filter.Offset),
	})
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, nil
	}

	entries := make([]*domain.LedgerEntry, 0, len(rows))
	index := make(map[string]*domain.LedgerEntry, len(rows))
	ids := make([]string, 0, len(rows))

	for _, row := range rows {
		entry, err := rowToEntry(row)
		if err != nil {
			return nil, err
		}

		entries = append(entries, entry)
		index[entry.ID] = entry
		ids = append(ids, entry.ID)
	}

	lineRows, err := r.queries.GetLinesByEntryIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, lineRow := range lineRows {
		if entry, ok := index[lineRow.EntryID]; ok {
			entry.Lines = append(entry.Lines, rowToLine(lineRow))
		}
	}

	return entries, nil
}

// SumBalance returns sum(debit) - sum(credit) for the account up to
// asOf. No lines yields zero.
func (r *EntryRepository) SumBalance(ctx context.Context, accountID string, asOf *time.Time) (decimal.Decimal, error) {
	row, err := r.queries.SumAccountLines(ctx, generated.SumAccountLinesParams{
		AccountID: accountID,
		AsOf:      timePtrToPgTimestamptz(asOf),
	})
	if err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(row.DebitSum).Sub(numericToDecimal(row.CreditSum)), nil
}

// SumsByAccount batch-aggregates line totals per account inside the
// transaction's snapshot.
func (r *EntryRepository) SumsByAccount(ctx context.Context, tx usecase.Transaction, asOf *time.Time) ([]usecase.AccountSums, error) {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	rows, err := queries.SumLinesByAccount(ctx, timePtrToPgTimestamptz(asOf))
	if err != nil {
		return nil, err
	}

	sums := make([]usecase.AccountSums, 0, len(rows))
	for _, row := range rows {
		sums = append(sums, usecase.AccountSums{
			AccountID: row.AccountID,
			DebitSum:  numericToDecimal(row.DebitSum),
			CreditSum: numericToDecimal(row.CreditSum),
		})
	}

	return sums, nil
}

// TrialBalance reports per-account totals as of the date, every
// account included even when it has no qualifying lines.
func (r *EntryRepository) TrialBalance(ctx context.Context, date time.Time) ([]domain.TrialBalanceRow, error) {
	rows, err := r.queries.TrialBalance(ctx, timeToPgTimestamptz(date))
	if err != nil {
		return nil, err
	}

	out := make([]domain.TrialBalanceRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.TrialBalanceRow{
			AccountID:   row.ID,
			AccountCode: row.Code,
			AccountName: row.Name,
			AccountType: domain.AccountType(row.Type),
			DebitTotal:  numericToDecimal(row.DebitTotal),
			CreditTotal: numericToDecimal(row.CreditTotal),
		})
	}

	return out, nil
}

// SystemTotals returns the ledger-wide debit and credit column sums.
func (r *EntryRepository) SystemTotals(ctx context.Context) (decimal.Decimal, decimal.Decimal, error) {
	row, err := r.queries.SystemTotals(ctx)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	return numericToDecimal(row.DebitTotal), numericToDecimal(row.CreditTotal), nil
}

func rowToEntry(row generated.LedgerEntry) (*domain.LedgerEntry, error) {
	var metadata map[string]any
	if len(row.Metadata) > 0 {
		if err := json.Unmarshal(row.Metadata, &metadata); err != nil {
			return nil, err
		}
	}

	entry := &domain.LedgerEntry{
		ID:              row.ID,
		TransactionType: row.TransactionType,
		OccurredAt:      row.OccurredAt.Time,
		Metadata:        metadata,
		CreatedAt:       row.CreatedAt.Time,
	}

	if row.ReferenceType.Valid {
		entry.ReferenceType = row.ReferenceType.String
	}
	if row.ReferenceID.Valid {
		entry.ReferenceID = row.ReferenceID.String
	}

	return entry, nil
}

func rowToLine(row generated.LedgerEntryLine) *domain.LedgerEntryLine {
	line := &domain.LedgerEntryLine{
		ID:        row.ID,
		EntryID:   row.EntryID,
		AccountID: row.AccountID,
		Debit:     numericToDecimal(row.Debit),
		Credit:    numericToDecimal(row.Credit),
	}

	if row.Memo.Valid {
		line.Memo = row.Memo.String
	}

	return line
}
