package postgres

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tavola/ledger/internal/domain"
	"github.com/tavola/ledger/internal/infrastructure/postgres/generated"
	"github.com/tavola/ledger/internal/usecase"
)

// AuditRepository implements usecase.AuditRepository.
type AuditRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create records an audit log outside any transaction.
func (r *AuditRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	return createAuditLog(ctx, r.queries, log)
}

// CreateTx records an audit log inside the transaction so the record
// commits or rolls back with the operation it describes.
func (r *AuditRepository) CreateTx(ctx context.Context, tx usecase.Transaction, log *domain.AuditLog) error {
	pgxTx := tx.(*Tx).PgxTx()

	return createAuditLog(ctx, generated.New(pgxTx), log)
}

// List returns audit logs matching the filter, newest first.
func (r *AuditRepository) List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.queries.ListAuditLogs(ctx, generated.ListAuditLogsParams{
		Action:       filter.Action,
		ResourceType: filter.ResourceType,
		ResourceID:   filter.ResourceID,
		CreatedFrom:  timePtrToPgTimestamptz(filter.From),
		CreatedTo:    timePtrToPgTimestamptz(filter.To),
		Limit:        int32(limit),
		Offset:       int32(filter.Offset),
	})
	if err != nil {
		return nil, err
	}

	logs := make([]*domain.AuditLog, 0, len(rows))
	for _, row := range rows {
		log, err := rowToAuditLog(row)
		if err != nil {
			return nil, err
		}

		logs = append(logs, log)
	}

	return logs, nil
}

func createAuditLog(ctx context.Context, queries *generated.Queries, log *domain.AuditLog) error {
	var payload []byte
	if log.Payload != nil {
		var err error

		payload, err = json.Marshal(log.Payload)
		if err != nil {
			return err
		}
	}

	return queries.CreateAuditLog(ctx, generated.CreateAuditLogParams{
		ID:           log.ID,
		Action:       log.Action,
		ResourceType: log.ResourceType,
		ResourceID:   log.ResourceID,
		RequestID:    stringToPgText(log.RequestID),
		Payload:      payload,
		Status:       log.Status,
		ErrorMessage: stringToPgText(log.ErrorMessage),
		CreatedAt:    timeToPgTimestamptz(log.CreatedAt),
	})
}

func rowToAuditLog(row generated.AuditLog) (*domain.AuditLog, error) {
	var payload domain.JSON
	if len(row.Payload) > 0 {
		if err := json.Unmarshal(row.Payload, &payload); err != nil {
			return nil, err
		}
	}

	log := &domain.AuditLog{
		ID:           row.ID,
		Action:       row.Action,
		ResourceType: row.ResourceType,
		ResourceID:   row.ResourceID,
		Payload:      payload,
		Status:       row.Status,
		CreatedAt:    row.CreatedAt.Time,
	}

	if row.RequestID.Valid {
		log.RequestID = row.RequestID.String
	}
	if row.ErrorMessage.Valid {
		log.ErrorMessage = row.ErrorMessage.String
	}

	return log, nil
}
