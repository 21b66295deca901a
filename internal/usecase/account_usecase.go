package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/tavola/ledger/internal/domain"
)

// AccountUseCase handles chart-of-accounts business logic: the account
// directory for posting resolution plus chart setup.
type AccountUseCase struct {
	accountRepo AccountRepository
	auditRepo   AuditRepository
	idGen       IDGenerator
	txManager   TransactionManager
	outboxRepo  OutboxRepository
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(accountRepo AccountRepository, auditRepo AuditRepository, idGen IDGenerator) *AccountUseCase {
	return &AccountUseCase{
		accountRepo: accountRepo,
		auditRepo:   auditRepo,
		idGen:       idGen,
	}
}

// WithOutbox enables account.created events. Audit logs and events for
// account mutations are best effort; the account itself is the source
// of truth.
func (uc *AccountUseCase) WithOutbox(txManager TransactionManager, outboxRepo OutboxRepository) *AccountUseCase {
	uc.txManager = txManager
	uc.outboxRepo = outboxRepo
	return uc
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	Code      string
	Name      string
	Type      domain.AccountType
	ParentKey string
}

// CreateAccount creates a new chart-of-accounts node.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	now := time.Now().UTC()

	account := &domain.Account{
		ID:        uc.idGen.Generate(),
		Code:      strings.TrimSpace(input.Code),
		Name:      strings.TrimSpace(input.Name),
		Type:      input.Type,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if input.ParentKey != "" {
		parent, err := uc.Resolve(ctx, input.ParentKey)
		if err != nil {
			return nil, err
		}

		account.ParentID = &parent.ID
	}

	if err := account.Validate(); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	if uc.auditRepo != nil {
		_ = uc.auditRepo.Create(ctx, &domain.AuditLog{
			ID:           uc.idGen.Generate(),
			Action:       string(domain.AuditActionAccountCreate),
			ResourceType: domain.AggregateTypeAccount,
			ResourceID:   account.ID,
			Payload:      domain.JSON{"code": account.Code, "name": account.Name, "type": string(account.Type)},
			Status:       domain.AuditStatusSuccess,
			CreatedAt:    now,
		})
	}

	uc.emitCreated(ctx, account, now)

	return account, nil
}

func (uc *AccountUseCase) emitCreated(ctx context.Context, account *domain.Account, now time.Time) {
	if uc.txManager == nil || uc.outboxRepo == nil {
		return
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return
	}
	defer tx.Rollback(ctx)

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   account.ID,
		AggregateType: domain.AggregateTypeAccount,
		EventType:     domain.EventTypeAccountCreated,
		Payload: map[string]any{
			"account_id": account.ID,
			"code":       account.Code,
			"name":       account.Name,
			"type":       string(account.Type),
		},
		CreatedAt: now,
	}

	if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
		return
	}

	_ = tx.Commit(ctx)
}

// Resolve resolves a key against the account directory: first as a
// chart code, then as an account name.
func (uc *AccountUseCase) Resolve(ctx context.Context, key string) (*domain.Account, error) {
	return uc.accountRepo.GetByKey(ctx, strings.TrimSpace(key))
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, id)
}

// ListAccountsInput represents input for listing accounts.
type ListAccountsInput struct {
	Limit  int
	Offset int
}

// ListAccounts lists accounts with pagination.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, input ListAccountsInput) ([]*domain.Account, error) {
	if input.Limit <= 0 {
		input.Limit = 50
	}
	if input.Limit > 500 {
		input.Limit = 500
	}
	return uc.accountRepo.List(ctx, input.Limit, input.Offset)
}

// SetParent re-parents an account, refusing moves that would create a
// cycle in the hierarchy.
func (uc *AccountUseCase) SetParent(ctx context.Context, accountKey, parentKey string) (*domain.Account, error) {
	account, err := uc.Resolve(ctx, accountKey)
	if err != nil {
		return nil, err
	}

	var parentID *string

	if parentKey != "" {
		parent, err := uc.Resolve(ctx, parentKey)
		if err != nil {
			return nil, err
		}

		// Walk the would-be ancestor chain; hitting the account again
		// means the move would close a cycle.
		cursor := parent
		for cursor != nil {
			if cursor.ID == account.ID {
				return nil, domain.ErrAccountCycle
			}

			if cursor.ParentID == nil {
				break
			}

			cursor, err = uc.accountRepo.GetByID(ctx, *cursor.ParentID)
			if err != nil {
				return nil, err
			}
		}

		parentID = &parent.ID
	}

	now := time.Now().UTC()
	if err := uc.accountRepo.UpdateParent(ctx, account.ID, parentID, now); err != nil {
		return nil, err
	}

	account.ParentID = parentID
	account.UpdatedAt = now

	return account, nil
}
