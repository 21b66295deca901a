package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tavola/ledger/internal/domain"
	"github.com/tavola/ledger/internal/journal"
	"github.com/tavola/ledger/internal/usecase"
)

// CreateAccountRequest represents a request to create an account.
type CreateAccountRequest struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	ParentKey string `json:"parent_key,omitempty"`
}

// ToUseCaseInput converts the request to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		Code:      r.Code,
		Name:      r.Name,
		Type:      domain.AccountType(r.Type),
		ParentKey: r.ParentKey,
	}
}

// SetParentRequest represents a request to move an account under a new
// parent. An empty parent key detaches the account to the root level.
type SetParentRequest struct {
	ParentKey string `json:"parent_key"`
}

// PostEventRequest represents a request to post a named journal event.
// Amounts are decimal strings keyed by the template's placeholder names.
type PostEventRequest struct {
	Template      string            `json:"template"`
	Amounts       map[string]string `json:"amounts"`
	ReferenceType string            `json:"reference_type,omitempty"`
	ReferenceID   string            `json:"reference_id,omitempty"`
	Metadata      map[string]any    `json:"metadata,omitempty"`
	OccurredAt    *time.Time        `json:"occurred_at,omitempty"`
}

// ToUseCaseInput converts the request to use case input.
func (r *PostEventRequest) ToUseCaseInput() (usecase.PostEventInput, error) {
	bag, err := domain.AmountsBagFromStrings(r.Amounts)
	if err != nil {
		return usecase.PostEventInput{}, err
	}

	return usecase.PostEventInput{
		Template:      r.Template,
		Amounts:       bag,
		ReferenceType: r.ReferenceType,
		ReferenceID:   r.ReferenceID,
		Metadata:      r.Metadata,
		OccurredAt:    r.OccurredAt,
	}, nil
}

// EntryLineRequest is one caller-supplied line in a direct entry.
type EntryLineRequest struct {
	AccountKey string `json:"account_key"`
	Side       string `json:"side"`
	Amount     string `json:"amount"`
	Memo       string `json:"memo,omitempty"`
}

// PostEntryRequest represents a request to post a journal entry with
// explicit lines, bypassing the template catalog.
type PostEntryRequest struct {
	TransactionType string             `json:"transaction_type"`
	Lines           []EntryLineRequest `json:"lines"`
	ReferenceType   string             `json:"reference_type,omitempty"`
	ReferenceID     string             `json:"reference_id,omitempty"`
	Metadata        map[string]any     `json:"metadata,omitempty"`
	OccurredAt      *time.Time         `json:"occurred_at,omitempty"`
}

// ToUseCaseInput converts the request to use case input.
func (r *PostEntryRequest) ToUseCaseInput() (usecase.PostEntryInput, error) {
	lines := make([]journal.LineSpec, 0, len(r.Lines))

	for i, line := range r.Lines {
		side := domain.Side(line.Side)
		if !side.Valid() {
			return usecase.PostEntryInput{}, fmt.Errorf("line %d: invalid side %q", i, line.Side)
		}

		amount, err := decimal.NewFromString(line.Amount)
		if err != nil {
			return usecase.PostEntryInput{}, fmt.Errorf("line %d: invalid amount %q", i, line.Amount)
		}

		lines = append(lines, journal.LineSpec{
			AccountKey: line.AccountKey,
			Side:       side,
			Amount:     amount,
			Memo:       line.Memo,
		})
	}

	return usecase.PostEntryInput{
		TransactionType: r.TransactionType,
		Lines:           lines,
		ReferenceType:   r.ReferenceType,
		ReferenceID:     r.ReferenceID,
		Metadata:        r.Metadata,
		OccurredAt:      r.OccurredAt,
	}, nil
}
