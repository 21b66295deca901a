package domain

import "time"

// Event types
const (
	EventTypeEntryPosted    = "ledger.entry.posted"
	EventTypeAccountCreated = "account.created"
)

// Aggregate types
const (
	AggregateTypeEntry   = "ledger_entry"
	AggregateTypeAccount = "account"
)

// OutboxEvent represents an event to be published
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// EntryPostedEvent payload
type EntryPostedEvent struct {
	EntryID         string `json:"entry_id"`
	TransactionType string `json:"transaction_type"`
	ReferenceType   string `json:"reference_type"`
	ReferenceID     string `json:"reference_id"`
	TotalDebit      string `json:"total_debit"`
	TotalCredit     string `json:"total_credit"`
	LineCount       int    `json:"line_count"`
	OccurredAt      string `json:"occurred_at"`
}

// AccountCreatedEvent payload
type AccountCreatedEvent struct {
	AccountID string `json:"account_id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	Type      string `json:"type"`
}
