package domain

import (
	"encoding/json"
	"time"
)

// AuditLog represents an audit trail entry for compliance and debugging
type AuditLog struct {
	ID           string
	Action       string // What action (entry.post, account.create, etc.)
	ResourceType string // Type of resource (ledger_entry, account)
	ResourceID   string // ID of the resource
	RequestID    string // Request ID for tracing
	Payload      JSON   // Action-specific detail
	Status       string // success, failure, error
	ErrorMessage string // If status=error, the error message
	CreatedAt    time.Time
}

// JSON is a type alias for JSON data
type JSON map[string]any

// AuditAction represents different types of auditable actions
type AuditAction string

const (
	// Account actions
	AuditActionAccountCreate AuditAction = "account.create"
	AuditActionAccountUpdate AuditAction = "account.update"

	// Posting actions
	AuditActionEntryPost AuditAction = "entry.post"
)

// Audit statuses
const (
	AuditStatusSuccess = "success"
	AuditStatusFailure = "failure"
	AuditStatusError   = "error"
)

// AuditFilter narrows audit log queries.
type AuditFilter struct {
	Action       string
	ResourceType string
	ResourceID   string
	From         *time.Time
	To           *time.Time
	Limit        int
	Offset       int
}

// MarshalPayload serializes the payload for storage.
func (a *AuditLog) MarshalPayload() ([]byte, error) {
	if a.Payload == nil {
		return nil, nil
	}

	return json.Marshal(a.Payload)
}
