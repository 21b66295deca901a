package domain

import "errors"

var (
	// Account errors
	ErrUnknownAccount     = errors.New("unknown account")
	ErrAccountExists      = errors.New("account code already exists")
	ErrAccountCycle       = errors.New("account hierarchy contains a cycle")
	ErrInvalidAccountType = errors.New("invalid account type")

	// Journal errors
	ErrUnknownTemplate = errors.New("unknown journal event template")

	// Posting errors
	ErrUnbalancedEntry = errors.New("entry is unbalanced: debits do not equal credits")
	ErrInvalidLine     = errors.New("line must set exactly one of debit or credit")
	ErrInvalidAmount   = errors.New("amount must be positive")
	ErrEntryNotFound   = errors.New("ledger entry not found")
)
