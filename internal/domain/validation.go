package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidAccountCode = errors.New("invalid account code")
	ErrInvalidAccountName = errors.New("invalid account name")
	ErrAmountTooLarge     = errors.New("amount exceeds maximum allowed")
	ErrMetadataTooLarge   = errors.New("metadata size exceeds limit")
	ErrInvalidReference   = errors.New("invalid reference")
)

// Validation constants
const (
	MaxAccountNameLength = 255
	MinAccountNameLength = 1
	MaxMemoLength        = 500
	MaxMetadataSize      = 10240           // 10KB
	MaxLineAmount        = "1000000000000" // 1 trillion
	MaxReferenceLength   = 64
)

// Account codes follow the chart convention: digits, optionally
// dot-separated segments (e.g. "1000", "1400.2").
var accountCodeRegex = regexp.MustCompile(`^\d{1,8}(\.\d{1,4})*$`)

// ValidateAccountCode validates an account code.
func ValidateAccountCode(code string) error {
	code = strings.TrimSpace(code)

	if code == "" {
		return fmt.Errorf("%w: code cannot be empty", ErrInvalidAccountCode)
	}

	if !accountCodeRegex.MatchString(code) {
		return fmt.Errorf("%w: %q", ErrInvalidAccountCode, code)
	}

	return nil
}

// ValidateAccountName validates an account name.
func ValidateAccountName(name string) error {
	name = strings.TrimSpace(name)

	if len(name) < MinAccountNameLength {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidAccountName)
	}

	if len(name) > MaxAccountNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidAccountName, MaxAccountNameLength)
	}

	return nil
}

// ValidateLineAmount validates a single line amount.
func ValidateLineAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	maxAmount, _ := decimal.NewFromString(MaxLineAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum is %s", ErrAmountTooLarge, MaxLineAmount)
	}

	return nil
}

// ValidateReference validates a reference type or id string. References
// are opaque caller data and optional; an empty reference is valid.
func ValidateReference(ref string) error {
	if len(ref) > MaxReferenceLength {
		return fmt.Errorf("%w: reference exceeds %d characters", ErrInvalidReference, MaxReferenceLength)
	}

	return nil
}

// ValidateMetadataSize validates serialized metadata size.
func ValidateMetadataSize(serialized []byte) error {
	if len(serialized) > MaxMetadataSize {
		return fmt.Errorf("%w: %d bytes exceeds %d", ErrMetadataTooLarge, len(serialized), MaxMetadataSize)
	}

	return nil
}
