package postgres

import (
	"github.com/oklog/ulid/v2"
)

// ULIDGenerator mints entry, account and event ids. ULIDs sort by
// creation time, which keeps the entry id order aligned with posting
// order in range scans.
type ULIDGenerator struct{}

// NewULIDGenerator creates a new ULIDGenerator.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{}
}

// Generate returns a new ULID string.
func (g *ULIDGenerator) Generate() string {
	return ulid.Make().String()
}
