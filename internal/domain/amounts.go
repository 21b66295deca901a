package domain

import "github.com/shopspring/decimal"

// AmountsBag is the caller-supplied mapping of named amounts consumed by
// exactly one journal event template invocation. It has no persisted
// identity.
type AmountsBag map[string]decimal.Decimal

// Get returns the named amount and whether it is present. Absent keys
// are a hard error at evaluation time, never a silent zero.
func (b AmountsBag) Get(name string) (decimal.Decimal, bool) {
	v, ok := b[name]
	return v, ok
}

// AmountsBagFromStrings parses a string-keyed map of decimal strings.
// Used at the protocol boundary where amounts arrive as JSON strings.
func AmountsBagFromStrings(raw map[string]string) (AmountsBag, error) {
	bag := make(AmountsBag, len(raw))

	for name, value := range raw {
		d, err := decimal.NewFromString(value)
		if err != nil {
			return nil, err
		}

		bag[name] = d
	}

	return bag, nil
}
