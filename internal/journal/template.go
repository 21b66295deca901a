// Package journal holds the declarative journal event catalog: named,
// versionable rule sets that map a business event's amounts to balanced
// debit/credit line specs. Templates are pure configuration; evaluating
// one has no side effects.
package journal

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tavola/ledger/internal/domain"
	"github.com/tavola/ledger/internal/expr"
)

// Rule is one declarative posting rule within a template. AccountKey is
// resolved against the chart of accounts at posting time; Expr and When
// are evaluated against the caller's amounts bag.
type Rule struct {
	AccountKey string      `json:"account"`
	Side       domain.Side `json:"side"`
	Expr       string      `json:"expr"`
	When       string      `json:"when,omitempty"`
	Memo       string      `json:"memo,omitempty"`
}

// Template is a named journal event: an ordered rule table plus the
// transaction type stamped on entries it produces.
type Template struct {
	Name            string `json:"name"`
	TransactionType string `json:"transaction_type"`
	Rules           []Rule `json:"rules"`
}

// LineSpec is a resolved-but-unpersisted line produced by a template.
type LineSpec struct {
	AccountKey string
	Side       domain.Side
	Amount     decimal.Decimal
	Memo       string
}

// BuildLines evaluates the template's rules, in declared order, against
// amounts. Rules whose condition evaluates false are skipped, as are
// rules whose amount evaluates to exactly zero: zero-value lines are
// never emitted.
func (t *Template) BuildLines(amounts domain.AmountsBag) ([]LineSpec, error) {
	lines := make([]LineSpec, 0, len(t.Rules))

	for _, rule := range t.Rules {
		if rule.When != "" {
			ok, err := expr.EvalCondition(rule.When, amounts)
			if err != nil {
				return nil, fmt.Errorf("template %q rule %q condition: %w", t.Name, rule.AccountKey, err)
			}
			if !ok {
				continue
			}
		}

		amount, err := expr.EvalAmount(rule.Expr, amounts)
		if err != nil {
			return nil, fmt.Errorf("template %q rule %q amount: %w", t.Name, rule.AccountKey, err)
		}

		if amount.IsZero() {
			continue
		}

		lines = append(lines, LineSpec{
			AccountKey: rule.AccountKey,
			Side:       rule.Side,
			Amount:     amount,
			Memo:       rule.Memo,
		})
	}

	return lines, nil
}

// RequiredKeys lists the ${name} references across the template's
// expressions, in first-use order. This documents the amounts bag a
// caller must supply.
func (t *Template) RequiredKeys() []string {
	seen := make(map[string]bool)

	var keys []string
	for _, rule := range t.Rules {
		for _, key := range referencedKeys(rule.Expr) {
			if !seen[key] {
				seen[key] = true
				keys = append(keys, key)
			}
		}

		if rule.When != "" {
			for _, key := range referencedKeys(rule.When) {
				if !seen[key] {
					seen[key] = true
					keys = append(keys, key)
				}
			}
		}
	}

	return keys
}

func referencedKeys(expression string) []string {
	var keys []string

	for i := 0; i+1 < len(expression); i++ {
		if expression[i] != '$' || expression[i+1] != '{' {
			continue
		}

		end := i + 2
		for end < len(expression) && expression[end] != '}' {
			end++
		}
		if end == len(expression) {
			break
		}

		keys = append(keys, expression[i+2:end])
		i = end
	}

	return keys
}
