// Package expr evaluates the restricted arithmetic grammar used by
// journal event templates. Expressions reference named amounts with
// ${name} tokens and support + - * /, unary minus, parentheses and the
// comparators == != > >= < <=. The evaluator never executes
// caller-supplied code; it is a tokenizer plus a recursive descent
// parser operating on exact decimals.
package expr

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/tavola/ledger/internal/domain"
)

var (
	// ErrSyntax indicates a malformed expression.
	ErrSyntax = errors.New("expression syntax error")
	// ErrMissingKey indicates a ${name} reference absent from the bag.
	ErrMissingKey = errors.New("missing amount key")
	// ErrDivisionByZero indicates a division whose divisor evaluated to zero.
	ErrDivisionByZero = errors.New("division by zero")
)

// EvalAmount evaluates expression against bag and returns the exact
// decimal result. Comparison sub-expressions evaluate to 1 or 0.
func EvalAmount(expression string, bag domain.AmountsBag) (decimal.Decimal, error) {
	p, err := newParser(expression, bag)
	if err != nil {
		return decimal.Zero, err
	}

	result, err := p.parseComparison()
	if err != nil {
		return decimal.Zero, err
	}

	if p.peek().kind != tokenEOF {
		return decimal.Zero, fmt.Errorf("%w: unexpected %q in %q", ErrSyntax, p.peek().text, expression)
	}

	return result, nil
}

// EvalCondition evaluates expression and applies numeric truthiness:
// any non-zero result is true.
func EvalCondition(expression string, bag domain.AmountsBag) (bool, error) {
	result, err := EvalAmount(expression, bag)
	if err != nil {
		return false, err
	}

	return !result.IsZero(), nil
}

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenNumber
	tokenRef
	tokenOp
	tokenLParen
	tokenRParen
)

type token struct {
	kind tokenKind
	text string
}

type parser struct {
	tokens []token
	pos    int
	bag    domain.AmountsBag
}

func newParser(expression string, bag domain.AmountsBag) (*parser, error) {
	tokens, err := tokenize(expression)
	if err != nil {
		return nil, err
	}

	return &parser{tokens: tokens, bag: bag}, nil
}

func tokenize(expression string) ([]token, error) {
	var tokens []token

	runes := []rune(expression)
	i := 0

	for i < len(runes) {
		r := runes[i]

		switch {
		case unicode.IsSpace(r):
			i++

		case r == '$':
			if i+1 >= len(runes) || runes[i+1] != '{' {
				return nil, fmt.Errorf("%w: expected '{' after '$' in %q", ErrSyntax, expression)
			}

			end := i + 2
			for end < len(runes) && runes[end] != '}' {
				end++
			}
			if end == len(runes) {
				return nil, fmt.Errorf("%w: unterminated ${...} in %q", ErrSyntax, expression)
			}

			name := string(runes[i+2 : end])
			if name == "" || !isIdentifier(name) {
				return nil, fmt.Errorf("%w: invalid reference %q in %q", ErrSyntax, name, expression)
			}

			tokens = append(tokens, token{kind: tokenRef, text: name})
			i = end + 1

		case unicode.IsDigit(r) || r == '.':
			end := i
			for end < len(runes) && (unicode.IsDigit(runes[end]) || runes[end] == '.') {
				end++
			}

			text := string(runes[i:end])
			if strings.Count(text, ".") > 1 {
				return nil, fmt.Errorf("%w: malformed number %q", ErrSyntax, text)
			}

			tokens = append(tokens, token{kind: tokenNumber, text: text})
			i = end

		case r == '(':
			tokens = append(tokens, token{kind: tokenLParen, text: "("})
			i++

		case r == ')':
			tokens = append(tokens, token{kind: tokenRParen, text: ")"})
			i++

		case r == '+' || r == '-' || r == '*' || r == '/':
			tokens = append(tokens, token{kind: tokenOp, text: string(r)})
			i++

		case r == '=' || r == '!':
			if i+1 >= len(runes) || runes[i+1] != '=' {
				return nil, fmt.Errorf("%w: unexpected %q in %q", ErrSyntax, string(r), expression)
			}

			tokens = append(tokens, token{kind: tokenOp, text: string(r) + "="})
			i += 2

		case r == '>' || r == '<':
			if i+1 < len(runes) && runes[i+1] == '=' {
				tokens = append(tokens, token{kind: tokenOp, text: string(r) + "="})
				i += 2
			} else {
				tokens = append(tokens, token{kind: tokenOp, text: string(r)})
				i++
			}

		default:
			return nil, fmt.Errorf("%w: unexpected character %q in %q", ErrSyntax, string(r), expression)
		}
	}

	tokens = append(tokens, token{kind: tokenEOF})

	return tokens, nil
}

func isIdentifier(s string) bool {
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}

		return false
	}

	return true
}

func isComparator(s string) bool {
	switch s {
	case "==", "!=", ">", ">=", "<", "<=":
		return true
	}

	return false
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	t := p.tokens[p.pos]
	if t.kind != tokenEOF {
		p.pos++
	}

	return t
}

// parseComparison := sum (cmpOp sum)?
func (p *parser) parseComparison() (decimal.Decimal, error) {
	left, err := p.parseSum()
	if err != nil {
		return decimal.Zero, err
	}

	t := p.peek()
	if t.kind != tokenOp || !isComparator(t.text) {
		return left, nil
	}

	p.next()

	right, err := p.parseSum()
	if err != nil {
		return decimal.Zero, err
	}

	cmp := left.Cmp(right)

	var truth bool
	switch t.text {
	case "==":
		truth = cmp == 0
	case "!=":
		truth = cmp != 0
	case ">":
		truth = cmp > 0
	case ">=":
		truth = cmp >= 0
	case "<":
		truth = cmp < 0
	case "<=":
		truth = cmp <= 0
	}

	if truth {
		return decimal.NewFromInt(1), nil
	}

	return decimal.Zero, nil
}

// parseSum := term (("+"|"-") term)*
func (p *parser) parseSum() (decimal.Decimal, error) {
	left, err := p.parseTerm()
	if err != nil {
		return decimal.Zero, err
	}

	for {
		t := p.peek()
		if t.kind != tokenOp || (t.text != "+" && t.text != "-") {
			return left, nil
		}

		p.next()

		right, err := p.parseTerm()
		if err != nil {
			return decimal.Zero, err
		}

		if t.text == "+" {
			left = left.Add(right)
		} else {
			left = left.Sub(right)
		}
	}
}

// parseTerm := unary (("*"|"/") unary)*
func (p *parser) parseTerm() (decimal.Decimal, error) {
	left, err := p.parseUnary()
	if err != nil {
		return decimal.Zero, err
	}

	for {
		t := p.peek()
		if t.kind != tokenOp || (t.text != "*" && t.text != "/") {
			return left, nil
		}

		p.next()

		right, err := p.parseUnary()
		if err != nil {
			return decimal.Zero, err
		}

		if t.text == "*" {
			left = left.Mul(right)
		} else {
			if right.IsZero() {
				return decimal.Zero, ErrDivisionByZero
			}

			left = left.Div(right)
		}
	}
}

// parseUnary := "-" unary | primary
func (p *parser) parseUnary() (decimal.Decimal, error) {
	t := p.peek()
	if t.kind == tokenOp && t.text == "-" {
		p.next()

		value, err := p.parseUnary()
		if err != nil {
			return decimal.Zero, err
		}

		return value.Neg(), nil
	}

	return p.parsePrimary()
}

// parsePrimary := NUMBER | REF | "(" comparison ")"
func (p *parser) parsePrimary() (decimal.Decimal, error) {
	t := p.next()

	switch t.kind {
	case tokenNumber:
		value, err := decimal.NewFromString(t.text)
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: malformed number %q", ErrSyntax, t.text)
		}

		return value, nil

	case tokenRef:
		value, ok := p.bag.Get(t.text)
		if !ok {
			return decimal.Zero, fmt.Errorf("%w: %q", ErrMissingKey, t.text)
		}

		return value, nil

	case tokenLParen:
		value, err := p.parseComparison()
		if err != nil {
			return decimal.Zero, err
		}

		if closing := p.next(); closing.kind != tokenRParen {
			return decimal.Zero, fmt.Errorf("%w: missing closing parenthesis", ErrSyntax)
		}

		return value, nil

	case tokenEOF:
		return decimal.Zero, fmt.Errorf("%w: unexpected end of expression", ErrSyntax)

	default:
		return decimal.Zero, fmt.Errorf("%w: unexpected %q", ErrSyntax, t.text)
	}
}
