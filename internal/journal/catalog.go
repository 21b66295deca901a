package journal

import (
	"fmt"
	"sort"

	"github.com/tavola/ledger/internal/domain"
)

// Catalog is the static table of journal event templates, loaded once at
// startup. It is configuration, not runtime state: nothing mutates it
// after construction.
type Catalog struct {
	templates map[string]*Template
	names     []string
}

// NewCatalog builds a catalog from templates. Duplicate names are a
// configuration error.
func NewCatalog(templates []*Template) (*Catalog, error) {
	c := &Catalog{templates: make(map[string]*Template, len(templates))}

	for _, tpl := range templates {
		if _, exists := c.templates[tpl.Name]; exists {
			return nil, fmt.Errorf("duplicate journal event template %q", tpl.Name)
		}

		c.templates[tpl.Name] = tpl
		c.names = append(c.names, tpl.Name)
	}

	sort.Strings(c.names)

	return c, nil
}

// NewDefaultCatalog builds the catalog with the standard event families.
func NewDefaultCatalog() *Catalog {
	c, err := NewCatalog(DefaultTemplates())
	if err != nil {
		// Default templates are compile-time data; a duplicate name is a bug.
		panic(err)
	}

	return c
}

// Get returns the named template.
func (c *Catalog) Get(name string) (*Template, error) {
	tpl, ok := c.templates[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownTemplate, name)
	}

	return tpl, nil
}

// Names lists template names in sorted order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)

	return out
}

// DefaultTemplates is the standard rule table covering the order-to-cash
// and procure-to-pay cycles. Account keys are chart codes; see the
// seeded chart of accounts for the code/name mapping.
func DefaultTemplates() []*Template {
	return []*Template{
		// Order-To-Cash (OTC) cycle

		// 1) Order prepayment and customer deposits.
		// Bag keys: prepayment
		{
			Name:            "order_prepayment",
			TransactionType: "prepayment",
			Rules: []Rule{
				{AccountKey: "1000", Side: domain.SideDebit, Expr: "${prepayment}", Memo: "Customer prepayment"},
				{AccountKey: "2300", Side: domain.SideCredit, Expr: "${prepayment}", Memo: "Liability for unearned revenue"},
			},
		},

		// 2) COGS at fulfillment.
		// Bag keys: cogs_total
		{
			Name:            "cogs_on_fulfillment",
			TransactionType: "cogs",
			Rules: []Rule{
				{AccountKey: "5100", Side: domain.SideDebit, Expr: "${cogs_total}", Memo: "COGS"},
				{AccountKey: "1400", Side: domain.SideCredit, Expr: "${cogs_total}", Memo: "Inventory relief"},
			},
		},

		// 3) Recognize revenue at fulfillment.
		// Bag keys: revenue, tax_total, shipping_revenue, tip_total
		{
			Name:            "unbilled_ar_on_fulfillment",
			TransactionType: "revenue",
			Rules: []Rule{
				{AccountKey: "1320", Side: domain.SideDebit, Expr: "${revenue} + ${tax_total} + ${shipping_revenue} + ${tip_total}", Memo: "Recognize receivable at fulfillment"},
				{AccountKey: "4100", Side: domain.SideCredit, Expr: "${revenue}", Memo: "Food revenue"},
				{AccountKey: "4180", Side: domain.SideCredit, Expr: "${shipping_revenue}", Memo: "Shipping income", When: "${shipping_revenue} != 0"},
				{AccountKey: "2400", Side: domain.SideCredit, Expr: "${tax_total}", Memo: "Sales tax liability", When: "${tax_total} != 0"},
				{AccountKey: "2450", Side: domain.SideCredit, Expr: "${tip_total}", Memo: "Tips payable", When: "${tip_total} != 0"},
			},
		},

		// 4) Reclass unbilled AR to open AR at invoicing.
		// Bag keys: invoice_total, apply_prepayment (<= invoice_total)
		{
			Name:            "invoice_reclass_unbilled_to_ar",
			TransactionType: "reclass",
			Rules: []Rule{
				{AccountKey: "1100", Side: domain.SideDebit, Expr: "${invoice_total}", Memo: "Create AR"},
				{AccountKey: "1320", Side: domain.SideCredit, Expr: "${invoice_total}", Memo: "Clear Unbilled AR"},
				{AccountKey: "2300", Side: domain.SideDebit, Expr: "${apply_prepayment}", Memo: "Apply deposit", When: "${apply_prepayment} != 0"},
				{AccountKey: "1100", Side: domain.SideCredit, Expr: "${apply_prepayment}", Memo: "Reduce AR by deposit", When: "${apply_prepayment} != 0"},
			},
		},

		// 5) Payment application against open AR.
		// Bag keys: amount
		{
			Name:            "invoice_payment",
			TransactionType: "payment",
			Rules: []Rule{
				{AccountKey: "1000", Side: domain.SideDebit, Expr: "${amount}", Memo: "Customer payment"},
				{AccountKey: "1100", Side: domain.SideCredit, Expr: "${amount}", Memo: "Reduce AR by payment"},
			},
		},

		// 6) Inventory spoilage and waste.
		// Bag keys: spoilage_cost
		{
			Name:            "inventory_spoilage",
			TransactionType: "adjustment",
			Rules: []Rule{
				{AccountKey: "5200", Side: domain.SideDebit, Expr: "${spoilage_cost}", Memo: "Spoilage"},
				{AccountKey: "1400", Side: domain.SideCredit, Expr: "${spoilage_cost}", Memo: "Inventory write-down"},
			},
		},

		// 7) Refunds post-fulfillment. Contra revenue plus reversal of
		// tax/tip/shipping liabilities; optional inventory put-back when
		// the goods come back resellable.
		// Bag keys: refund_amount, tax_refund, tip_refund,
		// shipping_refund, reverse_cogs (0/1), cogs_reversal
		{
			Name:            "refund",
			TransactionType: "refund",
			Rules: []Rule{
				{AccountKey: "4500", Side: domain.SideDebit, Expr: "${refund_amount}", Memo: "Contra revenue"},
				{AccountKey: "2400", Side: domain.SideDebit, Expr: "${tax_refund}", Memo: "Reverse tax liability", When: "${tax_refund} != 0"},
				{AccountKey: "2450", Side: domain.SideDebit, Expr: "${tip_refund}", Memo: "Return tips liability", When: "${tip_refund} != 0"},
				{AccountKey: "4180", Side: domain.SideDebit, Expr: "${shipping_refund}", Memo: "Reverse shipping income", When: "${shipping_refund} != 0"},
				{AccountKey: "1000", Side: domain.SideCredit, Expr: "${refund_amount} + ${tax_refund} + ${tip_refund} + ${shipping_refund}", Memo: "Cash out"},
				{AccountKey: "1400", Side: domain.SideDebit, Expr: "${cogs_reversal}", Memo: "Inventory returned", When: "${reverse_cogs} != 0"},
				{AccountKey: "5100", Side: domain.SideCredit, Expr: "${cogs_reversal}", Memo: "Reverse COGS", When: "${reverse_cogs} != 0"},
			},
		},

		// Procure-To-Pay (PTP) cycle

		// 1) Stock receipt.
		// Bag keys: receipt_total
		{
			Name:            "stock_receipt",
			TransactionType: "stock_receipt",
			Rules: []Rule{
				{AccountKey: "1400", Side: domain.SideDebit, Expr: "${receipt_total}", Memo: "Inventory received"},
				{AccountKey: "1350", Side: domain.SideCredit, Expr: "${receipt_total}", Memo: "Goods received not invoiced"},
			},
		},

		// 2) Invoice match and cost realization.
		// Bag keys: gr_total, invoice_total, variance
		// (invoice_total = gr_total + variance keeps the entry balanced)
		{
			Name:            "vendor_invoice_matched",
			TransactionType: "invoice_match",
			Rules: []Rule{
				{AccountKey: "1350", Side: domain.SideDebit, Expr: "${gr_total}", Memo: "Clear goods received not invoiced"},
				{AccountKey: "2100", Side: domain.SideCredit, Expr: "${invoice_total}", Memo: "Vendor payable"},
				{AccountKey: "5300", Side: domain.SideDebit, Expr: "${variance}", Memo: "Purchase price variance", When: "${variance} != 0"},
			},
		},

		// 3) Vendor payment.
		// Bag keys: amount
		{
			Name:            "vendor_payment",
			TransactionType: "payment",
			Rules: []Rule{
				{AccountKey: "2100", Side: domain.SideDebit, Expr: "${amount}", Memo: "Settle vendor payable"},
				{AccountKey: "1000", Side: domain.SideCredit, Expr: "${amount}", Memo: "Cash out"},
			},
		},
	}
}
