package cart

import "github.com/shopspring/decimal"

// Totals is the derived money summary of a cart. Amounts carry two decimal
// digits, matching what gets persisted and displayed.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// ComputeTotals derives subtotal, tax and total from the given line items.
// taxRate is a fraction, e.g. 0.18 for the 18% ITBIS. The computation is a
// pure function of its inputs so it can never go stale against the cart.
func ComputeTotals(items []LineItem, taxRate decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, li := range items {
		subtotal = subtotal.Add(li.Subtotal())
	}
	subtotal = subtotal.Round(2)
	tax := subtotal.Mul(taxRate).Round(2)
	total := subtotal.Add(tax).Round(2)
	return Totals{Subtotal: subtotal, Tax: tax, Total: total}
}
