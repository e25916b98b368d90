package cart

import "github.com/shopspring/decimal"

type SummaryItem struct {
	ProductID   int64
	DisplayName string
	Quantity    int
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}

type Summary struct {
	Items      []SummaryItem
	TotalPrice decimal.Decimal
	TotalItems int
}

// Summarize computes line totals, the total price rounded to cents and the number of items.
func Summarize(cart *Cart) Summary {
	summary := Summary{
		Items:      []SummaryItem{},
		TotalPrice: decimal.Zero,
	}

	total := decimal.Zero
	for line := range cart.All() {
		lineTotal := line.LineTotal()
		summary.Items = append(summary.Items, SummaryItem{
			ProductID:   line.ProductID,
			DisplayName: line.DisplayName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			LineTotal:   lineTotal,
		})
		total = total.Add(lineTotal)
		summary.TotalItems += line.Quantity
	}
	summary.TotalPrice = total.Round(2)

	return summary
}
