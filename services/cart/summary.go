package cart

import (
	"github.com/shopspring/decimal"
)

type ProductSummary struct {
	Product
	Subtotal string `json:"subtotal"`
}

// Summary is what the storefront shows: the cart lines with their subtotals, the number of
// distinct products for the header badge and the total price.
type Summary struct {
	CartUID  string           `json:"cartUID"`
	Products []ProductSummary `json:"products"`
	Size     int              `json:"size"`
	Total    string           `json:"total"`
}

func (s *Store) Summary() Summary {
	return Summarize(s.cartUID, s.Cart())
}

func Summarize(cartUID string, products []Product) Summary {
	total := decimal.Zero
	lines := make([]ProductSummary, 0, len(products))
	for _, p := range products {
		subtotal := decimal.NewFromFloat(p.Price).Mul(decimal.NewFromInt(int64(p.Amount)))
		total = total.Add(subtotal)
		lines = append(lines, ProductSummary{
			Product:  p,
			Subtotal: subtotal.StringFixed(2),
		})
	}

	return Summary{
		CartUID:  cartUID,
		Products: lines,
		Size:     len(products),
		Total:    total.StringFixed(2),
	}
}
