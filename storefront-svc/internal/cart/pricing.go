package cart

const (
	DeliveryFee    int64 = 40
	TaxRatePercent int64 = 5
)

type Breakdown struct {
	Subtotal    int64 `json:"subtotal"`
	DeliveryFee int64 `json:"delivery_fee"`
	Taxes       int64 `json:"taxes"`
	Total       int64 `json:"total"`
}

func Subtotal(lines []Line) int64 {
	var subtotal int64
	for _, line := range lines {
		subtotal += line.MenuItem.Price * int64(line.Quantity)
	}
	return subtotal
}

// Taxes rounds half up on the whole subtotal, never per line.
func Taxes(subtotal int64) int64 {
	return (subtotal*TaxRatePercent + 50) / 100
}

func PriceBreakdown(lines []Line) Breakdown {
	subtotal := Subtotal(lines)
	taxes := Taxes(subtotal)
	return Breakdown{
		Subtotal:    subtotal,
		DeliveryFee: DeliveryFee,
		Taxes:       taxes,
		Total:       subtotal + DeliveryFee + taxes,
	}
}
