package stock

// Stock status labels derived from quantity.
const (
	StatusHigh    = "High stock"
	StatusAverage = "Average stock"
	StatusLow     = "Low stock"
	StatusOut     = "Out of stock"
)

// DetermineStockStatus maps a quantity to its status label. Thresholds are
// fixed: 100, 50, 1.
func DetermineStockStatus(quantity int) string {
	switch {
	case quantity >= 100:
		return StatusHigh
	case quantity >= 50:
		return StatusAverage
	case quantity >= 1:
		return StatusLow
	default:
		return StatusOut
	}
}
