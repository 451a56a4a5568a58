package paypal

import (
	"fmt"
	"os"

	"vendora/utils"
)

// ProviderOrder mirrors the fields a PayPal approval redirect needs.
type ProviderOrder struct {
	ProviderOrderID string
	ApproveURL      string
	OrderID         string
	Amount          float64
	Currency        string
}

func frontendURL() string {
	if u := os.Getenv("FRONTEND_URL"); u != "" {
		return u
	}
	return "http://localhost:5173"
}

// CreateOrder builds a provider order awaiting buyer approval.
func CreateOrder(orderID string, amount float64, currency string) (ProviderOrder, error) {
	var o ProviderOrder
	o.ProviderOrderID = "PP-" + utils.GenerateRandomString(17)
	o.ApproveURL = fmt.Sprintf("%s/paypal/approve/%s?token=%s", frontendURL(), orderID, o.ProviderOrderID)
	o.OrderID = orderID
	o.Amount = amount
	o.Currency = currency
	return o, nil
}
