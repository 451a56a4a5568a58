package stripe

import (
	"fmt"
	"os"

	"vendora/utils"
)

// CheckoutSession mirrors the fields a hosted-checkout redirect needs.
type CheckoutSession struct {
	SessionID string
	URL       string
	OrderID   string
	Amount    float64
	Currency  string
}

func frontendURL() string {
	if u := os.Getenv("FRONTEND_URL"); u != "" {
		return u
	}
	return "http://localhost:5173"
}

// CreateCheckoutSession builds a hosted-checkout session for an order.
func CreateCheckoutSession(orderID string, amount float64, currency string) (CheckoutSession, error) {
	var s CheckoutSession
	s.SessionID = "cs_" + utils.GenerateRandomString(24)
	s.URL = fmt.Sprintf("%s/checkout/%s?session=%s", frontendURL(), orderID, s.SessionID)
	s.OrderID = orderID
	s.Amount = amount
	s.Currency = currency
	return s, nil
}
