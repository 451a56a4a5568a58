package models

import "time"

// Payment status values, driven by provider responses.
const (
	PaymentCreated  = "created"
	PaymentPending  = "pending"
	PaymentSuccess  = "success"
	PaymentRejected = "rejected"
)

// Payment mirrors a provider-side payment locally.
type Payment struct {
	PaymentID  string    `json:"paymentId" bson:"paymentId"`
	Provider   string    `json:"provider" bson:"provider"` // "stripe" or "paypal"
	ProviderID string    `json:"providerId" bson:"providerId"`
	OrderID    string    `json:"orderId" bson:"orderId"`
	UserID     string    `json:"userId" bson:"userId"`
	Amount     float64   `json:"amount" bson:"amount"`
	Currency   string    `json:"currency" bson:"currency"`
	Status     string    `json:"status" bson:"status"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt" bson:"updatedAt"`
}
