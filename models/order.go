package models

import "time"

// Order status values. Transitions are not validated beyond
// "cancel only while pending".
const (
	OrderPending   = "pending"
	OrderShipped   = "shipped"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"
)

type OrderLine struct {
	ProductID string  `json:"productId" bson:"productId"`
	Name      string  `json:"name" bson:"name"`
	Price     float64 `json:"price" bson:"price"`
	Quantity  int     `json:"quantity" bson:"quantity"`
}

type Order struct {
	OrderID       string      `json:"orderId" bson:"orderId"`
	UserID        string      `json:"userId" bson:"userId"`
	Lines         []OrderLine `json:"lines" bson:"lines"`
	Address       string      `json:"address" bson:"address"`
	PaymentMethod string      `json:"paymentMethod" bson:"paymentMethod"`
	PromoCode     string      `json:"promoCode,omitempty" bson:"promoCode,omitempty"`
	Discount      float64     `json:"discount" bson:"discount"`
	Total         float64     `json:"total" bson:"total"`
	Status        string      `json:"status" bson:"status"`
	CreatedAt     time.Time   `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt" bson:"updatedAt"`
}

// OrderHistory is an append-only side record per status change.
type OrderHistory struct {
	OrderID   string    `json:"orderId" bson:"orderId"`
	Status    string    `json:"status" bson:"status"`
	Note      string    `json:"note,omitempty" bson:"note,omitempty"`
	ChangedBy string    `json:"changedBy" bson:"changedBy"`
	ChangedAt time.Time `json:"changedAt" bson:"changedAt"`
}
