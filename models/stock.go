package models

import "time"

type Stock struct {
	StockID      string    `json:"stockId" bson:"stockId"`
	ProductID    string    `json:"productId" bson:"productId"`
	Quantity     int       `json:"quantity" bson:"quantity"`
	ReorderLevel int       `json:"reorderLevel" bson:"reorderLevel"`
	Warehouse    string    `json:"warehouse" bson:"warehouse"`
	Supplier     string    `json:"supplier" bson:"supplier"`
	Status       string    `json:"status" bson:"status"` // derived from quantity
	LastUpdated  time.Time `json:"lastUpdated" bson:"lastUpdated"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
}

// StockHistory is append-only, one row per change.
type StockHistory struct {
	StockID   string    `json:"stockId" bson:"stockId"`
	ProductID string    `json:"productId" bson:"productId"`
	Quantity  int       `json:"quantity" bson:"quantity"`
	Action    string    `json:"action" bson:"action"` // e.g. "Created", "Updated"
	ChangedAt time.Time `json:"changedAt" bson:"changedAt"`
}
