package models

import "time"

const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

type PromoCode struct {
	Code           string    `json:"code" bson:"code"` // unique, stored lowercase
	DiscountType   string    `json:"discountType" bson:"discountType"`
	DiscountValue  float64   `json:"discountValue" bson:"discountValue"`
	ExpirationDate time.Time `json:"expirationDate" bson:"expirationDate"`
	Active         bool      `json:"active" bson:"active"`
	CreatedAt      time.Time `json:"createdAt" bson:"createdAt"`
}

type Sale struct {
	SaleID     string    `json:"saleId" bson:"saleId"`
	ProductID  string    `json:"productId" bson:"productId"`
	CustomerID string    `json:"customerId" bson:"customerId"`
	Quantity   int       `json:"quantity" bson:"quantity"`
	TotalPrice float64   `json:"totalPrice" bson:"totalPrice"`
	SalesDate  time.Time `json:"salesDate" bson:"salesDate"`
}
