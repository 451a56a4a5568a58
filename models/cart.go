package models

import "time"

// CartItem is one line in a user's cart; one document per line.
type CartItem struct {
	UserID    string    `json:"userId" bson:"userId"`
	ProductID string    `json:"productId" bson:"productId"`
	Name      string    `json:"name" bson:"name"`
	Price     float64   `json:"price" bson:"price"` // unit price snapshot
	Quantity  int       `json:"quantity" bson:"quantity"`
	AddedAt   time.Time `json:"addedAt" bson:"addedAt"`
}

type Wishlist struct {
	WishlistID string    `json:"wishlistId" bson:"wishlistId"`
	UserID     string    `json:"userId" bson:"userId"`
	Name       string    `json:"name" bson:"name"`
	Products   []string  `json:"products" bson:"products"`
	SharedWith []string  `json:"sharedWith" bson:"sharedWith"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt" bson:"updatedAt"`
}
