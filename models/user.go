package models

import "time"

type User struct {
	UserID        string    `json:"userid" bson:"userid"`
	Name          string    `json:"name" bson:"name"`
	Email         string    `json:"email" bson:"email"`
	PasswordHash  string    `json:"-" bson:"password_hash"`
	Role          []string  `json:"role" bson:"role"`
	Avatar        string    `json:"avatar,omitempty" bson:"avatar,omitempty"`
	PhoneNumber   string    `json:"phone_number,omitempty" bson:"phone_number,omitempty"`
	Address       string    `json:"address,omitempty" bson:"address,omitempty"`
	Provider      string    `json:"provider,omitempty" bson:"provider,omitempty"` // "local", "google", "github", "facebook"
	EmailVerified bool      `json:"email_verified" bson:"email_verified"`
	TwoFactor     bool      `json:"two_factor" bson:"two_factor"`
	Wishlists     []string  `json:"wishlists,omitempty" bson:"wishlists,omitempty"`
	RefreshToken  string    `json:"-" bson:"refreshtoken,omitempty"`
	RefreshExpiry time.Time `json:"-" bson:"refreshexp,omitempty"`
	ResetToken    string    `json:"-" bson:"reset_token,omitempty"`
	ResetExpiry   time.Time `json:"-" bson:"reset_expiry,omitempty"`
	LastLogin     time.Time `json:"last_login" bson:"last_login"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at"`
}

// UserProfileResponse is the public view of an account.
type UserProfileResponse struct {
	UserID      string    `json:"userid" bson:"userid"`
	Name        string    `json:"name" bson:"name"`
	Email       string    `json:"email" bson:"email"`
	Avatar      string    `json:"avatar,omitempty" bson:"avatar,omitempty"`
	PhoneNumber string    `json:"phone_number,omitempty" bson:"phone_number,omitempty"`
	Address     string    `json:"address,omitempty" bson:"address,omitempty"`
	Role        []string  `json:"role" bson:"role"`
	LastLogin   time.Time `json:"last_login" bson:"last_login"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}
