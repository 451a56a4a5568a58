package models

import "time"

type Notification struct {
	NotificationID string    `json:"notificationId" bson:"notificationId"`
	UserID         string    `json:"userId" bson:"userId"`
	Title          string    `json:"title" bson:"title"`
	Body           string    `json:"body" bson:"body"`
	Read           bool      `json:"read" bson:"read"`
	CreatedAt      time.Time `json:"createdAt" bson:"createdAt"`
}

// Device holds a registered push token for one user device.
type Device struct {
	UserID       string    `json:"userId" bson:"userId"`
	Token        string    `json:"token" bson:"token"`
	Platform     string    `json:"platform,omitempty" bson:"platform,omitempty"`
	RegisteredAt time.Time `json:"registeredAt" bson:"registeredAt"`
}

// Event is a post-mutation message published on the realtime channel.
type Event struct {
	Name       string `json:"name" bson:"name"`
	EntityType string `json:"entity_type" bson:"entity_type"`
	EntityID   string `json:"entity_id" bson:"entity_id"`
	Method     string `json:"method" bson:"method"`
	UserID     string `json:"user_id,omitempty" bson:"user_id,omitempty"`
}
