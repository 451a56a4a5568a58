package models

// Message is one chat message, buffered in Redis and flushed to MongoDB.
type Message struct {
	Room      string `json:"room" bson:"room"`
	SenderID  string `json:"senderId" bson:"senderId"`
	Content   string `json:"content,omitempty" bson:"content,omitempty"`
	Timestamp int64  `json:"timestamp" bson:"timestamp"`
}
