package models

import "time"

type BlogPost struct {
	PostID    string    `json:"postId" bson:"postId"`
	AuthorID  string    `json:"authorId" bson:"authorId"`
	Title     string    `json:"title" bson:"title"`
	Body      string    `json:"body" bson:"body"`
	Tags      []string  `json:"tags,omitempty" bson:"tags,omitempty"`
	Image     string    `json:"image,omitempty" bson:"image,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

type Comment struct {
	CommentID string    `json:"commentId" bson:"commentId"`
	PostID    string    `json:"postId" bson:"postId"`
	UserID    string    `json:"userId" bson:"userId"`
	Body      string    `json:"body" bson:"body"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

type FAQ struct {
	FaqID     string    `json:"faqId" bson:"faqId"`
	Question  string    `json:"question" bson:"question"`
	Answer    string    `json:"answer" bson:"answer"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

type Testimonial struct {
	TestimonialID string    `json:"testimonialId" bson:"testimonialId"`
	UserID        string    `json:"userId" bson:"userId"`
	Name          string    `json:"name" bson:"name"`
	Text          string    `json:"text" bson:"text"`
	Rating        int       `json:"rating" bson:"rating"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
}

type Feedback struct {
	FeedbackID string    `json:"feedbackId" bson:"feedbackId"`
	UserID     string    `json:"userId,omitempty" bson:"userId,omitempty"`
	Subject    string    `json:"subject" bson:"subject"`
	Body       string    `json:"body" bson:"body"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
}

type Suggestion struct {
	SuggestionID string    `json:"suggestionId" bson:"suggestionId"`
	UserID       string    `json:"userId,omitempty" bson:"userId,omitempty"`
	Text         string    `json:"text" bson:"text"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
}

type ContactMessage struct {
	ContactID string    `json:"contactId" bson:"contactId"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Message   string    `json:"message" bson:"message"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}
