package db

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection          *mongo.Collection
	ProductsCollection      *mongo.Collection
	CartCollection          *mongo.Collection
	WishlistCollection      *mongo.Collection
	OrdersCollection        *mongo.Collection
	OrderHistoryCollection  *mongo.Collection
	StockCollection         *mongo.Collection
	StockHistoryCollection  *mongo.Collection
	PromoCollection         *mongo.Collection
	SalesCollection         *mongo.Collection
	PaymentsCollection      *mongo.Collection
	NotificationsCollection *mongo.Collection
	DevicesCollection       *mongo.Collection
	BlogCollection          *mongo.Collection
	CommentsCollection      *mongo.Collection
	FaqCollection           *mongo.Collection
	TestimonialsCollection  *mongo.Collection
	FeedbackCollection      *mongo.Collection
	SuggestionsCollection   *mongo.Collection
	ContactsCollection      *mongo.Collection
	MessagesCollection      *mongo.Collection
	Client                  *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("db: no .env file found; using system environment")
	}

	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	var err error
	Client, err = mongo.Connect(context.TODO(), options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	database := Client.Database("shopdb")
	UserCollection = database.Collection("users")
	ProductsCollection = database.Collection("products")
	CartCollection = database.Collection("carts")
	WishlistCollection = database.Collection("wishlists")
	OrdersCollection = database.Collection("orders")
	OrderHistoryCollection = database.Collection("orderhistory")
	StockCollection = database.Collection("stocks")
	StockHistoryCollection = database.Collection("stockhistory")
	PromoCollection = database.Collection("promocodes")
	SalesCollection = database.Collection("sales")
	PaymentsCollection = database.Collection("payments")
	NotificationsCollection = database.Collection("notifications")
	DevicesCollection = database.Collection("devices")
	BlogCollection = database.Collection("blogposts")
	CommentsCollection = database.Collection("comments")
	FaqCollection = database.Collection("faqs")
	TestimonialsCollection = database.Collection("testimonials")
	FeedbackCollection = database.Collection("feedback")
	SuggestionsCollection = database.Collection("suggestions")
	ContactsCollection = database.Collection("contacts")
	MessagesCollection = database.Collection("messages")
}
