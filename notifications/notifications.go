package notifications

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"vendora/db"
	"vendora/models"
	"vendora/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Notify writes a notification document for one user. Failures are logged
// only; notifications are advisory.
func Notify(userID, title, body string) {
	n := models.Notification{
		NotificationID: "n" + utils.GenerateRandomString(12),
		UserID:         userID,
		Title:          title,
		Body:           body,
		CreatedAt:      time.Now(),
	}
	if _, err := db.NotificationsCollection.InsertOne(context.Background(), n); err != nil {
		log.Println("Notify InsertOne error:", err)
	}
}

// GetNotifications lists the caller's notifications, newest first.
func GetNotifications(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	skip, limit := utils.ParsePagination(r, 20, 100)
	opts := options.Find().SetSort(bson.M{"createdAt": -1}).SetSkip(skip).SetLimit(limit)

	cursor, err := db.NotificationsCollection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		log.Println("GetNotifications Find error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve notifications")
		return
	}
	defer cursor.Close(ctx)

	var items []models.Notification
	if err := cursor.All(ctx, &items); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error reading notifications")
		return
	}
	if len(items) == 0 {
		items = []models.Notification{}
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"success": true, "notifications": items})
}

// MarkRead marks a single notification as read.
func MarkRead(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	res, err := db.NotificationsCollection.UpdateOne(ctx,
		bson.M{"notificationId": ps.ByName("id"), "userId": userID},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update notification")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Notification not found")
		return
	}

	utils.SendResponse(w, http.StatusOK, nil, "Notification marked read", nil)
}

// MarkAllRead marks every unread notification for the caller.
func MarkAllRead(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if _, err := db.NotificationsCollection.UpdateMany(ctx,
		bson.M{"userId": userID, "read": false},
		bson.M{"$set": bson.M{"read": true}},
	); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update notifications")
		return
	}

	utils.SendResponse(w, http.StatusOK, nil, "All notifications marked read", nil)
}

// Broadcast sends an admin notice to all users by email and push.
func Broadcast(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Title == "" || input.Body == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Title and body are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	cursor, err := db.UserCollection.Find(ctx, bson.M{},
		options.Find().SetProjection(bson.M{"email": 1}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load recipients")
		return
	}
	defer cursor.Close(ctx)

	var users []struct {
		Email string `bson:"email"`
	}
	if err := cursor.All(ctx, &users); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load recipients")
		return
	}

	emails := make([]string, 0, len(users))
	for _, u := range users {
		if u.Email != "" {
			emails = append(emails, u.Email)
		}
	}

	go BroadcastEmail(emails, input.Title, input.Body)
	go PushBroadcast(input.Title, input.Body)

	utils.SendResponse(w, http.StatusAccepted, map[string]int{"recipients": len(emails)}, "Broadcast queued", nil)
}
