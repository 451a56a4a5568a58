package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"

	"vendora/db"
	"vendora/models"
	"vendora/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var pushClient = &http.Client{Timeout: 10 * time.Second}

// RegisterDevice stores a push token for the logged-in user's device.
func RegisterDevice(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input struct {
		Token    string `json:"token"`
		Platform string `json:"platform"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Token == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Device token is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	filter := bson.M{"userId": userID, "token": input.Token}
	update := bson.M{"$set": bson.M{
		"platform":     input.Platform,
		"registeredAt": time.Now(),
	}}
	opts := options.Update().SetUpsert(true)
	if _, err := db.DevicesCollection.UpdateOne(ctx, filter, update, opts); err != nil {
		log.Println("RegisterDevice UpdateOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to register device")
		return
	}

	utils.SendResponse(w, http.StatusCreated, nil, "Device registered", nil)
}

// PushBroadcast posts a notice to the push collaborator for every
// registered device token. Best effort: one attempt, failures logged.
func PushBroadcast(title, body string) {
	endpoint := os.Getenv("PUSH_ENDPOINT")
	if endpoint == "" {
		log.Println("PushBroadcast: no PUSH_ENDPOINT configured, skipping")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	cursor, err := db.DevicesCollection.Find(ctx, bson.M{})
	if err != nil {
		log.Println("PushBroadcast Find error:", err)
		return
	}
	defer cursor.Close(ctx)

	var devices []models.Device
	if err := cursor.All(ctx, &devices); err != nil {
		log.Println("PushBroadcast decode error:", err)
		return
	}

	tokens := make([]string, 0, len(devices))
	for _, d := range devices {
		tokens = append(tokens, d.Token)
	}
	if len(tokens) == 0 {
		return
	}

	payload, _ := json.Marshal(map[string]any{
		"tokens": tokens,
		"title":  title,
		"body":   body,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		log.Println("PushBroadcast request error:", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "key="+os.Getenv("PUSH_API_KEY"))

	resp, err := pushClient.Do(req)
	if err != nil {
		log.Println("PushBroadcast send error:", err)
		return
	}
	resp.Body.Close()
	if resp.StatusCode >= 300 {
		log.Printf("PushBroadcast: collaborator returned %d", resp.StatusCode)
	}
}
