package feedback

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"vendora/db"
	"vendora/models"
	"vendora/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SubmitFeedback stores a feedback entry. Works logged in or anonymous.
func SubmitFeedback(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var body struct {
		Subject string `json:"subject"`
		Body    string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(body.Subject) == "" || strings.TrimSpace(body.Body) == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Subject and body are required")
		return
	}

	fb := models.Feedback{
		FeedbackID: "fbk" + utils.GenerateRandomString(12),
		UserID:     utils.GetUserIDFromRequest(r),
		Subject:    body.Subject,
		Body:       body.Body,
		CreatedAt:  time.Now(),
	}
	if _, err := db.FeedbackCollection.InsertOne(ctx, fb); err != nil {
		log.Println("SubmitFeedback:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to submit feedback")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, fb)
}

// GetFeedback lists feedback entries, newest first. Admin only.
func GetFeedback(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	skip, limit := utils.ParsePagination(r, 20, 100)
	opts := options.Find().SetSort(bson.M{"createdAt": -1}).SetSkip(skip).SetLimit(limit)

	cursor, err := db.FeedbackCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		log.Println("GetFeedback:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}
	defer cursor.Close(ctx)

	entries := []models.Feedback{}
	if err := cursor.All(ctx, &entries); err != nil {
		log.Println("GetFeedback decode:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"feedback": entries})
}

// SubmitSuggestion stores a free-text suggestion.
func SubmitSuggestion(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var body struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.TrimSpace(body.Text) == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Text is required")
		return
	}

	s := models.Suggestion{
		SuggestionID: "sgn" + utils.GenerateRandomString(12),
		UserID:       utils.GetUserIDFromRequest(r),
		Text:         body.Text,
		CreatedAt:    time.Now(),
	}
	if _, err := db.SuggestionsCollection.InsertOne(ctx, s); err != nil {
		log.Println("SubmitSuggestion:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to submit suggestion")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, s)
}

// GetSuggestions lists suggestions, newest first. Admin only.
func GetSuggestions(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	skip, limit := utils.ParsePagination(r, 20, 100)
	opts := options.Find().SetSort(bson.M{"createdAt": -1}).SetSkip(skip).SetLimit(limit)

	cursor, err := db.SuggestionsCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		log.Println("GetSuggestions:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}
	defer cursor.Close(ctx)

	suggestions := []models.Suggestion{}
	if err := cursor.All(ctx, &suggestions); err != nil {
		log.Println("GetSuggestions decode:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"suggestions": suggestions})
}
