package qna

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

// GetFAQs lists every FAQ, newest first. Public.
func GetFAQs(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := db.FaqCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		log.Println("GetFAQs:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}
	defer cursor.Close(ctx)

	faqs := []models.FAQ{}
	if err := cursor.All(ctx, &faqs); err != nil {
		log.Println("GetFAQs decode:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"faqs": faqs})
}

// CreateFAQ inserts a question/answer pair. Admin only.
func CreateFAQ(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var body struct {
		Question string `json:"question"`
		Answer   string `json:"answer"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(body.Question) == "" || strings.TrimSpace(body.Answer) == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Question and answer are required")
		return
	}

	now := time.Now()
	faq := models.FAQ{
		FaqID:     "faq" + utils.GenerateRandomString(12),
		Question:  body.Question,
		Answer:    body.Answer,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := db.FaqCollection.InsertOne(ctx, faq); err != nil {
		log.Println("CreateFAQ:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create FAQ")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, faq)
}

// UpdateFAQ changes the question or answer. Admin only.
func UpdateFAQ(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var body struct {
		Question *string `json:"question"`
		Answer   *string `json:"answer"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	update := bson.M{"updatedAt": time.Now()}
	if body.Question != nil {
		if strings.TrimSpace(*body.Question) == "" {
			utils.RespondWithError(w, http.StatusBadRequest, "Question cannot be empty")
			return
		}
		update["question"] = *body.Question
	}
	if body.Answer != nil {
		if strings.TrimSpace(*body.Answer) == "" {
			utils.RespondWithError(w, http.StatusBadRequest, "Answer cannot be empty")
			return
		}
		update["answer"] = *body.Answer
	}

	res, err := db.FaqCollection.UpdateOne(ctx,
		bson.M{"faqId": ps.ByName("faqid")},
		bson.M{"$set": update})
	if err != nil {
		log.Println("UpdateFAQ:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update FAQ")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "FAQ not found")
		return
	}

	utils.SendResponse(w, http.StatusOK, nil, "FAQ updated", nil)
}

// DeleteFAQ removes an FAQ. Admin only.
func DeleteFAQ(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	res, err := db.FaqCollection.DeleteOne(ctx, bson.M{"faqId": ps.ByName("faqid")})
	if err != nil {
		log.Println("DeleteFAQ:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete FAQ")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "FAQ not found")
		return
	}

	utils.SendResponse(w, http.StatusOK, nil, "FAQ deleted", nil)
}
