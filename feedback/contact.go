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

// SubmitContact stores a contact-form message. Public, no login needed.
func SubmitContact(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var body struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(body.Name) == "" || strings.TrimSpace(body.Email) == "" || strings.TrimSpace(body.Message) == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Name, email and message are required")
		return
	}

	msg := models.ContactMessage{
		ContactID: "ctc" + utils.GenerateRandomString(12),
		Name:      body.Name,
		Email:     utils.NormalizeEmail(body.Email),
		Message:   body.Message,
		CreatedAt: time.Now(),
	}
	if _, err := db.ContactsCollection.InsertOne(ctx, msg); err != nil {
		log.Println("SubmitContact:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to submit message")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"contactId": msg.ContactID, "message": "Message received"})
}

// GetContacts lists contact messages, newest first. Admin only.
func GetContacts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	skip, limit := utils.ParsePagination(r, 20, 100)
	opts := options.Find().SetSort(bson.M{"createdAt": -1}).SetSkip(skip).SetLimit(limit)

	cursor, err := db.ContactsCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		log.Println("GetContacts:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}
	defer cursor.Close(ctx)

	contacts := []models.ContactMessage{}
	if err := cursor.All(ctx, &contacts); err != nil {
		log.Println("GetContacts decode:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"contacts": contacts})
}

// DeleteContact removes a contact message. Admin only.
func DeleteContact(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	res, err := db.ContactsCollection.DeleteOne(ctx, bson.M{"contactId": ps.ByName("contactid")})
	if err != nil {
		log.Println("DeleteContact:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete message")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Message not found")
		return
	}

	utils.SendResponse(w, http.StatusOK, nil, "Message deleted", nil)
}
