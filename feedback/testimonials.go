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

// CreateTestimonial stores a signed testimonial from the caller.
func CreateTestimonial(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)

	var body struct {
		Name   string `json:"name"`
		Text   string `json:"text"`
		Rating int    `json:"rating"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(body.Text) == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Text is required")
		return
	}
	if body.Rating < 1 || body.Rating > 5 {
		utils.RespondWithError(w, http.StatusBadRequest, "Rating must be between 1 and 5")
		return
	}

	t := models.Testimonial{
		TestimonialID: "tst" + utils.GenerateRandomString(12),
		UserID:        userID,
		Name:          body.Name,
		Text:          body.Text,
		Rating:        body.Rating,
		CreatedAt:     time.Now(),
	}
	if _, err := db.TestimonialsCollection.InsertOne(ctx, t); err != nil {
		log.Println("CreateTestimonial:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create testimonial")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, t)
}

// GetTestimonials lists testimonials, newest first. Public.
func GetTestimonials(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	skip, limit := utils.ParsePagination(r, 20, 100)
	opts := options.Find().SetSort(bson.M{"createdAt": -1}).SetSkip(skip).SetLimit(limit)

	cursor, err := db.TestimonialsCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		log.Println("GetTestimonials:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}
	defer cursor.Close(ctx)

	testimonials := []models.Testimonial{}
	if err := cursor.All(ctx, &testimonials); err != nil {
		log.Println("GetTestimonials decode:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"testimonials": testimonials})
}

// DeleteTestimonial removes the caller's own testimonial; admins can
// remove any.
func DeleteTestimonial(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	filter := bson.M{"testimonialId": ps.ByName("testimonialid")}
	if !hasRole(r, "admin") {
		filter["userId"] = userID
	}

	res, err := db.TestimonialsCollection.DeleteOne(ctx, filter)
	if err != nil {
		log.Println("DeleteTestimonial:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete testimonial")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Testimonial not found")
		return
	}

	utils.SendResponse(w, http.StatusOK, nil, "Testimonial deleted", nil)
}

func hasRole(r *http.Request, role string) bool {
	for _, got := range utils.GetRolesFromRequest(r) {
		if got == role {
			return true
		}
	}
	return false
}
