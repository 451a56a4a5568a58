package products

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"vendora/db"
	"vendora/models"
	"vendora/mq"
	"vendora/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// recomputeRating rewrites the denormalized average rating from the
// embedded review list.
func recomputeRating(ctx context.Context, productID string) {
	var product models.Product
	if err := db.ProductsCollection.FindOne(ctx, bson.M{"productId": productID}).Decode(&product); err != nil {
		log.Println("recomputeRating FindOne error:", err)
		return
	}

	var rating float64
	if len(product.Reviews) > 0 {
		var sum int
		for _, rev := range product.Reviews {
			sum += rev.Rating
		}
		rating = float64(sum) / float64(len(product.Reviews))
	}

	if _, err := db.ProductsCollection.UpdateOne(ctx,
		bson.M{"productId": productID},
		bson.M{"$set": bson.M{"rating": rating}},
	); err != nil {
		log.Println("recomputeRating UpdateOne error:", err)
	}
}

// AddReview appends a review sub-document onto the product.
func AddReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var review models.Review
	if err := json.NewDecoder(r.Body).Decode(&review); err != nil ||
		review.Rating < 1 || review.Rating > 5 || review.Comment == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid review data")
		return
	}

	productID := ps.ByName("productid")

	count, err := db.ProductsCollection.CountDocuments(ctx, bson.M{
		"productId":      productID,
		"reviews.userId": userID,
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if count > 0 {
		utils.RespondWithError(w, http.StatusConflict, "You have already reviewed this product")
		return
	}

	review.ReviewID = utils.GenerateRandomString(16)
	review.UserID = userID
	review.CreatedAt = time.Now()

	res, err := db.ProductsCollection.UpdateOne(ctx,
		bson.M{"productId": productID},
		bson.M{"$push": bson.M{"reviews": review}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to add review")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	recomputeRating(ctx, productID)
	go mq.Emit(r.Context(), "review-added", models.Event{EntityType: "review", EntityID: review.ReviewID, Method: "POST", UserID: userID})

	utils.RespondWithJSON(w, http.StatusCreated, map[string]any{"success": true, "review": review})
}

// EditReview updates the caller's own review in place.
func EditReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil ||
		input.Rating < 1 || input.Rating > 5 || input.Comment == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid review data")
		return
	}

	productID := ps.ByName("productid")
	res, err := db.ProductsCollection.UpdateOne(ctx,
		bson.M{
			"productId": productID,
			"reviews": bson.M{"$elemMatch": bson.M{
				"reviewId": ps.ByName("reviewid"),
				"userId":   userID,
			}},
		},
		bson.M{"$set": bson.M{
			"reviews.$.rating":  input.Rating,
			"reviews.$.comment": input.Comment,
		}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update review")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Review not found")
		return
	}

	recomputeRating(ctx, productID)
	utils.SendResponse(w, http.StatusOK, nil, "Review updated", nil)
}

// DeleteReview pulls the caller's review out of the embedded list.
func DeleteReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	productID := ps.ByName("productid")
	res, err := db.ProductsCollection.UpdateOne(ctx,
		bson.M{"productId": productID},
		bson.M{"$pull": bson.M{"reviews": bson.M{
			"reviewId": ps.ByName("reviewid"),
			"userId":   userID,
		}}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete review")
		return
	}
	if res.ModifiedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Review not found")
		return
	}

	recomputeRating(ctx, productID)
	utils.SendResponse(w, http.StatusOK, nil, "Review deleted", nil)
}
