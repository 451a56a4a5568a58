package wishlist

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

// CreateWishlist makes a new list and pushes its id onto the user document.
func CreateWishlist(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Name == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Name is required")
		return
	}

	list := models.Wishlist{
		WishlistID: "w" + utils.GenerateRandomString(12),
		UserID:     userID,
		Name:       input.Name,
		Products:   []string{},
		SharedWith: []string{},
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	if _, err := db.WishlistCollection.InsertOne(ctx, list); err != nil {
		log.Println("CreateWishlist InsertOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create wishlist")
		return
	}

	// Back-reference on the user document, no referential integrity.
	if _, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{"$push": bson.M{"wishlists": list.WishlistID}},
	); err != nil {
		log.Println("CreateWishlist back-reference error:", err)
	}

	utils.RespondWithJSON(w, http.StatusCreated, map[string]any{"success": true, "wishlist": list})
}

// GetWishlists returns lists the caller owns or that are shared with them.
func GetWishlists(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	filter := bson.M{"$or": []bson.M{
		{"userId": userID},
		{"sharedWith": userID},
	}}
	cursor, err := db.WishlistCollection.Find(ctx, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve wishlists")
		return
	}
	defer cursor.Close(ctx)

	var lists []models.Wishlist
	if err := cursor.All(ctx, &lists); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error reading wishlists")
		return
	}
	if len(lists) == 0 {
		lists = []models.Wishlist{}
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"success": true, "wishlists": lists})
}

func GetWishlist(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)

	var list models.Wishlist
	err := db.WishlistCollection.FindOne(ctx, bson.M{"wishlistId": ps.ByName("wishlistid")}).Decode(&list)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Wishlist not found")
		return
	}

	if list.UserID != userID && !contains(list.SharedWith, userID) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"success": true, "wishlist": list})
}

// AddProduct appends a product id to the list (no duplicates).
func AddProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input struct {
		ProductID string `json:"productId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.ProductID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Product id is required")
		return
	}

	if err := db.ProductsCollection.FindOne(ctx, bson.M{"productId": input.ProductID}).Err(); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	res, err := db.WishlistCollection.UpdateOne(ctx,
		bson.M{"wishlistId": ps.ByName("wishlistid"), "userId": userID},
		bson.M{
			"$addToSet": bson.M{"products": input.ProductID},
			"$set":      bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update wishlist")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Wishlist not found")
		return
	}

	go mq.Emit(r.Context(), "wishlist-updated", models.Event{EntityType: "wishlist", EntityID: ps.ByName("wishlistid"), Method: "PUT", UserID: userID})
	utils.SendResponse(w, http.StatusOK, nil, "Product added to wishlist", nil)
}

// RemoveProduct pulls a product id from the list.
func RemoveProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	res, err := db.WishlistCollection.UpdateOne(ctx,
		bson.M{"wishlistId": ps.ByName("wishlistid"), "userId": userID},
		bson.M{
			"$pull": bson.M{"products": ps.ByName("productid")},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update wishlist")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Wishlist not found")
		return
	}

	utils.SendResponse(w, http.StatusOK, nil, "Product removed from wishlist", nil)
}

// ShareWishlist grants another user read access.
func ShareWishlist(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input struct {
		UserID string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.UserID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "User id is required")
		return
	}

	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": input.UserID}).Err(); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	res, err := db.WishlistCollection.UpdateOne(ctx,
		bson.M{"wishlistId": ps.ByName("wishlistid"), "userId": userID},
		bson.M{"$addToSet": bson.M{"sharedWith": input.UserID}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to share wishlist")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Wishlist not found")
		return
	}

	utils.SendResponse(w, http.StatusOK, nil, "Wishlist shared", nil)
}

// DeleteWishlist removes the list and its back-reference on the user.
func DeleteWishlist(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	wishlistID := ps.ByName("wishlistid")
	res, err := db.WishlistCollection.DeleteOne(ctx, bson.M{"wishlistId": wishlistID, "userId": userID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete wishlist")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Wishlist not found")
		return
	}

	if _, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{"$pull": bson.M{"wishlists": wishlistID}},
	); err != nil {
		log.Println("DeleteWishlist back-reference error:", err)
	}

	utils.SendResponse(w, http.StatusOK, nil, "Wishlist deleted", nil)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
