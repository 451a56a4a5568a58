package cart

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
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AddToCart increments quantity if the line exists, or inserts a new one.
// The unit price is snapshotted from the product document.
func AddToCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.ProductID == "" || input.Quantity <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing or invalid fields")
		return
	}

	var product models.Product
	if err := db.ProductsCollection.FindOne(ctx, bson.M{"productId": input.ProductID}).Decode(&product); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	filter := bson.M{"userId": userID, "productId": input.ProductID}
	update := bson.M{
		"$inc": bson.M{"quantity": input.Quantity},
		"$setOnInsert": bson.M{
			"name":    product.Name,
			"price":   product.Price,
			"addedAt": time.Now(),
		},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := db.CartCollection.UpdateOne(ctx, filter, update, opts); err != nil {
		log.Println("AddToCart UpdateOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to add to cart")
		return
	}

	go mq.Emit(r.Context(), "cart-updated", models.Event{EntityType: "cart", EntityID: userID, Method: "POST", UserID: userID})
	utils.RespondWithJSON(w, http.StatusCreated, map[string]string{"status": "added"})
}

// GetCart returns all cart lines for the user plus the subtotal.
func GetCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	cursor, err := db.CartCollection.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		log.Println("GetCart Find error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve cart")
		return
	}
	defer cursor.Close(ctx)

	var items []models.CartItem
	if err := cursor.All(ctx, &items); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error reading cart data")
		return
	}
	if len(items) == 0 {
		items = []models.CartItem{}
	}

	var subtotal float64
	for _, it := range items {
		subtotal += it.Price * float64(it.Quantity)
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"items":    items,
		"subtotal": subtotal,
	})
}

// UpdateQuantity sets the quantity of one line; zero removes it.
func UpdateQuantity(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Quantity < 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid quantity")
		return
	}

	filter := bson.M{"userId": userID, "productId": ps.ByName("productid")}

	if input.Quantity == 0 {
		res, err := db.CartCollection.DeleteOne(ctx, filter)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update cart")
			return
		}
		if res.DeletedCount == 0 {
			utils.RespondWithError(w, http.StatusNotFound, "Cart item not found")
			return
		}
	} else {
		res, err := db.CartCollection.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"quantity": input.Quantity}})
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update cart")
			return
		}
		if res.MatchedCount == 0 {
			utils.RespondWithError(w, http.StatusNotFound, "Cart item not found")
			return
		}
	}

	go mq.Emit(r.Context(), "cart-updated", models.Event{EntityType: "cart", EntityID: userID, Method: "PUT", UserID: userID})
	utils.SendResponse(w, http.StatusOK, nil, "Cart updated", nil)
}

// RemoveFromCart deletes one line.
func RemoveFromCart(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	res, err := db.CartCollection.DeleteOne(ctx, bson.M{"userId": userID, "productId": ps.ByName("productid")})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to remove cart item")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Cart item not found")
		return
	}

	go mq.Emit(r.Context(), "cart-updated", models.Event{EntityType: "cart", EntityID: userID, Method: "DELETE", UserID: userID})
	utils.SendResponse(w, http.StatusOK, nil, "Item removed", nil)
}

// ClearCart drops every line for the user.
func ClearCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if _, err := db.CartCollection.DeleteMany(ctx, bson.M{"userId": userID}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to clear cart")
		return
	}

	go mq.Emit(r.Context(), "cart-cleared", models.Event{EntityType: "cart", EntityID: userID, Method: "DELETE", UserID: userID})
	utils.SendResponse(w, http.StatusOK, nil, "Cart cleared", nil)
}
