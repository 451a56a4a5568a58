package products

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"vendora/db"
	"vendora/models"
	"vendora/mq"
	"vendora/notifications"
	"vendora/uploads"
	"vendora/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateProduct accepts a multipart form: name, price, quantity, category,
// description plus any number of image files under "images". Images are
// resized and re-encoded before their URLs are persisted.
func CreateProduct(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	name := r.FormValue("name")
	category := r.FormValue("category")
	price, errP := strconv.ParseFloat(r.FormValue("price"), 64)
	quantity, errQ := strconv.Atoi(r.FormValue("quantity"))
	if name == "" || category == "" || errP != nil || price <= 0 || errQ != nil || quantity < 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing or invalid fields")
		return
	}

	images, err := uploads.SaveUploadedImages(r, "images", "productpic")
	if err != nil {
		log.Println("CreateProduct image error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to process images")
		return
	}
	if images == nil {
		images = []string{}
	}

	product := models.Product{
		ProductID:   "p" + utils.GenerateRandomString(12),
		Name:        name,
		Description: r.FormValue("description"),
		Price:       price,
		Quantity:    quantity,
		Category:    category,
		Images:      images,
		Reviews:     []models.Review{},
		CreatedBy:   utils.GetUserIDFromRequest(r),
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if _, err := db.ProductsCollection.InsertOne(ctx, product); err != nil {
		log.Println("CreateProduct InsertOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create product")
		return
	}

	// One broadcast attempt per new product; a failure is only logged.
	go notifications.PushBroadcast("New arrival", product.Name)
	go mq.Emit(r.Context(), "product-created", models.Event{EntityType: "product", EntityID: product.ProductID, Method: "POST"})

	utils.RespondWithJSON(w, http.StatusCreated, map[string]any{"success": true, "product": product})
}

// GetProducts lists products with optional ?category= and ?search= filters.
func GetProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	skip, limit := utils.ParsePagination(r, 10, 100)

	filter := bson.M{}
	if cat := r.URL.Query().Get("category"); cat != "" {
		filter["category"] = cat
	}
	if search := r.URL.Query().Get("search"); search != "" {
		filter["$or"] = []bson.M{
			utils.RegexFilter("name", search),
			utils.RegexFilter("description", search),
		}
	}

	opts := options.Find().SetSort(bson.M{"createdAt": -1}).SetSkip(skip).SetLimit(limit)
	cursor, err := db.ProductsCollection.Find(ctx, filter, opts)
	if err != nil {
		log.Println("GetProducts Find error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching products")
		return
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error decoding products")
		return
	}
	if len(products) == 0 {
		products = []models.Product{}
	}

	total, _ := db.ProductsCollection.CountDocuments(ctx, filter)
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"products": products,
		"total":    total,
		"limit":    limit,
	})
}

func GetProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var product models.Product
	err := db.ProductsCollection.FindOne(ctx, bson.M{"productId": ps.ByName("productid")}).Decode(&product)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"success": true, "product": product})
}

// EditProduct merges the incoming fields into the product document.
func EditProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		Name        *string  `json:"name"`
		Description *string  `json:"description"`
		Price       *float64 `json:"price"`
		Quantity    *int     `json:"quantity"`
		Category    *string  `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	set := bson.M{"updatedAt": time.Now()}
	if input.Name != nil {
		set["name"] = *input.Name
	}
	if input.Description != nil {
		set["description"] = *input.Description
	}
	if input.Price != nil {
		if *input.Price <= 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "Price must be positive")
			return
		}
		set["price"] = *input.Price
	}
	if input.Quantity != nil {
		if *input.Quantity < 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "Quantity cannot be negative")
			return
		}
		set["quantity"] = *input.Quantity
	}
	if input.Category != nil {
		set["category"] = *input.Category
	}

	productID := ps.ByName("productid")
	res, err := db.ProductsCollection.UpdateOne(ctx, bson.M{"productId": productID}, bson.M{"$set": set})
	if err != nil {
		log.Println("EditProduct UpdateOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update product")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	go mq.Emit(r.Context(), "product-updated", models.Event{EntityType: "product", EntityID: productID, Method: "PUT"})
	utils.SendResponse(w, http.StatusOK, nil, "Product updated", nil)
}

func DeleteProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	productID := ps.ByName("productid")
	res, err := db.ProductsCollection.DeleteOne(ctx, bson.M{"productId": productID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete product")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	go mq.Emit(r.Context(), "product-deleted", models.Event{EntityType: "product", EntityID: productID, Method: "DELETE"})
	utils.SendResponse(w, http.StatusOK, nil, "Product deleted", nil)
}

// AddProductImages appends more images to an existing product.
func AddProductImages(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	images, err := uploads.SaveUploadedImages(r, "images", "productpic")
	if err != nil || len(images) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "No valid images supplied")
		return
	}

	productID := ps.ByName("productid")
	res, err := db.ProductsCollection.UpdateOne(ctx,
		bson.M{"productId": productID},
		bson.M{
			"$push": bson.M{"images": bson.M{"$each": images}},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to attach images")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"success": true, "images": images})
}
